package service

import (
	"strconv"
	"time"

	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/util"
	"english_edu_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo    *repository.QuizRepository
	AttemptRepo *repository.QuizAttemptRepository
	ModuleRepo  *repository.ModuleRepository
	UserRepo    *repository.UserRepository
	Progress    *ProgressService
	Achievement *AchievementService
	DB          *gorm.DB
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	attemptRepo *repository.QuizAttemptRepository,
	moduleRepo *repository.ModuleRepository,
	userRepo *repository.UserRepository,
	progress *ProgressService,
	achievement *AchievementService,
	db *gorm.DB,
) *QuizService {
	return &QuizService{
		QuizRepo:    quizRepo,
		AttemptRepo: attemptRepo,
		ModuleRepo:  moduleRepo,
		UserRepo:    userRepo,
		Progress:    progress,
		Achievement: achievement,
		DB:          db,
	}
}

// SubmittedAnswer 提交中的单题作答，题目按索引给出
type SubmittedAnswer struct {
	QuestionIndex int `json:"questionIndex" binding:"min=0"`
	UserAnswer    int `json:"userAnswer" binding:"min=0"`
	TimeSpent     int `json:"timeSpent" binding:"min=0"`
}

type QuizSubmissionRequest struct {
	Answers []SubmittedAnswer `json:"answers" binding:"required,dive"`
}

// SubmitQuiz 给一次测验提交评分并落库。
// 尝试次数由服务端按历史记录计数，不信任客户端；
// 首次满分封卷，之后的提交调整分封顶 85。
func (s *QuizService) SubmitQuiz(userID, quizID uint, req QuizSubmissionRequest) (*model.QuizAttempt, error) {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		return nil, err
	}

	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		return nil, err
	}
	if len(quiz.Questions) == 0 {
		return nil, util.ErrQuizNotFound
	}
	if _, err := s.ModuleRepo.FindByID(quiz.ModuleID); err != nil {
		return nil, err
	}

	if err := validateAnswers(quiz, req.Answers); err != nil {
		return nil, err
	}

	attemptNumber, err := s.nextAttemptNumber(userID, quiz)
	if err != nil {
		return nil, err
	}

	correct := 0
	timeSpent := 0
	answers := make([]model.AttemptAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		q := quiz.Questions[a.QuestionIndex]
		isCorrect := a.UserAnswer == q.CorrectAnswer
		if isCorrect {
			correct++
		}
		timeSpent += a.TimeSpent
		answers = append(answers, model.AttemptAnswer{
			QuestionIndex: a.QuestionIndex,
			UserAnswer:    a.UserAnswer,
			IsCorrect:     isCorrect,
			TimeSpent:     a.TimeSpent,
		})
	}

	rawScore := rawScorePercent(correct, len(quiz.Questions))
	adjustedScore := capRetryScore(rawScore, attemptNumber)
	passed := adjustedScore >= quiz.PassingScore

	attempt := &model.QuizAttempt{
		UserID:        userID,
		QuizID:        quizID,
		ModuleID:      quiz.ModuleID,
		AttemptNumber: attemptNumber,
		Answers:       answers,
		Score:         rawScore,
		AdjustedScore: adjustedScore,
		PointsEarned:  adjustedScore / util.PointsPerDecile,
		Passed:        passed,
		TimeSpent:     timeSpent,
		Status:        model.AttemptCompleted,
		CompletedAt:   time.Now(),
	}

	// 记录不可变，从不回写旧尝试；重复编号由唯一索引兜底
	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, err
	}

	monitoring.QuizSubmissions.WithLabelValues(strconv.FormatBool(passed)).Inc()

	// 提交成功后驱动进度汇总与成就检查
	if err := s.Progress.ApplyProgressEvent(userID, quiz.ModuleID, QuizCompleted{
		QuizID: quizID,
		Score:  adjustedScore,
		Passed: passed,
	}); err != nil {
		return nil, err
	}
	s.Achievement.CheckQuizMilestones(userID, attempt)

	return attempt, nil
}

// validateAnswers 逐题校验作答：题目索引、选项索引都要在范围内，
// 且每题至多作答一次。答对数因此不可能超过题目数，
// 原始分恒落在 [0,100]
func validateAnswers(quiz *model.Quiz, answers []SubmittedAnswer) error {
	if len(answers) == 0 {
		return util.ErrEmptyAnswers
	}
	seen := make(map[int]bool, len(answers))
	for _, a := range answers {
		if a.QuestionIndex < 0 || a.QuestionIndex >= len(quiz.Questions) {
			return util.ErrAnswerOutOfRange
		}
		if seen[a.QuestionIndex] {
			return util.ErrDuplicateAnswer
		}
		seen[a.QuestionIndex] = true
		if a.UserAnswer < 0 || a.UserAnswer >= len(quiz.Questions[a.QuestionIndex].Options) {
			return util.ErrOptionOutOfRange
		}
	}
	return nil
}

// nextAttemptNumber 计算服务端尝试编号并执行重考规则：
// 首次满分后封卷；配置了次数上限时超限拒绝。
func (s *QuizService) nextAttemptNumber(userID uint, quiz *model.Quiz) (int, error) {
	count, err := s.AttemptRepo.CountByUserAndQuiz(userID, quiz.ID)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		first, err := s.AttemptRepo.FindFirstAttempt(userID, quiz.ID)
		if err != nil {
			return 0, err
		}
		if reattemptBlocked(first) {
			return 0, util.ErrQuizClosed
		}
		if quiz.AttemptLimit > 0 && int(count) >= quiz.AttemptLimit {
			return 0, util.ErrAttemptLimitReached
		}
	}

	return int(count) + 1, nil
}

// reattemptBlocked 仅当首次提交即满分时关闭测验
func reattemptBlocked(first *model.QuizAttempt) bool {
	return first != nil && first.AttemptNumber == 1 && first.Score == 100
}

// rawScorePercent 按四舍五入（0.5 进位）折算百分制原始分
func rawScorePercent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return (correct*100*2 + total) / (total * 2)
}

// capRetryScore 非首次提交的调整分封顶 85，首次不封顶
func capRetryScore(rawScore, attemptNumber int) int {
	if attemptNumber > 1 && rawScore > util.RetryScoreCap {
		return util.RetryScoreCap
	}
	return rawScore
}

func (s *QuizService) GetAttemptHistory(userID, quizID uint) ([]model.QuizAttempt, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		return nil, err
	}
	return s.AttemptRepo.ListByUserAndQuiz(userID, quizID)
}

// CanAttempt 查询当前用户是否还能提交该测验
func (s *QuizService) CanAttempt(userID, quizID uint) (bool, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		return false, err
	}
	_, err = s.nextAttemptNumber(userID, quiz)
	switch err {
	case nil:
		return true, nil
	case util.ErrQuizClosed, util.ErrAttemptLimitReached:
		return false, nil
	default:
		return false, err
	}
}
