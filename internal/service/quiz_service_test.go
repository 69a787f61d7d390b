package service

import (
	"testing"

	"english_edu_backend/internal/model"
	"english_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestRawScorePercent(t *testing.T) {
	tests := []struct {
		name    string
		correct int
		total   int
		want    int
	}{
		{"全对", 5, 5, 100},
		{"全错", 0, 5, 0},
		{"五分之四", 4, 5, 80},
		{"三分之一向下", 1, 3, 33},
		{"三分之二进位", 2, 3, 67},
		{"六分之一", 1, 6, 17},
		{"七分之三", 3, 7, 43},
		{"八分之一恰为十二点五", 1, 8, 13},
		{"零题", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rawScorePercent(tt.correct, tt.total))
		})
	}
}

func TestCapRetryScore(t *testing.T) {
	tests := []struct {
		name          string
		raw           int
		attemptNumber int
		want          int
	}{
		{"首次满分不封顶", 100, 1, 100},
		{"第二次满分封顶85", 100, 2, 85},
		{"第二次恰好85不变", 85, 2, 85},
		{"第二次低于85不变", 60, 2, 60},
		{"第三次90封顶", 90, 3, 85},
		{"首次低分不变", 40, 1, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, capRetryScore(tt.raw, tt.attemptNumber))
		})
	}
}

func TestReattemptBlocked(t *testing.T) {
	t.Run("无历史记录不封卷", func(t *testing.T) {
		assert.False(t, reattemptBlocked(nil))
	})

	t.Run("首次满分封卷", func(t *testing.T) {
		first := &model.QuizAttempt{AttemptNumber: 1, Score: 100}
		assert.True(t, reattemptBlocked(first))
	})

	t.Run("首次非满分不封卷", func(t *testing.T) {
		first := &model.QuizAttempt{AttemptNumber: 1, Score: 99}
		assert.False(t, reattemptBlocked(first))
	})

	t.Run("后续满分不回溯封卷", func(t *testing.T) {
		// 只有第一次提交满分才关卷，第二次满分（已被封顶前的原始分）不算
		later := &model.QuizAttempt{AttemptNumber: 2, Score: 100}
		assert.False(t, reattemptBlocked(later))
	})
}

func TestScoreAdjustmentFlow(t *testing.T) {
	// 4/5 首次提交：原始 80 分，不封顶
	raw := rawScorePercent(4, 5)
	assert.Equal(t, 80, raw)
	assert.Equal(t, 80, capRetryScore(raw, 1))

	// 5/5 第二次提交：原始 100 分，调整后 85
	raw = rawScorePercent(5, 5)
	assert.Equal(t, 100, raw)
	assert.Equal(t, 85, capRetryScore(raw, 2))
}

func TestValidateAnswers(t *testing.T) {
	quiz := &model.Quiz{
		Questions: []model.QuizQuestion{
			{Options: []string{"a", "b", "c"}, CorrectAnswer: 0},
			{Options: []string{"a", "b", "c"}, CorrectAnswer: 1},
			{Options: []string{"a", "b"}, CorrectAnswer: 0},
		},
	}

	t.Run("逐题各答一次通过", func(t *testing.T) {
		err := validateAnswers(quiz, []SubmittedAnswer{
			{QuestionIndex: 0, UserAnswer: 0},
			{QuestionIndex: 2, UserAnswer: 1},
			{QuestionIndex: 1, UserAnswer: 1},
		})
		assert.NoError(t, err)
	})

	t.Run("空作答", func(t *testing.T) {
		assert.ErrorIs(t, validateAnswers(quiz, nil), util.ErrEmptyAnswers)
	})

	t.Run("题目索引越界", func(t *testing.T) {
		err := validateAnswers(quiz, []SubmittedAnswer{{QuestionIndex: 3, UserAnswer: 0}})
		assert.ErrorIs(t, err, util.ErrAnswerOutOfRange)
	})

	t.Run("选项索引越界", func(t *testing.T) {
		err := validateAnswers(quiz, []SubmittedAnswer{{QuestionIndex: 2, UserAnswer: 2}})
		assert.ErrorIs(t, err, util.ErrOptionOutOfRange)
	})

	t.Run("同一题重复作答", func(t *testing.T) {
		// 三题的卷子重复提交六条正确作答，若不拒绝会把答对数
		// 灌到 6，原始分冲到 200 并白拿通过与积分
		dup := make([]SubmittedAnswer, 0, 6)
		for i := 0; i < 6; i++ {
			q := i % len(quiz.Questions)
			dup = append(dup, SubmittedAnswer{QuestionIndex: q, UserAnswer: quiz.Questions[q].CorrectAnswer})
		}
		assert.ErrorIs(t, validateAnswers(quiz, dup), util.ErrDuplicateAnswer)
	})

	t.Run("作答数多于题目数", func(t *testing.T) {
		// 抽屉原理：条数超过题目数必有重复索引
		over := []SubmittedAnswer{
			{QuestionIndex: 0, UserAnswer: 0},
			{QuestionIndex: 1, UserAnswer: 0},
			{QuestionIndex: 2, UserAnswer: 0},
			{QuestionIndex: 0, UserAnswer: 1},
		}
		assert.ErrorIs(t, validateAnswers(quiz, over), util.ErrDuplicateAnswer)
	})
}
