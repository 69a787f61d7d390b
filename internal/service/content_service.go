package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"english_edu_backend/internal/config"
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/util"
	"english_edu_backend/pkg/logger"

	"go.uber.org/zap"
)

// ContentService 管理模块、主题、视频与测验内容，教师/管理员侧入口
type ContentService struct {
	ModuleRepo *repository.ModuleRepository
	VideoRepo  *repository.VideoRepository
	QuizRepo   *repository.QuizRepository
	Storage    *StorageService
	Cfg        *config.Config
}

func NewContentService(
	moduleRepo *repository.ModuleRepository,
	videoRepo *repository.VideoRepository,
	quizRepo *repository.QuizRepository,
	storage *StorageService,
	cfg *config.Config,
) *ContentService {
	return &ContentService{
		ModuleRepo: moduleRepo,
		VideoRepo:  videoRepo,
		QuizRepo:   quizRepo,
		Storage:    storage,
		Cfg:        cfg,
	}
}

type ModuleRequest struct {
	Title       string            `json:"title" binding:"required,max=255"`
	Description string            `json:"description"`
	Level       model.ModuleLevel `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	CoverURL    string            `json:"coverUrl" binding:"omitempty,max=255"`
	Order       int               `json:"order" binding:"gte=0"`
	IsPublished bool              `json:"isPublished"`
}

func (s *ContentService) CreateModule(req *ModuleRequest) (*model.Module, error) {
	module := &model.Module{
		Title:       req.Title,
		Description: req.Description,
		Level:       req.Level,
		CoverURL:    req.CoverURL,
		Order:       req.Order,
		IsPublished: req.IsPublished,
	}
	if module.Level == "" {
		module.Level = model.Beginner
	}
	if err := s.ModuleRepo.Create(module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *ContentService) UpdateModule(id uint, req *ModuleRequest) (*model.Module, error) {
	module, err := s.ModuleRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	module.Title = req.Title
	module.Description = req.Description
	if req.Level != "" {
		module.Level = req.Level
	}
	module.CoverURL = req.CoverURL
	module.Order = req.Order
	module.IsPublished = req.IsPublished
	if err := s.ModuleRepo.Update(module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *ContentService) DeleteModule(id uint) error {
	if _, err := s.ModuleRepo.FindByID(id); err != nil {
		return err
	}
	return s.ModuleRepo.Delete(id)
}

func (s *ContentService) GetModule(id uint) (*model.Module, error) {
	return s.ModuleRepo.FindByIDWithTopics(id)
}

func (s *ContentService) ListModules(publishedOnly bool) ([]model.Module, error) {
	return s.ModuleRepo.List(publishedOnly)
}

type TopicRequest struct {
	ModuleID    uint   `json:"moduleId" binding:"required"`
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Order       int    `json:"order" binding:"gte=0"`
}

// CreateTopic 新建主题并同步所属模块的主题总数
func (s *ContentService) CreateTopic(req *TopicRequest) (*model.Topic, error) {
	if _, err := s.ModuleRepo.FindByID(req.ModuleID); err != nil {
		return nil, err
	}
	topic := &model.Topic{
		ModuleID:    req.ModuleID,
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
	}
	if err := s.ModuleRepo.CreateTopic(topic); err != nil {
		return nil, err
	}
	if err := s.ModuleRepo.SyncTotalTopics(req.ModuleID); err != nil {
		logger.Log.Warn("同步模块主题总数失败", zap.Uint("module_id", req.ModuleID), zap.Error(err))
	}
	return topic, nil
}

func (s *ContentService) UpdateTopic(id uint, req *TopicRequest) (*model.Topic, error) {
	topic, err := s.ModuleRepo.FindTopicByID(id)
	if err != nil {
		return nil, err
	}
	topic.Title = req.Title
	topic.Description = req.Description
	topic.Order = req.Order
	if err := s.ModuleRepo.UpdateTopic(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *ContentService) DeleteTopic(id uint) error {
	topic, err := s.ModuleRepo.FindTopicByID(id)
	if err != nil {
		return err
	}
	if err := s.ModuleRepo.DeleteTopic(id); err != nil {
		return err
	}
	if err := s.ModuleRepo.SyncTotalTopics(topic.ModuleID); err != nil {
		logger.Log.Warn("同步模块主题总数失败", zap.Uint("module_id", topic.ModuleID), zap.Error(err))
	}
	return nil
}

func (s *ContentService) GetTopic(id uint) (*model.Topic, error) {
	return s.ModuleRepo.FindTopicByID(id)
}

type TopicNoteRequest struct {
	TopicID uint   `json:"topicId" binding:"required"`
	Title   string `json:"title" binding:"max=255"`
	Content string `json:"content" binding:"required"`
	Order   int    `json:"order" binding:"gte=0"`
}

func (s *ContentService) AddNote(req *TopicNoteRequest) (*model.TopicNote, error) {
	if _, err := s.ModuleRepo.FindTopicByID(req.TopicID); err != nil {
		return nil, err
	}
	note := &model.TopicNote{
		TopicID: req.TopicID,
		Title:   req.Title,
		Content: req.Content,
		Order:   req.Order,
	}
	if err := s.ModuleRepo.CreateNote(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *ContentService) DeleteNote(id uint) error {
	return s.ModuleRepo.DeleteNote(id)
}

type TopicLinkRequest struct {
	TopicID uint   `json:"topicId" binding:"required"`
	Title   string `json:"title" binding:"max=255"`
	URL     string `json:"url" binding:"required,url,max=512"`
	Order   int    `json:"order" binding:"gte=0"`
}

func (s *ContentService) AddLink(req *TopicLinkRequest) (*model.TopicLink, error) {
	if _, err := s.ModuleRepo.FindTopicByID(req.TopicID); err != nil {
		return nil, err
	}
	link := &model.TopicLink{
		TopicID: req.TopicID,
		Title:   req.Title,
		URL:     req.URL,
		Order:   req.Order,
	}
	if err := s.ModuleRepo.CreateLink(link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *ContentService) DeleteLink(id uint) error {
	return s.ModuleRepo.DeleteLink(id)
}

type QuestionRequest struct {
	Type          model.QuestionType `json:"type" binding:"omitempty,oneof=basic scenario"`
	Prompt        string             `json:"prompt" binding:"required"`
	Scenario      string             `json:"scenario"`
	Options       []string           `json:"options" binding:"required,min=2,dive,required"`
	CorrectAnswer int                `json:"correctAnswer" binding:"gte=0"`
	Explanation   string             `json:"explanation"`
	Order         int                `json:"order" binding:"gte=0"`
}

type QuizRequest struct {
	TopicID      uint              `json:"topicId" binding:"required"`
	Title        string            `json:"title" binding:"required,max=255"`
	Description  string            `json:"description"`
	PassingScore int               `json:"passingScore" binding:"gte=0,lte=100"`
	AttemptLimit int               `json:"attemptLimit" binding:"gte=0"`
	IsPublished  bool              `json:"isPublished"`
	Questions    []QuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

// validateQuestions 校验 binding 标签覆盖不了的题目约束
func validateQuestions(questions []QuestionRequest) error {
	for _, q := range questions {
		if q.CorrectAnswer >= len(q.Options) {
			return util.ErrOptionOutOfRange
		}
		if q.Type == model.QuestionScenario && q.Scenario == "" {
			return fmt.Errorf("情景题必须携带情景描述: %s", q.Prompt)
		}
	}
	return nil
}

func (s *ContentService) CreateQuiz(req *QuizRequest) (*model.Quiz, error) {
	topic, err := s.ModuleRepo.FindTopicByID(req.TopicID)
	if err != nil {
		return nil, err
	}
	if err := validateQuestions(req.Questions); err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		TopicID:      req.TopicID,
		ModuleID:     topic.ModuleID,
		Title:        req.Title,
		Description:  req.Description,
		PassingScore: req.PassingScore,
		AttemptLimit: req.AttemptLimit,
		IsPublished:  req.IsPublished,
	}
	if quiz.PassingScore == 0 {
		quiz.PassingScore = 70
	}
	for i, q := range req.Questions {
		qType := q.Type
		if qType == "" {
			qType = model.QuestionBasic
		}
		order := q.Order
		if order == 0 {
			order = i
		}
		quiz.Questions = append(quiz.Questions, model.QuizQuestion{
			Type:          qType,
			Prompt:        q.Prompt,
			Scenario:      q.Scenario,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Order:         order,
		})
	}
	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *ContentService) UpdateQuiz(id uint, req *QuizRequest) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	quiz.Title = req.Title
	quiz.Description = req.Description
	quiz.PassingScore = req.PassingScore
	quiz.AttemptLimit = req.AttemptLimit
	quiz.IsPublished = req.IsPublished
	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *ContentService) DeleteQuiz(id uint) error {
	if _, err := s.QuizRepo.FindByID(id); err != nil {
		return err
	}
	return s.QuizRepo.Delete(id)
}

func (s *ContentService) GetQuiz(id uint) (*model.Quiz, error) {
	return s.QuizRepo.FindByID(id)
}

func (s *ContentService) ListQuizzesByTopic(topicID uint) ([]model.Quiz, error) {
	return s.QuizRepo.FindByTopic(topicID)
}

type VideoUploadRequest struct {
	TopicID     uint
	Title       string
	Description string
	Order       int
}

// UploadVideo 接收视频文件：扩展名与文件头双重校验，先落临时目录，
// 用 ffmpeg 探测时长分辨率并截取缩略图，再上传到对象存储
func (s *ContentService) UploadVideo(ctx context.Context, file *multipart.FileHeader, req *VideoUploadRequest) (*model.Video, error) {
	topic, err := s.ModuleRepo.FindTopicByID(req.TopicID)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	valid := false
	for _, e := range util.AllowedVideoExtensions {
		if ext == e {
			valid = true
			break
		}
	}
	if !valid {
		return nil, util.ErrInvalidVideoExt
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// 嗅探文件头，防止伪造扩展名
	if _, err := util.ValidateMimeType(src, []string{util.MimeVideo, util.MimeOctetStream}); err != nil {
		return nil, util.ErrInvalidVideoExt
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	tempDir := filepath.Join(s.Cfg.Storage.LocalPath, "temp")
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, err
	}
	videoPath := filepath.Join(tempDir, fmt.Sprintf("upload_%d%s", time.Now().UnixNano(), ext))
	defer os.Remove(videoPath)

	dst, err := os.Create(videoPath)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return nil, err
	}
	dst.Close()

	// 对象键带 UUID，重名文件互不覆盖
	stamp := model.GenerateUUID()[:8] + "-" + time.Now().Format("20060102150405")
	safeName := strings.ReplaceAll(file.Filename, " ", "-")
	videoKey := "videos/" + stamp + "-" + safeName

	videoURL, err := s.Storage.UploadFile(ctx, videoKey, videoPath, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	video := &model.Video{
		TopicID:     req.TopicID,
		ModuleID:    topic.ModuleID,
		Title:       req.Title,
		Description: req.Description,
		URL:         videoURL,
		Order:       req.Order,
	}

	if info, err := util.GetVideoInfo(videoPath); err != nil {
		logger.Log.Warn("探测视频信息失败", zap.String("file", file.Filename), zap.Error(err))
	} else {
		video.DurationSeconds = int(info.Duration)
		video.Width = info.Width
		video.Height = info.Height
	}

	video.ThumbnailURL = s.makeThumbnail(ctx, videoPath, stamp, safeName, ext)

	if err := s.VideoRepo.Create(video); err != nil {
		return nil, err
	}
	return video, nil
}

// makeThumbnail 截取第 3 秒画面作为封面，失败时退回默认封面
func (s *ContentService) makeThumbnail(ctx context.Context, videoPath, stamp, safeName, ext string) string {
	thumbKey := "thumbnails/" + stamp + "-" + strings.TrimSuffix(safeName, ext) + ".jpg"
	thumbDir := filepath.Join(s.Cfg.Storage.LocalPath, "thumbnails")
	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		return s.Storage.GetURL("thumbnails/default-video-thumbnail.jpg")
	}
	thumbPath := filepath.Join(thumbDir, filepath.Base(thumbKey))
	defer os.Remove(thumbPath)

	if err := util.GenerateThumbnail(videoPath, thumbPath, "3"); err != nil {
		logger.Log.Error("生成缩略图失败", zap.Error(err))
		return s.Storage.GetURL("thumbnails/default-video-thumbnail.jpg")
	}
	url, err := s.Storage.UploadFile(ctx, thumbKey, thumbPath, "image/jpeg")
	if err != nil {
		logger.Log.Error("上传缩略图失败", zap.Error(err))
		return s.Storage.GetURL("thumbnails/default-video-thumbnail.jpg")
	}
	return url
}

func (s *ContentService) GetVideo(id uint) (*model.Video, error) {
	return s.VideoRepo.FindByID(id)
}

func (s *ContentService) ListVideosByTopic(topicID uint) ([]model.Video, error) {
	return s.VideoRepo.FindByTopic(topicID)
}

func (s *ContentService) DeleteVideo(id uint) error {
	if _, err := s.VideoRepo.FindByID(id); err != nil {
		return err
	}
	return s.VideoRepo.Delete(id)
}
