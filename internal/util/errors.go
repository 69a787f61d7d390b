package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")

	ErrModuleNotFound   = errors.New("module not found")
	ErrTopicNotFound    = errors.New("topic not found")
	ErrVideoNotFound    = errors.New("video not found")
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrProgressNotFound = errors.New("progress record not found")

	// 文件上传校验
	ErrInvalidVideoExt = errors.New("不支持的视频格式")

	// 测验提交校验
	ErrEmptyAnswers     = errors.New("answers must not be empty")
	ErrAnswerOutOfRange = errors.New("question index out of range")
	ErrOptionOutOfRange = errors.New("answer option out of range")
	ErrDuplicateAnswer  = errors.New("duplicate answer for question")

	// 重考规则
	ErrQuizClosed          = errors.New("quiz closed: perfect score on first attempt")
	ErrAttemptLimitReached = errors.New("attempt limit reached")

	// 存储层冲突与不可用
	ErrDuplicateAttempt   = errors.New("duplicate attempt number")
	ErrConcurrentUpdate   = errors.New("progress update conflict, retries exhausted")
	ErrServiceUnavailable = errors.New("storage temporarily unavailable")
)
