package util

import (
	"errors"
	"net/http"

	"english_edu_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

func ServiceUnavailable(c *gin.Context, message string) {
	Error(c, http.StatusServiceUnavailable, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// FromError 把服务层哨兵错误映射为 HTTP 状态码，
// 服务层不吞错误，用户可见文案在这一层决定
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyAnswers),
		errors.Is(err, ErrAnswerOutOfRange),
		errors.Is(err, ErrOptionOutOfRange),
		errors.Is(err, ErrDuplicateAnswer),
		errors.Is(err, ErrInvalidVideoExt):
		BadRequest(c, err.Error())
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrModuleNotFound),
		errors.Is(err, ErrTopicNotFound),
		errors.Is(err, ErrVideoNotFound),
		errors.Is(err, ErrQuizNotFound),
		errors.Is(err, ErrProgressNotFound):
		Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrQuizClosed),
		errors.Is(err, ErrAttemptLimitReached),
		errors.Is(err, ErrDuplicateAttempt),
		errors.Is(err, ErrConcurrentUpdate):
		Conflict(c, err.Error())
	case errors.Is(err, ErrServiceUnavailable):
		ServiceUnavailable(c, err.Error())
	case errors.Is(err, ErrPermissionDenied):
		Forbidden(c)
	default:
		LogInternalError(c, err)
	}
}
