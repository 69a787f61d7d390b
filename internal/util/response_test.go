package util

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFromErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"空答案", ErrEmptyAnswers, http.StatusBadRequest},
		{"题目索引越界", ErrAnswerOutOfRange, http.StatusBadRequest},
		{"选项越界", ErrOptionOutOfRange, http.StatusBadRequest},
		{"重复作答", ErrDuplicateAnswer, http.StatusBadRequest},
		{"视频格式不支持", ErrInvalidVideoExt, http.StatusBadRequest},
		{"用户不存在", ErrUserNotFound, http.StatusNotFound},
		{"模块不存在", ErrModuleNotFound, http.StatusNotFound},
		{"测验不存在", ErrQuizNotFound, http.StatusNotFound},
		{"进度不存在", ErrProgressNotFound, http.StatusNotFound},
		{"测验封卷", ErrQuizClosed, http.StatusConflict},
		{"次数用尽", ErrAttemptLimitReached, http.StatusConflict},
		{"重复提交编号", ErrDuplicateAttempt, http.StatusConflict},
		{"并发更新冲突", ErrConcurrentUpdate, http.StatusConflict},
		{"存储不可用", ErrServiceUnavailable, http.StatusServiceUnavailable},
		{"无权限", ErrPermissionDenied, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromError(c, tt.err)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestSuccessEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, gin.H{"hello": "world"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":200`)
	assert.Contains(t, w.Body.String(), `"hello":"world"`)
}
