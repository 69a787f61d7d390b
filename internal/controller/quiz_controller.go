package controller

import (
	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService    *service.QuizService
	ContentService *service.ContentService
}

func NewQuizController(quizService *service.QuizService, contentService *service.ContentService) *QuizController {
	return &QuizController{
		QuizService:    quizService,
		ContentService: contentService,
	}
}

// GetQuiz godoc
// @Summary 获取测验详情
// @Description 返回测验与题目，不包含正确答案
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response "测验不存在"
// @Router /quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	quiz, err := c.ContentService.GetQuiz(id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// Submit godoc
// @Summary 提交测验答案
// @Description 服务端评分并记录一次不可变的提交；首次满分后封卷，
// @Description 非首次提交的调整分封顶 85
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Param body body service.QuizSubmissionRequest true "作答列表"
// @Success 201 {object} util.Response{data=model.QuizAttempt} "评分结果"
// @Failure 400 {object} util.Response "作答不合法"
// @Failure 404 {object} util.Response "测验不存在"
// @Failure 409 {object} util.Response "测验已封卷或次数用尽"
// @Failure 503 {object} util.Response "存储暂不可用"
// @Router /quizzes/{id}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	var req service.QuizSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.QuizService.SubmitQuiz(claims.UserID, quizID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, attempt)
}

// History godoc
// @Summary 提交历史
// @Description 当前用户在该测验下的全部提交，按次数升序
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response{data=[]model.QuizAttempt}
// @Router /quizzes/{id}/attempts [get]
func (c *QuizController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	attempts, err := c.QuizService.GetAttemptHistory(claims.UserID, quizID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// CanAttempt godoc
// @Summary 是否还能作答
// @Description 首次满分封卷或次数用尽时返回 false
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response{data=object}
// @Router /quizzes/{id}/can-attempt [get]
func (c *QuizController) CanAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	ok, err := c.QuizService.CanAttempt(claims.UserID, quizID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"canAttempt": ok})
}
