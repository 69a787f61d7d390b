package controller

import (
	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ModuleController 学员侧的内容浏览接口
type ModuleController struct {
	ContentService *service.ContentService
}

func NewModuleController(contentService *service.ContentService) *ModuleController {
	return &ModuleController{ContentService: contentService}
}

// List godoc
// @Summary 模块列表
// @Description 学员只能看到已发布的模块
// @Tags 模块
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Module}
// @Router /modules [get]
func (c *ModuleController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	publishedOnly := claims == nil || claims.Role == "student"

	modules, err := c.ContentService.ListModules(publishedOnly)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}

// Get godoc
// @Summary 模块详情
// @Description 返回模块与按序排列的主题
// @Tags 模块
// @Produce json
// @Security BearerAuth
// @Param id path int true "模块ID"
// @Success 200 {object} util.Response{data=model.Module}
// @Failure 404 {object} util.Response "模块不存在"
// @Router /modules/{id} [get]
func (c *ModuleController) Get(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	module, err := c.ContentService.GetModule(id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// GetTopic godoc
// @Summary 主题详情
// @Description 返回主题及其视频、笔记与外部链接
// @Tags 模块
// @Produce json
// @Security BearerAuth
// @Param id path int true "主题ID"
// @Success 200 {object} util.Response{data=model.Topic}
// @Failure 404 {object} util.Response "主题不存在"
// @Router /topics/{id} [get]
func (c *ModuleController) GetTopic(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid topic id")
		return
	}

	topic, err := c.ContentService.GetTopic(id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, topic)
}

// TopicVideos godoc
// @Summary 主题下的视频
// @Tags 模块
// @Produce json
// @Security BearerAuth
// @Param id path int true "主题ID"
// @Success 200 {object} util.Response{data=[]model.Video}
// @Router /topics/{id}/videos [get]
func (c *ModuleController) TopicVideos(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid topic id")
		return
	}

	videos, err := c.ContentService.ListVideosByTopic(id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, videos)
}

// TopicQuizzes godoc
// @Summary 主题下的测验
// @Tags 模块
// @Produce json
// @Security BearerAuth
// @Param id path int true "主题ID"
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Router /topics/{id}/quizzes [get]
func (c *ModuleController) TopicQuizzes(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid topic id")
		return
	}

	quizzes, err := c.ContentService.ListQuizzesByTopic(id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}
