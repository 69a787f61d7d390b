package controller

import (
	"strconv"

	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ContentController 教师/管理员侧的内容管理接口
type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// CreateModule godoc
// @Summary 创建模块
// @Tags 内容管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ModuleRequest true "模块信息"
// @Success 201 {object} util.Response{data=model.Module}
// @Router /admin/modules [post]
func (c *ContentController) CreateModule(ctx *gin.Context) {
	var req service.ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.ContentService.CreateModule(&req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, module)
}

// UpdateModule godoc
// @Summary 更新模块
// @Tags 内容管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "模块ID"
// @Param body body service.ModuleRequest true "模块信息"
// @Success 200 {object} util.Response{data=model.Module}
// @Failure 404 {object} util.Response "模块不存在"
// @Router /admin/modules/{id} [put]
func (c *ContentController) UpdateModule(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	var req service.ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.ContentService.UpdateModule(id, &req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// DeleteModule godoc
// @Summary 删除模块
// @Tags 内容管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "模块ID"
// @Success 200 {object} util.Response
// @Router /admin/modules/{id} [delete]
func (c *ContentController) DeleteModule(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid module id")
		return
	}
	if err := c.ContentService.DeleteModule(id); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreateTopic godoc
// @Summary 创建主题
// @Description 主题创建后自动同步所属模块的主题总数
// @Tags 内容管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.TopicRequest true "主题信息"
// @Success 201 {object} util.Response{data=model.Topic}
// @Router /admin/topics [post]
func (c *ContentController) CreateTopic(ctx *gin.Context) {
	var req service.TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topic, err := c.ContentService.CreateTopic(&req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, topic)
}

// UpdateTopic godoc
// @Summary 更新主题
// @Tags 内容管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "主题ID"
// @Param body body service.TopicRequest true "主题信息"
// @Success 200 {object} util.Response{data=model.Topic}
// @Router /admin/topics/{id} [put]
func (c *ContentController) UpdateTopic(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid topic id")
		return
	}

	var req service.TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topic, err := c.ContentService.UpdateTopic(id, &req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, topic)
}

// DeleteTopic godoc
// @Summary 删除主题
// @Tags 内容管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "主题ID"
// @Success 200 {object} util.Response
// @Router /admin/topics/{id} [delete]
func (c *ContentController) DeleteTopic(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid topic id")
		return
	}
	if err := c.ContentService.DeleteTopic(id); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AddNote godoc
// @Summary 添加主题笔记
// @Tags 内容管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.TopicNoteRequest true "笔记内容"
// @Success 201 {object} util.Response{data=model.TopicNote}
// @Router /admin/notes [post]
func (c *ContentController) AddNote(ctx *gin.Context) {
	var req service.TopicNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	note, err := c.ContentService.AddNote(&req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, note)
}

// DeleteNote godoc
// @Summary 删除主题笔记
// @Tags 内容管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "笔记ID"
// @Success 200 {object} util.Response
// @Router /admin/notes/{id} [delete]
func (c *ContentController) DeleteNote(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid note id")
		return
	}
	if err := c.ContentService.DeleteNote(id); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AddLink godoc
// @Summary 添加主题外链
// @Tags 内容管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.TopicLinkRequest true "链接内容"
// @Success 201 {object} util.Response{data=model.TopicLink}
// @Router /admin/links [post]
func (c *ContentController) AddLink(ctx *gin.Context) {
	var req service.TopicLinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	link, err := c.ContentService.AddLink(&req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, link)
}

// DeleteLink godoc
// @Summary 删除主题外链
// @Tags 内容管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "链接ID"
// @Success 200 {object} util.Response
// @Router /admin/links/{id} [delete]
func (c *ContentController) DeleteLink(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid link id")
		return
	}
	if err := c.ContentService.DeleteLink(id); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreateQuiz godoc
// @Summary 创建测验
// @Description 题目整体随测验提交，情景题必须携带情景描述
// @Tags 内容管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.QuizRequest true "测验与题目"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response "题目不合法"
// @Router /admin/quizzes [post]
func (c *ContentController) CreateQuiz(ctx *gin.Context) {
	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.ContentService.CreateQuiz(&req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// UpdateQuiz godoc
// @Summary 更新测验基本信息
// @Tags 内容管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Param body body service.QuizRequest true "测验信息"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Router /admin/quizzes/{id} [put]
func (c *ContentController) UpdateQuiz(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.ContentService.UpdateQuiz(id, &req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// DeleteQuiz godoc
// @Summary 删除测验
// @Tags 内容管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /admin/quizzes/{id} [delete]
func (c *ContentController) DeleteQuiz(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}
	if err := c.ContentService.DeleteQuiz(id); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadVideo godoc
// @Summary 上传教学视频
// @Description multipart 上传，服务端探测时长分辨率并生成缩略图
// @Tags 内容管理
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "视频文件"
// @Param topicId formData int true "主题ID"
// @Param title formData string true "标题"
// @Param description formData string false "描述"
// @Param order formData int false "排序"
// @Success 201 {object} util.Response{data=model.Video}
// @Failure 400 {object} util.Response "文件格式不支持"
// @Router /admin/videos [post]
func (c *ContentController) UploadVideo(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少视频文件")
		return
	}

	topicID, err := util.ParseID(ctx.PostForm("topicId"))
	if err != nil {
		util.BadRequest(ctx, "invalid topic id")
		return
	}
	title := ctx.PostForm("title")
	if title == "" {
		util.BadRequest(ctx, "标题不能为空")
		return
	}
	order, _ := strconv.Atoi(ctx.DefaultPostForm("order", "0"))

	video, err := c.ContentService.UploadVideo(ctx.Request.Context(), file, &service.VideoUploadRequest{
		TopicID:     topicID,
		Title:       title,
		Description: ctx.PostForm("description"),
		Order:       order,
	})
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, video)
}

// DeleteVideo godoc
// @Summary 删除视频
// @Tags 内容管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Success 200 {object} util.Response
// @Router /admin/videos/{id} [delete]
func (c *ContentController) DeleteVideo(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid video id")
		return
	}
	if err := c.ContentService.DeleteVideo(id); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
