package controller

import (
	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MotivationController struct {
	MotivationService *service.MotivationService
}

func NewMotivationController(motivationService *service.MotivationService) *MotivationController {
	return &MotivationController{MotivationService: motivationService}
}

// Current godoc
// @Summary 当前激励短句
// @Description 学习首页展示，每 12 小时轮换一次
// @Tags 激励短句
// @Produce json
// @Success 200 {object} util.Response{data=object}
// @Router /motivation [get]
func (c *MotivationController) Current(ctx *gin.Context) {
	content, err := c.MotivationService.GetCurrentMotivation()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"content": content})
}

// List godoc
// @Summary 所有激励短句
// @Tags 激励短句
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Motivation}
// @Router /admin/motivations [get]
func (c *MotivationController) List(ctx *gin.Context) {
	motivations, err := c.MotivationService.GetAllMotivations()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, motivations)
}

type MotivationRequest struct {
	Content   string `json:"content" binding:"required"`
	IsEnabled bool   `json:"isEnabled"`
}

// Create godoc
// @Summary 新增激励短句
// @Tags 激励短句
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body MotivationRequest true "短句内容"
// @Success 201 {object} util.Response
// @Router /admin/motivations [post]
func (c *MotivationController) Create(ctx *gin.Context) {
	var req MotivationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.MotivationService.CreateMotivation(req.Content); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, nil)
}

// Update godoc
// @Summary 更新激励短句
// @Tags 激励短句
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "短句ID"
// @Param body body MotivationRequest true "短句内容"
// @Success 200 {object} util.Response
// @Router /admin/motivations/{id} [put]
func (c *MotivationController) Update(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid motivation id")
		return
	}

	var req MotivationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.MotivationService.UpdateMotivation(id, req.Content, req.IsEnabled); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, nil)
}

// Delete godoc
// @Summary 删除激励短句
// @Tags 激励短句
// @Produce json
// @Security BearerAuth
// @Param id path int true "短句ID"
// @Success 200 {object} util.Response
// @Router /admin/motivations/{id} [delete]
func (c *MotivationController) Delete(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid motivation id")
		return
	}
	if err := c.MotivationService.DeleteMotivation(id); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, nil)
}

// Switch godoc
// @Summary 切换当前激励短句
// @Tags 激励短句
// @Produce json
// @Security BearerAuth
// @Param id path int true "短句ID"
// @Success 200 {object} util.Response
// @Router /admin/motivations/{id}/switch [put]
func (c *MotivationController) Switch(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid motivation id")
		return
	}
	if err := c.MotivationService.SwitchToMotivation(id); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, nil)
}
