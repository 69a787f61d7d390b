package controller

import (
	"strconv"

	"english_edu_backend/internal/model"
	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// GetProgress godoc
// @Summary 模块进度
// @Description 返回当前用户在模块下的进度文档，从未学习过则按需新建
// @Tags 进度
// @Produce json
// @Security BearerAuth
// @Param moduleId path int true "模块ID"
// @Success 200 {object} util.Response{data=model.UserProgress}
// @Router /progress/{moduleId} [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	moduleID, err := util.ParseID(ctx.Param("moduleId"))
	if err != nil {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	progress, err := c.ProgressService.GetOrCreate(claims.UserID, moduleID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

type ProgressUpdateRequest struct {
	Percentage *int `json:"percentage" binding:"omitempty,gte=0,lte=100"`
	Points     int  `json:"points"`
	TimeSpent  int  `json:"timeSpent" binding:"gte=0"`
}

// UpdateProgress godoc
// @Summary 合并进度字段
// @Description percentage 覆盖写，points/timeSpent 增量累加
// @Tags 进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param moduleId path int true "模块ID"
// @Param body body ProgressUpdateRequest true "进度增量"
// @Success 200 {object} util.Response{data=model.UserProgress}
// @Failure 409 {object} util.Response "并发冲突重试耗尽"
// @Router /progress/{moduleId} [patch]
func (c *ProgressController) UpdateProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	moduleID, err := util.ParseID(ctx.Param("moduleId"))
	if err != nil {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	var req ProgressUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if _, err := c.ProgressService.GetOrCreate(claims.UserID, moduleID); err != nil {
		util.FromError(ctx, err)
		return
	}
	err = c.ProgressService.UpdateProgress(claims.UserID, moduleID, model.ProgressUpdate{
		Percentage: req.Percentage,
		Points:     req.Points,
		TimeSpent:  req.TimeSpent,
	})
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	progress, err := c.ProgressService.GetProgress(claims.UserID, moduleID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

type TopicCompletedRequest struct {
	TopicID    uint   `json:"topicId" binding:"required"`
	TopicTitle string `json:"topicTitle" binding:"max=255"`
	Score      int    `json:"score" binding:"gte=0,lte=100"`
}

// CompleteTopic godoc
// @Summary 标记主题完成
// @Description 幂等：重复完成同一主题只会刷新最高分，不会重复计数
// @Tags 进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param moduleId path int true "模块ID"
// @Param body body TopicCompletedRequest true "主题完成信息"
// @Success 200 {object} util.Response{data=model.UserProgress}
// @Router /progress/{moduleId}/topics [post]
func (c *ProgressController) CompleteTopic(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	moduleID, err := util.ParseID(ctx.Param("moduleId"))
	if err != nil {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	var req TopicCompletedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err = c.ProgressService.ApplyProgressEvent(claims.UserID, moduleID, service.TopicCompleted{
		TopicID: req.TopicID,
		Title:   req.TopicTitle,
		Score:   req.Score,
	})
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	progress, err := c.ProgressService.GetProgress(claims.UserID, moduleID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

type VideoWatchedRequest struct {
	VideoID   uint `json:"videoId" binding:"required"`
	WatchTime int  `json:"watchTime" binding:"gte=0"`
}

// WatchVideo godoc
// @Summary 上报视频观看时长
// @Description 时长累加，累计观看超过视频 90% 标记为已看完
// @Tags 进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param moduleId path int true "模块ID"
// @Param body body VideoWatchedRequest true "观看上报"
// @Success 200 {object} util.Response{data=model.UserProgress}
// @Router /progress/{moduleId}/videos [post]
func (c *ProgressController) WatchVideo(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	moduleID, err := util.ParseID(ctx.Param("moduleId"))
	if err != nil {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	var req VideoWatchedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err = c.ProgressService.ApplyProgressEvent(claims.UserID, moduleID, service.VideoWatched{
		VideoID:   req.VideoID,
		WatchTime: req.WatchTime,
	})
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	progress, err := c.ProgressService.GetProgress(claims.UserID, moduleID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// Summary godoc
// @Summary 学习总览
// @Description 当前用户所有模块的进度汇总
// @Tags 进度
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.ProgressSummary}
// @Router /progress/summary [get]
func (c *ProgressController) Summary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.ProgressService.GetSummary(claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// Leaderboard godoc
// @Summary 模块积分榜
// @Description 优先读 Redis 榜单，缓存不可用时回退数据库
// @Tags 进度
// @Produce json
// @Security BearerAuth
// @Param moduleId path int true "模块ID"
// @Param limit query int false "条数，默认 10"
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry}
// @Router /progress/{moduleId}/leaderboard [get]
func (c *ProgressController) Leaderboard(ctx *gin.Context) {
	moduleID, err := util.ParseID(ctx.Param("moduleId"))
	if err != nil {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	entries, err := c.ProgressService.GetLeaderboard(moduleID, limit)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// Reset godoc
// @Summary 重置模块进度
// @Description 删除进度文档并移出榜单，不存在时返回 404
// @Tags 进度
// @Produce json
// @Security BearerAuth
// @Param moduleId path int true "模块ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "进度不存在"
// @Router /progress/{moduleId} [delete]
func (c *ProgressController) Reset(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	moduleID, err := util.ParseID(ctx.Param("moduleId"))
	if err != nil {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	if err := c.ProgressService.ResetProgress(claims.UserID, moduleID); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
