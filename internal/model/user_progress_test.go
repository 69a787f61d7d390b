package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestApplyUpdate(t *testing.T) {
	now := time.Now()

	t.Run("百分比越界收敛", func(t *testing.T) {
		p := &UserProgress{Status: ProgressNotStarted}
		p.ApplyUpdate(ProgressUpdate{Percentage: intPtr(150)}, now)
		assert.Equal(t, 100, p.Percentage)
		assert.Equal(t, ProgressCompleted, p.Status)

		p.ApplyUpdate(ProgressUpdate{Percentage: intPtr(-5)}, now)
		assert.Equal(t, 0, p.Percentage)
	})

	t.Run("百分比为零不回退状态", func(t *testing.T) {
		p := &UserProgress{Percentage: 50, Status: ProgressInProgress}
		p.ApplyUpdate(ProgressUpdate{Percentage: intPtr(0)}, now)
		assert.Equal(t, 0, p.Percentage)
		assert.Equal(t, ProgressInProgress, p.Status)
	})

	t.Run("nil百分比不覆盖", func(t *testing.T) {
		p := &UserProgress{Percentage: 42, Status: ProgressInProgress}
		p.ApplyUpdate(ProgressUpdate{Points: 5, TimeSpent: 60}, now)
		assert.Equal(t, 42, p.Percentage)
		assert.Equal(t, 5, p.Points)
		assert.Equal(t, 60, p.TimeSpent)
	})

	t.Run("负增量被丢弃", func(t *testing.T) {
		p := &UserProgress{Points: 10, TimeSpent: 100}
		p.ApplyUpdate(ProgressUpdate{Points: -3, TimeSpent: -50}, now)
		assert.Equal(t, 10, p.Points)
		assert.Equal(t, 100, p.TimeSpent)
	})

	t.Run("每次都刷新活动时间", func(t *testing.T) {
		p := &UserProgress{}
		p.ApplyUpdate(ProgressUpdate{}, now)
		assert.Equal(t, now, p.LastActivity)
	})
}

func TestAddCompletedTopic(t *testing.T) {
	now := time.Now()

	t.Run("重复完成幂等", func(t *testing.T) {
		p := &UserProgress{}
		p.AddCompletedTopic(1, "问候语", 80, 6, now)
		p.AddCompletedTopic(1, "问候语", 70, 6, now.Add(time.Hour))

		require.Len(t, p.CompletedTopics, 1)
		assert.Equal(t, 80, p.CompletedTopics[0].Score, "低分重复完成保留最高分")
		assert.Equal(t, now.Add(time.Hour), p.CompletedTopics[0].CompletedAt)
	})

	t.Run("更高分数覆盖", func(t *testing.T) {
		p := &UserProgress{}
		p.AddCompletedTopic(1, "问候语", 60, 6, now)
		p.AddCompletedTopic(1, "问候语", 95, 6, now)
		assert.Equal(t, 95, p.CompletedTopics[0].Score)
	})

	t.Run("按主题总数计算百分比", func(t *testing.T) {
		p := &UserProgress{}
		p.AddCompletedTopic(1, "a", 80, 6, now)
		assert.Equal(t, 16, p.Percentage) // 1/6 向下取整
		assert.Equal(t, ProgressInProgress, p.Status)

		for i := uint(2); i <= 6; i++ {
			p.AddCompletedTopic(i, "t", 80, 6, now)
		}
		assert.Equal(t, 100, p.Percentage)
		assert.Equal(t, ProgressCompleted, p.Status)
	})

	t.Run("完成数超过总数时封顶", func(t *testing.T) {
		p := &UserProgress{}
		for i := uint(1); i <= 4; i++ {
			p.AddCompletedTopic(i, "t", 80, 3, now)
		}
		assert.Equal(t, 100, p.Percentage)
	})

	t.Run("总数为零不改百分比", func(t *testing.T) {
		p := &UserProgress{Percentage: 30, Status: ProgressInProgress}
		p.AddCompletedTopic(1, "a", 80, 0, now)
		assert.Equal(t, 30, p.Percentage)
	})
}

func TestApplyQuizAttempt(t *testing.T) {
	now := time.Now()

	t.Run("首次与重复提交汇总", func(t *testing.T) {
		p := &UserProgress{}
		p.ApplyQuizAttempt(7, 80, now)

		require.Len(t, p.QuizAttempts, 1)
		assert.Equal(t, 80, p.QuizAttempts[0].BestScore)
		assert.Equal(t, 1, p.QuizAttempts[0].TotalAttempts)
		assert.Equal(t, 8, p.Points)

		p.ApplyQuizAttempt(7, 85, now)
		require.Len(t, p.QuizAttempts, 1)
		assert.Equal(t, 85, p.QuizAttempts[0].BestScore)
		assert.Equal(t, 2, p.QuizAttempts[0].TotalAttempts)
		assert.Equal(t, 16, p.Points, "积分按本次分数 85/10=8 追加")
	})

	t.Run("低于最佳分不回退", func(t *testing.T) {
		p := &UserProgress{}
		p.ApplyQuizAttempt(7, 90, now)
		p.ApplyQuizAttempt(7, 40, now)
		assert.Equal(t, 90, p.QuizAttempts[0].BestScore)
		assert.Equal(t, 9+4, p.Points)
	})

	t.Run("零分不奖励积分", func(t *testing.T) {
		p := &UserProgress{}
		p.ApplyQuizAttempt(7, 5, now)
		assert.Equal(t, 0, p.Points)
	})
}

func TestApplyVideoWatched(t *testing.T) {
	now := time.Now()

	t.Run("时长累加", func(t *testing.T) {
		p := &UserProgress{}
		p.ApplyVideoWatched(3, 60, 600, now)
		p.ApplyVideoWatched(3, 120, 600, now)

		require.Len(t, p.VideoProgress, 1)
		assert.Equal(t, 180, p.VideoProgress[0].WatchTime)
		assert.Equal(t, 180, p.TimeSpent)
		assert.False(t, p.VideoProgress[0].Watched)
	})

	t.Run("累计达到九成标记看完", func(t *testing.T) {
		p := &UserProgress{}
		p.ApplyVideoWatched(3, 539, 600, now)
		assert.False(t, p.VideoProgress[0].Watched)

		p.ApplyVideoWatched(3, 1, 600, now)
		assert.True(t, p.VideoProgress[0].Watched)
		require.NotNil(t, p.VideoProgress[0].CompletedAt)
	})

	t.Run("未知时长不标记看完", func(t *testing.T) {
		p := &UserProgress{}
		p.ApplyVideoWatched(3, 10000, 0, now)
		assert.False(t, p.VideoProgress[0].Watched)
	})
}
