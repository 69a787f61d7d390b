package service

import (
	"testing"

	"english_edu_backend/internal/model"
	"english_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProgressStore 内存版进度存储，带版本号写回语义。
// beforeUpdate 钩子在每次写回前执行，用来模拟并发写入者抢先提交
type fakeProgressStore struct {
	row          *model.UserProgress
	updateCalls  int
	beforeUpdate func(round int)
}

func (f *fakeProgressStore) FindByUserAndModule(userID, moduleID uint) (*model.UserProgress, error) {
	if f.row == nil {
		return nil, util.ErrProgressNotFound
	}
	cp := *f.row
	return &cp, nil
}

func (f *fakeProgressStore) Create(p *model.UserProgress) error {
	f.row = p
	return nil
}

func (f *fakeProgressStore) UpdateVersioned(p *model.UserProgress) (bool, error) {
	f.updateCalls++
	if f.beforeUpdate != nil {
		f.beforeUpdate(f.updateCalls)
	}
	if p.Version != f.row.Version {
		return false, nil
	}
	saved := *p
	saved.Version = p.Version + 1
	f.row = &saved
	return true, nil
}

func (f *fakeProgressStore) ListByUser(userID uint) ([]model.UserProgress, error) {
	if f.row == nil {
		return nil, nil
	}
	return []model.UserProgress{*f.row}, nil
}

func (f *fakeProgressStore) TopByPoints(moduleID uint, limit int) ([]model.UserProgress, error) {
	return f.ListByUser(0)
}

func (f *fakeProgressStore) Delete(userID, moduleID uint) error {
	f.row = nil
	return nil
}

func TestMutateReplaysOnVersionConflict(t *testing.T) {
	store := &fakeProgressStore{
		row: &model.UserProgress{
			UserID:   1,
			ModuleID: 2,
			Status:   model.ProgressInProgress,
			Points:   10,
			Version:  1,
		},
	}
	// 第一轮写回前另一个请求完成了一个主题：加 5 分、版本推进，
	// WHERE version 落空，本次变更必须基于新状态重放
	store.beforeUpdate = func(round int) {
		if round == 1 {
			store.row.Points += 5
			store.row.Percentage = 50
			store.row.Version++
		}
	}

	svc := &ProgressService{ProgressRepo: store}
	err := svc.UpdateProgress(1, 2, model.ProgressUpdate{Points: 7, TimeSpent: 60})
	require.NoError(t, err)

	// 两笔加分都在，谁都没丢
	assert.Equal(t, 22, store.row.Points)
	assert.Equal(t, 60, store.row.TimeSpent)
	assert.Equal(t, 50, store.row.Percentage)
	assert.Equal(t, 3, store.row.Version)
	assert.Equal(t, 2, store.updateCalls)
}

func TestMutateConflictRetriesExhausted(t *testing.T) {
	store := &fakeProgressStore{
		row: &model.UserProgress{UserID: 1, ModuleID: 2, Version: 1},
	}
	// 每一轮都被并发写入者抢先，重试耗尽后上抛冲突
	store.beforeUpdate = func(int) {
		store.row.Version++
	}

	svc := &ProgressService{ProgressRepo: store}
	err := svc.UpdateProgress(1, 2, model.ProgressUpdate{Points: 1})
	assert.ErrorIs(t, err, util.ErrConcurrentUpdate)
	assert.Equal(t, util.ProgressMaxRetries, store.updateCalls)
	// 冲突期间的并发写入保留，丢的只是本次未提交的增量
	assert.Equal(t, 0, store.row.Points)
}

func TestGetOrCreateReturnsExistingRow(t *testing.T) {
	store := &fakeProgressStore{
		row: &model.UserProgress{UserID: 1, ModuleID: 2, Status: model.ProgressInProgress, Version: 4},
	}
	svc := &ProgressService{ProgressRepo: store}

	got, err := svc.GetOrCreate(1, 2)
	require.NoError(t, err)
	assert.Equal(t, model.ProgressInProgress, got.Status)
	assert.Equal(t, 4, got.Version)

	// 返回的是副本，调用方改动不落库
	got.Points = 999
	assert.Equal(t, 0, store.row.Points)
}
