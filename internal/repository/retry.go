package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"
	"time"

	"english_edu_backend/internal/util"
)

// dbTimeout 单次存储调用的超时上限
const dbTimeout = 5 * time.Second

// withRetry 为存储调用加上有界超时，瞬时错误重试一次，
// 重试仍失败则上抛 ErrServiceUnavailable
func withRetry(op func(ctx context.Context) error) error {
	run := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
		defer cancel()
		return op(ctx)
	}

	err := run()
	if err == nil || !isTransient(err) {
		return err
	}
	if err = run(); err != nil && isTransient(err) {
		return util.ErrServiceUnavailable
	}
	return err
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "invalid connection") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "broken pipe")
}

// isDuplicateKey 识别唯一索引冲突（MySQL 1062）
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
