package util

import (
	"errors"
	"strconv"
)

// ParseID 解析路径参数里的数字 ID，0 视为非法
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id: " + s)
	}
	return uint(id), nil
}

// MustParseUint 将字符串转换为无符号整数，解析失败时返回 0。
// 路径参数只在控制器边界解析一次，仓储层一律使用类型化 ID。
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}
