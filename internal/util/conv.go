package util

import (
	"strconv"
)

// ParseUintParam 解析路径或查询参数中的 ID，0 视为非法
func ParseUintParam(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
