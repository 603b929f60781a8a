package util

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatResult 把选中的答案 id 序列化为 "[1, 2]"
func FormatResult(answerIDs []uint) string {
	parts := make([]string, len(answerIDs))
	for i, id := range answerIDs {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ParseResult 是 FormatResult 的逆操作
func ParseResult(s string) ([]uint, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("%w: malformed result %q", ErrValidation, s)
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return []uint{}, nil
	}
	fields := strings.Split(body, ",")
	ids := make([]uint, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.ParseUint(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed result %q", ErrValidation, s)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
