package util

import (
	"strconv"
	"strings"
)

// MustParseUint 将字符串转换为无符号整数，解析失败时返回 0
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// ParseID parses a route id; zero and garbage are both reported as not found.
func ParseID(s string) (uint, error) {
	id := MustParseUint(strings.TrimSpace(s))
	if id == 0 {
		return 0, NotFoundError("Resource not found")
	}
	return id, nil
}
