package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID 生成数据库主键（去掉连字符的 uuid，定长 32）
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
