// file: utils/token_generator.go
package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateAccessToken 生成实例访问凭证（不透明字符串，创建后不再变更）
func GenerateAccessToken() string {
	part1 := strings.Replace(uuid.New().String(), "-", "", -1)
	part2 := strings.Replace(uuid.New().String(), "-", "", -1)[:16]
	return fmt.Sprintf("bctf_%s%s", part1, part2)
}
