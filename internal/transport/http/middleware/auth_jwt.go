package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"go-bookstore-api/internal/core/auth"
	resp "go-bookstore-api/internal/transport/http/response"
)

const KeyClaims = "claims"

// AuthJWT 校验 Authorization 头。两个失败终态：
// 没带 "Bearer " 前缀（含空头）→ 401 缺凭证；签名/过期/格式错 → 401 凭证无效。
// 前缀匹配大小写敏感，单个空格。
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.Unauthorized(c, "missing bearer token")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			resp.Unauthorized(c, "invalid token")
			return
		}
		// 下游取身份用
		c.Set(KeyClaims, claims)
		c.Set("userId", claims.UID)
		c.Set("userEmail", claims.Email)
		c.Next()
	}
}
