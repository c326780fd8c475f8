// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// readinessTimeout は依存先1件あたりの確認時間の上限です。
const readinessTimeout = 2 * time.Second

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// プロセスが応答できるかだけを返し、依存先には触れません。
func Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Checker は依存先（DB、Redisなど）への疎通を確認する関数です。
type Checker func(ctx context.Context) error

// Readiness は /readyz 用のハンドラーを返します。
// いずれかのCheckerが失敗すると503を返し、失敗した依存先を"down"として報告します。
// nilのCheckerは未設定として"disabled"を報告します（Redisなしで起動した場合など）。
func Readiness(checks map[string]Checker) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		status := http.StatusOK
		report := make(map[string]string, len(names))
		for _, name := range names {
			check := checks[name]
			if check == nil {
				report[name] = "disabled"
				continue
			}
			ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
			err := check(ctx)
			cancel()
			if err != nil {
				slog.Warn("readiness check failed", "dependency", name, "error", err)
				report[name] = "down"
				status = http.StatusServiceUnavailable
				continue
			}
			report[name] = "up"
		}
		c.JSON(status, gin.H{"status": http.StatusText(status), "dependencies": report})
	}
}
