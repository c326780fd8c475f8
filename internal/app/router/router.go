// Package router はアプリケーションのHTTPルーティングを定義します。
package router

import (
	"github.com/gin-gonic/gin"

	authhandler "watchlist_backend/internal/feature/auth/transport/handler"
	symbollisthandler "watchlist_backend/internal/feature/symbollist/transport/handler"
	watchlisthandler "watchlist_backend/internal/feature/watchlist/transport/handler"
	platformhandler "watchlist_backend/internal/platform/http/handler"
	jwtmw "watchlist_backend/internal/platform/jwt"
	"watchlist_backend/internal/platform/logger"
	"watchlist_backend/internal/platform/metrics"
)

// Handlers はルーターに登録するハンドラー一式です。
type Handlers struct {
	Auth      *authhandler.AuthHandler
	Watchlist *watchlisthandler.WatchlistHandler
	Symbol    *symbollisthandler.SymbolHandler
	// Readiness は /readyz で確認する依存先です。nilの場合は依存先なしで200を返します。
	Readiness map[string]platformhandler.Checker
}

func NewRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinMiddleware())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)
	// 依存先（DB、Redis）の疎通確認用
	r.GET("/readyz", platformhandler.Readiness(h.Readiness))
	// Prometheusのスクレイプ用
	r.GET("/metrics", metrics.Handler())
	// 新規ユーザー登録
	r.POST("/signup", h.Auth.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", h.Auth.Login)

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/watchlist", h.Watchlist.List)
		auth.GET("/watchlist/enriched", h.Watchlist.Enriched)
		auth.GET("/watchlist/symbols", h.Watchlist.ListSymbols)
		auth.POST("/watchlist", h.Watchlist.Add)
		auth.DELETE("/watchlist/:symbol", h.Watchlist.Remove)
		auth.GET("/symbols", h.Symbol.List)
	}

	return r
}
