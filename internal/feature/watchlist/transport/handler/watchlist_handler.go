package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"watchlist_backend/internal/api"
	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/transport/http/dto"
	"watchlist_backend/internal/feature/watchlist/usecase"
	jwtmw "watchlist_backend/internal/platform/jwt"
	"watchlist_backend/internal/platform/metrics"
)

// WatchlistUsecase はウォッチリストの参照・更新ユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type WatchlistUsecase interface {
	List(ctx context.Context, email string) ([]entity.Entry, error)
	ListSymbols(ctx context.Context, email string) ([]string, error)
	Add(ctx context.Context, email, symbol, company string) usecase.Result
	Remove(ctx context.Context, email, symbol string) usecase.Result
}

// EnrichUsecase はウォッチリストに相場データを付与するユースケースのインターフェースです。
type EnrichUsecase interface {
	Enrich(ctx context.Context, email string) ([]entity.EnrichedRow, error)
}

// WatchlistHandler はウォッチリストに関するHTTPリクエストを処理します。
type WatchlistHandler struct {
	uc       WatchlistUsecase
	enrich   EnrichUsecase
	reporter usecase.ErrorReporter
	now      func() time.Time
}

// NewWatchlistHandler は新しい WatchlistHandler を作成します。
// reporterには5xx相当のエラーが送られます。nilの場合は送信しません。
func NewWatchlistHandler(uc WatchlistUsecase, enrich EnrichUsecase, reporter usecase.ErrorReporter) *WatchlistHandler {
	return &WatchlistHandler{uc: uc, enrich: enrich, reporter: reporter, now: time.Now}
}

// report はサーバー側の障害（5xx相当）だけをreporterへ送ります。
// 入力不正・ユーザー不在・重複はクライアント起因なので送りません。
func (h *WatchlistHandler) report(c *gin.Context, err error) {
	if h.reporter == nil || err == nil {
		return
	}
	if status, _ := statusFor(err); status < http.StatusInternalServerError {
		return
	}
	h.reporter.Report(c.Request.Context(), err)
}

// email はJWTミドルウェアが設定したメールアドレスを取得します。未設定なら401で中断します。
func email(c *gin.Context) (string, bool) {
	e := jwtmw.EmailFrom(c)
	if e == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return "", false
	}
	return e, true
}

// List はユーザーのウォッチリストを追加日時の降順で返します。
// 読み取り系はエラー時も空配列を返します（エラーはログに記録）。
func (h *WatchlistHandler) List(c *gin.Context) {
	e, ok := email(c)
	if !ok {
		return
	}
	entries, err := h.uc.List(c.Request.Context(), e)
	if err != nil {
		slog.Error("list watchlist failed", "error", err)
		h.report(c, err)
		entries = nil
	}
	c.JSON(http.StatusOK, dto.NewEntryItems(entries, h.now()))
}

// ListSymbols はユーザーのウォッチリストの銘柄コードのみを返します。
func (h *WatchlistHandler) ListSymbols(c *gin.Context) {
	e, ok := email(c)
	if !ok {
		return
	}
	symbols, err := h.uc.ListSymbols(c.Request.Context(), e)
	if err != nil {
		slog.Error("list watchlist symbols failed", "error", err)
		h.report(c, err)
	}
	if symbols == nil {
		symbols = []string{}
	}
	c.JSON(http.StatusOK, symbols)
}

// Enriched はウォッチリストに現在値・前日比・時価総額を付与して返します。
// 銘柄単位の取得失敗は該当フィールドがnullになるだけで、全体は失敗しません。
func (h *WatchlistHandler) Enriched(c *gin.Context) {
	e, ok := email(c)
	if !ok {
		return
	}
	rows, err := h.enrich.Enrich(c.Request.Context(), e)
	if err != nil {
		slog.Error("enrich watchlist failed", "error", err)
		h.report(c, err)
		rows = nil
	}
	c.JSON(http.StatusOK, dto.NewEnrichedItems(rows))
}

// Add は銘柄をウォッチリストに追加します。
func (h *WatchlistHandler) Add(c *gin.Context) {
	e, ok := email(c)
	if !ok {
		return
	}
	var req dto.AddReq
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.WatchlistMutations.WithLabelValues("add", "invalid").Inc()
		c.JSON(http.StatusBadRequest, dto.MutationRes{Error: "invalid request"})
		return
	}
	res := h.uc.Add(c.Request.Context(), e, req.Symbol, req.Company)
	h.respond(c, "add", http.StatusCreated, res)
}

// Remove は銘柄をウォッチリストから削除します。存在しない銘柄の削除も成功扱いです。
func (h *WatchlistHandler) Remove(c *gin.Context) {
	e, ok := email(c)
	if !ok {
		return
	}
	res := h.uc.Remove(c.Request.Context(), e, c.Param("symbol"))
	h.respond(c, "remove", http.StatusOK, res)
}

// respond はResultをHTTPステータスに変換して返します。
func (h *WatchlistHandler) respond(c *gin.Context, action string, okStatus int, res usecase.Result) {
	if res.Success {
		metrics.WatchlistMutations.WithLabelValues(action, "success").Inc()
		c.JSON(okStatus, dto.MutationRes{Success: true})
		return
	}

	status, label := statusFor(res.Err)
	metrics.WatchlistMutations.WithLabelValues(action, label).Inc()
	if status >= http.StatusInternalServerError {
		slog.Error("watchlist mutation failed", "action", action, "error", res.Err)
		h.report(c, res.Err)
	}
	c.JSON(status, dto.MutationRes{Success: false, Error: res.Message})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest, "invalid"
	case errors.Is(err, usecase.ErrUserNotFound):
		return http.StatusNotFound, "user_not_found"
	case errors.Is(err, usecase.ErrAlreadyInWatchlist):
		return http.StatusConflict, "duplicate"
	default:
		return http.StatusInternalServerError, "error"
	}
}
