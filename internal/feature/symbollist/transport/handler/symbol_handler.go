package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"watchlist_backend/internal/api"
	"watchlist_backend/internal/feature/symbollist/domain/entity"
	"watchlist_backend/internal/feature/symbollist/transport/http/dto"
	jwtmw "watchlist_backend/internal/platform/jwt"
)

// SymbolUsecase は銘柄情報に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolUsecase interface {
	Catalog(ctx context.Context, email, query string) ([]entity.CatalogItem, error)
}

// ErrorReporter は500系のエラーをエラートラッキングへ送ります。
type ErrorReporter interface {
	Report(ctx context.Context, err error)
}

// SymbolHandler は銘柄情報に関するHTTPリクエストを処理します。
type SymbolHandler struct {
	uc       SymbolUsecase
	reporter ErrorReporter
}

// NewSymbolHandler は新しい SymbolHandler を作成します。reporterはnilでも構いません。
func NewSymbolHandler(uc SymbolUsecase, reporter ErrorReporter) *SymbolHandler {
	return &SymbolHandler{uc: uc, reporter: reporter}
}

// List は有効な銘柄の一覧（?q= 指定時は検索結果）を取得するAPIです。
// 各銘柄にはログインユーザーのウォッチリストに含まれるかどうかのフラグが付きます。
// Usecaseでエラーが発生した場合は500 Internal Server Errorを返します。
func (h *SymbolHandler) List(c *gin.Context) {
	items, err := h.uc.Catalog(c.Request.Context(), jwtmw.EmailFrom(c), c.Query("q"))
	if err != nil {
		slog.Error("list symbols failed", "error", err)
		if h.reporter != nil {
			h.reporter.Report(c.Request.Context(), err)
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list symbols"})
		return
	}
	out := make([]dto.SymbolItem, 0, len(items))
	for _, s := range items {
		out = append(out, dto.SymbolItem{
			Code:        s.Code,
			Name:        s.Name,
			Exchange:    s.Exchange,
			InWatchlist: s.InWatchlist,
		})
	}
	c.JSON(http.StatusOK, out)
}
