// Package adapters はsymbollistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"watchlist_backend/internal/feature/symbollist/domain/entity"
	"watchlist_backend/internal/feature/symbollist/usecase"
)

// symbolGorm はSymbolRepositoryインターフェースのGORM実装です。
type symbolGorm struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolGorm)(nil)

// NewSymbolRepository は指定されたDB接続でsymbolGormリポジトリの新しいインスタンスを生成します。
func NewSymbolRepository(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

// ListActive はsort_key順にすべてのアクティブな銘柄を返します。
func (r *symbolGorm) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// Search はコードの前方一致または銘柄名の部分一致でアクティブな銘柄を検索します。
// コードの完全一致が先頭に来るように並べ、最大limit件を返します。
func (r *symbolGorm) Search(ctx context.Context, query string, limit int) ([]entity.Symbol, error) {
	q := strings.TrimSpace(query)
	code := strings.ToUpper(q)
	name := "%" + strings.ToLower(escapeLike(q)) + "%"

	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("code LIKE ? ESCAPE '\\' OR LOWER(name) LIKE ? ESCAPE '\\'", escapeLike(code)+"%", name).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN code = ? THEN 0 ELSE 1 END, sort_key ASC",
			Vars:               []any{code},
			WithoutParentheses: true,
		}}).
		Limit(limit).
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// escapeLike はLIKEのワイルドカードをエスケープします。
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
