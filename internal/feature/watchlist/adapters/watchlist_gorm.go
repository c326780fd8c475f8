// Package adapters はwatchlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/usecase"
	"watchlist_backend/internal/platform/db/dberr"
)

// EntryModel はwatchlist_entriesテーブルのGORMモデルです。
// (user_id, symbol) の複合ユニークインデックスが重複登録を原子的に防ぎます。
type EntryModel struct {
	ID      uint      `gorm:"primaryKey"`
	UserID  uint      `gorm:"not null;uniqueIndex:idx_watchlist_user_symbol,priority:1;index:idx_watchlist_user_added,priority:1"`
	Symbol  string    `gorm:"size:20;not null;uniqueIndex:idx_watchlist_user_symbol,priority:2"`
	Company string    `gorm:"size:255;not null"`
	AddedAt time.Time `gorm:"not null;index:idx_watchlist_user_added,priority:2"`
}

// TableName returns the table name for GORM.
func (EntryModel) TableName() string {
	return "watchlist_entries"
}

func (m *EntryModel) toEntity() entity.Entry {
	return entity.Entry{
		ID:      m.ID,
		UserID:  m.UserID,
		Symbol:  m.Symbol,
		Company: m.Company,
		AddedAt: m.AddedAt,
	}
}

// watchlistGorm はWatchlistRepositoryインターフェースのGORM実装です。
type watchlistGorm struct {
	db  *gorm.DB
	now func() time.Time
}

// watchlistGormがWatchlistRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.WatchlistRepository = (*watchlistGorm)(nil)

// NewWatchlistRepository は指定されたDB接続でwatchlistGormの新しいインスタンスを生成します。
func NewWatchlistRepository(db *gorm.DB) *watchlistGorm {
	return &watchlistGorm{db: db, now: time.Now}
}

// ListByUser は追加日時の降順でユーザーの銘柄を返します。
func (r *watchlistGorm) ListByUser(ctx context.Context, userID uint) ([]entity.Entry, error) {
	var rows []EntryModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Entry, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

// ListSymbolsByUser はユーザーの銘柄コードのみを返します。
func (r *watchlistGorm) ListSymbolsByUser(ctx context.Context, userID uint) ([]string, error) {
	var symbols []string
	if err := r.db.WithContext(ctx).
		Model(&EntryModel{}).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// Add は銘柄をウォッチリストに追加します。
// 銘柄コードは大文字に正規化されます。既に登録済みの場合、usecase.ErrAlreadyInWatchlistを返します。
func (r *watchlistGorm) Add(ctx context.Context, userID uint, symbol, company string) (*entity.Entry, error) {
	m := EntryModel{
		UserID:  userID,
		Symbol:  strings.ToUpper(strings.TrimSpace(symbol)),
		Company: company,
		AddedAt: r.now(),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if dberr.IsDuplicateKey(err) {
			return nil, usecase.ErrAlreadyInWatchlist
		}
		return nil, err
	}
	e := m.toEntity()
	return &e, nil
}

// Remove は銘柄をウォッチリストから削除します。
// 対象が存在しない場合もエラーにはなりません。
func (r *watchlistGorm) Remove(ctx context.Context, userID uint, symbol string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, strings.ToUpper(strings.TrimSpace(symbol))).
		Delete(&EntryModel{}).Error
}
