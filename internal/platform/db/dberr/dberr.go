// Package dberr はGORMリポジトリ共通のデータベースエラー判定を提供します。
package dberr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation はPostgreSQLの一意制約違反のSQLSTATEです。
const pgUniqueViolation = "23505"

// IsDuplicateKey はエラーが一意制約違反かどうかを判定します。
// TranslateErrorが有効ならgorm.ErrDuplicatedKey、無効ならドライバー固有のエラーを確認します。
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// SQLite: "UNIQUE constraint failed: watchlist_entries.user_id, watchlist_entries.symbol"
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
