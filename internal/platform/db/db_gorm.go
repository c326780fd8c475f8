// Package db はPostgreSQLへの接続とマイグレーションを提供します。
package db

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "watchlist_backend/internal/feature/auth/domain/entity"
	symbolentity "watchlist_backend/internal/feature/symbollist/domain/entity"
	watchlistadapters "watchlist_backend/internal/feature/watchlist/adapters"
)

// retryInterval は接続リトライの間隔です。
const retryInterval = 3 * time.Second

// Config はデータベース接続設定です。
type Config struct {
	User         string        `envconfig:"DB_USER" default:"postgres"`
	Password     string        `envconfig:"DB_PASSWORD"`
	Name         string        `envconfig:"DB_NAME" default:"watchlist"`
	Host         string        `envconfig:"DB_HOST" default:"localhost"`
	Port         string        `envconfig:"DB_PORT" default:"5432"`
	SSLMode      string        `envconfig:"DB_SSLMODE" default:"disable"`
	InstanceName string        `envconfig:"INSTANCE_CONNECTION_NAME"`
	ConnTimeout  time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"60s"`
	Migrate      bool          `envconfig:"RUN_MIGRATIONS" default:"false"`
}

// LoadConfig は環境変数からデータベース設定を読み込みます。
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load db config: %w", err)
	}
	return cfg, nil
}

// BuildDSN はpgx形式（key=value）のDSN文字列を生成します。
// InstanceNameが設定されている場合はCloud SQLのUnixソケットを優先します。
// 値は空白や引用符を含んでもよいように単一引用符で囲みます。
func BuildDSN(cfg Config) string {
	host, port := cfg.Host, cfg.Port
	if cfg.InstanceName != "" {
		host, port = "/cloudsql/"+cfg.InstanceName, ""
	}
	parts := []string{
		dsnPair("host", host),
		dsnPair("user", cfg.User),
		dsnPair("password", cfg.Password),
		dsnPair("dbname", cfg.Name),
	}
	if port != "" {
		parts = append(parts, dsnPair("port", port))
	}
	if cfg.SSLMode != "" {
		parts = append(parts, dsnPair("sslmode", cfg.SSLMode))
	}
	return strings.Join(parts, " ")
}

// dsnEscaper はlibpqの引用規則に従いバックスラッシュと単一引用符をエスケープします。
var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func dsnPair(key, value string) string {
	return key + "='" + dsnEscaper.Replace(value) + "'"
}

// Opener はDSNからgorm.DBを開く関数です。テストで差し替えられます。
type Opener func(dsn string) (*gorm.DB, error)

// PostgresOpener はPostgreSQLドライバでDBを開きます。
// TranslateErrorによりユニーク制約違反はgorm.ErrDuplicatedKeyに変換されます。
func PostgresOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// ConnectWithRetry はtimeoutに達するまで一定間隔で接続を再試行します。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "interval", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Migrate はアプリケーションのテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&authentity.User{},
		&watchlistadapters.EntryModel{},
		&symbolentity.Symbol{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// OpenDB は設定に従って接続し、必要であればマイグレーションを実行します。
func OpenDB(cfg Config) (*gorm.DB, error) {
	db, err := ConnectWithRetry(BuildDSN(cfg), cfg.ConnTimeout, PostgresOpener)
	if err != nil {
		return nil, err
	}
	if cfg.Migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		slog.Info("database migrated")
	}
	return db, nil
}
