package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ETAnderson/storesync/internal/db"
)

type FactoryConfig struct {
	Backend      string // memory | mysql
	MySQLDSN     string
	MaxOpenConns int
}

// FactoryResult carries the store plus the underlying *sql.DB when one was
// opened, so the caller can run migrations and close it on shutdown.
type FactoryResult struct {
	Store Store
	DB    *sql.DB
}

func NewStore(ctx context.Context, cfg FactoryConfig) (FactoryResult, error) {
	switch backend := strings.ToLower(strings.TrimSpace(cfg.Backend)); backend {
	case "", "memory":
		return FactoryResult{Store: NewMemoryStore()}, nil

	case "mysql":
		if strings.TrimSpace(cfg.MySQLDSN) == "" {
			return FactoryResult{}, errors.New("DB_DSN is required when STATE_BACKEND=mysql")
		}

		sqlDB, err := db.Open(db.Config{DSN: cfg.MySQLDSN, MaxOpenConns: cfg.MaxOpenConns})
		if err != nil {
			return FactoryResult{}, fmt.Errorf("open mysql: %w", err)
		}

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(pingCtx); err != nil {
			_ = sqlDB.Close()
			return FactoryResult{}, fmt.Errorf("ping mysql: %w", err)
		}

		return FactoryResult{Store: NewMySQLStore(sqlDB), DB: sqlDB}, nil

	default:
		return FactoryResult{}, fmt.Errorf("unknown STATE_BACKEND %q (use memory or mysql)", backend)
	}
}
