package db

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

type Config struct {
	DSN string

	// Pool sizes; zero values take the defaults below.
	MaxOpenConns int
	MaxIdleConns int
}

func Open(cfg Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, err
	}

	open := cfg.MaxOpenConns
	if open <= 0 {
		open = 10
	}
	idle := cfg.MaxIdleConns
	if idle <= 0 {
		idle = open
	}

	// The sync path issues at most a couple of statements per hook event;
	// a small pool is plenty.
	db.SetMaxOpenConns(open)
	db.SetMaxIdleConns(idle)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func Ping(ctx context.Context, db *sql.DB) error {
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return db.PingContext(c)
}
