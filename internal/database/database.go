package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"shopcart/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Service wraps the shared database handle and exposes a health check.
type Service interface {
	DB() *sql.DB
	Health() map[string]string
	Close() error
}

type service struct {
	db *sql.DB
}

// New opens a connection pool against the configured Postgres instance.
func New(cfg config.DatabaseConfig) (Service, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.Schema,
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &service{db: db}, nil
}

func (s *service) DB() *sql.DB {
	return s.db
}

// Health reports connectivity and pool statistics.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	stats := make(map[string]string)

	if err := s.db.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}

	poolStats := s.db.Stats()
	stats["status"] = "up"
	stats["open_connections"] = strconv.Itoa(poolStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(poolStats.InUse)
	stats["idle"] = strconv.Itoa(poolStats.Idle)

	return stats
}

func (s *service) Close() error {
	return s.db.Close()
}
