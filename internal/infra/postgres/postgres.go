package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"
	"github.com/sifan077/GifBoard/config"
)

const (
	applicationName = "gifboard"
	pingTimeout     = 5 * time.Second
	healthPoolConns = 2
)

// NewPool opens the small pgx pool that answers /health pings. Gif reads and
// writes go through GORM, so the pool never holds more than a couple of
// connections.
func NewPool(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(ConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}
	poolCfg.MaxConns = healthPoolConns
	poolCfg.MinConns = 0
	poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName + "-health"

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping %s: %w", poolCfg.ConnConfig.Host, err)
	}
	return pool, nil
}

// ConnString builds a postgres:// URL for cfg, defaulting to a local server
// without TLS.
func ConnString(cfg config.PostgresConfig) string {
	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(lo.CoalesceOrEmpty(cfg.Host, "localhost"), strconv.Itoa(port)),
		Path:   "/" + cfg.Database,
		RawQuery: url.Values{
			"sslmode": {lo.CoalesceOrEmpty(cfg.SSLMode, "disable")},
		}.Encode(),
	}
	switch {
	case cfg.User != "" && cfg.Password != "":
		u.User = url.UserPassword(cfg.User, cfg.Password)
	case cfg.User != "":
		u.User = url.User(cfg.User)
	}
	return u.String()
}
