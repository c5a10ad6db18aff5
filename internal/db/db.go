package db

import (
	"context"
	"time"

	"github.com/SAUL-ALVES/useradmin/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool builds a bounded pgx pool from config (min 1 / max 5 by default)
// and verifies connectivity with a ping before handing it out. Acquires
// beyond the bound queue up behind the caller's context deadline; handlers
// pass short per-operation timeouts.
func NewPool(cfg config.Config) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.DBURL)

	if err != nil {
		return nil, err
	}

	pcfg.MinConns = int32(cfg.DBMinConns)
	pcfg.MaxConns = int32(cfg.DBMaxConns)
	pcfg.ConnConfig.ConnectTimeout = cfg.DBAcquireTimeout

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)

	if err != nil {
		return nil, err
	}

	err = pool.Ping(ctx)

	if err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
