// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

// Package store owns database connectivity and schema migrations.
package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// pingTimeout bounds the total time spent waiting for the database to
// become reachable at startup.
const pingTimeout = 30 * time.Second

// Connect opens a pgx connection pool and waits for the database to
// answer a ping. The ping is retried with fibonacci backoff so the server
// survives a database that is still starting up.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, oops.Code("DB_CONNECT_FAILED").
			With("operation", "create connection pool").
			Wrap(err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	backoff := retry.NewFibonacci(500 * time.Millisecond)
	backoff = retry.WithMaxDuration(pingTimeout, backoff)

	err = retry.Do(pingCtx, backoff, func(ctx context.Context) error {
		if pingErr := pool.Ping(ctx); pingErr != nil {
			return retry.RetryableError(pingErr)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, oops.Code("DB_UNREACHABLE").
			With("operation", "ping database").
			Wrap(err)
	}

	return pool, nil
}
