package notify

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres uses LISTEN/NOTIFY on the database the store lives in.
type Postgres struct {
	pool    *pgxpool.Pool
	channel string
	origin  string
}

func NewPostgres(pool *pgxpool.Pool, channel string) *Postgres {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Postgres{pool: pool, channel: channel, origin: newOrigin()}
}

func (p *Postgres) Publish(ctx context.Context, path string) error {
	_, err := p.pool.Exec(ctx, "SELECT pg_notify($1, $2)", p.channel, encode(p.origin, path))
	return err
}

func (p *Postgres) Subscribe(ctx context.Context, fn func(path string)) error {
	pooled, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	// a listening connection must not go back to the pool
	conn := pooled.Hijack()
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{p.channel}.Sanitize()); err != nil {
		return err
	}

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		origin, path, ok := decode(n.Payload)
		if !ok || origin == p.origin {
			continue
		}
		fn(path)
	}
}
