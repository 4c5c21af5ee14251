package app

import (
	"context"
	"fmt"
)

// Pinger is the minimal interface shared by the Postgres pool, the Redis
// view counter, and the Kafka producer for readiness probing.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BuildReadinessChecks returns the db, redis, and kafka probes used by the
// readyz handler. A nil dependency yields a failing probe so a misconfigured
// deploy never reports ready.
func BuildReadinessChecks(db, redis, kafka Pinger) (
	func(ctx context.Context) error,
	func(ctx context.Context) error,
	func(ctx context.Context) error,
) {
	probe := func(name string, p Pinger) func(ctx context.Context) error {
		return func(ctx context.Context) error {
			if p == nil {
				return fmt.Errorf("%s not configured", name)
			}
			return p.Ping(ctx)
		}
	}
	return probe("db", db), probe("redis", redis), probe("kafka", kafka)
}
