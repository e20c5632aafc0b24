// Package pg bootstraps a PostgreSQL connection pool on pgx/v5 and
// applies embedded goose migrations before the service starts serving
// traffic.
//
// Usage:
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, member.Migrations(), cfg, log); err != nil {
//		return err
//	}
//
// The error helpers IsNotFoundError and IsDuplicateKeyError classify
// pgx errors so repositories can translate them into domain errors.
package pg
