package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const createUsers = `
	CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

// retryDelay is the pause between two attempts.
var retryDelay = time.Second

// AutoMigrateUsers creates the users table if it does not exist, trying each
// database up to retries extra times.
func AutoMigrateUsers(ctx context.Context, retries int, dbs ...*sql.DB) error {
	for i, db := range dbs {
		_, err := db.ExecContext(ctx, createUsers)
		for attempt := 0; err != nil && attempt < retries; attempt++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryDelay):
			}
			_, err = db.ExecContext(ctx, createUsers)
		}
		if err != nil {
			return fmt.Errorf("migrating users table on database %d: %w", i, err)
		}
	}
	return nil
}
