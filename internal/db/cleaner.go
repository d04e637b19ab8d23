package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// purgeTables are the resource tables that support soft deletion.
var purgeTables = []string{"notes", "todos", "web_searches"}

// StartSoftDeleteCleaner periodically removes resources that were soft
// deleted more than retention ago. It stops when ctx is cancelled.
func StartSoftDeleteCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	retention time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().Add(-retention)
				for _, table := range purgeTables {
					res, err := db.ExecContext(ctx, fmt.Sprintf(`
                        DELETE FROM %s
                         WHERE deleted_at IS NOT NULL
                           AND deleted_at < $1
                    `, table), cutoff)
					if err != nil {
						log.Error("failed to purge soft-deleted resources", zap.String("table", table), zap.Error(err))
						continue
					}
					if rows, _ := res.RowsAffected(); rows > 0 {
						log.Info("purged soft-deleted resources", zap.String("table", table), zap.Int64("removed", rows))
					}
				}
			}
		}
	}()
}
