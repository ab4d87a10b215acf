package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/inventory/internal/database"
	"github.com/jask/inventory/internal/database/repository"
	"github.com/jask/inventory/internal/notify"
)

// MaintenanceService houses destructive/ops actions.
type MaintenanceService struct {
	DB  *sql.DB
	Hub *notify.Hub
}

// Reset wipes all items. It keeps the schema intact so the app can continue
// running, and restarts id numbering.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM items"); err != nil {
			return fmt.Errorf("reset table items: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = 'items'"); err != nil {
			return fmt.Errorf("reset id sequence: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}
	if s.Hub != nil {
		s.Hub.Invalidate(ctx, repository.Table)
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return nil
}
