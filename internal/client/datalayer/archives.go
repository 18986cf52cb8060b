package datalayer

import (
	"context"
	"fmt"

	"github.com/fieldworks/sitereport/internal/client/models"
	"github.com/fieldworks/sitereport/internal/client/normalize"
	"github.com/fieldworks/sitereport/internal/common"
)

const defaultArchiveLimit = 20

// LoadArchivedReports lists previously submitted reports for the current
// user, newest first. Archives are remote-only; offline or on a failed
// query the result degrades to an empty list.
func (s *Service) LoadArchivedReports(ctx context.Context, limit int) ([]models.ArchivedReport, error) {
	if limit <= 0 {
		limit = defaultArchiveLimit
	}
	if !s.online() {
		s.log.Debug(ctx, "offline, archive list unavailable")
		return []models.ArchivedReport{}, nil
	}
	rows, err := s.remote.QueryArchivedReports(ctx, s.userID(), limit)
	if err != nil {
		s.log.Warn(ctx, "archive fetch failed", "error", err)
		return []models.ArchivedReport{}, nil
	}
	out := make([]models.ArchivedReport, 0, len(rows))
	for _, raw := range rows {
		out = append(out, normalize.ArchivedReport(raw))
	}
	return out, nil
}

// DeleteArchivedReport removes a submitted report from the remote store.
// Deletion is a destructive user action, so unlike the list path any
// failure is surfaced to the caller.
func (s *Service) DeleteArchivedReport(ctx context.Context, reportID string) error {
	if !s.online() {
		return fmt.Errorf("%w: report deletion requires a connection", common.ErrOffline)
	}
	if err := s.remote.DeleteReport(ctx, reportID); err != nil {
		return fmt.Errorf("delete report %s: %w", reportID, err)
	}
	s.log.Info(ctx, "archived report deleted", "reportId", reportID)
	return nil
}
