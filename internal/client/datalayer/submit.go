package datalayer

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldworks/sitereport/internal/client/models"
	"github.com/fieldworks/sitereport/internal/common"
)

// Submission is a finalized report ready to be pushed upstream.
type Submission struct {
	ReportID string
	Sections []models.ReportSection
}

// SubmitFinalReport pushes every section of a report and then flips the
// report to submitted. Requires connectivity; there is no partial or
// queued submission. The status flip happens last so a failed section
// leaves the report resubmittable, and resubmitting upserts sections in
// place rather than duplicating them.
func (s *Service) SubmitFinalReport(ctx context.Context, sub Submission) error {
	if !s.online() {
		return fmt.Errorf("%w: report submission requires a connection", common.ErrOffline)
	}
	for _, section := range sub.Sections {
		if err := s.remote.UpsertReportSection(ctx, sub.ReportID, section); err != nil {
			return fmt.Errorf("submit section %q: %w", section.Key, err)
		}
	}
	if err := s.remote.MarkReportSubmitted(ctx, sub.ReportID, s.now().UTC()); err != nil {
		return fmt.Errorf("mark report submitted: %w", err)
	}
	s.log.Info(ctx, "report submitted", "reportId", sub.ReportID, "sections", len(sub.Sections))
	return nil
}

// ClearAfterSubmit removes the local working state of a submitted
// report: its draft, its cached narrative, and its photos. Each step is
// attempted regardless of earlier failures; the combined error is
// returned so the caller can surface it.
func (s *Service) ClearAfterSubmit(ctx context.Context, projectID, date, reportID string) error {
	var errs []error
	if err := s.DeleteDraft(ctx, projectID, date); err != nil {
		errs = append(errs, fmt.Errorf("delete draft: %w", err))
	}
	if err := s.ClearAIResponseCache(ctx, reportID); err != nil {
		errs = append(errs, fmt.Errorf("clear narrative cache: %w", err))
	}
	photos, err := s.photos.GetPhotos(ctx, reportID)
	if err != nil {
		errs = append(errs, fmt.Errorf("list photos: %w", err))
	}
	for _, p := range photos {
		if err := s.photos.DeletePhoto(ctx, p.ID); err != nil {
			errs = append(errs, fmt.Errorf("delete photo %s: %w", p.ID, err))
		}
	}
	return errors.Join(errs...)
}
