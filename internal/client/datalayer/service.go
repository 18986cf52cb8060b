// Package datalayer is the single entry point for all data operations of
// the sitereport client. It resolves reads across the local cache and the
// remote source of truth ("local first, remote fallback, cache on read"),
// normalizes every record on the way through, and orchestrates report
// submission and the cleanup that follows it.
package datalayer

import (
	"context"
	"time"

	"github.com/fieldworks/sitereport/internal/client/flagstore"
	"github.com/fieldworks/sitereport/internal/client/localstore"
	"github.com/fieldworks/sitereport/internal/client/models"
	"github.com/fieldworks/sitereport/internal/client/photosync"
	"github.com/fieldworks/sitereport/internal/client/remote"
	"github.com/fieldworks/sitereport/internal/logging"
)

// Service wires the storage tiers together. All dependencies are injected;
// nothing here owns global state.
type Service struct {
	local  *localstore.Store
	flags  *flagstore.Store
	remote remote.Store
	photos *photosync.Queue
	online func() bool
	log    logging.Logger
	now    func() time.Time
}

// New constructs a Service. The online predicate gates every remote
// fallback; inject the connectivity watcher's IsOnline in production.
func New(local *localstore.Store, flags *flagstore.Store, rs remote.Store, photos *photosync.Queue, online func() bool, log logging.Logger) *Service {
	return &Service{
		local:  local,
		flags:  flags,
		remote: rs,
		photos: photos,
		online: online,
		log:    log,
		now:    time.Now,
	}
}

// WithClock replaces the service's time source; test seam.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// IsOnline reports the current connectivity state.
func (s *Service) IsOnline() bool {
	return s.online()
}

// SetActiveProjectID records the active project selection. Direct flag
// write: no normalization, no remote interaction.
func (s *Service) SetActiveProjectID(projectID string) error {
	return s.flags.SetString(flagstore.KeyActiveProjectID, projectID)
}

// GetActiveProjectID returns the active project selection, or "".
func (s *Service) GetActiveProjectID() string {
	return s.flags.GetString(flagstore.KeyActiveProjectID)
}

// SavePhoto stores a captured photo in the sync queue.
func (s *Service) SavePhoto(ctx context.Context, p models.Photo) (models.Photo, error) {
	return s.photos.SavePhoto(ctx, p)
}

// GetPhotos lists the photos attached to a report.
func (s *Service) GetPhotos(ctx context.Context, reportID string) ([]models.Photo, error) {
	return s.photos.GetPhotos(ctx, reportID)
}

// DeletePhoto removes a photo, deferring remote cleanup when one is owed.
func (s *Service) DeletePhoto(ctx context.Context, id string) error {
	return s.photos.DeletePhoto(ctx, id)
}

func (s *Service) userID() string {
	return s.flags.GetString(flagstore.KeyUserID)
}
