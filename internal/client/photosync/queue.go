// Package photosync manages the lifecycle of locally captured photos:
// capture, upload with retry bookkeeping, and deferred deletion of remote
// artifacts. All state lives in the photos collection of the local object
// store; the queue is the only writer of the sync-status fields.
package photosync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fieldworks/sitereport/internal/client/localstore"
	"github.com/fieldworks/sitereport/internal/client/models"
	"github.com/fieldworks/sitereport/internal/client/remote"
	"github.com/fieldworks/sitereport/internal/common"
	"github.com/fieldworks/sitereport/internal/logging"
	"github.com/google/uuid"
)

// Queue drives photo records through the sync state machine.
type Queue struct {
	local  *localstore.Store
	remote remote.Store
	log    logging.Logger
	now    func() time.Time
}

func NewQueue(local *localstore.Store, rs remote.Store, log logging.Logger) *Queue {
	return &Queue{local: local, remote: rs, log: log, now: time.Now}
}

// WithClock replaces the queue's time source; test seam.
func (q *Queue) WithClock(now func() time.Time) *Queue {
	q.now = now
	return q
}

// SavePhoto stores a freshly captured photo in the pending state. A missing
// id or timestamp is filled in; sync bookkeeping fields are reset
// unconditionally because capture is the only entry point into the machine.
func (q *Queue) SavePhoto(ctx context.Context, p models.Photo) (models.Photo, error) {
	if p.ID == "" {
		p.ID = "photo_" + uuid.NewString()
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = q.now().UTC()
	}
	p.SyncStatus = models.SyncPending
	p.RetryCount = 0
	p.LastSyncAttempt = nil
	p.RemoteID = nil
	p.StoragePath = nil

	if err := q.local.Put(ctx, localstore.CollectionPhotos, p); err != nil {
		return models.Photo{}, fmt.Errorf("save photo: %w", err)
	}
	q.log.Debug(ctx, "photo saved", "id", p.ID, "report", p.ReportID)
	return p, nil
}

// GetPhotos returns the photos attached to a report, excluding records that
// only exist as deferred remote-deletion markers. A caller-facing read path:
// when the local store is unavailable the result degrades to an empty list
// rather than aborting the caller. Write and transition paths still surface
// store errors.
func (q *Queue) GetPhotos(ctx context.Context, reportID string) ([]models.Photo, error) {
	rows, err := q.local.GetAllByIndex(ctx, localstore.CollectionPhotos, localstore.IndexPhotosReportID, reportID)
	if err != nil {
		if errors.Is(err, common.ErrStorageUnavailable) {
			q.log.Warn(ctx, "photo list unavailable, returning empty", "report", reportID, "error", err)
			return []models.Photo{}, nil
		}
		return nil, err
	}
	photos := make([]models.Photo, 0, len(rows))
	for _, row := range rows {
		var p models.Photo
		if err := json.Unmarshal(row, &p); err != nil {
			return nil, fmt.Errorf("decode photo: %w", err)
		}
		if p.SyncStatus == models.SyncPendingDelete {
			continue
		}
		photos = append(photos, p)
	}
	return photos, nil
}

// GetByStatus returns every photo currently in the given sync status. This
// is the single "needs attention" surface background sweeps work from.
func (q *Queue) GetByStatus(ctx context.Context, status models.SyncStatus) ([]models.Photo, error) {
	rows, err := q.local.GetAllByIndex(ctx, localstore.CollectionPhotos, localstore.IndexPhotosSyncStatus, string(status))
	if err != nil {
		return nil, err
	}
	photos := make([]models.Photo, 0, len(rows))
	for _, row := range rows {
		var p models.Photo
		if err := json.Unmarshal(row, &p); err != nil {
			return nil, fmt.Errorf("decode photo: %w", err)
		}
		photos = append(photos, p)
	}
	return photos, nil
}

// UpdateCaption edits the caption, the one field callers may mutate after
// capture.
func (q *Queue) UpdateCaption(ctx context.Context, id, caption string) error {
	return q.local.WithTx(ctx, func(tx *localstore.Store) error {
		var p models.Photo
		found, err := tx.Get(ctx, localstore.CollectionPhotos, id, &p)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: photo %s", common.ErrNotFound, id)
		}
		p.Caption = caption
		return tx.Put(ctx, localstore.CollectionPhotos, p)
	})
}

// DeletePhoto removes a photo. Before a successful sync the record is
// dropped outright — no remote artifact exists. After a sync the record is
// kept in pending-delete with its payload cleared, so a sweep can purge the
// remote artifact before removing the record for good.
func (q *Queue) DeletePhoto(ctx context.Context, id string) error {
	return q.local.WithTx(ctx, func(tx *localstore.Store) error {
		var p models.Photo
		found, err := tx.Get(ctx, localstore.CollectionPhotos, id, &p)
		if err != nil {
			return err
		}
		if !found {
			return nil
		}

		if p.RemoteID == nil {
			return tx.Delete(ctx, localstore.CollectionPhotos, id)
		}

		if p.SyncStatus != models.SyncPendingDelete {
			if err := p.Transition(models.SyncPendingDelete); err != nil {
				return err
			}
		}
		p.Blob = nil
		return tx.Put(ctx, localstore.CollectionPhotos, p)
	})
}

// Retry moves a failed photo back to pending so the next sweep picks it up.
func (q *Queue) Retry(ctx context.Context, id string) error {
	return q.local.WithTx(ctx, func(tx *localstore.Store) error {
		var p models.Photo
		found, err := tx.Get(ctx, localstore.CollectionPhotos, id, &p)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: photo %s", common.ErrNotFound, id)
		}
		if p.SyncStatus != models.SyncFailed {
			return nil
		}
		if err := p.Transition(models.SyncPending); err != nil {
			return err
		}
		return tx.Put(ctx, localstore.CollectionPhotos, p)
	})
}

// SyncPending attempts one upload for every pending and failed photo.
// Individual upload failures are recorded on the photo record and never
// returned; the error result covers store-level problems only.
func (q *Queue) SyncPending(ctx context.Context) (synced int, err error) {
	pending, err := q.GetByStatus(ctx, models.SyncPending)
	if err != nil {
		return 0, err
	}
	failed, err := q.GetByStatus(ctx, models.SyncFailed)
	if err != nil {
		return 0, err
	}

	for _, p := range append(pending, failed...) {
		if err := q.syncOne(ctx, p); err != nil {
			return synced, err
		}
		var after models.Photo
		if found, _ := q.local.Get(ctx, localstore.CollectionPhotos, p.ID, &after); found && after.SyncStatus == models.SyncSynced {
			synced++
		}
	}
	return synced, nil
}

// syncOne runs a single upload attempt and records the outcome. A failed
// upload increments the retry counter, stamps the attempt time and parks
// the record in failed; it is not an error of this method.
func (q *Queue) syncOne(ctx context.Context, p models.Photo) error {
	upload, upErr := q.remote.UploadPhoto(ctx, &p)

	return q.local.WithTx(ctx, func(tx *localstore.Store) error {
		var current models.Photo
		found, err := tx.Get(ctx, localstore.CollectionPhotos, p.ID, &current)
		if err != nil {
			return err
		}
		if !found || current.SyncStatus == models.SyncPendingDelete {
			// Deleted while the upload was in flight; nothing to record.
			return nil
		}

		if upErr != nil {
			attempt := q.now().UTC()
			current.RetryCount++
			current.LastSyncAttempt = &attempt
			if err := current.Transition(models.SyncFailed); err != nil {
				return err
			}
			q.log.Warn(ctx, "photo sync attempt failed",
				"id", current.ID, "retries", current.RetryCount, "err", fmt.Errorf("%w: %v", common.ErrSyncAttemptFailed, upErr))
			return tx.Put(ctx, localstore.CollectionPhotos, current)
		}

		if err := current.Transition(models.SyncSynced); err != nil {
			return err
		}
		current.RemoteID = &upload.RemoteID
		current.StoragePath = &upload.StoragePath
		q.log.Info(ctx, "photo synced", "id", current.ID, "remote", upload.RemoteID)
		return tx.Put(ctx, localstore.CollectionPhotos, current)
	})
}

// PurgeDeleted finishes deferred deletions: for every pending-delete record
// it removes the remote artifact, then the local record. Failures leave the
// record in place for the next sweep.
func (q *Queue) PurgeDeleted(ctx context.Context) error {
	marked, err := q.GetByStatus(ctx, models.SyncPendingDelete)
	if err != nil {
		return err
	}
	for _, p := range marked {
		if p.RemoteID != nil {
			if err := q.remote.DeletePhoto(ctx, *p.RemoteID); err != nil {
				q.log.Warn(ctx, "remote photo cleanup failed", "id", p.ID, "err", err)
				continue
			}
		}
		if err := q.local.Delete(ctx, localstore.CollectionPhotos, p.ID); err != nil {
			return err
		}
	}
	return nil
}
