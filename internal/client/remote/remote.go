// Package remote defines the narrow interface the data layer consumes from
// the network-accessible source of truth, plus a REST implementation.
//
// Query operations return raw wire rows (maps in the backend's snake_case
// shape); the normalizer owns collapsing those into canonical records, so
// this package never reshapes fields.
package remote

import (
	"context"
	"time"

	"github.com/fieldworks/sitereport/internal/client/models"
)

// PhotoUpload carries the remote identifiers assigned to an uploaded photo.
type PhotoUpload struct {
	RemoteID    string
	StoragePath string
}

// Store is the remote source of truth for projects, contractors, profiles
// and submitted report content.
//
// Get-style operations return (nil, nil) when the row is absent. Transport
// failures and backend errors wrap common.ErrRemoteQueryFailed.
type Store interface {
	// Ping probes backend reachability; used by the connectivity watcher.
	Ping(ctx context.Context) error

	// QueryProjects returns the project rows owned by userID, or all rows
	// when userID is empty, ordered by project name.
	QueryProjects(ctx context.Context, userID string) ([]map[string]any, error)

	// GetProject returns a single project row by id.
	GetProject(ctx context.Context, id string) (map[string]any, error)

	// QueryContractors returns the contractor rows of one project.
	QueryContractors(ctx context.Context, projectID string) ([]map[string]any, error)

	// GetProfileByDevice returns the profile row registered for a device.
	GetProfileByDevice(ctx context.Context, deviceID string) (map[string]any, error)

	// UpsertProfile upserts a profile with device_id as the conflict key and
	// returns the stored row, which carries the server-assigned id.
	UpsertProfile(ctx context.Context, p models.UserProfile) (map[string]any, error)

	// QueryArchivedReports returns up to limit submitted report rows for
	// userID (all users when empty), newest first, with the owning project
	// name joined in.
	QueryArchivedReports(ctx context.Context, userID string, limit int) ([]map[string]any, error)

	// UpsertReportSection upserts one finalized section keyed by
	// (report id, section key), making repeated submissions idempotent.
	UpsertReportSection(ctx context.Context, reportID string, section models.ReportSection) error

	// MarkReportSubmitted flips the report status to submitted and stamps
	// the submission time.
	MarkReportSubmitted(ctx context.Context, reportID string, at time.Time) error

	// DeleteReport removes a submitted report row and its owned section
	// rows from the remote store.
	DeleteReport(ctx context.Context, reportID string) error

	// UploadPhoto transfers one photo's payload and metadata, returning the
	// identifiers the backend assigned.
	UploadPhoto(ctx context.Context, p *models.Photo) (*PhotoUpload, error)

	// DeletePhoto removes a previously uploaded photo and its stored binary.
	DeletePhoto(ctx context.Context, remoteID string) error

	// Close releases transport resources.
	Close() error
}
