package datalayer

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/fieldworks/sitereport/internal/client/flagstore"
	"github.com/fieldworks/sitereport/internal/client/localstore"
	"github.com/fieldworks/sitereport/internal/client/models"
	"github.com/fieldworks/sitereport/internal/client/photosync"
	"github.com/fieldworks/sitereport/internal/client/remote"
	"github.com/stretchr/testify/require"

	"github.com/fieldworks/sitereport/internal/logging"
)

// fakeRemote is a recording in-memory remote.Store.
type fakeRemote struct {
	pingErr error

	projects      []map[string]any
	projectsErr   error
	projectsCalls int

	contractors map[string][]map[string]any

	profileRow    map[string]any
	profileErr    error
	upsertedRows  []models.UserProfile
	upsertRow     map[string]any
	upsertErr     error

	archives    []map[string]any
	archivesErr error

	sections     map[string][]models.ReportSection
	sectionErrOn string
	submitted    []string
	submitErr    error

	deletedReports  []string
	deleteReportErr error

	uploaded []string
	deleted  []string
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		contractors: map[string][]map[string]any{},
		sections:    map[string][]models.ReportSection{},
	}
}

func (f *fakeRemote) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeRemote) QueryProjects(ctx context.Context, userID string) ([]map[string]any, error) {
	f.projectsCalls++
	return f.projects, f.projectsErr
}

func (f *fakeRemote) GetProject(ctx context.Context, id string) (map[string]any, error) {
	f.projectsCalls++
	if f.projectsErr != nil {
		return nil, f.projectsErr
	}
	for _, p := range f.projects {
		if p["id"] == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeRemote) QueryContractors(ctx context.Context, projectID string) ([]map[string]any, error) {
	return f.contractors[projectID], nil
}

func (f *fakeRemote) GetProfileByDevice(ctx context.Context, deviceID string) (map[string]any, error) {
	return f.profileRow, f.profileErr
}

func (f *fakeRemote) UpsertProfile(ctx context.Context, p models.UserProfile) (map[string]any, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	f.upsertedRows = append(f.upsertedRows, p)
	if f.upsertRow != nil {
		return f.upsertRow, nil
	}
	return map[string]any{"id": "srv-1", "device_id": p.DeviceID, "full_name": p.FullName}, nil
}

func (f *fakeRemote) QueryArchivedReports(ctx context.Context, userID string, limit int) ([]map[string]any, error) {
	if f.archivesErr != nil {
		return nil, f.archivesErr
	}
	if limit < len(f.archives) {
		return f.archives[:limit], nil
	}
	return f.archives, nil
}

func (f *fakeRemote) UpsertReportSection(ctx context.Context, reportID string, section models.ReportSection) error {
	if f.sectionErrOn != "" && section.Key == f.sectionErrOn {
		return remoteErr("section rejected")
	}
	kept := f.sections[reportID][:0]
	for _, s := range f.sections[reportID] {
		if s.Key != section.Key {
			kept = append(kept, s)
		}
	}
	f.sections[reportID] = append(kept, section)
	return nil
}

func (f *fakeRemote) MarkReportSubmitted(ctx context.Context, reportID string, at time.Time) error {
	if f.submitErr != nil {
		return f.submitErr
	}
	f.submitted = append(f.submitted, reportID)
	return nil
}

func (f *fakeRemote) DeleteReport(ctx context.Context, reportID string) error {
	if f.deleteReportErr != nil {
		return f.deleteReportErr
	}
	f.deletedReports = append(f.deletedReports, reportID)
	return nil
}

func (f *fakeRemote) UploadPhoto(ctx context.Context, p *models.Photo) (*remote.PhotoUpload, error) {
	f.uploaded = append(f.uploaded, p.ID)
	return &remote.PhotoUpload{RemoteID: "rem-" + p.ID, StoragePath: "photos/" + p.ID}, nil
}

func (f *fakeRemote) DeletePhoto(ctx context.Context, remoteID string) error {
	f.deleted = append(f.deleted, remoteID)
	return nil
}

func (f *fakeRemote) Close() error { return nil }

type remoteErr string

func (e remoteErr) Error() string { return string(e) }

// env bundles a fully wired service over real local stores and the fake
// remote.
type env struct {
	svc    *Service
	remote *fakeRemote
	local  *localstore.Store
	flags  *flagstore.Store
	online bool
}

func newEnv(t *testing.T) *env {
	t.Helper()
	log := logging.NewDefault(slog.LevelError)

	local := localstore.New(":memory:", log)
	require.NoError(t, local.Open(context.Background()))
	t.Cleanup(func() { _ = local.Close() })

	flags, err := flagstore.Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	e := &env{remote: newFakeRemote(), local: local, flags: flags, online: true}
	queue := photosync.NewQueue(local, e.remote, log)
	e.svc = New(local, flags, e.remote, queue, func() bool { return e.online }, log)
	return e
}
