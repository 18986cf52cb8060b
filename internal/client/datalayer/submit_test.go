package datalayer

import (
	"context"
	"testing"

	"github.com/fieldworks/sitereport/internal/client/models"
	"github.com/fieldworks/sitereport/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSubmission() Submission {
	return Submission{
		ReportID: "r1",
		Sections: []models.ReportSection{
			{Key: "work_performed", Title: "Work Performed", Content: "poured footings", Order: 0},
			{Key: "weather", Title: "Weather", Content: "clear, 34C", Order: 1},
		},
	}
}

func TestSubmitFinalReport_OfflineFailsFast(t *testing.T) {
	e := newEnv(t)
	e.online = false

	err := e.svc.SubmitFinalReport(context.Background(), sampleSubmission())
	require.ErrorIs(t, err, common.ErrOffline)
	assert.Empty(t, e.remote.submitted)
}

func TestSubmitFinalReport_UpsertsSectionsThenFlipsStatus(t *testing.T) {
	e := newEnv(t)

	require.NoError(t, e.svc.SubmitFinalReport(context.Background(), sampleSubmission()))
	assert.Len(t, e.remote.sections["r1"], 2)
	assert.Equal(t, []string{"r1"}, e.remote.submitted)
}

func TestSubmitFinalReport_SectionFailureLeavesReportResubmittable(t *testing.T) {
	e := newEnv(t)
	e.remote.sectionErrOn = "weather"

	err := e.svc.SubmitFinalReport(context.Background(), sampleSubmission())
	require.Error(t, err)
	assert.Empty(t, e.remote.submitted, "status must not flip after a failed section")

	// retry after the backend recovers; sections upsert in place
	e.remote.sectionErrOn = ""
	require.NoError(t, e.svc.SubmitFinalReport(context.Background(), sampleSubmission()))
	assert.Len(t, e.remote.sections["r1"], 2)
	assert.Equal(t, []string{"r1"}, e.remote.submitted)
}

func TestClearAfterSubmit_RemovesDraftCacheAndPhotos(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.svc.SaveDraft(ctx, "p1", "2026-08-30", map[string]any{"workPerformed": "x"}))
	require.NoError(t, e.svc.CacheAIResponse(ctx, "r1", "narrative"))
	_, err := e.svc.SavePhoto(ctx, models.Photo{ReportID: "r1", Blob: []byte("jpg")})
	require.NoError(t, err)
	_, err = e.svc.SavePhoto(ctx, models.Photo{ReportID: "r1", Blob: []byte("jpg2")})
	require.NoError(t, err)

	require.NoError(t, e.svc.ClearAfterSubmit(ctx, "p1", "2026-08-30", "r1"))

	d, err := e.svc.GetCurrentDraft(ctx, "p1", "2026-08-30")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, ok := e.svc.GetCachedAIResponse(ctx, "r1")
	assert.False(t, ok)

	photos, err := e.svc.GetPhotos(ctx, "r1")
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestClearAfterSubmit_OtherReportsUntouched(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.svc.SaveDraft(ctx, "p2", "2026-08-30", map[string]any{}))
	_, err := e.svc.SavePhoto(ctx, models.Photo{ReportID: "r2", Blob: []byte("jpg")})
	require.NoError(t, err)

	require.NoError(t, e.svc.ClearAfterSubmit(ctx, "p1", "2026-08-30", "r1"))

	d, err := e.svc.GetCurrentDraft(ctx, "p2", "2026-08-30")
	require.NoError(t, err)
	assert.NotNil(t, d)

	photos, err := e.svc.GetPhotos(ctx, "r2")
	require.NoError(t, err)
	assert.Len(t, photos, 1)
}

func TestLoadArchivedReports_Offline(t *testing.T) {
	e := newEnv(t)
	e.online = false

	reports, err := e.svc.LoadArchivedReports(context.Background(), 20)
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestLoadArchivedReports_NormalizesRows(t *testing.T) {
	e := newEnv(t)
	e.remote.archives = []map[string]any{
		{"id": "r1", "report_date": "2026-08-29", "status": "submitted",
			"projects": map[string]any{"project_name": "Levee North"}},
	}

	reports, err := e.svc.LoadArchivedReports(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "Levee North", reports[0].ProjectName)
	assert.True(t, reports[0].Submitted)
}

func TestLoadArchivedReports_FailureDegradesToEmpty(t *testing.T) {
	e := newEnv(t)
	e.remote.archivesErr = remoteErr("backend down")

	reports, err := e.svc.LoadArchivedReports(context.Background(), 20)
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestDeleteArchivedReport_Offline(t *testing.T) {
	e := newEnv(t)
	e.online = false

	err := e.svc.DeleteArchivedReport(context.Background(), "r1")
	require.ErrorIs(t, err, common.ErrOffline)
	assert.Empty(t, e.remote.deletedReports)
}

func TestDeleteArchivedReport_RemovesRemoteRow(t *testing.T) {
	e := newEnv(t)

	require.NoError(t, e.svc.DeleteArchivedReport(context.Background(), "r1"))
	assert.Equal(t, []string{"r1"}, e.remote.deletedReports)
}

func TestDeleteArchivedReport_FailureSurfaces(t *testing.T) {
	e := newEnv(t)
	e.remote.deleteReportErr = remoteErr("backend down")

	err := e.svc.DeleteArchivedReport(context.Background(), "r1")
	require.Error(t, err)
	assert.Empty(t, e.remote.deletedReports)
}
