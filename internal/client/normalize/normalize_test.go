package normalize

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fieldworks/sitereport/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_LegacyAndWireShapesCollapse(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"canonical", map[string]any{
			"id": "p1", "name": "Levee North", "noabProjectNo": "N-100",
			"primeContractor": "Acme", "userId": "u1", "status": "active",
		}},
		{"wire snake_case", map[string]any{
			"id": "p1", "project_name": "Levee North", "noab_project_no": "N-100",
			"prime_contractor": "Acme", "user_id": "u1", "status": "active",
		}},
		{"legacy projectName", map[string]any{
			"id": "p1", "projectName": "Levee North", "noabProjectNo": "N-100",
			"primeContractor": "Acme", "userId": "u1",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Project(tt.raw)
			assert.Equal(t, "p1", p.ID)
			assert.Equal(t, "Levee North", p.Name)
			assert.Equal(t, "Levee North", p.ProjectName)
			assert.Equal(t, "N-100", p.NOABProjectNo)
			assert.Equal(t, "Acme", p.PrimeContractor)
			assert.Equal(t, "u1", p.UserID)
			assert.Equal(t, "active", p.Status)
		})
	}
}

func TestProject_Defaults(t *testing.T) {
	p := Project(map[string]any{"id": "p1"})

	assert.Equal(t, "active", p.Status)
	require.NotNil(t, p.Contractors)
	assert.Empty(t, p.Contractors)
	assert.Nil(t, p.LogoURL)
}

func TestProject_Idempotent(t *testing.T) {
	first := Project(map[string]any{
		"id": "p1", "project_name": "Levee North", "user_id": "u1",
		"contractors": []any{
			map[string]any{"id": "c1", "project_id": "p1", "name": "Jo", "company": "Acme"},
		},
	})

	// canonical output fed back through the normalizer must be a fixed point
	data, err := json.Marshal(first)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	second := Project(raw)
	assert.Equal(t, first, second)
}

func TestProject_NilInput(t *testing.T) {
	assert.Equal(t, models.Project{}, Project(nil))
}

func TestContractor_Defaults(t *testing.T) {
	c := Contractor(map[string]any{"id": "c1", "name": "Jo", "company": "Acme"})

	assert.Equal(t, "sub", c.Type)
	assert.Equal(t, "active", c.Status)
}

func TestUserProfile_ParsesTimestamp(t *testing.T) {
	p := UserProfile(map[string]any{
		"id": "u1", "device_id": "d1", "full_name": "Sam Rivera",
		"updated_at": "2026-08-30T10:00:00Z",
	})

	assert.Equal(t, "u1", p.ID)
	assert.Equal(t, "d1", p.DeviceID)
	assert.Equal(t, "Sam Rivera", p.FullName)
	assert.Equal(t, time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC), p.UpdatedAt)
}

func TestUserProfile_BadTimestampIsZero(t *testing.T) {
	p := UserProfile(map[string]any{"device_id": "d1", "updated_at": "yesterday"})
	assert.True(t, p.UpdatedAt.IsZero())
}

func TestArchivedReport_JoinedProjectName(t *testing.T) {
	r := ArchivedReport(map[string]any{
		"id": "r1", "report_date": "2026-08-29", "project_id": "p1",
		"status": "submitted", "photo_count": float64(3),
		"created_at":   "2026-08-29T16:00:00Z",
		"submitted_at": "2026-08-29T17:30:00Z",
		"projects":     map[string]any{"project_name": "Levee North"},
	})

	assert.Equal(t, "r1", r.ID)
	assert.Equal(t, "2026-08-29", r.Date)
	assert.Equal(t, "Levee North", r.ProjectName)
	assert.True(t, r.Submitted)
	assert.Equal(t, 3, r.PhotoCount)
	require.NotNil(t, r.SubmittedAt)
	assert.Equal(t, 17, r.SubmittedAt.UTC().Hour())
}
