// Package normalize collapses the heterogeneous record shapes of the remote
// wire format (snake_case), the canonical cache format (camelCase), and any
// stale mix of the two into exactly one canonical shape per entity type.
//
// Every canonical field is described by an ordered alias list plus a default;
// one generic lookup walks the aliases and the first non-empty match wins.
// Adding a legacy alias is a data change, not new code. Normalization is
// idempotent: the canonical name is always the first alias of its own list,
// so normalizing an already-normalized record is the identity.
package normalize

import (
	"time"

	"github.com/fieldworks/sitereport/internal/client/models"
)

// field describes one canonical field: ordered source aliases and the
// default used when no alias yields a non-empty value.
type field struct {
	aliases []string
	def     string
}

var projectFields = map[string]field{
	"name":              {aliases: []string{"name", "projectName", "project_name"}},
	"noabProjectNo":     {aliases: []string{"noabProjectNo", "noab_project_no"}},
	"cnoSolicitationNo": {aliases: []string{"cnoSolicitationNo", "cno_solicitation_no"}},
	"location":          {aliases: []string{"location"}},
	"primeContractor":   {aliases: []string{"primeContractor", "prime_contractor"}},
	"status":            {aliases: []string{"status"}, def: "active"},
	"userId":            {aliases: []string{"userId", "user_id"}},
	"logoUrl":           {aliases: []string{"logoUrl", "logo_url"}},
	"logoThumbnail":     {aliases: []string{"logoThumbnail", "logo_thumbnail"}},
}

var contractorFields = map[string]field{
	"projectId": {aliases: []string{"projectId", "project_id"}},
	"name":      {aliases: []string{"name"}},
	"company":   {aliases: []string{"company"}},
	"type":      {aliases: []string{"type"}, def: "sub"},
	"status":    {aliases: []string{"status"}, def: "active"},
}

var profileFields = map[string]field{
	"deviceId": {aliases: []string{"deviceId", "device_id"}},
	"fullName": {aliases: []string{"fullName", "full_name"}},
	"title":    {aliases: []string{"title"}},
	"company":  {aliases: []string{"company"}},
	"email":    {aliases: []string{"email"}},
	"phone":    {aliases: []string{"phone"}},
}

// First returns the first non-empty string among the aliases in raw.
func First(raw map[string]any, aliases ...string) string {
	for _, a := range aliases {
		if v, ok := raw[a]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func pick(raw map[string]any, f field) string {
	if s := First(raw, f.aliases...); s != "" {
		return s
	}
	return f.def
}

func pickOpt(raw map[string]any, f field) *string {
	if s := First(raw, f.aliases...); s != "" {
		return &s
	}
	return nil
}

func pickTime(raw map[string]any, aliases ...string) time.Time {
	if s := First(raw, aliases...); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Project maps any plausible project shape to the canonical one.
// Name and ProjectName are kept identical; nil input yields the zero value.
func Project(raw map[string]any) models.Project {
	if raw == nil {
		return models.Project{}
	}
	name := pick(raw, projectFields["name"])
	p := models.Project{
		ID:                First(raw, "id"),
		Name:              name,
		ProjectName:       name,
		NOABProjectNo:     pick(raw, projectFields["noabProjectNo"]),
		CNOSolicitationNo: pick(raw, projectFields["cnoSolicitationNo"]),
		Location:          pick(raw, projectFields["location"]),
		PrimeContractor:   pick(raw, projectFields["primeContractor"]),
		Status:            pick(raw, projectFields["status"]),
		UserID:            pick(raw, projectFields["userId"]),
		LogoURL:           pickOpt(raw, projectFields["logoUrl"]),
		LogoThumbnail:     pickOpt(raw, projectFields["logoThumbnail"]),
		Contractors:       []models.Contractor{},
	}
	if list, ok := raw["contractors"].([]any); ok {
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				p.Contractors = append(p.Contractors, Contractor(m))
			}
		}
	}
	return p
}

// Contractor maps any plausible contractor shape to the canonical one.
func Contractor(raw map[string]any) models.Contractor {
	if raw == nil {
		return models.Contractor{}
	}
	return models.Contractor{
		ID:        First(raw, "id"),
		ProjectID: pick(raw, contractorFields["projectId"]),
		Name:      pick(raw, contractorFields["name"]),
		Company:   pick(raw, contractorFields["company"]),
		Type:      pick(raw, contractorFields["type"]),
		Status:    pick(raw, contractorFields["status"]),
	}
}

// UserProfile maps any plausible profile shape to the canonical one.
func UserProfile(raw map[string]any) models.UserProfile {
	if raw == nil {
		return models.UserProfile{}
	}
	return models.UserProfile{
		ID:        First(raw, "id"),
		DeviceID:  pick(raw, profileFields["deviceId"]),
		FullName:  pick(raw, profileFields["fullName"]),
		Title:     pick(raw, profileFields["title"]),
		Company:   pick(raw, profileFields["company"]),
		Email:     pick(raw, profileFields["email"]),
		Phone:     pick(raw, profileFields["phone"]),
		UpdatedAt: pickTime(raw, "updatedAt", "updated_at"),
	}
}

// ArchivedReport maps a submitted-report row (with its joined project name)
// to the canonical archive listing shape.
func ArchivedReport(raw map[string]any) models.ArchivedReport {
	if raw == nil {
		return models.ArchivedReport{}
	}
	r := models.ArchivedReport{
		ID:          First(raw, "id"),
		Date:        First(raw, "date", "reportDate", "report_date"),
		ProjectID:   First(raw, "projectId", "project_id"),
		ProjectName: First(raw, "projectName", "project_name"),
		Submitted:   First(raw, "status") == "submitted" || raw["submitted"] == true,
		CreatedAt:   pickTime(raw, "createdAt", "created_at"),
	}
	if n, ok := raw["photoCount"].(float64); ok {
		r.PhotoCount = int(n)
	} else if n, ok := raw["photo_count"].(float64); ok {
		r.PhotoCount = int(n)
	}
	if t := pickTime(raw, "submittedAt", "submitted_at"); !t.IsZero() {
		r.SubmittedAt = &t
	}
	if nested, ok := raw["projects"].(map[string]any); ok && r.ProjectName == "" {
		r.ProjectName = First(nested, "projectName", "project_name")
	}
	return r
}
