package models

import "time"

// Draft is in-progress report content, keyed by (projectId, date). It lives
// only in the ephemeral flag store and is never sent to the remote store.
type Draft struct {
	ProjectID string         `json:"projectId"`
	Date      string         `json:"date"`
	Content   map[string]any `json:"content"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// DraftKey builds the composite key a draft is stored under.
func DraftKey(projectID, date string) string {
	return projectID + "_" + date
}

// ReportSection is one finalized section of a submitted report. Sections are
// upserted keyed by (report, Key) so repeated submissions are idempotent.
type ReportSection struct {
	Key     string `json:"key"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

// ArchivedReport is a submitted report row as listed on the archives page.
type ArchivedReport struct {
	ID          string     `json:"id"`
	Date        string     `json:"date"`
	ProjectID   string     `json:"projectId"`
	ProjectName string     `json:"projectName"`
	Submitted   bool       `json:"submitted"`
	PhotoCount  int        `json:"photoCount"`
	CreatedAt   time.Time  `json:"createdAt"`
	SubmittedAt *time.Time `json:"submittedAt"`
}

// AIResponse is a memoized generated-text artifact for one report. It is
// invalidated explicitly on submission or cache clear, never by TTL.
type AIResponse struct {
	Response string    `json:"response"`
	CachedAt time.Time `json:"cachedAt"`
}
