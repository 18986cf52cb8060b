package datalayer

import (
	"context"
	"sort"

	"github.com/fieldworks/sitereport/internal/client/flagstore"
	"github.com/fieldworks/sitereport/internal/client/models"
)

// Drafts live in the flag store keyed by projectId_date so each project
// and day gets its own working copy. Draft operations never touch the
// remote.

func (s *Service) loadDrafts() map[string]models.Draft {
	drafts := map[string]models.Draft{}
	if _, err := s.flags.Get(flagstore.KeyDrafts, &drafts); err != nil {
		return map[string]models.Draft{}
	}
	return drafts
}

// GetCurrentDraft returns the draft for a project and date, or nil.
func (s *Service) GetCurrentDraft(ctx context.Context, projectID, date string) (*models.Draft, error) {
	drafts := s.loadDrafts()
	d, ok := drafts[models.DraftKey(projectID, date)]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

// SaveDraft stores the working copy for a project and date, stamping
// the update time.
func (s *Service) SaveDraft(ctx context.Context, projectID, date string, content map[string]any) error {
	drafts := s.loadDrafts()
	drafts[models.DraftKey(projectID, date)] = models.Draft{
		ProjectID: projectID,
		Date:      date,
		Content:   content,
		UpdatedAt: s.now().UTC(),
	}
	return s.flags.Set(flagstore.KeyDrafts, drafts)
}

// DeleteDraft removes the draft for a project and date. Deleting an
// absent draft is a no-op.
func (s *Service) DeleteDraft(ctx context.Context, projectID, date string) error {
	drafts := s.loadDrafts()
	key := models.DraftKey(projectID, date)
	if _, ok := drafts[key]; !ok {
		return nil
	}
	delete(drafts, key)
	return s.flags.Set(flagstore.KeyDrafts, drafts)
}

// GetAllDrafts lists every stored draft, most recently updated first.
func (s *Service) GetAllDrafts(ctx context.Context) ([]models.Draft, error) {
	drafts := s.loadDrafts()
	out := make([]models.Draft, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}
