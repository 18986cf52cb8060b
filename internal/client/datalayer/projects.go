package datalayer

import (
	"context"

	"github.com/fieldworks/sitereport/internal/client/localstore"
	"github.com/fieldworks/sitereport/internal/client/models"
	"github.com/fieldworks/sitereport/internal/client/normalize"
)

// LoadProjects returns the projects visible to the current user. Cached
// projects win; the remote is only consulted when the cache has nothing
// in scope. Offline with an empty cache yields an empty list, not an
// error.
func (s *Service) LoadProjects(ctx context.Context) ([]models.Project, error) {
	userID := s.userID()
	return resolveList(ctx, s, listSpec[models.Project]{
		name: localstore.CollectionProjects,
		local: func(ctx context.Context) ([]map[string]any, error) {
			raws, err := s.local.GetAll(ctx, localstore.CollectionProjects)
			if err != nil {
				return nil, err
			}
			return decodeRecords(raws), nil
		},
		scope: projectOwnedBy(userID),
		fetch: func(ctx context.Context) ([]map[string]any, error) {
			return s.remote.QueryProjects(ctx, userID)
		},
		normalize: normalize.Project,
		writeBack: func(ctx context.Context, items []models.Project) {
			s.cacheProjects(ctx, items)
		},
	})
}

// LoadActiveProject resolves the currently selected project, with its
// contractors. Returns (nil, nil) when no project is selected or the
// selected project cannot be found.
func (s *Service) LoadActiveProject(ctx context.Context) (*models.Project, error) {
	activeID := s.GetActiveProjectID()
	if activeID == "" {
		s.log.Debug(ctx, "no active project selected")
		return nil, nil
	}
	userID := s.userID()
	return resolveOne(ctx, s, oneSpec[models.Project]{
		name: localstore.CollectionProjects,
		local: func(ctx context.Context) (map[string]any, bool, error) {
			var raw map[string]any
			found, err := s.local.Get(ctx, localstore.CollectionProjects, activeID, &raw)
			if err != nil || !found {
				return nil, false, err
			}
			return raw, true, nil
		},
		scope: projectOwnedBy(userID),
		fetch: func(ctx context.Context) (map[string]any, error) {
			raw, err := s.remote.GetProject(ctx, activeID)
			if err != nil || raw == nil {
				return nil, err
			}
			// Contractor rows are an enrichment; losing them is not
			// worth failing the whole lookup.
			rows, cerr := s.remote.QueryContractors(ctx, activeID)
			if cerr != nil {
				s.log.Warn(ctx, "contractor fetch failed", "projectId", activeID, "error", cerr)
				rows = nil
			}
			anyRows := make([]any, 0, len(rows))
			for _, r := range rows {
				anyRows = append(anyRows, r)
			}
			raw["contractors"] = anyRows
			return raw, nil
		},
		normalize: normalize.Project,
		writeBack: func(ctx context.Context, item models.Project) {
			s.cacheProjects(ctx, []models.Project{item})
		},
	})
}

// projectOwnedBy scopes cached project rows to the given user. With no
// known user every row is in scope; once a user id exists, rows without a
// matching owner are excluded, including rows carrying no owner at all.
func projectOwnedBy(userID string) func(map[string]any) bool {
	return func(raw map[string]any) bool {
		if userID == "" {
			return true
		}
		return normalize.First(raw, "userId", "user_id") == userID
	}
}

// cacheProjects writes canonical projects back to the local store.
// Failures are logged and swallowed; the caller already has the data.
func (s *Service) cacheProjects(ctx context.Context, items []models.Project) {
	for _, p := range items {
		raw, err := toRaw(p)
		if err != nil {
			continue
		}
		if err := s.local.Put(ctx, localstore.CollectionProjects, raw); err != nil {
			s.log.Warn(ctx, "project cache write failed", "projectId", p.ID, "error", err)
		}
	}
}
