package datalayer

import (
	"context"

	"github.com/fieldworks/sitereport/internal/client/flagstore"
	"github.com/fieldworks/sitereport/internal/client/models"
)

func (s *Service) loadAICache() map[string]models.AIResponse {
	cache := map[string]models.AIResponse{}
	if _, err := s.flags.Get(flagstore.KeyAICache, &cache); err != nil {
		return map[string]models.AIResponse{}
	}
	return cache
}

// CacheAIResponse stores a generated narrative for a report so it
// survives restarts and offline periods.
func (s *Service) CacheAIResponse(ctx context.Context, reportID, response string) error {
	cache := s.loadAICache()
	cache[reportID] = models.AIResponse{
		Response: response,
		CachedAt: s.now().UTC(),
	}
	return s.flags.Set(flagstore.KeyAICache, cache)
}

// GetCachedAIResponse returns the cached narrative for a report, if any.
func (s *Service) GetCachedAIResponse(ctx context.Context, reportID string) (string, bool) {
	cache := s.loadAICache()
	r, ok := cache[reportID]
	if !ok {
		return "", false
	}
	return r.Response, true
}

// ClearAIResponseCache drops the cached narrative for a report.
// Clearing an absent entry is a no-op.
func (s *Service) ClearAIResponseCache(ctx context.Context, reportID string) error {
	cache := s.loadAICache()
	if _, ok := cache[reportID]; !ok {
		return nil
	}
	delete(cache, reportID)
	return s.flags.Set(flagstore.KeyAICache, cache)
}
