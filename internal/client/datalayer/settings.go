package datalayer

import (
	"context"
	"fmt"

	"github.com/fieldworks/sitereport/internal/client/flagstore"
	"github.com/fieldworks/sitereport/internal/client/localstore"
	"github.com/fieldworks/sitereport/internal/client/models"
	"github.com/fieldworks/sitereport/internal/client/normalize"
	"github.com/fieldworks/sitereport/internal/common"
)

// LoadUserSettings returns the profile for this device. When online it
// reconciles the cached copy against the remote row: the strictly newer
// updatedAt wins, ties keep the local copy. Returns (nil, nil) when no
// profile exists anywhere yet.
func (s *Service) LoadUserSettings(ctx context.Context) (*models.UserProfile, error) {
	deviceID, err := s.flags.DeviceID()
	if err != nil {
		return nil, err
	}

	var local *models.UserProfile
	var raw map[string]any
	found, err := s.local.Get(ctx, localstore.CollectionUserProfile, deviceID, &raw)
	if err != nil {
		s.log.Warn(ctx, "profile cache read failed", "error", err)
	}
	if found {
		p := normalize.UserProfile(raw)
		local = &p
	}

	if !s.online() {
		return local, nil
	}
	remoteRaw, err := s.remote.GetProfileByDevice(ctx, deviceID)
	if err != nil {
		s.log.Warn(ctx, "profile remote fetch failed", "error", err)
		return local, nil
	}
	if remoteRaw == nil {
		return local, nil
	}

	cloud := normalize.UserProfile(remoteRaw)
	if local != nil && !cloud.UpdatedAt.After(local.UpdatedAt) {
		return local, nil
	}
	cloud.DeviceID = deviceID
	s.cacheProfile(ctx, cloud)
	return &cloud, nil
}

// SaveUserSettings persists the profile locally, then pushes it to the
// remote. A remote failure or being offline returns ErrSavedLocalOnly
// with the local copy intact; the caller can retry later. The
// server-issued profile id is captured on the first successful push.
func (s *Service) SaveUserSettings(ctx context.Context, p models.UserProfile) (models.UserProfile, error) {
	deviceID, err := s.flags.DeviceID()
	if err != nil {
		return p, err
	}
	p.DeviceID = deviceID
	if p.ID == "" {
		p.ID = s.userID()
	}
	p.UpdatedAt = s.now().UTC()

	if err := s.putProfile(ctx, p); err != nil {
		s.log.Warn(ctx, "profile cache write failed", "error", err)
	}

	if !s.online() {
		return p, fmt.Errorf("%w: profile will sync when back online", common.ErrSavedLocalOnly)
	}
	row, err := s.remote.UpsertProfile(ctx, p)
	if err != nil {
		s.log.Warn(ctx, "profile remote save failed", "error", err)
		return p, fmt.Errorf("%w: %v", common.ErrSavedLocalOnly, err)
	}
	// Only the server-issued id is taken from the response; the local copy
	// stays canonical so a partial representation cannot clobber fields.
	if id := normalize.First(row, "id"); id != "" && id != p.ID {
		p.ID = id
		if err := s.flags.SetString(flagstore.KeyUserID, id); err != nil {
			s.log.Warn(ctx, "user id flag write failed", "error", err)
		}
		s.cacheProfile(ctx, p)
	}
	return p, nil
}

func (s *Service) cacheProfile(ctx context.Context, p models.UserProfile) {
	if err := s.putProfile(ctx, p); err != nil {
		s.log.Warn(ctx, "profile cache write failed", "error", err)
	}
}

func (s *Service) putProfile(ctx context.Context, p models.UserProfile) error {
	raw, err := toRaw(p)
	if err != nil {
		return err
	}
	return s.local.Put(ctx, localstore.CollectionUserProfile, raw)
}
