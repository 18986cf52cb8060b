package datalayer

import (
	"context"
	"encoding/json"
)

// listSpec parameterizes the tiered read for list operations. The
// algorithm is the same for every entity; only these hooks differ.
type listSpec[C any] struct {
	name      string
	local     func(ctx context.Context) ([]map[string]any, error)
	scope     func(raw map[string]any) bool
	fetch     func(ctx context.Context) ([]map[string]any, error)
	normalize func(raw map[string]any) C
	writeBack func(ctx context.Context, items []C)
}

// oneSpec parameterizes the tiered read for single-entity operations.
// fetch returning (nil, nil) means the entity does not exist remotely.
type oneSpec[C any] struct {
	name      string
	local     func(ctx context.Context) (map[string]any, bool, error)
	scope     func(raw map[string]any) bool
	fetch     func(ctx context.Context) (map[string]any, error)
	normalize func(raw map[string]any) C
	writeBack func(ctx context.Context, item C)
}

// resolveList runs the tiered read: local records that pass the scope
// filter win outright; otherwise the remote is consulted when online,
// results are normalized and written back best-effort. Remote failures
// degrade to an empty slice, never an error.
func resolveList[C any](ctx context.Context, s *Service, spec listSpec[C]) ([]C, error) {
	raws, err := spec.local(ctx)
	if err != nil {
		s.log.Warn(ctx, "local read failed, falling through", "collection", spec.name, "error", err)
	}
	var matched []C
	for _, raw := range raws {
		if spec.scope != nil && !spec.scope(raw) {
			continue
		}
		matched = append(matched, spec.normalize(raw))
	}
	if len(matched) > 0 {
		return matched, nil
	}

	if !s.online() {
		s.log.Debug(ctx, "offline, skipping remote fetch", "collection", spec.name)
		return []C{}, nil
	}
	fetched, err := spec.fetch(ctx)
	if err != nil {
		s.log.Warn(ctx, "remote fetch failed", "collection", spec.name, "error", err)
		return []C{}, nil
	}
	items := make([]C, 0, len(fetched))
	for _, raw := range fetched {
		items = append(items, spec.normalize(raw))
	}
	if spec.writeBack != nil && len(items) > 0 {
		spec.writeBack(ctx, items)
	}
	return items, nil
}

// resolveOne is the single-entity variant. A remote transport failure is
// surfaced to the caller; a remote miss is (nil, nil).
func resolveOne[C any](ctx context.Context, s *Service, spec oneSpec[C]) (*C, error) {
	raw, found, err := spec.local(ctx)
	if err != nil {
		s.log.Warn(ctx, "local read failed, falling through", "collection", spec.name, "error", err)
	}
	if found && (spec.scope == nil || spec.scope(raw)) {
		item := spec.normalize(raw)
		return &item, nil
	}

	if !s.online() {
		s.log.Debug(ctx, "offline, skipping remote fetch", "collection", spec.name)
		return nil, nil
	}
	fetched, err := spec.fetch(ctx)
	if err != nil {
		return nil, err
	}
	if fetched == nil {
		return nil, nil
	}
	item := spec.normalize(fetched)
	if spec.writeBack != nil {
		spec.writeBack(ctx, item)
	}
	return &item, nil
}

// decodeRecords turns raw store payloads into generic maps, dropping
// any row that fails to decode.
func decodeRecords(raws []json.RawMessage) []map[string]any {
	out := make([]map[string]any, 0, len(raws))
	for _, r := range raws {
		var m map[string]any
		if err := json.Unmarshal(r, &m); err != nil {
			continue
		}
		out = append(out, m)
	}
	return out
}

// toRaw converts a canonical record back to a generic map for storage.
func toRaw(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
