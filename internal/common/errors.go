// Package common defines the sentinel errors shared across the sitereport
// data layer. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrStorageUnavailable means the local storage engine could not be
	// opened or operated on. Read paths degrade to empty results; write
	// paths are best-effort.
	ErrStorageUnavailable = errors.New("local storage unavailable")

	// ErrNotFound marks a referenced collection, index or record as absent.
	// Lookups return an empty result instead; only structural operations
	// (clear on an unknown collection) surface it.
	ErrNotFound = errors.New("not found")

	// ErrRemoteQueryFailed means the remote store returned an error or was
	// unreachable. List operations degrade to empty; single-entity
	// operations surface it.
	ErrRemoteQueryFailed = errors.New("remote query failed")

	// ErrOffline marks an operation that structurally requires
	// connectivity (report submission) invoked while offline.
	ErrOffline = errors.New("offline")

	// ErrSyncAttemptFailed marks a failed attachment upload. It is recorded
	// on the attachment record, never propagated to callers.
	ErrSyncAttemptFailed = errors.New("sync attempt failed")

	// ErrSavedLocalOnly reports a profile save that succeeded locally but
	// could not reach the remote store. Not fatal: the caller should tell
	// the user to retry when online.
	ErrSavedLocalOnly = errors.New("saved locally only")
)
