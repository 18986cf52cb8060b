package models

import (
	"fmt"
	"time"
)

// SyncStatus is the lifecycle stage of a locally captured photo relative to
// remote upload.
type SyncStatus string

const (
	// SyncPending — captured locally, upload not yet attempted or retried.
	SyncPending SyncStatus = "pending"
	// SyncSynced — uploaded; remote id and storage path are populated.
	SyncSynced SyncStatus = "synced"
	// SyncFailed — last upload attempt failed; retry bookkeeping recorded.
	SyncFailed SyncStatus = "failed"
	// SyncPendingDelete — local record removed after upload; remote cleanup
	// is still owed and a background sweep detects it via this status.
	SyncPendingDelete SyncStatus = "pending-delete"
)

// syncTransitions enumerates the allowed status transitions of the
// attachment state machine. Synced records leave the store by deletion, not
// by a further transition.
var syncTransitions = map[SyncStatus][]SyncStatus{
	SyncPending:       {SyncSynced, SyncFailed, SyncPendingDelete},
	SyncFailed:        {SyncPending, SyncSynced, SyncFailed, SyncPendingDelete},
	SyncPendingDelete: {SyncPending},
	SyncSynced:        {SyncPendingDelete},
}

// CanTransition reports whether moving from s to next is a legal step.
func (s SyncStatus) CanTransition(next SyncStatus) bool {
	for _, allowed := range syncTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// GPS is an optional capture location.
type GPS struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Photo is one captured image bound to a not-yet-submitted report. The sync
// queue owns every field mutation except Caption.
type Photo struct {
	ID              string     `json:"id"`
	ReportID        string     `json:"reportId"`
	Blob            []byte     `json:"blob"`
	Caption         string     `json:"caption"`
	Timestamp       time.Time  `json:"timestamp"`
	GPS             *GPS       `json:"gps"`
	SyncStatus      SyncStatus `json:"syncStatus"`
	RetryCount      int        `json:"retryCount"`
	LastSyncAttempt *time.Time `json:"lastSyncAttempt"`
	RemoteID        *string    `json:"remoteId"`
	StoragePath     *string    `json:"storagePath"`
}

// Transition moves the photo to the next status, enforcing the state machine.
func (p *Photo) Transition(next SyncStatus) error {
	if !p.SyncStatus.CanTransition(next) {
		return fmt.Errorf("illegal sync transition %s -> %s for photo %s", p.SyncStatus, next, p.ID)
	}
	p.SyncStatus = next
	return nil
}
