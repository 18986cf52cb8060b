package models

import "time"

// UserProfile holds the inspector identity for one physical device, keyed by
// DeviceID. At most one profile is current per device.
//
// ID is assigned by the remote store the first time the profile is upserted
// and must be captured locally then; local code never invents it. UpdatedAt
// drives cross-tier conflict resolution: the strictly newer record wins,
// ties keep the local copy.
type UserProfile struct {
	ID        string    `json:"id,omitempty"`
	DeviceID  string    `json:"deviceId"`
	FullName  string    `json:"fullName"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	UpdatedAt time.Time `json:"updatedAt"`
}
