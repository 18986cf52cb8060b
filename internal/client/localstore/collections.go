package localstore

// Collection names exposed to callers. Every operation validates its
// collection (and index) against this registry; unknown names fail with
// common.ErrNotFound rather than touching the database.
const (
	CollectionProjects    = "projects"
	CollectionUserProfile = "userProfile"
	CollectionPhotos      = "photos"
)

// Secondary index names of the photos collection.
const (
	IndexPhotosReportID   = "reportId"
	IndexPhotosSyncStatus = "syncStatus"
)

// collection declares how one named collection is persisted: its backing
// table, the JSON field records are keyed by, and the JSON fields its
// secondary indexes cover. The expression indexes themselves are created by
// the embedded migrations.
type collection struct {
	table    string
	keyField string
	indexes  map[string]string
}

var collections = map[string]collection{
	CollectionProjects: {
		table:    "projects",
		keyField: "id",
	},
	CollectionUserProfile: {
		table:    "user_profile",
		keyField: "deviceId",
	},
	CollectionPhotos: {
		table:    "photos",
		keyField: "id",
		indexes: map[string]string{
			IndexPhotosReportID:   "reportId",
			IndexPhotosSyncStatus: "syncStatus",
		},
	},
}
