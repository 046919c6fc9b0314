package domain

import "time"

// ActivityLog is an append-only audit row. Entries are never mutated;
// admins may bulk delete the petugas-scoped subset.
type ActivityLog struct {
	ID        int32     `json:"id"`
	UserID    int32     `json:"user_id"`
	UserName  string    `json:"user_nama,omitempty"`
	Action    string    `json:"aktivitas"`
	Detail    string    `json:"detail"`
	CreatedOn time.Time `json:"created_at"`
}
