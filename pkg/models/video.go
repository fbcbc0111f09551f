package models

import "time"

// VideoAsset is a persisted screen recording. ID is unique within one store
// snapshot; CreatedAt ordering (newest first) is the canonical list order.
type VideoAsset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`      // playable locator: file URI, presigned URL or mock placeholder
	Size      int64     `json:"size"`
	Duration  float64   `json:"duration"` // seconds; stays 0 until media metadata extraction lands
	CreatedAt time.Time `json:"created_at"`
	Path      string    `json:"path"` // relative to the recordings directory
}
