package profile

import (
	"time"

	"github.com/google/uuid"

	"github.com/cocreateceo/Vedic-Astro-sub002/internal/domain/chart"
	"github.com/cocreateceo/Vedic-Astro-sub002/internal/domain/ephemeris"
)

// Profile is a named birth record with its computed chart.
type Profile struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Birth     chart.Request   `json:"birth"`
	Chart     ephemeris.Chart `json:"chart"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CreateRequest is the payload for saving a profile.
type CreateRequest struct {
	Name  string        `json:"name"`
	Birth chart.Request `json:"birth"`
}

// StoredObject captures persisted export metadata.
type StoredObject struct {
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
	ETag     string `json:"etag"`
}

// ExportDocument is the JSON written to object storage for a profile.
type ExportDocument struct {
	ID         uuid.UUID         `json:"id"`
	Name       string            `json:"name"`
	Birth      chart.Request     `json:"birth"`
	Chart      ephemeris.Chart   `json:"chart"`
	Placements []chart.Placement `json:"placements"`
	ExportedAt time.Time         `json:"exportedAt"`
}
