package model

import "time"

// Tariff is a purchasable hotspot access package. Immutable once purchased
// against; created and edited only through the admin API.
type Tariff struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DataBytes       int64  `json:"data_bytes"`
	DurationSeconds int64  `json:"duration_seconds"`
	PriceCFA        int64  `json:"price_cfa"`
	SpeedLimit      string `json:"speed_limit,omitempty"` // e.g. "2M/2M", empty means unlimited
	CreatedAt       time.Time `json:"created_at"`
}
