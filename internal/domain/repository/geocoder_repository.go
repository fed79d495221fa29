package repository

import "context"

// GeocoderRepository resolves coordinates to a human-readable address.
// Best-effort by contract: callers treat any error or empty result as
// "address unknown" and continue.
type GeocoderRepository interface {
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}
