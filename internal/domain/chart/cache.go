package chart

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/cocreateceo/Vedic-Astro-sub002/internal/domain/ephemeris"
)

// Cache stores computed charts keyed by their canonical birth input.
type Cache interface {
	Get(ctx context.Context, key string) (ephemeris.Chart, bool, error)
	Set(ctx context.Context, key string, chart ephemeris.Chart, ttl time.Duration) error
}

// cacheKey hashes the canonical engine input. Equal inputs always map to the
// same chart, so the key never needs a version beyond its prefix.
func cacheKey(in ephemeris.BirthInput) string {
	fields := []string{
		in.Date,
		in.Time,
		strconv.FormatFloat(in.UTCOffsetHours, 'f', -1, 64),
		strconv.FormatFloat(in.Lat, 'f', -1, 64),
		strconv.FormatFloat(in.Lng, 'f', -1, 64),
	}
	sum := sha256.Sum256([]byte(strings.Join(fields, "|")))
	return "chart:v1:" + hex.EncodeToString(sum[:])
}
