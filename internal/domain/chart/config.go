package chart

import "time"

// Config holds runtime knobs for the chart service.
type Config struct {
	CacheTTL     time.Duration
	MaxBatch     int
	BatchWorkers int
}
