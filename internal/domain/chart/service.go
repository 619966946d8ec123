package chart

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cocreateceo/Vedic-Astro-sub002/internal/domain/ephemeris"
	apperrors "github.com/cocreateceo/Vedic-Astro-sub002/pkg/errors"
)

const (
	defaultMaxBatch     = 50
	defaultBatchWorkers = 4
)

// Service computes sidereal birth charts.
type Service interface {
	Compute(ctx context.Context, req Request) (Response, error)
	ComputeBatch(ctx context.Context, reqs []Request) ([]Response, error)
}

type service struct {
	cfg    Config
	cache  Cache
	logger *slog.Logger
}

// NewService wires up the chart domain.
func NewService(cfg Config, cache Cache, logger *slog.Logger) Service {
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = defaultMaxBatch
	}
	if cfg.BatchWorkers <= 0 {
		cfg.BatchWorkers = defaultBatchWorkers
	}
	return &service{
		cfg:    cfg,
		cache:  cache,
		logger: logger.With("component", "chart.service"),
	}
}

func (s *service) Compute(ctx context.Context, req Request) (Response, error) {
	in, err := toBirthInput(req)
	if err != nil {
		return Response{}, err
	}
	return s.compute(ctx, in)
}

func (s *service) ComputeBatch(ctx context.Context, reqs []Request) ([]Response, error) {
	if len(reqs) == 0 {
		return nil, apperrors.Wrap("invalid_input", "batch cannot be empty", nil)
	}
	if len(reqs) > s.cfg.MaxBatch {
		return nil, apperrors.Wrap("invalid_input", fmt.Sprintf("batch exceeds %d requests", s.cfg.MaxBatch), nil)
	}

	inputs := make([]ephemeris.BirthInput, len(reqs))
	for i, req := range reqs {
		in, err := toBirthInput(req)
		if err != nil {
			return nil, apperrors.Wrap("invalid_input", fmt.Sprintf("request %d", i), err)
		}
		inputs[i] = in
	}

	out := make([]Response, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.BatchWorkers)
	for i, in := range inputs {
		g.Go(func() error {
			resp, err := s.compute(gctx, in)
			if err != nil {
				return err
			}
			out[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) compute(ctx context.Context, in ephemeris.BirthInput) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, apperrors.Wrap("chart_error", "request cancelled", err)
	}

	start := time.Now()
	key := cacheKey(in)

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("chart cache lookup failed", "error", err)
		}
		if ok {
			return s.respond(cached, true, start), nil
		}
	}

	result := ephemeris.ComputeChart(in)
	if !result.Valid() {
		return Response{}, apperrors.Wrap("invalid_input", "birth input produced a non-finite chart", nil)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("chart cache store failed", "error", err)
		}
	}

	return s.respond(result, false, start), nil
}

func (s *service) respond(c ephemeris.Chart, hit bool, start time.Time) Response {
	elapsed := time.Since(start)
	s.logger.Debug("chart computed", "julianDay", c.JulianDay, "cacheHit", hit, "duration", elapsed)
	return Response{
		Chart:         c,
		Placements:    Placements(c),
		CacheHit:      hit,
		ComputeMicros: elapsed.Microseconds(),
	}
}
