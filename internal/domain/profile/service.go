package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/cocreateceo/Vedic-Astro-sub002/internal/domain/chart"
	apperrors "github.com/cocreateceo/Vedic-Astro-sub002/pkg/errors"
	"github.com/cocreateceo/Vedic-Astro-sub002/pkg/util"
)

const (
	maxNameLength    = 120
	defaultListLimit = 20
	maxListLimit     = 100
	exportMimeType   = "application/json"
)

// Service manages saved birth profiles.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (Profile, error)
	Get(ctx context.Context, id string) (Profile, error)
	List(ctx context.Context, limit int) ([]Profile, error)
	Export(ctx context.Context, id string) (StoredObject, error)
	Download(ctx context.Context, id string) (io.ReadCloser, error)
}

type service struct {
	charts  chart.Service
	repo    Repository
	storage ObjectStorage
	logger  *slog.Logger
}

// NewService wires up the profile domain.
func NewService(charts chart.Service, repo Repository, storage ObjectStorage, logger *slog.Logger) Service {
	return &service{
		charts:  charts,
		repo:    repo,
		storage: storage,
		logger:  logger.With("component", "profile.service"),
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (Profile, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Profile{}, apperrors.Wrap("invalid_input", "name cannot be empty", nil)
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return Profile{}, apperrors.Wrap("invalid_input", fmt.Sprintf("name exceeds %d characters", maxNameLength), nil)
	}

	computed, err := s.charts.Compute(ctx, req.Birth)
	if err != nil {
		return Profile{}, err
	}

	p := Profile{
		ID:        uuid.New(),
		Name:      name,
		Birth:     req.Birth,
		Chart:     computed.Chart,
		CreatedAt: util.NowUTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Profile{}, apperrors.Wrap("profile_error", "failed to save profile", err)
	}
	s.logger.Info("profile created", "profileId", p.ID)
	return p, nil
}

func (s *service) Get(ctx context.Context, id string) (Profile, error) {
	profileID, err := parseID(id)
	if err != nil {
		return Profile{}, err
	}
	p, found, err := s.repo.Get(ctx, profileID)
	if err != nil {
		return Profile{}, apperrors.Wrap("profile_error", "failed to load profile", err)
	}
	if !found {
		return Profile{}, apperrors.Wrap("not_found", "profile not found", nil)
	}
	return p, nil
}

func (s *service) List(ctx context.Context, limit int) ([]Profile, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	profiles, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, apperrors.Wrap("profile_error", "failed to list profiles", err)
	}
	return profiles, nil
}

func (s *service) Export(ctx context.Context, id string) (StoredObject, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return StoredObject{}, err
	}

	doc := ExportDocument{
		ID:         p.ID,
		Name:       p.Name,
		Birth:      p.Birth,
		Chart:      p.Chart,
		Placements: chart.Placements(p.Chart),
		ExportedAt: util.NowUTC(),
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return StoredObject{}, apperrors.Wrap("export_failed", "failed to encode chart", err)
	}

	obj, err := s.storage.Put(ctx, exportKey(p.ID), payload, exportMimeType)
	if err != nil {
		s.logger.Error("chart export failed", "profileId", p.ID, "error", err)
		return StoredObject{}, apperrors.Wrap("export_failed", "failed to store chart export", err)
	}
	s.logger.Info("chart exported", "profileId", p.ID, "key", obj.Key, "size", obj.Size)
	return obj, nil
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, error) {
	profileID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	body, err := s.storage.Get(ctx, exportKey(profileID))
	if errors.Is(err, ErrObjectNotFound) {
		return nil, apperrors.Wrap("not_found", "chart export not found", err)
	}
	if err != nil {
		s.logger.Error("chart export download failed", "profileId", profileID, "error", err)
		return nil, apperrors.Wrap("export_failed", "failed to read chart export", err)
	}
	return body, nil
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, apperrors.Wrap("invalid_input", "profile id must be a UUID", err)
	}
	return id, nil
}

func exportKey(id uuid.UUID) string {
	return "charts/" + id.String() + ".json"
}
