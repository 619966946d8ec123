package profilerepo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cocreateceo/Vedic-Astro-sub002/internal/domain/profile"
)

const schema = `
	CREATE TABLE IF NOT EXISTS profiles (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL,
		birth      JSONB NOT NULL,
		chart      JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS profiles_created_at_idx ON profiles (created_at DESC);
`

// PostgresRepository persists profiles in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the profiles table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, schema)
	return err
}

// Create inserts a new profile row.
func (r *PostgresRepository) Create(ctx context.Context, p profile.Profile) error {
	birth, err := json.Marshal(p.Birth)
	if err != nil {
		return err
	}
	chart, err := json.Marshal(p.Chart)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO profiles (id, name, birth, chart, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, p.ID, p.Name, birth, chart, p.CreatedAt)
	return err
}

// Get fetches by primary key.
func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (profile.Profile, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, birth, chart, created_at
		FROM profiles
		WHERE id = $1
		LIMIT 1
	`, id)
	if err != nil {
		return profile.Profile{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return profile.Profile{}, false, rows.Err()
	}
	p, err := scanProfile(rows)
	if err != nil {
		return profile.Profile{}, false, err
	}
	return p, true, rows.Err()
}

// List returns up to limit profiles, newest first.
func (r *PostgresRepository) List(ctx context.Context, limit int) ([]profile.Profile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, birth, chart, created_at
		FROM profiles
		ORDER BY created_at DESC, id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []profile.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (profile.Profile, error) {
	var (
		p       profile.Profile
		birth   []byte
		chart   []byte
		created time.Time
	)
	if err := row.Scan(&p.ID, &p.Name, &birth, &chart, &created); err != nil {
		return profile.Profile{}, err
	}
	if err := json.Unmarshal(birth, &p.Birth); err != nil {
		return profile.Profile{}, err
	}
	if err := json.Unmarshal(chart, &p.Chart); err != nil {
		return profile.Profile{}, err
	}
	p.CreatedAt = created.UTC()
	return p, nil
}

var _ profile.Repository = (*PostgresRepository)(nil)
