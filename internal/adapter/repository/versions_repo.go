package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Rroopesh55/ResuForge/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

// VersionsRepo persists resumes and their optimized versions. All writes
// are tolerant of a missing pool so the service degrades to stateless
// operation when no database is configured.
type VersionsRepo struct {
	pool *pgxpool.Pool
}

func NewVersionsRepo(pool *pgxpool.Pool) *VersionsRepo {
	return &VersionsRepo{pool: pool}
}

// EnsureResume upserts the resume row a version hangs off.
func (r *VersionsRepo) EnsureResume(ctx context.Context, res *domain.Resume) error {
	if r.pool == nil {
		return nil
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO resumes (id, user_id, title, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, updated_at = EXCLUDED.updated_at`,
		res.ID, res.UserID, res.Title, res.CreatedAt, res.UpdatedAt)
	return err
}

// SaveVersion assigns the next version number for the resume and inserts
// the snapshot.
func (r *VersionsRepo) SaveVersion(ctx context.Context, v *domain.ResumeVersion) error {
	if r.pool == nil {
		return nil
	}

	var last int
	err := r.pool.QueryRow(ctx,
		`SELECT coalesce(max(version_number), 0) FROM resume_versions WHERE resume_id = $1`,
		v.ResumeID).Scan(&last)
	if err != nil {
		return fmt.Errorf("next version number: %w", err)
	}
	v.VersionNumber = last + 1
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}

	var docB []byte
	if v.Document != nil {
		docB, _ = json.Marshal(v.Document)
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO resume_versions (id, resume_id, version_number, document, change_summary, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		v.ID, v.ResumeID, v.VersionNumber, docB, v.ChangeSummary, v.CreatedAt)
	return err
}

// ListVersions returns a resume's versions newest-first.
func (r *VersionsRepo) ListVersions(ctx context.Context, resumeID uuid.UUID) ([]domain.ResumeVersion, error) {
	if r.pool == nil {
		return []domain.ResumeVersion{}, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT id, resume_id, version_number, document, change_summary, created_at
		FROM resume_versions WHERE resume_id = $1 ORDER BY version_number DESC`, resumeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.ResumeVersion{}
	for rows.Next() {
		var v domain.ResumeVersion
		var docB []byte
		var summary *string
		if err := rows.Scan(&v.ID, &v.ResumeID, &v.VersionNumber, &docB, &summary, &v.CreatedAt); err != nil {
			return nil, err
		}
		if summary != nil {
			v.ChangeSummary = *summary
		}
		if len(docB) > 0 {
			_ = json.Unmarshal(docB, &v.Document)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
