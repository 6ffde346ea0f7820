//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package repository

import (
	"context"
	"database/sql"
	"time"

	"castmind/backend/internal/model"
	"castmind/backend/pkg/snowflake"
)

// HostLimitRepository stores per-host request spacing used by the fetcher.
type HostLimitRepository interface {
	Create(ctx context.Context, host string, intervalSeconds int) (*model.HostLimit, error)
	Update(ctx context.Context, host string, intervalSeconds int) error
	Delete(ctx context.Context, host string) error
	GetByHost(ctx context.Context, host string) (*model.HostLimit, error)
	List(ctx context.Context) ([]model.HostLimit, error)
}

type hostLimitRepository struct {
	db *sql.DB
}

func NewHostLimitRepository(db *sql.DB) HostLimitRepository {
	return &hostLimitRepository{db: db}
}

func (r *hostLimitRepository) Create(ctx context.Context, host string, intervalSeconds int) (*model.HostLimit, error) {
	id := snowflake.NextID()
	now := time.Now().UTC()
	nowStr := formatTime(now)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO host_limits (id, host, interval_seconds, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, host, intervalSeconds, nowStr, nowStr)
	if err != nil {
		return nil, err
	}

	return &model.HostLimit{
		ID:              id,
		Host:            host,
		IntervalSeconds: intervalSeconds,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

func (r *hostLimitRepository) Update(ctx context.Context, host string, intervalSeconds int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE host_limits SET interval_seconds = ?, updated_at = ? WHERE host = ?
	`, intervalSeconds, formatTime(time.Now()), host)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (r *hostLimitRepository) Delete(ctx context.Context, host string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM host_limits WHERE host = ?`, host)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// GetByHost returns nil, nil when the host has no limit.
func (r *hostLimitRepository) GetByHost(ctx context.Context, host string) (*model.HostLimit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, host, interval_seconds, created_at, updated_at FROM host_limits WHERE host = ?
	`, host)

	limit, err := scanHostLimit(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &limit, nil
}

func (r *hostLimitRepository) List(ctx context.Context) ([]model.HostLimit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, host, interval_seconds, created_at, updated_at FROM host_limits ORDER BY host
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var limits []model.HostLimit
	for rows.Next() {
		limit, err := scanHostLimit(rows)
		if err != nil {
			return nil, err
		}
		limits = append(limits, limit)
	}
	return limits, rows.Err()
}

func scanHostLimit(row rowScanner) (model.HostLimit, error) {
	var h model.HostLimit
	var createdAt, updatedAt string
	if err := row.Scan(&h.ID, &h.Host, &h.IntervalSeconds, &createdAt, &updatedAt); err != nil {
		return model.HostLimit{}, err
	}
	h.CreatedAt, _ = parseTime(createdAt)
	h.UpdatedAt, _ = parseTime(updatedAt)
	return h, nil
}
