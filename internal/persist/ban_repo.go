package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Ban is one ban row.
type Ban struct {
	ID        int64
	IPID      string
	HDID      string
	Reason    string
	BannedBy  string
	CreatedAt time.Time
	ExpiresAt *time.Time
}

// BanRepo reads the ban list and records accepted connections.
type BanRepo struct {
	db *DB
}

func NewBanRepo(db *DB) *BanRepo {
	return &BanRepo{db: db}
}

// FindActive returns the active ban matching ipid or hdid, or nil.
func (r *BanRepo) FindActive(ctx context.Context, ipid, hdid string) (*Ban, error) {
	row := r.db.Pool.QueryRow(ctx, `
		SELECT id, ipid, hdid, reason, banned_by, created_at, expires_at
		FROM bans
		WHERE (ipid = $1 OR (hdid <> '' AND hdid = $2))
		  AND (expires_at IS NULL OR expires_at > now())
		ORDER BY created_at DESC
		LIMIT 1`, ipid, hdid)

	var b Ban
	err := row.Scan(&b.ID, &b.IPID, &b.HDID, &b.Reason, &b.BannedBy,
		&b.CreatedAt, &b.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find ban: %w", err)
	}
	return &b, nil
}

// Insert adds a ban.
func (r *BanRepo) Insert(ctx context.Context, b *Ban) error {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO bans (ipid, hdid, reason, banned_by, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		b.IPID, b.HDID, b.Reason, b.BannedBy, b.ExpiresAt).
		Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert ban: %w", err)
	}
	return nil
}

// RecordConnection appends one identity journal row for an accepted
// connection.
func (r *BanRepo) RecordConnection(ctx context.Context, ipid, hdid, clientName string) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO connections (ipid, hdid, client_name)
		VALUES ($1, $2, $3)`, ipid, hdid, clientName)
	if err != nil {
		return fmt.Errorf("record connection: %w", err)
	}
	return nil
}
