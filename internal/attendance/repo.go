package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"faceattend/internal/facematch"
)

// Repository persists identity records in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Upsert inserts an identity record or fully replaces the name and embedding
// of an existing one. Attendance state (status, last_seen) is never touched
// by enrollment.
func (r *Repository) Upsert(ctx context.Context, roll, name string, embedding []float32) error {
	if roll == "" {
		return errors.New("roll number required")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO identities (roll_number, name, embedding)
		VALUES ($1, $2, $3)
		ON CONFLICT (roll_number) DO UPDATE SET
			name = EXCLUDED.name,
			embedding = EXCLUDED.embedding
	`, roll, name, facematch.Encode(embedding))
	return err
}

// GetEmbedding returns the stored embedding for a roll number, or nil when no
// identity record exists.
func (r *Repository) GetEmbedding(ctx context.Context, roll string) ([]float32, error) {
	var blob []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT embedding FROM identities WHERE roll_number = $1
	`, roll).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	emb, err := facematch.Decode(blob)
	if err != nil {
		return nil, fmt.Errorf("stored embedding for %s: %w", roll, err)
	}
	return emb, nil
}

// GetAttendanceToday returns the present-record for a roll number if and only
// if it was marked present on today's calendar date. Otherwise nil, even when
// the stored status still reads "present" from a prior day.
func (r *Repository) GetAttendanceToday(ctx context.Context, roll string) (*Attendance, error) {
	var status string
	var lastSeen sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT present_absent, last_seen FROM identities WHERE roll_number = $1
	`, roll).Scan(&status, &lastSeen)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !lastSeen.Valid {
		return nil, nil
	}
	if !presentToday(status, &lastSeen.Time, time.Now()) {
		return nil, nil
	}
	return &Attendance{Status: status, Timestamp: lastSeen.Time}, nil
}

// MarkAttendance unconditionally sets the status and stamps last_seen with
// the current instant. Both columns move together in one statement. It never
// creates a record.
func (r *Repository) MarkAttendance(ctx context.Context, roll, status string) (time.Time, error) {
	now := time.Now().Truncate(time.Second)
	res, err := r.db.ExecContext(ctx, `
		UPDATE identities SET present_absent = $2, last_seen = $3 WHERE roll_number = $1
	`, roll, status, now)
	if err != nil {
		return time.Time{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return time.Time{}, ErrUserNotFound
	}
	return now, nil
}

// MarkIfNotPresentToday records a decision unless the identity was already
// marked present today. The row is locked for the duration of the check, so
// two racing submissions cannot both perform the first mark of the day; the
// loser observes the winner's record instead. Returns the effective record
// and whether it was pre-existing.
func (r *Repository) MarkIfNotPresentToday(ctx context.Context, roll, status string) (Attendance, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Attendance{}, false, err
	}
	defer tx.Rollback()

	var prior string
	var lastSeen sql.NullTime
	err = tx.QueryRowContext(ctx, `
		SELECT present_absent, last_seen FROM identities WHERE roll_number = $1 FOR UPDATE
	`, roll).Scan(&prior, &lastSeen)
	if errors.Is(err, sql.ErrNoRows) {
		return Attendance{}, false, ErrUserNotFound
	}
	if err != nil {
		return Attendance{}, false, err
	}

	if lastSeen.Valid && presentToday(prior, &lastSeen.Time, time.Now()) {
		return Attendance{Status: prior, Timestamp: lastSeen.Time}, true, tx.Commit()
	}

	now := time.Now().Truncate(time.Second)
	if _, err := tx.ExecContext(ctx, `
		UPDATE identities SET present_absent = $2, last_seen = $3 WHERE roll_number = $1
	`, roll, status, now); err != nil {
		return Attendance{}, false, err
	}
	return Attendance{Status: status, Timestamp: now}, false, tx.Commit()
}

// ListAll returns a snapshot of every identity for the dashboard.
func (r *Repository) ListAll(ctx context.Context) ([]Identity, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT roll_number, name, present_absent, last_seen FROM identities
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Identity
	for rows.Next() {
		var id Identity
		var lastSeen sql.NullTime
		if err := rows.Scan(&id.RollNumber, &id.Name, &id.Status, &lastSeen); err != nil {
			return nil, err
		}
		if lastSeen.Valid {
			t := lastSeen.Time
			id.LastSeen = &t
		}
		res = append(res, id)
	}
	return res, rows.Err()
}
