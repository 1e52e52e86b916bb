package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"faceattend/internal/facematch"
)

// The admin credential is a single row (id = 1, enforced by the schema).
// Replaces the CSV file of earlier designs with the same transactional
// guarantees as the identity table.

// SaveAdminEmbedding overwrites the admin face embedding in full. Idempotent.
func (r *Repository) SaveAdminEmbedding(ctx context.Context, embedding []float32) error {
	if len(embedding) == 0 {
		return errors.New("admin embedding required")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admin_credential (id, embedding, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET
			embedding = EXCLUDED.embedding,
			updated_at = NOW()
	`, facematch.Encode(embedding))
	return err
}

// LoadAdminEmbedding returns the enrolled admin embedding, or nil when the
// admin has never been enrolled. Absence is a distinct state, not a zero
// vector.
func (r *Repository) LoadAdminEmbedding(ctx context.Context) ([]float32, error) {
	var blob []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT embedding FROM admin_credential WHERE id = 1
	`).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	emb, err := facematch.Decode(blob)
	if err != nil {
		return nil, fmt.Errorf("stored admin embedding: %w", err)
	}
	return emb, nil
}
