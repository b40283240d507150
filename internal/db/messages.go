package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/seido-app/backend/internal/models"
)

func insertMessage(ctx context.Context, tx pgx.Tx, m models.ConversationMessage) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO conversation_messages (id, intervention_id, author_id, kind, body, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, m.ID, m.InterventionID, m.AuthorID, m.Kind, m.Body, m.CreatedAt)
	return err
}

func (s *Store) InsertMessage(ctx context.Context, m models.ConversationMessage) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		return insertMessage(ctx, tx, m)
	})
}

func (s *Store) ListMessages(ctx context.Context, interventionID uuid.UUID) ([]models.ConversationMessage, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, intervention_id, author_id, kind, body, created_at
		FROM conversation_messages
		WHERE intervention_id = $1
		ORDER BY created_at ASC
	`, interventionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ConversationMessage
	for rows.Next() {
		var m models.ConversationMessage
		if err := rows.Scan(&m.ID, &m.InterventionID, &m.AuthorID, &m.Kind, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
