package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/seido-app/backend/internal/models"
)

func (s *Store) CreateIntervention(ctx context.Context, iv models.Intervention, parts []models.Participant) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO interventions (id, team_id, lot_id, title, description, status, created_by, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$8)
		`, iv.ID, iv.TeamID, iv.LotID, iv.Title, iv.Description, iv.Status, iv.CreatedBy, iv.CreatedAt)
		if err != nil {
			return err
		}
		for _, p := range parts {
			_, err := tx.Exec(ctx, `
				INSERT INTO intervention_participants (intervention_id, user_id, role)
				VALUES ($1,$2,$3)
				ON CONFLICT (intervention_id, user_id) DO UPDATE SET role = EXCLUDED.role
			`, iv.ID, p.UserID, p.Role)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) GetIntervention(ctx context.Context, id uuid.UUID) (models.Intervention, error) {
	var iv models.Intervention
	err := s.Pool.QueryRow(ctx, `
		SELECT id, team_id, lot_id, title, description, status, scheduled_date, selected_slot_id, created_by, created_at, updated_at
		FROM interventions WHERE id = $1
	`, id).Scan(&iv.ID, &iv.TeamID, &iv.LotID, &iv.Title, &iv.Description, &iv.Status,
		&iv.ScheduledDate, &iv.SelectedSlotID, &iv.CreatedBy, &iv.CreatedAt, &iv.UpdatedAt)
	return iv, err
}

func (s *Store) ListInterventions(ctx context.Context, status string, teamID *uuid.UUID, limit, offset int) ([]models.Intervention, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT id, team_id, lot_id, title, description, status, scheduled_date, selected_slot_id, created_by, created_at, updated_at FROM interventions`
	var args []any
	var wheres []string
	if status != "" {
		args = append(args, status)
		wheres = append(wheres, fmt.Sprintf("status = $%d", len(args)))
	}
	if teamID != nil {
		args = append(args, *teamID)
		wheres = append(wheres, fmt.Sprintf("team_id = $%d", len(args)))
	}
	if len(wheres) > 0 {
		query += " WHERE " + strings.Join(wheres, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Intervention
	for rows.Next() {
		var iv models.Intervention
		if err := rows.Scan(&iv.ID, &iv.TeamID, &iv.LotID, &iv.Title, &iv.Description, &iv.Status,
			&iv.ScheduledDate, &iv.SelectedSlotID, &iv.CreatedBy, &iv.CreatedAt, &iv.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, rows.Err()
}

// UpdateInterventionStatus moves the lifecycle from one status to another.
// The WHERE clause re-checks the current status so a concurrent transition
// loses cleanly instead of overwriting; zero affected rows means the
// intervention changed (or vanished) underneath the caller.
func (s *Store) UpdateInterventionStatus(ctx context.Context, id uuid.UUID, from, to models.InterventionStatus) (bool, error) {
	tag, err := s.Pool.Exec(ctx, `
		UPDATE interventions SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, to, id, from)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) ListParticipants(ctx context.Context, interventionID uuid.UUID) ([]models.Participant, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT intervention_id, user_id, role
		FROM intervention_participants WHERE intervention_id = $1
	`, interventionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.InterventionID, &p.UserID, &p.Role); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) AddParticipant(ctx context.Context, p models.Participant) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO intervention_participants (intervention_id, user_id, role)
		VALUES ($1,$2,$3)
		ON CONFLICT (intervention_id, user_id) DO UPDATE SET role = EXCLUDED.role
	`, p.InterventionID, p.UserID, p.Role)
	return err
}

// ListDueReminders returns scheduled interventions starting within the given
// window that have not been reminded yet.
func (s *Store) ListDueReminders(ctx context.Context, now time.Time, within time.Duration) ([]models.Intervention, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, team_id, lot_id, title, description, status, scheduled_date, selected_slot_id, created_by, created_at, updated_at
		FROM interventions
		WHERE status = $1
		  AND scheduled_date BETWEEN $2 AND $3
		  AND reminder_sent_at IS NULL
		ORDER BY scheduled_date ASC
	`, models.StatusScheduled, now, now.Add(within))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Intervention
	for rows.Next() {
		var iv models.Intervention
		if err := rows.Scan(&iv.ID, &iv.TeamID, &iv.LotID, &iv.Title, &iv.Description, &iv.Status,
			&iv.ScheduledDate, &iv.SelectedSlotID, &iv.CreatedBy, &iv.CreatedAt, &iv.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, rows.Err()
}

func (s *Store) MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := s.Pool.Exec(ctx, `UPDATE interventions SET reminder_sent_at = $1 WHERE id = $2`, at, id)
	return err
}
