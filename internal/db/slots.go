package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/seido-app/backend/internal/models"
	"github.com/seido-app/backend/internal/scheduling"
)

// InsertSlots creates the proposed windows in one transaction and moves the
// intervention to planning when it has not reached that stage yet.
func (s *Store) InsertSlots(ctx context.Context, iv models.Intervention, proposer uuid.UUID, windows []scheduling.SlotWindow) ([]models.TimeSlot, error) {
	now := time.Now().UTC()
	slots := make([]models.TimeSlot, 0, len(windows))
	for _, w := range windows {
		slots = append(slots, models.TimeSlot{
			ID:             uuid.New(),
			InterventionID: iv.ID,
			SlotDate:       w.Date,
			StartTime:      w.Start,
			EndTime:        w.End,
			ProposedBy:     proposer,
			CreatedAt:      now,
		})
	}

	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		for _, slot := range slots {
			_, err := tx.Exec(ctx, `
				INSERT INTO time_slots (id, intervention_id, slot_date, start_time, end_time, proposed_by, created_at)
				VALUES ($1,$2,$3,$4,$5,$6,$7)
			`, slot.ID, slot.InterventionID, slot.SlotDate, slot.StartTime, slot.EndTime, slot.ProposedBy, slot.CreatedAt)
			if err != nil {
				return err
			}
		}
		if iv.Status.Before(models.StatusPlanning) {
			_, err := tx.Exec(ctx, `
				UPDATE interventions SET status = $1, updated_at = NOW()
				WHERE id = $2 AND status = $3
			`, models.StatusPlanning, iv.ID, iv.Status)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (s *Store) ListSlots(ctx context.Context, interventionID uuid.UUID) ([]models.TimeSlot, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, intervention_id, slot_date, start_time, end_time, proposed_by, created_at
		FROM time_slots WHERE intervention_id = $1
		ORDER BY slot_date ASC, start_time ASC
	`, interventionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TimeSlot
	for rows.Next() {
		var slot models.TimeSlot
		if err := rows.Scan(&slot.ID, &slot.InterventionID, &slot.SlotDate, &slot.StartTime, &slot.EndTime, &slot.ProposedBy, &slot.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, slot)
	}
	return out, rows.Err()
}

func (s *Store) ListResponses(ctx context.Context, interventionID uuid.UUID) ([]models.SlotResponse, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT r.id, r.slot_id, r.responder_id, r.decision, r.comment, r.created_at, r.updated_at
		FROM slot_responses r
		JOIN time_slots t ON t.id = r.slot_id
		WHERE t.intervention_id = $1
		ORDER BY r.created_at ASC
	`, interventionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SlotResponse
	for rows.Next() {
		var r models.SlotResponse
		if err := rows.Scan(&r.ID, &r.SlotID, &r.ResponderID, &r.Decision, &r.Comment, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func upsertResponse(ctx context.Context, tx pgx.Tx, slotID, responder uuid.UUID, decision models.SlotDecision, comment string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO slot_responses (id, slot_id, responder_id, decision, comment, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,NOW(),NOW())
		ON CONFLICT (slot_id, responder_id) DO UPDATE SET
			decision = EXCLUDED.decision,
			comment = EXCLUDED.comment,
			updated_at = NOW()
	`, uuid.New(), slotID, responder, decision, comment)
	return err
}

// ApplyAccept writes an accept plan atomically. The conditional UPDATE on
// selected_slot_id is the optimistic re-validation of the one-accepted-slot
// invariant: a racing accept that committed first makes this one fail with
// ErrAlreadyResolved instead of overwriting.
func (s *Store) ApplyAccept(ctx context.Context, iv models.Intervention, responder uuid.UUID, plan scheduling.AcceptPlan, messageBody string) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE interventions
			SET selected_slot_id = $1, scheduled_date = $2, status = $3, updated_at = NOW()
			WHERE id = $4 AND (selected_slot_id IS NULL OR selected_slot_id = $1)
		`, plan.Slot.ID, plan.ScheduledAt, models.StatusScheduled, iv.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return scheduling.ErrAlreadyResolved
		}
		for _, up := range plan.Upserts {
			if err := upsertResponse(ctx, tx, up.SlotID, responder, up.Decision, up.Comment); err != nil {
				return err
			}
		}
		return insertMessage(ctx, tx, models.ConversationMessage{
			ID:             uuid.New(),
			InterventionID: iv.ID,
			Kind:           models.MessageKindSystem,
			Body:           messageBody,
			CreatedAt:      time.Now().UTC(),
		})
	})
}

// ApplyReject records one rejection. When the rejection resolves the
// intervention to fully-rejected, the status reverts to planning and the
// outcome is recorded on the thread; the guard on selected_slot_id keeps a
// concurrent accept from being clobbered.
func (s *Store) ApplyReject(ctx context.Context, iv models.Intervention, responder, slotID uuid.UUID, comment string, fullyRejected bool, messageBody string) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		if err := upsertResponse(ctx, tx, slotID, responder, models.DecisionReject, comment); err != nil {
			return err
		}
		if !fullyRejected {
			return nil
		}
		_, err := tx.Exec(ctx, `
			UPDATE interventions SET status = $1, updated_at = NOW()
			WHERE id = $2 AND selected_slot_id IS NULL
		`, models.StatusPlanning, iv.ID)
		if err != nil {
			return err
		}
		return insertMessage(ctx, tx, models.ConversationMessage{
			ID:             uuid.New(),
			InterventionID: iv.ID,
			Kind:           models.MessageKindSystem,
			Body:           messageBody,
			CreatedAt:      time.Now().UTC(),
		})
	})
}

// DeleteResponse removes a (slot, responder) row, guarded so the delete only
// happens while the intervention is still unresolved.
func (s *Store) DeleteResponse(ctx context.Context, slotID, responder uuid.UUID) (bool, error) {
	tag, err := s.Pool.Exec(ctx, `
		DELETE FROM slot_responses r
		USING time_slots t, interventions i
		WHERE r.slot_id = t.id AND t.intervention_id = i.id
		  AND r.slot_id = $1 AND r.responder_id = $2
		  AND i.selected_slot_id IS NULL
	`, slotID, responder)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
