package db

import "context"

// Migrate applies the schema. Statements are idempotent so startup can run
// this unconditionally.
//
// The "at most one accepted slot per intervention" invariant lives on the
// intervention row itself: selected_slot_id is the single resolution marker,
// written with a conditional UPDATE inside the accept transaction.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		role TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS buildings (
		id UUID PRIMARY KEY,
		team_id UUID NOT NULL REFERENCES teams(id),
		name TEXT NOT NULL,
		address TEXT NOT NULL,
		city TEXT NOT NULL,
		lat DOUBLE PRECISION,
		lon DOUBLE PRECISION
	)`,
	`CREATE TABLE IF NOT EXISTS lots (
		id UUID PRIMARY KEY,
		building_id UUID NOT NULL REFERENCES buildings(id),
		reference TEXT NOT NULL,
		floor INT NOT NULL DEFAULT 0,
		tenant_id UUID REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS interventions (
		id UUID PRIMARY KEY,
		team_id UUID NOT NULL REFERENCES teams(id),
		lot_id UUID NOT NULL REFERENCES lots(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		scheduled_date TIMESTAMPTZ,
		selected_slot_id UUID,
		reminder_sent_at TIMESTAMPTZ,
		created_by UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS intervention_participants (
		intervention_id UUID NOT NULL REFERENCES interventions(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id),
		role TEXT NOT NULL,
		PRIMARY KEY (intervention_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS time_slots (
		id UUID PRIMARY KEY,
		intervention_id UUID NOT NULL REFERENCES interventions(id) ON DELETE CASCADE,
		slot_date DATE NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		proposed_by UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS slot_responses (
		id UUID PRIMARY KEY,
		slot_id UUID NOT NULL REFERENCES time_slots(id) ON DELETE CASCADE,
		responder_id UUID NOT NULL REFERENCES users(id),
		decision TEXT NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (slot_id, responder_id)
	)`,
	`CREATE TABLE IF NOT EXISTS conversation_messages (
		id UUID PRIMARY KEY,
		intervention_id UUID NOT NULL REFERENCES interventions(id) ON DELETE CASCADE,
		author_id UUID REFERENCES users(id),
		kind TEXT NOT NULL,
		body TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_time_slots_intervention ON time_slots (intervention_id)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_intervention ON conversation_messages (intervention_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_interventions_scheduled ON interventions (scheduled_date) WHERE scheduled_date IS NOT NULL`,
}

func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := s.Pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
