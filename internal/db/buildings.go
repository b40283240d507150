package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/seido-app/backend/internal/models"
)

func (s *Store) InsertTeam(ctx context.Context, t models.Team) error {
	_, err := s.Pool.Exec(ctx, `INSERT INTO teams (id, name) VALUES ($1,$2)`, t.ID, t.Name)
	return err
}

func (s *Store) InsertUser(ctx context.Context, u models.User) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO users (id, name, email, role) VALUES ($1,$2,$3,$4)
	`, u.ID, u.Name, u.Email, u.Role)
	return err
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	var u models.User
	err := s.Pool.QueryRow(ctx, `SELECT id, name, email, role FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role)
	return u, err
}

func (s *Store) InsertBuilding(ctx context.Context, b models.Building) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO buildings (id, team_id, name, address, city, lat, lon)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, b.ID, b.TeamID, b.Name, b.Address, b.City, b.Lat, b.Lon)
	return err
}

func (s *Store) ListBuildings(ctx context.Context, teamID *uuid.UUID) ([]models.Building, error) {
	query := `SELECT id, team_id, name, address, city, lat, lon FROM buildings`
	var args []any
	if teamID != nil {
		query += ` WHERE team_id = $1`
		args = append(args, *teamID)
	}
	query += ` ORDER BY name ASC`

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Building
	for rows.Next() {
		var b models.Building
		if err := rows.Scan(&b.ID, &b.TeamID, &b.Name, &b.Address, &b.City, &b.Lat, &b.Lon); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) UpdateBuildingCoords(ctx context.Context, id uuid.UUID, lat, lon float64) error {
	_, err := s.Pool.Exec(ctx, `UPDATE buildings SET lat = $1, lon = $2 WHERE id = $3`, lat, lon, id)
	return err
}

func (s *Store) InsertLot(ctx context.Context, l models.Lot) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO lots (id, building_id, reference, floor, tenant_id)
		VALUES ($1,$2,$3,$4,$5)
	`, l.ID, l.BuildingID, l.Reference, l.Floor, l.TenantID)
	return err
}

func (s *Store) ListLots(ctx context.Context, buildingID uuid.UUID) ([]models.Lot, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, building_id, reference, floor, tenant_id
		FROM lots WHERE building_id = $1
		ORDER BY reference ASC
	`, buildingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Lot
	for rows.Next() {
		var l models.Lot
		if err := rows.Scan(&l.ID, &l.BuildingID, &l.Reference, &l.Floor, &l.TenantID); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
