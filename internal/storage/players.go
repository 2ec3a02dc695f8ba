package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/vovakirdan/bike-city/internal/backend"
)

// MaxNameLength is the longest accepted player name, in runes.
const MaxNameLength = 32

const playerColumns = `id, name, x, y, health, stamina, eco_points, money, bicycle_id, current_mission, created_at`

// CreatePlayer inserts a new player with the default starting state and
// returns its generated ID.
func (s *Store) CreatePlayer(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return "", fmt.Errorf("storage: create player %q: %w", name, backend.ErrInvalidName)
	}

	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO players (id, name, x, y, health, stamina, eco_points, money, bicycle_id)
		 VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		id, name,
		backend.StartX, backend.StartY,
		backend.StartHealth, backend.StartStamina,
		backend.StartMoney, backend.StartBicycleID,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot create player: %w", err)
	}
	return id, nil
}

// GetPlayer loads a player with its completed missions.
func (s *Store) GetPlayer(ctx context.Context, id string) (backend.PlayerRecord, error) {
	p, err := scanPlayer(s.db.QueryRowContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return p, fmt.Errorf("storage: player %s: %w", id, backend.ErrNotFound)
	}
	if err != nil {
		return p, fmt.Errorf("storage: cannot query player: %w", err)
	}

	p.CompletedMissions, err = s.completedMissions(ctx, id)
	if err != nil {
		return p, err
	}
	return p, nil
}

// FindPlayerByName returns the most recently created player with the given name.
func (s *Store) FindPlayerByName(ctx context.Context, name string) (backend.PlayerRecord, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM players WHERE name = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		strings.TrimSpace(name),
	).Scan(&id)
	if err == sql.ErrNoRows {
		return backend.PlayerRecord{}, fmt.Errorf("storage: player named %q: %w", name, backend.ErrNotFound)
	}
	if err != nil {
		return backend.PlayerRecord{}, fmt.Errorf("storage: cannot query player: %w", err)
	}
	return s.GetPlayer(ctx, id)
}

// ListPlayers returns players ordered by eco points, best first.
func (s *Store) ListPlayers(ctx context.Context, limit int) ([]backend.PlayerRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+playerColumns+`
		 FROM players
		 ORDER BY eco_points DESC, money DESC, created_at ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query players: %w", err)
	}
	defer rows.Close()

	var out []backend.PlayerRecord
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	for i := range out {
		if out[i].CompletedMissions, err = s.completedMissions(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// SetPlayerPosition stores the last known position of a player.
func (s *Store) SetPlayerPosition(ctx context.Context, id string, x, y float64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE players SET x = ?, y = ? WHERE id = ?`, x, y, id)
	if err != nil {
		return fmt.Errorf("storage: cannot update position: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("storage: player %s: %w", id, backend.ErrNotFound)
	}
	return nil
}

// PurchaseBicycle equips the bicycle and deducts its price.
func (s *Store) PurchaseBicycle(ctx context.Context, id, bicycleID string) (backend.PlayerRecord, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var money int
		err := tx.QueryRowContext(ctx, `SELECT money FROM players WHERE id = ?`, id).Scan(&money)
		if err == sql.ErrNoRows {
			return fmt.Errorf("storage: player %s: %w", id, backend.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("storage: cannot query player: %w", err)
		}

		var price int
		err = tx.QueryRowContext(ctx, `SELECT price FROM bicycles WHERE id = ?`, bicycleID).Scan(&price)
		if err == sql.ErrNoRows {
			return fmt.Errorf("storage: bicycle %s: %w", bicycleID, backend.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("storage: cannot query bicycle: %w", err)
		}

		if money < price {
			return fmt.Errorf("storage: %s costs %d, player has %d: %w", bicycleID, price, money, backend.ErrInsufficientFunds)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE players SET bicycle_id = ?, money = money - ? WHERE id = ?`,
			bicycleID, price, id,
		); err != nil {
			return fmt.Errorf("storage: cannot update player: %w", err)
		}
		return nil
	})
	if err != nil {
		return backend.PlayerRecord{}, err
	}
	return s.GetPlayer(ctx, id)
}

// StartMission makes the mission the player's active one.
func (s *Store) StartMission(ctx context.Context, id, missionID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		current, err := currentMission(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := mission(ctx, tx, missionID); err != nil {
			return err
		}

		var done int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM player_missions WHERE player_id = ? AND mission_id = ?`,
			id, missionID,
		).Scan(&done); err != nil {
			return fmt.Errorf("storage: cannot query completed missions: %w", err)
		}
		if done > 0 {
			return fmt.Errorf("storage: %s: %w", missionID, backend.ErrMissionCompleted)
		}
		if current != "" {
			return fmt.Errorf("storage: %s is active: %w", current, backend.ErrMissionActive)
		}

		if _, err := tx.ExecContext(ctx, `UPDATE players SET current_mission = ? WHERE id = ?`, missionID, id); err != nil {
			return fmt.Errorf("storage: cannot start mission: %w", err)
		}
		return nil
	})
}

// CompleteMission pays out the rewards of the player's active mission and
// records it as completed.
func (s *Store) CompleteMission(ctx context.Context, id, missionID string) (backend.Rewards, error) {
	var rewards backend.Rewards
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		current, err := currentMission(ctx, tx, id)
		if err != nil {
			return err
		}
		m, err := mission(ctx, tx, missionID)
		if err != nil {
			return err
		}
		if current != missionID {
			return fmt.Errorf("storage: %s: %w", missionID, backend.ErrMissionNotActive)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE players
			 SET eco_points = eco_points + ?, money = money + ?, current_mission = NULL
			 WHERE id = ?`,
			m.Rewards.EcoPoints, m.Rewards.Money, id,
		); err != nil {
			return fmt.Errorf("storage: cannot pay rewards: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO player_missions (player_id, mission_id) VALUES (?, ?)`,
			id, missionID,
		); err != nil {
			return fmt.Errorf("storage: cannot record completion: %w", err)
		}

		rewards = m.Rewards
		return nil
	})
	return rewards, err
}

func currentMission(ctx context.Context, tx *sql.Tx, id string) (string, error) {
	var current sql.NullString
	err := tx.QueryRowContext(ctx, `SELECT current_mission FROM players WHERE id = ?`, id).Scan(&current)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("storage: player %s: %w", id, backend.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot query player: %w", err)
	}
	return current.String, nil
}

func (s *Store) completedMissions(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT mission_id FROM player_missions WHERE player_id = ? ORDER BY completed_at ASC, rowid ASC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completed missions: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var mid string
		if err := rows.Scan(&mid); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, mid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

func scanPlayer(row rowScanner) (backend.PlayerRecord, error) {
	var (
		p         backend.PlayerRecord
		current   sql.NullString
		createdAt any
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Position.X,
		&p.Position.Y,
		&p.Health,
		&p.Stamina,
		&p.EcoPoints,
		&p.Money,
		&p.BicycleID,
		&current,
		&createdAt,
	)
	if err != nil {
		return p, err
	}
	p.CurrentMission = current.String
	p.CreatedAt = parseTime(createdAt)
	return p, nil
}
