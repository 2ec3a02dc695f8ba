package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/bike-city/internal/backend"
)

// seed inserts the default catalog entries that are not present yet.
// Existing rows are left alone so operators can tune prices in place.
func (s *Store) seed(ctx context.Context) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, b := range backend.DefaultBicycles() {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO bicycles
				 (id, name, type, speed, durability, eco_efficiency, upgrade_level, price)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				b.ID, b.Name, b.Type, b.Speed, b.Durability, b.EcoEfficiency, b.UpgradeLevel, b.Price,
			); err != nil {
				return fmt.Errorf("bicycle %s: %w", b.ID, err)
			}
		}

		for _, shop := range backend.DefaultShops() {
			inventory, err := json.Marshal(shop.Inventory)
			if err != nil {
				return fmt.Errorf("shop %s inventory: %w", shop.ID, err)
			}
			dialogue, err := json.Marshal(shop.Dialogue)
			if err != nil {
				return fmt.Errorf("shop %s dialogue: %w", shop.ID, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO shops (id, name, type, x, y, inventory, dialogue)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				shop.ID, shop.Name, shop.Type, shop.Position.X, shop.Position.Y, string(inventory), string(dialogue),
			); err != nil {
				return fmt.Errorf("shop %s: %w", shop.ID, err)
			}
		}

		for _, m := range backend.DefaultMissions() {
			objectives, err := json.Marshal(m.Objectives)
			if err != nil {
				return fmt.Errorf("mission %s objectives: %w", m.ID, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO missions
				 (id, name, description, type, objectives, reward_eco_points, reward_money)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				m.ID, m.Name, m.Description, m.Type, string(objectives), m.Rewards.EcoPoints, m.Rewards.Money,
			); err != nil {
				return fmt.Errorf("mission %s: %w", m.ID, err)
			}
		}
		return nil
	})
}

// ListBicycles returns every bicycle ordered by price.
func (s *Store) ListBicycles(ctx context.Context) ([]backend.Bicycle, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, type, speed, durability, eco_efficiency, upgrade_level, price
		 FROM bicycles
		 ORDER BY price ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query bicycles: %w", err)
	}
	defer rows.Close()

	var out []backend.Bicycle
	for rows.Next() {
		var b backend.Bicycle
		if err := rows.Scan(&b.ID, &b.Name, &b.Type, &b.Speed, &b.Durability, &b.EcoEfficiency, &b.UpgradeLevel, &b.Price); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// ListShops returns every shop.
func (s *Store) ListShops(ctx context.Context) ([]backend.ShopInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, type, x, y, inventory, dialogue FROM shops ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query shops: %w", err)
	}
	defer rows.Close()

	var out []backend.ShopInfo
	for rows.Next() {
		var (
			shop                backend.ShopInfo
			inventory, dialogue string
		)
		if err := rows.Scan(&shop.ID, &shop.Name, &shop.Type, &shop.Position.X, &shop.Position.Y, &inventory, &dialogue); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if err := json.Unmarshal([]byte(inventory), &shop.Inventory); err != nil {
			return nil, fmt.Errorf("storage: shop %s inventory: %w", shop.ID, err)
		}
		if err := json.Unmarshal([]byte(dialogue), &shop.Dialogue); err != nil {
			return nil, fmt.Errorf("storage: shop %s dialogue: %w", shop.ID, err)
		}
		out = append(out, shop)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// ListMissions returns every mission.
func (s *Store) ListMissions(ctx context.Context) ([]backend.MissionInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, type, objectives, reward_eco_points, reward_money
		 FROM missions
		 ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query missions: %w", err)
	}
	defer rows.Close()

	var out []backend.MissionInfo
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMission(row rowScanner) (backend.MissionInfo, error) {
	var (
		m          backend.MissionInfo
		objectives string
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Type, &objectives, &m.Rewards.EcoPoints, &m.Rewards.Money); err != nil {
		return m, err
	}
	if err := json.Unmarshal([]byte(objectives), &m.Objectives); err != nil {
		return m, fmt.Errorf("storage: mission %s objectives: %w", m.ID, err)
	}
	return m, nil
}

// mission loads a single mission inside a transaction.
func mission(ctx context.Context, tx *sql.Tx, id string) (backend.MissionInfo, error) {
	m, err := scanMission(tx.QueryRowContext(ctx,
		`SELECT id, name, description, type, objectives, reward_eco_points, reward_money
		 FROM missions WHERE id = ?`,
		id,
	))
	if err == sql.ErrNoRows {
		return m, fmt.Errorf("storage: mission %s: %w", id, backend.ErrNotFound)
	}
	if err != nil {
		return m, fmt.Errorf("storage: cannot query mission: %w", err)
	}
	return m, nil
}
