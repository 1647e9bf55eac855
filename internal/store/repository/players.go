package repository

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/ligastats/sidelined/internal/store"
)

// PlayerRepository handles player data access
type PlayerRepository struct {
	db *store.Database
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *store.Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// FindByNames loads every player whose display name or name appears in the
// given list, in one query, and returns them keyed by both spellings so the
// caller can look a scraped name up either way. Names with no match are
// simply absent from the map.
func (r *PlayerRepository) FindByNames(ctx context.Context, names []string) (map[string]*store.Player, error) {
	if len(names) == 0 {
		return map[string]*store.Player{}, nil
	}

	query := `
		SELECT player_id, external_id, name, display_name,
			position, nationality, birth_date, current_club, profile_url,
			metadata, created_at, updated_at
		FROM players
		WHERE display_name = ANY($1) OR name = ANY($1)
	`

	rows, err := r.db.DB().QueryContext(ctx, query, pq.Array(names))
	if err != nil {
		return nil, fmt.Errorf("querying players by name: %w", err)
	}
	defer rows.Close()

	players := make(map[string]*store.Player)
	for rows.Next() {
		player := &store.Player{}
		err := rows.Scan(
			&player.PlayerID, &player.ExternalID, &player.Name, &player.DisplayName,
			&player.Position, &player.Nationality, &player.BirthDate, &player.CurrentClub,
			&player.ProfileURL, &player.Metadata, &player.CreatedAt, &player.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}

		// Key on display_name first, name as a fallback alias.
		players[player.DisplayName] = player
		if player.Name != player.DisplayName {
			players[player.Name] = player
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating players: %w", err)
	}

	return players, nil
}

// Upsert inserts or refreshes a supplementary player record by external id.
func (r *PlayerRepository) Upsert(ctx context.Context, player *store.Player) error {
	query := `
		INSERT INTO players (external_id, name, display_name, position, nationality,
			birth_date, current_club, profile_url, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, '{}'::jsonb))
		ON CONFLICT (external_id) DO UPDATE SET
			name = EXCLUDED.name,
			display_name = EXCLUDED.display_name,
			position = EXCLUDED.position,
			nationality = EXCLUDED.nationality,
			birth_date = EXCLUDED.birth_date,
			current_club = EXCLUDED.current_club,
			profile_url = EXCLUDED.profile_url,
			metadata = EXCLUDED.metadata,
			updated_at = NOW()
	`

	_, err := r.db.DB().ExecContext(ctx, query,
		player.ExternalID, player.Name, player.DisplayName, player.Position,
		player.Nationality, player.BirthDate, player.CurrentClub, player.ProfileURL,
		nullableJSON(player.Metadata),
	)
	if err != nil {
		return fmt.Errorf("upserting player %s: %w", player.Name, err)
	}
	return nil
}

func nullableJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
