package store

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Player is a supplementary player record, keyed by name for the merge
// command. Metadata carries whatever extra attributes the upstream loader
// stored (market value, agent, contract details) without a fixed schema.
type Player struct {
	PlayerID    int64           `json:"player_id"`
	ExternalID  sql.NullString  `json:"external_id"`
	Name        string          `json:"name"`
	DisplayName string          `json:"display_name"`
	Position    sql.NullString  `json:"position"`
	Nationality sql.NullString  `json:"nationality"`
	BirthDate   sql.NullTime    `json:"birth_date"`
	CurrentClub sql.NullString  `json:"current_club"`
	ProfileURL  sql.NullString  `json:"profile_url"`
	Metadata    json.RawMessage `json:"metadata"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AsMap flattens the record into a JSON-ready map, dropping unset optional
// fields and splicing metadata keys in at the top level. This mirrors the
// document shape the merge output has always had.
func (p *Player) AsMap() map[string]interface{} {
	m := map[string]interface{}{
		"player_id":    p.PlayerID,
		"name":         p.Name,
		"display_name": p.DisplayName,
		"created_at":   p.CreatedAt.Format(time.RFC3339),
		"updated_at":   p.UpdatedAt.Format(time.RFC3339),
	}
	if p.ExternalID.Valid {
		m["external_id"] = p.ExternalID.String
	}
	if p.Position.Valid {
		m["position"] = p.Position.String
	}
	if p.Nationality.Valid {
		m["nationality"] = p.Nationality.String
	}
	if p.BirthDate.Valid {
		m["birth_date"] = p.BirthDate.Time.Format("2006-01-02")
	}
	if p.CurrentClub.Valid {
		m["current_club"] = p.CurrentClub.String
	}
	if p.ProfileURL.Valid {
		m["profile_url"] = p.ProfileURL.String
	}

	var extra map[string]interface{}
	if len(p.Metadata) > 0 && json.Unmarshal(p.Metadata, &extra) == nil {
		for k, v := range extra {
			if _, taken := m[k]; !taken {
				m[k] = v
			}
		}
	}
	return m
}
