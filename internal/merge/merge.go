// Package merge joins scraped injury rows with the supplementary player
// records held in the store, and writes the combined documents to disk.
package merge

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ligastats/sidelined/internal/scrape"
	"github.com/ligastats/sidelined/internal/store"
)

// PlayerNames lists the distinct player names in scrape order, the lookup
// keys for the supplementary store.
func PlayerNames(result *scrape.LeagueResult) []string {
	seen := make(map[string]struct{}, len(result.Rows))
	names := make([]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		if _, dup := seen[row.Player.Name]; dup {
			continue
		}
		seen[row.Player.Name] = struct{}{}
		names = append(names, row.Player.Name)
	}
	return names
}

// Rows combines each injury row with its supplementary player record.
// Injury fields win on key collisions since they are the fresher data.
// Players without a store record are skipped with a log line; that is the
// historical behavior of the merge job, not an error.
func Rows(result *scrape.LeagueResult, players map[string]*store.Player) []map[string]interface{} {
	merged := make([]map[string]interface{}, 0, len(result.Rows))
	for _, row := range result.Rows {
		record, ok := players[row.Player.Name]
		if !ok {
			log.Printf("[merge] player %q not found in the store, skipping", row.Player.Name)
			continue
		}

		doc := record.AsMap()
		doc["player"] = row.Player
		doc["injury"] = row.Injury
		doc["since"] = row.Since
		doc["until"] = row.Until
		merged = append(merged, doc)
	}
	return merged
}

// WriteJSONAtomic writes v as indented JSON via a temp file and rename, so
// a crash mid-write never leaves a truncated output file.
func WriteJSONAtomic(path string, v interface{}) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
