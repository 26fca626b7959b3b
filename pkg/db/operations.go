package db

import (
	"fmt"
)

// InsertIDs adds ids to the given set. Duplicates are ignored.
func (db *DB) InsertIDs(set Set, ids []int64) error {
	if err := set.validate(); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(fmt.Sprintf("INSERT OR IGNORE INTO %s (location_id) VALUES (?)", set))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, id := range ids {
		if _, err := stmt.Exec(id); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert id %d into %s: %w", id, set, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ids: %w", err)
	}
	return nil
}

// Count returns the number of distinct ids in the set.
func (db *DB) Count(set Set) (int, error) {
	if err := set.validate(); err != nil {
		return 0, err
	}

	var n int
	if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", set)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", set, err)
	}
	return n, nil
}

// Difference returns ids in `from` that are absent from `other`, ascending.
// total is the full size of the difference; ids holds at most limit entries
// (limit <= 0 means all).
func (db *DB) Difference(from, other Set, limit int) (ids []int64, total int, err error) {
	if err := from.validate(); err != nil {
		return nil, 0, err
	}
	if err := other.validate(); err != nil {
		return nil, 0, err
	}

	diff := fmt.Sprintf(`
		FROM %s a
		WHERE NOT EXISTS (SELECT 1 FROM %s b WHERE b.location_id = a.location_id)
	`, from, other)

	if err := db.QueryRow("SELECT COUNT(*) " + diff).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count difference: %w", err)
	}

	query := "SELECT a.location_id " + diff + " ORDER BY a.location_id"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query difference: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, 0, fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate difference: %w", err)
	}

	return ids, total, nil
}

func (s Set) validate() error {
	switch s {
	case TripIDs, LookupIDs:
		return nil
	}
	return fmt.Errorf("unknown id set: %q", string(s))
}
