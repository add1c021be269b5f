// Package store provides SQLite-backed persistence for planner state, so a
// returning user without a share link resumes their last session.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/headwayhq/headway/internal/catalog"
	"github.com/headwayhq/headway/internal/plan"
)

// Store wraps the state database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the state database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the state database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveState replaces the persisted state wholesale inside one transaction,
// so a failed save leaves the previous state intact.
func (s *Store) SaveState(st plan.State) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM scenarios"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM placed_roles"); err != nil {
		return err
	}

	for i, sc := range st.Scenarios {
		_, err := tx.Exec(`INSERT INTO scenarios
			(idx, name, funding_amount, mrr, mrr_growth, other_costs,
			 other_costs_growth, default_location, default_rate_tier)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, sc.Name, sc.FundingAmount, sc.MRR, sc.MRRGrowthRate,
			sc.OtherCosts, sc.OtherCostsGrowthRate,
			string(sc.DefaultLocation), string(sc.DefaultRateTier),
		)
		if err != nil {
			return err
		}

		for pos, r := range sc.PlacedRoles {
			_, err := tx.Exec(`INSERT INTO placed_roles
				(scenario_idx, position, role_id, role_key, start_month,
				 location, salary, salary_selection)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				i, pos, r.ID, string(r.Role), r.StartMonth,
				string(r.Location), r.Salary, string(r.Selection),
			)
			if err != nil {
				return err
			}
		}
	}

	if err := setMeta(tx, "active_index", strconv.Itoa(st.ActiveIndex)); err != nil {
		return err
	}
	if err := setMeta(tx, "saved_at", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	return tx.Commit()
}

// LoadState reads the persisted state. Returns (nil, nil) when nothing has
// been saved yet.
func (s *Store) LoadState() (*plan.State, error) {
	rows, err := s.db.Query(`SELECT
		idx, name, funding_amount, mrr, mrr_growth, other_costs,
		other_costs_growth, default_location, default_rate_tier
		FROM scenarios ORDER BY idx`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var st plan.State
	for rows.Next() {
		var idx int
		var sc plan.Scenario
		var loc, tier string
		err := rows.Scan(&idx, &sc.Name, &sc.FundingAmount, &sc.MRR,
			&sc.MRRGrowthRate, &sc.OtherCosts, &sc.OtherCostsGrowthRate,
			&loc, &tier)
		if err != nil {
			return nil, err
		}
		sc.DefaultLocation = catalog.LocationKey(loc)
		sc.DefaultRateTier = plan.RateTier(tier)
		st.Scenarios = append(st.Scenarios, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(st.Scenarios) == 0 {
		return nil, nil
	}

	roleRows, err := s.db.Query(`SELECT
		scenario_idx, role_id, role_key, start_month, location, salary, salary_selection
		FROM placed_roles ORDER BY scenario_idx, position`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = roleRows.Close() }()

	for roleRows.Next() {
		var idx int
		var r plan.PlacedRole
		var roleKey, loc, sel string
		err := roleRows.Scan(&idx, &r.ID, &roleKey, &r.StartMonth, &loc, &r.Salary, &sel)
		if err != nil {
			return nil, err
		}
		r.Role = catalog.RoleKey(roleKey)
		r.Location = catalog.LocationKey(loc)
		r.Selection = plan.SalarySelection(sel)
		if idx >= 0 && idx < len(st.Scenarios) {
			st.Scenarios[idx].PlacedRoles = append(st.Scenarios[idx].PlacedRoles, r)
		}
	}
	if err := roleRows.Err(); err != nil {
		return nil, err
	}

	if v, err := getMeta(s.db, "active_index"); err == nil && v != "" {
		if active, err := strconv.Atoi(v); err == nil {
			if active >= 0 && active < len(st.Scenarios) {
				st.ActiveIndex = active
			}
		}
	}

	return &st, nil
}

// SavedAt returns the timestamp of the last save, or the zero time.
func (s *Store) SavedAt() time.Time {
	v, err := getMeta(s.db, "saved_at")
	if err != nil || v == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339, v)
	return t
}

func setMeta(tx *sql.Tx, key, value string) error {
	_, err := tx.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)", key, value)
	return err
}

func getMeta(db *sql.DB, key string) (string, error) {
	var v string
	err := db.QueryRow("SELECT value FROM meta WHERE key = ?", key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return v, err
}
