package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS meta (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS scenarios (
    idx                 INTEGER PRIMARY KEY,
    name                TEXT NOT NULL DEFAULT '',
    funding_amount      REAL NOT NULL,
    mrr                 REAL NOT NULL,
    mrr_growth          REAL NOT NULL,
    other_costs         REAL NOT NULL,
    other_costs_growth  REAL NOT NULL,
    default_location    TEXT NOT NULL,
    default_rate_tier   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS placed_roles (
    scenario_idx     INTEGER NOT NULL,
    position         INTEGER NOT NULL,
    role_id          TEXT NOT NULL,
    role_key         TEXT NOT NULL,
    start_month      TEXT NOT NULL,
    location         TEXT NOT NULL,
    salary           REAL NOT NULL,
    salary_selection TEXT NOT NULL,
    PRIMARY KEY (scenario_idx, position)
);

CREATE INDEX IF NOT EXISTS idx_placed_roles_scenario
    ON placed_roles(scenario_idx);
`
