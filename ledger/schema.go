package ledger

const Schema = `
CREATE TABLE IF NOT EXISTS entries (
	id TEXT PRIMARY KEY,
	period_date TEXT NOT NULL UNIQUE,
	realised_pnl REAL NOT NULL,
	charges REAL NOT NULL CHECK (charges >= 0),
	funds_in_out REAL NOT NULL,
	outstanding_units REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_entries_period ON entries(period_date);
`
