package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS accounts (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE COLLATE NOCASE,
	display_name  TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
	{
		version: 3,
		sql: `
CREATE TABLE IF NOT EXISTS checkouts (
	id          TEXT PRIMARY KEY,
	email       TEXT NOT NULL DEFAULT '',
	subtotal    INTEGER NOT NULL,
	shipping    INTEGER NOT NULL,
	tax         INTEGER NOT NULL,
	grand_total INTEGER NOT NULL,
	created_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS checkout_lines (
	checkout_id  TEXT NOT NULL REFERENCES checkouts(id) ON DELETE CASCADE,
	position     INTEGER NOT NULL,
	product_id   TEXT NOT NULL,
	product_name TEXT NOT NULL,
	category     TEXT NOT NULL DEFAULT '',
	unit_price   INTEGER NOT NULL,
	quantity     INTEGER NOT NULL CHECK(quantity > 0),
	PRIMARY KEY (checkout_id, position)
);

CREATE INDEX IF NOT EXISTS idx_checkouts_email ON checkouts(email);
CREATE INDEX IF NOT EXISTS idx_checkouts_created_at ON checkouts(created_at);

INSERT INTO schema_version (version) VALUES (3);
`,
	},
}
