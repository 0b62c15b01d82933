package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the history database schema.
// Timestamps are unix nanoseconds and durations are nanoseconds so that
// range filters compare numerically.
const Schema = `
CREATE TABLE IF NOT EXISTS generations (
    id TEXT PRIMARY KEY,
    request_id TEXT,

    expression TEXT NOT NULL,
    expression_hash TEXT NOT NULL,
    language TEXT NOT NULL,
    variables TEXT,

    code TEXT,
    status TEXT NOT NULL,
    nodes INTEGER NOT NULL DEFAULT 0,

    error_code TEXT,
    error_message TEXT,

    duration_ns INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_generations_created_at ON generations(created_at);
CREATE INDEX IF NOT EXISTS idx_generations_language ON generations(language);
CREATE INDEX IF NOT EXISTS idx_generations_status ON generations(status);
CREATE INDEX IF NOT EXISTS idx_generations_expression_hash ON generations(expression_hash);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at INTEGER NOT NULL
);
`

// InsertSchemaVersion records the schema version if it is not present yet.
const InsertSchemaVersion = `
INSERT OR IGNORE INTO schema_version (version, applied_at)
VALUES (?, CAST(strftime('%s', 'now') AS INTEGER));
`

// GetSchemaVersion returns the latest applied schema version.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

const selectColumns = `id, request_id, expression, expression_hash, language, variables,
	code, status, nodes, error_code, error_message, duration_ns, created_at`
