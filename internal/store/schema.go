package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS days (
    day                    TEXT PRIMARY KEY,
    input_tokens           INTEGER NOT NULL,
    output_tokens          INTEGER NOT NULL,
    cache_creation_tokens  INTEGER NOT NULL,
    cache_read_tokens      INTEGER NOT NULL,
    cost                   REAL NOT NULL,
    messages               INTEGER NOT NULL,
    sessions               INTEGER NOT NULL,
    models                 TEXT NOT NULL,
    recorded_at            TEXT NOT NULL
);
`
