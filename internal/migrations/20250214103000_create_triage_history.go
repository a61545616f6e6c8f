package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateTriageHistory, downCreateTriageHistory)
}

func upCreateTriageHistory(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE triage_history (
		id UUID PRIMARY KEY,
		asset_id TEXT NOT NULL,
		decision TEXT NOT NULL,
		decided_at TIMESTAMPTZ NOT NULL,
		committed_at TIMESTAMPTZ
	);
	CREATE INDEX idx_triage_history_asset ON triage_history (asset_id);
	CREATE INDEX idx_triage_history_decided ON triage_history (decided_at);
	`)
	return err
}

func downCreateTriageHistory(tx *sql.Tx) error {
	_, err := tx.Exec(`
	DROP TABLE triage_history;
	`)
	return err
}
