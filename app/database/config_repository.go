package database

import (
	"database/sql"
	"fmt"
)

var _ ConfigRepository = (*ConfigRepositoryImpl)(nil)

// ConfigRepositoryImpl handles the single-slot poll configuration record.
type ConfigRepositoryImpl struct {
	db *DB
}

func NewConfigRepository(db *DB) *ConfigRepositoryImpl {
	return &ConfigRepositoryImpl{db: db}
}

// GetPollConfig returns the persisted poll configuration, or the default
// (24 hour period, disabled) when the slot has never been written.
func (r *ConfigRepositoryImpl) GetPollConfig() (PollConfig, error) {
	var config PollConfig
	err := r.db.QueryRow(`
		SELECT interval_seconds, enabled FROM poll_config WHERE id = 1
	`).Scan(&config.IntervalSeconds, &config.Enabled)

	if err == sql.ErrNoRows {
		return DefaultPollConfig(), nil
	}
	if err != nil {
		return PollConfig{}, fmt.Errorf("failed to get poll config: %w", err)
	}

	return config, nil
}

// SetPollConfig stores the poll configuration, replacing any previous value.
func (r *ConfigRepositoryImpl) SetPollConfig(config PollConfig) error {
	_, err := r.db.Exec(`
		INSERT INTO poll_config (id, interval_seconds, enabled)
		VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			interval_seconds = excluded.interval_seconds,
			enabled = excluded.enabled
	`, config.IntervalSeconds, config.Enabled)

	if err != nil {
		return fmt.Errorf("failed to set poll config: %w", err)
	}

	return nil
}
