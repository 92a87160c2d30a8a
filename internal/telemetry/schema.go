package telemetry

import (
	"database/sql"

	"codeberg.org/mutker/rioctl/internal/errors"
)

// initSchema initializes the database schema for telemetry data
func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS telemetry (
            timestamp INTEGER PRIMARY KEY,
            battery_voltage REAL,
            browned_out INTEGER,
            system_active INTEGER,
            fpga_time_micros INTEGER
        )
    `)
	if err != nil {
		return errors.New().Wrap(ErrSchemaInitFailed, err)
	}

	return nil
}
