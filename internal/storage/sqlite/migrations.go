package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    address TEXT NOT NULL,
    phone_number TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS persons (
    id TEXT PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    phone_number TEXT NOT NULL,
    involvement TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS insurances (
    id TEXT PRIMARY KEY,
    owner_kind TEXT NOT NULL,
    owner_id TEXT NOT NULL,
    car_registration_number TEXT NOT NULL,
    insurer_company TEXT NOT NULL,
    insurer_contact_number TEXT NOT NULL,
    insurance_policy TEXT NOT NULL,
    insurance_policy_number TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS accidents (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    date INTEGER NOT NULL,
    time TEXT NOT NULL,
    location TEXT NOT NULL,
    speed TEXT NOT NULL,
    weather_conditions TEXT NOT NULL,
    crash_description TEXT NOT NULL,
    photos TEXT NOT NULL DEFAULT '[]',
    witnesses TEXT NOT NULL DEFAULT '[]',
    other_vehicles TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_insurances_owner ON insurances(owner_kind, owner_id);
CREATE INDEX IF NOT EXISTS idx_accidents_user_id ON accidents(user_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
