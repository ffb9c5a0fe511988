package testutils

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SetupTestDB creates an in-memory SQLite database with the agent
// schema for testing
func SetupTestDB() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, err
	}

	queries := []string{
		`CREATE TABLE IF NOT EXISTS agent_deployments (
			"id" INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
			"agent_key" TEXT UNIQUE,
			"assistant_id" TEXT,
			"name" TEXT,
			"model" TEXT,
			"instructions" TEXT,
			"deployed_at" DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS conversation_threads (
			"thread_id" TEXT NOT NULL PRIMARY KEY,
			"agent_key" TEXT,
			"assistant_id" TEXT,
			"started_at" DATETIME,
			"last_active_at" DATETIME,
			"message_count" INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS response_caches (
			"key" TEXT NOT NULL PRIMARY KEY,
			"value" TEXT,
			"created_at" DATETIME,
			"expires_at" DATETIME
		);`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// CreateTestDeployment helps seeding a deployment record for tests
func CreateTestDeployment(db *sql.DB, agentKey, assistantID, name string) error {
	_, err := db.Exec("INSERT INTO agent_deployments (agent_key, assistant_id, name, model, instructions, deployed_at) VALUES (?, ?, ?, ?, ?, ?)",
		agentKey, assistantID, name, "gpt-35-turbo", "", time.Now())
	return err
}
