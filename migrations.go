package main

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

func InitDB(filepath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", filepath)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

func RunMigrations(db *sql.DB) error {
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
		`CREATE INDEX IF NOT EXISTS idx_conversation_threads_agent_key
			ON conversation_threads(agent_key);`,
		`CREATE INDEX IF NOT EXISTS idx_conversation_threads_last_active_at
			ON conversation_threads(last_active_at);`,
		`CREATE TABLE IF NOT EXISTS response_caches (
			"key" TEXT NOT NULL PRIMARY KEY,
			"value" TEXT,
			"created_at" DATETIME,
			"expires_at" DATETIME
		);`,
		`CREATE INDEX IF NOT EXISTS idx_response_caches_expires_at
			ON response_caches(expires_at);`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}
