package storage

import (
	"database/sql"
	"log"

	_ "modernc.org/sqlite"
)

var db *sql.DB

func InitDB(path string) {
	var err error

	db, err = sql.Open("sqlite", path)
	if err != nil {
		log.Fatal("InitDB(): Failed to open database: ", err)
	}
	if err = db.Ping(); err != nil {
		log.Fatal("storage.InitDB(): Failed to connect to database: ", err)
	}

	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
			"id" INTEGER PRIMARY KEY AUTOINCREMENT,
			"username" TEXT NOT NULL UNIQUE,
			"password_hash" TEXT NOT NULL
	);`
	createProfilesTable := `
	CREATE TABLE IF NOT EXISTS profiles (
			"user_id" INTEGER PRIMARY KEY,
			"profile_json" TEXT NOT NULL,
			"updated_at" DATETIME NOT NULL,
			FOREIGN KEY(user_id) REFERENCES users(id)
	);`
	createPlansTable := `
	CREATE TABLE IF NOT EXISTS plans (
			"id" TEXT PRIMARY KEY,
			"owner_id" INTEGER NOT NULL,
			"domain" TEXT NOT NULL,
			"plan_json" TEXT NOT NULL,
			"snapshot_json" TEXT NOT NULL,
			"created_at" DATETIME NOT NULL,
			"active" INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY(owner_id) REFERENCES users(id)
	);`
	createPlansIndex := `
	CREATE INDEX IF NOT EXISTS idx_plans_owner_domain ON plans(owner_id, domain, created_at);`

	if _, err := db.Exec(createUsersTable); err != nil {
		log.Fatalf("InitDB(): Failed to create users table: %v", err)
	}
	if _, err := db.Exec(createProfilesTable); err != nil {
		log.Fatalf("InitDB(): Failed to create profiles table: %v", err)
	}
	if _, err := db.Exec(createPlansTable); err != nil {
		log.Fatalf("InitDB(): Failed to create plans table: %v", err)
	}
	if _, err := db.Exec(createPlansIndex); err != nil {
		log.Fatalf("InitDB(): Failed to create plans index: %v", err)
	}
	log.Println("InitDB(): Init and create tables successfully!")
}
