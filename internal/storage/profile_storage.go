package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"WellnessPlanner_HealthProject/internal/models"
)

var ErrProfileNotFound = errors.New("profile not found")

// SaveProfile upserts the questionnaire profile for a user. The profile is
// stored as one JSON document; the questionnaire shape changes too often for
// a column per field.
func SaveProfile(userID int, profile models.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	stmt, err := db.Prepare(`
		INSERT INTO profiles(user_id, profile_json, updated_at) VALUES(?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET profile_json = excluded.profile_json, updated_at = excluded.updated_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(userID, string(data), time.Now().UTC())
	return err
}

func GetProfile(userID int) (models.Profile, error) {
	var profile models.Profile
	var data string

	row := db.QueryRow("SELECT profile_json FROM profiles WHERE user_id = ?", userID)
	if err := row.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return profile, ErrProfileNotFound
		}
		return profile, err
	}

	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return profile, err
	}
	return profile, nil
}
