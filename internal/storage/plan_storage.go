package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"time"

	"WellnessPlanner_HealthProject/internal/models"
)

var ErrPlanNotFound = errors.New("no plan for this domain")

// Fixed-width timestamp layout. RFC3339Nano trims trailing fractional zeros,
// which breaks the string comparisons in ORDER BY and the prune cutoff; this
// layout keeps text order equal to time order.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// PlanStore groups the plan persistence operations so callers can depend on
// an injected value instead of package functions.
type PlanStore struct{}

// PutPlan stores a new plan and supersedes the previous active one for the
// same (owner, domain) in a single transaction. Superseded rows stay in the
// table as history.
func (PlanStore) PutPlan(record models.PlanRecord) error {
	planJSON, err := json.Marshal(record.Plan)
	if err != nil {
		return err
	}
	snapshotJSON, err := json.Marshal(record.Snapshot)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"UPDATE plans SET active = 0 WHERE owner_id = ? AND domain = ? AND active = 1",
		record.OwnerID, record.Domain,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(
		"INSERT INTO plans(id, owner_id, domain, plan_json, snapshot_json, created_at, active) VALUES(?, ?, ?, ?, ?, ?, 1)",
		record.ID, record.OwnerID, record.Domain, string(planJSON), string(snapshotJSON),
		record.CreatedAt.UTC().Format(createdAtLayout),
	); err != nil {
		return err
	}
	return tx.Commit()
}

// GetActivePlan returns the current plan for (owner, domain), or
// ErrPlanNotFound when none has been generated yet.
func (PlanStore) GetActivePlan(ownerID int, domain string) (models.PlanRecord, error) {
	row := db.QueryRow(`
		SELECT id, owner_id, domain, plan_json, snapshot_json, created_at
		FROM plans
		WHERE owner_id = ? AND domain = ? AND active = 1
	`, ownerID, domain)

	record, err := scanPlan(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return record, ErrPlanNotFound
		}
		return record, err
	}
	record.Active = true
	return record, nil
}

// GetPlanHistory returns all plans for (owner, domain), newest first, the
// active one included.
func (PlanStore) GetPlanHistory(ownerID int, domain string) ([]models.PlanRecord, error) {
	rows, err := db.Query(`
		SELECT id, owner_id, domain, plan_json, snapshot_json, created_at, active
		FROM plans
		WHERE owner_id = ? AND domain = ?
		ORDER BY created_at DESC
	`, ownerID, domain)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.PlanRecord
	for rows.Next() {
		var active int
		record, err := scanPlanRow(rows, &active)
		if err != nil {
			return nil, err
		}
		record.Active = active == 1
		records = append(records, record)
	}
	return records, rows.Err()
}

// PrunePlanHistory deletes superseded plans older than the cutoff. Active
// plans are never pruned regardless of age.
func (PlanStore) PrunePlanHistory(olderThan time.Time) error {
	res, err := db.Exec(
		"DELETE FROM plans WHERE active = 0 AND created_at < ?",
		olderThan.UTC().Format(createdAtLayout),
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		log.Printf("PrunePlanHistory(): pruned %d superseded plans", n)
	}
	return nil
}

func scanPlan(scan func(dest ...interface{}) error) (models.PlanRecord, error) {
	var record models.PlanRecord
	var planJSON, snapshotJSON, createdStr string

	if err := scan(&record.ID, &record.OwnerID, &record.Domain, &planJSON, &snapshotJSON, &createdStr); err != nil {
		return record, err
	}
	return fillPlan(record, planJSON, snapshotJSON, createdStr)
}

func scanPlanRow(rows *sql.Rows, active *int) (models.PlanRecord, error) {
	var record models.PlanRecord
	var planJSON, snapshotJSON, createdStr string

	if err := rows.Scan(&record.ID, &record.OwnerID, &record.Domain, &planJSON, &snapshotJSON, &createdStr, active); err != nil {
		return record, err
	}
	return fillPlan(record, planJSON, snapshotJSON, createdStr)
}

func fillPlan(record models.PlanRecord, planJSON, snapshotJSON, createdStr string) (models.PlanRecord, error) {
	if err := json.Unmarshal([]byte(planJSON), &record.Plan); err != nil {
		return record, err
	}
	if err := json.Unmarshal([]byte(snapshotJSON), &record.Snapshot); err != nil {
		return record, err
	}
	parsed, err := time.Parse(createdAtLayout, createdStr)
	if err != nil {
		return record, err
	}
	record.CreatedAt = parsed
	return record, nil
}
