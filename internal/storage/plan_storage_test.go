package storage

import (
	"errors"
	"testing"
	"time"

	"WellnessPlanner_HealthProject/internal/models"
)

func initTestDB(t *testing.T) {
	t.Helper()
	InitDB(":memory:")
	t.Cleanup(func() {
		db.Close()
		db = nil
	})
}

func dietRecord(id string, ownerID int, createdAt time.Time) models.PlanRecord {
	return models.PlanRecord{
		ID:      id,
		OwnerID: ownerID,
		Domain:  models.DomainDiet,
		Plan: models.NormalizedPlan{
			Domain: models.DomainDiet,
			Diet:   &models.DietPlan{Days: []models.DietDay{{Day: 1}}},
		},
		Snapshot:  models.PlanSnapshot{Profile: models.Profile{Age: 30, Goal: models.GoalFatLoss}},
		CreatedAt: createdAt,
		Active:    true,
	}
}

func TestPutPlan_SupersedesActive(t *testing.T) {
	initTestDB(t)
	store := PlanStore{}
	now := time.Now().UTC()

	if err := store.PutPlan(dietRecord("plan-1", 1, now.Add(-time.Hour))); err != nil {
		t.Fatalf("PutPlan(first) error = %v", err)
	}
	if err := store.PutPlan(dietRecord("plan-2", 1, now)); err != nil {
		t.Fatalf("PutPlan(second) error = %v", err)
	}

	active, err := store.GetActivePlan(1, models.DomainDiet)
	if err != nil {
		t.Fatalf("GetActivePlan() error = %v", err)
	}
	if active.ID != "plan-2" || !active.Active {
		t.Errorf("active plan = %+v, want plan-2", active)
	}
	if active.Plan.Diet == nil || active.Snapshot.Profile.Age != 30 {
		t.Errorf("plan/snapshot did not round-trip: %+v", active)
	}

	history, err := store.GetPlanHistory(1, models.DomainDiet)
	if err != nil {
		t.Fatalf("GetPlanHistory() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history has %d records, want 2", len(history))
	}
	if history[0].ID != "plan-2" || !history[0].Active {
		t.Errorf("newest history entry = %+v, want active plan-2", history[0])
	}
	if history[1].ID != "plan-1" || history[1].Active {
		t.Errorf("older history entry = %+v, want superseded plan-1", history[1])
	}
}

func TestGetPlanHistory_SubSecondOrdering(t *testing.T) {
	initTestDB(t)
	store := PlanStore{}

	// Same second, fractions where one is a text prefix of the other. Text
	// ordering of the stored column must still match time ordering.
	base := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	older := dietRecord("older", 1, base.Add(100*time.Millisecond))
	newer := dietRecord("newer", 1, base.Add(123*time.Millisecond))

	if err := store.PutPlan(older); err != nil {
		t.Fatal(err)
	}
	if err := store.PutPlan(newer); err != nil {
		t.Fatal(err)
	}

	history, err := store.GetPlanHistory(1, models.DomainDiet)
	if err != nil {
		t.Fatalf("GetPlanHistory() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history has %d records, want 2", len(history))
	}
	if history[0].ID != "newer" || history[1].ID != "older" {
		t.Errorf("history order = %q, %q, want newer first", history[0].ID, history[1].ID)
	}
	if !history[0].CreatedAt.Equal(newer.CreatedAt) {
		t.Errorf("created_at did not round-trip: got %v, want %v", history[0].CreatedAt, newer.CreatedAt)
	}

	// A cutoff between the two must prune only the older, superseded row.
	if err := store.PrunePlanHistory(base.Add(110 * time.Millisecond)); err != nil {
		t.Fatalf("PrunePlanHistory() error = %v", err)
	}
	history, err = store.GetPlanHistory(1, models.DomainDiet)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].ID != "newer" {
		t.Errorf("history after prune = %+v, want only the newer plan", history)
	}
}

func TestGetActivePlan_NotFound(t *testing.T) {
	initTestDB(t)
	store := PlanStore{}

	if _, err := store.GetActivePlan(1, models.DomainDiet); !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("error = %v, want ErrPlanNotFound", err)
	}
}

func TestPrunePlanHistory(t *testing.T) {
	initTestDB(t)
	store := PlanStore{}
	now := time.Now().UTC()

	// Old superseded, old active, recent superseded.
	if err := store.PutPlan(dietRecord("old", 1, now.AddDate(0, 0, -120))); err != nil {
		t.Fatal(err)
	}
	if err := store.PutPlan(dietRecord("recent", 1, now.AddDate(0, 0, -10))); err != nil {
		t.Fatal(err)
	}
	old := dietRecord("old-active", 2, now.AddDate(0, 0, -120))
	if err := store.PutPlan(old); err != nil {
		t.Fatal(err)
	}

	if err := store.PrunePlanHistory(now.AddDate(0, 0, -90)); err != nil {
		t.Fatalf("PrunePlanHistory() error = %v", err)
	}

	history, err := store.GetPlanHistory(1, models.DomainDiet)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].ID != "recent" {
		t.Errorf("owner 1 history = %+v, want only the recent plan", history)
	}

	// The old plan for owner 2 is still active and must survive.
	if _, err := store.GetActivePlan(2, models.DomainDiet); err != nil {
		t.Errorf("old active plan was pruned: %v", err)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	initTestDB(t)

	if err := CreateUser("jamie", "hash"); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	user, err := GetUserByUsername("jamie")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}

	if _, err := GetProfile(user.ID); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("error = %v, want ErrProfileNotFound before save", err)
	}

	p := models.Profile{Age: 28, Sex: "female", Height: 165, HeightUnit: "cm", Weight: 60, WeightUnit: "kg", Goal: models.GoalEndurance}
	if err := SaveProfile(user.ID, p); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}
	p.Age = 29
	if err := SaveProfile(user.ID, p); err != nil {
		t.Fatalf("SaveProfile(update) error = %v", err)
	}

	got, err := GetProfile(user.ID)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got.Age != 29 || got.Goal != models.GoalEndurance {
		t.Errorf("profile = %+v, want updated age 29", got)
	}
}

func TestCreateUser_Duplicate(t *testing.T) {
	initTestDB(t)

	if err := CreateUser("sam", "hash"); err != nil {
		t.Fatal(err)
	}
	if err := CreateUser("sam", "hash2"); !errors.Is(err, ErrUsernameExists) {
		t.Errorf("error = %v, want ErrUsernameExists", err)
	}
}
