package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"WellnessPlanner_HealthProject/internal/llm"
	"WellnessPlanner_HealthProject/internal/metrics"
	"WellnessPlanner_HealthProject/internal/models"
)

type fakeClient struct {
	response string
	err      error
	block    chan struct{} // when non-nil, Complete waits on it
}

func (f *fakeClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeStore struct {
	mu      sync.Mutex
	records []models.PlanRecord
	err     error
}

func (f *fakeStore) PutPlan(record models.PlanRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}

func testProfile() models.Profile {
	return models.Profile{
		Age: 30, Sex: "male",
		Height: 180, HeightUnit: "cm",
		Weight: 80, WeightUnit: "kg",
		ActivityLevel: models.ActivityModerate,
		Goal:          models.GoalFatLoss,
		MealsPerDay:   3,
		DaysPerWeek:   3,
	}
}

const fencedDietResponse = "```json\n" +
	`[{"day": 1, "meals": [
		{"type": "Lunch", "time": "1:00 PM", "foods": [
			"Chicken, 100g, 165 cal, 31g protein, 0g carbs, 3.6g fats"
		]}
	]}]` + "\n```"

func TestGenerate_DietSuccess(t *testing.T) {
	store := &fakeStore{}
	gen := NewGenerator(metrics.Default(), &fakeClient{response: fencedDietResponse}, store)

	var stages []string
	record, err := gen.Generate(context.Background(), 7, models.DomainDiet, testProfile(), func(e Event) {
		stages = append(stages, e.Stage)
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if record.ID == "" || record.OwnerID != 7 || !record.Active {
		t.Errorf("record = %+v, want active record for owner 7 with an id", record)
	}
	if record.Plan.Diet == nil || len(record.Plan.Diet.Days) != 1 {
		t.Fatalf("plan = %+v, want one diet day", record.Plan)
	}
	if record.Plan.Diet.Days[0].Totals.Calories != 165 {
		t.Errorf("day calories = %v, want 165", record.Plan.Diet.Days[0].Totals.Calories)
	}
	if record.Snapshot.Targets.Calories != 2207 {
		t.Errorf("snapshot calorie target = %d, want 2207", record.Snapshot.Targets.Calories)
	}
	if len(record.Snapshot.Meals) != 3 {
		t.Errorf("snapshot meals = %d, want 3", len(record.Snapshot.Meals))
	}
	if len(store.records) != 1 {
		t.Errorf("store received %d records, want 1", len(store.records))
	}

	want := []string{StageMetrics, StagePrompt, StageCompletion, StageRecovery, StageNormalize, StageStore}
	if len(stages) != len(want) {
		t.Fatalf("stages = %v, want %v", stages, want)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Errorf("stage[%d] = %q, want %q", i, stages[i], want[i])
		}
	}
}

func TestGenerate_WorkoutSuccess(t *testing.T) {
	response := `{"days": [{"day": 1, "focus": "Push", "warmup": [], "cooldown": [],
		"exercises": [{"name": "Push Up", "sets": 3, "reps": "12", "rest": "60s"}]}]}`
	store := &fakeStore{}
	gen := NewGenerator(metrics.Default(), &fakeClient{response: response}, store)

	record, err := gen.Generate(context.Background(), 1, models.DomainWorkout, testProfile(), nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if record.Plan.Workout == nil || record.Plan.Diet != nil {
		t.Fatalf("plan = %+v, want workout only", record.Plan)
	}
	if len(record.Snapshot.Sessions) != 3 {
		t.Errorf("snapshot sessions = %d, want 3", len(record.Snapshot.Sessions))
	}
	if record.Snapshot.Targets.Calories != 0 {
		t.Errorf("workout snapshot carries nutrition targets: %+v", record.Snapshot.Targets)
	}
}

func TestGenerate_IncompleteProfile(t *testing.T) {
	gen := NewGenerator(metrics.Default(), &fakeClient{response: "{}"}, &fakeStore{})

	p := testProfile()
	p.Sex = ""
	if _, err := gen.Generate(context.Background(), 1, models.DomainDiet, p, nil); !errors.Is(err, ErrInputIncomplete) {
		t.Errorf("missing sex: error = %v, want ErrInputIncomplete", err)
	}

	// The same profile can still drive a workout plan.
	p.Goal = ""
	if _, err := gen.Generate(context.Background(), 1, models.DomainWorkout, p, nil); !errors.Is(err, ErrInputIncomplete) {
		t.Errorf("missing goal: error = %v, want ErrInputIncomplete", err)
	}
}

func TestGenerate_CompletionErrorPassesThrough(t *testing.T) {
	gen := NewGenerator(metrics.Default(), &fakeClient{err: llm.ErrEmptyCompletion}, &fakeStore{})

	_, err := gen.Generate(context.Background(), 1, models.DomainDiet, testProfile(), nil)
	if !errors.Is(err, llm.ErrEmptyCompletion) {
		t.Errorf("error = %v, want ErrEmptyCompletion unchanged", err)
	}
}

func TestGenerate_UnknownDomain(t *testing.T) {
	gen := NewGenerator(metrics.Default(), &fakeClient{response: "{}"}, &fakeStore{})
	if _, err := gen.Generate(context.Background(), 1, "pilates", testProfile(), nil); err == nil {
		t.Error("unknown domain succeeded, want error")
	}
}

func TestGenerate_InFlightGuard(t *testing.T) {
	block := make(chan struct{})
	client := &fakeClient{response: fencedDietResponse, block: block}
	gen := NewGenerator(metrics.Default(), client, &fakeStore{})

	firstDone := make(chan error, 1)
	go func() {
		_, err := gen.Generate(context.Background(), 1, models.DomainDiet, testProfile(), nil)
		firstDone <- err
	}()

	// Wait for the first run to claim the slot.
	deadline := time.After(2 * time.Second)
	for {
		gen.mu.Lock()
		claimed := gen.inflight["1/diet"]
		gen.mu.Unlock()
		if claimed {
			break
		}
		select {
		case <-deadline:
			t.Fatal("first generation never claimed the in-flight slot")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if _, err := gen.Generate(context.Background(), 1, models.DomainDiet, testProfile(), nil); !errors.Is(err, ErrGenerationInFlight) {
		t.Errorf("concurrent generation: error = %v, want ErrGenerationInFlight", err)
	}

	// A different domain for the same owner is not blocked; let it run
	// concurrently with the blocked diet generation.
	workoutClient := &fakeClient{response: `{"days": [{"day": 1, "focus": "Push"}]}`}
	workoutGen := NewGenerator(metrics.Default(), workoutClient, &fakeStore{})
	if _, err := workoutGen.Generate(context.Background(), 1, models.DomainWorkout, testProfile(), nil); err != nil {
		t.Errorf("workout generation: error = %v", err)
	}

	close(block)
	if err := <-firstDone; err != nil {
		t.Fatalf("first generation failed: %v", err)
	}

	// The slot is released; a new diet run is allowed.
	client.block = nil
	if _, err := gen.Generate(context.Background(), 1, models.DomainDiet, testProfile(), nil); err != nil {
		t.Errorf("generation after release: error = %v", err)
	}
}
