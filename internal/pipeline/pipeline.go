// Orchestrates one plan generation end to end: profile -> metrics -> targets
// -> prompt -> completion -> recovery -> normalization -> store. Stages run
// sequentially; a failure at any stage aborts the run and surfaces the stage
// error unchanged.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"WellnessPlanner_HealthProject/internal/allocation"
	"WellnessPlanner_HealthProject/internal/metrics"
	"WellnessPlanner_HealthProject/internal/models"
	"WellnessPlanner_HealthProject/internal/normalize"
	"WellnessPlanner_HealthProject/internal/planparse"
	"WellnessPlanner_HealthProject/internal/prompt"
)

var (
	ErrInputIncomplete    = errors.New("profile is missing inputs required for plan generation")
	ErrGenerationInFlight = errors.New("a generation for this plan is already running")
)

// Pipeline stages, in execution order. Sent to the notify callback as each
// stage begins so clients can render progress.
const (
	StageMetrics    = "metrics"
	StagePrompt     = "prompt"
	StageCompletion = "completion"
	StageRecovery   = "recovery"
	StageNormalize  = "normalize"
	StageStore      = "store"
)

type Event struct {
	Stage  string `json:"stage"`
	Detail string `json:"detail,omitempty"`
}

// CompletionClient is the generation backend. *llm.Client satisfies it.
type CompletionClient interface {
	Complete(ctx context.Context, systemInstruction, prompt string) (string, error)
}

// PlanStore persists finished plans. *storage.PlanStore satisfies it.
type PlanStore interface {
	PutPlan(record models.PlanRecord) error
}

type Generator struct {
	calc   metrics.Calculator
	client CompletionClient
	store  PlanStore

	mu       sync.Mutex
	inflight map[string]bool // "ownerID/domain"
}

func NewGenerator(calc metrics.Calculator, client CompletionClient, store PlanStore) *Generator {
	return &Generator{
		calc:     calc,
		client:   client,
		store:    store,
		inflight: make(map[string]bool),
	}
}

// Generate runs the full pipeline for one (owner, domain) pair. At most one
// generation per pair runs at a time; a second call while one is running
// returns ErrGenerationInFlight instead of queuing. notify may be nil.
func (g *Generator) Generate(ctx context.Context, ownerID int, domain string, profile models.Profile, notify func(Event)) (models.PlanRecord, error) {
	if domain != models.DomainDiet && domain != models.DomainWorkout {
		return models.PlanRecord{}, fmt.Errorf("unknown plan domain %q", domain)
	}
	if err := checkInputs(profile, domain); err != nil {
		return models.PlanRecord{}, err
	}

	key := fmt.Sprintf("%d/%s", ownerID, domain)
	g.mu.Lock()
	if g.inflight[key] {
		g.mu.Unlock()
		return models.PlanRecord{}, ErrGenerationInFlight
	}
	g.inflight[key] = true
	g.mu.Unlock()
	defer func() {
		g.mu.Lock()
		delete(g.inflight, key)
		g.mu.Unlock()
	}()

	emit := func(stage, detail string) {
		if notify != nil {
			notify(Event{Stage: stage, Detail: detail})
		}
	}

	emit(StageMetrics, "")
	snapshot := models.PlanSnapshot{Profile: profile}
	var userPrompt string
	if domain == models.DomainDiet {
		bmr := g.calc.BMR(profile.Height, profile.Weight, profile.HeightUnit, profile.WeightUnit, profile.Sex, profile.Age)
		tdee := g.calc.TDEE(bmr, profile.ActivityLevel)
		calories := g.calc.CalorieTarget(tdee, profile.Goal)
		if calories <= 0 {
			return models.PlanRecord{}, ErrInputIncomplete
		}
		snapshot.Targets = g.calc.Macros(calories, profile.Goal)
		snapshot.Meals = allocation.Meals(snapshot.Targets, profile.MealsPerDay, profile.Goal)

		emit(StagePrompt, "")
		userPrompt = prompt.Diet(profile, snapshot.Targets, snapshot.Meals)
	} else {
		snapshot.Sessions = allocation.Sessions(profile.DaysPerWeek)

		emit(StagePrompt, "")
		userPrompt = prompt.Workout(profile, snapshot.Sessions)
	}

	emit(StageCompletion, "")
	completion, err := g.client.Complete(ctx, prompt.SystemInstruction, userPrompt)
	if err != nil {
		return models.PlanRecord{}, err
	}

	emit(StageRecovery, "")
	recovered, err := planparse.Recover(completion)
	if err != nil {
		return models.PlanRecord{}, err
	}
	if recovered.Stage != planparse.StageDirect {
		log.Printf("Generate(): completion for %s needed %s recovery", key, recovered.Stage)
	}

	emit(StageNormalize, "")
	plan, err := normalize.Normalize(recovered.Plan, domain)
	if err != nil {
		return models.PlanRecord{}, err
	}

	record := models.PlanRecord{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Domain:    domain,
		Plan:      plan,
		Snapshot:  snapshot,
		CreatedAt: time.Now().UTC(),
		Active:    true,
	}

	emit(StageStore, "")
	if err := g.store.PutPlan(record); err != nil {
		return models.PlanRecord{}, fmt.Errorf("failed to store generated plan: %w", err)
	}
	return record, nil
}

// checkInputs rejects profiles that cannot drive the requested domain before
// any model call is made. Diet needs the full metric chain; workout only needs
// a goal to anchor the split.
func checkInputs(p models.Profile, domain string) error {
	if p.Goal == "" {
		return ErrInputIncomplete
	}
	if domain == models.DomainDiet {
		if p.Age <= 0 || p.Height <= 0 || p.Weight <= 0 {
			return ErrInputIncomplete
		}
		if p.Sex != "male" && p.Sex != "female" {
			return ErrInputIncomplete
		}
		if p.HeightUnit == "" || p.WeightUnit == "" {
			return ErrInputIncomplete
		}
	}
	return nil
}
