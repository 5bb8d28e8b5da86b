// Reshapes a recovered raw JSON tree into the stable plan model. The parser
// only guarantees "this is JSON"; shape expectations live here, per domain.
// Every numeric total in the output is recomputed by summing children — raw
// totals from the model are never trusted.
package normalize

import (
	"fmt"
	"sort"
	"strconv"

	"WellnessPlanner_HealthProject/internal/models"
)

// Error is the terminal structural-mismatch failure. Raw carries the tree
// fragment that violated the adapter expectation.
type Error struct {
	Domain string
	Detail string
	Raw    interface{}
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot normalize %s plan: %s", e.Domain, e.Detail)
}

// Normalize dispatches to the domain adapter.
func Normalize(raw interface{}, domain string) (models.NormalizedPlan, error) {
	switch domain {
	case models.DomainDiet:
		plan, err := Diet(raw)
		if err != nil {
			return models.NormalizedPlan{}, err
		}
		return models.NormalizedPlan{Domain: domain, Diet: plan}, nil
	case models.DomainWorkout:
		plan, err := Workout(raw)
		if err != nil {
			return models.NormalizedPlan{}, err
		}
		return models.NormalizedPlan{Domain: domain, Workout: plan}, nil
	default:
		return models.NormalizedPlan{}, &Error{Domain: domain, Detail: "unknown domain"}
	}
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

func asInt(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return 0
}

func asStringSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s := asString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// orderedValues returns list values in order. A list that was serialized as
// an object keyed "0","1",... (an observed model irregularity) is converted
// to an array by ascending key before use.
func orderedValues(v interface{}) ([]interface{}, bool) {
	switch t := v.(type) {
	case []interface{}:
		return t, true
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			ni, ei := strconv.Atoi(keys[i])
			nj, ej := strconv.Atoi(keys[j])
			if ei == nil && ej == nil {
				return ni < nj
			}
			return keys[i] < keys[j]
		})
		out := make([]interface{}, 0, len(t))
		for _, k := range keys {
			out = append(out, t[k])
		}
		return out, true
	default:
		return nil, false
	}
}
