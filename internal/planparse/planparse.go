// Recovers a JSON tree from raw completion text. The model is instructed to
// return bare JSON but is observed to wrap it in code fences or surround it
// with prose anyway, so recovery runs a fixed sequence of strategies:
//
//	StripFence -> DirectParse -> FencedExtract -> terminal failure
//
// First success wins. There are no retries here; re-invoking the completion
// service is caller policy. Field-level shape checking belongs to the
// normalizer, not this package.
package planparse

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Stage that produced the recovered tree.
type Stage string

const (
	StageDirect Stage = "direct"
	StageFenced Stage = "fenced"
)

// Failure reasons. "no JSON found" means the text contains nothing that even
// starts like JSON; "JSON found but malformed" means a candidate was found
// but strict parsing rejected it (trailing commas included — there is no
// lenient mode).
const (
	ReasonNoJSON    = "no JSON found"
	ReasonMalformed = "JSON found but malformed"
)

// RecoveryError is the terminal failure. Raw carries the completion text
// verbatim for diagnostics and manual recovery.
type RecoveryError struct {
	Reason string
	Raw    string
}

func (e *RecoveryError) Error() string {
	return "plan recovery failed: " + e.Reason
}

// Result of a successful recovery. Plan is the untyped JSON tree.
type Result struct {
	Plan  interface{}
	Stage Stage
}

// Matches the first fenced block, optional language tag included.
var fencedBlockRe = regexp.MustCompile("(?s)```[a-zA-Z0-9]*\\s*(.*?)```")

// Recover runs the strategy sequence over raw completion text.
func Recover(raw string) (Result, error) {
	// DirectParse: strict JSON after fence stripping.
	stripped := stripFence(raw)
	var tree interface{}
	if err := json.Unmarshal([]byte(stripped), &tree); err == nil {
		return Result{Plan: tree, Stage: StageDirect}, nil
	}

	// FencedExtract: first fenced block anywhere in the original text.
	if m := fencedBlockRe.FindStringSubmatch(raw); m != nil {
		inner := strings.TrimSpace(m[1])
		if err := json.Unmarshal([]byte(inner), &tree); err == nil {
			return Result{Plan: tree, Stage: StageFenced}, nil
		}
	}

	reason := ReasonMalformed
	if !strings.ContainsAny(raw, "{[") {
		reason = ReasonNoJSON
	}
	return Result{}, &RecoveryError{Reason: reason, Raw: raw}
}

// stripFence removes a leading fence line (with optional language tag) and a
// trailing fence, plus surrounding whitespace. Text that is not fenced is
// returned trimmed.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.IndexByte(s, '\n'); i != -1 {
			s = s[i+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
