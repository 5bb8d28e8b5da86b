package planparse

import (
	"errors"
	"testing"
)

func TestRecover_BareJSON(t *testing.T) {
	res, err := Recover(`{"a": 1}`)
	if err != nil {
		t.Fatalf("Recover() error = %v", err)
	}
	if res.Stage != StageDirect {
		t.Errorf("stage = %q, want direct", res.Stage)
	}
	m, ok := res.Plan.(map[string]interface{})
	if !ok || m["a"] != float64(1) {
		t.Errorf("plan = %#v, want map with a=1", res.Plan)
	}
}

func TestRecover_FencedOnly(t *testing.T) {
	// The whole completion is one fenced block; fence stripping handles the
	// language tag, so this parses at the direct stage.
	res, err := Recover("```json\n{\"a\":1}\n```")
	if err != nil {
		t.Fatalf("Recover() error = %v", err)
	}
	if res.Stage != StageDirect {
		t.Errorf("stage = %q, want direct", res.Stage)
	}
	if m := res.Plan.(map[string]interface{}); m["a"] != float64(1) {
		t.Errorf("plan = %#v, want a=1", res.Plan)
	}
}

func TestRecover_FencedInsideProse(t *testing.T) {
	raw := "Sure! Here is your plan:\n```json\n{\"a\":1}\n```\nEnjoy!"
	res, err := Recover(raw)
	if err != nil {
		t.Fatalf("Recover() error = %v", err)
	}
	if res.Stage != StageFenced {
		t.Errorf("stage = %q, want fenced", res.Stage)
	}
	if m := res.Plan.(map[string]interface{}); m["a"] != float64(1) {
		t.Errorf("plan = %#v, want a=1", res.Plan)
	}
}

func TestRecover_FencedArrayWithoutTag(t *testing.T) {
	res, err := Recover("```\n[1, 2, 3]\n```")
	if err != nil {
		t.Fatalf("Recover() error = %v", err)
	}
	arr, ok := res.Plan.([]interface{})
	if !ok || len(arr) != 3 {
		t.Errorf("plan = %#v, want 3-element array", res.Plan)
	}
}

func TestRecover_NoJSON(t *testing.T) {
	raw := "no json here"
	_, err := Recover(raw)
	var rerr *RecoveryError
	if !errors.As(err, &rerr) {
		t.Fatalf("error = %v, want *RecoveryError", err)
	}
	if rerr.Reason != ReasonNoJSON {
		t.Errorf("reason = %q, want %q", rerr.Reason, ReasonNoJSON)
	}
	if rerr.Raw != raw {
		t.Errorf("raw text not preserved verbatim: %q", rerr.Raw)
	}
}

func TestRecover_TrailingCommaIsTerminal(t *testing.T) {
	// Near-valid JSON stays terminal: no lenient mode.
	_, err := Recover(`{"a":1,}`)
	var rerr *RecoveryError
	if !errors.As(err, &rerr) {
		t.Fatalf("error = %v, want *RecoveryError", err)
	}
	if rerr.Reason != ReasonMalformed {
		t.Errorf("reason = %q, want %q", rerr.Reason, ReasonMalformed)
	}
}

func TestRecover_FencedMalformed(t *testing.T) {
	_, err := Recover("```json\n{\"a\":1,}\n```")
	var rerr *RecoveryError
	if !errors.As(err, &rerr) {
		t.Fatalf("error = %v, want *RecoveryError", err)
	}
	if rerr.Reason != ReasonMalformed {
		t.Errorf("reason = %q, want %q", rerr.Reason, ReasonMalformed)
	}
}
