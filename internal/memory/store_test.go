package memory

import (
	"testing"
	"time"

	"decision-analysis/internal/model"
)

func outcomeOf(blocker model.Blocker, fix string) model.HistoricalOutcome {
	return model.HistoricalOutcome{
		ContextID: "ctx",
		Outcome:   model.DecisionOutcome{Blocker: blocker, Category: model.BlockerCategory[blocker]},
		Fix:       fix,
		Timestamp: time.Unix(0, 0),
	}
}

func TestRecordEvictsOldestOnOverflow(t *testing.T) {
	s := NewInProcessStore(3)
	s.Record("ctx", outcomeOf(model.BlockerTrustGap, "a"))
	s.Record("ctx", outcomeOf(model.BlockerTrustGap, "b"))
	s.Record("ctx", outcomeOf(model.BlockerTrustGap, "c"))
	s.Record("ctx", outcomeOf(model.BlockerTrustGap, "d"))

	history := s.History("ctx")
	if len(history) != 3 {
		t.Fatalf("expected ring to cap at 3, got %d", len(history))
	}
	if history[0].Fix != "b" {
		t.Fatalf("expected oldest record evicted, got first=%s", history[0].Fix)
	}
}

func TestHistoryIsPerContextIsolated(t *testing.T) {
	s := NewInProcessStore(10)
	s.Record("ctx-a", outcomeOf(model.BlockerTrustGap, "a"))
	s.Record("ctx-b", outcomeOf(model.BlockerEffortTooHigh, "b"))

	if len(s.History("ctx-a")) != 1 || len(s.History("ctx-b")) != 1 {
		t.Fatal("expected contexts not to share history")
	}
}

func TestTrajectoryPersistentAtHighRatio(t *testing.T) {
	var history []model.HistoricalOutcome
	for i := 0; i < 8; i++ {
		history = append(history, outcomeOf(model.BlockerTrustGap, "fix"))
	}
	history = append(history, outcomeOf(model.BlockerEffortTooHigh, "other"))
	history = append(history, outcomeOf(model.BlockerEffortTooHigh, "other"))

	trajectories := Trajectory(history)
	found := false
	for _, tr := range trajectories {
		if tr.Blocker == model.BlockerTrustGap {
			found = true
			if tr.Class != model.TrajectoryPersistent {
				t.Fatalf("expected persistent at 80%% ratio, got %s", tr.Class)
			}
		}
	}
	if !found {
		t.Fatal("expected trust gap trajectory to be present")
	}
}

func TestFatigueCriticalAtSixOccurrences(t *testing.T) {
	var history []model.HistoricalOutcome
	for i := 0; i < 6; i++ {
		history = append(history, outcomeOf(model.BlockerEffortTooHigh, "fix"))
	}
	f := Fatigue(history)
	if f.Level != model.FatigueCritical {
		t.Fatalf("expected critical fatigue at 6 occurrences, got %s", f.Level)
	}
}

func TestFatigueNoneOnEmptyHistory(t *testing.T) {
	f := Fatigue(nil)
	if f.Level != model.FatigueNone {
		t.Fatalf("expected none on empty history, got %s", f.Level)
	}
}

func TestBuildMemoryInputNoHistory(t *testing.T) {
	mi := BuildMemoryInput(nil, model.BlockerTrustGap)
	if mi.HasHistory {
		t.Fatal("expected HasHistory false with no records")
	}
}

func TestBuildMemoryInputSparseHistory(t *testing.T) {
	history := []model.HistoricalOutcome{outcomeOf(model.BlockerTrustGap, "fix")}
	mi := BuildMemoryInput(history, model.BlockerTrustGap)
	if !mi.HasHistory || !mi.Sparse || mi.PersistentMatch || mi.Conflicting {
		t.Fatalf("expected HasHistory+Sparse for a sub-3-record history, got %+v", mi)
	}
}

func TestSuppressRepeatedFixDetectsNearDuplicate(t *testing.T) {
	history := []model.HistoricalOutcome{
		outcomeOf(model.BlockerTrustGap, "Add a guarantee near the button"),
	}
	if !SuppressRepeatedFix(history, "add a guarantees near the buttons", 5) {
		t.Fatal("expected near-duplicate fix text to be suppressed")
	}
}

func TestSuppressRepeatedFixAllowsNewText(t *testing.T) {
	history := []model.HistoricalOutcome{
		outcomeOf(model.BlockerTrustGap, "Add a guarantee near the button"),
	}
	if SuppressRepeatedFix(history, "Shorten the signup form", 5) {
		t.Fatal("expected distinct fix text not to be suppressed")
	}
}
