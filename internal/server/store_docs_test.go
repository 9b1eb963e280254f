package server

import "testing"

func TestCompleteStageMonotonic(t *testing.T) {
	var d deviceDoc

	d.completeStage(0)
	if d.Stage != 1 {
		t.Fatalf("completing stage 0 should set stage 1, got %d", d.Stage)
	}

	// Replaying an already passed stage is a no-op.
	d.completeStage(0)
	if d.Stage != 1 {
		t.Errorf("replayed completion must not advance, got %d", d.Stage)
	}

	d.Stage = 4
	d.completeStage(2)
	if d.Stage != 4 {
		t.Errorf("stale completion must not move the gate, got %d", d.Stage)
	}

	d.completeStage(4)
	if d.Stage != 5 {
		t.Errorf("completing the current stage should advance once, got %d", d.Stage)
	}
	d.completeStage(4)
	if d.Stage != 5 {
		t.Errorf("double completion must advance at most once, got %d", d.Stage)
	}
}

func TestUnlockVerseLevelMonotonic(t *testing.T) {
	var d deviceDoc

	if d.verseLevelUnlocked() != 1 {
		t.Fatalf("level 1 starts unlocked, got %d", d.verseLevelUnlocked())
	}

	d.unlockVerseLevel(2)
	if d.verseLevelUnlocked() != 2 {
		t.Errorf("expected level 2 unlocked, got %d", d.verseLevelUnlocked())
	}

	// The gate never moves backwards.
	d.unlockVerseLevel(1)
	if d.verseLevelUnlocked() != 2 {
		t.Errorf("unlock must not regress, got %d", d.verseLevelUnlocked())
	}
}
