package gamification

import "testing"

func TestTierForXP_Bands(t *testing.T) {
	tests := []struct {
		xp        int
		wantLevel int
	}{
		{0, 1},
		{299, 1},
		{300, 2},
		{899, 2},
		{900, 3},
		{2100, 4},
		{4500, 5},
		{8999, 5},
		{9000, 6},
		{1000000, 6},
	}

	for _, tc := range tests {
		if got := TierForXP(tc.xp); got.Level != tc.wantLevel {
			t.Errorf("TierForXP(%d).Level = %d, want %d", tc.xp, got.Level, tc.wantLevel)
		}
	}
}

func TestTierForXP_Monotonic(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 12000; xp += 50 {
		level := TierForXP(xp).Level
		if level < prev {
			t.Fatalf("tier level decreased from %d to %d at xp=%d", prev, level, xp)
		}
		prev = level
	}
}

func TestTierForHours(t *testing.T) {
	if got := TierForHours(0); got.Level != 1 {
		t.Errorf("TierForHours(0).Level = %d, want 1", got.Level)
	}
	if got := TierForHours(20); got.Level != 3 {
		t.Errorf("TierForHours(20).Level = %d, want 3", got.Level)
	}
	if got := TierForHours(200); got.Level != 6 {
		t.Errorf("TierForHours(200).Level = %d, want 6", got.Level)
	}
}

func TestTierDisplayForXP_Progress(t *testing.T) {
	// Halfway between Seedling (0) and Sprout (300).
	d := TierDisplayForXP(150)
	if d.Tier.Level != 1 {
		t.Fatalf("Tier.Level = %d, want 1", d.Tier.Level)
	}
	if d.NextTier == nil || d.NextTier.Level != 2 {
		t.Fatal("expected next tier level 2")
	}
	if d.Progress != 50 {
		t.Errorf("Progress = %v, want 50", d.Progress)
	}
}

func TestTierDisplayForXP_TopTier(t *testing.T) {
	d := TierDisplayForXP(20000)
	if d.Tier.Level != 6 {
		t.Fatalf("Tier.Level = %d, want 6", d.Tier.Level)
	}
	if d.NextTier != nil {
		t.Error("top tier must not report a next tier")
	}
	if d.Progress != 100 {
		t.Errorf("Progress = %v, want 100 at top tier", d.Progress)
	}
}
