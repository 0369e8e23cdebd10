package progression

import "testing"

func TestLevelTable(t *testing.T) {
	cases := []struct {
		totalXp int
		want    int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{249, 2},
		{250, 3},
		{449, 3},
		{450, 4},
		{9199, 14},
		{9200, 15},
		{10199, 15},
		{10200, 16},
		{11199, 16},
		{11200, 17},
		{-5, 1},
	}
	for _, c := range cases {
		if got := Level(c.totalXp); got != c.want {
			t.Errorf("Level(%d) = %d, want %d", c.totalXp, got, c.want)
		}
	}
}

func TestLevelMonotonic(t *testing.T) {
	prev := 0
	for totalXp := 0; totalXp <= 20000; totalXp += 7 {
		level := Level(totalXp)
		if level < prev {
			t.Fatalf("Level(%d) = %d dropped below previous %d", totalXp, level, prev)
		}
		if level < 1 {
			t.Fatalf("Level(%d) = %d below floor", totalXp, level)
		}
		prev = level
	}
}

func TestCurrentLevelXpNonNegative(t *testing.T) {
	for totalXp := 0; totalXp <= 20000; totalXp += 13 {
		level := Level(totalXp)
		if got := CurrentLevelXp(totalXp, level); got < 0 {
			t.Fatalf("CurrentLevelXp(%d, %d) = %d, want >= 0", totalXp, level, got)
		}
	}
}

func TestThresholdForLevelExtrapolates(t *testing.T) {
	if got := ThresholdForLevel(16); got != 10200 {
		t.Errorf("ThresholdForLevel(16) = %d, want 10200", got)
	}
	if got := ThresholdForLevel(17); got != 11200 {
		t.Errorf("ThresholdForLevel(17) = %d, want 11200", got)
	}
	if got := XpForNextLevel(15); got != 10200 {
		t.Errorf("XpForNextLevel(15) = %d, want 10200", got)
	}
}

func TestStatsFor(t *testing.T) {
	s := StatsFor(0)
	if s.Level != 1 || s.CurrentLevelXp != 0 || s.ProgressPercent != 0 {
		t.Errorf("StatsFor(0) = %+v, want level 1 with zero progress", s)
	}
	if s.XpForNextLevel != 100 || s.XpNeededForNext != 100 {
		t.Errorf("StatsFor(0) next-level fields = %+v", s)
	}

	s = StatsFor(175)
	if s.Level != 2 {
		t.Fatalf("StatsFor(175).Level = %d, want 2", s.Level)
	}
	if s.CurrentLevelXp != 75 {
		t.Errorf("StatsFor(175).CurrentLevelXp = %d, want 75", s.CurrentLevelXp)
	}
	// Level 2 spans 100..250, so 75/150 = 50%.
	if s.ProgressPercent != 50 {
		t.Errorf("StatsFor(175).ProgressPercent = %v, want 50", s.ProgressPercent)
	}

	for totalXp := 0; totalXp <= 15000; totalXp += 11 {
		s := StatsFor(totalXp)
		if s.ProgressPercent < 0 || s.ProgressPercent > 100 {
			t.Fatalf("StatsFor(%d).ProgressPercent = %v out of range", totalXp, s.ProgressPercent)
		}
	}
}
