package progression

// XpPerLevel maps level-1 to the cumulative XP required to reach that level.
// Index 0 is level 1 (0 XP). Levels past the table cost ExtrapolationStep
// each on top of the last entry.
var XpPerLevel = []int{
	0,    // level 1
	100,  // level 2
	250,  // level 3
	450,  // level 4
	700,  // level 5
	1000, // level 6
	1400, // level 7
	1900, // level 8
	2500, // level 9
	3200, // level 10
	4000, // level 11
	5000, // level 12
	6200, // level 13
	7600, // level 14
	9200, // level 15
}

// ExtrapolationStep is the cumulative-XP increment per level beyond the table.
const ExtrapolationStep = 1000

// Stats is a display-ready progression summary.
type Stats struct {
	Level           int     `json:"level"`
	TotalXp         int     `json:"total_xp"`
	CurrentLevelXp  int     `json:"current_level_xp"`
	XpForNextLevel  int     `json:"xp_for_next_level"`
	XpNeededForNext int     `json:"xp_needed_for_next"`
	ProgressPercent float64 `json:"progress_percent"`
}

// ThresholdForLevel returns the cumulative XP required to hold the given
// level. Levels at or below 1 cost nothing.
func ThresholdForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	if level <= len(XpPerLevel) {
		return XpPerLevel[level-1]
	}
	last := XpPerLevel[len(XpPerLevel)-1]
	return last + (level-len(XpPerLevel))*ExtrapolationStep
}

// Level returns the highest level whose threshold is satisfied by totalXp.
// Never below 1.
func Level(totalXp int) int {
	if totalXp < 0 {
		totalXp = 0
	}
	last := XpPerLevel[len(XpPerLevel)-1]
	if totalXp >= last {
		return len(XpPerLevel) + (totalXp-last)/ExtrapolationStep
	}
	level := 1
	for i := len(XpPerLevel) - 1; i >= 0; i-- {
		if totalXp >= XpPerLevel[i] {
			level = i + 1
			break
		}
	}
	return level
}

// CurrentLevelXp returns the XP accumulated inside the given level.
func CurrentLevelXp(totalXp, level int) int {
	if totalXp < 0 {
		totalXp = 0
	}
	return totalXp - ThresholdForLevel(level)
}

// XpForNextLevel returns the cumulative XP threshold of level+1.
func XpForNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return ThresholdForLevel(level + 1)
}

// StatsFor derives the full progression summary from a cumulative total.
func StatsFor(totalXp int) Stats {
	if totalXp < 0 {
		totalXp = 0
	}
	level := Level(totalXp)
	currentLevelXp := CurrentLevelXp(totalXp, level)
	nextThreshold := XpForNextLevel(level)
	span := nextThreshold - ThresholdForLevel(level)

	progress := 0.0
	if span > 0 {
		progress = float64(currentLevelXp) / float64(span) * 100
	}
	if progress > 100 {
		progress = 100
	}
	if progress < 0 {
		progress = 0
	}

	return Stats{
		Level:           level,
		TotalXp:         totalXp,
		CurrentLevelXp:  currentLevelXp,
		XpForNextLevel:  nextThreshold,
		XpNeededForNext: nextThreshold - totalXp,
		ProgressPercent: progress,
	}
}
