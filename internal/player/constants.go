package player

// Defaults for new players
const (
	DefaultMaxHealth     = 10
	DefaultThresholdBase = 100.0
	DefaultThresholdStep = 25.0
)

// Experience bounds
const (
	// MaxExperienceGrant is the largest amount accepted by one AddExperience call
	MaxExperienceGrant = 1e9

	// MaxCrossingsPerAdd caps the level-ups one grant can produce; experience
	// left over past the cap is dropped
	MaxCrossingsPerAdd = 10000
)

// Stats with side effects beyond the stat map
const (
	StatMaxHealth   = "max_health"
	StatWageBonus   = "wage_bonus"
	StatHealOnLevel = "heal_on_level"
)
