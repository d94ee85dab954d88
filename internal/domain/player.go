package domain

// PlayerState is a point-in-time view of a player taking part in drafts
type PlayerState struct {
	ID              string             `json:"id"`
	Balance         int64              `json:"balance"`
	Health          int                `json:"health"`
	MaxHealth       int                `json:"max_health"`
	Level           int                `json:"level"`
	Experience      float64            `json:"experience"`
	Threshold       float64            `json:"threshold"`
	PendingLevelUps int                `json:"pending_level_ups"`
	Stats           map[string]float64 `json:"stats"`
}

// Alive reports whether the player can still level up
func (p PlayerState) Alive() bool {
	return p.Health > 0
}

// ExperienceResult reports the outcome of an experience gain
type ExperienceResult struct {
	Player    PlayerState    `json:"player"`
	Crossings int            `json:"crossings"`
	Draft     *DraftSnapshot `json:"draft,omitempty"`
}
