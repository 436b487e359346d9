package event

// HitSplat is a transient combat splash consumed once by the presentation
// layer. The core never reads it back.
type HitSplat struct {
	ID       int64 // tick-derived, unique within a session
	Attacker string
	Target   string
	Amount   int
	Source   string // "basic", "spell", "rune", "reflect", "heal"
	Crit     bool
	Miss     bool
}

// MonsterKilled fires once per settled encounter. Count carries the pooled
// kills of an area hunt wave.
type MonsterKilled struct {
	MonsterID int32
	Name      string
	Count     int
	Boss      bool
	Exp       int64
}

// LevelUp fires once per level gained, including each step of a multi-level
// batch.
type LevelUp struct {
	NewLevel int
}

// SkillAdvanced fires when a trained skill reaches a new level.
type SkillAdvanced struct {
	Skill    string
	NewLevel int
}

// PlayerDied fires after the death handler has finished.
type PlayerDied struct {
	Killer string
}

// TaskCompleted fires when a kill-task reaches its required amount.
type TaskCompleted struct {
	TaskID string
}

// ContentUnlocked fires on gated level-up rewards (naming at 2, vocation
// choice at 8, hazard warning at 12).
type ContentUnlocked struct {
	Feature string
	Level   int
}

// PreyExpired fires when an active prey slot runs out its timer.
type PreyExpired struct {
	Slot int
}
