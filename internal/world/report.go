package world

// OfflineReport aggregates a compressed catch-up replay. Produced once at
// session resume, consumed once by the presentation layer, then discarded.
type OfflineReport struct {
	ElapsedSeconds   int64 // wall-clock gap
	SimulatedSeconds int64 // after capping
	StartLevel       int
	EndLevel         int
	XPGained         int64
	GoldGained       int64
	Kills            map[string]int64 // monster display name → count
	Loot             map[string]int64 // item name → quantity
	SkillGained      map[SkillID]int  // levels gained per trained skill
	Deaths           int
}

// DeathReport is the write-once summary of one death.
type DeathReport struct {
	Killer    string
	XPLost    int64
	GoldLost  int64
	LevelDown bool
	Blessed   bool // a blessing was consumed to reduce the losses
}
