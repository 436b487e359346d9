package world

import "github.com/tornfelipe3-maker/customtibia-sub000/internal/data"

const (
	TaskSlotCount     = 8 // 4 kill + 4 collect
	TaskKillSlots     = 4
	TaskFreeRerollMax = 5
	// TaskRerollRefill is the tick interval at which one free reroll returns.
	TaskRerollRefill = 20 * 3600
)

// TaskSlot is one concurrent hunting task. Kill tasks count kill events into
// Progress; collect tasks never write Progress, their completion is a read
// of current inventory against Amount.
type TaskSlot struct {
	UUID       string
	Kind       string // data.TaskKill or data.TaskCollect
	TargetID   int32
	TargetName string
	Amount     int
	Progress   int // kill tasks only
	Active     bool
	Claimed    bool
	RewardGold int64
	RewardExp  int64
}

// KillComplete reports whether a kill task has reached its quota.
func (t *TaskSlot) KillComplete() bool {
	return t.Kind == data.TaskKill && t.Progress >= t.Amount
}

// CollectComplete reports completion for a collect task given the current
// inventory count of the target item.
func (t *TaskSlot) CollectComplete(have int64) bool {
	return t.Kind == data.TaskCollect && have >= int64(t.Amount)
}

// TaskState is the per-player task board plus its reroll economy.
type TaskState struct {
	Slots       [TaskSlotCount]TaskSlot
	FreeRerolls int
	RefillIn    int64 // ticks until the next free reroll returns
}

// CreditKill advances every active, unclaimed kill task matching the monster.
// Returns the UUIDs of tasks that crossed their quota on this credit.
func (ts *TaskState) CreditKill(monsterID int32, count int) []string {
	var completed []string
	for i := range ts.Slots {
		t := &ts.Slots[i]
		if !t.Active || t.Claimed || t.Kind != data.TaskKill || t.TargetID != monsterID {
			continue
		}
		if t.Progress >= t.Amount {
			continue
		}
		t.Progress += count
		if t.Progress >= t.Amount {
			t.Progress = t.Amount
			completed = append(completed, t.UUID)
		}
	}
	return completed
}
