package system

import (
	"testing"

	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/tornfelipe3-maker/customtibia-sub000/internal/config"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/core/event"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/data"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/rng"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/scripting"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/world"
)

// testingT is the subset of *testing.T and *rapid.T the helpers below need.
type testingT interface {
	rapid.TB
	Cleanup(func())
}

// stubSource is a fully predictable rng.Source for unit-level assertions.
// Roll returns the range minimum, Intn returns a settable value, and Chance
// fires only when armed (probability extremes still behave).
type stubSource struct {
	chance  bool
	intnVal int
}

func (s *stubSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if s.intnVal >= n {
		return n - 1
	}
	return s.intnVal
}

func (s *stubSource) Roll(min, max int) int { return min }

func (s *stubSource) Float64() float64 { return 0 }

func (s *stubSource) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.chance
}

func loadTestTables(t testingT) (*data.MonsterTable, *data.ItemTable, *data.SpellTable, *data.LootTable, *data.TaskTable) {
	t.Helper()
	monsters, err := data.LoadMonsterTable("../../data/yaml/monster_list.yaml")
	if err != nil {
		t.Fatal(err)
	}
	items, err := data.LoadItemTable("../../data/yaml/item_list.yaml")
	if err != nil {
		t.Fatal(err)
	}
	spells, err := data.LoadSpellTable("../../data/yaml/spell_list.yaml")
	if err != nil {
		t.Fatal(err)
	}
	loot, err := data.LoadLootTable("../../data/yaml/loot_list.yaml")
	if err != nil {
		t.Fatal(err)
	}
	tasks, err := data.LoadTaskTable("../../data/yaml/task_list.yaml")
	if err != nil {
		t.Fatal(err)
	}
	return monsters, items, spells, loot, tasks
}

// newTestRuntime wires a runtime around the shipped catalogs and scripts with
// the given random source.
func newTestRuntime(t testingT, src rng.Source) *Runtime {
	t.Helper()
	monsters, items, spells, loot, tasks := loadTestTables(t)
	lua, err := scripting.NewEngine("../../scripts", src, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(lua.Close)

	gameplay := config.Default().Gameplay
	p := world.NewPlayer("test-account", gameplay.MaxStamina)
	return NewRuntime(p, monsters, items, spells, loot, tasks,
		src, lua, event.NewBus(), gameplay, zap.NewNop())
}

func newSeededScheduler(t *testing.T, seed int64) *Scheduler {
	t.Helper()
	return NewScheduler(newTestRuntime(t, rng.New(seed)))
}

func startHuntOn(rt *Runtime, monsterID int32, count int) {
	tpl := rt.Monsters.Get(monsterID)
	rt.Player.Activity = world.Activity{
		Kind:        world.ActivityHunt,
		MonsterID:   tpl.MonsterID,
		MonsterName: tpl.Name,
		Boss:        tpl.Boss,
		Count:       count,
	}
}

// countEvents subscribes a counter for LevelUp events and returns a pointer
// the test can read after flushing the bus.
func countLevelUps(bus *event.Bus) *int {
	n := new(int)
	event.Subscribe(bus, func(event.LevelUp) { *n++ })
	return n
}

func flushBus(bus *event.Bus) {
	bus.SwapBuffers()
	bus.DispatchAll()
}
