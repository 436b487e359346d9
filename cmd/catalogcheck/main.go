// catalogcheck loads every YAML catalog, validates cross-references and
// prints counts. Run it after editing game data.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tornfelipe3-maker/customtibia-sub000/internal/data"
)

func main() {
	dir := flag.String("dir", "data/yaml", "catalog directory")
	flag.Parse()

	if err := run(*dir); err != nil {
		fmt.Fprintf(os.Stderr, "catalogcheck: %v\n", err)
		os.Exit(1)
	}
}

func run(dir string) error {
	monsters, err := data.LoadMonsterTable(filepath.Join(dir, "monster_list.yaml"))
	if err != nil {
		return err
	}
	items, err := data.LoadItemTable(filepath.Join(dir, "item_list.yaml"))
	if err != nil {
		return err
	}
	spells, err := data.LoadSpellTable(filepath.Join(dir, "spell_list.yaml"))
	if err != nil {
		return err
	}
	loot, err := data.LoadLootTable(filepath.Join(dir, "loot_list.yaml"))
	if err != nil {
		return err
	}
	tasks, err := data.LoadTaskTable(filepath.Join(dir, "task_list.yaml"))
	if err != nil {
		return err
	}

	problems := 0
	complain := func(format string, args ...any) {
		problems++
		fmt.Printf("  ! "+format+"\n", args...)
	}

	monsters.All(func(m *data.MonsterTemplate) {
		if m.LootTableID != 0 && loot.Get(m.LootTableID) == nil {
			complain("monster %d (%s) references missing loot table %d", m.MonsterID, m.Name, m.LootTableID)
		}
		if m.MaxDamage < m.MinDamage {
			complain("monster %d (%s) has max_damage < min_damage", m.MonsterID, m.Name)
		}
		if m.AtkInterval < 1 {
			complain("monster %d (%s) has atk_interval < 1", m.MonsterID, m.Name)
		}
	})

	for tableID, entries := range allLoot(loot, monsters) {
		for _, e := range entries {
			if items.Get(e.ItemID) == nil {
				complain("loot table %d references missing item %d", tableID, e.ItemID)
			}
			if e.Chance < 0 || e.Chance > 1_000_000 {
				complain("loot table %d item %d chance %d out of range", tableID, e.ItemID, e.Chance)
			}
			if e.MaxAmount < 1 {
				complain("loot table %d item %d has max_amount < 1", tableID, e.ItemID)
			}
		}
	}

	for _, t := range tasks.Kill() {
		if monsters.Get(t.TargetID) == nil {
			complain("kill task %d references missing monster %d", t.TaskID, t.TargetID)
		}
	}
	for _, t := range tasks.Collect() {
		if items.Get(t.TargetID) == nil {
			complain("collect task %d references missing item %d", t.TaskID, t.TargetID)
		}
	}

	fmt.Printf("monsters: %d\nitems: %d\nspells: %d\nloot tables: %d\ntasks: %d\n",
		monsters.Count(), items.Count(), spells.Count(), loot.Count(), tasks.Count())
	if problems > 0 {
		return fmt.Errorf("%d problems found", problems)
	}
	fmt.Println("all cross-references OK")
	return nil
}

// allLoot collects the loot tables reachable from monsters, since the loot
// catalog has no exported iterator.
func allLoot(loot *data.LootTable, monsters *data.MonsterTable) map[int32][]data.LootEntry {
	out := make(map[int32][]data.LootEntry)
	monsters.All(func(m *data.MonsterTemplate) {
		if m.LootTableID != 0 {
			out[m.LootTableID] = loot.Get(m.LootTableID)
		}
	})
	return out
}
