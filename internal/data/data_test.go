package data

import (
	"os"
	"path/filepath"
	"testing"
)

const yamlDir = "../../data/yaml"

func TestLoadMonsterTable(t *testing.T) {
	tbl, err := LoadMonsterTable(filepath.Join(yamlDir, "monster_list.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Count() == 0 {
		t.Fatal("no monsters loaded")
	}
	rat := tbl.Get(1)
	if rat == nil || rat.Name != "rat" {
		t.Fatalf("monster 1 = %+v", rat)
	}
	if rat.HP <= 0 || rat.MaxDamage < rat.MinDamage || rat.AtkInterval <= 0 {
		t.Errorf("rat stats out of shape: %+v", rat)
	}

	bossSeen := false
	gateSeen := false
	tbl.All(func(m *MonsterTemplate) {
		if m.Boss {
			bossSeen = true
		}
		if m.HazardGate {
			gateSeen = true
		}
	})
	if !bossSeen || !gateSeen {
		t.Error("catalog needs at least one boss and one hazard gate")
	}
}

func TestResistMultiplierDefaults(t *testing.T) {
	m := &MonsterTemplate{}
	if m.ResistMultiplier(ElementFire) != 1.0 {
		t.Error("missing resist map should be neutral")
	}
	m.Resists = map[Element]float64{ElementFire: 0.0, ElementIce: 1.5}
	if m.ResistMultiplier(ElementFire) != 0.0 {
		t.Error("explicit zero means immune")
	}
	if m.ResistMultiplier(ElementIce) != 1.5 {
		t.Error("weakness multiplier lost")
	}
	if m.ResistMultiplier(ElementEnergy) != 1.0 {
		t.Error("unlisted element should be neutral")
	}
}

func TestLoadItemTable(t *testing.T) {
	tbl, err := LoadItemTable(filepath.Join(yamlDir, "item_list.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	sword := tbl.Get(1001)
	if sword == nil || sword.Kind != KindEquipment || sword.Slot != SlotWeapon {
		t.Fatalf("item 1001 = %+v", sword)
	}
	if sword.Skill == "" {
		t.Error("weapon must name a trained skill")
	}

	var potions, runes int
	tbl.All(func(it *ItemTemplate) {
		switch it.Kind {
		case KindHealthPot, KindManaPot:
			potions++
			if it.Heal <= 0 || !it.Stackable {
				t.Errorf("potion %d malformed: %+v", it.ItemID, it)
			}
		case KindRune:
			runes++
			if it.RuneMax < it.RuneMin {
				t.Errorf("rune %d damage range inverted", it.ItemID)
			}
		}
	})
	if potions == 0 || runes == 0 {
		t.Error("catalog needs potions and runes")
	}
}

func TestLoadSpellTable(t *testing.T) {
	tbl, err := LoadSpellTable(filepath.Join(yamlDir, "spell_list.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	sp := tbl.Get(1)
	if sp == nil || !sp.Heal {
		t.Fatalf("spell 1 should be a heal: %+v", sp)
	}
	if tbl.GetByName(sp.Name) != sp {
		t.Error("name index out of sync with id index")
	}
	if tbl.GetByName("no such spell") != nil {
		t.Error("unknown name should return nil")
	}
}

func TestLoadLootTable(t *testing.T) {
	loot, err := LoadLootTable(filepath.Join(yamlDir, "loot_list.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	items, err := LoadItemTable(filepath.Join(yamlDir, "item_list.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	monsters, err := LoadMonsterTable(filepath.Join(yamlDir, "monster_list.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	// Every monster drop list must exist and reference real items with sane
	// chances.
	monsters.All(func(m *MonsterTemplate) {
		if m.LootTableID == 0 {
			return
		}
		entries := loot.Get(m.LootTableID)
		if entries == nil {
			t.Errorf("monster %d references missing loot table %d", m.MonsterID, m.LootTableID)
			return
		}
		for _, e := range entries {
			if items.Get(e.ItemID) == nil {
				t.Errorf("loot table %d drops unknown item %d", m.LootTableID, e.ItemID)
			}
			if e.Chance <= 0 || e.Chance > 1000000 {
				t.Errorf("loot table %d item %d chance %d out of range", m.LootTableID, e.ItemID, e.Chance)
			}
			if e.MaxAmount < 1 {
				t.Errorf("loot table %d item %d max_amount %d", m.LootTableID, e.ItemID, e.MaxAmount)
			}
		}
	})
}

func TestLoadTaskTable(t *testing.T) {
	tbl, err := LoadTaskTable(filepath.Join(yamlDir, "task_list.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Kill()) == 0 || len(tbl.Collect()) == 0 {
		t.Fatal("catalog needs both task kinds")
	}
	for _, tpl := range tbl.Kill() {
		if tpl.Kind != TaskKill {
			t.Errorf("task %d leaked into kill partition", tpl.TaskID)
		}
		if tpl.MaxAmount < tpl.MinAmount {
			t.Errorf("task %d amount range inverted", tpl.TaskID)
		}
	}
}

func TestLoadRejectsUnknownTaskKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "task_list.yaml")
	bad := "tasks:\n  - task_id: 1\n    kind: fetch\n    target_id: 1\n"
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTaskTable(path); err == nil {
		t.Fatal("unknown task kind accepted")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadMonsterTable(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
}
