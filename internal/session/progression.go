package session

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tornfelipe3-maker/customtibia-sub000/internal/data"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/formula"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/world"
)

// Prey bonus value band, whole percent.
const (
	preyValueMin = 10
	preyValueMax = 40
)

// ---------- tasks ----------

// ClaimTaskReward settles a completed task. Collect tasks consume the target
// items from the inventory at claim time; kill tasks already tracked their
// quota. The slot empties and can be rerolled again.
func (s *Session) ClaimTaskReward(taskUUID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.rt.Player
	for i := range p.Tasks.Slots {
		t := &p.Tasks.Slots[i]
		if t.UUID != taskUUID {
			continue
		}
		if !t.Active || t.Claimed {
			return ErrInvalidState
		}
		switch {
		case t.KillComplete():
		case t.CollectComplete(p.Inv.CountOf(t.TargetID)):
			p.Inv.RemoveStack(t.TargetID, int64(t.Amount))
		default:
			return ErrInvalidState
		}

		p.Gold += t.RewardGold
		s.rt.GainXP(t.RewardExp)
		s.logf("Task reward claimed: %d gold, %d experience.", t.RewardGold, t.RewardExp)
		p.Tasks.Slots[i] = world.TaskSlot{}
		return nil
	}
	return ErrNotFound
}

// RerollTask replaces one task slot, drawing a template of the slot's kind.
// Uses a free reroll when available, otherwise charges the level-scaled fee.
func (s *Session) RerollTask(slot int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slot < 0 || slot >= world.TaskSlotCount {
		return ErrNotFound
	}
	if err := s.payRerolls(&s.rt.Player.Tasks.FreeRerolls, 1); err != nil {
		return err
	}
	s.rollTaskSlot(slot)
	return nil
}

// RerollAllTasks replaces every slot in one action. The charge is the paid
// count times the per-task cost for however many slots lack a free reroll.
func (s *Session) RerollAllTasks() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.payRerolls(&s.rt.Player.Tasks.FreeRerolls, world.TaskSlotCount); err != nil {
		return err
	}
	for i := 0; i < world.TaskSlotCount; i++ {
		s.rollTaskSlot(i)
	}
	return nil
}

func (s *Session) rollTaskSlot(slot int) {
	pool := s.deps.Tasks.Kill()
	if slot >= world.TaskKillSlots {
		pool = s.deps.Tasks.Collect()
	}
	if len(pool) == 0 {
		return
	}
	tpl := pool[s.rt.RNG.Intn(len(pool))]

	name := ""
	if tpl.Kind == data.TaskKill {
		if m := s.rt.Monsters.Get(tpl.TargetID); m != nil {
			name = m.Name
		}
	} else if it := s.rt.Items.Get(tpl.TargetID); it != nil {
		name = it.Name
	}

	s.rt.Player.Tasks.Slots[slot] = world.TaskSlot{
		UUID:       uuid.NewString(),
		Kind:       tpl.Kind,
		TargetID:   tpl.TargetID,
		TargetName: name,
		Amount:     s.rt.RNG.Roll(tpl.MinAmount, tpl.MaxAmount),
		Active:     true,
		RewardGold: tpl.RewardGold,
		RewardExp:  tpl.RewardExp,
	}
}

// ---------- prey ----------

// RerollPrey rolls a new monster and bonus into one prey slot.
func (s *Session) RerollPrey(slot int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slot < 0 || slot >= world.PreySlotCount {
		return ErrNotFound
	}
	if err := s.payRerolls(&s.rt.Player.Prey.FreeRerolls, 1); err != nil {
		return err
	}
	s.rollPreySlot(slot)
	return nil
}

// RerollAllPrey rerolls every slot; free rerolls cover what they can and the
// remainder is paid at the per-slot cost.
func (s *Session) RerollAllPrey() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.payRerolls(&s.rt.Player.Prey.FreeRerolls, world.PreySlotCount); err != nil {
		return err
	}
	for i := 0; i < world.PreySlotCount; i++ {
		s.rollPreySlot(i)
	}
	return nil
}

func (s *Session) rollPreySlot(slot int) {
	candidates := s.huntableMonsters()
	if len(candidates) == 0 {
		return
	}
	m := candidates[s.rt.RNG.Intn(len(candidates))]
	bonus := world.PreyBonuses[s.rt.RNG.Intn(len(world.PreyBonuses))]

	s.rt.Player.Prey.Slots[slot] = world.PreySlot{
		MonsterID:   m.MonsterID,
		MonsterName: m.Name,
		Bonus:       bonus,
		Value:       s.rt.RNG.Roll(preyValueMin, preyValueMax),
	}
}

// huntableMonsters lists non-boss templates in id order so reroll draws are
// stable for a given RNG stream.
func (s *Session) huntableMonsters() []*data.MonsterTemplate {
	var out []*data.MonsterTemplate
	s.rt.Monsters.All(func(m *data.MonsterTemplate) {
		if !m.Boss {
			out = append(out, m)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].MonsterID < out[j].MonsterID })
	return out
}

// ActivatePrey starts the 2h bonus window on a rolled slot.
func (s *Session) ActivatePrey(slot int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slot < 0 || slot >= world.PreySlotCount {
		return ErrNotFound
	}
	sl := &s.rt.Player.Prey.Slots[slot]
	if sl.Phase() != world.PreyRolled {
		return ErrInvalidState
	}
	sl.Active = true
	sl.StartUnix = time.Now().Unix()
	sl.Remaining = world.PreyDurationTicks
	return nil
}

// CancelPrey ends the window early. StartUnix stays set, marking the slot as
// used rather than fresh.
func (s *Session) CancelPrey(slot int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slot < 0 || slot >= world.PreySlotCount {
		return ErrNotFound
	}
	sl := &s.rt.Player.Prey.Slots[slot]
	if !sl.Active {
		return ErrInvalidState
	}
	sl.Active = false
	sl.Remaining = 0
	return nil
}

// payRerolls spends free rerolls first, then gold for the remainder.
func (s *Session) payRerolls(free *int, n int) error {
	p := s.rt.Player
	paid := n - *free
	if paid < 0 {
		paid = 0
	}
	cost := int64(paid) * formula.RerollCost(p.Level)
	if p.Gold < cost {
		return ErrInsufficient
	}
	p.Gold -= cost
	*free -= n - paid
	return nil
}

// ---------- hazard ----------

// SetActiveHazard picks the running hazard level within the unlocked range.
// Takes effect on the next non-boss encounter immediately.
func (s *Session) SetActiveHazard(level int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := &s.rt.Player.Hazard
	if level < 0 || level > h.Level {
		return ErrInvalidState
	}
	h.Active = level
	return nil
}

// ---------- ascension ----------

// Ascend performs the irreversible prestige reset. Soul points are granted
// from pre-reset level and progress; the perk map, gems, vocation, hazard
// record and stamina survive, everything else returns to starting values.
func (s *Session) Ascend() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.rt.Player
	if p.Level < world.AscensionMinLevel || !p.Activity.Idle() {
		return ErrInvalidState
	}

	gained := formula.SoulPointGain(p.Level, p.ProgressPct())
	p.Ascension.SoulPoints += gained
	p.Ascension.Ascensions++

	p.Level = 1
	p.Exp = 0
	p.Gold = 0
	p.BankGold = 0
	p.Blessing = false
	p.Inv = world.NewInventory()
	p.Equip = world.NewEquipment()
	p.Depot = make(map[int32]int64)
	for _, id := range world.AllSkills {
		p.Skills[id] = &world.Skill{Level: 10}
	}
	p.Prey = world.PreyState{FreeRerolls: world.PreyFreeRerollMax, RefillIn: world.PreyRerollRefill}
	p.Tasks = world.TaskState{FreeRerolls: world.TaskFreeRerollMax, RefillIn: world.TaskRerollRefill}
	p.CD = world.Cooldowns{Spells: make(map[int32]int)}
	p.RestoreVitals()

	s.rt.Encounter = nil
	s.logf("You ascended and gained %d soul points.", gained)
	return nil
}

// UpgradeAscensionPerk spends soul points on one perk level.
func (s *Session) UpgradeAscensionPerk(perk string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	def, ok := world.Perks[perk]
	if !ok {
		return ErrNotFound
	}
	a := &s.rt.Player.Ascension
	if a.Perks[perk] >= def.MaxLevel {
		return ErrInvalidState
	}
	if a.SoulPoints < def.Cost {
		return ErrInsufficient
	}
	a.SoulPoints -= def.Cost
	a.Perks[perk]++
	return nil
}

// ---------- imbuements ----------

// ApplyImbuement burns tokens and gold to set a tier on one imbuement type,
// overwriting any running tier and timer without refund.
func (s *Session) ApplyImbuement(t world.ImbuType, tier int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.rt.Player
	slot, ok := p.Imbu.Slots[t]
	if !ok {
		return ErrNotFound
	}
	if tier < 1 || tier > world.ImbuMaxTier {
		return ErrInvalidState
	}

	token := s.imbuToken()
	if token == nil {
		return ErrNotFound
	}
	goldCost := formula.ReforgeCost(tier)
	if p.Inv.CountOf(token.ItemID) < int64(tier) || p.Gold < goldCost {
		return ErrInsufficient
	}

	p.Inv.RemoveStack(token.ItemID, int64(tier))
	p.Gold -= goldCost
	slot.Tier = tier
	slot.Remaining = world.ImbuDurationTicks
	return nil
}

// ToggleImbuements flips the global switch; paused imbuements keep their
// remaining time.
func (s *Session) ToggleImbuements(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rt.Player.Imbu.Active = on
	return nil
}

func (s *Session) imbuToken() *data.ItemTemplate {
	var token *data.ItemTemplate
	s.rt.Items.All(func(it *data.ItemTemplate) {
		if it.Kind == data.KindImbuToken && (token == nil || it.ItemID < token.ItemID) {
			token = it
		}
	})
	return token
}

// ---------- identity & settings ----------

// SetName names the character once, unlocked at level 2.
func (s *Session) SetName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.rt.Player
	if p.Name != "" || p.Level < 2 {
		return ErrInvalidState
	}
	if name == "" || len(name) > 20 {
		return ErrInvalidState
	}
	p.Name = name
	return nil
}

// ChooseVocation picks the vocation once, unlocked at level 8.
func (s *Session) ChooseVocation(v formula.Vocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.rt.Player
	if p.Level < formula.VocationChoiceLevel || p.Unlocks.VocationChosen {
		return ErrInvalidState
	}
	switch v {
	case formula.VocationKnight, formula.VocationPaladin, formula.VocationSorcerer, formula.VocationDruid:
	default:
		return ErrInvalidState
	}
	p.Vocation = v
	p.Unlocks.VocationChosen = true
	p.RestoreVitals()
	s.logf("You are now a %s.", v)
	return nil
}

// UpdateSettings replaces the automation knobs after validation. The forced
// rarity override only sticks for GM accounts.
func (s *Session) UpdateSettings(ns world.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(ns.Rotation) > world.MaxRotationSlots {
		return ErrInvalidState
	}
	for _, pct := range []int{ns.HealSpellPct, ns.HealPotionPct, ns.ManaPotionPct} {
		if pct < 0 || pct > 100 {
			return ErrInvalidState
		}
	}
	if ns.HealPotionID != 0 && !s.itemIsKind(ns.HealPotionID, data.KindHealthPot) {
		return ErrNotFound
	}
	if ns.ManaPotionID != 0 && !s.itemIsKind(ns.ManaPotionID, data.KindManaPot) {
		return ErrNotFound
	}
	if ns.RuneID != 0 && !s.itemIsKind(ns.RuneID, data.KindRune) {
		return ErrNotFound
	}
	for _, id := range ns.Rotation {
		if s.rt.Spells.Get(id) == nil {
			return ErrNotFound
		}
	}
	if !s.account.GM {
		ns.ForcedRarity = world.RarityNone
	}
	s.rt.Player.Settings = ns
	return nil
}

func (s *Session) itemIsKind(id int32, kind string) bool {
	tpl := s.rt.Items.Get(id)
	return tpl != nil && tpl.Kind == kind
}
