package world

import (
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/data"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/formula"
)

// Trainable skills.
type SkillID string

const (
	SkillSword     SkillID = "sword"
	SkillAxe       SkillID = "axe"
	SkillClub      SkillID = "club"
	SkillDistance  SkillID = "distance"
	SkillMagic     SkillID = "magic"
	SkillShielding SkillID = "shielding"
)

// AllSkills lists every trainable skill in a fixed order.
var AllSkills = []SkillID{SkillSword, SkillAxe, SkillClub, SkillDistance, SkillMagic, SkillShielding}

// Skill tracks one trained skill: current level plus progress toward the next.
type Skill struct {
	Level    int
	Progress int64
}

type ActivityKind int8

const (
	ActivityIdle ActivityKind = iota
	ActivityHunt
	ActivityTrain
)

// Activity describes what the character is currently doing. At most one
// activity is ever active; the facade enforces the hunt-XOR-train invariant.
type Activity struct {
	Kind        ActivityKind
	MonsterID   int32
	MonsterName string
	Boss        bool
	Count       int
	Skill       SkillID
}

func (a Activity) Idle() bool { return a.Kind == ActivityIdle }

// Cooldowns holds remaining ticks per action class. Zero means ready.
type Cooldowns struct {
	Attack int
	Potion int
	Rune   int
	Global int
	Spells map[int32]int
}

// Advance decrements every running cooldown by one tick.
func (c *Cooldowns) Advance() {
	if c.Attack > 0 {
		c.Attack--
	}
	if c.Potion > 0 {
		c.Potion--
	}
	if c.Rune > 0 {
		c.Rune--
	}
	if c.Global > 0 {
		c.Global--
	}
	for id, v := range c.Spells {
		if v > 0 {
			c.Spells[id] = v - 1
		}
	}
}

// SpellReady reports whether the given spell is off cooldown.
func (c *Cooldowns) SpellReady(id int32) bool {
	return c.Spells[id] <= 0 && c.Global <= 0
}

// SetSpell starts a spell cooldown and the shared global cooldown.
func (c *Cooldowns) SetSpell(id int32, ticks int) {
	if c.Spells == nil {
		c.Spells = make(map[int32]int)
	}
	c.Spells[id] = ticks
	if c.Global < 1 {
		c.Global = 1
	}
}

// Settings holds the player-tunable automation knobs consumed by the bot.
type Settings struct {
	HealSpellID   int32
	HealSpellPct  int
	HealPotionID  int32
	HealPotionPct int
	ManaPotionID  int32
	ManaPotionPct int
	Rotation      []int32 // attack spell ids, priority order, max 5
	RuneID        int32
	RuneEnabled   bool
	ForcedRarity  Rarity // GM override for unique drops; RarityNone = off
}

// MaxRotationSlots caps the attack-spell rotation length.
const MaxRotationSlots = 5

// Unlocks are the one-shot level-gated flags.
type Unlocks struct {
	Named          bool // naming offered at level 2
	VocationChosen bool // vocation picked at level 8
	HazardWarned   bool // one-time hazard warning at level 12
}

// PremiumBonus is the fractional XP/HP/MP bonus of premium status.
const PremiumBonus = 0.10

// Player is the root aggregate. It is owned by the session facade and mutated
// only through core operations; the presentation layer sees copies.
type Player struct {
	AccountID string
	Name      string
	Vocation  formula.Vocation

	Level int
	Exp   int64 // progress within the current level

	HP int
	MP int

	Skills map[SkillID]*Skill

	Inv   *Inventory
	Equip Equipment
	Depot map[int32]int64 // banked stackables, untouched by death

	Gold     int64 // carried
	BankGold int64
	Gems     int64 // premium currency
	Premium  bool
	Blessing bool

	Stamina int // remaining training seconds

	Activity Activity
	CD       Cooldowns

	Prey      PreyState
	Hazard    HazardState
	Ascension AscensionState
	Imbu      ImbuementState
	Tasks     TaskState

	Settings Settings
	Unlocks  Unlocks

	LastSaveTime int64
}

// NewPlayer creates a fresh level-1 character for an account.
func NewPlayer(accountID string, maxStamina int) *Player {
	p := &Player{
		AccountID: accountID,
		Level:     1,
		Skills:    make(map[SkillID]*Skill, len(AllSkills)),
		Inv:       NewInventory(),
		Equip:     NewEquipment(),
		Depot:     make(map[int32]int64),
		Stamina:   maxStamina,
		CD:        Cooldowns{Spells: make(map[int32]int)},
		Prey:      PreyState{FreeRerolls: PreyFreeRerollMax, RefillIn: PreyRerollRefill},
		Tasks:     TaskState{FreeRerolls: TaskFreeRerollMax, RefillIn: TaskRerollRefill},
		Ascension: AscensionState{Perks: make(map[string]int)},
		Imbu:      NewImbuementState(),
	}
	for _, id := range AllSkills {
		p.Skills[id] = &Skill{Level: 10}
	}
	p.RestoreVitals()
	return p
}

// EffectiveMaxHP is base HP for level and vocation plus worn flat bonuses,
// scaled multiplicatively by the ascension health perk and premium status.
func (p *Player) EffectiveMaxHP() int {
	base := formula.BaseMaxHP(p.Level, p.Vocation) + p.Equip.FlatHP()
	return int(formula.StackMultipliers(float64(base), p.Ascension.Bonus(PerkHealth), p.premiumBonus()))
}

// EffectiveMaxMP mirrors EffectiveMaxHP for mana.
func (p *Player) EffectiveMaxMP() int {
	base := formula.BaseMaxMP(p.Level, p.Vocation) + p.Equip.FlatMP()
	return int(formula.StackMultipliers(float64(base), p.Ascension.Bonus(PerkMana), p.premiumBonus()))
}

func (p *Player) premiumBonus() float64 {
	if p.Premium {
		return PremiumBonus
	}
	return 0
}

// ClampVitals enforces HP/MP <= effective maxima. Called after anything that
// can shrink the maxima (unequip, ascension, level recompute).
func (p *Player) ClampVitals() {
	if maxHP := p.EffectiveMaxHP(); p.HP > maxHP {
		p.HP = maxHP
	}
	if maxMP := p.EffectiveMaxMP(); p.MP > maxMP {
		p.MP = maxMP
	}
	if p.HP < 0 {
		p.HP = 0
	}
	if p.MP < 0 {
		p.MP = 0
	}
}

// RestoreVitals sets HP/MP to their effective maxima.
func (p *Player) RestoreVitals() {
	p.HP = p.EffectiveMaxHP()
	p.MP = p.EffectiveMaxMP()
}

// XPNeeded returns the experience still missing for the next level.
func (p *Player) XPNeeded() int64 {
	return formula.XPForLevel(p.Level) - p.Exp
}

// ProgressPct returns how far into the current level the player is, 0-99.
func (p *Player) ProgressPct() int {
	need := formula.XPForLevel(p.Level)
	if need <= 0 {
		return 0
	}
	pct := int(p.Exp * 100 / need)
	if pct > 99 {
		pct = 99
	}
	return pct
}

// Skill returns the named skill, creating it at base level on first use.
func (p *Player) Skill(id SkillID) *Skill {
	s, ok := p.Skills[id]
	if !ok {
		s = &Skill{Level: 10}
		p.Skills[id] = s
	}
	return s
}

// WeaponSkill returns the skill trained and applied by the equipped weapon.
// Fist fighting falls back to the sword skill.
func (p *Player) WeaponSkill(items *data.ItemTable) SkillID {
	w := p.Equip.Get(data.SlotWeapon)
	if w == nil {
		return SkillSword
	}
	tpl := items.Get(w.ItemID)
	if tpl == nil || tpl.Skill == "" {
		return SkillSword
	}
	return SkillID(tpl.Skill)
}
