// Package scripting hosts the moddable combat math in a gopher-lua VM, the
// same way the static catalogs host moddable data. Only arithmetic lives in
// Lua; every random draw goes through the roll() function bound to the
// session's seeded generator, so replay and live ticking stay on one stream.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/tornfelipe3-maker/customtibia-sub000/internal/rng"
)

// Engine wraps a single Lua VM. Single-goroutine access only (session loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine, binds the seeded roll() helper, and loads
// all scripts from the given directory tree.
func NewEngine(scriptsDir string, src rng.Source, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	// roll(min, max) → uniform int in [min, max], drawn from the session RNG.
	vm.SetGlobal("roll", vm.NewFunction(func(L *lua.LState) int {
		min := L.CheckInt(1)
		max := L.CheckInt(2)
		L.Push(lua.LNumber(src.Roll(min, max)))
		return 1
	}))

	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"core", "combat"} {
		if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// HitContext packs a player basic attack for the Lua formula.
type HitContext struct {
	Attack     int // weapon attack value (0 = fists)
	SkillLevel int
	Level      int
}

// MonsterHitContext packs a monster swing.
type MonsterHitContext struct {
	MinDamage int
	MaxDamage int
	Level     int
}

// SpellContext packs a spell cast (damage or heal).
type SpellContext struct {
	Value      int
	Dice       int
	DiceCount  int
	MagicLevel int
	Level      int
}

// DeathPenalty is the Lua-defined loss schedule before blessing reduction.
type DeathPenalty struct {
	XPPct   float64 // percent of the current level's full XP requirement
	GoldPct float64 // percent of carried gold
}

// CalcHit calls the Lua calc_hit function for a player basic attack.
func (e *Engine) CalcHit(ctx HitContext) int {
	t := e.vm.NewTable()
	t.RawSetString("attack", lua.LNumber(ctx.Attack))
	t.RawSetString("skill_level", lua.LNumber(ctx.SkillLevel))
	t.RawSetString("level", lua.LNumber(ctx.Level))
	return e.callInt("calc_hit", t, 1)
}

// CalcMonsterHit calls the Lua calc_monster_hit function.
func (e *Engine) CalcMonsterHit(ctx MonsterHitContext) int {
	t := e.vm.NewTable()
	t.RawSetString("min_damage", lua.LNumber(ctx.MinDamage))
	t.RawSetString("max_damage", lua.LNumber(ctx.MaxDamage))
	t.RawSetString("level", lua.LNumber(ctx.Level))
	return e.callInt("calc_monster_hit", t, 1)
}

// CalcSpellDamage calls the Lua calc_spell_damage function. Heals use the
// same dice arithmetic.
func (e *Engine) CalcSpellDamage(ctx SpellContext) int {
	t := e.vm.NewTable()
	t.RawSetString("value", lua.LNumber(ctx.Value))
	t.RawSetString("dice", lua.LNumber(ctx.Dice))
	t.RawSetString("dice_count", lua.LNumber(ctx.DiceCount))
	t.RawSetString("magic_level", lua.LNumber(ctx.MagicLevel))
	t.RawSetString("level", lua.LNumber(ctx.Level))
	return e.callInt("calc_spell_damage", t, 1)
}

// CalcDeathPenalty calls the Lua calc_death_penalty function.
func (e *Engine) CalcDeathPenalty(level int) DeathPenalty {
	fallback := DeathPenalty{XPPct: 10, GoldPct: 10}

	fn := e.vm.GetGlobal("calc_death_penalty")
	if fn == lua.LNil {
		e.log.Error("lua function calc_death_penalty not found")
		return fallback
	}

	t := e.vm.NewTable()
	t.RawSetString("level", lua.LNumber(level))

	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, t); err != nil {
		e.log.Error("lua calc_death_penalty error", zap.Error(err))
		return fallback
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua calc_death_penalty returned non-table")
		return fallback
	}
	return DeathPenalty{
		XPPct:   float64(lua.LVAsNumber(rt.RawGetString("xp_pct"))),
		GoldPct: float64(lua.LVAsNumber(rt.RawGetString("gold_pct"))),
	}
}

// callInt invokes a Lua function returning a single number, with a fallback
// used on any script failure so combat never stalls on a bad mod.
func (e *Engine) callInt(name string, arg *lua.LTable, fallback int) int {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("fn", name))
		return fallback
	}
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, arg); err != nil {
		e.log.Error("lua call error", zap.String("fn", name), zap.Error(err))
		return fallback
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return int(lua.LVAsNumber(result))
}
