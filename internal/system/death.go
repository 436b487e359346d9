package system

import (
	"go.uber.org/zap"

	coreevent "github.com/tornfelipe3-maker/customtibia-sub000/internal/core/event"
	coresys "github.com/tornfelipe3-maker/customtibia-sub000/internal/core/system"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/formula"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/world"
)

// Blessing loss reductions, applied when the one-shot blessing is consumed.
const (
	BlessingXPReduction   = 0.60
	BlessingGoldReduction = 0.80
)

// DeathSystem is the terminal tick phase: when HP reaches zero it settles the
// losses, produces the write-once death report, restores vitals and returns
// the character to idle. Losses hit carried gold only, never the bank.
type DeathSystem struct {
	rt *Runtime
}

func NewDeathSystem(rt *Runtime) *DeathSystem { return &DeathSystem{rt: rt} }

func (s *DeathSystem) Phase() coresys.Phase { return coresys.PhaseDeath }

func (s *DeathSystem) Update(_ int64) {
	rt := s.rt
	p := rt.Player
	if p.HP > 0 {
		return
	}

	killer := "something evil"
	if rt.Encounter != nil {
		killer = rt.Encounter.Name()
	}

	penalty := rt.Lua.CalcDeathPenalty(p.Level)
	xpLoss := formula.XPForLevel(p.Level) * int64(penalty.XPPct) / 100
	goldLoss := p.Gold * int64(penalty.GoldPct) / 100

	blessed := p.Blessing
	if blessed {
		p.Blessing = false
		xpLoss = int64(float64(xpLoss) * (1 - BlessingXPReduction))
		goldLoss = int64(float64(goldLoss) * (1 - BlessingGoldReduction))
	}

	levelDown := false
	p.Exp -= xpLoss
	if p.Exp < 0 {
		if p.Level > 1 {
			p.Level--
			p.Exp += formula.XPForLevel(p.Level)
			levelDown = true
		}
		if p.Exp < 0 {
			p.Exp = 0
		}
	}
	p.Gold -= goldLoss
	if p.Gold < 0 {
		p.Gold = 0
	}

	rt.Death = &world.DeathReport{
		Killer:    killer,
		XPLost:    xpLoss,
		GoldLost:  goldLoss,
		LevelDown: levelDown,
		Blessed:   blessed,
	}
	rt.recordDeath()

	if !rt.Quiet {
		coreevent.Emit(rt.Bus, coreevent.PlayerDied{Killer: killer})
		rt.Log.Info("character died",
			zap.String("killer", killer),
			zap.Int64("xp_lost", xpLoss),
			zap.Int64("gold_lost", goldLoss))
	}

	rt.StopActivity()
	p.RestoreVitals()
}
