package system

import (
	coresys "github.com/tornfelipe3-maker/customtibia-sub000/internal/core/system"
)

// CooldownSystem decrements every running action cooldown once per tick,
// before the bot evaluates its rules.
type CooldownSystem struct {
	rt *Runtime
}

func NewCooldownSystem(rt *Runtime) *CooldownSystem { return &CooldownSystem{rt: rt} }

func (s *CooldownSystem) Phase() coresys.Phase { return coresys.PhaseCooldown }

func (s *CooldownSystem) Update(_ int64) {
	s.rt.Player.CD.Advance()
	if m := s.rt.Encounter; m != nil && m.AttackCD > 0 {
		m.AttackCD--
	}
}
