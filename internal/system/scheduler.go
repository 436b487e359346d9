package system

import (
	coresys "github.com/tornfelipe3-maker/customtibia-sub000/internal/core/system"
)

// Scheduler drives one simulation tick: deliver last tick's events, then run
// every system in phase order. Live ticking and offline replay both go
// through Tick, so the two paths share one code path and one RNG stream.
type Scheduler struct {
	rt     *Runtime
	runner *coresys.Runner
}

// NewScheduler wires the full phase chain onto a runtime.
func NewScheduler(rt *Runtime) *Scheduler {
	r := coresys.NewRunner()
	r.Register(NewRegenSystem(rt))
	r.Register(NewCooldownSystem(rt))
	r.Register(NewBotSystem(rt))
	r.Register(NewCombatSystem(rt))
	r.Register(NewTrainingSystem(rt))
	r.Register(NewTimerSystem(rt))
	r.Register(NewDeathSystem(rt))
	return &Scheduler{rt: rt, runner: r}
}

// Runtime exposes the shared state for the facade.
func (s *Scheduler) Runtime() *Runtime { return s.rt }

// Tick advances the simulation by one game-second.
func (s *Scheduler) Tick() {
	s.rt.Tick++
	s.rt.Bus.SwapBuffers()
	s.rt.Bus.DispatchAll()
	s.runner.Tick(s.rt.Tick)
}
