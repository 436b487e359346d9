package system

import (
	coreevent "github.com/tornfelipe3-maker/customtibia-sub000/internal/core/event"
	coresys "github.com/tornfelipe3-maker/customtibia-sub000/internal/core/system"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/world"
)

// TimerSystem advances the slow clocks: prey durations, imbuement charges,
// reroll refills and idle stamina recovery.
type TimerSystem struct {
	rt *Runtime
}

func NewTimerSystem(rt *Runtime) *TimerSystem { return &TimerSystem{rt: rt} }

func (s *TimerSystem) Phase() coresys.Phase { return coresys.PhaseTimers }

func (s *TimerSystem) Update(tick int64) {
	s.tickPrey()
	s.tickImbuements()
	s.tickRefills()
	s.tickStamina(tick)
}

func (s *TimerSystem) tickPrey() {
	p := s.rt.Player
	for i := range p.Prey.Slots {
		slot := &p.Prey.Slots[i]
		if !slot.Active {
			continue
		}
		slot.Remaining--
		if slot.Remaining > 0 {
			continue
		}
		slot.Active = false
		slot.Remaining = 0
		if !s.rt.Quiet {
			coreevent.Emit(s.rt.Bus, coreevent.PreyExpired{Slot: i})
		}
	}
}

// tickImbuements burns charge only while the global switch is on and an
// activity runs; pausing either preserves remaining time.
func (s *TimerSystem) tickImbuements() {
	p := s.rt.Player
	if !p.Imbu.Active || p.Activity.Idle() {
		return
	}
	for _, slot := range p.Imbu.Slots {
		if slot.Tier == 0 {
			continue
		}
		slot.Remaining--
		if slot.Remaining <= 0 {
			slot.Tier = 0
			slot.Remaining = 0
		}
	}
}

func (s *TimerSystem) tickRefills() {
	p := s.rt.Player
	refill(&p.Prey.FreeRerolls, &p.Prey.RefillIn, world.PreyFreeRerollMax, world.PreyRerollRefill)
	refill(&p.Tasks.FreeRerolls, &p.Tasks.RefillIn, world.TaskFreeRerollMax, world.TaskRerollRefill)
}

func refill(free *int, in *int64, max int, interval int64) {
	if *free >= max {
		*in = interval
		return
	}
	*in--
	if *in <= 0 {
		*free++
		*in = interval
	}
}

func (s *TimerSystem) tickStamina(tick int64) {
	p := s.rt.Player
	if !p.Activity.Idle() || p.Stamina >= s.rt.Gameplay.MaxStamina {
		return
	}
	if tick%StaminaRegenIdleTicks == 0 {
		p.Stamina++
	}
}
