package system

import (
	coresys "github.com/tornfelipe3-maker/customtibia-sub000/internal/core/system"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/world"
)

// TrainingSystem advances the selected skill by a fixed increment per tick,
// gated by the stamina reserve. At zero stamina the activity stays selected
// but makes no progress until stamina refills while idle.
type TrainingSystem struct {
	rt *Runtime
}

func NewTrainingSystem(rt *Runtime) *TrainingSystem { return &TrainingSystem{rt: rt} }

func (s *TrainingSystem) Phase() coresys.Phase { return coresys.PhaseTraining }

func (s *TrainingSystem) Update(_ int64) {
	p := s.rt.Player
	if p.Activity.Kind != world.ActivityTrain || p.Stamina <= 0 {
		return
	}
	p.Stamina--
	s.rt.GainSkill(p.Activity.Skill, 1)
}
