package session

import (
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/world"
)

// MaxHuntCount caps area hunts.
const MaxHuntCount = 10

// StartHunt begins hunting a monster. Area hunts pool up to MaxHuntCount
// targets; bosses always fight alone and end the hunt when they fall.
func (s *Session) StartHunt(monsterID int32, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.rt.Player
	if !p.Activity.Idle() {
		return ErrInvalidState
	}
	tpl := s.rt.Monsters.Get(monsterID)
	if tpl == nil {
		return ErrNotFound
	}
	if count < 1 {
		count = 1
	}
	if count > MaxHuntCount || tpl.Boss {
		if tpl.Boss {
			count = 1
		} else {
			count = MaxHuntCount
		}
	}

	p.Activity = world.Activity{
		Kind:        world.ActivityHunt,
		MonsterID:   tpl.MonsterID,
		MonsterName: tpl.Name,
		Boss:        tpl.Boss,
		Count:       count,
	}
	s.logf("You begin hunting %s.", tpl.Name)
	return nil
}

// StopHunt halts the hunt immediately; the in-flight tick has either fully
// completed or never started.
func (s *Session) StopHunt() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rt.Player.Activity.Kind != world.ActivityHunt {
		return ErrInvalidState
	}
	s.rt.StopActivity()
	s.rt.Bus.Drain()
	return nil
}

// StartTraining begins training one skill, gated by stamina at tick time.
func (s *Session) StartTraining(skill world.SkillID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.rt.Player
	if !p.Activity.Idle() {
		return ErrInvalidState
	}
	if !validSkill(skill) {
		return ErrNotFound
	}
	p.Activity = world.Activity{Kind: world.ActivityTrain, Skill: skill}
	s.logf("You begin training %s.", skill)
	return nil
}

func (s *Session) StopTraining() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rt.Player.Activity.Kind != world.ActivityTrain {
		return ErrInvalidState
	}
	s.rt.StopActivity()
	return nil
}

func validSkill(id world.SkillID) bool {
	for _, s := range world.AllSkills {
		if s == id {
			return true
		}
	}
	return false
}
