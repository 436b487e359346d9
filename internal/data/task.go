package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Task kinds.
const (
	TaskKill    = "kill"
	TaskCollect = "collect"
)

// TaskTemplate is a hunting-task blueprint. Concrete tasks roll an amount in
// [MinAmount, MaxAmount] when assigned to a slot.
type TaskTemplate struct {
	TaskID     int32  `yaml:"task_id"`
	Kind       string `yaml:"kind"`      // "kill" or "collect"
	TargetID   int32  `yaml:"target_id"` // monster id (kill) or item id (collect)
	MinAmount  int    `yaml:"min_amount"`
	MaxAmount  int    `yaml:"max_amount"`
	RewardGold int64  `yaml:"reward_gold"`
	RewardExp  int64  `yaml:"reward_exp"`
}

type taskListFile struct {
	Tasks []TaskTemplate `yaml:"tasks"`
}

// TaskTable holds all task templates, with kind-partitioned views for rolling.
type TaskTable struct {
	templates map[int32]*TaskTemplate
	kill      []*TaskTemplate
	collect   []*TaskTemplate
}

// LoadTaskTable loads hunting-task templates from a YAML file.
func LoadTaskTable(path string) (*TaskTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task_list: %w", err)
	}
	var f taskListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse task_list: %w", err)
	}
	t := &TaskTable{templates: make(map[int32]*TaskTemplate, len(f.Tasks))}
	for i := range f.Tasks {
		tpl := &f.Tasks[i]
		t.templates[tpl.TaskID] = tpl
		switch tpl.Kind {
		case TaskKill:
			t.kill = append(t.kill, tpl)
		case TaskCollect:
			t.collect = append(t.collect, tpl)
		default:
			return nil, fmt.Errorf("task %d: unknown kind %q", tpl.TaskID, tpl.Kind)
		}
	}
	return t, nil
}

// Get returns a task template by ID, or nil if not found.
func (t *TaskTable) Get(id int32) *TaskTemplate {
	return t.templates[id]
}

// Kill returns all kill-type templates.
func (t *TaskTable) Kill() []*TaskTemplate { return t.kill }

// Collect returns all collect-type templates.
func (t *TaskTable) Collect() []*TaskTemplate { return t.collect }

// Count returns the number of loaded templates.
func (t *TaskTable) Count() int {
	return len(t.templates)
}
