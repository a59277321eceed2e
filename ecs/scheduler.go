package ecs

// System updates a world once per tick.
type System interface {
	Update(w *World)
}

// Stage orders systems inside a tick. Within a stage systems run in the
// order they were added.
type Stage int

const (
	StageInput Stage = iota
	StageMovement
	StageSpawn
	StageLate
	stageCount
)

type Scheduler struct {
	stages [stageCount][]System
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) Add(stage Stage, system System) {
	if system == nil || stage < 0 || stage >= stageCount {
		return
	}
	s.stages[stage] = append(s.stages[stage], system)
}

func (s *Scheduler) Update(w *World) {
	for _, systems := range s.stages {
		for _, system := range systems {
			system.Update(w)
		}
	}
}

// Systems returns every system in run order.
func (s *Scheduler) Systems() []System {
	var out []System
	for _, systems := range s.stages {
		out = append(out, systems...)
	}
	return out
}
