package main

import (
	"log"

	"github.com/milk9111/menagerie/fsm"
)

const (
	stateLoading = "loading"
	stateRunning = "running"
	statePaused  = "paused"
)

// loadingState runs input, camera and model loading until the first
// character is ready or every load has failed.
type loadingState struct {
	fsm.Base
	g *Game
}

func (s *loadingState) Enter(fsm.State) {
	log.Printf("loading scene %s", s.g.scene.Name)
}

func (s *loadingState) Update(float64) {
	s.g.loading.Update(s.g.world)
	if s.g.loaded() {
		if err := s.g.machine.SetState(stateRunning); err != nil {
			log.Printf("start: %v", err)
		}
	}
}

type runningState struct {
	fsm.Base
	g *Game
}

func (s *runningState) Update(float64) {
	s.g.running.Update(s.g.world)
}

// pausedState only polls input so Escape can resume.
type pausedState struct {
	fsm.Base
	g *Game
}

func (s *pausedState) Enter(fsm.State) {
	s.g.status = "paused"
}

func (s *pausedState) Update(float64) {
	s.g.input.Update(s.g.world)
}

func (s *pausedState) Exit() {
	s.g.sampler.Reset()
	s.g.input.Reset()
}
