package main

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/clanpj/sable/engine"
	"github.com/clanpj/sable/lichess"
)

type State struct {
	client  *lichess.Client
	botName string
	log     zerolog.Logger

	stateMu     sync.Mutex
	challenges  []Challenge
	activeGames []*Game

	// All searching is serialized: the evaluator's cache is shared across
	// games and the search itself is single-threaded by design.
	searchMu   sync.Mutex
	eval       *engine.ClassicEvaluator
	controller *engine.Controller
}

func NewState(client *lichess.Client, botName string, log zerolog.Logger) *State {
	eval := engine.NewClassicEvaluator()
	return &State{
		client:     client,
		botName:    botName,
		log:        log,
		eval:       eval,
		controller: engine.NewController(eval, log),
	}
}
