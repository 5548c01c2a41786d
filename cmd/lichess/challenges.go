package main

import (
	"time"

	"github.com/clanpj/sable/lichess"
)

type Challenge struct {
	ID         string
	Challenger lichess.User
	Variant    lichess.Variant

	Retries int
}

func (state *State) PushChallenge(challenge Challenge) {
	state.stateMu.Lock()
	defer state.stateMu.Unlock()

	state.challenges = append(state.challenges, challenge)
}

func (state *State) PopChallenge() *Challenge {
	state.stateMu.Lock()
	defer state.stateMu.Unlock()

	if len(state.challenges) == 0 {
		return nil
	}

	challenge := state.challenges[0]
	state.challenges = state.challenges[1:]
	return &challenge
}

// TODO(guy) accept a finite number of games at once
func (state *State) AcceptChallenges() error {
	for {
		challenge := state.PopChallenge()
		if challenge == nil {
			time.Sleep(time.Second)
			continue
		}

		if challenge.Variant.Key != "standard" {
			if err := state.client.DeclineChallenge(challenge.ID); err != nil {
				state.log.Warn().Err(err).Str("challenge", challenge.ID).
					Msg("error declining challenge")
			}
			continue
		}

		if challenge.Retries >= 3 {
			continue
		}

		if err := state.client.AcceptChallenge(challenge.ID); err != nil {
			state.log.Warn().Err(err).Str("challenge", challenge.ID).
				Msg("error accepting challenge")

			challenge.Retries += 1
			state.PushChallenge(*challenge)
		}
	}
}
