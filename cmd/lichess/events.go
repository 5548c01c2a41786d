package main

import (
	"github.com/clanpj/sable/lichess"
)

func (state *State) ListenForEvents() error {
	eventsChannel, err := state.client.StreamEvents()
	if err != nil {
		return err
	}

	for msg := range eventsChannel {
		switch msg.Type {
		case lichess.ChallengeEventType:
			challenge := msg.Data.(lichess.ChallengeEvent)
			state.PushChallenge(Challenge{
				ID:         challenge.Challenge.ID,
				Challenger: challenge.Challenge.Challenger,
				Variant:    challenge.Challenge.Variant,
			})

		case lichess.GameStartEventType:
			gameStart := msg.Data.(lichess.GameStartEvent)
			state.PushGame(&Game{
				ID: gameStart.Game.ID,
			})

		default:
			state.log.Warn().Interface("event", msg).Msg("received unknown event")
		}
	}

	return nil
}
