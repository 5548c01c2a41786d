package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	dragon "github.com/dylhunn/dragontoothmg"

	"github.com/clanpj/sable/engine"
	"github.com/clanpj/sable/lichess"
)

type Game struct {
	ID         string
	InitialFen string
	WeAreWhite bool

	Moves  []string // list of moves in UCI format
	Status string

	// Clocks from the last state update, in milliseconds.
	Wtime int64
	Btime int64
	Winc  int64
	Binc  int64

	isPlaying bool
	mutex     sync.Mutex
}

func (state *State) PushGame(game *Game) {
	state.stateMu.Lock()
	defer state.stateMu.Unlock()

	state.activeGames = append(state.activeGames, game)
}

func (state *State) RemoveGame(gameID string) {
	state.stateMu.Lock()
	defer state.stateMu.Unlock()

	var games []*Game
	for _, game := range state.activeGames {
		if game.ID != gameID {
			games = append(games, game)
		}
	}

	state.activeGames = games
}

func lockGame(game *Game) bool {
	game.mutex.Lock()
	defer game.mutex.Unlock()

	acquiredLock := false
	if !game.isPlaying {
		acquiredLock = true
		game.isPlaying = true
	}

	return acquiredLock
}

func unlockGame(game *Game) {
	game.mutex.Lock()
	defer game.mutex.Unlock()

	game.isPlaying = false
}

func (state *State) PlayGames() error {
	for {
		state.stateMu.Lock()
		games := append([]*Game(nil), state.activeGames...)
		state.stateMu.Unlock()

		for _, game := range games {
			if !game.isPlaying {
				go state.playGame(game)
			}
		}

		time.Sleep(time.Second)
	}
}

func (state *State) playGame(game *Game) {
	ok := lockGame(game)
	if !ok {
		return
	}
	defer unlockGame(game)

	gameStateCh, err := state.client.StreamGameState(game.ID)
	if err != nil {
		state.log.Error().Err(err).Str("game", game.ID).Msg("error opening game stream")
		return
	}

	// Listen to game updates as long as we can.
	for msg := range gameStateCh {
		if err := state.handleMessage(game, msg); err != nil {
			state.log.Error().Err(err).Str("game", game.ID).Msg("error handling game update")
			return
		}

		if gameIsOver(game) {
			state.log.Info().Str("game", game.ID).Str("status", game.Status).Msg("game finished")
			state.RemoveGame(game.ID)
			return
		}
	}
}

func (state *State) handleMessage(game *Game, msg lichess.GameStateMessage) error {
	var anyErr error
	switch msg.Type {
	case lichess.GameFullStateType:
		anyErr = state.handleInitialGameState(game, msg.Data.(lichess.GameFull))

	case lichess.GameStateStateType:
		anyErr = handleGameUpdate(game, msg.Data.(lichess.GameState))

	case lichess.ChatLineStateType:
		chat := msg.Data.(lichess.ChatLine)
		state.log.Info().Str("game", game.ID).Str("from", chat.Username).
			Str("text", chat.Text).Msg("received chat")

	default:
		anyErr = fmt.Errorf("received unknown game update: %v", msg)
	}

	if anyErr != nil {
		return anyErr
	}

	// If the game is not finished and it's our turn, we should move.
	if isOurTurn(game) && !gameIsOver(game) {
		return state.makeMove(game)
	}

	return nil
}

func (state *State) handleInitialGameState(game *Game, initialState lichess.GameFull) error {
	game.InitialFen = dragon.Startpos
	if initialState.InitialFen != "" && initialState.InitialFen != "startpos" {
		game.InitialFen = initialState.InitialFen
	}

	applyState(game, initialState.State)

	if initialState.White.Name == state.botName {
		game.WeAreWhite = true
	} else if initialState.Black.Name == state.botName {
		game.WeAreWhite = false
	} else {
		return fmt.Errorf("expected one of the players in game %s to be %s",
			game.ID, state.botName)
	}

	return nil
}

func handleGameUpdate(game *Game, update lichess.GameState) error {
	applyState(game, update)
	return nil
}

func applyState(game *Game, update lichess.GameState) {
	game.Moves = []string{}
	if update.Moves != "" {
		game.Moves = strings.Split(update.Moves, " ")
	}
	game.Status = update.Status
	game.Wtime, game.Btime = update.Wtime, update.Btime
	game.Winc, game.Binc = update.Winc, update.Binc
}

func isOurTurn(game *Game) bool {
	whiteToPlay := len(game.Moves)%2 == 0

	return whiteToPlay == game.WeAreWhite
}

func gameIsOver(game *Game) bool {
	return game.Status != "" && game.Status != "started"
}

func (state *State) makeMove(game *Game) error {
	pos, err := engine.NewPositionFromMoves(game.InitialFen, game.Moves)
	if err != nil {
		return err
	}

	clock := engine.Clock{
		Remaining: time.Duration(game.Wtime) * time.Millisecond,
		Increment: time.Duration(game.Winc) * time.Millisecond,
	}
	if !game.WeAreWhite {
		clock.Remaining = time.Duration(game.Btime) * time.Millisecond
		clock.Increment = time.Duration(game.Binc) * time.Millisecond
	}

	state.searchMu.Lock()
	move := state.controller.ChooseMove(pos, clock, nil, 0)
	state.searchMu.Unlock()

	if move == engine.NoMove {
		// No legal moves - the server will have ended the game already.
		return nil
	}

	return state.client.PostMove(game.ID, move.String())
}
