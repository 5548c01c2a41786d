package lichess

import (
	"encoding/json"
	"net/url"
)

type GameStateType int

const (
	GameFullStateType  GameStateType = 1
	GameStateStateType GameStateType = 2
	ChatLineStateType  GameStateType = 3
)

// GameState is the live part of a game: the move list so far and both clocks
// in milliseconds.
type GameState struct {
	Type string

	Moves  string
	Wtime  int64
	Btime  int64
	Winc   int64
	Binc   int64
	Status string
	Winner string
}

// GameFull is the first message of a game stream - the immutable setup plus
// the current state.
type GameFull struct {
	Type string

	ID         string
	Rated      bool
	Variant    Variant
	InitialFen string
	White      User
	Black      User

	State GameState
}

type ChatLine struct {
	Type string

	Username string
	Text     string
	Room     string
}

// GameStateMessage is one entry of a game's state stream, decoded into the
// concrete type named by its "type" field.
type GameStateMessage struct {
	Type GameStateType
	Data interface{}
}

func (msg *GameStateMessage) UnmarshalJSON(bytes []byte) error {
	var header struct {
		Type string
	}
	if err := json.Unmarshal(bytes, &header); err != nil {
		return err
	}

	switch header.Type {
	case "gameFull":
		var full GameFull
		if err := json.Unmarshal(bytes, &full); err != nil {
			return err
		}

		msg.Type = GameFullStateType
		msg.Data = full

	case "gameState":
		var state GameState
		if err := json.Unmarshal(bytes, &state); err != nil {
			return err
		}

		msg.Type = GameStateStateType
		msg.Data = state

	case "chatLine":
		var chat ChatLine
		if err := json.Unmarshal(bytes, &chat); err != nil {
			return err
		}

		msg.Type = ChatLineStateType
		msg.Data = chat
	}

	return nil
}

// StreamGameState follows one game's state stream. The channel closes when
// the game ends or the stream fails.
func (c *Client) StreamGameState(gameID string) (chan GameStateMessage, error) {
	req, err := c.newRequest("GET", "/api/bot/game/stream/"+gameID, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.doRequest(req)
	if err != nil {
		return nil, err
	}

	stateChannel := make(chan GameStateMessage)
	go func() {
		defer res.Body.Close()
		defer close(stateChannel)
		decoder := json.NewDecoder(res.Body)

		for decoder.More() {
			var msg GameStateMessage
			if err := decoder.Decode(&msg); err != nil {
				c.log.Error().Err(err).Str("game", gameID).Msg("game stream decode failed")
				return
			}

			stateChannel <- msg
		}
	}()

	return stateChannel, nil
}

type okResponse struct {
	OK bool
}

// PostMove plays a move (UCI notation) in the given game.
func (c *Client) PostMove(gameID string, moveStr string) error {
	req, err := c.newRequest("POST", "/api/bot/game/"+gameID+"/move/"+moveStr, nil)
	if err != nil {
		return err
	}

	res := okResponse{}
	return c.doJSONRequest(req, &res)
}

func (c *Client) AcceptChallenge(challengeID string) error {
	req, err := c.newRequest("POST", "/api/challenge/"+challengeID+"/accept", nil)
	if err != nil {
		return err
	}

	res := okResponse{}
	return c.doJSONRequest(req, &res)
}

func (c *Client) DeclineChallenge(challengeID string) error {
	req, err := c.newRequest("POST", "/api/challenge/"+challengeID+"/decline", nil)
	if err != nil {
		return err
	}

	res := okResponse{}
	return c.doJSONRequest(req, &res)
}

// SendChat posts a line to the player chat of a game.
func (c *Client) SendChat(gameID string, text string) error {
	params := url.Values{}
	params.Set("room", "player")
	params.Set("text", text)

	req, err := c.newRequest("POST", "/api/bot/game/"+gameID+"/chat", params)
	if err != nil {
		return err
	}

	res := okResponse{}
	return c.doJSONRequest(req, &res)
}
