package lichess

import (
	"encoding/json"
)

type User struct {
	ID     string
	Name   string
	Title  string
	Rating int
}

type Variant struct {
	Key   string
	Name  string
	Short string
}

type EventType int

const (
	ChallengeEventType EventType = 1
	GameStartEventType EventType = 2
)

type ChallengeEvent struct {
	Type string

	Challenge struct {
		ID     string
		Status string
		Rated  bool

		Challenger User
		DestUser   User

		Variant Variant

		TimeControl struct {
			Type      string
			Limit     int64
			Increment int64
		}
	}
}

type GameStartEvent struct {
	Type string

	Game struct {
		ID string
	}
}

// EventMessage is one entry of the account event stream, decoded into the
// concrete event type named by its "type" field.
type EventMessage struct {
	Type EventType
	Data interface{}
}

func (msg *EventMessage) UnmarshalJSON(bytes []byte) error {
	var header struct {
		Type string
	}
	if err := json.Unmarshal(bytes, &header); err != nil {
		return err
	}

	switch header.Type {
	case "challenge":
		var challenge ChallengeEvent
		if err := json.Unmarshal(bytes, &challenge); err != nil {
			return err
		}

		msg.Type = ChallengeEventType
		msg.Data = challenge

	case "gameStart":
		var gameStart GameStartEvent
		if err := json.Unmarshal(bytes, &gameStart); err != nil {
			return err
		}

		msg.Type = GameStartEventType
		msg.Data = gameStart
	}

	return nil
}

// StreamEvents opens the account's event firehose. The channel closes when
// the stream ends or fails.
func (c *Client) StreamEvents() (chan EventMessage, error) {
	req, err := c.newRequest("GET", "/api/stream/event", nil)
	if err != nil {
		return nil, err
	}

	res, err := c.doRequest(req)
	if err != nil {
		return nil, err
	}

	eventChannel := make(chan EventMessage)
	go func() {
		defer res.Body.Close()
		defer close(eventChannel)
		decoder := json.NewDecoder(res.Body)

		for decoder.More() {
			var msg EventMessage
			if err := decoder.Decode(&msg); err != nil {
				c.log.Error().Err(err).Msg("event stream decode failed")
				return
			}

			eventChannel <- msg
		}
	}()

	return eventChannel, nil
}
