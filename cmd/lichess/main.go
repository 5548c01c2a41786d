// Lichess bot driver - accepts standard challenges and plays them with the
// engine.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/clanpj/sable/lichess"
)

var apiKey = flag.String("api-key", "", "The Lichess API key to use for this bot's requests.")
var botName = flag.String("bot-name", "Sable", "The Lichess account name the bot plays under.")

func main() {
	flag.Parse()
	if *apiKey == "" {
		fmt.Println("The bot requires a Lichess API key in order to run.")
		flag.PrintDefaults()

		return
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	client := lichess.NewClient(*apiKey, log)
	state := NewState(client, *botName, log)

	var group errgroup.Group
	group.Go(state.ListenForEvents)
	group.Go(state.AcceptChallenges)
	group.Go(state.PlayGames)

	if err := group.Wait(); err != nil {
		log.Fatal().Err(err).Msg("bot stopped")
	}
}
