package main

import (
	"math/rand"
	"time"

	"github.com/judgegodwins/wordle-duel/api"
	"github.com/judgegodwins/wordle-duel/game"
	"github.com/judgegodwins/wordle-duel/session"
	"github.com/judgegodwins/wordle-duel/util"
	"github.com/judgegodwins/wordle-duel/ws"
	"github.com/rs/zerolog/log"
)

func main() {
	util.InitValidator()

	config, err := util.LoadConfig()

	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	if err := util.InitLogger(config.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("cannot set up logger")
	}

	words := game.DefaultWords
	if config.WordsFile != "" {
		words, err = game.LoadWords(config.WordsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot load words")
		}
	}

	provider, err := game.NewListProvider(words, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		log.Fatal().Err(err).Msg("cannot build word provider")
	}

	log.Info().Int("words", len(words)).Msg("word list loaded")

	manager := ws.NewManager(config, session.Options{
		Words:   provider,
		Tickers: session.SystemTickers(),
	})

	server := api.NewServer(config, manager)

	log.Info().Str("port", config.Port).Msg("server listening")
	log.Fatal().Err(server.Start()).Msg("server stopped")
}
