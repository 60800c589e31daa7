package main

import (
	"setmatch-server/internal/config"
	"setmatch-server/internal/rng"
	"setmatch-server/pkg/board"
	"setmatch-server/pkg/dealer"
	"setmatch-server/pkg/deck"
	"setmatch-server/pkg/display"
	"setmatch-server/pkg/match"
	"setmatch-server/pkg/player"

	"github.com/sirupsen/logrus"
)

// newOracle returns the Lua oracle if a script is configured, the feature oracle otherwise
// release frees the oracle's resources
func newOracle(cfg config.Config) (oracle match.Oracle, release func(), err error) {
	if cfg.OracleScript == "" {
		return match.NewFeatures(cfg.FeatureSize, cfg.FeatureCount), func() {}, nil
	}

	script, err := match.NewScriptFile(cfg.OracleScript, cfg.FeatureSize)
	if err != nil {
		return nil, nil, err
	}

	logrus.WithField("script", cfg.OracleScript).Info("using scripted match oracle")
	return script, script.Close, nil
}

// playerNames resolves the display name of every player
func playerNames(cfg config.Config) map[int]string {
	names := make(map[int]string, cfg.Players)
	for id := 0; id < cfg.Players; id++ {
		names[id] = cfg.PlayerName(id)
	}

	return names
}

// newGame seats the players at a fresh board and hands everything to a dealer
func newGame(cfg config.Config, oracle match.Oracle, names map[int]string, disp display.Display) *dealer.Dealer {
	b := board.New(board.Options{
		Slots:     cfg.TableSize(),
		Cards:     cfg.DeckSize,
		Players:   cfg.Players,
		ClaimSize: oracle.Size(),
		Delay:     cfg.TableDelay(),
		Display:   disp,
	}, board.NewClaimQueue())

	players := make([]*player.Player, cfg.Players)
	for id := range players {
		players[id] = player.New(player.Options{
			ID:            id,
			Name:          names[id],
			Human:         cfg.IsHuman(id),
			PointFreeze:   cfg.PointFreeze(),
			PenaltyFreeze: cfg.PenaltyFreeze(),
			ComputerDelay: cfg.ComputerDelay(),
			Display:       disp,
			Random:        rng.Crypto{},
		}, b)
	}

	return dealer.New(dealer.Options{
		TurnTimeout:        cfg.TurnTimeout(),
		TurnTimeoutWarning: cfg.TurnTimeoutWarning(),
		Hints:              cfg.Hints,
		Display:            disp,
		Random:             rng.Crypto{},
	}, b, deck.New(cfg.DeckSize, rng.Crypto{}), players, oracle)
}
