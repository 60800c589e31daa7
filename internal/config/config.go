package config

import (
	"errors"
	"fmt"
	"os"
	"setmatch-server/internal/util"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// ErrInvalidConfig is returned by Validate when a value is out of range
var ErrInvalidConfig = errors.New("invalid configuration")

// Config provides configuration for a Set match
type Config struct {
	loaded bool

	Addr string `yaml:"addr" envconfig:"addr"`

	// Players is the total number of players, HumanPlayers of them are human
	Players      int      `yaml:"players" envconfig:"players"`
	HumanPlayers int      `yaml:"humanPlayers" envconfig:"human_players"`
	PlayerNames  []string `yaml:"playerNames" envconfig:"player_names"`

	// PlayerKeys holds one row of keys per human player, the n-th key toggles slot n
	PlayerKeys []string `yaml:"playerKeys" envconfig:"player_keys"`

	Rows         int `yaml:"rows" envconfig:"rows"`
	Columns      int `yaml:"columns" envconfig:"columns"`
	DeckSize     int `yaml:"deckSize" envconfig:"deck_size"`
	FeatureSize  int `yaml:"featureSize" envconfig:"feature_size"`
	FeatureCount int `yaml:"featureCount" envconfig:"feature_count"`

	// TurnTimeoutMillis selects the round policy
	// positive: countdown, zero: elapsed, negative: presence
	TurnTimeoutMillis        int64 `yaml:"turnTimeoutMillis" envconfig:"turn_timeout_millis"`
	TurnTimeoutWarningMillis int64 `yaml:"turnTimeoutWarningMillis" envconfig:"turn_timeout_warning_millis"`
	PointFreezeMillis        int64 `yaml:"pointFreezeMillis" envconfig:"point_freeze_millis"`
	PenaltyFreezeMillis      int64 `yaml:"penaltyFreezeMillis" envconfig:"penalty_freeze_millis"`
	TableDelayMillis         int64 `yaml:"tableDelayMillis" envconfig:"table_delay_millis"`
	ComputerDelayMillis      int64 `yaml:"computerDelayMillis" envconfig:"computer_delay_millis"`

	Hints bool `yaml:"hints" envconfig:"hints"`

	// OracleScript is an optional Lua file defining test_match(cards)
	OracleScript string `yaml:"oracleScript" envconfig:"oracle_script"`

	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		Format            string `yaml:"format" envconfig:"format"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// Values are layered: defaults, then the YAML file (if it exists), then a .env file, then the environment
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("SET_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	case !os.IsNotExist(err):
		return err
	}

	// a missing .env is fine
	_ = godotenv.Load()

	if err := envconfig.Process("set", &cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}

// DefaultConfig returns the configuration of a standard two player game
func DefaultConfig() Config {
	c := Config{
		Addr:                     ":5000",
		Players:                  2,
		HumanPlayers:             0,
		PlayerKeys:               []string{"qwerasdfzxcv", "uiopjkl;m,./"},
		Rows:                     3,
		Columns:                  4,
		DeckSize:                 81,
		FeatureSize:              3,
		FeatureCount:             4,
		TurnTimeoutMillis:        60000,
		TurnTimeoutWarningMillis: 5000,
		PointFreezeMillis:        1000,
		PenaltyFreezeMillis:      3000,
		TableDelayMillis:         0,
		ComputerDelayMillis:      1000,
	}

	c.Log.Level = "info"
	return c
}

// Validate checks that the configuration describes a playable game
func (c Config) Validate() error {
	switch {
	case c.Players < 1:
		return fmt.Errorf("%w: players must be at least 1", ErrInvalidConfig)
	case c.HumanPlayers < 0 || c.HumanPlayers > c.Players:
		return fmt.Errorf("%w: humanPlayers must be between 0 and players", ErrInvalidConfig)
	case c.Rows < 1 || c.Columns < 1:
		return fmt.Errorf("%w: rows and columns must be positive", ErrInvalidConfig)
	case c.FeatureSize < 2:
		return fmt.Errorf("%w: featureSize must be at least 2", ErrInvalidConfig)
	case c.FeatureCount < 1:
		return fmt.Errorf("%w: featureCount must be at least 1", ErrInvalidConfig)
	case c.DeckSize < c.FeatureSize:
		return fmt.Errorf("%w: deckSize must be at least featureSize", ErrInvalidConfig)
	case c.TableSize() < c.FeatureSize:
		return fmt.Errorf("%w: the grid cannot hold featureSize cards", ErrInvalidConfig)
	case c.TurnTimeoutWarningMillis < 0 || c.PointFreezeMillis < 0 || c.PenaltyFreezeMillis < 0:
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidConfig)
	case c.TableDelayMillis < 0 || c.ComputerDelayMillis < 0:
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidConfig)
	}

	if c.OracleScript == "" && c.DeckSize > pow(c.FeatureSize, c.FeatureCount) {
		return fmt.Errorf("%w: deckSize exceeds featureSize^featureCount", ErrInvalidConfig)
	}

	return nil
}

// TableSize is the number of slots on the grid
func (c Config) TableSize() int {
	return c.Rows * c.Columns
}

// IsHuman returns true if the player with the given id is controlled by a person
func (c Config) IsHuman(id int) bool {
	return id < c.HumanPlayers
}

// PlayerName returns the configured display name, or a generated one
func (c Config) PlayerName(id int) string {
	if id < len(c.PlayerNames) && c.PlayerNames[id] != "" {
		return c.PlayerNames[id]
	}

	return util.GetRandomName()
}

// TurnTimeout is the countdown length of a round
func (c Config) TurnTimeout() time.Duration {
	return millis(c.TurnTimeoutMillis)
}

// TurnTimeoutWarning is the remaining time under which the countdown is shown as a warning
func (c Config) TurnTimeoutWarning() time.Duration {
	return millis(c.TurnTimeoutWarningMillis)
}

// PointFreeze is how long a player is frozen after scoring
func (c Config) PointFreeze() time.Duration {
	return millis(c.PointFreezeMillis)
}

// PenaltyFreeze is how long a player is frozen after a wrong claim
func (c Config) PenaltyFreeze() time.Duration {
	return millis(c.PenaltyFreezeMillis)
}

// TableDelay is the pause applied to every card placement and removal
func (c Config) TableDelay() time.Duration {
	return millis(c.TableDelayMillis)
}

// ComputerDelay is the pause between key presses of an automated player
func (c Config) ComputerDelay() time.Duration {
	return millis(c.ComputerDelayMillis)
}

func millis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func pow(base, exp int) int {
	n := 1
	for i := 0; i < exp; i++ {
		n *= base
	}

	return n
}
