package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/ericogr/breath-arena/internal/constants"
	"github.com/ericogr/breath-arena/internal/engine"
	"github.com/ericogr/breath-arena/internal/game"
	"github.com/ericogr/breath-arena/internal/keys"
)

type characterEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Class       string `json:"class"`
	MaxHealth   int    `json:"max_health"`
	MaxResource int    `json:"max_resource"`
	Attack      int    `json:"attack"`
	Defense     int    `json:"defense"`
	Speed       int    `json:"speed"`
	Avatar      string `json:"avatar"`
	Color       string `json:"color"`
}

func (e characterEntry) toCharacter() game.Character {
	key := keys.Normalize(e.ID)
	if key == "" {
		key = keys.CharacterKeyFromName(e.Name)
	}
	return game.Character{
		Key:          key,
		Name:         strings.TrimSpace(e.Name),
		Class:        e.Class,
		MaxHealth:    e.MaxHealth,
		MaxResource:  e.MaxResource,
		AttackPower:  e.Attack,
		DefensePower: e.Defense,
		Speed:        e.Speed,
		Avatar:       e.Avatar,
		Color:        e.Color,
	}
}

type rawConfig struct {
	CharacterList []characterEntry `json:"character_list"`
	// Opponent overrides the fixed enemy. Defaults to DefaultOpponent.
	Opponent *characterEntry `json:"opponent"`
	Server   *struct {
		Address string `json:"address"`
	} `json:"server"`
	// Pacing delays in milliseconds. Omitted values keep the defaults;
	// 0 disables a delay.
	Pacing *struct {
		FeedbackMS      *int `json:"feedback_ms"`
		OpponentDelayMS *int `json:"opponent_delay_ms"`
		HandBackDelayMS *int `json:"hand_back_delay_ms"`
		EndDelayMS      *int `json:"end_delay_ms"`
	} `json:"pacing"`
	// BattleTTL expires in-progress battles nobody touched for this long.
	BattleTTL string `json:"battle_ttl"`
	// FinishedBattleTTL keeps ended battles readable for this long.
	FinishedBattleTTL string `json:"finished_battle_ttl"`
}

// LoadedConfig contains the roster, the opponent and server settings.
type LoadedConfig struct {
	Characters        []game.Character
	Opponent          game.Character
	ServerAddress     string
	Pacing            engine.Pacing
	BattleTTL         time.Duration
	FinishedBattleTTL time.Duration
}

const (
	defaultBattleTTL         = 30 * time.Minute
	defaultFinishedBattleTTL = 2 * time.Minute
)

// DefaultOpponent is the single enemy archetype every battle is fought against.
func DefaultOpponent() game.Character {
	return game.Character{
		Key:       "lesser_demon",
		Name:      "Lesser Demon",
		Class:     "Demon",
		MaxHealth: 150,
		Avatar:    "👹",
		Color:     "#8B0000",
	}
}

// LoadConfig reads the configuration file at path. It requires the key
// `character_list` (snake_case).
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.CharacterList) == 0 {
		return nil, fmt.Errorf("config file %s: character_list is empty (provide 'character_list' array)", path)
	}

	out := make([]game.Character, 0, len(rc.CharacterList))
	nameSet := make(map[string]struct{}, len(rc.CharacterList))
	keySet := make(map[string]struct{}, len(rc.CharacterList))
	for _, e := range rc.CharacterList {
		c := e.toCharacter()
		if err := validateCharacter(c); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		ln := strings.ToLower(c.Name)
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate character name '%s'", path, c.Name)
		}
		nameSet[ln] = struct{}{}
		if _, exists := keySet[c.Key]; exists {
			return nil, fmt.Errorf("config file %s: duplicate character id '%s'", path, c.Key)
		}
		keySet[c.Key] = struct{}{}
		out = append(out, c)
	}

	opponent := DefaultOpponent()
	if rc.Opponent != nil {
		opponent = rc.Opponent.toCharacter()
		if err := validateCharacter(opponent); err != nil {
			return nil, fmt.Errorf("config file %s: opponent: %w", path, err)
		}
	}

	addr := constants.DefaultAddress
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	pacing := engine.DefaultPacing()
	if p := rc.Pacing; p != nil {
		setMillis(&pacing.Feedback, p.FeedbackMS)
		setMillis(&pacing.OpponentDelay, p.OpponentDelayMS)
		setMillis(&pacing.HandBackDelay, p.HandBackDelayMS)
		setMillis(&pacing.EndDelay, p.EndDelayMS)
	}

	battleTTL, err := parseTTL(rc.BattleTTL, defaultBattleTTL)
	if err != nil {
		return nil, fmt.Errorf("config file %s: battle_ttl: %w", path, err)
	}
	finishedTTL, err := parseTTL(rc.FinishedBattleTTL, defaultFinishedBattleTTL)
	if err != nil {
		return nil, fmt.Errorf("config file %s: finished_battle_ttl: %w", path, err)
	}

	return &LoadedConfig{
		Characters:        out,
		Opponent:          opponent,
		ServerAddress:     addr,
		Pacing:            pacing,
		BattleTTL:         battleTTL,
		FinishedBattleTTL: finishedTTL,
	}, nil
}

func validateCharacter(c game.Character) error {
	switch {
	case c.Name == "":
		return fmt.Errorf("character entry missing 'name'")
	case c.Key == "":
		return fmt.Errorf("character '%s' has no usable id", c.Name)
	case c.MaxHealth <= 0:
		return fmt.Errorf("character '%s': max_health must be positive", c.Name)
	case c.MaxResource < 0 || c.AttackPower < 0 || c.DefensePower < 0 || c.Speed < 0:
		return fmt.Errorf("character '%s': stats must not be negative", c.Name)
	}
	return nil
}

func setMillis(dst *time.Duration, ms *int) {
	if ms == nil {
		return
	}
	if *ms < 0 {
		*dst = 0
		return
	}
	*dst = time.Duration(*ms) * time.Millisecond
}

func parseTTL(s string, def time.Duration) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", s)
	}
	return d, nil
}

// Env holds process settings read from the environment.
type Env struct {
	ConfigPath string `env:"ARENA_CONFIG" envDefault:"./arena_config.json"`
	DBPath     string `env:"ARENA_DB" envDefault:"./data/arena.db"`
	// Address overrides server.address from the config file when set.
	Address  string `env:"ARENA_ADDR"`
	LogLevel string `env:"ARENA_LOG_LEVEL" envDefault:"info"`
}

// LoadEnv parses Env from the process environment.
func LoadEnv() (Env, error) {
	e, err := env.ParseAs[Env]()
	if err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Apply copies environment overrides onto a loaded config.
func (e Env) Apply(cfg *LoadedConfig) {
	if cfg == nil {
		return
	}
	if e.Address != "" {
		cfg.ServerAddress = e.Address
	}
}
