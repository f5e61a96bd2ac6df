// Package config lit la configuration du serveur : drapeaux de ligne de
// commande, avec repli sur les variables d'environnement.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"colonnes/game"
)

// Config regroupe les réglages du serveur.
type Config struct {
	Addr          string
	Dev           bool
	Tick          time.Duration // période de la boucle de contrôle
	Seed          int64         // 0 : graine dérivée de l'horloge
	WaitDelay     time.Duration
	DarkenDelay   time.Duration
	OpponentDelay time.Duration
	MaxParties    int
}

// Parse lit args (sans le nom du programme) avec getenv comme repli.
func Parse(args []string, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	fs := flag.NewFlagSet("colonnes", flag.ContinueOnError)

	var c Config
	fs.StringVar(&c.Addr, "addr", envString(getenv, "COLONNES_ADDR", defaultAddr(getenv)), "listen address")
	fs.BoolVar(&c.Dev, "dev", envBool(getenv, "COLONNES_DEV", false), "development logging")
	fs.DurationVar(&c.Tick, "tick", envDuration(getenv, "COLONNES_TICK", 50*time.Millisecond), "control loop period")
	fs.Int64Var(&c.Seed, "seed", envInt64(getenv, "COLONNES_SEED", 0), "board seed (0 = time based)")
	fs.DurationVar(&c.WaitDelay, "wait-delay", envDuration(getenv, "COLONNES_WAIT_DELAY", game.DefaultWaitDelay), "delay before the upgrade darkening starts")
	fs.DurationVar(&c.DarkenDelay, "darken-delay", envDuration(getenv, "COLONNES_DARKEN_DELAY", game.DefaultDarkenDelay), "darkening duration before the upgrade applies")
	fs.DurationVar(&c.OpponentDelay, "opponent-delay", envDuration(getenv, "COLONNES_OPPONENT_DELAY", game.DefaultOpponentDelay), "heuristic opponent thinking delay")
	fs.IntVar(&c.MaxParties, "max-parties", int(envInt64(getenv, "COLONNES_MAX_PARTIES", 256)), "maximum concurrent parties")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate vérifie la cohérence des réglages.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("empty listen address")
	}
	if c.Tick <= 0 {
		return fmt.Errorf("tick must be positive, got %s", c.Tick)
	}
	if c.WaitDelay <= 0 || c.DarkenDelay <= 0 || c.OpponentDelay <= 0 {
		return fmt.Errorf("delays must be positive")
	}
	if c.MaxParties <= 0 {
		return fmt.Errorf("max-parties must be positive, got %d", c.MaxParties)
	}
	return nil
}

// Rules construit les règles d'une partie dans le mode demandé.
func (c Config) Rules(mode game.Mode) game.Rules {
	r := game.DefaultRules()
	r.Mode = mode
	r.WaitDelay = c.WaitDelay
	r.DarkenDelay = c.DarkenDelay
	r.OpponentDelay = c.OpponentDelay
	return r
}

func defaultAddr(getenv func(string) string) string {
	if port := getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}

func envString(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(getenv func(string) string, key string, def bool) bool {
	if v := getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}

func envDuration(getenv func(string) string, key string, def time.Duration) time.Duration {
	if v := getenv(key); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return def
}

func envInt64(getenv func(string) string, key string, def int64) int64 {
	if v := getenv(key); v != "" {
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return n
		}
	}
	return def
}
