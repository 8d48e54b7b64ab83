package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	PlayerID   int64
	PlayerFile string
	Output     string
	Verbose    bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	playerID, _ := strconv.ParseInt(os.Getenv("LOBBYCTL_PLAYER"), 10, 64)
	return &Config{
		ServerURL:  getEnvOrDefault("LOBBYCTL_SERVER", "http://localhost:8080"),
		PlayerID:   playerID,
		PlayerFile: getEnvOrDefault("LOBBYCTL_PLAYER_FILE", defaultPlayerFile()),
		Output:     "text",
		Verbose:    false,
	}
}

// LoadPlayer loads the acting player id from file if not already set
func (c *Config) LoadPlayer() error {
	if c.PlayerID != 0 {
		return nil
	}

	data, err := os.ReadFile(c.PlayerFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	id, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid player file %s: %w", c.PlayerFile, err)
	}
	c.PlayerID = id
	return nil
}

// SavePlayer remembers id as the acting player for later commands
func (c *Config) SavePlayer(id int64) error {
	c.PlayerID = id

	dir := filepath.Dir(c.PlayerFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.PlayerFile, []byte(strconv.FormatInt(id, 10)), 0600)
}

// ActingPlayer returns the configured player id or an error if none is set
func (c *Config) ActingPlayer() (int64, error) {
	if c.PlayerID == 0 {
		return 0, errors.New("no acting player: pass --player or run 'player create --save'")
	}
	return c.PlayerID, nil
}

func defaultPlayerFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lobbyctl/player"
	}
	return filepath.Join(home, ".lobbyctl", "player")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
