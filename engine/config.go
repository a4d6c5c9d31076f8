package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// MaxPly bounds recursion and sizes the killer table.
const MaxPly = 64

// DefaultMaxDepth is the iterative-deepening ceiling when no budget stops the search first.
const DefaultMaxDepth = 11

var ErrInvalidConfig = errors.New("invalid search configuration")

// Config tunes the searcher. The zero value is not usable; start from DefaultConfig.
type Config struct {
	// Iterative deepening stops after this depth even with time left.
	MaxDepth int `json:"max_depth"`

	// Half-width of the aspiration window in pawns, and how many times it is
	// doubled before falling back to a full-window search.
	AspirationWindow     int  `json:"aspiration_window"`
	AspirationMaxRetries int  `json:"aspiration_max_retries"`
	UseAspiration        bool `json:"use_aspiration"`

	// Transposition table capacity in entries, rounded down to a power of two.
	TTEntries             int  `json:"tt_entries"`
	UseTranspositionTable bool `json:"use_transposition_table"`

	UseKillerMoves bool `json:"use_killer_moves"`
	UseHistory     bool `json:"use_history"`

	// The clock and context are polled every NodePollMask+1 nodes.
	NodePollMask uint64 `json:"node_poll_mask"`

	Logger zerolog.Logger `json:"-"`

	// OnIteration, when set, is called after every completed depth.
	OnIteration func(Iteration) `json:"-"`
}

func DefaultConfig() Config {
	return Config{
		MaxDepth:              DefaultMaxDepth,
		AspirationWindow:      50,
		AspirationMaxRetries:  5,
		UseAspiration:         true,
		TTEntries:             1 << 20,
		UseTranspositionTable: true,
		UseKillerMoves:        true,
		UseHistory:            true,
		NodePollMask:          2047,
		Logger:                zerolog.Nop(),
	}
}

// LoadConfig reads a JSON file and overlays it on DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.MaxDepth < 1 || c.MaxDepth > MaxPly:
		return fmt.Errorf("%w: max_depth %d outside [1, %d]", ErrInvalidConfig, c.MaxDepth, MaxPly)
	case c.AspirationWindow < 1:
		return fmt.Errorf("%w: aspiration_window must be positive", ErrInvalidConfig)
	case c.AspirationMaxRetries < 0:
		return fmt.Errorf("%w: aspiration_max_retries must not be negative", ErrInvalidConfig)
	case c.UseTranspositionTable && c.TTEntries < 1:
		return fmt.Errorf("%w: tt_entries must be positive", ErrInvalidConfig)
	case c.NodePollMask&(c.NodePollMask+1) != 0:
		return fmt.Errorf("%w: node_poll_mask %d is not 2^n-1", ErrInvalidConfig, c.NodePollMask)
	}
	return nil
}
