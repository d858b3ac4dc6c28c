// Package persist stores player progress between runs.
package persist

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"
)

// Store is the key/value surface of gdata.Manager
type Store interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// savedScore is the on-disk record of one stage
type savedScore struct {
	Best     int `json:"best"`
	Captures int `json:"captures"`
}

// HighScores keeps the best score per stage
type HighScores struct {
	store Store
	cache map[string]savedScore
}

// Open creates high-score storage in the per-user data directory of appName
func Open(appName string) (*HighScores, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open save data: %w", err)
	}
	return New(m), nil
}

// New creates high-score storage over store
func New(store Store) *HighScores {
	return &HighScores{
		store: store,
		cache: make(map[string]savedScore),
	}
}

func itemKey(stage string) string {
	return "highscore_" + stage
}

func (h *HighScores) load(stage string) (savedScore, error) {
	if s, ok := h.cache[stage]; ok {
		return s, nil
	}

	data, err := h.store.LoadItem(itemKey(stage))
	if err != nil {
		return savedScore{}, fmt.Errorf("failed to load high score for %s: %w", stage, err)
	}

	var s savedScore
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s); err != nil {
			return savedScore{}, fmt.Errorf("failed to parse high score for %s: %w", stage, err)
		}
	}
	h.cache[stage] = s
	return s, nil
}

// Best returns the high score of stage, 0 when none is saved
func (h *HighScores) Best(stage string) (int, error) {
	s, err := h.load(stage)
	return s.Best, err
}

// Submit records score for stage and reports whether it beat the previous best
func (h *HighScores) Submit(stage string, score, captures int) (bool, error) {
	prev, err := h.load(stage)
	if err != nil {
		return false, err
	}
	if score <= prev.Best {
		return false, nil
	}

	next := savedScore{Best: score, Captures: captures}
	data, err := json.Marshal(next)
	if err != nil {
		return false, fmt.Errorf("failed to encode high score: %w", err)
	}
	if err := h.store.SaveItem(itemKey(stage), data); err != nil {
		return false, fmt.Errorf("failed to save high score for %s: %w", stage, err)
	}
	h.cache[stage] = next
	return true, nil
}
