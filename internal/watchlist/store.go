// Package watchlist persists the watch-list document.
package watchlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/cinewatch/pathe-monitor/internal/monitor"
)

// Store reads and writes the JSON watch-list document. The document is the
// operator's editing surface, so writes stay pretty-printed.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore builds a Store for the document at path.
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Load reads the watch-list. When the document is absent an empty one is
// written first so the operator has a file to edit; a malformed document
// is an error.
func (s *Store) Load() (monitor.WatchList, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("watch-list not found, generating a fresh one", zap.String("path", s.path))
		list := monitor.WatchList{Requests: []monitor.WatchRequest{}}
		if err := s.Save(list); err != nil {
			return monitor.WatchList{}, err
		}
		return list, nil
	}
	if err != nil {
		return monitor.WatchList{}, fmt.Errorf("read watch-list: %w", err)
	}

	var list monitor.WatchList
	if err := json.Unmarshal(data, &list); err != nil {
		return monitor.WatchList{}, fmt.Errorf("decode watch-list %s: %w", s.path, err)
	}
	return list, nil
}

// Save writes the watch-list document.
func (s *Store) Save(list monitor.WatchList) error {
	s.logger.Debug("writing watch-list", zap.String("path", s.path))
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encode watch-list: %w", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write watch-list %s: %w", s.path, err)
	}
	return nil
}
