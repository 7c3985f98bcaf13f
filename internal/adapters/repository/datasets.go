package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/accountable-india/civicrank/internal/domain/model"
	"github.com/accountable-india/civicrank/pkg/logger"
)

// RosterStore serializes the whole leader roster to one dataset key.
// A missing or corrupt payload falls back to the seed roster instead of
// crashing the caller.
type RosterStore struct {
	kv  KV
	log logger.Logger
}

// NewRosterStore wraps a KV with roster (de)serialization.
func NewRosterStore(kv KV, log logger.Logger) *RosterStore {
	return &RosterStore{kv: kv, log: log}
}

// Load reads the persisted roster. Absent data seeds the built-in list;
// a payload that fails to parse is discarded with a warning and the seed
// is returned, so one corrupt blob never takes the dashboard down.
func (s *RosterStore) Load(ctx context.Context) (model.Roster, error) {
	raw, ok, err := s.kv.Get(ctx, KeyLeaders)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	if !ok {
		return model.SeedRoster(), nil
	}

	var roster model.Roster
	if err := json.Unmarshal([]byte(raw), &roster); err != nil {
		s.log.Warn(ctx, "persisted roster is corrupt; falling back to seed",
			logger.Error(err),
		)
		return model.SeedRoster(), nil
	}
	return roster, nil
}

// Save writes the whole roster back under its dataset key.
func (s *RosterStore) Save(ctx context.Context, roster model.Roster) error {
	raw, err := json.Marshal(roster)
	if err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}
	if err := s.kv.Set(ctx, KeyLeaders, string(raw)); err != nil {
		return fmt.Errorf("save roster: %w", err)
	}
	return nil
}

// PromiseStore serializes the tracked promise list to its dataset key.
type PromiseStore struct {
	kv  KV
	log logger.Logger
}

// NewPromiseStore wraps a KV with promise-list (de)serialization.
func NewPromiseStore(kv KV, log logger.Logger) *PromiseStore {
	return &PromiseStore{kv: kv, log: log}
}

// Load reads the persisted promises; absent or corrupt data yields an
// empty list.
func (s *PromiseStore) Load(ctx context.Context) ([]model.Promise, error) {
	raw, ok, err := s.kv.Get(ctx, KeyPromises)
	if err != nil {
		return nil, fmt.Errorf("load promises: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var promises []model.Promise
	if err := json.Unmarshal([]byte(raw), &promises); err != nil {
		s.log.Warn(ctx, "persisted promises are corrupt; starting empty",
			logger.Error(err),
		)
		return nil, nil
	}
	return promises, nil
}

// Save writes the whole promise list back under its dataset key.
func (s *PromiseStore) Save(ctx context.Context, promises []model.Promise) error {
	raw, err := json.Marshal(promises)
	if err != nil {
		return fmt.Errorf("encode promises: %w", err)
	}
	if err := s.kv.Set(ctx, KeyPromises, string(raw)); err != nil {
		return fmt.Errorf("save promises: %w", err)
	}
	return nil
}
