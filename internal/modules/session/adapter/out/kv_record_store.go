package out

import (
	"context"
	"encoding/json"
	"fmt"

	"etut/internal/modules/session/domain"
	sessionout "etut/internal/modules/session/port/out"
	"etut/internal/platform/kv"
)

const (
	sessionsKey = "sessions"
	plannedKey  = "planned"
)

// KVRecordStore keeps the session log as a JSON array under a well-known
// key of the opaque key-value capability.
type KVRecordStore struct {
	store kv.Store
}

func NewKVRecordStore(store kv.Store) sessionout.RecordStore {
	return &KVRecordStore{store: store}
}

func (s *KVRecordStore) LoadAll(ctx context.Context) ([]domain.Record, error) {
	raw, err := s.store.Get(ctx, sessionsKey)
	if err != nil {
		return nil, err
	}
	var records []domain.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	return records, nil
}

func (s *KVRecordStore) SaveAll(ctx context.Context, records []domain.Record) error {
	if records == nil {
		records = []domain.Record{}
	}
	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sessions: %w", err)
	}
	return s.store.Set(ctx, sessionsKey, payload)
}

// KVPlanStore keeps the planned-session list under its own key.
type KVPlanStore struct {
	store kv.Store
}

func NewKVPlanStore(store kv.Store) sessionout.PlanStore {
	return &KVPlanStore{store: store}
}

func (s *KVPlanStore) LoadAll(ctx context.Context) ([]domain.PlannedSession, error) {
	raw, err := s.store.Get(ctx, plannedKey)
	if err != nil {
		return nil, err
	}
	var plans []domain.PlannedSession
	if err := json.Unmarshal(raw, &plans); err != nil {
		return nil, fmt.Errorf("decode planned sessions: %w", err)
	}
	return plans, nil
}

func (s *KVPlanStore) SaveAll(ctx context.Context, plans []domain.PlannedSession) error {
	if plans == nil {
		plans = []domain.PlannedSession{}
	}
	payload, err := json.MarshalIndent(plans, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal planned sessions: %w", err)
	}
	return s.store.Set(ctx, plannedKey, payload)
}
