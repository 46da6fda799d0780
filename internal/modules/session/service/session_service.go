package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"etut/internal/modules/session/domain"
	sessionout "etut/internal/modules/session/port/out"
	"etut/internal/platform/clock"
	apperrors "etut/internal/platform/errors"
	"etut/internal/platform/id"
)

// SessionService owns the session log and the planned-session list. All
// mutations write through: the persistence write must succeed before the
// in-memory cache is replaced.
type SessionService struct {
	clock     clock.Clock
	idGen     id.Generator
	store     sessionout.RecordStore
	plans     sessionout.PlanStore
	projector sessionout.RecordIndexProjector

	log         []domain.Record
	planned     []domain.PlannedSession
	logLoaded   bool
	plansLoaded bool
}

func NewSessionService(clock clock.Clock, idGen id.Generator, store sessionout.RecordStore, plans sessionout.PlanStore, projector sessionout.RecordIndexProjector) *SessionService {
	return &SessionService{clock: clock, idGen: idGen, store: store, plans: plans, projector: projector}
}

func (s *SessionService) ensureLog(ctx context.Context) error {
	if s.logLoaded {
		return nil
	}
	log, err := s.store.LoadAll(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrKeyNotFound) {
			log = nil
		} else {
			return err
		}
	}
	s.log = log
	s.logLoaded = true
	return nil
}

func (s *SessionService) ensurePlans(ctx context.Context) error {
	if s.plansLoaded {
		return nil
	}
	planned, err := s.plans.LoadAll(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrKeyNotFound) {
			planned = nil
		} else {
			return err
		}
	}
	s.planned = planned
	s.plansLoaded = true
	return nil
}

func (s *SessionService) Init(ctx context.Context) error {
	if err := s.ensureLog(ctx); err != nil {
		return err
	}
	return s.ensurePlans(ctx)
}

// monthSequence counts sessions completed in the same calendar month and
// year, regardless of type, and returns the next sequence number.
func (s *SessionService) monthSequence(record domain.Record) int {
	count := 0
	for _, existing := range s.log {
		if existing.CompletedAt.Year() == record.CompletedAt.Year() && existing.CompletedAt.Month() == record.CompletedAt.Month() {
			count++
		}
	}
	return count + 1
}

// Add finalizes and appends a record: completion time, month-scoped ID and
// the derived net/accuracy fields. The caller has already validated counts.
func (s *SessionService) Add(ctx context.Context, record domain.Record) (domain.Record, error) {
	if err := s.ensureLog(ctx); err != nil {
		return domain.Record{}, err
	}
	if record.CompletedAt.IsZero() {
		record.CompletedAt = s.clock.Now()
	}
	record.ID = domain.FormatID(domain.IDPrefix(record.Type, record.IsMockTest), record.CompletedAt, s.monthSequence(record))
	record = finalize(record)

	next := make([]domain.Record, len(s.log), len(s.log)+1)
	copy(next, s.log)
	next = append(next, record)
	if err := s.store.SaveAll(ctx, next); err != nil {
		return domain.Record{}, err
	}
	s.log = next
	if s.projector != nil {
		if err := s.projector.UpsertRecord(ctx, record); err != nil {
			return domain.Record{}, err
		}
	}
	return record, nil
}

// Update replaces a record in place and returns the previous version.
// An unknown ID is a no-op, mirroring delete.
func (s *SessionService) Update(ctx context.Context, updated domain.Record) (previous domain.Record, found bool, err error) {
	if err := s.ensureLog(ctx); err != nil {
		return domain.Record{}, false, err
	}
	idx := -1
	for i, existing := range s.log {
		if existing.ID == updated.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Record{}, false, nil
	}
	previous = s.log[idx]
	updated = finalize(updated)

	next := make([]domain.Record, len(s.log))
	copy(next, s.log)
	next[idx] = updated
	if err := s.store.SaveAll(ctx, next); err != nil {
		return domain.Record{}, false, err
	}
	s.log = next
	if s.projector != nil {
		if err := s.projector.UpsertRecord(ctx, updated); err != nil {
			return domain.Record{}, false, err
		}
	}
	return previous, true, nil
}

// Delete removes a record and returns it so the caller can revert its book
// effect. Unknown IDs are a no-op; synthetic seed rows are refused.
func (s *SessionService) Delete(ctx context.Context, recordID string) (deleted domain.Record, found bool, err error) {
	if strings.HasPrefix(recordID, "seed:") {
		return domain.Record{}, false, apperrors.ErrSeedRecord
	}
	if err := s.ensureLog(ctx); err != nil {
		return domain.Record{}, false, err
	}
	idx := -1
	for i, existing := range s.log {
		if existing.ID == recordID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Record{}, false, nil
	}
	deleted = s.log[idx]

	next := make([]domain.Record, 0, len(s.log)-1)
	next = append(next, s.log[:idx]...)
	next = append(next, s.log[idx+1:]...)
	if err := s.store.SaveAll(ctx, next); err != nil {
		return domain.Record{}, false, err
	}
	s.log = next
	if s.projector != nil {
		if err := s.projector.DeleteRecord(ctx, recordID); err != nil {
			return domain.Record{}, false, err
		}
	}
	return deleted, true, nil
}

func (s *SessionService) Get(ctx context.Context, recordID string) (domain.Record, bool, error) {
	if err := s.ensureLog(ctx); err != nil {
		return domain.Record{}, false, err
	}
	for _, existing := range s.log {
		if existing.ID == recordID {
			return existing, true, nil
		}
	}
	return domain.Record{}, false, nil
}

// List returns a copy of the full log; aggregation consumers treat it as a
// read-only snapshot.
func (s *SessionService) List(ctx context.Context) ([]domain.Record, error) {
	if err := s.ensureLog(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Record, len(s.log))
	copy(out, s.log)
	return out, nil
}

// DailyStats folds every session on the same local calendar day as date,
// optionally filtered by session type. The comparison is on Y/M/D
// components, never a UTC-normalized instant. Pending mock results
// contribute questions, duration and counts but none of
// correct/wrong/empty/net.
func (s *SessionService) DailyStats(ctx context.Context, date time.Time, sessionType domain.SessionType) (domain.DailyStats, error) {
	if err := s.ensureLog(ctx); err != nil {
		return domain.DailyStats{}, err
	}
	stats := domain.DailyStats{}
	subjectIdx := map[string]int{}
	for _, record := range s.log {
		if !clock.SameLocalDay(record.CompletedAt, date) {
			continue
		}
		if sessionType != "" && record.Type != sessionType {
			continue
		}
		stats.Val += record.Questions
		stats.DurationSeconds += record.DurationSeconds
		stats.SessionCount++
		stats.NoteCount += len(record.Notes)
		if record.HasResult() {
			stats.Correct += record.Correct
			stats.Wrong += record.Wrong
			stats.Empty += record.Empty
			stats.Net = domain.Round2(stats.Net + record.Net)
		}
		if record.Subject != "" {
			if i, ok := subjectIdx[record.Subject]; ok {
				stats.Subjects[i].Questions += record.Questions
			} else {
				subjectIdx[record.Subject] = len(stats.Subjects)
				stats.Subjects = append(stats.Subjects, domain.SubjectCount{Subject: record.Subject, Questions: record.Questions})
			}
		}
	}
	return stats, nil
}

// AddPlanned appends a planned session. Plans are only ever added, never
// mutated; "past" is derived from the clock, not stored.
func (s *SessionService) AddPlanned(ctx context.Context, plan domain.PlannedSession) (domain.PlannedSession, error) {
	if err := s.ensurePlans(ctx); err != nil {
		return domain.PlannedSession{}, err
	}
	plan.ID = s.idGen.New()
	next := make([]domain.PlannedSession, len(s.planned), len(s.planned)+1)
	copy(next, s.planned)
	next = append(next, plan)
	if err := s.plans.SaveAll(ctx, next); err != nil {
		return domain.PlannedSession{}, err
	}
	s.planned = next
	return plan, nil
}

func (s *SessionService) ListPlanned(ctx context.Context) ([]domain.PlannedSession, error) {
	if err := s.ensurePlans(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.PlannedSession, len(s.planned))
	copy(out, s.planned)
	return out, nil
}

// Reindex rebuilds the derived sqlite projection from the canonical log.
func (s *SessionService) Reindex(ctx context.Context) error {
	if s.projector == nil {
		return nil
	}
	if err := s.ensureLog(ctx); err != nil {
		return err
	}
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	for _, record := range s.log {
		if err := s.projector.UpsertRecord(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func (s *SessionService) Now() time.Time {
	return s.clock.Now()
}

func finalize(record domain.Record) domain.Record {
	if record.HasResult() {
		record.Net = domain.Net(record.Correct, record.Wrong)
		record.Accuracy = domain.StorageAccuracy(record.Correct, record.Wrong)
	} else {
		record.Net = 0
		record.Accuracy = 0
	}
	return record
}
