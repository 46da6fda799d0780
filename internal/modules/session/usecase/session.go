package usecase

import (
	"context"
	"time"

	librarydto "etut/internal/modules/library/dto"
	libraryin "etut/internal/modules/library/port/in"
	"etut/internal/modules/session/domain"
	"etut/internal/modules/session/dto"
	sessionin "etut/internal/modules/session/port/in"
	sessionout "etut/internal/modules/session/port/out"
	"etut/internal/modules/session/service"
	"etut/internal/platform/tx"
)

// Interactor orchestrates the session store and the book reconciler. The
// session write always lands first: a crash between the two leaves "session
// recorded, book stale", which is recoverable, never the reverse.
type Interactor struct {
	svc      *service.SessionService
	library  libraryin.Usecase
	txm      tx.Manager
	exporter sessionout.NoteExporter
}

func NewInteractor(svc *service.SessionService, library libraryin.Usecase, txm tx.Manager, exporter sessionout.NoteExporter) sessionin.Usecase {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &Interactor{svc: svc, library: library, txm: txm, exporter: exporter}
}

func (i *Interactor) Init(ctx context.Context) error {
	return i.svc.Init(ctx)
}

func (i *Interactor) Add(ctx context.Context, input dto.AddInput) (dto.RecordOutput, error) {
	var record domain.Record
	err := i.txm.Within(ctx, func(ctx context.Context) error {
		var err error
		record, err = i.svc.Add(ctx, fromAddInput(input))
		if err != nil {
			return err
		}
		if record.Type == domain.SessionTypeQuestion && record.BookID != "" && i.library != nil {
			return i.library.ApplySession(ctx, effectOf(record))
		}
		return nil
	})
	if err != nil {
		return dto.RecordOutput{}, err
	}
	return toRecordOutput(record), nil
}

// Update replaces a record in place and re-runs reconciliation against the
// post-update values. Double-counting is avoided by reverting the previous
// version's effect before applying the new one. An unknown ID is a no-op.
func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.RecordOutput, error) {
	current, found, err := i.svc.Get(ctx, input.ID)
	if err != nil {
		return dto.RecordOutput{}, err
	}
	if !found {
		return dto.RecordOutput{}, nil
	}
	updated := applyUpdate(current, input)

	var result domain.Record
	err = i.txm.Within(ctx, func(ctx context.Context) error {
		previous, ok, err := i.svc.Update(ctx, updated)
		if err != nil || !ok {
			return err
		}
		result, _, err = i.svc.Get(ctx, updated.ID)
		if err != nil {
			return err
		}
		if result.Type == domain.SessionTypeQuestion && !result.IsPendingResult && i.library != nil {
			if previous.BookID != "" {
				if err := i.library.RevertSession(ctx, effectOf(previous)); err != nil {
					return err
				}
			}
			if result.BookID != "" {
				return i.library.ApplySession(ctx, effectOf(result))
			}
		}
		return nil
	})
	if err != nil {
		return dto.RecordOutput{}, err
	}
	return toRecordOutput(result), nil
}

// Delete reverts the record's book effect using the pre-deletion values,
// then removes it from the log. Unknown IDs are a no-op; synthetic seed
// rows are refused.
func (i *Interactor) Delete(ctx context.Context, id string) error {
	record, found, err := i.svc.Get(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		// Let the service surface the seed refusal for seed-prefixed IDs.
		_, _, err := i.svc.Delete(ctx, id)
		return err
	}
	return i.txm.Within(ctx, func(ctx context.Context) error {
		if record.Type == domain.SessionTypeQuestion && record.BookID != "" && i.library != nil {
			if err := i.library.RevertSession(ctx, effectOf(record)); err != nil {
				return err
			}
		}
		_, _, err := i.svc.Delete(ctx, id)
		return err
	})
}

func (i *Interactor) List(ctx context.Context) ([]dto.RecordOutput, error) {
	records, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecordOutput, 0, len(records))
	for _, record := range records {
		out = append(out, toRecordOutput(record))
	}
	return out, nil
}

func (i *Interactor) DailyStats(ctx context.Context, date time.Time, sessionType string) (dto.DailyStatsOutput, error) {
	stats, err := i.svc.DailyStats(ctx, date, domain.SessionType(sessionType))
	if err != nil {
		return dto.DailyStatsOutput{}, err
	}
	out := dto.DailyStatsOutput{
		Val:             stats.Val,
		Correct:         stats.Correct,
		Wrong:           stats.Wrong,
		Empty:           stats.Empty,
		Net:             stats.Net,
		DurationSeconds: stats.DurationSeconds,
		SessionCount:    stats.SessionCount,
		NoteCount:       stats.NoteCount,
	}
	for _, sc := range stats.Subjects {
		out.Subjects = append(out.Subjects, dto.SubjectCountOutput{Subject: sc.Subject, Questions: sc.Questions})
	}
	return out, nil
}

func (i *Interactor) AddPlanned(ctx context.Context, input dto.PlanInput) (dto.PlanOutput, error) {
	plan, err := i.svc.AddPlanned(ctx, domain.PlannedSession{
		Date:            input.Date,
		Time:            input.Time,
		Subject:         input.Subject,
		Topic:           input.Topic,
		DurationMinutes: input.DurationMinutes,
	})
	if err != nil {
		return dto.PlanOutput{}, err
	}
	return toPlanOutput(plan, i.svc.Now()), nil
}

func (i *Interactor) ListPlanned(ctx context.Context) ([]dto.PlanOutput, error) {
	plans, err := i.svc.ListPlanned(ctx)
	if err != nil {
		return nil, err
	}
	now := i.svc.Now()
	out := make([]dto.PlanOutput, 0, len(plans))
	for _, plan := range plans {
		out = append(out, toPlanOutput(plan, now))
	}
	return out, nil
}

func (i *Interactor) ExportNotes(ctx context.Context) ([]string, error) {
	if i.exporter == nil {
		return nil, nil
	}
	records, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(records))
	for _, record := range records {
		path, err := i.exporter.Export(ctx, record)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

func fromAddInput(input dto.AddInput) domain.Record {
	record := domain.Record{
		CompletedAt:     input.CustomDate,
		Type:            domain.SessionType(input.Type),
		IsMockTest:      input.IsMockTest,
		ExamType:        domain.ExamType(input.ExamType),
		Publisher:       input.Publisher,
		IsPendingResult: input.IsPendingResult,
		Subject:         input.Subject,
		Topic:           input.Topic,
		ActiveTopics:    input.ActiveTopics,
		Location:        input.Location,
		Questions:       input.Questions,
		Correct:         input.Correct,
		Wrong:           input.Wrong,
		Empty:           input.Empty,
		DurationSeconds: input.DurationSeconds,
		Understanding:   input.Understanding,
		Focus:           input.Focus,
		IsFinished:      input.IsFinished,
		BookID:          input.BookID,
		Notes:           input.Notes,
	}
	for _, ts := range input.TopicStats {
		record.TopicStats = append(record.TopicStats, domain.TopicStat{
			Label:           ts.Label,
			Questions:       ts.Questions,
			Correct:         ts.Correct,
			Wrong:           ts.Wrong,
			Empty:           ts.Empty,
			DurationSeconds: ts.DurationSeconds,
		})
	}
	return record
}

func applyUpdate(record domain.Record, input dto.UpdateInput) domain.Record {
	record.Correct = input.Correct
	record.Wrong = input.Wrong
	record.Empty = input.Empty
	if input.Questions > 0 {
		record.Questions = input.Questions
	}
	record.IsPendingResult = input.IsPendingResult
	if input.Notes != nil {
		record.Notes = input.Notes
	}
	if input.TopicStats != nil {
		record.TopicStats = nil
		for _, ts := range input.TopicStats {
			record.TopicStats = append(record.TopicStats, domain.TopicStat{
				Label:           ts.Label,
				Questions:       ts.Questions,
				Correct:         ts.Correct,
				Wrong:           ts.Wrong,
				Empty:           ts.Empty,
				DurationSeconds: ts.DurationSeconds,
			})
		}
	}
	return record
}

func effectOf(record domain.Record) librarydto.SessionEffect {
	effect := librarydto.SessionEffect{
		BookID:          record.BookID,
		CompletedAt:     record.CompletedAt,
		Questions:       record.Questions,
		Correct:         record.Correct,
		Wrong:           record.Wrong,
		Empty:           record.Empty,
		Accuracy:        record.Accuracy,
		DurationSeconds: record.DurationSeconds,
		Topic:           record.Topic,
	}
	for _, ts := range record.TopicStats {
		effect.TopicStats = append(effect.TopicStats, librarydto.TopicEffect{
			Label:           ts.Label,
			Questions:       ts.Questions,
			Correct:         ts.Correct,
			Wrong:           ts.Wrong,
			Empty:           ts.Empty,
			DurationSeconds: ts.DurationSeconds,
		})
	}
	return effect
}

func toRecordOutput(record domain.Record) dto.RecordOutput {
	var topicStats []dto.TopicStatOutput
	for _, ts := range record.TopicStats {
		topicStats = append(topicStats, dto.TopicStatOutput{
			Label:           ts.Label,
			Questions:       ts.Questions,
			Correct:         ts.Correct,
			Wrong:           ts.Wrong,
			Empty:           ts.Empty,
			DurationSeconds: ts.DurationSeconds,
		})
	}
	return dto.RecordOutput{
		ID:              record.ID,
		CompletedAt:     record.CompletedAt,
		Type:            string(record.Type),
		IsMockTest:      record.IsMockTest,
		ExamType:        string(record.ExamType),
		Publisher:       record.Publisher,
		IsPendingResult: record.IsPendingResult,
		Subject:         record.Subject,
		Topic:           record.Topic,
		Location:        record.Location,
		Questions:       record.Questions,
		Correct:         record.Correct,
		Wrong:           record.Wrong,
		Empty:           record.Empty,
		Net:             record.Net,
		Accuracy:        record.Accuracy,
		DurationSeconds: record.DurationSeconds,
		TopicStats:      topicStats,
		BookID:          record.BookID,
		NoteCount:       len(record.Notes),
	}
}

func toPlanOutput(plan domain.PlannedSession, now time.Time) dto.PlanOutput {
	return dto.PlanOutput{
		ID:              plan.ID,
		Date:            plan.Date,
		Time:            plan.Time,
		Subject:         plan.Subject,
		Topic:           plan.Topic,
		DurationMinutes: plan.DurationMinutes,
		IsPast:          plan.IsPast(now),
	}
}
