// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/broadcast"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/event"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/format"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/metrics"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/scoring"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/state"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ScorerConfig tunes how the scorer retries conflicting writes.
type ScorerConfig struct {
	MaxUpdateRetries     int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
}

func (c ScorerConfig) withDefaults() ScorerConfig {
	if c.MaxUpdateRetries <= 0 {
		c.MaxUpdateRetries = 10
	}
	if c.RetryInitialInterval <= 0 {
		c.RetryInitialInterval = 5 * time.Millisecond
	}
	if c.RetryMaxInterval <= 0 {
		c.RetryMaxInterval = 200 * time.Millisecond
	}
	return c
}

// Scorer is the only writer of match state. It checks input at the
// boundary, runs the scoring engine inside a compare-and-swap on the stored
// record, and publishes every accepted change.
type Scorer struct {
	store     MatchStore
	publisher broadcast.Publisher
	formats   *format.Config
	cfg       ScorerConfig
	now       func() time.Time
}

// NewScorer creates a scorer. A nil publisher drops updates; nil formats
// fall back to the built-in presets.
func NewScorer(store MatchStore, publisher broadcast.Publisher, formats *format.Config, cfg ScorerConfig) *Scorer {
	if publisher == nil {
		publisher = broadcast.NopBroadcaster{}
	}
	if formats == nil {
		formats = format.Builtin()
	}
	return &Scorer{
		store:     store,
		publisher: publisher,
		formats:   formats,
		cfg:       cfg.withDefaults(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateMatchInput describes a new match. Overrides are layered on top of
// the named format.
type CreateMatchInput struct {
	HomePlayer  string
	AwayPlayer  string
	Format      string
	Overrides   scoring.SettingsOverrides
	FirstServer scoring.Player
}

// Result is the outcome of a scoring operation.
type Result struct {
	Record  *state.MatchRecord
	Events  []event.Event
	Changed bool
}

// CreateMatch starts and persists a new match.
func (s *Scorer) CreateMatch(ctx context.Context, in CreateMatchInput) (*Result, error) {
	home, away := strings.TrimSpace(in.HomePlayer), strings.TrimSpace(in.AwayPlayer)
	if home == "" || away == "" {
		return nil, fmt.Errorf("%w: both player names are required", ErrInvalidInput)
	}
	if !in.FirstServer.Valid() {
		return nil, fmt.Errorf("%w: first server %d", ErrInvalidPlayer, in.FirstServer)
	}

	overrides, formatName, err := s.formats.Resolve(in.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	overrides = overrides.Merge(in.Overrides)
	if err := format.ValidateSettings(scoring.MergeSettings(overrides)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	now := s.now()
	rec := &state.MatchRecord{
		ID:         uuid.NewString(),
		HomePlayer: home,
		AwayPlayer: away,
		Format:     formatName,
		State:      scoring.CreateInitialState(overrides, in.FirstServer),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	metrics.MatchesCreatedTotal.WithLabelValues(formatName).Inc()
	logrus.WithFields(logrus.Fields{
		"match_id": rec.ID,
		"format":   formatName,
	}).Infof("created match %s vs %s", home, away)

	s.publish(ctx, rec, nil)
	return &Result{Record: rec, Changed: true}, nil
}

// GetMatch returns the stored record.
func (s *Scorer) GetMatch(ctx context.Context, matchID string) (*state.MatchRecord, error) {
	return s.store.Get(ctx, matchID)
}

// AwardPoint credits a point to player. On a completed match the record
// comes back unchanged.
func (s *Scorer) AwardPoint(ctx context.Context, matchID string, player scoring.Player) (*Result, error) {
	if !player.Valid() {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlayer, player)
	}
	return s.apply(ctx, matchID, "award_point", event.KindPoint, func(st scoring.MatchState) scoring.MatchState {
		return scoring.AwardPoint(st, player)
	})
}

// UndoPoint reverts the latest point. With nothing to undo the record comes
// back unchanged.
func (s *Scorer) UndoPoint(ctx context.Context, matchID string) (*Result, error) {
	return s.apply(ctx, matchID, "undo_point", event.KindUndo, scoring.UndoPoint)
}

func (s *Scorer) apply(
	ctx context.Context,
	matchID string,
	operation string,
	kind event.Kind,
	transition func(scoring.MatchState) scoring.MatchState,
) (*Result, error) {
	var (
		rec     *state.MatchRecord
		before  scoring.MatchState
		changed bool
	)

	op := func() error {
		updated, err := s.store.Update(ctx, matchID, func(r *state.MatchRecord) (bool, error) {
			before = r.State
			after := transition(r.State)
			changed = after.PointsPlayed() != before.PointsPlayed()
			if !changed {
				return false, nil
			}
			r.State = after
			r.Score = scoring.GetScoreString(after)
			return true, nil
		})
		if errors.Is(err, state.ErrConcurrentUpdate) {
			metrics.StoreConflictsTotal.WithLabelValues(operation).Inc()
			return err
		}
		if err != nil {
			return backoff.Permanent(err)
		}
		rec = updated
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.cfg.RetryInitialInterval
	b.MaxInterval = s.cfg.RetryMaxInterval
	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, uint64(s.cfg.MaxUpdateRetries)), ctx))
	if errors.Is(err, state.ErrConcurrentUpdate) {
		logrus.Warnf("giving up %s on match %s after %d retries", operation, matchID, s.cfg.MaxUpdateRetries)
		return nil, fmt.Errorf("%w: %s on match %s", ErrTooManyConflicts, operation, matchID)
	}
	if err != nil {
		return nil, err
	}

	if !changed {
		logrus.Debugf("%s on match %s changed nothing", operation, matchID)
		return &Result{Record: rec}, nil
	}

	events := event.Derive(before, rec.State, kind, s.now())
	s.record(kind, before, rec.State, events)

	logrus.WithFields(logrus.Fields{
		"match_id": matchID,
		"version":  rec.Version,
		"events":   event.Types(events),
	}).Infof("%s accepted", operation)

	s.publish(ctx, rec, events)
	return &Result{Record: rec, Events: events, Changed: true}, nil
}

func (s *Scorer) record(kind event.Kind, before, after scoring.MatchState, events []event.Event) {
	switch kind {
	case event.KindUndo:
		metrics.PointsUndoneTotal.Inc()
	default:
		metrics.PointsAwardedTotal.WithLabelValues(before.CurrentGame.Mode.String()).Inc()
		if after.Completed() && !before.Completed() {
			metrics.MatchesCompletedTotal.Inc()
		}
	}
	for _, e := range events {
		metrics.EventsTotal.WithLabelValues(string(e.Type)).Inc()
	}
}

// publish is best effort: the record is already committed, so a failed
// broadcast is logged and viewers catch up on the next update.
func (s *Scorer) publish(ctx context.Context, rec *state.MatchRecord, events []event.Event) {
	if err := s.publisher.Publish(ctx, Snapshot(rec, events)); err != nil {
		logrus.Errorf("failed to broadcast match %s version %d: %v", rec.ID, rec.Version, err)
	}
}

// Snapshot builds the viewer-facing view of a record.
func Snapshot(rec *state.MatchRecord, events []event.Event) *broadcast.MatchUpdate {
	return &broadcast.MatchUpdate{
		MatchID:    rec.ID,
		Version:    rec.Version,
		HomePlayer: rec.HomePlayer,
		AwayPlayer: rec.AwayPlayer,
		Status:     rec.State.Status,
		Display:    scoring.GetDisplayScore(rec.State),
		Score:      scoring.GetScoreString(rec.State),
		Events:     events,
	}
}
