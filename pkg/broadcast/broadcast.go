// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

// Package broadcast pushes match updates to live viewers over Redis pub/sub.
package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/event"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/scoring"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// ChannelPrefix is the prefix for all live match channels
const ChannelPrefix = "tennis_scoring:live:"

// MatchUpdate is what viewers receive after every accepted change.
type MatchUpdate struct {
	MatchID    string               `json:"matchId"`
	Version    int64                `json:"version"`
	HomePlayer string               `json:"homePlayer"`
	AwayPlayer string               `json:"awayPlayer"`
	Status     scoring.Status       `json:"status"`
	Display    scoring.DisplayScore `json:"display"`
	Score      string               `json:"score,omitempty"`
	Events     []event.Event        `json:"events,omitempty"`
}

// Publisher sends updates to whoever is watching a match.
type Publisher interface {
	Publish(ctx context.Context, update *MatchUpdate) error
}

// Subscriber delivers updates for one match.
type Subscriber interface {
	Subscribe(ctx context.Context, matchID string) (*Subscription, error)
}

func channel(matchID string) string {
	return ChannelPrefix + matchID
}

// RedisBroadcaster implements Publisher and Subscriber on Redis pub/sub.
type RedisBroadcaster struct {
	client *redis.Client
}

// NewRedisBroadcaster creates a broadcaster on an existing client.
func NewRedisBroadcaster(client *redis.Client) *RedisBroadcaster {
	return &RedisBroadcaster{client: client}
}

// Publish encodes update as JSON and publishes it on the match channel.
func (b *RedisBroadcaster) Publish(ctx context.Context, update *MatchUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal update for match %s: %w", update.MatchID, err)
	}

	receivers, err := b.client.Publish(ctx, channel(update.MatchID), data).Result()
	if err != nil {
		logrus.Errorf("failed to publish update for match %s: %v", update.MatchID, err)
		return fmt.Errorf("failed to publish update: %w", err)
	}

	logrus.Debugf("published version %d of match %s to %d receivers", update.Version, update.MatchID, receivers)
	return nil
}

// Subscribe starts listening on the match channel. The subscription is
// confirmed before Subscribe returns, so no update published afterwards is missed.
func (b *RedisBroadcaster) Subscribe(ctx context.Context, matchID string) (*Subscription, error) {
	pubsub := b.client.Subscribe(ctx, channel(matchID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to match %s: %w", matchID, err)
	}

	sub := &Subscription{
		pubsub:  pubsub,
		updates: make(chan MatchUpdate, 16),
		done:    make(chan struct{}),
	}
	go sub.run(matchID)
	return sub, nil
}

// Subscription is a live feed of updates for one match.
type Subscription struct {
	pubsub  *redis.PubSub
	updates chan MatchUpdate
	done    chan struct{}
	once    sync.Once
}

// Updates is closed when the subscription ends.
func (s *Subscription) Updates() <-chan MatchUpdate {
	return s.updates
}

// Close stops the subscription.
func (s *Subscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
	})
	return err
}

func (s *Subscription) run(matchID string) {
	defer close(s.updates)

	for msg := range s.pubsub.Channel() {
		var update MatchUpdate
		if err := json.Unmarshal([]byte(msg.Payload), &update); err != nil {
			logrus.Warnf("dropping malformed update on %s: %v", msg.Channel, err)
			continue
		}

		select {
		case s.updates <- update:
		case <-s.done:
			return
		}
	}
	logrus.Debugf("subscription for match %s ended", matchID)
}

// NopBroadcaster drops every update.
type NopBroadcaster struct{}

// Publish implements Publisher.
func (NopBroadcaster) Publish(context.Context, *MatchUpdate) error { return nil }
