// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/broadcast"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/rpc"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/scoring"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/service"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/service/mock"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/state"
	"github.com/go-redis/redis/v8"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

var testRetries = service.ScorerConfig{
	MaxUpdateRetries:     2,
	RetryInitialInterval: time.Millisecond,
	RetryMaxInterval:     time.Millisecond,
}

// setupTestScorer wires a scorer to a miniredis backed store and broadcaster
func setupTestScorer(t *testing.T) (*service.Scorer, *broadcast.RedisBroadcaster) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	store := state.NewRedisMatchStore(client, state.RedisMatchStoreConfig{})
	broadcaster := broadcast.NewRedisBroadcaster(client)
	return service.NewScorer(store, broadcaster, nil, testRetries), broadcaster
}

// dialScoring serves a Scoring handler over an in-memory listener
func dialScoring(t *testing.T, scorer *service.Scorer) *rpc.ScoringServiceClient {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	server := grpc.NewServer()
	rpc.RegisterScoringServiceServer(server, NewScoring(scorer))
	go func() {
		_ = server.Serve(lis)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to dial bufnet: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return rpc.NewScoringServiceClient(conn)
}

func TestScoring_MatchFlow(t *testing.T) {
	scorer, _ := setupTestScorer(t)
	client := dialScoring(t, scorer)
	ctx := context.Background()

	created, err := client.CreateMatch(ctx, &rpc.CreateMatchRequest{
		HomePlayer:  "Mwamba",
		AwayPlayer:  "Banda",
		Format:      "no-ad-doubles",
		FirstServer: scoring.Away,
	})
	if err != nil {
		t.Fatalf("CreateMatch() error = %v", err)
	}
	matchID := created.Match.MatchID
	if matchID == "" || created.Format != "no-ad-doubles" || !created.Settings.NoAd {
		t.Fatalf("CreateMatch() = %+v", created)
	}
	if created.Match.Display.Server != scoring.Away {
		t.Errorf("server = %v, expected Away", created.Match.Display.Server)
	}

	// 40-40 then sudden death under no-ad
	for _, p := range []scoring.Player{scoring.Home, scoring.Away, scoring.Home, scoring.Away, scoring.Home, scoring.Away} {
		if _, err := client.AwardPoint(ctx, &rpc.AwardPointRequest{MatchID: matchID, Player: p}); err != nil {
			t.Fatalf("AwardPoint() error = %v", err)
		}
	}
	got, err := client.GetMatch(ctx, &rpc.GetMatchRequest{MatchID: matchID})
	if err != nil {
		t.Fatalf("GetMatch() error = %v", err)
	}
	if got.Match.Display.Points != [2]string{"40", "40"} {
		t.Errorf("points = %v, expected [40 40]", got.Match.Display.Points)
	}

	won, err := client.AwardPoint(ctx, &rpc.AwardPointRequest{MatchID: matchID, Player: scoring.Away})
	if err != nil {
		t.Fatalf("AwardPoint() error = %v", err)
	}
	if won.Match.Display.Sets[0].Games != [2]int{0, 1} {
		t.Errorf("games = %v, expected [0 1]", won.Match.Display.Sets[0].Games)
	}
	if len(won.Match.Events) != 2 || won.Match.Version != 7 {
		t.Errorf("AwardPoint() = %+v, expected game won at version 7", won.Match)
	}

	undone, err := client.UndoPoint(ctx, &rpc.UndoPointRequest{MatchID: matchID})
	if err != nil {
		t.Fatalf("UndoPoint() error = %v", err)
	}
	if !undone.Changed || undone.Match.Display.Points != [2]string{"40", "40"} {
		t.Errorf("UndoPoint() = %+v, expected back at 40-40", undone.Match)
	}
}

func TestScoring_ErrorCodes(t *testing.T) {
	scorer, _ := setupTestScorer(t)
	client := dialScoring(t, scorer)
	ctx := context.Background()

	created, err := client.CreateMatch(ctx, &rpc.CreateMatchRequest{HomePlayer: "Mwamba", AwayPlayer: "Banda"})
	if err != nil {
		t.Fatalf("CreateMatch() error = %v", err)
	}
	matchID := created.Match.MatchID

	tests := []struct {
		name string
		call func() error
		want codes.Code
	}{
		{
			name: "player out of range",
			call: func() error {
				_, err := client.AwardPoint(ctx, &rpc.AwardPointRequest{MatchID: matchID, Player: scoring.Player(2)})
				return err
			},
			want: codes.InvalidArgument,
		},
		{
			name: "missing match id",
			call: func() error {
				_, err := client.UndoPoint(ctx, &rpc.UndoPointRequest{})
				return err
			},
			want: codes.InvalidArgument,
		},
		{
			name: "unknown format",
			call: func() error {
				_, err := client.CreateMatch(ctx, &rpc.CreateMatchRequest{HomePlayer: "A", AwayPlayer: "B", Format: "fast4"})
				return err
			},
			want: codes.InvalidArgument,
		},
		{
			name: "unknown match",
			call: func() error {
				_, err := client.AwardPoint(ctx, &rpc.AwardPointRequest{MatchID: "missing", Player: scoring.Home})
				return err
			},
			want: codes.NotFound,
		},
		{
			name: "get unknown match",
			call: func() error {
				_, err := client.GetMatch(ctx, &rpc.GetMatchRequest{MatchID: "missing"})
				return err
			},
			want: codes.NotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := status.Code(tt.call()); got != tt.want {
				t.Errorf("code = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestScoring_ConflictsAbort(t *testing.T) {
	store := mock.NewMatchStore().AlwaysConflicting()
	client := dialScoring(t, service.NewScorer(store, nil, nil, testRetries))

	_, err := client.AwardPoint(context.Background(), &rpc.AwardPointRequest{MatchID: "m-1", Player: scoring.Home})
	if got := status.Code(err); got != codes.Aborted {
		t.Errorf("code = %v, expected Aborted", got)
	}
}

func TestScoring_CompletedMatchUnchanged(t *testing.T) {
	scorer, _ := setupTestScorer(t)
	client := dialScoring(t, scorer)
	ctx := context.Background()

	created, err := client.CreateMatch(ctx, &rpc.CreateMatchRequest{HomePlayer: "Mwamba", AwayPlayer: "Banda"})
	if err != nil {
		t.Fatalf("CreateMatch() error = %v", err)
	}
	matchID := created.Match.MatchID

	var last *rpc.MatchResponse
	for i := 0; i < 48; i++ {
		last, err = client.AwardPoint(ctx, &rpc.AwardPointRequest{MatchID: matchID, Player: scoring.Away})
		if err != nil {
			t.Fatalf("AwardPoint() error = %v", err)
		}
	}
	if last.Match.Status != scoring.StatusCompleted || last.Match.Score != "0-6 0-6" {
		t.Fatalf("match = %+v, expected completed 0-6 0-6", last.Match)
	}

	after, err := client.AwardPoint(ctx, &rpc.AwardPointRequest{MatchID: matchID, Player: scoring.Home})
	if err != nil {
		t.Fatalf("AwardPoint() error = %v", err)
	}
	if after.Changed || after.Match.Version != last.Match.Version {
		t.Errorf("AwardPoint() on completed match = %+v, expected unchanged", after)
	}
}
