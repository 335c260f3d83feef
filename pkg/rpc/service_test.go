// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

package rpc

import (
	"context"
	"net"
	"sync"
	"testing"

	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/broadcast"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/scoring"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type echoServer struct{}

func (echoServer) CreateMatch(_ context.Context, in *CreateMatchRequest) (*MatchResponse, error) {
	return &MatchResponse{
		Match:    &broadcast.MatchUpdate{MatchID: "m-1", HomePlayer: in.HomePlayer, AwayPlayer: in.AwayPlayer},
		Format:   in.Format,
		Settings: scoring.MergeSettings(in.Settings),
		Changed:  true,
	}, nil
}

func (echoServer) AwardPoint(_ context.Context, in *AwardPointRequest) (*MatchResponse, error) {
	if !in.Player.Valid() {
		return nil, status.Error(codes.InvalidArgument, "bad player")
	}
	return &MatchResponse{Match: &broadcast.MatchUpdate{MatchID: in.MatchID, Version: 1}, Changed: true}, nil
}

func (echoServer) UndoPoint(_ context.Context, in *UndoPointRequest) (*MatchResponse, error) {
	return &MatchResponse{Match: &broadcast.MatchUpdate{MatchID: in.MatchID}}, nil
}

func (echoServer) GetMatch(_ context.Context, in *GetMatchRequest) (*MatchResponse, error) {
	return nil, status.Errorf(codes.NotFound, "match %s not found", in.MatchID)
}

func dialEcho(t *testing.T, interceptor grpc.UnaryServerInterceptor) *ScoringServiceClient {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	server := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptor))
	RegisterScoringServiceServer(server, echoServer{})
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
	return NewScoringServiceClient(conn)
}

func TestScoringService_RoundTrip(t *testing.T) {
	var mu sync.Mutex
	var methods []string
	record := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		mu.Lock()
		methods = append(methods, info.FullMethod)
		mu.Unlock()
		return handler(ctx, req)
	}
	client := dialEcho(t, record)
	ctx := context.Background()

	noAd := true
	created, err := client.CreateMatch(ctx, &CreateMatchRequest{
		HomePlayer: "Mwamba",
		AwayPlayer: "Banda",
		Format:     "standard",
		Settings:   scoring.SettingsOverrides{NoAd: &noAd},
	})
	if err != nil {
		t.Fatalf("CreateMatch() error = %v", err)
	}
	if created.Match.HomePlayer != "Mwamba" || !created.Settings.NoAd || created.Settings.BestOf != 3 {
		t.Errorf("CreateMatch() = %+v", created)
	}

	awarded, err := client.AwardPoint(ctx, &AwardPointRequest{MatchID: "m-1", Player: scoring.Away})
	if err != nil {
		t.Fatalf("AwardPoint() error = %v", err)
	}
	if awarded.Match.Version != 1 || !awarded.Changed {
		t.Errorf("AwardPoint() = %+v", awarded)
	}

	if _, err := client.UndoPoint(ctx, &UndoPointRequest{MatchID: "m-1"}); err != nil {
		t.Fatalf("UndoPoint() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []string{CreateMatchMethod, AwardPointMethod, UndoPointMethod}
	if len(methods) != len(want) {
		t.Fatalf("methods = %v, expected %v", methods, want)
	}
	for i := range want {
		if methods[i] != want[i] {
			t.Errorf("methods[%d] = %s, expected %s", i, methods[i], want[i])
		}
	}
}

func TestScoringService_StatusErrors(t *testing.T) {
	passthrough := func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		return handler(ctx, req)
	}
	client := dialEcho(t, passthrough)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want codes.Code
	}{
		{
			name: "invalid player",
			call: func() error {
				_, err := client.AwardPoint(ctx, &AwardPointRequest{MatchID: "m-1", Player: scoring.Player(7)})
				return err
			},
			want: codes.InvalidArgument,
		},
		{
			name: "not found",
			call: func() error {
				_, err := client.GetMatch(ctx, &GetMatchRequest{MatchID: "nope"})
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
