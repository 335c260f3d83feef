// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"context"
	"errors"

	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/common"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/event"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/rpc"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/service"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/state"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Scoring serves the ScoringService RPCs
type Scoring struct {
	scorer *service.Scorer
}

// NewScoring creates a new Scoring handler
func NewScoring(scorer *service.Scorer) *Scoring {
	return &Scoring{scorer: scorer}
}

var _ rpc.ScoringServiceServer = (*Scoring)(nil)

// CreateMatch starts a new match
func (h *Scoring) CreateMatch(ctx context.Context, req *rpc.CreateMatchRequest) (*rpc.MatchResponse, error) {
	scope := common.GetScopeFromContext(ctx, "Scoring.CreateMatch")
	defer scope.Finish()

	res, err := h.scorer.CreateMatch(scope.Ctx, service.CreateMatchInput{
		HomePlayer:  req.HomePlayer,
		AwayPlayer:  req.AwayPlayer,
		Format:      req.Format,
		Overrides:   req.Settings,
		FirstServer: req.FirstServer,
	})
	if err != nil {
		return nil, toStatus(scope, "create match", err)
	}

	scope.ForMatch(res.Record.ID)
	scope.Log.Infof("match created with format %s", res.Record.Format)
	return toResponse(res), nil
}

// AwardPoint credits the next point to a player
func (h *Scoring) AwardPoint(ctx context.Context, req *rpc.AwardPointRequest) (*rpc.MatchResponse, error) {
	scope := common.GetScopeFromContext(ctx, "Scoring.AwardPoint")
	defer scope.Finish()

	if req.MatchID == "" {
		return nil, status.Error(codes.InvalidArgument, "matchId is required")
	}
	scope.ForMatch(req.MatchID)
	scope.SetInt("player", int(req.Player))

	res, err := h.scorer.AwardPoint(scope.Ctx, req.MatchID, req.Player)
	if err != nil {
		return nil, toStatus(scope, "award point", err)
	}

	scope.TraceEvents(event.Types(res.Events)...)
	return toResponse(res), nil
}

// UndoPoint reverts the most recent point
func (h *Scoring) UndoPoint(ctx context.Context, req *rpc.UndoPointRequest) (*rpc.MatchResponse, error) {
	scope := common.GetScopeFromContext(ctx, "Scoring.UndoPoint")
	defer scope.Finish()

	if req.MatchID == "" {
		return nil, status.Error(codes.InvalidArgument, "matchId is required")
	}
	scope.ForMatch(req.MatchID)

	res, err := h.scorer.UndoPoint(scope.Ctx, req.MatchID)
	if err != nil {
		return nil, toStatus(scope, "undo point", err)
	}

	scope.TraceEvents(event.Types(res.Events)...)
	return toResponse(res), nil
}

// GetMatch returns the current score of a match
func (h *Scoring) GetMatch(ctx context.Context, req *rpc.GetMatchRequest) (*rpc.MatchResponse, error) {
	scope := common.GetScopeFromContext(ctx, "Scoring.GetMatch")
	defer scope.Finish()

	if req.MatchID == "" {
		return nil, status.Error(codes.InvalidArgument, "matchId is required")
	}

	scope.ForMatch(req.MatchID)

	rec, err := h.scorer.GetMatch(scope.Ctx, req.MatchID)
	if err != nil {
		return nil, toStatus(scope, "get match", err)
	}

	return toResponse(&service.Result{Record: rec}), nil
}

func toResponse(res *service.Result) *rpc.MatchResponse {
	return &rpc.MatchResponse{
		Match:     service.Snapshot(res.Record, res.Events),
		Format:    res.Record.Format,
		Settings:  res.Record.State.Settings,
		Changed:   res.Changed,
		CreatedAt: res.Record.CreatedAt,
		UpdatedAt: res.Record.UpdatedAt,
	}
}

// toStatus maps service errors onto gRPC codes.
func toStatus(scope *common.Scope, operation string, err error) error {
	scope.TraceError(err)

	switch {
	case errors.Is(err, service.ErrInvalidPlayer),
		errors.Is(err, service.ErrInvalidSettings),
		errors.Is(err, service.ErrInvalidInput):
		scope.Log.Warnf("rejected %s: %v", operation, err)
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrMatchNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, state.ErrMatchExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, service.ErrTooManyConflicts):
		scope.Log.Warnf("%s aborted: %v", operation, err)
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		scope.Log.Errorf("failed to %s: %v", operation, err)
		return status.Errorf(codes.Internal, "failed to %s", operation)
	}
}
