// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

package common

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	traceIDLogField = "traceID"
	matchIDLogField = "match_id"
	tracerName      = "scoring-handler"
)

// Scope is one traced request: its context, span and a logger tagged with
// the trace ID.
type Scope struct {
	Ctx     context.Context
	TraceID string
	Log     *log.Entry
	span    oteltrace.Span
}

// GetScopeFromContext starts a span named name under whatever trace ctx carries.
func GetScopeFromContext(ctx context.Context, name string) *Scope {
	tracerCtx, span := otel.Tracer(tracerName).Start(ctx, name)
	traceID := span.SpanContext().TraceID().String()

	return &Scope{
		Ctx:     tracerCtx,
		TraceID: traceID,
		Log:     log.WithField(traceIDLogField, traceID),
		span:    span,
	}
}

// ForMatch tags the span and every later log line with the match ID.
func (s *Scope) ForMatch(matchID string) {
	s.span.SetAttributes(attribute.String(matchIDLogField, matchID))
	s.Log = s.Log.WithField(matchIDLogField, matchID)
}

// SetInt adds an integer attribute to the span.
func (s *Scope) SetInt(key string, value int) {
	s.span.SetAttributes(attribute.Int(key, value))
}

// TraceEvents adds one span event per name, in order.
func (s *Scope) TraceEvents(names ...string) {
	for _, name := range names {
		s.span.AddEvent(name)
	}
}

// TraceError records err on the span and marks the span failed.
func (s *Scope) TraceError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// Finish ends the span.
func (s *Scope) Finish() {
	s.span.End()
}
