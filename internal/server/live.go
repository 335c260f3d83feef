// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/broadcast"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/handler"
	"github.com/sirupsen/logrus"
)

// LiveServer serves scoreboards and live feeds to viewers over HTTP.
type LiveServer struct {
	server     *http.Server
	port       int
	matches    handler.MatchReader
	subscriber broadcast.Subscriber
}

// NewLiveServer creates a new live feed server instance.
func NewLiveServer(port int, matches handler.MatchReader, subscriber broadcast.Subscriber) *LiveServer {
	return &LiveServer{
		port:       port,
		matches:    matches,
		subscriber: subscriber,
	}
}

// Setup builds the HTTP server around the live feed routes.
func (l *LiveServer) Setup() error {
	l.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", l.port),
		Handler:           handler.NewLiveFeed(l.matches, l.subscriber).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return nil
}

// Start begins serving viewers on the configured port.
func (l *LiveServer) Start(ctx context.Context) error {
	go func() {
		logrus.Infof("live feed server listening on port %d", l.port)
		if err := l.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("live feed server failed: %v", err)
		}
	}()
	return nil
}

// Shutdown stops accepting viewers. Open WebSockets are hijacked
// connections, so they end when the process exits.
func (l *LiveServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down live feed server...")
	if err := l.server.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("live feed server stopped")
	return nil
}
