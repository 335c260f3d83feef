// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"
	"net"

	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/common"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/handler"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/rpc"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/service"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// GRPCServer manages the gRPC server lifecycle.
type GRPCServer struct {
	server *grpc.Server
	health *health.Server
	port   int
	scorer *service.Scorer
}

// NewGRPCServer creates a new gRPC server instance.
func NewGRPCServer(port int, scorer *service.Scorer) *GRPCServer {
	return &GRPCServer{
		port:   port,
		scorer: scorer,
		health: health.NewServer(),
	}
}

// Setup configures interceptors and registers the scoring, health and
// reflection services.
func (s *GRPCServer) Setup() error {
	unaryInterceptors := []grpc.UnaryServerInterceptor{
		logging.UnaryServerInterceptor(common.InterceptorLogger(logrus.StandardLogger())),
	}
	streamInterceptors := []grpc.StreamServerInterceptor{
		logging.StreamServerInterceptor(common.InterceptorLogger(logrus.StandardLogger())),
	}

	s.server = grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(unaryInterceptors...),
		grpc.ChainStreamInterceptor(streamInterceptors...),
	)

	rpc.RegisterScoringServiceServer(s.server, handler.NewScoring(s.scorer))
	logrus.Infof("registered %s", rpc.ServiceName)

	reflection.Register(s.server)
	grpc_health_v1.RegisterHealthServer(s.server, s.health)
	logrus.Infof("gRPC reflection and health check enabled")

	return nil
}

// Health exposes the health server so its status can follow Redis.
func (s *GRPCServer) Health() *health.Server {
	return s.health
}

// Start begins listening and serving gRPC requests.
func (s *GRPCServer) Start(ctx context.Context) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.port, err)
	}

	go func() {
		logrus.Infof("gRPC server listening on port %d", s.port)
		if err := s.server.Serve(lis); err != nil {
			logrus.Fatalf("gRPC server failed: %v", err)
		}
	}()

	return nil
}

// Shutdown marks the service as not serving and gracefully stops the server.
func (s *GRPCServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down gRPC server...")
	s.health.Shutdown()
	s.server.GracefulStop()
	logrus.Info("gRPC server stopped")
	return nil
}
