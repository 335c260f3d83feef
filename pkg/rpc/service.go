// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

// Package rpc defines the ScoringService gRPC contract. Messages are plain
// structs encoded with the JSON codec registered in this package.
package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "tennis.scoring.v1.ScoringService"

const (
	CreateMatchMethod = "/" + ServiceName + "/CreateMatch"
	AwardPointMethod  = "/" + ServiceName + "/AwardPoint"
	UndoPointMethod   = "/" + ServiceName + "/UndoPoint"
	GetMatchMethod    = "/" + ServiceName + "/GetMatch"
)

// ScoringServiceServer is the server API for ScoringService.
type ScoringServiceServer interface {
	CreateMatch(context.Context, *CreateMatchRequest) (*MatchResponse, error)
	AwardPoint(context.Context, *AwardPointRequest) (*MatchResponse, error)
	UndoPoint(context.Context, *UndoPointRequest) (*MatchResponse, error)
	GetMatch(context.Context, *GetMatchRequest) (*MatchResponse, error)
}

func RegisterScoringServiceServer(s grpc.ServiceRegistrar, srv ScoringServiceServer) {
	s.RegisterService(&ScoringServiceDesc, srv)
}

// ScoringServiceDesc is the grpc.ServiceDesc for ScoringService.
var ScoringServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ScoringServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateMatch",
			Handler: unaryHandler(CreateMatchMethod, func(srv ScoringServiceServer, ctx context.Context, in *CreateMatchRequest) (*MatchResponse, error) {
				return srv.CreateMatch(ctx, in)
			}),
		},
		{
			MethodName: "AwardPoint",
			Handler: unaryHandler(AwardPointMethod, func(srv ScoringServiceServer, ctx context.Context, in *AwardPointRequest) (*MatchResponse, error) {
				return srv.AwardPoint(ctx, in)
			}),
		},
		{
			MethodName: "UndoPoint",
			Handler: unaryHandler(UndoPointMethod, func(srv ScoringServiceServer, ctx context.Context, in *UndoPointRequest) (*MatchResponse, error) {
				return srv.UndoPoint(ctx, in)
			}),
		},
		{
			MethodName: "GetMatch",
			Handler: unaryHandler(GetMatchMethod, func(srv ScoringServiceServer, ctx context.Context, in *GetMatchRequest) (*MatchResponse, error) {
				return srv.GetMatch(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tennis/scoring/v1/scoring.json",
}

func unaryHandler[Req any](
	fullMethod string,
	call func(ScoringServiceServer, context.Context, *Req) (*MatchResponse, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ScoringServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ScoringServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ScoringServiceClient calls ScoringService over the JSON codec.
type ScoringServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewScoringServiceClient(cc grpc.ClientConnInterface) *ScoringServiceClient {
	return &ScoringServiceClient{cc: cc}
}

func (c *ScoringServiceClient) CreateMatch(ctx context.Context, in *CreateMatchRequest, opts ...grpc.CallOption) (*MatchResponse, error) {
	return c.invoke(ctx, CreateMatchMethod, in, opts)
}

func (c *ScoringServiceClient) AwardPoint(ctx context.Context, in *AwardPointRequest, opts ...grpc.CallOption) (*MatchResponse, error) {
	return c.invoke(ctx, AwardPointMethod, in, opts)
}

func (c *ScoringServiceClient) UndoPoint(ctx context.Context, in *UndoPointRequest, opts ...grpc.CallOption) (*MatchResponse, error) {
	return c.invoke(ctx, UndoPointMethod, in, opts)
}

func (c *ScoringServiceClient) GetMatch(ctx context.Context, in *GetMatchRequest, opts ...grpc.CallOption) (*MatchResponse, error) {
	return c.invoke(ctx, GetMatchMethod, in, opts)
}

func (c *ScoringServiceClient) invoke(ctx context.Context, method string, in any, opts []grpc.CallOption) (*MatchResponse, error) {
	out := new(MatchResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
