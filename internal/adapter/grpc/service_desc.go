package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The service speaks protobuf well-known types only, so no generated code is needed:
//
//	service GeohashService {
//	  // request: {"date": "YYYY-MM-DD", "graticule": "LAT,LON" (optional)}
//	  rpc GetGeohash(google.protobuf.Struct) returns (google.protobuf.Struct);
//	  rpc RollDice(google.protobuf.Empty) returns (google.protobuf.Int32Value);
//	}
const (
	ServiceName          = "geohash.v1.GeohashService"
	GetGeohashFullMethod = "/" + ServiceName + "/GetGeohash"
	RollDiceFullMethod   = "/" + ServiceName + "/RollDice"
)

// GeohashServiceServer is the server API for GeohashService
type GeohashServiceServer interface {
	GetGeohash(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RollDice(context.Context, *emptypb.Empty) (*wrapperspb.Int32Value, error)
}

// RegisterGeohashServiceServer registers srv on s
func RegisterGeohashServiceServer(s grpc.ServiceRegistrar, srv GeohashServiceServer) {
	s.RegisterService(&GeohashServiceDesc, srv)
}

func getGeohashHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GeohashServiceServer).GetGeohash(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetGeohashFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(GeohashServiceServer).GetGeohash(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func rollDiceHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GeohashServiceServer).RollDice(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: RollDiceFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(GeohashServiceServer).RollDice(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// GeohashServiceDesc is the grpc.ServiceDesc for GeohashService
var GeohashServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GeohashServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetGeohash",
			Handler:    getGeohashHandler,
		},
		{
			MethodName: "RollDice",
			Handler:    rollDiceHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "geohash/v1/geohash.proto",
}

// Client is a thin client for GeohashService
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a client over an established connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// GetGeohash calls GeohashService.GetGeohash
func (c *Client) GetGeohash(ctx context.Context, date, graticule string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	fields := map[string]any{"date": date}
	if graticule != "" {
		fields["graticule"] = graticule
	}
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}

	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetGeohashFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// RollDice calls GeohashService.RollDice
func (c *Client) RollDice(ctx context.Context, opts ...grpc.CallOption) (int32, error) {
	out := new(wrapperspb.Int32Value)
	if err := c.cc.Invoke(ctx, RollDiceFullMethod, new(emptypb.Empty), out, opts...); err != nil {
		return 0, err
	}
	return out.GetValue(), nil
}
