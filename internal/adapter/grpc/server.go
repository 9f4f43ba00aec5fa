package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/simaogato/geohash-backend/internal/domain"
)

// diceRoll is chosen by fair dice roll, guaranteed to be random (xkcd #221)
const diceRoll = 4

// Geohasher computes the geohash of a raw date string
type Geohasher interface {
	Geohash(ctx context.Context, rawDate string) (*domain.GeohashResult, error)
}

// Server implements the GeohashService gRPC server
type Server struct {
	GeohashService Geohasher
}

// NewServer creates a new gRPC server instance
func NewServer(geohashService Geohasher) *Server {
	return &Server{
		GeohashService: geohashService,
	}
}

// GetGeohash handles the GetGeohash RPC
func (s *Server) GetGeohash(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	// Parse date (required string field)
	rawDate, err := stringField(req, "date", true)
	if err != nil {
		return nil, err
	}

	// Parse optional graticule before any lookup
	rawGraticule, err := stringField(req, "graticule", false)
	if err != nil {
		return nil, err
	}
	var graticule *domain.Graticule
	if rawGraticule != "" {
		g, err := domain.ParseGraticule(rawGraticule)
		if err != nil {
			return nil, mapError(err)
		}
		graticule = &g
	}

	// Call usecase service
	result, err := s.GeohashService.Geohash(ctx, rawDate)
	if err != nil {
		return nil, mapError(err)
	}

	// Build response. The opening travels as text: a protobuf number would drop trailing zeros.
	fields := map[string]*structpb.Value{
		"date":      structpb.NewStringValue(result.Date.String()),
		"opening":   structpb.NewStringValue(result.Opening.String()),
		"hash":      structpb.NewStringValue(result.Hash),
		"latOffset": structpb.NewNumberValue(result.LatOffset),
		"lonOffset": structpb.NewNumberValue(result.LonOffset),
	}
	if graticule != nil {
		c := result.Apply(*graticule)
		fields["graticule"] = structpb.NewStringValue(graticule.String())
		fields["lat"] = structpb.NewNumberValue(c.Lat)
		fields["lon"] = structpb.NewNumberValue(c.Lon)
	}

	return &structpb.Struct{Fields: fields}, nil
}

// RollDice handles the RollDice RPC. It never touches the geohash pipeline.
func (s *Server) RollDice(ctx context.Context, req *emptypb.Empty) (*wrapperspb.Int32Value, error) {
	return wrapperspb.Int32(diceRoll), nil
}

// stringField reads a string field from a request struct
func stringField(req *structpb.Struct, name string, required bool) (string, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		if required {
			return "", status.Errorf(codes.InvalidArgument, "%s is required", name)
		}
		return "", nil
	}

	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "%s must be a string", name)
	}
	if required && sv.StringValue == "" {
		return "", status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	return sv.StringValue, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return status.Errorf(codes.InvalidArgument, "%s", err)
	case errors.Is(err, domain.ErrNotFound):
		return status.Errorf(codes.NotFound, "%s", err)
	case errors.Is(err, domain.ErrUpstream):
		// Retryable by the caller
		return status.Errorf(codes.Unavailable, "%s", err)
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s", err)
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s", err)
	default:
		// Default to Internal error for unknown errors
		return status.Error(codes.Internal, "internal error")
	}
}
