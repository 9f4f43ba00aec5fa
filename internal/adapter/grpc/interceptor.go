package grpc

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/simaogato/geohash-backend/internal/logger"
	"github.com/simaogato/geohash-backend/internal/metrics"
)

// RequestIDMetadataKey carries the request ID in both directions
const RequestIDMetadataKey = "x-request-id"

// RequestInterceptor returns a gRPC unary server interceptor that
// attaches a request ID to the context, echoes it back as a response header,
// and logs and counts every call by method and status code.
// m may be nil.
func RequestInterceptor(m *metrics.Metrics) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()

		requestID := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if ids := md.Get(RequestIDMetadataKey); len(ids) > 0 {
				requestID = ids[0]
			}
		}
		if requestID == "" {
			requestID = logger.NewRequestID()
		}
		ctx = logger.WithRequestID(ctx, requestID)

		// Best effort: fails only outside a real server transport (e.g. direct calls in tests)
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDMetadataKey, requestID))

		resp, err := handler(ctx, req)

		code := status.Code(err)
		if m != nil {
			m.RequestsTotal.WithLabelValues("grpc", info.FullMethod, code.String()).Inc()
		}

		attrs := append(logger.LogWithRequestID(ctx),
			slog.String("method", info.FullMethod),
			slog.String("code", code.String()),
			slog.Duration("duration", time.Since(start)),
		)
		if err != nil {
			attrs = append(attrs, slog.Any("error", err))
		}
		slog.InfoContext(ctx, "grpc request", attrs...)

		return resp, err
	}
}
