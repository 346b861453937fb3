// Package grpc is the gRPC transport of go-fleet-keeper. It serves the
// standard grpc.health.v1 service so orchestrators can probe the process.
package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/service"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ServiceName is the health-check name of the auth subsystem. The empty
// name reports the whole server and follows the same status.
const ServiceName = "fleetkeeper.Auth"

// Handler is the root gRPC transport handler.
type Handler struct {
	services *service.Services
	health   *health.Server

	logger *logger.Logger
}

// NewHandler returns a handler whose health status starts as NOT_SERVING
// until [Handler.UpdateStatus] confirms storage is reachable.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
	h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
	return h
}

// Register attaches the handler's services to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// UpdateStatus runs probe and reports SERVING on success.
func (h *Handler) UpdateStatus(ctx context.Context, probe func(context.Context) error) error {
	if err := probe(ctx); err != nil {
		h.logger.Err(err).Str("func", "*Handler.UpdateStatus").Msg("storage probe failed")
		h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
		return err
	}

	h.setStatus(healthpb.HealthCheckResponse_SERVING)
	return nil
}

// Shutdown flips every service to NOT_SERVING ahead of GracefulStop.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

func (h *Handler) setStatus(s healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", s)
	h.health.SetServingStatus(ServiceName, s)
}

// UnaryLogging logs one entry per unary call.
func (h *Handler) UnaryLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := next(ctx, req)

	var event *zerolog.Event
	if err != nil {
		event = h.logger.Warn().Err(err)
	} else {
		event = h.logger.Info()
	}
	event.Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}
