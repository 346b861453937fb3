package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-fleet-keeper/internal/config"
	"github.com/MKhiriev/go-fleet-keeper/internal/handler"
	myGRPC "github.com/MKhiriev/go-fleet-keeper/internal/handler/grpc"
	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestNewServer_NothingConfigured(t *testing.T) {
	_, err := NewServer(&handler.Handlers{}, config.Server{}, logger.Nop())
	require.ErrorIs(t, err, errNoServersAreCreated)
}

func TestNewServer_BadGRPCAddress(t *testing.T) {
	handlers := &handler.Handlers{GRPC: myGRPC.NewHandler(&service.Services{}, logger.Nop())}

	_, err := NewServer(handlers, config.Server{GRPCAddress: "not-an-address"}, logger.Nop())
	require.Error(t, err)
}

func TestGRPCServer_ServesHealthAndStops(t *testing.T) {
	h := myGRPC.NewHandler(&service.Services{}, logger.Nop())
	require.NoError(t, h.UpdateStatus(context.Background(), func(context.Context) error { return nil }))

	srv, err := newGRPCServer(h, config.Server{GRPCAddress: "127.0.0.1:0"}, logger.Nop())
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		srv.RunServer()
		close(done)
	}()

	conn, err := grpc.NewClient(srv.gRPCNetListener.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	srv.Shutdown()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("gRPC server did not stop")
	}
}

func TestHTTPServer_AppliesRequestTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})

	srv := newHTTPServer(slow, config.Server{HTTPAddress: "127.0.0.1:0", RequestTimeout: 20 * time.Millisecond}, logger.Nop())

	rec := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "request timed out")

	// never started, so shutting down is a no-op
	srv.Shutdown()
}

func TestServer_RunStopsOnContextCancel(t *testing.T) {
	h := myGRPC.NewHandler(&service.Services{}, logger.Nop())
	grpcSrv, err := newGRPCServer(h, config.Server{GRPCAddress: "127.0.0.1:0"}, logger.Nop())
	require.NoError(t, err)

	s := &server{gRPCServer: grpcSrv, logger: logger.Nop()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
