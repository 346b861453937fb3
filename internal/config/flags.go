package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
)

// NetAddress is a host:port pair implementing flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses args into a config holding only the values given on the
// command line. Parsing stops at the first positional argument; the rest is
// returned unparsed.
//
// Flags:
//
//	-a            http listen address host:port
//	-grpc-address grpc listen address host:port
//	-d            database DSN
//	-db-driver    postgres | sqlite | memory
//	-c / -config  json config file path
//	-env          development | production | test
//	-log-level    zerolog level name
//	-session-duration sliding session window (e.g. "336h")
//	-login-path   login page path
//	-request-timeout  server request timeout
//	-server-url   base URL used by the client
//	-client-timeout   client request timeout
func parseFlags(args []string) (*StructuredConfig, []string, error) {
	fs := flag.NewFlagSet("fleet-keeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		serverAddress, grpcAddress NetAddress
		cfg                        StructuredConfig
	)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.Storage.DB.Driver, "db-driver", "", "Database driver")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.Environment, "env", "", "Deployment environment")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level")
	fs.DurationVar(&cfg.Auth.SessionDuration, "session-duration", 0, "Sliding session window")
	fs.StringVar(&cfg.Auth.LoginPath, "login-path", "", "Login page path")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&cfg.Adapter.BaseURL, "server-url", "", "Server base URL for the client")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "client-timeout", 0, "Client request timeout")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	cfg.Server.GRPCAddress = grpcAddress.String()

	return &cfg, fs.Args(), nil
}

// String returns host:port, or "" when nothing was set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses host:port. The host must be an IP address, "localhost" or
// empty (all interfaces).
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}

var _ flag.Value = (*NetAddress)(nil)
