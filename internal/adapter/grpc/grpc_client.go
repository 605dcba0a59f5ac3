package grpc

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"os"
	"time"

	"github.com/aq2208/gorder-workflow/configs"
	"google.golang.org/grpc"
	"google.golang.org/grpc/backoff"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

var ErrBadCACert = errors.New("unable to parse CA cert")

// DialOptions turns the address_service config into dial options.
func DialOptions(cfg configs.AddressService) ([]grpc.DialOption, error) {
	connectTimeout := cfg.Timeout
	if connectTimeout <= 0 {
		connectTimeout = 5 * time.Second
	}

	// Base options
	opts := []grpc.DialOption{
		grpc.WithConnectParams(grpc.ConnectParams{
			Backoff: backoff.Config{
				BaseDelay:  200 * time.Millisecond,
				Multiplier: 1.6,
				Jitter:     0.2,
				MaxDelay:   5 * time.Second,
			},
			MinConnectTimeout: connectTimeout,
		}),
		grpc.WithDefaultServiceConfig(`{"loadBalancingPolicy":"round_robin"}`),
	}

	// Credentials
	if cfg.UseTLS {
		var creds credentials.TransportCredentials
		if cfg.CACertPath != "" {
			pem, err := os.ReadFile(cfg.CACertPath)
			if err != nil {
				return nil, err
			}
			pool := x509.NewCertPool()
			if ok := pool.AppendCertsFromPEM(pem); !ok {
				return nil, ErrBadCACert
			}
			tlsCfg := &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12}
			if cfg.ServerName != "" {
				tlsCfg.ServerName = cfg.ServerName
			}
			creds = credentials.NewTLS(tlsCfg)
		} else {
			// System CA
			creds = credentials.NewClientTLSFromCert(nil, cfg.ServerName)
		}
		opts = append(opts, grpc.WithTransportCredentials(creds))
	} else {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}

	// Size limits (optional)
	if cfg.MaxRecvBytes > 0 {
		opts = append(opts, grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(cfg.MaxRecvBytes)))
	}
	if cfg.MaxSendBytes > 0 {
		opts = append(opts, grpc.WithDefaultCallOptions(grpc.MaxCallSendMsgSize(cfg.MaxSendBytes)))
	}
	return opts, nil
}

// Dial creates a lazily connecting client for the address service.
// The caller owns the returned conn.
func Dial(cfg configs.AddressService, extra ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts, err := DialOptions(cfg)
	if err != nil {
		return nil, err
	}
	return grpc.NewClient(cfg.Target, append(opts, extra...)...)
}
