package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		LogLevel string `koanf:"log_level"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout    time.Duration `koanf:"read_timeout"`
		WriteTimeout   time.Duration `koanf:"write_timeout"`
		IdleTimeout    time.Duration `koanf:"idle_timeout"`
		RequestTimeout time.Duration `koanf:"request_timeout"`
	} `koanf:"http"`

	Catalog struct {
		Driver          string        `koanf:"driver"` // mysql | sqlite
		DSN             string        `koanf:"dsn"`
		MaxOpenConns    int           `koanf:"max_open_conns"`
		MaxIdleConns    int           `koanf:"max_idle_conns"`
		ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	} `koanf:"catalog"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
		DB       int    `koanf:"db"`
	} `koanf:"redis"`

	Idempotency struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"idempotency"`

	AddressCache struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"address_cache"`

	Rabbit struct {
		URL             string `koanf:"url"`
		Exchange        string `koanf:"exchange"`
		PlaceOrderQueue string `koanf:"place_order_queue"`
		Prefetch        int    `koanf:"prefetch"`
	} `koanf:"rabbitmq"`

	Kafka struct {
		Brokers  []string `koanf:"brokers"`
		AckTopic string   `koanf:"ack_topic"`
	} `koanf:"kafka"`

	AddressService AddressService `koanf:"address_service"`

	Security Security `koanf:"security"`
}

type AddressService struct {
	Target       string        `koanf:"target"`
	Timeout      time.Duration `koanf:"timeout"`
	UseTLS       bool          `koanf:"use_tls"`
	CACertPath   string        `koanf:"ca_cert_path"`
	ServerName   string        `koanf:"server_name"`
	MaxRecvBytes int           `koanf:"max_recv_bytes"`
	MaxSendBytes int           `koanf:"max_send_bytes"`
}

type Security struct {
	JWTSecret string        `koanf:"jwt_secret"`
	Issuer    string        `koanf:"issuer"`
	Audience  string        `koanf:"audience"`
	TTL       time.Duration `koanf:"ttl"`
	Clients   []Client      `koanf:"clients"`
}

type Client struct {
	ID      string   `koanf:"id"`
	Secret  string   `koanf:"secret"`
	Perms   []string `koanf:"perms"`
	Enabled bool     `koanf:"enabled"`
}

func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")
	// 1) base
	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// 2) env override (dev/staging/prod). Optional: allow missing for local runs.
	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	// 3) environment variables override (prefix ORDERAPI_, nested with __)
	// e.g. ORDERAPI_CATALOG__DSN, ORDERAPI_SECURITY__JWT_SECRET
	if err := k.Load(env.Provider("ORDERAPI_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "ORDERAPI_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	if c.Catalog.DSN == "" {
		return fmt.Errorf("catalog.dsn required")
	}
	switch c.Catalog.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("catalog.driver %q not supported (mysql|sqlite)", c.Catalog.Driver)
	}
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("security.jwt_secret required")
	}
	return nil
}
