package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB/broker connection), security settings
// - default: Values common across all environments (timeouts, intervals), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server ServerConfig
	DB     DBConfig
	Broker BrokerConfig
	Push   PushConfig
	Reaper ReaperConfig
	CORS   CORSConfig
	Log    LogConfig
	JWT    JWTConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type BrokerConfig struct {
	Brokers        []string      `envconfig:"KAFKA_BROKERS" required:"true"`
	Topic          string        `envconfig:"KAFKA_TOPIC" default:"tenant-notifications"`
	GroupID        string        `envconfig:"KAFKA_GROUP_ID" default:"notification-bridge"`
	PublishTimeout time.Duration `envconfig:"KAFKA_PUBLISH_TIMEOUT" default:"10s"`
}

type PushConfig struct {
	// SendBuffer is the per-connection outbound queue; a member that falls
	// this far behind is dropped rather than blocking the broadcast.
	SendBuffer   int           `envconfig:"PUSH_SEND_BUFFER" default:"64"`
	WriteTimeout time.Duration `envconfig:"PUSH_WRITE_TIMEOUT" default:"10s"`
	PingInterval time.Duration `envconfig:"PUSH_PING_INTERVAL" default:"54s"`
	PongTimeout  time.Duration `envconfig:"PUSH_PONG_TIMEOUT" default:"60s"`
}

type ReaperConfig struct {
	Interval time.Duration `envconfig:"REAPER_INTERVAL" default:"1h"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Broker: BrokerConfig{
			Brokers:        []string{"localhost:19092"},
			Topic:          "tenant-notifications-test",
			GroupID:        "notification-bridge-test",
			PublishTimeout: 2 * time.Second,
		},
		Push: PushConfig{
			SendBuffer:   8,
			WriteTimeout: time.Second,
			PingInterval: 54 * time.Second,
			PongTimeout:  60 * time.Second,
		},
		Reaper: ReaperConfig{
			Interval: time.Hour,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "24h",
		},
	}
}
