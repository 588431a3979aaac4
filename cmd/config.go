package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ConfigFileEnv names the optional TOML file read before the environment.
const ConfigFileEnv = "DISPATCH_CONFIG_FILE"

type HTTPConfig struct {
	Port            string        `toml:"port"`
	ShutdownTimeout time.Duration `toml:"shutdown-timeout"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Name     string `toml:"name"`
	SslMode  string `toml:"sslmode"`
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SslMode)
}

type TrackingConfig struct {
	Debounce time.Duration `toml:"debounce"`
	Interval time.Duration `toml:"interval"`
}

type RealtimeConfig struct {
	BufferSize   int           `toml:"buffer-size"`
	ReplaySize   int           `toml:"replay-size"`
	PollInterval time.Duration `toml:"poll-interval"`
}

type OutboxConfig struct {
	Schedule  string        `toml:"schedule"`
	Batch     int           `toml:"batch"`
	Retention time.Duration `toml:"retention"`
}

type AutoDispatchConfig struct {
	Enabled  bool    `toml:"enabled"`
	Schedule string  `toml:"schedule"`
	RadiusKm float64 `toml:"radius-km"`
}

// RedisConfig enables the cross-instance bus when Addr is set.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Channel  string `toml:"channel"`
}

// KafkaConfig enables the event log sink when Brokers is not empty.
type KafkaConfig struct {
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
	Version string   `toml:"version"`
}

// AMQPConfig enables the notification exchange sink when URL is set.
type AMQPConfig struct {
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt-secret"`
}

// SimulationConfig runs in-process trackers for the listed couriers, starting at the given
// point. It exists for demos and load checks; production couriers report from their app.
type SimulationConfig struct {
	Couriers  []string `toml:"couriers"`
	Latitude  float64  `toml:"latitude"`
	Longitude float64  `toml:"longitude"`
	StepKm    float64  `toml:"step-km"`
}

type Config struct {
	LogLevel     string             `toml:"log-level"`
	HTTP         HTTPConfig         `toml:"http"`
	DB           DBConfig           `toml:"db"`
	Tracking     TrackingConfig     `toml:"tracking"`
	Realtime     RealtimeConfig     `toml:"realtime"`
	Outbox       OutboxConfig       `toml:"outbox"`
	AutoDispatch AutoDispatchConfig `toml:"auto-dispatch"`
	Redis        RedisConfig        `toml:"redis"`
	Kafka        KafkaConfig        `toml:"kafka"`
	AMQP         AMQPConfig         `toml:"amqp"`
	Auth         AuthConfig         `toml:"auth"`
	Simulation   SimulationConfig   `toml:"simulation"`
}

func NewConfig() *Config {
	return &Config{
		LogLevel: "info",
		HTTP: HTTPConfig{
			Port:            "8080",
			ShutdownTimeout: 10 * time.Second,
		},
		DB: DBConfig{
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			Name:    "dispatch",
			SslMode: "disable",
		},
		Tracking: TrackingConfig{
			Debounce: 5 * time.Second,
			Interval: 10 * time.Second,
		},
		Realtime: RealtimeConfig{
			BufferSize:   64,
			ReplaySize:   256,
			PollInterval: 5 * time.Second,
		},
		Outbox: OutboxConfig{
			Schedule:  "@every 2s",
			Batch:     100,
			Retention: 24 * time.Hour,
		},
		AutoDispatch: AutoDispatchConfig{
			Schedule: "*/5 * * * * *",
			RadiusKm: 5,
		},
		Redis:      RedisConfig{Channel: "dispatch.events"},
		Kafka:      KafkaConfig{Topic: "dispatch.events"},
		AMQP:       AMQPConfig{Exchange: "dispatch.notifications"},
		Simulation: SimulationConfig{StepKm: 0.05},
	}
}

// LoadConfig builds the configuration from the defaults, the TOML file named by
// DISPATCH_CONFIG_FILE, the .env file and the process environment, later sources winning.
// Missing .env is not an error; a named but unreadable TOML file is.
func LoadConfig(envFiles ...string) (*Config, error) {
	cfg := NewConfig()

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errList []error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	list := func(key string, dst *[]string) {
		if v, ok := lookup(key); ok {
			*dst = splitList(v)
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errList = append(errList, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	float := func(key string, dst *float64) {
		if v, ok := lookup(key); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errList = append(errList, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = f
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errList = append(errList, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errList = append(errList, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}

	str("LOG_LEVEL", &c.LogLevel)
	str("HTTP_PORT", &c.HTTP.Port)
	duration("HTTP_SHUTDOWN_TIMEOUT", &c.HTTP.ShutdownTimeout)

	str("DB_HOST", &c.DB.Host)
	str("DB_PORT", &c.DB.Port)
	str("DB_USER", &c.DB.User)
	str("DB_PASSWORD", &c.DB.Password)
	str("DB_NAME", &c.DB.Name)
	str("DB_SSLMODE", &c.DB.SslMode)

	duration("LOCATION_DEBOUNCE", &c.Tracking.Debounce)
	duration("TRACKER_INTERVAL", &c.Tracking.Interval)

	num("REALTIME_BUFFER_SIZE", &c.Realtime.BufferSize)
	num("REALTIME_REPLAY_SIZE", &c.Realtime.ReplaySize)
	duration("REALTIME_POLL_INTERVAL", &c.Realtime.PollInterval)

	str("OUTBOX_SCHEDULE", &c.Outbox.Schedule)
	num("OUTBOX_BATCH", &c.Outbox.Batch)
	duration("OUTBOX_RETENTION", &c.Outbox.Retention)

	boolean("AUTO_DISPATCH_ENABLED", &c.AutoDispatch.Enabled)
	str("AUTO_DISPATCH_SCHEDULE", &c.AutoDispatch.Schedule)
	float("AUTO_DISPATCH_RADIUS_KM", &c.AutoDispatch.RadiusKm)

	str("REDIS_ADDR", &c.Redis.Addr)
	str("REDIS_PASSWORD", &c.Redis.Password)
	num("REDIS_DB", &c.Redis.DB)
	str("REDIS_CHANNEL", &c.Redis.Channel)

	list("KAFKA_BROKERS", &c.Kafka.Brokers)
	str("KAFKA_TOPIC", &c.Kafka.Topic)
	str("KAFKA_VERSION", &c.Kafka.Version)

	str("AMQP_URL", &c.AMQP.URL)
	str("AMQP_EXCHANGE", &c.AMQP.Exchange)

	str("JWT_SECRET", &c.Auth.JWTSecret)

	list("SIMULATION_COURIERS", &c.Simulation.Couriers)
	float("SIMULATION_LATITUDE", &c.Simulation.Latitude)
	float("SIMULATION_LONGITUDE", &c.Simulation.Longitude)
	float("SIMULATION_STEP_KM", &c.Simulation.StepKm)

	return errors.Join(errList...)
}

// SlogLevel maps LogLevel to a slog level; unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
