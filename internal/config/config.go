package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	SourceSerial = "serial"
	SourceFile   = "file"
	SourceTCP    = "tcp"
	SourceSim    = "sim"
)

// Config holds all application configuration values.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Source  SourceConfig  `yaml:"source"`
	MQTT    MQTTConfig    `yaml:"mqtt"`
	Topics  TopicsConfig  `yaml:"topics"`
	NMEA    NMEAConfig    `yaml:"nmea"`
	Web     WebConfig     `yaml:"web"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// SourceConfig selects where the receiver byte stream comes from.
type SourceConfig struct {
	Kind string `yaml:"kind"`

	// serial
	SerialPort string `yaml:"serial_port"`
	BaudRate   int    `yaml:"baud_rate"`

	// file
	Path string `yaml:"path"`

	// tcp
	Addr        string        `yaml:"addr"`
	DialTimeout time.Duration `yaml:"dial_timeout"`

	// sim
	SimInterval time.Duration `yaml:"sim_interval"`

	// MaxPayload bounds the declared message_length; 0 keeps the reader default.
	MaxPayload int `yaml:"max_payload"`
}

type MQTTConfig struct {
	Broker          string        `yaml:"broker"`
	ClientIDGPS     string        `yaml:"client_id_gps"`
	ClientIDConsole string        `yaml:"client_id_console"`
	ClientIDWeb     string        `yaml:"client_id_web"`
	QoS             byte          `yaml:"qos"`
	Retain          bool          `yaml:"retain"`
	PublishTimeout  time.Duration `yaml:"publish_timeout"`
}

// TopicsConfig names the MQTT topics. An empty topic disables that stream.
type TopicsConfig struct {
	Position string `yaml:"position"`
	Status   string `yaml:"status"`
	Velocity string `yaml:"velocity"`
	TimeRef  string `yaml:"time_ref"`
	NMEA     string `yaml:"nmea"`
	Dropped  string `yaml:"dropped"`
}

type NMEAConfig struct {
	Enable bool `yaml:"enable"`
}

// MetricsConfig is the producer's prometheus listener. Empty Addr disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type WebConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// Package-level unexported variables for singleton pattern:
//   - globalConfig: only reachable through InitGlobal() and Get().
//   - configOnce: ensures InitGlobal() only runs once, even if called multiple times.
//   - configMu: write lock for initialization, read lock for Get().
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Default returns a configuration with every optional field filled in.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Source: SourceConfig{
			Kind:        SourceSerial,
			SerialPort:  "/dev/ttyUSB0",
			BaudRate:    115200,
			DialTimeout: 5 * time.Second,
			SimInterval: 100 * time.Millisecond,
		},
		MQTT: MQTTConfig{
			Broker:          "tcp://localhost:1883",
			ClientIDGPS:     "novatel-gps-producer",
			ClientIDConsole: "novatel-console",
			ClientIDWeb:     "novatel-web",
			PublishTimeout:  2 * time.Second,
		},
		Topics: TopicsConfig{
			Position: "novatel/gps/fix",
			Status:   "novatel/gps/status",
			Velocity: "novatel/gps/vel",
			NMEA:     "novatel/gps/nmea",
			Dropped:  "novatel/gps/dropped",
		},
		Web: WebConfig{
			Addr:        ":8080",
			CORSOrigins: []string{"*"},
		},
		Metrics: MetricsConfig{Addr: ":9102"},
	}
}

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default() and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	cfg.Source.Kind = strings.ToLower(strings.TrimSpace(cfg.Source.Kind))
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	switch c.Source.Kind {
	case SourceSerial:
		if c.Source.SerialPort == "" {
			return fmt.Errorf("source.serial_port is required")
		}
		if c.Source.BaudRate <= 0 {
			return fmt.Errorf("source.baud_rate must be > 0")
		}
	case SourceFile:
		if c.Source.Path == "" {
			return fmt.Errorf("source.path is required")
		}
	case SourceTCP:
		if c.Source.Addr == "" {
			return fmt.Errorf("source.addr is required")
		}
	case SourceSim:
		if c.Source.SimInterval <= 0 {
			return fmt.Errorf("source.sim_interval must be > 0")
		}
	default:
		return fmt.Errorf("source.kind %q is not one of serial, file, tcp, sim", c.Source.Kind)
	}
	if c.Source.MaxPayload < 0 {
		return fmt.Errorf("source.max_payload must be >= 0")
	}
	if c.MQTT.Broker == "" {
		return fmt.Errorf("mqtt.broker is required")
	}
	if c.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt.qos must be 0, 1 or 2")
	}
	if c.NMEA.Enable && c.Topics.NMEA == "" {
		return fmt.Errorf("topics.nmea is required when nmea.enable is set")
	}
	return nil
}

// InitGlobal initializes the global configuration from file.
// Uses sync.Once to ensure this only runs once, even if called multiple times.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
