package config

import (
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "tooltip.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultPublishKey is the default object key for the stylesheet.
	DefaultPublishKey = "tooltip.css"

	// DefaultRegion is the default AWS region.
	DefaultRegion = "us-east-1"
)

// Config represents the complete tooltip.json configuration.
type Config struct {
	// Name is the project name shown in the demo page title.
	Name string `json:"name,omitempty"`

	// Server contains HTTP and WebSocket settings.
	Server ServerConfig `json:"server"`

	// Tooltip contains the defaults applied to demo tooltips.
	Tooltip TooltipConfig `json:"tooltip"`

	// Publish contains stylesheet upload settings.
	Publish PublishConfig `json:"publish,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// ReadTimeout bounds the wait for a client message (e.g., "60s").
	ReadTimeout Duration `json:"readTimeout,omitempty"`

	// WriteTimeout bounds a single WebSocket write.
	WriteTimeout Duration `json:"writeTimeout,omitempty"`

	// HeartbeatInterval is the time between WebSocket pings.
	HeartbeatInterval Duration `json:"heartbeatInterval,omitempty"`

	// ShutdownTimeout bounds graceful shutdown on interrupt.
	ShutdownTimeout Duration `json:"shutdownTimeout,omitempty"`

	// MaxEventQueue is the per-session dispatch queue size.
	MaxEventQueue int `json:"maxEventQueue,omitempty"`

	// Metrics exposes /metrics and records tooltip transitions.
	Metrics *bool `json:"metrics,omitempty"`

	// Tracing records OpenTelemetry spans for reveal cycles.
	Tracing *bool `json:"tracing,omitempty"`
}

// TooltipConfig holds defaults for rendered tooltips.
type TooltipConfig struct {
	// Delay is the reveal delay (e.g., "300ms"). Zero is allowed.
	Delay *Duration `json:"delay,omitempty"`

	// Position is top, bottom, left or right.
	Position string `json:"position,omitempty"`
}

// PublishConfig contains S3 upload settings.
type PublishConfig struct {
	Bucket   string `json:"bucket,omitempty"`
	Key      string `json:"key,omitempty"`
	Region   string `json:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

// Duration is a time.Duration encoded as a Go duration string.
type Duration time.Duration

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON accepts a duration string or a number of milliseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(v)
		return nil
	}
	var ms int64
	if err := json.Unmarshal(b, &ms); err != nil {
		return err
	}
	*d = Duration(time.Duration(ms) * time.Millisecond)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func boolPtr(b bool) *bool { return &b }

// New creates a new Config with default values.
func New() *Config {
	delay := Duration(tooltip.DefaultDelay)
	return &Config{
		Name: "tooltip",
		Server: ServerConfig{
			Host:              DefaultHost,
			Port:              DefaultPort,
			ReadTimeout:       Duration(60 * time.Second),
			WriteTimeout:      Duration(10 * time.Second),
			HeartbeatInterval: Duration(30 * time.Second),
			ShutdownTimeout:   Duration(10 * time.Second),
			MaxEventQueue:     256,
			Metrics:           boolPtr(true),
			Tracing:           boolPtr(true),
		},
		Tooltip: TooltipConfig{
			Delay:    &delay,
			Position: tooltip.PositionTop.String(),
		},
		Publish: PublishConfig{
			Key:    DefaultPublishKey,
			Region: DefaultRegion,
		},
	}
}

// Load reads configuration from the specified directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFromWorkingDir loads tooltip.json from the working directory.
// A missing file yields the defaults.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.New("E100").Wrap(err)
	}
	cfg, err := Load(wd)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E100").
			WithDetail("Could not read " + path).
			Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E101").
			WithDetail("Failed to parse " + path).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON").
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E101").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("E100").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := New()
	if c.Name == "" {
		c.Name = d.Name
	}
	if c.Server.Host == "" {
		c.Server.Host = d.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = d.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = d.Server.WriteTimeout
	}
	if c.Server.HeartbeatInterval == 0 {
		c.Server.HeartbeatInterval = d.Server.HeartbeatInterval
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}
	if c.Server.MaxEventQueue == 0 {
		c.Server.MaxEventQueue = d.Server.MaxEventQueue
	}
	if c.Server.Metrics == nil {
		c.Server.Metrics = d.Server.Metrics
	}
	if c.Server.Tracing == nil {
		c.Server.Tracing = d.Server.Tracing
	}
	if c.Tooltip.Delay == nil {
		c.Tooltip.Delay = d.Tooltip.Delay
	}
	if c.Tooltip.Position == "" {
		c.Tooltip.Position = d.Tooltip.Position
	}
	if c.Publish.Key == "" {
		c.Publish.Key = d.Publish.Key
	}
	if c.Publish.Region == "" {
		c.Publish.Region = d.Publish.Region
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E102").
			WithDetailf("Port %d is out of range", c.Server.Port).
			WithSuggestion("Use a port between 1 and 65535")
	}
	if _, err := tooltip.ParsePosition(c.Tooltip.Position); err != nil {
		return errors.New("E103").
			WithSuggestion("Set tooltip.position to top, bottom, left or right").
			Wrap(err)
	}
	if c.Tooltip.Delay != nil && *c.Tooltip.Delay < 0 {
		return errors.New("E104").
			WithDetailf("Delay %s is negative", c.Tooltip.Delay.Std())
	}
	for name, d := range map[string]Duration{
		"readTimeout":       c.Server.ReadTimeout,
		"writeTimeout":      c.Server.WriteTimeout,
		"heartbeatInterval": c.Server.HeartbeatInterval,
		"shutdownTimeout":   c.Server.ShutdownTimeout,
	} {
		if d < 0 {
			return errors.New("E105").WithDetailf("server.%s is %s", name, d.Std())
		}
	}
	return nil
}

// Address returns the host:port listen address.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// URL returns the base URL of the server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// TooltipDelay returns the configured reveal delay.
func (c *Config) TooltipDelay() time.Duration {
	if c.Tooltip.Delay == nil {
		return tooltip.DefaultDelay
	}
	return c.Tooltip.Delay.Std()
}

// TooltipPosition returns the configured anchor position, defaulting to top.
func (c *Config) TooltipPosition() tooltip.Position {
	p, err := tooltip.ParsePosition(c.Tooltip.Position)
	if err != nil {
		return tooltip.PositionTop
	}
	return p
}

// MetricsEnabled reports whether metrics are on.
func (c *Config) MetricsEnabled() bool {
	return c.Server.Metrics == nil || *c.Server.Metrics
}

// TracingEnabled reports whether tracing is on.
func (c *Config) TracingEnabled() bool {
	return c.Server.Tracing == nil || *c.Server.Tracing
}
