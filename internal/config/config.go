package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/pinepoint/internal/domain/cue"
	"github.com/oshokin/pinepoint/internal/domain/face"
	"github.com/oshokin/pinepoint/internal/domain/schedule"
	"github.com/oshokin/pinepoint/internal/timetable"
)

// Config holds the watch-face settings.
type Config struct {
	// Boundaries overrides the compiled-in table of period ends, in minutes since midnight.
	Boundaries []int `yaml:"boundaries,omitempty"`
	// TimetableFile is an iCalendar file whose event ends become the boundaries.
	// It takes precedence over Boundaries.
	TimetableFile string `yaml:"timetable_file,omitempty"`
	// ClockFormat is the strftime layout of the digital clock.
	ClockFormat string `yaml:"clock_format"`
	// TimeZone is an IANA zone name, "Local" or "UTC".
	TimeZone string `yaml:"time_zone"`
	// InvertColors draws white on black instead of black on white.
	InvertColors bool `yaml:"invert_colors"`
	// Vibration tunes the cue pulse lengths.
	Vibration cue.Durations `yaml:"vibration"`
	// ServerAddress is the gRPC address of the face query service.
	ServerAddress string `yaml:"server_addr"`
	// Timeout is the duration for network operations and RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// MQTT configures the companion frame feed. An empty broker disables it.
	MQTT MQTT `yaml:"mqtt"`
	// Speaker plays cues as audio when no vibration motor is attached.
	Speaker Speaker `yaml:"speaker"`
}

// MQTT holds the broker settings of the companion feed.
type MQTT struct {
	BrokerAddress string `yaml:"broker_addr,omitempty"`
	Topic         string `yaml:"topic,omitempty"`
	ClientID      string `yaml:"client_id,omitempty"`
	Username      string `yaml:"username,omitempty"`
	Password      string `yaml:"password,omitempty"`
}

// Speaker holds the audio cue settings.
type Speaker struct {
	Enabled     bool `yaml:"enabled"`
	FrequencyHz int  `yaml:"frequency_hz,omitempty"`
	SampleRate  int  `yaml:"sample_rate,omitempty"`
}

const (
	// DefaultServerAddress is the default gRPC address of the face query service.
	DefaultServerAddress = "127.0.0.1:50061"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultTimeZone reads the clock in the host zone.
	DefaultTimeZone = "Local"

	// DefaultTopic is the MQTT topic frames are published to.
	DefaultTopic = "pinepoint/frame"

	// DefaultFrequencyHz is the speaker tone pitch.
	DefaultFrequencyHz = 440

	// DefaultSampleRate is the speaker sample rate.
	DefaultSampleRate = 44100

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errInvalidFrequency is returned for a speaker tone outside the audible range.
	errInvalidFrequency = errors.New("speaker frequency must be within 20-20000 Hz")
)

// Default returns the compiled-in settings.
func Default() *Config {
	cfg := new(Config)

	//nolint:errcheck // Defaults always validate.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates it.
// An empty path returns Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions: the file may carry broker credentials.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills in defaults.
func Validate(settings *Config) error {
	if settings.ClockFormat == "" {
		settings.ClockFormat = face.DefaultClockFormat
	}

	if settings.TimeZone == "" {
		settings.TimeZone = DefaultTimeZone
	}

	if _, err := settings.Location(); err != nil {
		return err
	}

	if len(settings.Boundaries) > 0 {
		if _, err := schedule.NewBoundaries(settings.Boundaries...); err != nil {
			return fmt.Errorf("invalid boundaries: %w", err)
		}
	}

	settings.Vibration = settings.Vibration.WithDefaults()

	if settings.ServerAddress == "" {
		settings.ServerAddress = DefaultServerAddress
	}

	if _, err := net.ResolveTCPAddr("tcp", settings.ServerAddress); err != nil {
		return fmt.Errorf("invalid server socket: %w", err)
	}

	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	if settings.MQTT.BrokerAddress != "" {
		if _, _, err := net.SplitHostPort(settings.MQTT.BrokerAddress); err != nil {
			return fmt.Errorf("invalid mqtt broker address: %w", err)
		}

		if settings.MQTT.Topic == "" {
			settings.MQTT.Topic = DefaultTopic
		}
	}

	if settings.Speaker.FrequencyHz == 0 {
		settings.Speaker.FrequencyHz = DefaultFrequencyHz
	}

	if settings.Speaker.FrequencyHz < 20 || settings.Speaker.FrequencyHz > 20000 {
		return errInvalidFrequency
	}

	if settings.Speaker.SampleRate <= 0 {
		settings.Speaker.SampleRate = DefaultSampleRate
	}

	return nil
}

// Location resolves the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	switch c.TimeZone {
	case "", DefaultTimeZone:
		return time.Local, nil
	default:
		loc, err := time.LoadLocation(c.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("load time zone %q: %w", c.TimeZone, err)
		}

		return loc, nil
	}
}

// Schedule returns the effective boundary table: the timetable import when a
// file is configured, the explicit boundaries otherwise, the compiled-in
// default when neither is set.
func (c *Config) Schedule() (schedule.Boundaries, error) {
	if c.TimetableFile != "" {
		loc, err := c.Location()
		if err != nil {
			return nil, err
		}

		boundaries, err := timetable.ImportFile(c.TimetableFile, loc)
		if err != nil {
			return nil, fmt.Errorf("import timetable: %w", err)
		}

		return boundaries, nil
	}

	if len(c.Boundaries) > 0 {
		return schedule.NewBoundaries(c.Boundaries...)
	}

	return schedule.DefaultBoundaries, nil
}

// Face builds the watch face described by the settings.
func (c *Config) Face() (*face.Face, error) {
	boundaries, err := c.Schedule()
	if err != nil {
		return nil, err
	}

	loc, err := c.Location()
	if err != nil {
		return nil, err
	}

	return face.New(
		face.WithBoundaries(boundaries),
		face.WithDurations(c.Vibration),
		face.WithClockFormat(c.ClockFormat),
		face.WithLocation(loc),
	), nil
}
