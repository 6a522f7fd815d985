package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hopkinsville/clock"
)

// ClockSource selects where pulses come from.
type ClockSource string

const (
	ClockExternal ClockSource = "external"
	ClockInternal ClockSource = "internal"
)

// MIDIConfig names the ports to use. Names match by case-insensitive
// substring.
type MIDIConfig struct {
	InputPort  string `json:"inputPort,omitempty"`
	OutputPort string `json:"outputPort,omitempty"`
	Channel    int    `json:"channel,omitempty"` // program channel, 1-16
	Thru       bool   `json:"thru"`              // forward transport downstream
}

// ClockConfig configures the pulse source.
type ClockConfig struct {
	Source ClockSource `json:"source"`
	Tempo  int         `json:"tempo,omitempty"`
}

// FieldsConfig holds the starting values of the editable fields.
type FieldsConfig struct {
	Root      int `json:"root"`
	Mode      int `json:"mode"`
	Direction int `json:"direction"`
	Range     int `json:"range"`
	Degree    int `json:"degree"`
}

// TimingConfig holds scheduler periods in milliseconds.
type TimingConfig struct {
	DisplayPoll    int `json:"displayPoll,omitempty"`
	UpdateEditable int `json:"updateEditable,omitempty"`
	DownbeatFlash  int `json:"downbeatFlash,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	MIDI   MIDIConfig   `json:"midi"`
	Clock  ClockConfig  `json:"clock"`
	Fields FieldsConfig `json:"fields"`
	Timing TimingConfig `json:"timing"`
}

// DefaultConfig returns the front-panel defaults: root A, major, arpeggio up.
func DefaultConfig() *Config {
	return &Config{
		MIDI: MIDIConfig{
			InputPort:  "",
			OutputPort: "",
			Channel:    1,
			Thru:       true,
		},
		Clock: ClockConfig{
			Source: ClockExternal,
			Tempo:  120,
		},
		Fields: FieldsConfig{
			Root: 9,
		},
		Timing: TimingConfig{
			DisplayPoll:    150,
			UpdateEditable: 140,
			DownbeatFlash:  10,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hopkinsville"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from the default path, or returns defaults if not
// found.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. Missing files yield defaults; missing
// keys keep their default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the config to the default path.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile normalizes the config and writes it to path, creating its
// directory.
func (c *Config) SaveFile(path string) error {
	c.normalize()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ChannelIndex returns the 0-based program channel.
func (c *Config) ChannelIndex() uint8 {
	return uint8(c.MIDI.Channel - 1)
}

// Internal reports whether the internal clock drives the pulses.
func (c *Config) Internal() bool {
	return c.Clock.Source == ClockInternal
}

func (t TimingConfig) DisplayPollInterval() time.Duration {
	return time.Duration(t.DisplayPoll) * time.Millisecond
}

func (t TimingConfig) UpdateEditableInterval() time.Duration {
	return time.Duration(t.UpdateEditable) * time.Millisecond
}

func (t TimingConfig) DownbeatFlashDuration() time.Duration {
	return time.Duration(t.DownbeatFlash) * time.Millisecond
}

// normalize replaces out-of-range values with defaults and clamps the
// tempo to the generator range.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.MIDI.Channel < 1 || c.MIDI.Channel > 16 {
		c.MIDI.Channel = def.MIDI.Channel
	}
	if c.Clock.Source != ClockInternal {
		c.Clock.Source = ClockExternal
	}
	switch {
	case c.Clock.Tempo <= 0:
		c.Clock.Tempo = def.Clock.Tempo
	case c.Clock.Tempo < clock.MinTempo:
		c.Clock.Tempo = clock.MinTempo
	case c.Clock.Tempo > clock.MaxTempo:
		c.Clock.Tempo = clock.MaxTempo
	}
	if c.Timing.DisplayPoll <= 0 {
		c.Timing.DisplayPoll = def.Timing.DisplayPoll
	}
	if c.Timing.UpdateEditable <= 0 {
		c.Timing.UpdateEditable = def.Timing.UpdateEditable
	}
	if c.Timing.DownbeatFlash <= 0 {
		c.Timing.DownbeatFlash = def.Timing.DownbeatFlash
	}
}
