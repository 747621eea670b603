package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"gitlab.com/lologarithm/cydonia/sensor"
	"gitlab.com/lologarithm/cydonia/stats"
)

// Config is server configuration, read from a JSON file.
// Includes the data API location, what to chart, and Mailgun settings for
// warning emails when the data API fails.
type Config struct {
	Host             string
	DataURL          string
	RefreshSeconds   int
	TableRows        int
	LegacyVariance   bool // stdDev from the rounded mean, like the old dashboard
	PropagateInvalid bool // any bad value turns a sensor's stats into NaN
	Locations        []sensor.Location
	Sensors          []sensor.Sensor
	Mailgun          MailgunConfig
}

// MailgunConfig is the settings needed to use Mailgun for emails.
type MailgunConfig struct {
	APIKey     string
	Domain     string
	Sender     string
	Recipients []string
}

// Enabled reports whether enough is set to send mail.
func (mc MailgunConfig) Enabled() bool {
	return mc.APIKey != "" && mc.Domain != "" && mc.Sender != "" && len(mc.Recipients) > 0
}

func defaultConfig() Config {
	return Config{
		Host:      ":8080",
		DataURL:   "http://localhost:5000",
		TableRows: sensor.DefaultTableRows,
		Locations: append([]sensor.Location(nil), sensor.DefaultLocations...),
		Sensors:   append([]sensor.Sensor(nil), sensor.Defaults...),
	}
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("No config at %s, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.TableRows <= 0 {
		cfg.TableRows = sensor.DefaultTableRows
	}
	if len(cfg.Locations) == 0 {
		return cfg, fmt.Errorf("config %s: at least one location is required", path)
	}
	if cfg.RefreshSeconds < 0 {
		return cfg, fmt.Errorf("config %s: RefreshSeconds must not be negative", path)
	}
	return cfg, nil
}

// Catalog builds the dashboard catalog from the config.
func (c Config) Catalog() sensor.Catalog {
	opts := stats.Options{RoundedMeanVariance: c.LegacyVariance}
	if c.PropagateInvalid {
		opts.Invalid = stats.PropagateInvalid
	}
	return sensor.Catalog{
		Sensors:   c.Sensors,
		Locations: c.Locations,
		TableRows: c.TableRows,
		Stats:     opts,
	}
}

// Refresh is the polling interval, zero when polling is off.
func (c Config) Refresh() time.Duration {
	return time.Duration(c.RefreshSeconds) * time.Second
}
