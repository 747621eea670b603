package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/lologarithm/cydonia/reading"
	"gitlab.com/lologarithm/cydonia/stats"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
	assert.Equal(t, time.Duration(0), cfg.Refresh())
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"Host": ":9000",
		"DataURL": "http://api.internal:5000",
		"RefreshSeconds": 30,
		"LegacyVariance": true,
		"PropagateInvalid": true,
		"Locations": [{"ID": 7, "Name": "Mission Site Sigma"}],
		"Mailgun": {"APIKey": "key", "Domain": "mg.example.com", "Sender": "a@example.com", "Recipients": ["b@example.com"]}
	}`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Host)
	assert.Equal(t, 30*time.Second, cfg.Refresh())
	assert.Equal(t, 40, cfg.TableRows)
	assert.True(t, cfg.Mailgun.Enabled())

	c := cfg.Catalog()
	assert.Equal(t, "Mission Site Sigma", c.LocationName(reading.ID("7")))
	assert.Len(t, c.Sensors, 3)
	assert.Equal(t, stats.Options{Invalid: stats.PropagateInvalid, RoundedMeanVariance: true}, c.Stats)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(writeConfig(t, `{`))
	assert.ErrorContains(t, err, "parsing config")

	_, err = loadConfig(writeConfig(t, `{"Locations": []}`))
	assert.ErrorContains(t, err, "at least one location")

	_, err = loadConfig(writeConfig(t, `{"RefreshSeconds": -1}`))
	assert.ErrorContains(t, err, "RefreshSeconds")
}

func TestMailgunEnabled(t *testing.T) {
	assert.False(t, MailgunConfig{}.Enabled())
	assert.False(t, MailgunConfig{APIKey: "k", Domain: "d", Sender: "s"}.Enabled())
}
