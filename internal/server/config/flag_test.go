package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseFlags_Overrides(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin",
		"-a", ":9999",
		"-d", "postgres://x",
		"-s", "flagsecret",
		"-t", "90",
		"-b", "flagbucket",
		"-l", "https://geo.example",
	}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":9999", cfg.EndpointAddr)
	assert.Equal(t, "postgres://x", cfg.DatabaseDSN)
	assert.Equal(t, "flagsecret", cfg.SecretKey)
	assert.Equal(t, 90*time.Minute, cfg.TokenValidityDuration)
	assert.Equal(t, "flagbucket", cfg.S3Bucket)
	assert.Equal(t, "https://geo.example", cfg.GeocoderBaseURL)
	// untouched flags keep defaults
	assert.Equal(t, "admin", cfg.S3RootUser)
}

func Test_parseFlags_IgnoresForeignFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-unknown", "x", "-a", ":7070"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddr)
}
