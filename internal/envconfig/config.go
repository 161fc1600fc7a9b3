// Package envconfig provides centralized, environment-driven configuration
// for audio, telemetry and dashboard demo programs. No package in this
// module imports it, and this module contains no such demo programs. The
// core latchan package takes its configuration through
// Option/OneShotOption, not environment variables.
package envconfig

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load loads a .env file if one is present, falling back silently to
// whatever is already in the process environment. Safe to call even when
// no .env file exists.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("envconfig: no .env file found, using environment variables only")
	}
}

// AudioConfig controls the audio example's decode/playback pipeline.
type AudioConfig struct {
	FilePath   string
	Volume     float64
	SampleRate int
	RingSize   int
}

// DefaultAudio returns the audio example's default configuration.
func DefaultAudio() AudioConfig {
	return AudioConfig{
		FilePath:   "testdata/sample.ogg",
		Volume:     0.5,
		SampleRate: 44100,
		RingSize:   64,
	}
}

// AudioFromEnv overlays environment variable overrides onto DefaultAudio.
func AudioFromEnv() AudioConfig {
	cfg := DefaultAudio()
	if v := os.Getenv("LATCHAN_AUDIO_FILE"); v != "" {
		cfg.FilePath = v
	}
	if v := getEnvFloat("LATCHAN_AUDIO_VOLUME", -1); v >= 0 {
		cfg.Volume = v
	}
	if v := getEnvInt("LATCHAN_AUDIO_RING_SIZE", 0); v > 0 {
		cfg.RingSize = v
	}
	return cfg
}

// TelemetryConfig controls the telemetry example's paced producer and
// strip-chart renderer.
type TelemetryConfig struct {
	RingSize    int
	SampleRate  float64 // samples per second, rate-limited
	ChartWidth  int
	ChartHeight int
	ChartPath   string
}

// DefaultTelemetry returns the telemetry example's default configuration.
func DefaultTelemetry() TelemetryConfig {
	return TelemetryConfig{
		RingSize:    64,
		SampleRate:  50,
		ChartWidth:  640,
		ChartHeight: 240,
		ChartPath:   "telemetry.png",
	}
}

// TelemetryFromEnv overlays environment variable overrides onto
// DefaultTelemetry.
func TelemetryFromEnv() TelemetryConfig {
	cfg := DefaultTelemetry()
	if v := getEnvInt("LATCHAN_TELEMETRY_RING_SIZE", 0); v > 0 {
		cfg.RingSize = v
	}
	if v := getEnvFloat("LATCHAN_TELEMETRY_SAMPLE_RATE", 0); v > 0 {
		cfg.SampleRate = v
	}
	if v := os.Getenv("LATCHAN_TELEMETRY_CHART_PATH"); v != "" {
		cfg.ChartPath = v
	}
	return cfg
}

// DashboardConfig controls the dashboard example's HTTP server.
type DashboardConfig struct {
	Port            int
	AllowedOrigins  []string
	BroadcastPeriod int // milliseconds between websocket throughput samples
}

// DefaultDashboard returns the dashboard example's default configuration.
func DefaultDashboard() DashboardConfig {
	return DashboardConfig{
		Port:            8089,
		AllowedOrigins:  []string{"*"},
		BroadcastPeriod: 200,
	}
}

// DashboardFromEnv overlays environment variable overrides onto
// DefaultDashboard.
func DashboardFromEnv() DashboardConfig {
	cfg := DefaultDashboard()
	if p := getEnvInt("LATCHAN_DASHBOARD_PORT", 0); p > 0 {
		cfg.Port = p
	}
	if ms := getEnvInt("LATCHAN_DASHBOARD_BROADCAST_MS", 0); ms > 0 {
		cfg.BroadcastPeriod = ms
	}
	return cfg
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
