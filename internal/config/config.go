package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	APIBaseURL  string
	WSBaseURL   string
	AccessToken string

	// Local transcript archive (embedded sqlite).
	ArchivePath string

	// Observer API listen address. Empty disables it.
	ObserverAddr string

	// Moderation trigger threshold: one suggestion request per this
	// many new arguments.
	ModerationThreshold int

	// Channel reconnect policy.
	ReconnectBase     time.Duration
	ReconnectCap      time.Duration
	ReconnectAttempts int

	HTTPTimeout time.Duration
}

func Load() Config {
	apiBase := os.Getenv("DEBATEHUB_API_URL")
	if apiBase == "" {
		apiBase = "http://localhost:8000/api/v1"
	}

	wsBase := os.Getenv("DEBATEHUB_WS_URL")
	if wsBase == "" {
		wsBase = "ws://localhost:8000/api/v1"
	}

	archivePath := os.Getenv("DEBATEHUB_ARCHIVE_PATH")
	if archivePath == "" {
		archivePath = "debatehub.db"
	}

	observerAddr := os.Getenv("DEBATEHUB_OBSERVER_ADDR")
	if observerAddr == "" {
		observerAddr = "127.0.0.1:7777"
	}

	threshold := 5
	if v := os.Getenv("DEBATEHUB_MODERATION_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			threshold = n
		}
	}

	reconnectBase := 500 * time.Millisecond
	if v := os.Getenv("DEBATEHUB_RECONNECT_BASE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			reconnectBase = time.Duration(n) * time.Millisecond
		}
	}

	reconnectCap := 15 * time.Second
	if v := os.Getenv("DEBATEHUB_RECONNECT_CAP_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			reconnectCap = time.Duration(n) * time.Millisecond
		}
	}

	reconnectAttempts := 8
	if v := os.Getenv("DEBATEHUB_RECONNECT_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			reconnectAttempts = n
		}
	}

	httpTimeout := 30 * time.Second
	if v := os.Getenv("DEBATEHUB_HTTP_TIMEOUT_S"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			httpTimeout = time.Duration(n) * time.Second
		}
	}

	return Config{
		APIBaseURL:  apiBase,
		WSBaseURL:   wsBase,
		AccessToken: os.Getenv("DEBATEHUB_ACCESS_TOKEN"),

		ArchivePath:  archivePath,
		ObserverAddr: observerAddr,

		ModerationThreshold: threshold,

		ReconnectBase:     reconnectBase,
		ReconnectCap:      reconnectCap,
		ReconnectAttempts: reconnectAttempts,

		HTTPTimeout: httpTimeout,
	}
}
