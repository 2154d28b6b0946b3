// Package config reads process settings from the environment once at startup.
package config

import (
	"strconv"
	"strings"

	"chirpify/internal/integrations/huggingface"
)

const (
	defaultMaxSentenceLen = 1000
	defaultLogLevel       = "info"
)

// Config holds every setting. The token is secret and must not be logged.
type Config struct {
	HFToken        string
	TokenParam     string
	BaseURL        string
	Temperature    float32
	MaxTokens      int
	MaxSentenceLen int
	LogLevel       string
	LogFormat      string
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load builds a Config. Malformed numbers fall back to their defaults.
func Load(lookup LookupFunc, defaultLogFormat string) Config {
	return Config{
		HFToken:        str(lookup, "HF_TOKEN", ""),
		TokenParam:     str(lookup, "CHIRPIFY_TOKEN_PARAM", ""),
		BaseURL:        str(lookup, "CHIRPIFY_BASE_URL", huggingface.DefaultBaseURL),
		Temperature:    float(lookup, "CHIRPIFY_TEMPERATURE", huggingface.DefaultTemperature),
		MaxTokens:      integer(lookup, "CHIRPIFY_MAX_TOKENS", huggingface.DefaultMaxTokens),
		MaxSentenceLen: integer(lookup, "CHIRPIFY_MAX_SENTENCE_LENGTH", defaultMaxSentenceLen),
		LogLevel:       strings.ToLower(str(lookup, "LOG_LEVEL", defaultLogLevel)),
		LogFormat:      strings.ToLower(str(lookup, "LOG_FORMAT", defaultLogFormat)),
	}
}

func str(lookup LookupFunc, key, def string) string {
	v, ok := lookup(key)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return def
	}
	return v
}

func integer(lookup LookupFunc, key string, def int) int {
	v := str(lookup, key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func float(lookup LookupFunc, key string, def float32) float32 {
	v := str(lookup, key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil || f <= 0 {
		return def
	}
	return float32(f)
}
