package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := Load(mapLookup(nil), "json")
	require.Equal(t, Config{
		BaseURL:        "https://router.huggingface.co/v1",
		Temperature:    0.6,
		MaxTokens:      200,
		MaxSentenceLen: 1000,
		LogLevel:       "info",
		LogFormat:      "json",
	}, cfg)
}

func TestLoad_Overrides(t *testing.T) {
	cfg := Load(mapLookup(map[string]string{
		"HF_TOKEN":                     " hf_abc ",
		"CHIRPIFY_TOKEN_PARAM":         "/chirpify/hf-token",
		"CHIRPIFY_BASE_URL":            "http://localhost:8080/v1",
		"CHIRPIFY_TEMPERATURE":         "0.2",
		"CHIRPIFY_MAX_TOKENS":          "64",
		"CHIRPIFY_MAX_SENTENCE_LENGTH": "280",
		"LOG_LEVEL":                    "DEBUG",
		"LOG_FORMAT":                   "Text",
	}), "json")
	require.Equal(t, "hf_abc", cfg.HFToken)
	require.Equal(t, "/chirpify/hf-token", cfg.TokenParam)
	require.Equal(t, "http://localhost:8080/v1", cfg.BaseURL)
	require.InDelta(t, 0.2, cfg.Temperature, 1e-6)
	require.Equal(t, 64, cfg.MaxTokens)
	require.Equal(t, 280, cfg.MaxSentenceLen)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_MalformedNumbersFallBack(t *testing.T) {
	cfg := Load(mapLookup(map[string]string{
		"CHIRPIFY_TEMPERATURE":         "warm",
		"CHIRPIFY_MAX_TOKENS":          "-5",
		"CHIRPIFY_MAX_SENTENCE_LENGTH": "lots",
	}), "text")
	require.InDelta(t, 0.6, cfg.Temperature, 1e-6)
	require.Equal(t, 200, cfg.MaxTokens)
	require.Equal(t, 1000, cfg.MaxSentenceLen)
}

func TestLoad_FromProcessEnvironment(t *testing.T) {
	t.Setenv("HF_TOKEN", "hf_env")
	t.Setenv("CHIRPIFY_MAX_TOKENS", "150")
	cfg := Load(os.LookupEnv, "text")
	require.Equal(t, "hf_env", cfg.HFToken)
	require.Equal(t, 150, cfg.MaxTokens)
}
