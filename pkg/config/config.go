// Package config centralizes environment-driven settings for the decoy
// gateway. Every setting can be configured via environment variables or
// programmatically.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// LLMProvider defines the backend verdict-model service type.
type LLMProvider string

const (
	ProviderOllama     LLMProvider = "ollama"     // Local Ollama server
	ProviderOpenRouter LLMProvider = "openrouter" // OpenRouter (default, has free tier)
	ProviderGroq       LLMProvider = "groq"       // Groq (high-speed inference)
	ProviderOpenAI     LLMProvider = "openai"     // Direct OpenAI API
)

// MemoryBackend selects where long-term intelligence lives.
type MemoryBackend string

const (
	MemoryMem0  MemoryBackend = "mem0"  // Hosted Mem0 service
	MemoryLocal MemoryBackend = "local" // In-process chromem-go store
)

// SessionBackend selects where per-engagement state lives.
type SessionBackend string

const (
	SessionMemory SessionBackend = "memory" // Single-node in-process store
	SessionRedis  SessionBackend = "redis"  // Redis, survives restarts
)

// Config holds global settings for the decoy gateway.
type Config struct {
	// === Core Settings ===
	ListenAddr string // HTTP listen address (default: ":8080")
	APIKey     string // Shared secret for the x-api-key header (required in production)

	// === Verdict Model Configuration ===
	LLMProvider    LLMProvider // Which service produces per-turn verdicts
	LLMAPIKey      string      // API key for cloud providers
	LLMModel       string      // Model identifier
	LLMBaseURL     string      // Custom base URL for self-hosted endpoints
	LLMTemperature float64     // Sampling temperature (default: 0.3)

	// === Memory Service ===
	MemoryBackend  MemoryBackend // "mem0" or "local"
	Mem0APIKey     string        // Mem0 API key (required for mem0 backend)
	Mem0BaseURL    string        // Mem0 endpoint override
	OllamaURL      string        // Ollama base URL for local embeddings
	EmbeddingModel string        // Embedding model for the local backend

	// === Session Management ===
	SessionBackend SessionBackend // "memory" or "redis"
	RedisAddr      string         // Redis address for the redis backend
	RedisPassword  string
	RedisDB        int
	SessionTTL     time.Duration // Idle TTL before a session expires (default: 1 hour)

	// === Completion Dispatch ===
	CallbackURL         string // Endpoint for completion reports; empty disables dispatch
	CallbackMaxInflight int    // Cap on concurrent report deliveries (default: 100)

	// === Report Archive ===
	ArchiveDSN string // Postgres DSN; empty disables the archive

	// === Personas & Extraction ===
	PersonaFile  string   // YAML override for personas/handbook; empty uses built-ins
	PhonePattern string   // Override for the phone extraction pattern
	ScamKeywords []string // Override for the keyword watchlist

	// === Local Prefilter ===
	EnablePrefilter    bool   // Load the on-box ONNX scam prefilter
	PrefilterModelPath string // Model directory (must contain model.onnx)
	OnnxLibraryPath    string // libonnxruntime directory; empty uses the Go backend
}

// NewDefaultConfig creates a Config from the environment with sensible
// defaults.
func NewDefaultConfig() *Config {
	return &Config{
		ListenAddr: GetEnv("DECOY_LISTEN_ADDR", ":8080"),
		APIKey:     GetEnv("DECOY_API_KEY", ""),

		LLMProvider:    detectLLMProvider(),
		LLMAPIKey:      GetEnv("DECOY_LLM_API_KEY", GetEnv("GROQ_API_KEY", os.Getenv("OPENROUTER_API_KEY"))),
		LLMModel:       GetEnv("DECOY_LLM_MODEL", ""),
		LLMBaseURL:     GetEnv("DECOY_LLM_BASE_URL", ""),
		LLMTemperature: GetEnvFloat("DECOY_LLM_TEMPERATURE", 0),

		MemoryBackend:  MemoryBackend(GetEnv("DECOY_MEMORY_BACKEND", string(MemoryLocal))),
		Mem0APIKey:     GetEnv("DECOY_MEM0_API_KEY", os.Getenv("MEM0_API_KEY")),
		Mem0BaseURL:    GetEnv("DECOY_MEM0_BASE_URL", ""),
		OllamaURL:      GetEnv("DECOY_OLLAMA_URL", "http://localhost:11434"),
		EmbeddingModel: GetEnv("DECOY_EMBEDDING_MODEL", "embeddinggemma"),

		SessionBackend: SessionBackend(GetEnv("DECOY_SESSION_BACKEND", string(SessionMemory))),
		RedisAddr:      GetEnv("DECOY_REDIS_ADDR", "localhost:6379"),
		RedisPassword:  GetEnv("DECOY_REDIS_PASSWORD", ""),
		RedisDB:        GetEnvInt("DECOY_REDIS_DB", 0),
		SessionTTL:     time.Duration(GetEnvInt("DECOY_SESSION_TTL_SECONDS", 3600)) * time.Second,

		CallbackURL:         GetEnv("DECOY_CALLBACK_URL", ""),
		CallbackMaxInflight: clampInt(GetEnvInt("DECOY_CALLBACK_MAX_INFLIGHT", 100), 1, 10000),

		ArchiveDSN: GetEnv("DECOY_ARCHIVE_DSN", ""),

		PersonaFile:  GetEnv("DECOY_PERSONA_FILE", ""),
		PhonePattern: GetEnv("DECOY_PHONE_PATTERN", ""),
		ScamKeywords: GetEnvSlice("DECOY_SCAM_KEYWORDS", nil),

		EnablePrefilter:    GetEnvBool("DECOY_ENABLE_PREFILTER", false),
		PrefilterModelPath: GetEnv("DECOY_PREFILTER_MODEL_PATH", "./models/scam-prefilter"),
		OnnxLibraryPath:    GetEnv("DECOY_ONNX_LIBRARY_PATH", ""),
	}
}

// NewLocalConfig creates a Config optimized for fully local operation:
// Ollama verdicts, in-process memory and sessions, no cloud keys.
func NewLocalConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.LLMProvider = ProviderOllama
	cfg.LLMBaseURL = "http://localhost:11434/v1"
	cfg.LLMAPIKey = "" // Not needed for Ollama
	cfg.MemoryBackend = MemoryLocal
	cfg.SessionBackend = SessionMemory
	return cfg
}

func detectLLMProvider() LLMProvider {
	// Check explicit provider setting first
	if p := os.Getenv("DECOY_LLM_PROVIDER"); p != "" {
		return LLMProvider(p)
	}
	// Auto-detect based on available keys
	if os.Getenv("GROQ_API_KEY") != "" {
		return ProviderGroq
	}
	if os.Getenv("OPENROUTER_API_KEY") != "" || os.Getenv("DECOY_LLM_API_KEY") != "" {
		return ProviderOpenRouter
	}
	if os.Getenv("OPENAI_API_KEY") != "" {
		return ProviderOpenAI
	}
	// Default to Ollama (local) if no cloud keys found
	return ProviderOllama
}

// clampInt ensures a value is within bounds
func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Helper functions for environment variable parsing.
// Exported for use by other packages.

// GetEnv returns the value of an environment variable or a default value.
func GetEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// GetEnvBool returns the boolean value of an environment variable or a default value.
func GetEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

// GetEnvFloat returns the float64 value of an environment variable or a default value.
func GetEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return defaultValue
}

// GetEnvInt returns the integer value of an environment variable or a default value.
func GetEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return defaultValue
}

// GetEnvSlice returns a comma-separated list from an environment variable or a default value.
func GetEnvSlice(key string, defaultValue []string) []string {
	if v := os.Getenv(key); v != "" {
		var parts []string
		for _, p := range strings.Split(v, ",") {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		if len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}

// RequiredSecret defines a required environment variable for startup validation.
type RequiredSecret struct {
	Name        string // Environment variable name
	Description string // Human-readable description
	Production  bool   // Required in production only (false = required always)
}

// CriticalSecrets returns the list of secrets required for the gateway to operate.
func CriticalSecrets() []RequiredSecret {
	return []RequiredSecret{
		{Name: "DECOY_API_KEY", Description: "shared secret for inbound x-api-key authentication", Production: true},
	}
}

// Validate checks that the configuration is internally consistent and
// that required secrets are present. In production mode missing secrets
// are fatal; in development they log warnings to allow local testing.
func (c *Config) Validate() error {
	env := strings.ToLower(os.Getenv("DECOY_ENV"))
	isProduction := env == "production" || env == "prod"

	var missing []string

	for _, secret := range CriticalSecrets() {
		if os.Getenv(secret.Name) != "" {
			continue
		}
		if secret.Production && !isProduction {
			log.Printf("[STARTUP] Warning: missing optional secret: %s (%s)", secret.Name, secret.Description)
			continue
		}
		missing = append(missing, secret.Name+" ("+secret.Description+")")
	}

	if c.MemoryBackend == MemoryMem0 && c.Mem0APIKey == "" {
		missing = append(missing, "DECOY_MEM0_API_KEY (required for the mem0 memory backend)")
	}

	switch c.MemoryBackend {
	case MemoryMem0, MemoryLocal:
	default:
		return fmt.Errorf("unknown memory backend %q", c.MemoryBackend)
	}
	switch c.SessionBackend {
	case SessionMemory, SessionRedis:
	default:
		return fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required secrets: %s", strings.Join(missing, ", "))
	}
	return nil
}

// MustValidate calls Validate and fatally exits if validation fails.
// Call this at startup before starting the server.
func (c *Config) MustValidate() {
	if err := c.Validate(); err != nil {
		log.Fatalf("[STARTUP] FATAL: configuration validation failed: %v", err)
	}
	log.Println("[STARTUP] Configuration validated successfully")
}
