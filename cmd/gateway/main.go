package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/lurelab/decoy/pkg/archive"
	"github.com/lurelab/decoy/pkg/classify"
	"github.com/lurelab/decoy/pkg/config"
	"github.com/lurelab/decoy/pkg/engage"
	"github.com/lurelab/decoy/pkg/intel"
	"github.com/lurelab/decoy/pkg/memory"
	"github.com/lurelab/decoy/pkg/persona"
	"github.com/lurelab/decoy/pkg/session"
)

const Version = "0.1.0"

// Gateway bundles the orchestrator with the components the HTTP layer
// needs direct access to (health reporting, shutdown).
type Gateway struct {
	orch      *engage.Orchestrator
	cfg       *config.Config
	memStore  *session.InMemoryStore // nil when sessions live in Redis
	prefilter *classify.Prefilter
	notifier  *engage.Notifier
	archive   *archive.Archive
	backends  map[string]string
}

// NewGateway wires every component from config. The classifier, memory
// service, session store and persona registry are required; prefilter,
// callback notifier and archive degrade to disabled when unconfigured
// or unreachable.
func NewGateway(cfg *config.Config) (*Gateway, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	cfg.MustValidate()

	g := &Gateway{cfg: cfg, backends: map[string]string{}}

	registry, err := persona.Load(cfg.PersonaFile)
	if err != nil {
		return nil, fmt.Errorf("loading persona registry: %w", err)
	}
	if cfg.PersonaFile != "" {
		log.Printf("[STARTUP] persona overrides loaded from %s", cfg.PersonaFile)
	}

	classifier := classify.NewClient(classify.Config{
		Provider:    classify.Provider(cfg.LLMProvider),
		APIKey:      cfg.LLMAPIKey,
		Model:       cfg.LLMModel,
		BaseURL:     cfg.LLMBaseURL,
		Temperature: cfg.LLMTemperature,
	})
	g.backends["classifier"] = string(cfg.LLMProvider)

	var mem memory.Service
	switch cfg.MemoryBackend {
	case config.MemoryMem0:
		mem = memory.NewMem0Client(cfg.Mem0APIKey, cfg.Mem0BaseURL)
		log.Println("[STARTUP] memory backend: mem0")
	default:
		local, err := memory.NewLocalStoreWithOllama(cfg.EmbeddingModel, cfg.OllamaURL)
		if err != nil {
			return nil, fmt.Errorf("initializing local memory store: %w", err)
		}
		mem = local
		log.Printf("[STARTUP] memory backend: local (embeddings via %s)", cfg.OllamaURL)
	}
	g.backends["memory"] = string(cfg.MemoryBackend)

	var store session.Store
	switch cfg.SessionBackend {
	case config.SessionRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store = session.NewRedisStore(client, cfg.SessionTTL)
		log.Printf("[STARTUP] session backend: redis (%s)", cfg.RedisAddr)
	default:
		g.memStore = session.NewInMemoryStore(session.WithMaxAge(cfg.SessionTTL))
		store = g.memStore
		log.Println("[STARTUP] session backend: in-memory")
	}
	g.backends["sessions"] = string(cfg.SessionBackend)

	var extractor *intel.Extractor
	if cfg.PhonePattern != "" || cfg.ScamKeywords != nil {
		extractor = intel.NewExtractor(intel.ExtractorConfig{
			PhonePattern: cfg.PhonePattern,
			Keywords:     cfg.ScamKeywords,
		})
		log.Println("[STARTUP] extractor: custom locale overrides")
	}

	if cfg.EnablePrefilter {
		g.prefilter = classify.NewPrefilterWithFallback(classify.PrefilterConfig{
			ModelPath:       cfg.PrefilterModelPath,
			OnnxLibraryPath: cfg.OnnxLibraryPath,
		})
	}
	if g.prefilter.IsReady() {
		log.Println("[STARTUP] local scam prefilter enabled")
	} else {
		log.Println("[STARTUP] local scam prefilter disabled")
	}

	if cfg.CallbackURL != "" {
		g.notifier = engage.NewNotifier(cfg.CallbackURL, cfg.CallbackMaxInflight)
		log.Printf("[STARTUP] completion callback: %s (max in-flight %d)", cfg.CallbackURL, cfg.CallbackMaxInflight)
	} else {
		log.Println("[STARTUP] completion callback disabled (no URL)")
	}

	if cfg.ArchiveDSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		arch, err := archive.New(ctx, cfg.ArchiveDSN)
		cancel()
		if err != nil {
			log.Printf("[STARTUP] report archive disabled (connect failed: %v)", err)
		} else {
			g.archive = arch
			log.Println("[STARTUP] report archive: postgres")
		}
	}

	g.orch, err = engage.New(engage.Config{
		Classifier: classifier,
		Memory:     mem,
		Store:      store,
		Registry:   registry,
		Extractor:  extractor,
		Prefilter:  g.prefilter,
		Notifier:   g.notifier,
		Archive:    g.archive,
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Close releases local resources. Safe on a partially built gateway.
func (g *Gateway) Close() {
	if g.memStore != nil {
		g.memStore.Close()
	}
	if g.prefilter != nil {
		_ = g.prefilter.Close()
	}
	if g.archive != nil {
		g.archive.Close()
	}
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err == nil {
		log.Println("[STARTUP] loaded .env")
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		runHTTPServer()
	case "engage":
		if len(os.Args) < 3 {
			fmt.Println("Usage: decoy engage <message>")
			os.Exit(1)
		}
		runCLIEngage(strings.Join(os.Args[2:], " "))
	case "version":
		fmt.Printf("decoy v%s\n", Version)
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("decoy v%s - scam honeypot engagement gateway\n\n", Version)
	fmt.Println("Usage:")
	fmt.Println("  decoy serve              Start the HTTP gateway")
	fmt.Println("  decoy engage <message>   Run a single engagement turn and print the verdict")
	fmt.Println("  decoy version            Show version")
	fmt.Println("")
	fmt.Println("Environment Variables:")
	fmt.Println("  DECOY_LISTEN_ADDR       HTTP listen address (default :8080)")
	fmt.Println("  DECOY_API_KEY           Shared secret for the x-api-key header")
	fmt.Println("  DECOY_LLM_PROVIDER      ollama, openrouter, groq or openai")
	fmt.Println("  DECOY_LLM_API_KEY       API key for cloud verdict providers")
	fmt.Println("  DECOY_MEMORY_BACKEND    mem0 or local (default local)")
	fmt.Println("  DECOY_SESSION_BACKEND   memory or redis (default memory)")
	fmt.Println("  DECOY_CALLBACK_URL      Completion report endpoint; empty disables")
	fmt.Println("  DECOY_ARCHIVE_DSN       Postgres DSN for the report archive; empty disables")
}

// ============================================================================
// HTTP Server Mode
// ============================================================================

// structuredRequest is the fixed calling convention used by external
// testing harnesses: the message is an object and the session id rides
// along with channel metadata.
type structuredRequest struct {
	SessionID string `json:"sessionId"`
	Message   struct {
		Sender    string `json:"sender"`
		Text      string `json:"text"`
		Timestamp string `json:"timestamp"`
	} `json:"message"`
	// ConversationHistory is accepted for wire-shape compatibility but
	// not read; conversational context comes from the memory service.
	ConversationHistory []json.RawMessage `json:"conversationHistory"`
	Metadata            struct {
		Channel  string `json:"channel"`
		Language string `json:"language"`
		Locale   string `json:"locale"`
	} `json:"metadata"`
}

func runHTTPServer() {
	cfg := config.NewDefaultConfig()
	gw, err := NewGateway(cfg)
	if err != nil {
		log.Fatalf("[STARTUP] %v", err)
	}
	defer gw.Close()

	app := fiber.New(fiber.Config{
		AppName: "decoy",
	})

	app.Get("/health", func(c fiber.Ctx) error {
		health := fiber.Map{
			"status":    "ok",
			"version":   Version,
			"backends":  gw.backends,
			"prefilter": gw.prefilter.IsReady(),
		}
		if gw.memStore != nil {
			health["sessions"] = gw.memStore.Stats()
		}
		if gw.notifier != nil {
			health["callback"] = gw.notifier.Stats()
		}
		return c.JSON(health)
	})

	// Rich convention: full per-turn verdict with intelligence.
	app.Post("/api/engage", func(c fiber.Ctx) error {
		var req engage.Request
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		resp, err := gw.orch.Engage(c.Context(), req)
		if err != nil {
			return engageError(c, err)
		}
		return c.JSON(resp)
	})

	// Structured convention: external-harness shape, shared-secret
	// protected, reduced response.
	app.Post("/api/honeypot", func(c fiber.Ctx) error {
		if cfg.APIKey != "" && c.Get("x-api-key") != cfg.APIKey {
			return c.Status(401).JSON(fiber.Map{"status": "error", "error": "invalid api key"})
		}

		var req structuredRequest
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"status": "error", "error": "invalid request body"})
		}

		resp, err := gw.orch.Engage(c.Context(), engage.Request{
			SessionKey: req.SessionID,
			Message:    req.Message.Text,
		})
		if err != nil {
			return engageError(c, err)
		}
		return c.JSON(fiber.Map{
			"status":             "success",
			"reply":              resp.Reply,
			"scamDetected":       resp.IsScam,
			"sessionId":          resp.SessionKey,
			"extractedEntities":  resp.Intelligence,
			"engagementComplete": resp.Status == session.StatusFinished,
		})
	})

	log.Printf("[STARTUP] decoy gateway listening on %s", cfg.ListenAddr)
	log.Printf("  GET  /health        - Health and backend status")
	log.Printf("  POST /api/engage    - Rich engagement turn")
	log.Printf("  POST /api/honeypot  - Structured harness convention")

	if err := app.Listen(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}

func engageError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, engage.ErrEmptyMessage):
		return c.Status(400).JSON(fiber.Map{"error": "message text is required"})
	case errors.Is(err, engage.ErrTurnFailed):
		return c.Status(502).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
}

// ============================================================================
// CLI Mode
// ============================================================================

func runCLIEngage(message string) {
	gw, err := NewGateway(config.NewDefaultConfig())
	if err != nil {
		log.Fatalf("[STARTUP] %v", err)
	}
	defer gw.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	resp, err := gw.orch.Engage(ctx, engage.Request{Message: message})
	if err != nil {
		log.Fatalf("engage failed: %v", err)
	}

	out, _ := json.MarshalIndent(resp, "", "  ")
	fmt.Println(string(out))
}
