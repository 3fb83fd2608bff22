package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/chaguan/chaguan/internal/cache"
	"github.com/chaguan/chaguan/internal/coordinate"
	"github.com/chaguan/chaguan/internal/llm"
	"github.com/chaguan/chaguan/internal/logging"
	"github.com/chaguan/chaguan/internal/model"
	"github.com/chaguan/chaguan/internal/verify"
	"github.com/chaguan/chaguan/internal/worker"
)

// app wires the pieces every command needs: config, logger, cache,
// coordinator, and the service client for health checks.
type app struct {
	config      *model.Config
	log         *zap.Logger
	cache       *cache.VerificationCache
	history     *cache.History
	coordinator *coordinate.Coordinator
	client      *verify.Client
}

// loadConfig builds the effective configuration: defaults, then the
// config file, then CHAGUAN_* environment overrides.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if path := viper.ConfigFileUsed(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := viper.GetString("api_base_url"); v != "" {
		cfg.API.BaseURL = v
	}
	if cfg.LLM.Provider == "openai" && cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("find home directory: %w", err)
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = filepath.Join(home, ".chaguan", "cache")
	}
	if cfg.Cache.HistoryPath == "" {
		cfg.Cache.HistoryPath = filepath.Join(home, ".chaguan", "history.jsonl")
	}

	return cfg, nil
}

// newApp assembles the verification stack from configuration
func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := logging.New(verbose)

	var store cache.Store
	switch cfg.Cache.Backend {
	case "memory":
		store = cache.NewMemoryStore()
	case "disk", "":
		store = cache.NewDiskStore(cfg.Cache.Dir)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (supported: memory, disk)", cfg.Cache.Backend)
	}
	vc := cache.New(store, log)

	history := cache.NewHistory(cfg.Cache.HistoryPath)
	limiter := worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	client := verify.NewClient(cfg.API, cfg.HTTP, limiter, log)

	// An LLM provider, when configured, replaces the remote service as
	// the verification backend.
	var remote coordinate.Verifier = client
	if cfg.LLM.Provider != "" {
		provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			return nil, err
		}
		if provider != nil {
			remote = provider
		}
	}

	coordinator := coordinate.New(vc, remote, verify.NewOfflineVerifier(), coordinate.Options{
		TTL:     cfg.Cache.TTL,
		History: history,
	}, log)

	return &app{
		config:      cfg,
		log:         log,
		cache:       vc,
		history:     history,
		coordinator: coordinator,
		client:      client,
	}, nil
}

// close flushes buffered log output
func (a *app) close() {
	_ = a.log.Sync()
}
