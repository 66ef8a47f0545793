package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"fairaid-guardian/api"
	"fairaid-guardian/cache"
	"fairaid-guardian/config"
	"fairaid-guardian/database"
	"fairaid-guardian/guardian"
	"fairaid-guardian/llm"
)

// App represents the main application
type App struct {
	config   *config.Config
	db       *database.Database
	redis    *cache.RedisClient
	guardian *guardian.Guardian
}

// New creates a new application instance
func New(cfg *config.Config) *App {
	return &App{
		config: cfg,
	}
}

// Start wires the record source, cache, summarizer, and API server, then
// blocks until shutdown
func (a *App) Start() error {
	// 1. Record source
	source, err := a.buildSource()
	if err != nil {
		return err
	}

	// 2. Redis connection (optional: caching degrades to recomputation)
	fmt.Println("🧠 Connecting to Redis...")
	redisClient := cache.NewRedisClient(
		a.config.RedisHost,
		a.config.RedisPort,
		a.config.RedisPassword,
	)
	if redisClient == nil {
		fmt.Println("⚠️  Redis connection failed. Snapshot caching disabled.")
	} else {
		a.redis = redisClient
	}

	// 3. Guardian summarizer: rule-based always, LLM-backed when enabled
	rules := guardian.NewRuleBasedSummarizer(a.config.Fairness.FundingSkewPct)
	var summarizer guardian.Summarizer = rules
	if a.config.LLM.Enabled {
		llmClient := llm.NewClient(a.config.LLM.Endpoint, a.config.LLM.APIKey, a.config.LLM.Model)
		summarizer = guardian.NewCortexSummarizer(llmClient, rules)
		log.Printf("✅ Guardian LLM insights ENABLED (Model: %s)", a.config.LLM.Model)
	} else {
		log.Println("ℹ️  Guardian LLM insights DISABLED, using rule-based reports")
	}

	// 4. Pipeline
	a.guardian = guardian.NewGuardian(source, a.config.Fairness, summarizer, a.redis)

	// Warm the snapshot so the first dashboard request is served hot.
	// A failure here is only logged: a warehouse that is still being
	// provisioned should not keep the server from starting.
	if _, err := a.guardian.Refresh(context.Background()); err != nil {
		log.Printf("⚠️  Initial snapshot failed: %v", err)
	}

	// 5. API server
	server := api.NewServer(a.guardian, a.config.LLM.Enabled)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(a.config.APIPort)
	}()

	// Wait for shutdown signal or server failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		a.shutdown()
		return fmt.Errorf("API server stopped: %w", err)
	case sig := <-sigCh:
		log.Printf("📡 Received %v, shutting down...", sig)
		a.shutdown()
		return nil
	}
}

// buildSource constructs the configured record source, connecting to the
// warehouse when needed
func (a *App) buildSource() (guardian.RecordSource, error) {
	switch a.config.Source.Mode {
	case "warehouse":
		fmt.Println("🗄️  Connecting to database...")

		dbPort, err := strconv.Atoi(a.config.DatabasePort)
		if err != nil {
			return nil, fmt.Errorf("invalid database port: %w", err)
		}

		db, err := database.Connect(
			a.config.DatabaseHost,
			dbPort,
			a.config.DatabaseName,
			a.config.DatabaseUser,
			a.config.DatabasePassword,
		)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		a.db = db

		repo := database.NewBeneficiaryRepository(db)
		if err := repo.InitSchema(); err != nil {
			return nil, fmt.Errorf("schema initialization failed: %w", err)
		}

		if a.config.Source.SeedDemoData {
			if err := a.seedDemoData(repo); err != nil {
				return nil, fmt.Errorf("demo data seeding failed: %w", err)
			}
		}

		log.Println("✅ Warehouse record source ready")
		return guardian.NewWarehouseSource(repo), nil

	case "synthetic":
		log.Printf("✅ Synthetic record source ready (seed=%d, count=%d)",
			a.config.Source.Seed, a.config.Source.SyntheticCount)
		return guardian.NewSyntheticSource(a.config.Source.Seed, a.config.Source.SyntheticCount), nil

	default:
		return nil, fmt.Errorf("unknown source mode %q (expected synthetic or warehouse)", a.config.Source.Mode)
	}
}

// seedDemoData fills an empty warehouse table with the synthetic dataset so
// a fresh install has something to show
func (a *App) seedDemoData(repo *database.BeneficiaryRepository) error {
	count, err := repo.CountRecords()
	if err != nil {
		return err
	}
	if count > 0 {
		log.Printf("ℹ️  Warehouse already holds %d records, skipping demo seed", count)
		return nil
	}

	synthetic := guardian.NewSyntheticSource(a.config.Source.Seed, a.config.Source.SyntheticCount)
	records := synthetic.Generate()

	rows := make([]database.Beneficiary, len(records))
	for i, rec := range records {
		rows[i] = database.Beneficiary{
			BeneficiaryID:  rec.BeneficiaryID,
			Region:         rec.Region,
			AgeGroup:       rec.AgeGroup,
			Gender:         rec.Gender,
			AmountReceived: rec.AmountReceived,
			DateReceived:   rec.DateReceived,
		}
	}

	if err := repo.BatchSaveRecords(rows); err != nil {
		return err
	}
	log.Printf("✅ Seeded %d demo disbursement records", len(rows))
	return nil
}

func (a *App) shutdown() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("⚠️  Redis close failed: %v", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.Printf("⚠️  Database close failed: %v", err)
		}
	}
}
