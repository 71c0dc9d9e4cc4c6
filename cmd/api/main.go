package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"pitchly/pkg/api/config"
	"pitchly/pkg/api/dashboard"
	"pitchly/pkg/api/model"
	"pitchly/pkg/api/peers"
	"pitchly/pkg/api/research"
	"pitchly/pkg/core/agent"
	"pitchly/pkg/core/analysis"
	"pitchly/pkg/core/fetch"
	"pitchly/pkg/core/prompt"
	"pitchly/pkg/core/refresh"
	"pitchly/pkg/core/store"
)

const defaultMarketDataURL = "https://flaskintrige.onrender.com/api"

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize Prompt Library
	// Determine resources path (relative to executable or working directory)
	resourcesPath := "resources"
	if _, err := os.Stat(resourcesPath); os.IsNotExist(err) {
		exePath, _ := os.Executable()
		resourcesPath = filepath.Join(filepath.Dir(exePath), "resources")
	}
	if err := prompt.LoadFromDirectory(resourcesPath); err != nil {
		fmt.Printf("[WARNING] Failed to load prompt library: %v\n", err)
		fmt.Println("  Falling back to hardcoded prompts")
	}

	// Agent manager from config
	agentCfg := agent.LoadConfig(filepath.Join("config", "models.yaml"))
	agentMgr := agent.NewManager(agentCfg)
	fmt.Printf("[AGENT] Active provider: %s\n", agentMgr.GetActiveProvider())

	// Optional database. Without DATABASE_URL the caches fall back to files.
	ctx := context.Background()
	var analysisRepo *store.AnalysisRepo
	if err := store.InitDB(ctx); err != nil {
		fmt.Printf("[WARNING] Database unavailable: %v\n", err)
		fmt.Println("  Using file-based caching only")
	} else {
		analysisRepo = store.NewAnalysisRepo()
		defer store.Close()
	}
	quoteCache := store.NewQuoteCache(store.GetPool(), "")

	// Market data client
	baseURL := os.Getenv("MARKET_DATA_URL")
	if baseURL == "" {
		baseURL = defaultMarketDataURL
	}
	client := fetch.NewClient(baseURL)
	fmt.Printf("[FETCH] Market data source: %s\n", baseURL)

	// Background price refresh for tracked tickers
	refresher := refresh.New(client)
	if err := refresher.Start(ctx, refresh.DefaultSchedule); err != nil {
		fmt.Printf("[WARNING] Price refresh scheduler failed to start: %v\n", err)
	} else {
		defer refresher.Stop()
	}

	engine := analysis.NewEngine(agentMgr)

	// Config endpoints
	configHandler := config.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// Dashboard endpoint
	dashboardHandler := dashboard.NewHandler(client, quoteCache, engine, refresher)
	http.HandleFunc("/api/dashboard", dashboardHandler.HandleDashboard)

	// Model recompute endpoints
	modelHandler := model.NewHandler(client, quoteCache)
	http.HandleFunc("/api/model/dcf", modelHandler.HandleDCF)
	http.HandleFunc("/api/model/lbo", modelHandler.HandleLBO)

	// Peer comparison export
	peersHandler := peers.NewHandler(client, quoteCache)
	http.HandleFunc("/api/peers/csv", peersHandler.HandleCSV)

	// AI research endpoints
	researchHandler := research.NewHandler(client, engine, analysisRepo)
	http.HandleFunc("/api/analysis", researchHandler.HandleAnalysis)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")
	fmt.Println("  - GET  /api/dashboard?ticker=TSLA")
	fmt.Println("  - POST /api/model/dcf")
	fmt.Println("  - POST /api/model/lbo")
	fmt.Println("  - GET  /api/peers/csv?ticker=TSLA")
	fmt.Println("  - POST /api/analysis")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
