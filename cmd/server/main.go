package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"sitechat/internal/analysis"
	"sitechat/internal/api"
	"sitechat/internal/config"
	"sitechat/internal/fetch"
	"sitechat/internal/llm"
	"sitechat/internal/session"
)

func main() {
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	fetcher := fetch.NewClient(
		time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second,
		cfg.Fetch.UserAgent,
		cfg.Fetch.MaxSizeMB,
	)

	llmTimeout := time.Duration(cfg.LLM.TimeoutSeconds) * time.Second
	summarizer := llm.NewClient(cfg.APIKey, cfg.LLM.BaseURL, llm.Options{
		Model:       cfg.LLM.SummaryModel.Name,
		Temperature: cfg.LLM.SummaryModel.Temperature,
		MaxTokens:   cfg.LLM.SummaryModel.MaxTokens,
		MaxRetries:  cfg.LLM.MaxRetries,
		Timeout:     llmTimeout,
	})
	answerer := llm.NewClient(cfg.APIKey, cfg.LLM.BaseURL, llm.Options{
		Model:       cfg.LLM.ChatModel.Name,
		Temperature: cfg.LLM.ChatModel.Temperature,
		MaxTokens:   cfg.LLM.ChatModel.MaxTokens,
		MaxRetries:  cfg.LLM.MaxRetries,
		Timeout:     llmTimeout,
	})

	svc := analysis.NewService(fetcher, summarizer, answerer)

	ttl := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	var sessions session.Store
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		sessions = session.NewRedis(rdb, ttl)
		log.Printf("[Main] using redis session store at %s", cfg.Redis.Addr)
	} else {
		sessions = session.NewMemory(ttl)
		log.Printf("[Main] using in-memory session store")
	}

	r := api.SetupRouter(svc, sessions)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("[Main] starting server on %s (summary model %s, chat model %s)",
		addr, cfg.LLM.SummaryModel.Name, cfg.LLM.ChatModel.Name)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
