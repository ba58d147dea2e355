package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"holdem-table/internal/auth"
	"holdem-table/internal/gateway"
	"holdem-table/internal/ledger"
	"holdem-table/internal/lobby"
	"holdem-table/internal/presence"
	"holdem-table/internal/table"
)

func main() {
	authService, authMode, err := auth.NewServiceFromEnv()
	if err != nil {
		log.Fatalf("[Server] Failed to init auth service: %v", err)
	}
	defer authService.Close()
	ledgerService, ledgerMode, err := ledger.NewServiceFromEnv(authMode)
	if err != nil {
		log.Fatalf("[Server] Failed to init ledger service: %v", err)
	}
	defer ledgerService.Close()

	lby := lobby.New(tableConfigFromEnv(), ledgerService)
	defer lby.Shutdown()

	var notifier gateway.Notifier
	if p := presence.FromEnv(); p != nil {
		defer p.Close()
		notifier = p
	}
	gw := gateway.New(lby, authService, notifier)
	authHTTP := auth.NewHTTPHandler(authService)
	ledgerHTTP := ledger.NewHTTPHandler(authService, ledgerService)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", gw.HandleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	authHTTP.RegisterRoutes(mux)
	ledgerHTTP.RegisterRoutes(mux)

	addr := envOr("LISTEN_ADDR", ":8080")
	log.Printf("[Server] Auth mode: %s", authMode)
	log.Printf("[Server] Ledger mode: %s", ledgerMode)
	log.Printf("[Server] Starting WebSocket server on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("[Server] Failed to start: %v", err)
	}
}

func tableConfigFromEnv() table.Config {
	return table.Config{
		SmallBlind:    envInt64("TABLE_SMALL_BLIND", 50),
		BigBlind:      envInt64("TABLE_BIG_BLIND", 100),
		Ante:          envInt64("TABLE_ANTE", 0),
		BuyIn:         envInt64("TABLE_BUY_IN", 20000),
		Seats:         int(envInt64("TABLE_SEATS", 6)),
		ActionTimeout: envDuration("TABLE_ACTION_TIMEOUT", 30*time.Second),
		BotThinkDelay: envDuration("TABLE_BOT_THINK_DELAY", 2*time.Second),
		HandDelay:     envDuration("TABLE_HAND_DELAY", 5*time.Second),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("[Server] Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[Server] Invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
