package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/lemonberrylabs/rpncalc/pkg/api"
	"github.com/lemonberrylabs/rpncalc/pkg/store"
	"github.com/lemonberrylabs/rpncalc/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the evaluation HTTP API",
	Args:  cobra.NoArgs,
	RunE:  serve,
}

func init() {
	serveCmd.Flags().Int("port", 0, "HTTP server port (default 8080, env PORT)")
	serveCmd.Flags().String("host", "", "Bind address (default 0.0.0.0, env HOST)")
	serveCmd.Flags().BoolP("quiet", "q", false, "Disable per-request access logging")
	serveCmd.Flags().Int("history-limit", 0, "Evaluations kept in memory (default 1000, env HISTORY_LIMIT)")
}

func serve(cmd *cobra.Command, args []string) error {
	port := envOrDefault("PORT", "8080")
	if v, _ := cmd.Flags().GetInt("port"); v != 0 {
		port = fmt.Sprintf("%d", v)
	}

	host := envOrDefault("HOST", "0.0.0.0")
	if v, _ := cmd.Flags().GetString("host"); v != "" {
		host = v
	}

	limit := historyLimit()
	if v, _ := cmd.Flags().GetInt("history-limit"); v != 0 {
		limit = v
	}

	addr := fmt.Sprintf("%s:%s", host, port)
	history := store.New(limit)
	quiet, _ := cmd.Flags().GetBool("quiet")
	server := api.New(history, api.Config{RequestLog: !quiet})
	web.New(history).Register(server.App())

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down rpncalc...")
		if err := server.Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.Printf("rpncalc listening on %s (history limit %d)", addr, limit)
	log.Printf("Web UI: http://%s/ui", addr)
	return server.Listen(addr)
}

// historyLimit reads HISTORY_LIMIT, falling back to the store default.
func historyLimit() int {
	v := envOrDefault("HISTORY_LIMIT", "")
	if v == "" {
		return store.DefaultLimit
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Warning: ignoring invalid HISTORY_LIMIT %q", v)
		return store.DefaultLimit
	}
	return n
}
