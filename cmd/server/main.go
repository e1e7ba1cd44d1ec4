package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"voxelchunks/internal/commands"
	"voxelchunks/internal/config"
	"voxelchunks/internal/transport/ws"
)

func main() {
	var (
		cfgPath   = flag.String("config", "./configs/delchunks.yaml", "path to delchunks.yaml")
		addr      = flag.String("addr", "", "listen address (default: listen from config)")
		disableDB = flag.Bool("disable_db", false, "disable the sqlite script index")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if _, err := cfg.Dialect(); err != nil {
		// Not fatal: delchunks requests report it to the player.
		logger.Printf("shell_save_type: %v", err)
	}
	listen := strings.TrimSpace(*addr)
	if listen == "" {
		listen = cfg.Listen
	}

	recs, closers, err := openRecorders(cfg, *disableDB, logger)
	if err != nil {
		logger.Fatalf("open recorders: %v", err)
	}
	defer func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				logger.Printf("close: %v", err)
			}
		}
	}()

	cmds := commands.New(cfg, log.New(os.Stdout, "[commands] ", log.LstdFlags|log.Lmicroseconds), recs...)
	bridge := ws.NewServer(cmds, logger)

	mux := http.NewServeMux()
	mux.Handle("/v1/ws", bridge.Handler())
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
		_, _ = rw.Write([]byte("ok\n"))
	})

	srv := &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Printf("listening on %s", listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("listen: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	logger.Printf("shutdown complete")
}
