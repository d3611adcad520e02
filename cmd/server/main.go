// Package main - Entry point for the sub-assistant tower compute server
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/lcalmvr/sub-assistant-sub001/api"
	"github.com/lcalmvr/sub-assistant-sub001/internal/config"
	"github.com/lcalmvr/sub-assistant-sub001/internal/logging"
)

const version = "0.1.0"

func main() {
	addr := flag.String("addr", "", "bind address (overrides config)")
	cfgFile := flag.String("config", "", "config file path")
	flag.Parse()

	cfg := config.Get()
	if *cfgFile != "" {
		loaded, err := config.Load(*cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(loaded)
		cfg = loaded
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	listen := cfg.Server.Listen
	if *addr != "" {
		listen = *addr
	}

	server := api.NewServer(version, cfg)
	if err := server.ListenAndServe(listen); err != nil {
		logging.Fatal("server exited", zap.Error(err))
	}
}
