package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/shortlist-dev/shortlister/internal/config"
	"github.com/shortlist-dev/shortlister/internal/logger"
	"github.com/shortlist-dev/shortlister/internal/router"
	"github.com/shortlist-dev/shortlister/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to setup dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.Storage.Cleanup()

	r := router.New(deps)

	port := cfg.Public.HTTPPort
	if port == 0 {
		port = 8080
	}

	logger.Log.Info("server started", "port", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), r); err != nil {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
