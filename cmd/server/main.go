package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/taskify/taskify/internal/config"
	"github.com/taskify/taskify/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Mode == "debug" {
		logger.Init("debug")
	}

	svc := bootstrap(cfg)
	defer svc.shutdown()

	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	registerRoutes(r, cfg, svc)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	logger.Infof("Taskify listening on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("Server exited: %v", err)
	}
}
