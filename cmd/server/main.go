package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"todo-service/internal/config"
	"todo-service/internal/logger"
	"todo-service/internal/server"

	"github.com/charmbracelet/log"
)

const defaultConfigFile = "config.yml"

func main() {
	configFile := flag.String("config", defaultConfigFile, "path to the YAML config file")
	flag.Parse()

	// Загружаем конфигурацию из файла
	appConfig, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Error initializing config: %v", err)
	}

	logger.Setup(appConfig.Logger)

	srv, err := server.NewServer(appConfig)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := srv.Initialize(); err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := srv.Start()

	// Ожидание сигнала или ошибки
	select {
	case err := <-errChan:
		log.Errorf("Server error: %v", err)
	case sig := <-sigChan:
		log.Infof("Received signal: %v. Starting graceful shutdown...", sig)
	}

	if err := srv.Shutdown(); err != nil {
		log.Errorf("Shutdown finished with error: %v", err)
		os.Exit(1)
	}

	log.Info("Todo Service stopped")
}
