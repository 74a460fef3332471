package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"smarthome_gateway/internal/assistant"
	"smarthome_gateway/internal/devices"
	"smarthome_gateway/internal/handlers"
	"smarthome_gateway/internal/hub"
	"smarthome_gateway/internal/logger"
	"smarthome_gateway/internal/scheduler"
	"smarthome_gateway/internal/server"
	"smarthome_gateway/internal/service"
	"smarthome_gateway/internal/state"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log_level"))

	doors, err := doorTable()
	if err != nil {
		log.Fatalw("invalid door configuration", "err", err)
	}

	// wire dependencies
	store := state.NewStore(doors.IDs(), log)
	h := hub.NewHub(log.Named("hub"))
	store.SetNotifier(h)
	registry := devices.NewRegistry(log)
	router := devices.NewRouter(registry, log)

	// New dashboards get a full state snapshot on attach.
	h.SetSnapshotFunc(func() []hub.Event {
		snap := store.Snapshot()
		snap.Devices = registry.Devices()
		return []hub.Event{
			{Name: state.EvLights, Payload: snap.Lights},
			{Name: state.EvSensors, Payload: snap.Sensors},
			{Name: "esp32-devices", Payload: snap.Devices},
			{Name: "system-stats", Payload: snap.Statistics},
		}
	})

	ollamaCfg := ollamaConfig()
	services := service.NewService(service.Deps{
		Store:         store,
		Registry:      registry,
		Router:        router,
		Doors:         doors,
		Notifier:      h,
		Interpreter:   assistant.NewInterpreter(assistant.NewClient(ollamaCfg), doors, ollamaCfg.Timeout, log),
		Ollama:        assistant.NewClient(ollamaCfg),
		DefaultDevice: viper.GetString("gateway.default_device"),
		Log:           log,
	})
	apiHandler := handlers.NewHandler(services, h, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start the automation scheduler
	tick := viper.GetDuration("scheduler.tick")
	if tick <= 0 {
		tick = time.Minute
	}
	sched := scheduler.New(store, router, viper.GetString("gateway.default_device"), log.Named("scheduler"))
	go sched.Run(ctx, tick)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// doorTable builds the validated door layout from configuration.
func doorTable() (devices.DoorTable, error) {
	var cfgs []devices.DoorConfig
	if err := viper.UnmarshalKey("gateway.doors", &cfgs); err != nil {
		return devices.DoorTable{}, err
	}
	return devices.NewDoorTable(cfgs, viper.GetString("gateway.primary_door"))
}

// ollamaConfig reads the interpreter endpoint; environment variables win
// over the config file.
func ollamaConfig() assistant.Config {
	url := os.Getenv("OLLAMA_URL")
	if url == "" {
		url = viper.GetString("assistant.url")
	}
	model := os.Getenv("OLLAMA_MODEL")
	if model == "" {
		model = viper.GetString("assistant.model")
	}
	timeout := viper.GetDuration("assistant.timeout")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return assistant.Config{BaseURL: url, Model: model, Timeout: timeout}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "5000"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
