package app

import (
	"context"
	"net/http"
	"time"

	"github.com/iwtcode/velvetpour/internal/adapters/handlers"
	"github.com/iwtcode/velvetpour/internal/adapters/observers"
	"github.com/iwtcode/velvetpour/internal/adapters/repositories/postgres"
	"github.com/iwtcode/velvetpour/internal/config"
	"github.com/iwtcode/velvetpour/internal/gpio"
	"github.com/iwtcode/velvetpour/internal/interfaces"
	"github.com/iwtcode/velvetpour/internal/middleware/logging"
	"github.com/iwtcode/velvetpour/internal/middleware/swagger"
	"github.com/iwtcode/velvetpour/internal/services/dispense_service"
	"github.com/iwtcode/velvetpour/internal/services/kafka"
	"github.com/iwtcode/velvetpour/internal/services/status_service"
	"github.com/iwtcode/velvetpour/internal/tracing"
	"github.com/iwtcode/velvetpour/internal/usecases"

	"go.uber.org/fx"
)

// New создает новый экземпляр fx.App
func New() *fx.App {
	return fx.New(
		ConfigModule,
		LoggingModule,
		RepositoryModule,
		ProducerModule,
		ObserverModule,
		ServiceModule,
		UsecaseModule,
		HttpServerModule,
	)
}

// --- Модули FX ---

var ConfigModule = fx.Module("config_module",
	fx.Provide(config.LoadConfiguration),
)

func ProvideLogger(cfg *config.AppConfig) *logging.Logger {
	loggerCfg := &logging.Config{
		Enabled:    cfg.Logging.Enable,
		Level:      cfg.Logging.Level,
		LogsDir:    cfg.Logging.LogsDir,
		SavingDays: uint(cfg.Logging.SavingDays),
	}
	return logging.NewLogger(loggerCfg, "VelvetPour")
}

var LoggingModule = fx.Module("logging_module",
	fx.Provide(ProvideLogger),
	fx.Invoke(InvokeTracing),
)

var RepositoryModule = fx.Module("repository_module",
	fx.Provide(postgres.NewRepository),
)

var ProducerModule = fx.Module("producer_module",
	fx.Provide(
		kafka.NewKafkaProducer,
		kafka.NewEventPublisher,
	),
)

var ObserverModule = fx.Module("observer_module",
	fx.Provide(
		observers.NewHub,
		ProvideEventPublisher,
		ProvideStatusService,
	),
	fx.Invoke(InvokeObservers),
)

var ServiceModule = fx.Module("service_module",
	fx.Provide(
		ProvideGPIODriver,
		dispense_service.NewDispenseService,
	),
	fx.Invoke(InvokeHardware),
)

var UsecaseModule = fx.Module("usecases_module",
	fx.Provide(usecases.NewUsecases),
)

var HttpServerModule = fx.Module("http_server_module",
	fx.Provide(
		NewSwaggerConfig,
		handlers.NewHandler,
		handlers.ProvideRouter,
	),
	fx.Invoke(InvokeHttpServer),
)

// NewSwaggerConfig создает конфигурацию для Swagger
func NewSwaggerConfig() *swagger.Config {
	return &swagger.Config{
		Enabled: true,
		Path:    "/swagger",
	}
}

// ProvideEventPublisher объединяет наблюдателей websocket и топик Kafka.
func ProvideEventPublisher(hub *observers.Hub, kafkaPub *kafka.EventPublisher) interfaces.EventPublisher {
	return status_service.FanOut{hub, kafkaPub}
}

func ProvideStatusService(publisher interfaces.EventPublisher, logger *logging.Logger) interfaces.StatusService {
	return status_service.NewStatusService(publisher, logger)
}

func ProvideGPIODriver(cfg *config.AppConfig, logger *logging.Logger) (gpio.Driver, error) {
	driver, err := gpio.New(cfg.Hardware.Driver)
	if err != nil {
		return nil, err
	}
	logger.Info("GPIO driver selected", "driver", driver.Name())
	return driver, nil
}

// InvokeTracing включает экспорт спанов, если он разрешен конфигурацией.
func InvokeTracing(lc fx.Lifecycle, cfg *config.AppConfig, logger *logging.Logger) {
	if !cfg.Tracing.Enabled {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Initializing tracing", "service", cfg.Tracing.ServiceName, "output", cfg.Tracing.Output)
			return tracing.Init(cfg.Tracing.ServiceName, cfg.Tracing.Output)
		},
		OnStop: func(ctx context.Context) error {
			return tracing.Shutdown(ctx)
		},
	})
}

// InvokeObservers закрывает наблюдателей и продюсер после остановки исполнителя.
func InvokeObservers(lc fx.Lifecycle, hub *observers.Hub, producer interfaces.KafkaService, logger *logging.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing observers...", "clients", hub.Clients())
			hub.Close()
			if err := producer.Close(); err != nil {
				logger.Warn("Failed to close Kafka producer", "error", err)
			}
			return nil
		},
	})
}

// InvokeHardware закрывает все клапаны при старте, запускает исполнителя
// и снова закрывает клапаны при остановке.
func InvokeHardware(lc fx.Lifecycle, svc interfaces.DispenseService, logger *logging.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Preparing dispense hardware...")
			if err := svc.SetupLines(); err != nil {
				logger.Error("FATAL: Failed to configure GPIO lines", "error", err)
				return err
			}
			svc.Start(context.Background())
			logger.Info("Dispense hardware ready", "pumps", len(svc.Pumps()))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping dispenser...")
			svc.Stop()
			if err := svc.ReleaseLines(); err != nil {
				logger.Error("Failed to release GPIO lines", "error", err)
				return err
			}
			return nil
		},
	})
}

// InvokeHttpServer запускает HTTP-сервер.
func InvokeHttpServer(lc fx.Lifecycle, cfg *config.AppConfig, h http.Handler, logger *logging.Logger) {
	serverAddr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     h,
		ReadTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("HTTP Server is starting", "address", serverAddr)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("Failed to start server", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server...")
			return server.Shutdown(ctx)
		},
	})
}
