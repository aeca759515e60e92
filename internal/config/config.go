package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig содержит конфигурацию приложения
type AppConfig struct {
	ServerPort       string
	KafkaEnabled     bool
	KafkaBroker      string
	KafkaTopic       string
	GinMode          string
	WSAllowedOrigins []string
	Database         DatabaseConfig
	Logging          LoggerConfig
	Hardware         HardwareConfig
	Dispense         DispenseConfig
	Tracing          TracingConfig
}

// LoggerConfig содержит настройки логгера
type LoggerConfig struct {
	Enable     bool
	LogsDir    string
	Level      string
	SavingDays int
}

// DatabaseConfig содержит конфигурацию для подключения к базе данных
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	DBName   string
}

// HardwareConfig описывает драйвер GPIO и разводку насосов.
type HardwareConfig struct {
	Driver          string // periph | sim
	PumpMapFile     string
	PumpMap         string // "1:17:27,2:22:23" (id:valve:sensor)
	MasterValveLine int
	Pumps           PumpMapping
}

// DispenseConfig содержит параметры цикла дозирования.
type DispenseConfig struct {
	PollInterval   time.Duration
	PourTimeout    time.Duration
	SettleDelay    time.Duration
	MLPerPulse     float64
	MLPerUnit      float64
	ProgressStep   float64
	AbortOnFailure bool
}

// TracingConfig включает экспорт спанов OpenTelemetry.
type TracingConfig struct {
	Enabled     bool
	Output      string
	ServiceName string
}

// LoadConfiguration загружает конфигурацию из .env файла или переменных окружения
func LoadConfiguration() (*AppConfig, error) {
	_ = godotenv.Load()

	config := &AppConfig{
		ServerPort:       getEnv("APP_PORT", "5000"),
		KafkaEnabled:     getEnvAsBool("KAFKA_ENABLED", false),
		KafkaBroker:      getEnv("KAFKA_BROKER", "localhost:9092"),
		KafkaTopic:       getEnv("KAFKA_EVENTS_TOPIC", "velvetpour_events"),
		GinMode:          getEnv("GIN_MODE", "debug"),
		WSAllowedOrigins: getEnvAsList("WS_ALLOWED_ORIGINS", []string{"*"}),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Username: getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "root"),
			DBName:   getEnv("DB_NAME", "velvetpour"),
		},
		Logging: LoggerConfig{
			Enable:     getEnvAsBool("LOGGER_ENABLE", true),
			LogsDir:    getEnv("LOGGER_LOGS_DIR", "./logs"),
			Level:      getEnv("LOGGER_LOG_LEVEL", "DEBUG"),
			SavingDays: getEnvAsInt("LOGGER_SAVING_DAYS", 7),
		},
		Hardware: HardwareConfig{
			Driver:          strings.ToLower(getEnv("GPIO_DRIVER", "sim")),
			PumpMapFile:     getEnv("PUMP_MAP_FILE", ""),
			PumpMap:         getEnv("PUMP_MAP", ""),
			MasterValveLine: getEnvAsInt("MASTER_VALVE_LINE", 26),
		},
		Dispense: DispenseConfig{
			PollInterval:   getEnvAsMillis("FLOW_POLL_INTERVAL_MS", time.Millisecond),
			PourTimeout:    getEnvAsMillis("POUR_TIMEOUT_MS", 30*time.Second),
			SettleDelay:    getEnvAsMillis("SETTLE_DELAY_MS", 3*time.Second),
			MLPerPulse:     getEnvAsFloat("FLOW_ML_PER_PULSE", 2.22),
			MLPerUnit:      getEnvAsFloat("FLOW_ML_PER_UNIT", 29.5735),
			ProgressStep:   getEnvAsFloat("POUR_PROGRESS_STEP", 0.5),
			AbortOnFailure: getEnvAsBool("DISPENSE_ABORT_ON_FAILURE", false),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("TRACING_ENABLED", false),
			Output:      getEnv("TRACING_OUTPUT", ""),
			ServiceName: getEnv("TRACING_SERVICE_NAME", "velvetpour"),
		},
	}

	pumps, err := loadPumpMapping(&config.Hardware)
	if err != nil {
		return nil, fmt.Errorf("не удалось загрузить карту насосов: %w", err)
	}
	config.Hardware.Pumps = pumps

	return config, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(name string, defaultValue int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(name string, defaultValue float64) float64 {
	valueStr := getEnv(name, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil && value > 0 {
		return value
	}
	return defaultValue
}

func getEnvAsMillis(name string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil && value > 0 {
		return time.Duration(value) * time.Millisecond
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	val, _ := strconv.ParseBool(value)
	return val
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
