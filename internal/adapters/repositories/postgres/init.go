package postgres

import (
	"fmt"
	"time"

	"github.com/iwtcode/velvetpour/internal/adapters/repositories/postgres/bottle"
	"github.com/iwtcode/velvetpour/internal/adapters/repositories/postgres/drink"
	"github.com/iwtcode/velvetpour/internal/config"
	"github.com/iwtcode/velvetpour/internal/domain/entities"
	"github.com/iwtcode/velvetpour/internal/interfaces"
	"github.com/iwtcode/velvetpour/internal/middleware/logging"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Repository struct {
	interfaces.BottleRepository
	interfaces.DrinkRepository
}

func NewRepository(cfg *config.AppConfig, appLogger *logging.Logger) (interfaces.Repository, error) {
	// Шаг 1: Подключение к служебной БД 'postgres' для проверки и создания целевой БД
	dsnPostgres := fmt.Sprintf("host=%s user=%s password=%s dbname=postgres port=%s sslmode=disable",
		cfg.Database.Host,
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Port,
	)

	db, err := gorm.Open(postgres.Open(dsnPostgres), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к служебной БД 'postgres': %w", err)
	}

	// Шаг 2: Проверка существования нужной БД, при отсутствии - создание
	var exists bool
	query := "SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = ?)"
	if err := db.Raw(query, cfg.Database.DBName).Scan(&exists).Error; err != nil {
		return nil, fmt.Errorf("не удалось проверить существование БД '%s': %w", cfg.Database.DBName, err)
	}
	if !exists {
		appLogger.Info("Database not found. Creating...", "db_name", cfg.Database.DBName)
		if err := db.Exec(fmt.Sprintf("CREATE DATABASE %s", cfg.Database.DBName)).Error; err != nil {
			return nil, fmt.Errorf("не удалось создать БД '%s': %w", cfg.Database.DBName, err)
		}
	}

	sqlDB, _ := db.DB()
	_ = sqlDB.Close()

	// Шаг 3: Основное подключение к целевой базе данных
	dsnApp := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.Database.Host,
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.DBName,
		cfg.Database.Port,
	)

	appDb, err := gorm.Open(postgres.Open(dsnApp), &gorm.Config{Logger: newGormLogger(appLogger)})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных '%s': %w", cfg.Database.DBName, err)
	}

	if err := autoMigrate(appDb); err != nil {
		return nil, fmt.Errorf("ошибка выполнения автомиграций: %w", err)
	}

	return &Repository{
		BottleRepository: bottle.NewBottleRepository(appDb),
		DrinkRepository:  drink.NewDrinkRepository(appDb),
	}, nil
}

// gormWriter направляет сообщения gorm в общий логгер приложения.
// gorm пишет только предупреждения и ошибки, поэтому уровень Warn.
type gormWriter struct {
	entry *logrus.Entry
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.entry.Warnf(format, args...)
}

func newGormLogger(appLogger *logging.Logger) logger.Interface {
	return logger.New(
		gormWriter{entry: appLogger.Logrus().WithField("component", "[GORM]")},
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.Bottle{},
		&entities.BottleMounted{},
		&entities.Drink{},
		&entities.DrinkRel{},
	)
}
