package config

import (
	"intake-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "intake"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Minio: Minio{
			Port:       utils.GetEnvString("MINIO_PORT", "9000"),
			Host:       utils.GetEnvString("MINIO_HOST", "localhost"),
			Username:   utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password:   utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "intake-reports"),
			UseSSL:     utils.GetEnvBool("MINIO_USE_SSL", false),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "UTC"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeout:            utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
		},
		Intake: Intake{
			MinExplorationTurns:     utils.GetEnvInt("INTAKE_MIN_EXPLORATION_TURNS", 3),
			PauseExpiryInMinutes:    utils.GetEnvInt("INTAKE_PAUSE_EXPIRY_IN_MINUTES", 1440),
			SweepIntervalInSeconds:  utils.GetEnvInt("INTAKE_SWEEP_INTERVAL_IN_SECONDS", 60),
			StaleActiveAgeInMinutes: utils.GetEnvInt("INTAKE_STALE_ACTIVE_AGE_IN_MINUTES", 120),
			TurnTimeoutInSeconds:    utils.GetEnvInt("INTAKE_TURN_TIMEOUT_IN_SECONDS", 45),
			LockExpirationInSeconds: utils.GetEnvInt("INTAKE_LOCK_EXPIRATION_IN_SECONDS", 60),
			ReviewQueueName:         utils.GetEnvString("INTAKE_REVIEW_QUEUE_NAME", "report_review_queue"),
			ReportArchiveEnabled:    utils.GetEnvBool("INTAKE_REPORT_ARCHIVE_ENABLED", true),
		},
		Model: Model{
			APIKey:                utils.GetEnvString("MODEL_API_KEY", ""),
			ChatModel:             utils.GetEnvString("MODEL_CHAT_MODEL", "gpt-4o-mini"),
			TimeoutInSeconds:      utils.GetEnvInt("MODEL_TIMEOUT_IN_SECONDS", 30),
			RetryBackoffInSeconds: utils.GetEnvInt("MODEL_RETRY_BACKOFF_IN_SECONDS", 2),
			MaxCallsPerSecond:     utils.GetEnvFloat("MODEL_MAX_CALLS_PER_SECOND", 5),
			BurstSize:             utils.GetEnvInt("MODEL_BURST_SIZE", 10),
		},
		JWT: JWT{
			Secret: utils.GetEnvString("JWT_SECRET", "anyjwt"),
		},
	}
}
