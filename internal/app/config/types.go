package config

type (
	InternalConfig struct {
		App    App
		Intake Intake
		Model  Model
		JWT    JWT
	}

	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		RabbitMQ RabbitMQ
		Minio    Minio
		Logger   Logger
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		EndpointPrefix             string
		Timezone                   string
		MaxRequests                int
		ShutdownTimeout            int
		RequestBodyLimitInMegabyte int
	}

	Intake struct {
		MinExplorationTurns     int
		PauseExpiryInMinutes    int
		SweepIntervalInSeconds  int
		StaleActiveAgeInMinutes int
		TurnTimeoutInSeconds    int
		LockExpirationInSeconds int
		ReviewQueueName         string
		ReportArchiveEnabled    bool
	}

	Model struct {
		APIKey                string
		ChatModel             string
		TimeoutInSeconds      int
		RetryBackoffInSeconds int
		MaxCallsPerSecond     float64
		BurstSize             int
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}

	Redis struct {
		Host     string
		Port     string
		Password string
	}

	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}

	Minio struct {
		Port       string
		Host       string
		Username   string
		Password   string
		BucketName string
		UseSSL     bool
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}

	JWT struct {
		Secret string
	}
)
