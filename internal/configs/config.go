package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Бэкенды хранилища избранного
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
	StorageDynamoDB = "dynamodb"
)

type RESTConfig struct {
	Port           string
	AllowedOrigins []string
}

type CatalogConfig struct {
	Source    string // "", "embedded", путь, file:// или s3://bucket/key
	AWSRegion string
}

type FavouritesConfig struct {
	Storage string
	Dir     string

	DatabaseURL string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	DynamoDBTable string
	AWSRegion     string
}

type RabbitMQConfig struct {
	Enabled  bool
	URL      string
	Exchange string
}

type StdoutLogConfig struct {
	Level  string
	IsJSON bool
}

type FluentBitConfig struct {
	Enabled bool
	Host    string
	Port    int
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	Rest         RESTConfig
	Catalog      CatalogConfig
	Favourites   FavouritesConfig
	RabbitMQ     RabbitMQConfig
	StdoutLogger StdoutLogConfig
	FluentBit    FluentBitConfig
}

// LoadConfig читает .env (если он есть) и переменные окружения.
// Переменные окружения важнее значений из .env.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath...)
	} else {
		err = godotenv.Load()
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not load .env file (path: %v): %w", envPath, err)
	}

	cfg := &AppConfig{
		AppName: getEnvAsString("APP_NAME", "estate-agent-service"),
		Rest: RESTConfig{
			Port:           getEnvAsString("PORT", "8080"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		},
		Catalog: CatalogConfig{
			Source:    getEnvAsString("LISTINGS_SOURCE", ""),
			AWSRegion: getEnvAsString("AWS_REGION", "eu-west-2"),
		},
		Favourites: FavouritesConfig{
			Storage:        strings.ToLower(getEnvAsString("FAVOURITES_STORAGE", StorageFile)),
			Dir:            getEnvAsString("FAVOURITES_DIR", "./data"),
			DatabaseURL:    getEnvAsString("DATABASE_URL", ""),
			RedisAddr:      getEnvAsString("REDIS_ADDR", "localhost:6379"),
			RedisPassword:  getEnvAsString("REDIS_PASSWORD", ""),
			RedisDB:        getEnvAsInt("REDIS_DB", 0),
			RedisKeyPrefix: getEnvAsString("REDIS_KEY_PREFIX", "estate-agent:"),
			DynamoDBTable:  getEnvAsString("DYNAMODB_TABLE", ""),
			AWSRegion:      getEnvAsString("AWS_REGION", "eu-west-2"),
		},
		RabbitMQ: RabbitMQConfig{
			Enabled:  getEnvAsBool("RABBITMQ_ENABLED", false),
			URL:      getEnvAsString("RABBITMQ_URL", ""),
			Exchange: getEnvAsString("RABBITMQ_EXCHANGE", "estate_agent_exchange"),
		},
		StdoutLogger: StdoutLogConfig{
			Level:  getEnvAsString("STDOUT_LOG_LEVEL", "debug"),
			IsJSON: getEnvAsBool("STDOUT_LOG_JSON", false),
		},
		FluentBit: FluentBitConfig{
			Enabled: getEnvAsBool("FLUENTBIT_ENABLED", false),
			Host:    getEnvAsString("FLUENTBIT_HOST", ""),
			Port:    getEnvAsInt("FLUENTBIT_PORT", 24224),
			Level:   getEnvAsString("FLUENTBIT_LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет только настройки выбранных бэкендов.
func (c *AppConfig) Validate() error {
	switch c.Favourites.Storage {
	case StorageMemory:
	case StorageFile:
		if c.Favourites.Dir == "" {
			return fmt.Errorf("FAVOURITES_DIR is required for file storage")
		}
	case StoragePostgres:
		if c.Favourites.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for postgres storage")
		}
	case StorageRedis:
		if c.Favourites.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for redis storage")
		}
	case StorageDynamoDB:
		if c.Favourites.DynamoDBTable == "" {
			return fmt.Errorf("DYNAMODB_TABLE is required for dynamodb storage")
		}
	default:
		return fmt.Errorf("unknown FAVOURITES_STORAGE %q", c.Favourites.Storage)
	}

	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("RABBITMQ_URL is required when RABBITMQ_ENABLED is true")
	}
	if c.FluentBit.Enabled && c.FluentBit.Host == "" {
		return fmt.Errorf("FLUENTBIT_HOST is required when FLUENTBIT_ENABLED is true")
	}
	if _, err := strconv.Atoi(c.Rest.Port); err != nil {
		return fmt.Errorf("PORT must be a number, got %q", c.Rest.Port)
	}
	return nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную окружения как int или возвращает значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnvAsString(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr := getEnvAsString(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return defaultValue
}

// getEnvAsList - список через запятую, пустые элементы отбрасываются.
func getEnvAsList(key string, defaultValue []string) []string {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
