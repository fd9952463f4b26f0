// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	GRPCAuthAddress         string `yaml:"grpc_auth_address" env:"GRPC_AUTH_ADDRESS" env-default:"localhost:50051"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	RabbitMQ                `yaml:"rabbitmq"`
	SMTP                    `yaml:"smtp"`
	Sweep                   `yaml:"sweep"`
	Uploads                 `yaml:"uploads"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP   string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP   time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout   time.Duration `yaml:"idle_timeout" env-default:"60s"`
	CORSOrigins   []string      `yaml:"cors_origins" env:"CORS_ORIGIN" env-separator:","`
	BodyLimit     int64         `yaml:"body_limit" env-default:"16384"`
	RateLimit     int           `yaml:"rate_limit" env-default:"100"`
	RateWindow    time.Duration `yaml:"rate_window" env-default:"15m"`
	ShutdownAfter time.Duration `yaml:"shutdown_timeout" env-default:"15s"`
	// TrustProxy адрес клиента берется из X-Forwarded-For/X-Real-IP.
	// Включать только за доверенным прокси, который перезаписывает эти заголовки.
	TrustProxy    bool          `yaml:"trust_proxy" env:"HTTP_TRUST_PROXY"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// JWTToken структура для работы с jwt-токенами доступа и обновления
type JWTToken struct {
	JWTSecretKey     string        `yaml:"jwt_secret_key" env:"ACCESS_TOKEN_SECRET"`
	TokenTTL         time.Duration `yaml:"token_ttl" env:"ACCESS_TOKEN_EXPIRY" env-default:"24h"`
	RefreshSecretKey string        `yaml:"refresh_secret_key" env:"REFRESH_TOKEN_SECRET"`
	RefreshTTL       time.Duration `yaml:"refresh_ttl" env:"REFRESH_TOKEN_EXPIRY" env-default:"240h"`
}

// RabbitMQ структура для подключения к брокеру сообщений
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"url" env:"RABBITMQ_URL"`
	RabbitMQMaxRetries int           `yaml:"max_retries" env-default:"5"`
	RabbitMQRetryDelay time.Duration `yaml:"retry_delay" env-default:"3s"`
}

// SMTP структура для настройки почтового транспорта
type SMTP struct {
	SMTPHost string `yaml:"host" env:"SMTP_HOST"`
	SMTPPort string `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	SMTPUser string `yaml:"user" env:"EMAIL_USER"`
	SMTPPass string `yaml:"pass" env:"EMAIL_PASS"`
}

// Sweep структура для настройки ежедневной рассылки фотографий по истекшим QR-кодам
type Sweep struct {
	Schedule    string        `yaml:"schedule" env:"SWEEP_SCHEDULE" env-default:"0 0 * * *"`
	Notifier    string        `yaml:"notifier" env:"SWEEP_NOTIFIER" env-default:"queue"`
	SendTimeout time.Duration `yaml:"send_timeout" env-default:"30s"`
	LockTTL     time.Duration `yaml:"lock_ttl" env-default:"1h"`
	MetricsAddr string        `yaml:"metrics_address" env:"SWEEP_METRICS_ADDRESS" env-default:":9091"`
	RunOnStart  bool          `yaml:"run_on_start" env:"SWEEP_RUN_ON_START"`
}

// Uploads структура для настройки хранения загруженных файлов
type Uploads struct {
	UploadDir     string        `yaml:"dir" env:"UPLOAD_DIR" env-default:"./public/uploads"`
	PublicBaseURL string        `yaml:"public_base_url" env:"UPLOAD_PUBLIC_URL" env-default:"http://localhost:8080/static"`
	MaxUploadSize int64         `yaml:"max_size" env-default:"10485760"`
	UploadTimeout time.Duration `yaml:"timeout" env-default:"30s"`
}

// MustLoad функция для загрузки конфига из файла CONFIG_PATH,
// переменные окружения (в том числе из .env) перекрывают значения файла
func MustLoad() *Config {
	// .env не обязателен
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг по указанному пути и проверяет обязательные поля.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if cfg.Notifier != NotifierQueue && cfg.Notifier != NotifierSMTP {
		return nil, fmt.Errorf("%s: unknown sweep notifier %q", op, cfg.Notifier)
	}
	return &cfg, nil
}

const (
	// NotifierQueue дайджесты публикуются в RabbitMQ и отправляются сервисом sender.
	NotifierQueue = "queue"
	// NotifierSMTP дайджесты отправляются напрямую по SMTP.
	NotifierSMTP = "smtp"
)

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWTToken:\n"+
			"  TokenTTL: %s\n"+
			"  RefreshTTL: %s\n"+
			"Sweep:\n"+
			"  Schedule: %s\n"+
			"  Notifier: %s\n",
		c.Env,
		c.AddressRedis,
		c.DB,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.TokenTTL,
		c.RefreshTTL,
		c.Schedule,
		c.Notifier,
	)
}
