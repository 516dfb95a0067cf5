package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/pkg/database"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	CORSOrigins   []string

	DB         DB
	IdentityDB DB
	JWT        JWT
	Redis      Redis
	Kafka      Kafka

	AdminEmail     string
	ShippingRates  map[string]decimal.Decimal
	UploadMaxBytes int64
}

type DB struct {
	database.Config
}

type JWT struct {
	Secret    string
	Issuer    string
	Audience  string
	AccessExp time.Duration
}

type Redis struct {
	Enabled    bool
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

type Kafka struct {
	Brokers []string
	Topic   string
}

func Load(log *zap.Logger) *Config {
	db := loadDB("DB", log)

	identityDB := db
	if _, ok := os.LookupEnv("IDENTITY_DB_HOST"); ok {
		identityDB = loadDB("IDENTITY_DB", log)
	}

	return &Config{
		Port:          getEnvDefault("APP_PORT", ":8080"),
		Env:           getEnvDefault("ENV", "production"),
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", log), "/"),
		CORSOrigins:   splitAndTrim(getEnvDefault("CORS_ORIGINS", "*")),
		DB:            db,
		IdentityDB:    identityDB,
		JWT: JWT{
			Secret:    getEnv("JWT_SECRET", log),
			Issuer:    getEnvDefault("JWT_ISSUER", "lasting-impressions"),
			Audience:  getEnvDefault("JWT_AUDIENCE", "lasting-impressions-web"),
			AccessExp: getEnvDuration("ACCESS_EXP", "7d", log),
		},
		Redis: LoadRedis(),
		Kafka: Kafka{
			Brokers: splitAndTrim(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnvDefault("KAFKA_TOPIC_EMAIL", "lasting.email"),
		},
		AdminEmail:     getEnvDefault("ADMIN_EMAIL", ""),
		ShippingRates:  parseRates(getEnvDefault("SHIPPING_RATES", ""), log),
		UploadMaxBytes: int64(atoiDefault(getEnvDefault("UPLOAD_MAX_BYTES", "10485760"), 10<<20)),
	}
}

// Notifier — настройки cmd/notifier: чтение топика писем и отправка через SMTP.
type Notifier struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	SMTPSSL      bool

	TMPLDir string

	KafkaBrokers []string
	KafkaGroupID string
	KafkaTopic   string
}

func LoadNotifier(log *zap.Logger) *Notifier {
	return &Notifier{
		SMTPHost:     getEnv("SMTP_HOST", log),
		SMTPPort:     getEnvInt("SMTP_PORT", log),
		SMTPUser:     getEnv("SMTP_USER", log),
		SMTPPassword: getEnv("SMTP_PASSWORD", log),
		SMTPFrom:     getEnv("SMTP_FROM", log),
		SMTPSSL:      getEnvDefault("SMTP_SSL", "true") == "true",
		TMPLDir:      getEnvDefault("TMPL_DIR", "templates"),
		KafkaBrokers: splitAndTrim(os.Getenv("KAFKA_BROKERS")),
		KafkaGroupID: getEnvDefault("KAFKA_GROUP_ID", "lasting-notifier"),
		KafkaTopic:   getEnvDefault("KAFKA_TOPIC_EMAIL", "lasting.email"),
	}
}

func LoadRedis() Redis {
	return Redis{
		Enabled:    getEnvDefault("REDIS_ENABLED", "false") == "true",
		Addr:       getEnvDefault("REDIS_ADDR", "localhost:6379"),
		Password:   getEnvDefault("REDIS_PASSWORD", ""),
		DB:         atoiDefault(getEnvDefault("REDIS_DB", "0"), 0),
		TTLSeconds: atoiDefault(getEnvDefault("CACHE_TTL_SECONDS", "60"), 60),
	}
}

// LoadDB читает только параметры подключения, для cmd/migrate и cmd/admin.
func LoadDB(log *zap.Logger) (DB, DB) {
	db := loadDB("DB", log)
	identityDB := db
	if _, ok := os.LookupEnv("IDENTITY_DB_HOST"); ok {
		identityDB = loadDB("IDENTITY_DB", log)
	}
	return db, identityDB
}

func loadDB(prefix string, log *zap.Logger) DB {
	return DB{
		Config: database.Config{
			Host:     getEnv(prefix+"_HOST", log),
			Port:     getEnv(prefix+"_PORT", log),
			User:     getEnv(prefix+"_USER", log),
			Password: getEnv(prefix+"_PASSWORD", log),
			Name:     getEnv(prefix+"_NAME", log),
			SSLMode:  getEnvDefault(prefix+"_SSLMODE", "disable"),
		},
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvInt(key string, log *zap.Logger) int {
	valStr := getEnv(key, log)
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Error("Ошибка преобразования переменной окружения в int", zap.String("key", key), zap.Error(err))
		panic("invalid int value for environment variable: " + key)
	}
	return val
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return def
}

// getEnvDuration: кривое или неположительное значение роняет старт.
func getEnvDuration(key, def string, log *zap.Logger) time.Duration {
	raw := getEnvDefault(key, def)
	d, err := parseDurationWithDays(raw)
	if err == nil && d <= 0 {
		err = fmt.Errorf("duration must be positive, got %q", raw)
	}
	if err != nil {
		log.Error("Ошибка парсинга длительности", zap.String("key", key), zap.Error(err))
		panic("invalid duration value for environment variable: " + key)
	}
	return d
}

// parseDurationWithDays понимает суффикс d поверх time.ParseDuration: "7d", "36h", "15m".
func parseDurationWithDays(s string) (time.Duration, error) {
	if days, ok := strings.CutSuffix(s, "d"); ok {
		d, err := time.ParseDuration(days + "h")
		if err != nil {
			return 0, err
		}
		return 24 * d, nil
	}
	return time.ParseDuration(s)
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}

// parseRates разбирает "standard:0,express:15.50" в таблицу стоимости доставки.
func parseRates(s string, log *zap.Logger) map[string]decimal.Decimal {
	rates := map[string]decimal.Decimal{}
	for _, pair := range splitAndTrim(s) {
		name, value, ok := strings.Cut(pair, ":")
		if !ok {
			log.Warn("skipping malformed shipping rate", zap.String("value", pair))
			continue
		}
		d, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil || d.IsNegative() {
			log.Warn("skipping invalid shipping rate", zap.String("value", pair))
			continue
		}
		rates[strings.ToLower(strings.TrimSpace(name))] = d
	}
	return rates
}
