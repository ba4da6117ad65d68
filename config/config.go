// Ininicializing common application configuration
package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	App       AppConfig       `mapstructure:"app"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Redis     RedisConfig     `mapstructure:"redis"`
}

type ServerConfig struct {
	AppVersion   string        `mapstructure:"app_version"`
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Idle_timeout time.Duration `mapstructure:"idle_timeout"`
	Env          string        `mapstructure:"environment"`
	Mode         string        `mapstructure:"mode"`
}

type AppConfig struct {
	FontPath       string `mapstructure:"font_path"`
	StoragePath    string `mapstructure:"storage_path"`
	MaxUploadMB    int64  `mapstructure:"max_upload_mb"`
	BaseURL        string `mapstructure:"base_url"`
	RenderWorkers  int    `mapstructure:"render_workers"`
	MaxImagePixels int    `mapstructure:"max_image_pixels"`
}

type GeneratorConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
	GroupID string   `mapstructure:"group_id"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

func LoadConfig(paths ...string) (*viper.Viper, error) {

	viperInstance := viper.New()

	if len(paths) == 0 {
		paths = []string{"./config"}
	}
	for _, path := range paths {
		viperInstance.AddConfigPath(path)
	}
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	setDefaults(viperInstance)

	// GEMINI_API_KEY and friends override the file
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()
	_ = viperInstance.BindEnv("generator.api_key", "GEMINI_API_KEY")
	_ = viperInstance.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	_ = viperInstance.BindEnv("redis.addr", "REDIS_ADDR")

	err := viperInstance.ReadInConfig()

	if err != nil {
		return nil, err
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		return nil, err
	}
	// KAFKA_BROKERS arrives as one comma separated string
	if len(c.Kafka.Brokers) == 1 && strings.Contains(c.Kafka.Brokers[0], ",") {
		c.Kafka.Brokers = strings.Split(c.Kafka.Brokers[0], ",")
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.app_version", "1.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.timeout", 120*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("app.storage_path", "./storage")
	v.SetDefault("app.max_upload_mb", 20)
	v.SetDefault("app.base_url", "http://localhost:8080")
	v.SetDefault("app.render_workers", 4)
	v.SetDefault("app.max_image_pixels", 40_000_000)

	v.SetDefault("generator.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("generator.model", "imagen-3.0-generate-002")
	v.SetDefault("generator.timeout", 90*time.Second)

	v.SetDefault("kafka.brokers", []string{"localhost:9094"})
	v.SetDefault("kafka.topic", "creative-render")
	v.SetDefault("kafka.group_id", "creative-render-service")

	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl", 24*time.Hour)
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
