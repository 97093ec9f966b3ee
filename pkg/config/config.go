package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Cache    CacheConfig
	Redis    RedisConfig
	SQLite   SQLiteConfig
	Chat     ChatConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  int
	WriteTimeout int
	BodyLimit    int
}

// UpstreamConfig points the offline gateway at the static site origin.
type UpstreamConfig struct {
	Origin     string
	TimeoutSec int
}

// CacheConfig drives the offline cache controller. Version is baked into the
// namespace names so bumping it invalidates every stale namespace on activate.
type CacheConfig struct {
	Backend       string
	Version       string
	CoreAssets    []string
	PrecachePages []string
	OfflinePath   string
	APIPrefix     string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type SQLiteConfig struct {
	Path string
}

type ChatConfig struct {
	Endpoint    string
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
	TimeoutSec  int
}

type LoggingConfig struct {
	Level      string
	Format     string
	OutputPath string
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/gemma3n-site")

	viper.SetEnvPrefix("GEMMA_SITE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.readTimeout", 30)
	viper.SetDefault("server.writeTimeout", 30)
	viper.SetDefault("server.bodyLimit", 1048576)

	viper.SetDefault("upstream.origin", "http://localhost:4321")
	viper.SetDefault("upstream.timeoutSec", 15)

	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.version", "v1")
	viper.SetDefault("cache.coreAssets", []string{"/", "/manifest.json", "/offline.html"})
	viper.SetDefault("cache.precachePages", []string{"/benchmarks", "/toolkit", "/blog", "/faq"})
	viper.SetDefault("cache.offlinePath", "/offline.html")
	viper.SetDefault("cache.apiPrefix", "/api/")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("sqlite.path", "./data/pagecache.db")

	viper.SetDefault("chat.model", "gemma-3n-e4b-it")
	viper.SetDefault("chat.temperature", 0.7)
	viper.SetDefault("chat.maxTokens", 512)
	viper.SetDefault("chat.timeoutSec", 30)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.outputPath", "stdout")
}
