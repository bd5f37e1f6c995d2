package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 2333
	defaultEnv        = "development"

	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "bankbot"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"

	defaultRedisHost = "localhost"
	defaultRedisPort = 6379
	defaultRedisDB   = 0

	defaultEmbeddingModel      = "text-embedding-3-large"
	defaultEmbeddingDimensions = 1024
	defaultEmbeddingCacheTTL   = 60 // minutes
	defaultAITimeoutSeconds    = 60
	defaultTopK                = 3
	defaultArchiveInterval     = 24 // hours
)

// rawAppConfig tolerates legacy flat keys alongside the nested layout.
type rawAppConfig struct {
	Port           int                   `yaml:"port"`
	Env            string                `yaml:"env"`
	DSN            string                `yaml:"dsn"`
	DatabaseURL    string                `yaml:"database_url"`
	Database       DatabaseRuntimeConfig `yaml:"database"`
	RedisURL       string                `yaml:"redis_url"`
	Redis          RedisRuntimeConfig    `yaml:"redis"`
	JWTSecret      string                `yaml:"jwt_secret"`
	JWTSecretAlias string                `yaml:"jwtsecret"`
	AllowedOrigins []string              `yaml:"allowed_origins"`
	AI             AIConfig              `yaml:"ai"`
	Retrieval      RetrievalConfig       `yaml:"retrieval"`
	Archive        ArchiveConfig         `yaml:"archive"`
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseRuntimeConfig{
			Host:      defaultDBHost,
			Port:      defaultDBPort,
			User:      defaultDBUser,
			Password:  defaultDBPassword,
			Name:      defaultDBName,
			Charset:   defaultDBCharset,
			ParseTime: true,
			Loc:       defaultDBLoc,
		},
		Redis: RedisRuntimeConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
			DB:   defaultRedisDB,
		},
		AI: AIConfig{
			Embedding: EmbeddingConfig{
				Model:           defaultEmbeddingModel,
				Dimensions:      defaultEmbeddingDimensions,
				CacheTTLMinutes: defaultEmbeddingCacheTTL,
			},
			TimeoutSeconds: defaultAITimeoutSeconds,
		},
		Retrieval: RetrievalConfig{TopK: defaultTopK},
		Archive:   ArchiveConfig{IntervalHours: defaultArchiveInterval},
	}
}

// Load reads and normalizes the YAML config file.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	cfg := defaultAppConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	raw := rawAppConfig{}
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}

	applyRawAppConfig(&cfg, raw)
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d in %q, expected 1-65535", cfg.Port, path)
	}
	if cfg.Database.Port < 1 || cfg.Database.Port > 65535 {
		return nil, fmt.Errorf("invalid database.port %d in %q, expected 1-65535", cfg.Database.Port, path)
	}
	if cfg.Redis.Port < 1 || cfg.Redis.Port > 65535 {
		return nil, fmt.Errorf("invalid redis.port %d in %q, expected 1-65535", cfg.Redis.Port, path)
	}
	if cfg.AI.Embedding.Dimensions != defaultEmbeddingDimensions {
		return nil, fmt.Errorf("invalid ai.embedding.dimensions %d in %q, the chunk store is built for %d",
			cfg.AI.Embedding.Dimensions, path, defaultEmbeddingDimensions)
	}
	if cfg.Retrieval.TopK < 1 {
		return nil, fmt.Errorf("invalid retrieval.top_k %d in %q, expected >= 1", cfg.Retrieval.TopK, path)
	}

	return &cfg, nil
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if env := strings.TrimSpace(raw.Env); env != "" {
		cfg.Env = strings.ToLower(env)
	}

	if dsn := strings.TrimSpace(raw.DSN); dsn != "" {
		cfg.DSN = dsn
	} else if dsn := strings.TrimSpace(raw.DatabaseURL); dsn != "" {
		cfg.DSN = dsn
	}
	mergeDatabase(&cfg.Database, raw.Database)
	if cfg.DSN == "" {
		cfg.DSN = cfg.Database.DSNValue()
	}

	if u := strings.TrimSpace(raw.RedisURL); u != "" {
		cfg.RedisURL = u
	}
	mergeRedis(&cfg.Redis, raw.Redis)
	if cfg.RedisURL == "" {
		cfg.RedisURL = cfg.Redis.URLValue()
	}

	if s := strings.TrimSpace(raw.JWTSecret); s != "" {
		cfg.JWTSecret = s
	} else if s := strings.TrimSpace(raw.JWTSecretAlias); s != "" {
		cfg.JWTSecret = s
	}
	if len(raw.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = raw.AllowedOrigins
	}

	mergeAI(&cfg.AI, raw.AI)
	if raw.Retrieval.TopK != 0 {
		cfg.Retrieval.TopK = raw.Retrieval.TopK
	}
	mergeArchive(&cfg.Archive, raw.Archive)
}

func mergeDatabase(dst *DatabaseRuntimeConfig, src DatabaseRuntimeConfig) {
	if src.DSN != "" {
		dst.DSN = src.DSN
	}
	if src.URL != "" {
		dst.URL = src.URL
	}
	if src.Host != "" {
		dst.Host = src.Host
	}
	if src.Port != 0 {
		dst.Port = src.Port
	}
	if src.User != "" {
		dst.User = src.User
	} else if src.Username != "" {
		dst.User = src.Username
	}
	if src.Password != "" {
		dst.Password = src.Password
	}
	if src.Name != "" {
		dst.Name = src.Name
	} else if src.DBName != "" {
		dst.Name = src.DBName
	}
	if src.Charset != "" {
		dst.Charset = src.Charset
	}
	if src.Loc != "" {
		dst.Loc = src.Loc
	}
	if len(src.Params) > 0 {
		dst.Params = src.Params
	}
}

func mergeRedis(dst *RedisRuntimeConfig, src RedisRuntimeConfig) {
	if src.URL != "" {
		dst.URL = src.URL
	}
	if src.Host != "" {
		dst.Host = src.Host
	}
	if src.Port != 0 {
		dst.Port = src.Port
	}
	if src.Username != "" {
		dst.Username = src.Username
	}
	if src.Password != "" {
		dst.Password = src.Password
	}
	if src.DB != 0 {
		dst.DB = src.DB
	}
	if src.TLS {
		dst.TLS = true
	}
	if src.Scheme != "" {
		dst.Scheme = src.Scheme
	}
	if len(src.Params) > 0 {
		dst.Params = src.Params
	}
}

func mergeAI(dst *AIConfig, src AIConfig) {
	if src.Provider.Type != "" {
		dst.Provider.Type = src.Provider.Type
	}
	if src.Provider.APIKey != "" {
		dst.Provider.APIKey = src.Provider.APIKey
	}
	if src.Provider.Endpoint != "" {
		dst.Provider.Endpoint = src.Provider.Endpoint
	}
	if src.Provider.DefaultModel != "" {
		dst.Provider.DefaultModel = src.Provider.DefaultModel
	}

	if src.Embedding.APIKey != "" {
		dst.Embedding.APIKey = src.Embedding.APIKey
	} else if dst.Embedding.APIKey == "" {
		// The embedding provider shares the generative key unless overridden.
		dst.Embedding.APIKey = dst.Provider.APIKey
	}
	if src.Embedding.Endpoint != "" {
		dst.Embedding.Endpoint = src.Embedding.Endpoint
	}
	if src.Embedding.Model != "" {
		dst.Embedding.Model = src.Embedding.Model
	}
	if src.Embedding.Dimensions != 0 {
		dst.Embedding.Dimensions = src.Embedding.Dimensions
	}
	if src.Embedding.CacheTTLMinutes != 0 {
		dst.Embedding.CacheTTLMinutes = src.Embedding.CacheTTLMinutes
	}
	if src.TimeoutSeconds != 0 {
		dst.TimeoutSeconds = src.TimeoutSeconds
	}
	if dst.Embedding.APIKey == "" {
		dst.Embedding.APIKey = dst.Provider.APIKey
	}
}

func mergeArchive(dst *ArchiveConfig, src ArchiveConfig) {
	if src.Enable {
		dst.Enable = true
	}
	if src.IntervalHours != 0 {
		dst.IntervalHours = src.IntervalHours
	}
	if src.Dir != "" {
		dst.Dir = src.Dir
	}
	if src.S3.Bucket != "" {
		dst.S3.Bucket = src.S3.Bucket
	}
	if src.S3.Region != "" {
		dst.S3.Region = src.S3.Region
	}
	if src.S3.AccessKeyID != "" {
		dst.S3.AccessKeyID = src.S3.AccessKeyID
	}
	if src.S3.SecretAccessKey != "" {
		dst.S3.SecretAccessKey = src.S3.SecretAccessKey
	}
	if src.S3.Endpoint != "" {
		dst.S3.Endpoint = src.S3.Endpoint
	}
	if src.S3.PathStyleAccess {
		dst.S3.PathStyleAccess = true
	}
	if src.S3.Prefix != "" {
		dst.S3.Prefix = src.S3.Prefix
	}
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development")
}
