package config

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int                   `yaml:"port"`
	Env            string                `yaml:"env"` // "development" | "production"
	DSN            string                `yaml:"dsn"` // MySQL DSN
	Database       DatabaseRuntimeConfig `yaml:"database"`
	RedisURL       string                `yaml:"redis_url"`
	Redis          RedisRuntimeConfig    `yaml:"redis"`
	JWTSecret      string                `yaml:"jwt_secret"`
	AllowedOrigins []string              `yaml:"allowed_origins"`
	AI             AIConfig              `yaml:"ai"`
	Retrieval      RetrievalConfig       `yaml:"retrieval"`
	Archive        ArchiveConfig         `yaml:"archive"`
}

type DatabaseRuntimeConfig struct {
	DSN       string            `yaml:"dsn"`
	URL       string            `yaml:"url"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	User      string            `yaml:"user"`
	Username  string            `yaml:"username"`
	Password  string            `yaml:"password"`
	Name      string            `yaml:"name"`
	DBName    string            `yaml:"db_name"`
	Charset   string            `yaml:"charset"`
	ParseTime bool              `yaml:"parse_time"`
	Loc       string            `yaml:"loc"`
	Params    map[string]string `yaml:"params"`
}

type RedisRuntimeConfig struct {
	URL      string            `yaml:"url"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	Username string            `yaml:"username"`
	Password string            `yaml:"password"`
	DB       int               `yaml:"db"`
	TLS      bool              `yaml:"tls"`
	Scheme   string            `yaml:"scheme"`
	Params   map[string]string `yaml:"params"`
}

// AIConfig configures the generative model and embedding providers.
type AIConfig struct {
	Provider       AIProvider      `yaml:"provider"`
	Embedding      EmbeddingConfig `yaml:"embedding"`
	TimeoutSeconds int             `yaml:"timeout_seconds"`
}

// AIProvider selects and configures the generative model backend.
// Type is "openai" (default) or "anthropic".
type AIProvider struct {
	Type         string `yaml:"type"`
	APIKey       string `yaml:"api_key"`
	Endpoint     string `yaml:"endpoint"`
	DefaultModel string `yaml:"model"`
}

// EmbeddingConfig configures the embedding provider. Dimensions is fixed
// at 1024 across the chunk store; changing it requires re-embedding the
// whole corpus.
type EmbeddingConfig struct {
	APIKey          string `yaml:"api_key"`
	Endpoint        string `yaml:"endpoint"`
	Model           string `yaml:"model"`
	Dimensions      int    `yaml:"dimensions"`
	CacheTTLMinutes int    `yaml:"cache_ttl_minutes"`
}

// RetrievalConfig tunes the similarity search.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// ArchiveConfig controls periodic history/audit archival.
type ArchiveConfig struct {
	Enable        bool      `yaml:"enable"`
	IntervalHours int       `yaml:"interval_hours"`
	Dir           string    `yaml:"dir"` // local archive directory, kept alongside S3 uploads
	S3            S3Options `yaml:"s3"`
}

// S3Options configures the S3-compatible archive target.
type S3Options struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Endpoint        string `yaml:"endpoint"`
	PathStyleAccess bool   `yaml:"path_style_access"`
	Prefix          string `yaml:"prefix"`
}

// Enabled reports whether the S3 target is fully configured.
func (o S3Options) Enabled() bool {
	return o.Bucket != "" && o.Region != "" && o.AccessKeyID != "" && o.SecretAccessKey != ""
}
