package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreBackendFile     = "file"
	StoreBackendSQLite   = "sqlite"
	StoreBackendPostgres = "postgres"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	Scoring  ScoringConfig
}

type AppConfig struct {
	AppName         string
	Environment     string
	HTTPPort        string
	ShutdownTimeout time.Duration
}

type StoreConfig struct {
	Backend    string
	DataDir    string
	SQLitePath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string

	ConnectTimeout      time.Duration
	PoolMaxConns        int32
	PoolMinConns        int32
	PoolMaxConnLifetime time.Duration
	PoolMaxConnIdleTime time.Duration

	MigrationsDir string
}

type RedisConfig struct {
	Addr              string
	Password          string
	DB                int
	RecommendationTTL time.Duration
}

type LogConfig struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type ScoringConfig struct {
	EmptyRequirementScore float64
	SumDuplicatePairs     bool
	DefaultPairRate       float64
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

var defaults = map[string]any{
	"app.name":             "team-formation",
	"app.env":              "development",
	"http.port":            "8080",
	"app.shutdown_timeout": 10 * time.Second,

	"store.backend":     StoreBackendFile,
	"store.data_dir":    "./data",
	"store.sqlite_path": "./data/records.db",

	"db.host":                   "",
	"db.port":                   "5432",
	"db.name":                   "",
	"db.user":                   "",
	"db.password":               "",
	"db.ssl_mode":               "disable",
	"db.connect_timeout":        5 * time.Second,
	"db.pool_max_conns":         10,
	"db.pool_min_conns":         0,
	"db.pool_max_conn_lifetime": time.Hour,
	"db.pool_max_conn_idle":     30 * time.Minute,
	"db.migrations_dir":         "",

	"redis.addr":               "",
	"redis.password":           "",
	"redis.db":                 0,
	"redis.recommendation_ttl": 5 * time.Minute,

	"log.level":        "info",
	"log.format":       "console",
	"log.file":         "",
	"log.max_size_mb":  100,
	"log.max_backups":  3,
	"log.max_age_days": 28,

	"scoring.empty_requirement_score": 0.0,
	"scoring.sum_duplicate_pairs":     true,
	"scoring.default_pair_rate":       0.5,
}

// Load reads an optional YAML config file and then the environment. Keys
// map to variables by upper-casing and replacing dots, so db.host is DB_HOST.
// An empty path looks for ./config.yaml and carries on without it.
func Load(path string) (Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || strings.TrimSpace(path) != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, envName(key))
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg := Config{}
	cfg.App = AppConfig{
		AppName:         req("app.name"),
		Environment:     req("app.env"),
		HTTPPort:        req("http.port"),
		ShutdownTimeout: v.GetDuration("app.shutdown_timeout"),
	}

	cfg.Store = StoreConfig{
		Backend:    strings.ToLower(opt("store.backend")),
		DataDir:    opt("store.data_dir"),
		SQLitePath: opt("store.sqlite_path"),
	}

	dbField := opt
	if cfg.Store.Backend == StoreBackendPostgres {
		dbField = req
	}
	cfg.Database = DatabaseConfig{
		Host:                dbField("db.host"),
		Port:                opt("db.port"),
		Name:                dbField("db.name"),
		User:                dbField("db.user"),
		Password:            v.GetString("db.password"),
		SSLMode:             opt("db.ssl_mode"),
		ConnectTimeout:      v.GetDuration("db.connect_timeout"),
		PoolMaxConns:        v.GetInt32("db.pool_max_conns"),
		PoolMinConns:        v.GetInt32("db.pool_min_conns"),
		PoolMaxConnLifetime: v.GetDuration("db.pool_max_conn_lifetime"),
		PoolMaxConnIdleTime: v.GetDuration("db.pool_max_conn_idle"),
		MigrationsDir:       opt("db.migrations_dir"),
	}

	cfg.Redis = RedisConfig{
		Addr:              opt("redis.addr"),
		Password:          v.GetString("redis.password"),
		DB:                v.GetInt("redis.db"),
		RecommendationTTL: v.GetDuration("redis.recommendation_ttl"),
	}

	cfg.Log = LogConfig{
		Level:      strings.ToLower(opt("log.level")),
		Format:     strings.ToLower(opt("log.format")),
		File:       opt("log.file"),
		MaxSizeMB:  v.GetInt("log.max_size_mb"),
		MaxBackups: v.GetInt("log.max_backups"),
		MaxAgeDays: v.GetInt("log.max_age_days"),
	}

	cfg.Scoring = ScoringConfig{
		EmptyRequirementScore: v.GetFloat64("scoring.empty_requirement_score"),
		SumDuplicatePairs:     v.GetBool("scoring.sum_duplicate_pairs"),
		DefaultPairRate:       v.GetFloat64("scoring.default_pair_rate"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case StoreBackendFile:
		if c.Store.DataDir == "" {
			return errors.New("STORE_DATA_DIR must not be empty for the file store")
		}
	case StoreBackendSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("STORE_SQLITE_PATH must not be empty for the sqlite store")
		}
	case StoreBackendPostgres:
	default:
		return fmt.Errorf("unsupported STORE_BACKEND %q", c.Store.Backend)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported LOG_FORMAT %q", c.Log.Format)
	}
	if c.Scoring.DefaultPairRate < 0 || c.Scoring.DefaultPairRate > 1 {
		return fmt.Errorf("SCORING_DEFAULT_PAIR_RATE must be within [0,1], got %v", c.Scoring.DefaultPairRate)
	}
	return nil
}

func envName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
