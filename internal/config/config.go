package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const (
	BackendFile     = "file"
	BackendBolt     = "bolt"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"

	DefaultMaxEntries = 1000
	documentName      = "entries.json"
)

type AppConfig struct {
	API      *APIConfig
	Gin      *GinConfig
	Store    *StoreConfig
	Postgres *PostgresConfig

	v *viper.Viper
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	LogLevel           string   `mapstructure:"log_level"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

// StoreConfig addresses the single entries document.
type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	// Bucket is the directory for the file backend and the database path
	// for bolt and sqlite.
	Bucket            string `mapstructure:"bucket"`
	Prefix            string `mapstructure:"prefix"`
	MaxEntries        int    `mapstructure:"max_entries"`
	ConditionalWrites bool   `mapstructure:"conditional_writes"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	URL      string `mapstructure:"url"`
}

// DocumentKey is the key of the one document holding every entry.
func (c StoreConfig) DocumentKey() string {
	return c.Prefix + documentName
}

// Capacity is the maximum number of entries kept after a save.
func (c StoreConfig) Capacity() int {
	if c.MaxEntries <= 0 {
		return DefaultMaxEntries
	}
	return c.MaxEntries
}

func (c *PostgresConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// legacyEnv maps the environment names used by earlier deployments.
var legacyEnv = map[string]string{
	"store.bucket":             "BUCKET_NAME",
	"store.prefix":             "PREFIX",
	"store.max_entries":        "MAX_ENTRIES",
	"api.allowed_cors_domains": "CORS_ALLOW_ORIGIN",
	"postgres.url":             "DATABASE_URL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.log_level", "info")
	v.SetDefault("api.allowed_cors_domains", []string{"*"})

	v.SetDefault("gin.mode", "debug")

	v.SetDefault("store.backend", BackendFile)
	v.SetDefault("store.bucket", "./data")
	v.SetDefault("store.prefix", "entries/")
	v.SetDefault("store.max_entries", DefaultMaxEntries)
	v.SetDefault("store.conditional_writes", false)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.dbname", "picks")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.url", "")
}

// Load reads path if it exists and overlays the environment on top of it.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range legacyEnv {
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("v.BindEnv(%s) -> %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
		}
	}

	conf := &AppConfig{v: v}
	if err := conf.unmarshal(); err != nil {
		return nil, err
	}

	return conf, nil
}

// settings mirrors the file layout. Unmarshalling the whole tree, rather
// than one section at a time, is what makes viper apply env overrides.
type settings struct {
	API      APIConfig      `mapstructure:"api"`
	Gin      GinConfig      `mapstructure:"gin"`
	Store    StoreConfig    `mapstructure:"store"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

func (c *AppConfig) unmarshal() error {
	var s settings
	if err := c.v.Unmarshal(&s); err != nil {
		return fmt.Errorf("v.Unmarshal -> %w", err)
	}
	c.API = &s.API
	c.Gin = &s.Gin
	c.Store = &s.Store
	c.Postgres = &s.Postgres

	// A single origin from the environment arrives as one comma separated string.
	var origins []string
	for _, o := range c.API.AllowedCORSDomains {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				origins = append(origins, part)
			}
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c.API.AllowedCORSDomains = origins

	return nil
}

// OnChange calls fn with the reloaded API section whenever the config file
// changes on disk. Only settings read per request (the log level) take
// effect without a restart.
func (c *AppConfig) OnChange(fn func(api *APIConfig)) {
	c.v.OnConfigChange(func(fsnotify.Event) {
		var s settings
		if err := c.v.Unmarshal(&s); err != nil {
			return
		}
		fn(&s.API)
	})
	c.v.WatchConfig()
}
