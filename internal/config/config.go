package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Dashboard DashboardConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	Debug       bool
	CORSOrigins string
}

// DataConfig - источники данных, загружаемые один раз при старте
type DataConfig struct {
	Source             string // csv | postgres
	CountriesFile      string
	WorldFile          string
	GeoJSONFile        string
	GeoJSONKeyProperty string
}

type DashboardConfig struct {
	NationalLocation string // значение-сентинел для национального ряда
	NationalName     string // имя локации национального ряда в CSV
	WorldName        string
	DefaultMetric    string
	DefaultLanguage  string
	DateRangePolicy  string
	MapCenterLat     float64
	MapCenterLon     float64
	MapZoom          float64
	MapOpacity       float64
	SessionTTL       time.Duration
	SessionSweep     time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	Enabled   bool
	FigureTTL time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	PollInterval  time.Duration
	MaxRetries    int
	Metrics       []string
}

// Load читает конфигурацию из .env (если есть), окружения и флагов командной строки.
// args - аргументы без имени программы (os.Args[1:]).
func Load(args []string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	flags := pflag.NewFlagSet("dashboard", pflag.ContinueOnError)
	flags.Int("port", v.GetInt("API_PORT"), "HTTP port to serve the dashboard on")
	flags.Bool("debug", false, "enable debug mode (console logging, debug level)")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if flags.Changed("port") {
		port, _ := flags.GetInt("port")
		v.Set("API_PORT", port)
	}
	if flags.Changed("debug") {
		debug, _ := flags.GetBool("debug")
		v.Set("API_DEBUG", debug)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Env:         v.GetString("API_ENV"),
			Debug:       v.GetBool("API_DEBUG"),
			CORSOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		},
		Data: DataConfig{
			Source:             strings.ToLower(v.GetString("DATASET_SOURCE")),
			CountriesFile:      v.GetString("DATA_COUNTRIES_FILE"),
			WorldFile:          v.GetString("DATA_WORLD_FILE"),
			GeoJSONFile:        v.GetString("DATA_GEOJSON_FILE"),
			GeoJSONKeyProperty: v.GetString("GEOJSON_KEY_PROPERTY"),
		},
		Dashboard: DashboardConfig{
			NationalLocation: v.GetString("DASHBOARD_NATIONAL_LOCATION"),
			NationalName:     v.GetString("DASHBOARD_NATIONAL_NAME"),
			WorldName:        v.GetString("DASHBOARD_WORLD_NAME"),
			DefaultMetric:    v.GetString("DASHBOARD_DEFAULT_METRIC"),
			DefaultLanguage:  v.GetString("DASHBOARD_DEFAULT_LANGUAGE"),
			DateRangePolicy:  strings.ToLower(v.GetString("DATE_RANGE_POLICY")),
			MapCenterLat:     v.GetFloat64("MAP_CENTER_LAT"),
			MapCenterLon:     v.GetFloat64("MAP_CENTER_LON"),
			MapZoom:          v.GetFloat64("MAP_ZOOM"),
			MapOpacity:       v.GetFloat64("MAP_OPACITY"),
			SessionTTL:       time.Duration(v.GetInt("SESSION_TTL")) * time.Second,
			SessionSweep:     time.Duration(v.GetInt("SESSION_SWEEP_INTERVAL")) * time.Second,
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			Enabled:   v.GetBool("CACHE_ENABLED"),
			FigureTTL: time.Duration(v.GetInt("FIGURE_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:       v.GetBool("WORKER_ENABLED"),
			ConsumerGroup: v.GetString("WORKER_CONSUMER_GROUP"),
			PollInterval:  time.Duration(v.GetInt("WORKER_POLL_INTERVAL")) * time.Millisecond,
			MaxRetries:    v.GetInt("WORKER_MAX_RETRIES"),
			Metrics:       parseList(v.GetString("WORKER_METRICS")),
		},
	}

	if cfg.Server.Debug {
		cfg.Log.Level = "debug"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8084)
	v.SetDefault("API_ENV", "production")
	v.SetDefault("API_DEBUG", false)
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")

	v.SetDefault("DATASET_SOURCE", "csv")
	v.SetDefault("DATA_COUNTRIES_FILE", "df.csv")
	v.SetDefault("DATA_WORLD_FILE", "df_world.csv")
	v.SetDefault("DATA_GEOJSON_FILE", "geojson/countries_geo.json")
	v.SetDefault("GEOJSON_KEY_PROPERTY", "")

	v.SetDefault("DASHBOARD_NATIONAL_LOCATION", "BRA")
	v.SetDefault("DASHBOARD_NATIONAL_NAME", "Brazil")
	v.SetDefault("DASHBOARD_WORLD_NAME", "World")
	v.SetDefault("DASHBOARD_DEFAULT_METRIC", "new_cases")
	v.SetDefault("DASHBOARD_DEFAULT_LANGUAGE", "pt-BR")
	v.SetDefault("DATE_RANGE_POLICY", "common")
	v.SetDefault("MAP_CENTER_LAT", -14.272572694355336)
	v.SetDefault("MAP_CENTER_LON", -51.25567404158474)
	v.SetDefault("MAP_ZOOM", 4)
	v.SetDefault("MAP_OPACITY", 0.55)
	v.SetDefault("SESSION_TTL", 7200)
	v.SetDefault("SESSION_SWEEP_INTERVAL", 300)

	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 5)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("FIGURE_CACHE_TTL", 3600)

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("WORKER_CONSUMER_GROUP", "dashboard-warmup-workers")
	v.SetDefault("WORKER_POLL_INTERVAL", 500)
	v.SetDefault("WORKER_MAX_RETRIES", 3)
	v.SetDefault("WORKER_METRICS", "total_cases,new_cases,total_deaths,new_deaths")
}

func (c *Config) validate() error {
	switch c.Data.Source {
	case "csv", "postgres":
	default:
		return fmt.Errorf("unsupported DATASET_SOURCE %q", c.Data.Source)
	}
	switch c.Dashboard.DateRangePolicy {
	case "common", "full":
	default:
		return fmt.Errorf("unsupported DATE_RANGE_POLICY %q", c.Dashboard.DateRangePolicy)
	}
	if c.Dashboard.SessionTTL <= 0 || c.Dashboard.SessionSweep <= 0 {
		return fmt.Errorf("SESSION_TTL and SESSION_SWEEP_INTERVAL must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	return nil
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
