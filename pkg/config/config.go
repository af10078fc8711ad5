package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env       string
	Host      string
	Port      int
	APIPrefix string

	Database        DatabaseConfig
	CORS            CORSConfig
	Log             LogConfig
	Dashboard       DashboardConfig
	Demo            DemoConfig
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Driver       string
	Path         string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	// Reset drops and recreates every table on start.
	Reset bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DashboardConfig tunes KPI assumptions and listing sizes.
type DashboardConfig struct {
	CreditsPerSemester  int
	EnrollmentListLimit int
}

// DemoConfig identifies the bootstrap person and program.
type DemoConfig struct {
	GivenName           string
	FamilyName          string
	MatriculationNumber string
	ProgramName         string
	ProgramStart        string
	TargetSemesters     int
	TargetAverageGrade  float64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := fromViper(v)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Dashboard.CreditsPerSemester <= 0 {
		return fmt.Errorf("config: CREDITS_PER_SEMESTER must be positive")
	}
	if c.Dashboard.EnrollmentListLimit <= 0 {
		return fmt.Errorf("config: ENROLLMENT_LIST_LIMIT must be positive")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: invalid PORT %d", c.Port)
	}
	return nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Host = v.GetString("HTTP_HOST")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.ShutdownTimeout = parseDuration(v.GetString("SHUTDOWN_TIMEOUT"), 10*time.Second)

	cfg.Database = DatabaseConfig{
		Driver:       strings.ToLower(v.GetString("DB_DRIVER")),
		Path:         v.GetString("DB_PATH"),
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
		Reset:        v.GetBool("DB_RESET"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Dashboard = DashboardConfig{
		CreditsPerSemester:  v.GetInt("CREDITS_PER_SEMESTER"),
		EnrollmentListLimit: v.GetInt("ENROLLMENT_LIST_LIMIT"),
	}

	cfg.Demo = DemoConfig{
		GivenName:           v.GetString("DEMO_GIVEN_NAME"),
		FamilyName:          v.GetString("DEMO_FAMILY_NAME"),
		MatriculationNumber: v.GetString("DEMO_MATRICULATION"),
		ProgramName:         v.GetString("DEMO_PROGRAM_NAME"),
		ProgramStart:        v.GetString("DEMO_PROGRAM_START"),
		TargetSemesters:     v.GetInt("DEMO_TARGET_SEMESTERS"),
		TargetAverageGrade:  v.GetFloat64("DEMO_TARGET_AVERAGE_GRADE"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("HTTP_HOST", "127.0.0.1")
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DB_PATH", "studydash.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "studydash")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_RESET", false)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("CREDITS_PER_SEMESTER", 30)
	v.SetDefault("ENROLLMENT_LIST_LIMIT", 200)

	v.SetDefault("DEMO_GIVEN_NAME", "Goekhan")
	v.SetDefault("DEMO_FAMILY_NAME", "Sen")
	v.SetDefault("DEMO_MATRICULATION", "IU14140216")
	v.SetDefault("DEMO_PROGRAM_NAME", "Angewandte Kuenstliche Intelligenz")
	v.SetDefault("DEMO_PROGRAM_START", "2025-06-01")
	v.SetDefault("DEMO_TARGET_SEMESTERS", 6)
	v.SetDefault("DEMO_TARGET_AVERAGE_GRADE", 2.0)
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
