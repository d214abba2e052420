package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"

	envPrefix = "HESTIA"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Env      string         `yaml:"env"`      // Env is the current environment: local, development, production.
	HTTP     HTTPConfig     `yaml:"http"`     // HTTP holds the web server configuration.
	Storage  StorageConfig  `yaml:"storage"`  // Storage selects the database backend.
	Postgres PostgresConfig `yaml:"postgres"` // Postgres holds the database configuration.
	MySQL    MySQLConfig    `yaml:"mysql"`    // MySQL holds the alternative database configuration.
}

// HTTPConfig struct holds the web server settings.
type HTTPConfig struct {
	Address         string        `yaml:"address"`          // Address is the listen address, e.g. `:8080`.
	MetricsAddress  string        `yaml:"metrics_address"`  // MetricsAddress serves /metrics and /healthz; empty disables it.
	ReadTimeout     time.Duration `yaml:"read_timeout"`     // ReadTimeout bounds reading a request.
	WriteTimeout    time.Duration `yaml:"write_timeout"`    // WriteTimeout bounds writing a response.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // ShutdownTimeout bounds graceful shutdown.
}

// StorageConfig struct selects the backend and where its migrations live.
type StorageConfig struct {
	Driver        string `yaml:"driver"`         // Driver is either `postgres` or `mysql`.
	MigrationsDir string `yaml:"migrations_dir"` // MigrationsDir holds goose SQL files for the driver.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`     // Host is the database server address.
	Port     string `yaml:"port"`     // Port is the database server port.
	User     string `yaml:"user"`     // User is the database user.
	Password string `yaml:"password"` // Password is the database user's password.
	Dbname   string `yaml:"db_name"`  // Dbname is the name of the database.
	SSLMode  string `yaml:"sslmode"`  // SSLMode is passed to the server as-is.
}

// MySQLConfig struct holds the DSN of a MySQL database.
type MySQLConfig struct {
	DSN string `yaml:"dsn"` // DSN in go-sql-driver format; parseTime is always switched on.
}

// MustLoad loads the configuration from the file named by CONFIG_PATH and the environment.
// It panics if the configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic("config error: " + err.Error())
	}

	return cfg
}

// Load reads an optional YAML file at path, then applies HESTIA_* environment overrides
// (a `.env` file in the working directory is honoured) and validates the result.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	vpr := viper.New()
	setDefaults(vpr)

	vpr.SetEnvPrefix(envPrefix)
	vpr.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vpr.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}

		vpr.SetConfigFile(path)
		if err := vpr.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Env: vpr.GetString("env"),
		HTTP: HTTPConfig{
			Address:         vpr.GetString("http.address"),
			MetricsAddress:  vpr.GetString("http.metrics_address"),
			ReadTimeout:     vpr.GetDuration("http.read_timeout"),
			WriteTimeout:    vpr.GetDuration("http.write_timeout"),
			ShutdownTimeout: vpr.GetDuration("http.shutdown_timeout"),
		},
		Storage: StorageConfig{
			Driver:        strings.ToLower(vpr.GetString("storage.driver")),
			MigrationsDir: vpr.GetString("storage.migrations_dir"),
		},
		Postgres: PostgresConfig{
			Host:     vpr.GetString("postgres.host"),
			Port:     vpr.GetString("postgres.port"),
			User:     vpr.GetString("postgres.user"),
			Password: vpr.GetString("postgres.password"),
			Dbname:   vpr.GetString("postgres.db_name"),
			SSLMode:  vpr.GetString("postgres.sslmode"),
		},
		MySQL: MySQLConfig{
			DSN: vpr.GetString("mysql.dsn"),
		},
	}

	if cfg.Storage.MigrationsDir == "" {
		cfg.Storage.MigrationsDir = filepath.Join("migrations", cfg.Storage.Driver)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(vpr *viper.Viper) {
	defReadTimeout := 5
	defWriteTimeout := 10
	defShutdownTimeout := 10

	vpr.SetDefault("env", "local")
	vpr.SetDefault("http.address", ":8080")
	vpr.SetDefault("http.metrics_address", ":9090")
	vpr.SetDefault("http.read_timeout", time.Duration(defReadTimeout)*time.Second)
	vpr.SetDefault("http.write_timeout", time.Duration(defWriteTimeout)*time.Second)
	vpr.SetDefault("http.shutdown_timeout", time.Duration(defShutdownTimeout)*time.Second)
	vpr.SetDefault("storage.driver", DriverPostgres)
	vpr.SetDefault("storage.migrations_dir", "")
	vpr.SetDefault("postgres.host", "")
	vpr.SetDefault("postgres.port", "5432")
	vpr.SetDefault("postgres.user", "")
	vpr.SetDefault("postgres.password", "")
	vpr.SetDefault("postgres.db_name", "")
	vpr.SetDefault("postgres.sslmode", "disable")
	vpr.SetDefault("mysql.dsn", "")
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Postgres.Host == "" || c.Postgres.User == "" || c.Postgres.Dbname == "" {
			return fmt.Errorf("%w: postgres.host, postgres.user and postgres.db_name must be set", ErrInvalidConfig)
		}
	case DriverMySQL:
		if c.MySQL.DSN == "" {
			return fmt.Errorf("%w: mysql.dsn must be set", ErrInvalidConfig)
		}
		if _, err := mysqldriver.ParseDSN(c.MySQL.DSN); err != nil {
			return fmt.Errorf("%w: mysql.dsn: %w", ErrInvalidConfig, err)
		}
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.HTTP.Address == "" {
		return fmt.Errorf("%w: http.address must be set", ErrInvalidConfig)
	}
	if c.HTTP.MetricsAddress == c.HTTP.Address {
		return fmt.Errorf("%w: http.metrics_address must differ from http.address", ErrInvalidConfig)
	}

	return nil
}
