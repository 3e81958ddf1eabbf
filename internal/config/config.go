// Package config loads the Hoaxify client configuration.
//
// Values are merged from (lowest to highest priority) built-in defaults,
// a JSON file named by the CONFIG variable or the -c flag, environment
// variables (a .env file is honoured) and command line flags.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"reflect"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/patric-chuzhbe/hoaxify/internal/i18n"
	"github.com/patric-chuzhbe/hoaxify/internal/logger"
)

// Config holds every setting of the client process.
type Config struct {
	RunAddr             string        `env:"SERVER_ADDRESS" validate:"hostname_port"`
	APIBaseURL          string        `env:"API_BASE_URL" validate:"url"`
	LogLevel            string        `env:"LOG_LEVEL" validate:"loglevel"`
	DBFileName          string        `env:"FILE_STORAGE_PATH" validate:"filepath"`
	DatabaseDSN         string        `env:"DATABASE_DSN"`
	DBConnectionTimeout time.Duration `env:"DB_CONNECTION_TIMEOUT"`
	MigrationsDir       string        `env:"MIGRATIONS_DIR"`
	RedisAddr           string        `env:"REDIS_ADDRESS" validate:"omitempty,hostname_port"`
	StorageSecret       string        `env:"STORAGE_SECRET"`
	Locale              string        `env:"LOCALE" validate:"locale"`
	TrustedSubnet       string        `env:"TRUSTED_SUBNET" validate:"omitempty,cidr"`
	CSRFSigningKey      string        `env:"CSRF_SIGNING_KEY"`
	ConfigFile          string        `env:"CONFIG"`
}

// jsonConfig is the on-disk shape of the JSON configuration file.
type jsonConfig struct {
	RunAddr             string `json:"server_address"`
	APIBaseURL          string `json:"api_base_url"`
	LogLevel            string `json:"log_level"`
	DBFileName          string `json:"file_storage_path"`
	DatabaseDSN         string `json:"database_dsn"`
	DBConnectionTimeout string `json:"db_connection_timeout"`
	MigrationsDir       string `json:"migrations_dir"`
	RedisAddr           string `json:"redis_address"`
	StorageSecret       string `json:"storage_secret"`
	Locale              string `json:"locale"`
	TrustedSubnet       string `json:"trusted_subnet"`
	CSRFSigningKey      string `json:"csrf_signing_key"`
}

var defaultConfig = Config{
	RunAddr:             "localhost:8080",
	APIBaseURL:          "http://localhost:8081",
	LogLevel:            "info",
	DBConnectionTimeout: 10 * time.Second,
	MigrationsDir:       "cmd/hoaxify/migrations",
	Locale:              i18n.DefaultLocale,
	TrustedSubnet:       "127.0.0.0/8",
}

type InitOption func(*initOptions)

type initOptions struct {
	disableFlagsParsing bool
}

// WithDisableFlagsParsing skips command line parsing, which tests rely on.
func WithDisableFlagsParsing(disableFlagsParsing bool) InitOption {
	return func(options *initOptions) {
		options.disableFlagsParsing = disableFlagsParsing
	}
}

func validateFilePath(fieldLevel validator.FieldLevel) bool {
	path := fieldLevel.Field().String()
	if path == "" {
		return true
	}
	_, err := os.Stat(path)

	return err == nil || os.IsNotExist(err)
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	value := fieldLevel.Field().String()

	allowedLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
	}

	return allowedLogLevels[value]
}

func validateLocale(fieldLevel validator.FieldLevel) bool {
	return i18n.IsSupported(fieldLevel.Field().String())
}

func (c *Config) validate() error {
	validate := validator.New()

	validations := map[string]validator.Func{
		"loglevel": validateLogLevel,
		"filepath": validateFilePath,
		"locale":   validateLocale,
	}
	for tag, fn := range validations {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}

	return validate.Struct(c)
}

// applyDefaults fills every zero field of values from defaults.
func applyDefaults(values *Config, defaults Config) {
	dst := reflect.ValueOf(values).Elem()
	src := reflect.ValueOf(defaults)
	for i := 0; i < dst.NumField(); i++ {
		if dst.Field(i).IsZero() {
			dst.Field(i).Set(src.Field(i))
		}
	}
}

// overlay copies every non-zero field of src over dst.
func overlay(dst *Config, src Config) {
	applyDefaults(&src, *dst)
	*dst = src
}

func (c *Config) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.RunAddr, "a", "", "address and port to serve the client pages on")
	fs.StringVar(&c.APIBaseURL, "b", "", "base URL of the Hoaxify REST backend")
	fs.StringVar(&c.LogLevel, "l", "", "logger level")
	fs.StringVar(&c.DBFileName, "f", "", "JSON file used as the persistent key/value storage")
	fs.StringVar(&c.DatabaseDSN, "d", "", "PostgreSQL connection string for the key/value storage")
	fs.StringVar(&c.RedisAddr, "r", "", "Redis address for the key/value storage")
	fs.StringVar(&c.Locale, "locale", "", "initial UI locale")
	fs.StringVar(&c.TrustedSubnet, "t", "", "CIDR of the clients allowed to use the pages")
	fs.StringVar(&c.ConfigFile, "c", "", "path to the JSON configuration file")
}

func loadJSON(fileName string) (Config, error) {
	var result Config
	data, err := os.ReadFile(fileName)
	if err != nil {
		return result, fmt.Errorf("in internal/config/config.go/loadJSON(): error while `os.ReadFile()` calling: %w", err)
	}

	var fromFile jsonConfig
	if err := json.Unmarshal(data, &fromFile); err != nil {
		return result, fmt.Errorf("in internal/config/config.go/loadJSON(): error while `json.Unmarshal()` calling: %w", err)
	}

	result = Config{
		RunAddr:        fromFile.RunAddr,
		APIBaseURL:     fromFile.APIBaseURL,
		LogLevel:       fromFile.LogLevel,
		DBFileName:     fromFile.DBFileName,
		DatabaseDSN:    fromFile.DatabaseDSN,
		MigrationsDir:  fromFile.MigrationsDir,
		RedisAddr:      fromFile.RedisAddr,
		StorageSecret:  fromFile.StorageSecret,
		Locale:         fromFile.Locale,
		TrustedSubnet:  fromFile.TrustedSubnet,
		CSRFSigningKey: fromFile.CSRFSigningKey,
	}
	if fromFile.DBConnectionTimeout != "" {
		result.DBConnectionTimeout, err = time.ParseDuration(fromFile.DBConnectionTimeout)
		if err != nil {
			return result, fmt.Errorf("in internal/config/config.go/loadJSON(): bad db_connection_timeout: %w", err)
		}
	}

	return result, nil
}

// New builds the configuration from all sources and validates it.
func New(optionsProto ...InitOption) (*Config, error) {
	options := &initOptions{
		disableFlagsParsing: false,
	}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Log.Debugln("Unable to load .env file:", err)
	}

	var fromFlags Config
	if !options.disableFlagsParsing && len(os.Args) > 0 {
		fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
		fromFlags.registerFlags(fs)
		if err := fs.Parse(os.Args[1:]); err != nil {
			return nil, err
		}
	}

	var fromEnv Config
	if err := env.Parse(&fromEnv); err != nil {
		return nil, err
	}

	values := &Config{}
	configFile := fromFlags.ConfigFile
	if configFile == "" {
		configFile = fromEnv.ConfigFile
	}
	if configFile != "" {
		fromJSON, err := loadJSON(configFile)
		if err != nil {
			return nil, err
		}
		overlay(values, fromJSON)
	}
	overlay(values, fromEnv)
	overlay(values, fromFlags)
	applyDefaults(values, defaultConfig)

	if err := values.validate(); err != nil {
		return nil, err
	}

	return values, nil
}
