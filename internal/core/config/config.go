package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const DefaultPath = "./configs/config.local.yaml"

type HTTP struct {
	Host            string
	Port            int `validate:"gt=0,lt=65536"`
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type AdminHTTP struct {
	Host string
	Port int `validate:"gt=0,lt=65536"`
}

type App struct {
	Name string
	Env  string `validate:"oneof=local dev test staging production"`
	// ExposeErrors adds the error message and stack to 500 responses.
	ExposeErrors bool
	HTTP         HTTP
	Admin        AdminHTTP
}

func (a App) IsProduction() bool { return a.Env == "production" }

type LogFile struct {
	Enable     bool
	Filename   string `validate:"required_if=Enable true"`
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string `validate:"oneof=debug info warn error"`
	JSON  bool
	File  LogFile
}

type JWT struct {
	Secret string `validate:"required,min=16"`
	Issuer string `validate:"required"`
	// AccessTokenTTLMin <= 0 issues tokens without expiry.
	AccessTokenTTLMin int
	Header            string `validate:"required"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r Redis) Enabled() bool { return r.Addr != "" }

type DB struct {
	Driver             string `validate:"oneof=postgres mysql memory"`
	DSN                string `validate:"required_unless=Driver memory"`
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string `validate:"omitempty,oneof=silent error warn info"`
}

type Limits struct {
	RPS               float64
	Burst             int
	PerIPRPS          float64 `mapstructure:"perIpRps"`
	PerIPBurst        int     `mapstructure:"perIpBurst"`
	MaxConcurrent     int64
	MaxBodyBytes      int64
	RequestTimeoutSec int
}

type Security struct {
	BcryptCost int `validate:"gte=4,lte=31"`
}

type Config struct {
	App      App
	Log      Log
	JWT      JWT
	DB       DB
	Redis    Redis `mapstructure:"redis"`
	Limits   Limits
	Security Security
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "go-gin-blog-api")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.exposeErrors", true)
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 3000)
	v.SetDefault("app.http.readTimeoutSec", 5)
	v.SetDefault("app.http.writeTimeoutSec", 10)
	v.SetDefault("app.http.idleTimeoutSec", 60)
	v.SetDefault("app.admin.host", "127.0.0.1")
	v.SetDefault("app.admin.port", 3001)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file.maxSizeMB", 100)
	v.SetDefault("log.file.maxBackups", 7)
	v.SetDefault("log.file.maxAgeDays", 30)

	v.SetDefault("jwt.issuer", "go-gin-blog-api")
	v.SetDefault("jwt.header", "x-auth-token")

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.maxOpenConns", 20)
	v.SetDefault("db.maxIdleConns", 10)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.autoMigrate", true)
	v.SetDefault("db.logLevel", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("limits.rps", 200)
	v.SetDefault("limits.burst", 400)
	v.SetDefault("limits.perIpRps", 20)
	v.SetDefault("limits.perIpBurst", 40)
	v.SetDefault("limits.maxConcurrent", 300)
	v.SetDefault("limits.maxBodyBytes", 1<<20)
	v.SetDefault("limits.requestTimeoutSec", 0)

	v.SetDefault("security.bcryptCost", 12)
}

// Read loads the YAML file at path (CONFIG_PATH or DefaultPath when empty),
// applies APP_* environment overrides and validates the result.
func Read(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = DefaultPath
		}
	}
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validator.New().Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &c, nil
}

// Load is Read that exits the process on error.
func Load(path string) *Config {
	c, err := Read(path)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return c
}
