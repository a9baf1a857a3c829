package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Server struct {
	Host string
	Port int
}

type DB struct {
	Host string
	Port int
	User string
	Pass string
	Name string
}

type JWT struct {
	Secret string
	Issuer string
	ExpMin int
}

type Photos struct {
	Dir string
}

// Redis is optional; when Addr is empty the login limiter is disabled.
type Redis struct {
	Addr          string
	LoginAttempts int
	WindowSec     int
}

type Config struct {
	Server Server
	DB     DB
	JWT    JWT
	Photos Photos
	Redis  Redis
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.pass", "")
	v.SetDefault("db.name", "pubboard")
	v.SetDefault("photos.dir", "photos")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.login_attempts", 10)
	v.SetDefault("redis.window_sec", 60)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{
		Server: Server{Host: v.GetString("server.host"), Port: v.GetInt("server.port")},
		DB:     DB{Host: v.GetString("db.host"), Port: v.GetInt("db.port"), User: v.GetString("db.user"), Pass: v.GetString("db.pass"), Name: v.GetString("db.name")},
		Photos: Photos{Dir: v.GetString("photos.dir")},
		Redis:  Redis{Addr: v.GetString("redis.addr"), LoginAttempts: v.GetInt("redis.login_attempts"), WindowSec: v.GetInt("redis.window_sec")},
	}
	cfg.JWT.Secret = v.GetString("jwt.secret")
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "dev-secret"
	}
	cfg.JWT.Issuer = v.GetString("jwt.issuer")
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "pubboard"
	}
	cfg.JWT.ExpMin = v.GetInt("jwt.exp_min")
	if cfg.JWT.ExpMin <= 0 {
		cfg.JWT.ExpMin = 45
	}
	return cfg, nil
}
