package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig selects the gorm dialector by Driver: mysql, postgres or sqlite.
type DatabaseConfig struct {
	Driver              string `mapstructure:"driver"`
	Host                string `mapstructure:"host"`
	Port                int    `mapstructure:"port"`
	Username            string `mapstructure:"username"`
	Password            string `mapstructure:"password"`
	Database            string `mapstructure:"database"`
	Path                string `mapstructure:"path"`
	MaxIdleConns        int    `mapstructure:"max_idle_conns"`
	MaxOpenConns        int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime     int    `mapstructure:"conn_max_lifetime"`
	QueryTimeoutSeconds int    `mapstructure:"query_timeout_seconds"`
}

func (d *DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database)
	case "sqlite":
		return d.Path
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	}
}

// QueryTimeout bounds every store interaction made by a use case.
func (d *DatabaseConfig) QueryTimeout() time.Duration {
	if d.QueryTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(d.QueryTimeoutSeconds) * time.Second
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type PasswordConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	Algorithm        string `mapstructure:"algorithm"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
	RefreshExpDays   int    `mapstructure:"refresh_exp_days"`
}

// AccessLifetime defaults to 30 minutes.
func (j *JWTConfig) AccessLifetime() time.Duration {
	if j.AccessExpMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(j.AccessExpMinutes) * time.Minute
}

// RefreshLifetime defaults to 7 days.
func (j *JWTConfig) RefreshLifetime() time.Duration {
	if j.RefreshExpDays <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(j.RefreshExpDays) * 24 * time.Hour
}

type SessionConfig struct {
	SweepIntervalMinutes int `mapstructure:"sweep_interval_minutes"`
}

// SweepInterval is how often expired sessions are deactivated; zero disables the sweeper.
func (s *SessionConfig) SweepInterval() time.Duration {
	return time.Duration(s.SweepIntervalMinutes) * time.Minute
}

type AuthConfig struct {
	Password PasswordConfig `mapstructure:"password"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Session  SessionConfig  `mapstructure:"session"`
}

// RedisConfig is optional; an empty Host disables Redis and the in-process limiter is used.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

func (r *RedisConfig) Enabled() bool {
	return r.Host != ""
}

type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
	RequestsPerHour   int `mapstructure:"requests_per_hour"`
}

type AdminConfig struct {
	Key string `mapstructure:"key"`
}
