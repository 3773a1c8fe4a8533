package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Auth
		Lending
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Auth struct {
		JWTSecret   string
		TokenExpiry time.Duration
		BcryptCost  int
		Issuer      string
	}
	Lending struct {
		OverdueCheckEnabled  bool
		OverdueCheckSchedule string // Cron format: "0 * * * *" = hourly
		DefaultPeriodDays    int    // Expected return horizon when none given
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8280)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("auth_jwt_secret", "") // Generated at startup if empty
	v.SetDefault("auth_token_expiry", "24h")
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_issuer", "readingvault")

	// Lending defaults
	v.SetDefault("lending_overdue_check_enabled", true)
	v.SetDefault("lending_overdue_check_schedule", "0 * * * *") // Hourly at :00
	v.SetDefault("lending_default_period_days", 14)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			JWTSecret:   v.GetString("AUTH_JWT_SECRET"),
			TokenExpiry: v.GetDuration("AUTH_TOKEN_EXPIRY"),
			BcryptCost:  v.GetInt("AUTH_BCRYPT_COST"),
			Issuer:      v.GetString("AUTH_ISSUER"),
		},
		Lending: Lending{
			OverdueCheckEnabled:  v.GetBool("LENDING_OVERDUE_CHECK_ENABLED"),
			OverdueCheckSchedule: v.GetString("LENDING_OVERDUE_CHECK_SCHEDULE"),
			DefaultPeriodDays:    v.GetInt("LENDING_DEFAULT_PERIOD_DAYS"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
