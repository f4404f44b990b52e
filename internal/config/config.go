package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all process-wide settings. It is built once in main and
// passed explicitly to every component that needs it.
type Config struct {
	AppPort           string
	DatabasePath      string
	SessionSecret     string
	SessionLifetime   time.Duration // lifetime of a session without remember-me
	RememberLifetime  time.Duration // lifetime when remember-me is checked
	AdminSeedPassword string
	SeedSampleData    bool
}

// Load reads configuration from environment variables, falling back to
// defaults suitable for local development.
func Load() Config {
	viper.SetDefault("APP_PORT", ":8000")
	viper.SetDefault("DATABASE_PATH", "users.db")
	viper.SetDefault("SESSION_SECRET", "EXAMPLE_xpSm7p5bgJY8rNoBjGWiz5yjxMNlW6231IBI62OkLc=")
	viper.SetDefault("SESSION_LIFETIME", "12h")
	viper.SetDefault("REMEMBER_LIFETIME", "360h") // 15 days
	viper.SetDefault("ADMIN_SEED_PASSWORD", "Admin")
	viper.SetDefault("SEED_SAMPLE_DATA", true)
	viper.AutomaticEnv()

	return Config{
		AppPort:           viper.GetString("APP_PORT"),
		DatabasePath:      viper.GetString("DATABASE_PATH"),
		SessionSecret:     viper.GetString("SESSION_SECRET"),
		SessionLifetime:   viper.GetDuration("SESSION_LIFETIME"),
		RememberLifetime:  viper.GetDuration("REMEMBER_LIFETIME"),
		AdminSeedPassword: viper.GetString("ADMIN_SEED_PASSWORD"),
		SeedSampleData:    viper.GetBool("SEED_SAMPLE_DATA"),
	}
}
