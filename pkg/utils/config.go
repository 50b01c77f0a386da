package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type BookingConfig struct {
	// Currency stamped onto every booking at creation time.
	DefaultCurrency string
	// NumberLength is the random part of a booking number, excluding prefix.
	NumberLength int
	// NumberAttempts bounds the collision retries before the timestamp fallback.
	NumberAttempts int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DEFAULT_CURRENCY", "USD")
	viper.SetDefault("BOOKING_NUMBER_LENGTH", 8)
	viper.SetDefault("BOOKING_NUMBER_ATTEMPTS", 5)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Booking: BookingConfig{
			DefaultCurrency: viper.GetString("DEFAULT_CURRENCY"),
			NumberLength:    viper.GetInt("BOOKING_NUMBER_LENGTH"),
			NumberAttempts:  viper.GetInt("BOOKING_NUMBER_ATTEMPTS"),
		},
	}

	return config, nil
}
