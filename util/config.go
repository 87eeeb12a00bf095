package util

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	JWTSecret         string        `mapstructure:"JWT_SECRET" validate:"required"`
	Port              string        `mapstructure:"PORT" validate:"required,number"`
	AllowedOrigins    []string      `mapstructure:"ALLOWED_ORIGINS" validate:"required,min=1,dive,required"`
	CountdownInterval time.Duration `mapstructure:"COUNTDOWN_INTERVAL" validate:"gt=0"`
	WordsFile         string        `mapstructure:"WORDS_FILE"`
	LogLevel          string        `mapstructure:"LOG_LEVEL" validate:"oneof=trace debug info warn error"`
	ChatRate          float64       `mapstructure:"CHAT_RATE" validate:"gt=0"`
	ChatBurst         int           `mapstructure:"CHAT_BURST" validate:"gte=1"`
}

func LoadConfig() (*Config, error) {
	godotenv.Load()

	config := &Config{
		JWTSecret:      os.Getenv("JWT_SECRET"),
		Port:           os.Getenv("PORT"),
		AllowedOrigins: SplitList(getEnv("ALLOWED_ORIGINS", DefaultAllowedOrigin)),
		WordsFile:      os.Getenv("WORDS_FILE"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	interval, err := time.ParseDuration(getEnv("COUNTDOWN_INTERVAL", DefaultCountdownInterval.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid COUNTDOWN_INTERVAL: %w", err)
	}
	config.CountdownInterval = interval

	chatRate, err := strconv.ParseFloat(getEnv("CHAT_RATE", strconv.FormatFloat(DefaultChatRate, 'f', -1, 64)), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CHAT_RATE: %w", err)
	}
	config.ChatRate = chatRate

	chatBurst, err := strconv.Atoi(getEnv("CHAT_BURST", strconv.Itoa(DefaultChatBurst)))
	if err != nil {
		return nil, fmt.Errorf("invalid CHAT_BURST: %w", err)
	}
	config.ChatBurst = chatBurst

	if err := Validate.Struct(config); err != nil {
		return nil, err
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
