package main

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type demoConfig struct {
	LogFilePath     string
	Debug           bool
	AutoFormatDelay time.Duration
	InitialContent  string
}

// loadConfig reads .env when present and falls back to the process
// environment.
func loadConfig() demoConfig {
	_ = godotenv.Load()

	return demoConfig{
		LogFilePath:     getEnv("SCRIPTEDIT_LOG_FILE", "scriptedit-demo.log"),
		Debug:           getEnvAsBool("SCRIPTEDIT_DEBUG", false),
		AutoFormatDelay: time.Duration(getEnvAsInt("SCRIPTEDIT_AUTOFORMAT_DELAY_MS", 1000)) * time.Millisecond,
		InitialContent: getEnv("SCRIPTEDIT_CONTENT",
			"Hello [name], thanks for calling.\nYour balance is <b>[balance]</b>."),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}
