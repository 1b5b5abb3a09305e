package config

import (
	"os"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName   string
	Port      string
	Env       string
	Debug     bool
	LogLevel  string
	LogFormat string
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() *Config {
	once.Do(func() {
		AppConfig = &Config{
			AppName:   os.Getenv("APP_NAME"),
			Port:      os.Getenv("PORT"),
			Env:       os.Getenv("APP_ENV"),
			Debug:     os.Getenv("DEBUG") == "true",
			LogLevel:  os.Getenv("LOG_LEVEL"),
			LogFormat: os.Getenv("LOG_FORMAT"),
		}
		if AppConfig.AppName == "" {
			AppConfig.AppName = "productimport"
		}
		if AppConfig.Port == "" {
			AppConfig.Port = "8080"
		}
		if AppConfig.LogLevel == "" {
			AppConfig.LogLevel = "info"
			if AppConfig.Debug {
				AppConfig.LogLevel = "debug"
			}
		}
	})
	return AppConfig
}
