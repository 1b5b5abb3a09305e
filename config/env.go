package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env, or the file named by ENV_FILE, into the environment.
// Variables that are already set win; a missing file is ignored.
func LoadEnv() {
	file := os.Getenv("ENV_FILE")
	if file == "" {
		file = ".env"
	}
	_ = godotenv.Load(file)
}
