package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the environment-derived settings for the engine. Every field
// has a working default so a bare `go run` serves something sensible.
type Config struct {
	Port           int
	StorageBaseURL string
	AssetsDir      string
	FrameFontPath  string
	UploadDir      string
	Production     bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present but is never required.
func Load() Config {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("PORT", "8080"))

	return Config{
		Port:           port,
		StorageBaseURL: getEnv("STORAGE_BASE_URL", ""),
		AssetsDir:      getEnv("ASSETS_DIR", "web/assets"),
		FrameFontPath:  getEnv("FRAME_FONT", "web/assets/fonts/Inter-SemiBold.ttf"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		Production:     getEnv("APP_ENV", "development") == "production",
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
