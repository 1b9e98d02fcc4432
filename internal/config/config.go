package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Gemini   GeminiConfig
	OCR      OCRConfig
	Storage  StorageConfig
	Worker   WorkerConfig
	Analyzer AnalyzerConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type GeminiConfig struct {
	APIKey         string
	Model          string
	RequestTimeout time.Duration
}

type OCRConfig struct {
	Pdftoppm  string
	Tesseract string
	Language  string
	DPI       int
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency      int
	RetryMaxAttempts int
}

type AnalyzerConfig struct {
	DefaultThreshold int
	SkillHints       map[string][]string
}

// defaultSkillHints maps a role title to the skills the evaluator should look
// for when the request does not supply its own hints.
var defaultSkillHints = map[string][]string{
	"Data Scientist":     {"Python", "Machine Learning", "Pandas", "Statistics"},
	"Frontend Developer": {"HTML", "CSS", "JavaScript", "React"},
	"HR Manager":         {"Recruitment", "Onboarding", "Compliance", "Policies"},
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resume_analyzer"),
		},
		Gemini: GeminiConfig{
			APIKey:         getEnv("GEMINI_API_KEY", ""),
			Model:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			RequestTimeout: getEnvAsDuration("GEMINI_REQUEST_TIMEOUT", "60s"),
		},
		OCR: OCRConfig{
			Pdftoppm:  getEnv("OCR_PDFTOPPM", "pdftoppm"),
			Tesseract: getEnv("OCR_TESSERACT", "tesseract"),
			Language:  getEnv("OCR_LANGUAGE", "eng"),
			DPI:       getEnvAsInt("OCR_DPI", 300),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency:      getEnvAsInt("WORKER_CONCURRENCY", 3),
			RetryMaxAttempts: getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
		},
		Analyzer: AnalyzerConfig{
			DefaultThreshold: getEnvAsInt("FIT_SCORE_THRESHOLD", 50),
			SkillHints:       getEnvAsSkillHints("SKILL_HINTS"),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

// getEnvAsSkillHints parses a JSON object of role -> skill list. An unset or
// malformed value falls back to the built-in table.
func getEnvAsSkillHints(key string) map[string][]string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultSkillHints
	}

	var hints map[string][]string
	if err := json.Unmarshal([]byte(valueStr), &hints); err != nil {
		log.Printf("⚠️  Invalid %s value, using built-in skill hints: %v\n", key, err)
		return defaultSkillHints
	}
	return hints
}
