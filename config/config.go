package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultPort                    = "8080"
	DefaultAccessTokenExpiryMin    = 15
	DefaultRefreshTokenExpiryMin   = 10080
	DefaultRegistrationCodeTTLMin  = 1440
	DefaultPasswordResetCodeTTLMin = 30
	DefaultTwoFactorCodeTTLMin     = 5
	DefaultGenericCodeTTLMin       = 60
	DefaultBcryptCost              = 12
	DefaultMaxLineageWalkDepth     = 128
	DefaultAuditPageSizeCap        = 100
)

type Config struct {
	Env                     string
	Port                    string
	DBURL                   string
	AccessTokenSecret       string
	AccessExpiryMin         int
	RefreshExpiryMin        int
	RegistrationCodeTTLMin  int
	PasswordResetCodeTTLMin int
	TwoFactorCodeTTLMin     int
	GenericCodeTTLMin       int
	BcryptCost              int
	MaxLineageWalkDepth     int
	AuditPageSizeCap        int
}

func Load() *Config {
	env := getEnv("ENV", "development")

	// File values never override variables already present in the environment.
	switch env {
	case "production":
		_ = godotenv.Load("config/.env.prod")
	default:
		_ = godotenv.Load("config/.env.dev")
	}

	return &Config{
		Env:                     env,
		Port:                    getEnv("PORT", DefaultPort),
		DBURL:                   mustGetEnv("DB_URL"),
		AccessTokenSecret:       mustGetEnv("ACCESS_TOKEN_SECRET"),
		AccessExpiryMin:         getEnvAsInt("ACCESS_TOKEN_EXPIRY", DefaultAccessTokenExpiryMin),
		RefreshExpiryMin:        getEnvAsInt("REFRESH_TOKEN_EXPIRY", DefaultRefreshTokenExpiryMin),
		RegistrationCodeTTLMin:  getEnvAsInt("REGISTRATION_CODE_TTL", DefaultRegistrationCodeTTLMin),
		PasswordResetCodeTTLMin: getEnvAsInt("PASSWORD_RESET_CODE_TTL", DefaultPasswordResetCodeTTLMin),
		TwoFactorCodeTTLMin:     getEnvAsInt("TWO_FACTOR_CODE_TTL", DefaultTwoFactorCodeTTLMin),
		GenericCodeTTLMin:       getEnvAsInt("GENERIC_CODE_TTL", DefaultGenericCodeTTLMin),
		BcryptCost:              getEnvAsInt("BCRYPT_COST", DefaultBcryptCost),
		MaxLineageWalkDepth:     getEnvAsInt("MAX_LINEAGE_WALK_DEPTH", DefaultMaxLineageWalkDepth),
		AuditPageSizeCap:        getEnvAsInt("AUDIT_PAGE_SIZE_CAP", DefaultAuditPageSizeCap),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required config: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
