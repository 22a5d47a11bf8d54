package config

import (
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Ledger connection
	RPCURL          string
	ChainID         int64
	PrivateKeyHex   string
	ContractAddress string

	// Fixed fee budgets per mutation kind
	GasPriceGwei     int64
	SubmitGasLimit   uint64
	CompleteGasLimit uint64
	RevokeGasLimit   uint64

	// Confirmation tracking
	ConfirmationTimeout      time.Duration
	ConfirmationPollInterval time.Duration

	RateLimit          string
	CORSAllowedOrigins []string

	PosthogAPIKey   string
	PosthogEndpoint string
}

// GasPriceWei converts the configured gwei price to wei.
func (c *Config) GasPriceWei() *big.Int {
	return new(big.Int).Mul(big.NewInt(c.GasPriceGwei), big.NewInt(1_000_000_000))
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "invreg-backend")
	viper.SetDefault("RPC_URL", "")
	viper.SetDefault("CHAIN_ID", int64(420420421))
	viper.SetDefault("PRIVATE_KEY", "")
	viper.SetDefault("CONTRACT_ADDRESS", "")
	viper.SetDefault("GAS_PRICE_GWEI", int64(5))
	viper.SetDefault("SUBMIT_GAS_LIMIT", uint64(300000))
	viper.SetDefault("COMPLETE_GAS_LIMIT", uint64(200000))
	viper.SetDefault("REVOKE_GAS_LIMIT", uint64(200000))
	viper.SetDefault("CONFIRMATION_TIMEOUT", "90s")
	viper.SetDefault("CONFIRMATION_POLL_INTERVAL", "2s")
	viper.SetDefault("RATE_LIMIT", "5-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RPCURL = viper.GetString("RPC_URL")
	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("RPC_URL environment variable is required")
	}
	cfg.ChainID = viper.GetInt64("CHAIN_ID")
	cfg.PrivateKeyHex = strings.TrimPrefix(viper.GetString("PRIVATE_KEY"), "0x")
	if cfg.PrivateKeyHex == "" {
		return nil, fmt.Errorf("PRIVATE_KEY environment variable is required")
	}
	cfg.ContractAddress = viper.GetString("CONTRACT_ADDRESS")
	if cfg.ContractAddress == "" {
		return nil, fmt.Errorf("CONTRACT_ADDRESS environment variable is required")
	}

	cfg.GasPriceGwei = viper.GetInt64("GAS_PRICE_GWEI")
	cfg.SubmitGasLimit = viper.GetUint64("SUBMIT_GAS_LIMIT")
	cfg.CompleteGasLimit = viper.GetUint64("COMPLETE_GAS_LIMIT")
	cfg.RevokeGasLimit = viper.GetUint64("REVOKE_GAS_LIMIT")

	confirmTimeoutStr := viper.GetString("CONFIRMATION_TIMEOUT")
	confirmTimeout, err := time.ParseDuration(confirmTimeoutStr)
	if err != nil {
		confirmTimeout = 90 * time.Second
		log.Printf("Warning: Invalid value for CONFIRMATION_TIMEOUT ('%s'). Defaulting to %s.\n", confirmTimeoutStr, confirmTimeout)
	}
	cfg.ConfirmationTimeout = confirmTimeout

	pollIntervalStr := viper.GetString("CONFIRMATION_POLL_INTERVAL")
	pollInterval, err := time.ParseDuration(pollIntervalStr)
	if err != nil {
		pollInterval = 2 * time.Second
		log.Printf("Warning: Invalid value for CONFIRMATION_POLL_INTERVAL ('%s'). Defaulting to %s.\n", pollIntervalStr, pollInterval)
	}
	cfg.ConfirmationPollInterval = pollInterval

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",")

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	return cfg, nil
}
