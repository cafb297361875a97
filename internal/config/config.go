package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Firestore FirestoreConfig `yaml:"firestore"`
	Paystack  PaystackConfig  `yaml:"paystack"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	SMS       SMSConfig       `yaml:"sms"`
	JWT       JWTConfig       `yaml:"jwt"`
	Limits    LimitsConfig    `yaml:"limits"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// FirestoreConfig contains the document database settings
type FirestoreConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
}

// PaystackConfig contains gateway settings. SecretKey signs webhooks and
// authorizes API calls; its absence is a fatal configuration error.
type PaystackConfig struct {
	SecretKey string `yaml:"secret_key"`
	BaseURL   string `yaml:"base_url"`

	ProductPlan33  string `yaml:"product_plan_33"`
	ProductPlan73  string `yaml:"product_plan_73"`
	ProductPlan183 string `yaml:"product_plan_183"`
	StorePlanFree  string `yaml:"store_plan_free"`
	StorePlanBasic string `yaml:"store_plan_basic"`
	StorePlanPrem  string `yaml:"store_plan_premium"`
}

// SendGridConfig contains email notification settings
type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// SMSConfig contains the SMS provider settings
type SMSConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
	Sender string `yaml:"sender"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// LimitsConfig contains withdrawal policy knobs. Amounts are string-encoded
// decimals; percentages are whole numbers.
type LimitsConfig struct {
	MaxTransferAmount string `yaml:"max_transfer_amount"`
	PlatformFeePct    int64  `yaml:"platform_fee_pct"`
	DailyLimitPct     int64  `yaml:"daily_limit_pct"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	SweepExpiredSubscriptions string `yaml:"sweep_expired_subscriptions"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	if val := os.Getenv("FIRESTORE_PROJECT_ID"); val != "" {
		c.Firestore.ProjectID = val
	}
	if val := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); val != "" {
		c.Firestore.CredentialsFile = val
	}

	if val := os.Getenv("PAYSTACK_SECRET_KEY"); val != "" {
		c.Paystack.SecretKey = val
	}
	if val := os.Getenv("PAYSTACK_BASE_URL"); val != "" {
		c.Paystack.BaseURL = val
	}
	if val := os.Getenv("PAYSTACK_PRODUCT_33"); val != "" {
		c.Paystack.ProductPlan33 = val
	}
	if val := os.Getenv("PAYSTACK_PRODUCT_73"); val != "" {
		c.Paystack.ProductPlan73 = val
	}
	if val := os.Getenv("PAYSTACK_PRODUCT_183"); val != "" {
		c.Paystack.ProductPlan183 = val
	}

	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("SMS_API_KEY"); val != "" {
		c.SMS.APIKey = val
	}

	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Firestore.ProjectID == "" {
		return fmt.Errorf("firestore project id is required")
	}

	// A missing gateway secret means webhook signatures can never verify.
	// Fail at startup rather than rejecting every event at runtime.
	if c.Paystack.SecretKey == "" {
		return fmt.Errorf("paystack secret key is required")
	}
	if c.Paystack.BaseURL == "" {
		c.Paystack.BaseURL = "https://api.paystack.co"
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	// Withdrawal policy defaults
	if c.Limits.MaxTransferAmount == "" {
		c.Limits.MaxTransferAmount = "2000.00"
	}
	if c.Limits.PlatformFeePct == 0 {
		c.Limits.PlatformFeePct = 6
	}
	if c.Limits.DailyLimitPct == 0 {
		c.Limits.DailyLimitPct = 60
	}

	// Scheduler defaults
	if c.Scheduler.SweepExpiredSubscriptions == "" {
		c.Scheduler.SweepExpiredSubscriptions = "0 0 1 * * *" // 1 AM UTC
	}

	return nil
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
