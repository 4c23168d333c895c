package config

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Gateway  GatewayConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Campaign CampaignConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type GatewayConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type CampaignConfig struct {
	MessageCost decimal.Decimal
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	gatewayTimeout, err := time.ParseDuration(viper.GetString("GATEWAY_TIMEOUT"))
	if err != nil {
		gatewayTimeout = 30 * time.Second
	}

	messageCost, err := decimal.NewFromString(viper.GetString("CAMPAIGN_MESSAGE_COST"))
	if err != nil {
		messageCost = decimal.NewFromFloat(0.05)
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Gateway: GatewayConfig{
			BaseURL: viper.GetString("GATEWAY_BASE_URL"),
			APIKey:  viper.GetString("GATEWAY_API_KEY"),
			Timeout: gatewayTimeout,
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Campaign: CampaignConfig{
			MessageCost: messageCost,
		},
	}

	return config, nil
}
