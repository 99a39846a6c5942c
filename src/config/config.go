package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Auth            AuthConfig           `mapstructure:"auth"`
	Symbols         SymbolsConfig        `mapstructure:"symbols"`
	AWS             AWSConfig            `mapstructure:"aws"`
}

type ServiceType string

const (
	API    ServiceType = "API"
	WORKER ServiceType = "WORKER"
)

type ServiceConfig struct {
	Type ServiceType `mapstructure:"type"`
	Port string      `mapstructure:"port"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Driver           string `mapstructure:"driver"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwtSecret"`
}

type SymbolsConfig struct {
	MasterFile string `mapstructure:"masterFile"`
}

type AWSConfig struct {
	Region        string `mapstructure:"region"`
	PlaidSecretID string `mapstructure:"plaidSecretId"`
	FyersSecretID string `mapstructure:"fyersSecretId"`
}

type ExternalClientConfig struct {
	Plaid PlaidConfig `mapstructure:"plaid"`
	Fyers FyersConfig `mapstructure:"fyers"`
}

type PlaidConfig struct {
	BaseURL      string `mapstructure:"baseUrl"`
	ClientID     string `mapstructure:"clientId"`
	Secret       string `mapstructure:"secret"`
	ClientName   string `mapstructure:"clientName"`
	CountryCodes string `mapstructure:"countryCodes"`
}

type FyersConfig struct {
	BaseURL   string `mapstructure:"baseUrl"`
	AppID     string `mapstructure:"appId"`
	AppSecret string `mapstructure:"appSecret"`
}

func LoadConfig(path, env string) (*Config, error) {
	var cfg Config

	viper.AddConfigPath(path)
	if env != "" {
		viper.SetConfigName("appsettings." + env)
	} else {
		viper.SetConfigName("appsettings")
	}
	viper.SetConfigType("yaml")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
