package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		// URL selects the driver: postgres:// DSNs use the postgres driver,
		// anything else is opened as SQLite. The default keeps the whole
		// store in process memory.
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	JWT struct {
		SecretKey  string `mapstructure:"secret_key"`
		TTLMinutes int    `mapstructure:"ttl_minutes"`
	} `mapstructure:"jwt"`
	App struct {
		SeedDemoData bool `mapstructure:"seed_demo_data"`
	} `mapstructure:"app"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: config file not found, using defaults and environment variables")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	if Cfg.Server.Port == "" {
		Cfg.Server.Port = ":8080"
	}
	if Cfg.Database.URL == "" {
		Cfg.Database.URL = "file::memory:?cache=shared"
	}
	if Cfg.JWT.SecretKey == "" {
		log.Println("Warning: jwt secret not set, using insecure development key")
		Cfg.JWT.SecretKey = "dev-only-secret"
	}
	if Cfg.JWT.TTLMinutes <= 0 {
		Cfg.JWT.TTLMinutes = 72 * 60
	}
	if !viper.IsSet("app.seed_demo_data") {
		Cfg.App.SeedDemoData = true
	}
	if len(Cfg.CORS.AllowedOrigins) == 0 {
		Cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if len(Cfg.CORS.AllowedMethods) == 0 {
		Cfg.CORS.AllowedMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(Cfg.CORS.AllowedHeaders) == 0 {
		Cfg.CORS.AllowedHeaders = []string{"Accept", "Authorization", "Content-Type"}
	}

	log.Println("Config loaded successfully")
	return nil
}
