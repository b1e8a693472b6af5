package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const DefaultServiceName = "askadb-query-engine"

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Query       Query       `mapstructure:",squash"`
	Metrics     Metrics     `mapstructure:",squash"`
	Maintenance Maintenance `mapstructure:",squash"`
}

type App struct {
	LogLevel    string `mapstructure:"log_level"`
	ServiceName string `mapstructure:"service_name"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	Path         string `mapstructure:"database_path"`
	MaxOpenConns int    `mapstructure:"database_max_open_conns"`
	BusyTimeout  int    `mapstructure:"database_busy_timeout_ms"`
}

type Query struct {
	// Timeout zero desabilita o limite de tempo por consulta
	Timeout time.Duration `mapstructure:"query_timeout"`
}

type Metrics struct {
	Enabled bool `mapstructure:"metrics_enabled"`
}

type Maintenance struct {
	CronSchedule string `mapstructure:"maintenance_cron"`
	Enabled      bool   `mapstructure:"maintenance_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", 8002)

	viper.SetDefault("SERVICE_NAME", DefaultServiceName)
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("DATABASE_PATH", "data/askadb.db")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 4)
	viper.SetDefault("DATABASE_BUSY_TIMEOUT_MS", 5000)

	viper.SetDefault("QUERY_TIMEOUT", "0s")

	viper.SetDefault("METRICS_ENABLED", true)

	viper.SetDefault("MAINTENANCE_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("MAINTENANCE_ENABLED", false)
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if config.App.ServiceName == "" {
		config.App.ServiceName = DefaultServiceName
	}

	if config.Database.MaxOpenConns <= 0 {
		config.Database.MaxOpenConns = 1
	}

	return config, nil
}

// loadEnvFile tenta carregar um .env do diretório atual ou dos diretórios acima
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
