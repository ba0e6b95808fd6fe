package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envFile - необязательный файл с переменными окружения
const envFile = ".env"

// envPattern находит ссылки вида ${VAR} и ${VAR:-default}
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults подставляет переменные окружения.
// Пустая или незаданная переменная заменяется значением после ":-".
func expandEnvWithDefaults(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(ref string) string {
		groups := envPattern.FindStringSubmatch(ref)
		if value := os.Getenv(groups[1]); value != "" {
			return value
		}
		return groups[2]
	})
}

// parseScalar приводит строку после подстановки к bool, int или float,
// чтобы viper.Unmarshal разложил ее по типизированным полям
func parseScalar(s string) interface{} {
	if s == "true" || s == "false" {
		return s == "true"
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// InitConfig читает YAML (или другой поддерживаемый viper формат) в структуру C.
// Перед чтением подгружается необязательный .env.
func InitConfig[C any](configFile string) (*C, error) {
	// Уже заданные переменные окружения .env не перезаписывает
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("godotenv.Load: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType(strings.TrimPrefix(filepath.Ext(configFile), "."))
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig: %w", err)
	}

	for _, key := range v.AllKeys() {
		raw := v.GetString(key)
		if !strings.Contains(raw, "${") {
			continue
		}
		v.Set(key, parseScalar(expandEnvWithDefaults(raw)))
	}

	cfg := new(C)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}

	return cfg, nil
}

// Load читает конфигурацию сервиса и заполняет значения по умолчанию
func Load(configFile string) (*Config, error) {
	cfg, err := InitConfig[Config](configFile)
	if err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return cfg, nil
}
