package config

import (
	"time"

	"todo-service/internal/repository/faulty"
)

// ApplyDefaults создает отсутствующие секции и заполняет нулевые значения
func (c *Config) ApplyDefaults() {
	if c.Logger == nil {
		c.Logger = &ConfigLogger{}
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Format == "" {
		c.Logger.Format = "text"
	}

	if c.Server == nil {
		c.Server = &ConfigServer{}
	}
	setDefault(&c.Server.PortGRPC, 50051)
	setDefault(&c.Server.PortHTTP, 8080)
	setDefault(&c.Server.HTTPReadTimeout, 10)
	// HTTPWriteTimeout по умолчанию 0: стрим /todos/events не должен обрываться
	setDefault(&c.Server.HTTPIdleTimeout, 120)
	setDefault(&c.Server.HTTPReadHeaderTimeout, 5)
	setDefault(&c.Server.GracefulShutdownTimeout, 10)

	if c.Gateway == nil {
		c.Gateway = &ConfigGateway{}
	}
	if c.Gateway.CORSAllowedOrigins == "" {
		c.Gateway.CORSAllowedOrigins = "*"
	}
	setDefault(&c.Gateway.CORSMaxAge, 86400)
	setDefault(&c.Gateway.RateLimitRPS, 100)
	setDefault(&c.Gateway.RateLimitBurst, 10)

	if c.Swagger == nil {
		c.Swagger = &ConfigSwagger{}
	}
	if c.Faults == nil {
		c.Faults = &ConfigFaults{}
	}
	if c.Seed == nil {
		c.Seed = &ConfigSeed{}
	}
}

// FaultConfig переводит настройки в конфигурацию faulty.
// Нулевые значения берутся из faulty.DefaultConfig, отрицательные отключают задержку или отказы.
func (c *ConfigFaults) FaultConfig() faulty.Config {
	def := faulty.DefaultConfig()
	cfg := faulty.Config{
		FailureRate: c.FailureRate,
		Delays:      make(map[faulty.Operation]time.Duration, len(def.Delays)),
	}
	if cfg.FailureRate == 0 {
		cfg.FailureRate = def.FailureRate
	}

	delays := map[faulty.Operation]int{
		faulty.OpList:   c.ListDelayMs,
		faulty.OpGet:    c.GetDelayMs,
		faulty.OpCreate: c.CreateDelayMs,
		faulty.OpUpdate: c.UpdateDelayMs,
		faulty.OpDelete: c.DeleteDelayMs,
	}
	for op, ms := range delays {
		switch {
		case ms > 0:
			cfg.Delays[op] = time.Duration(ms) * time.Millisecond
		case ms == 0:
			cfg.Delays[op] = def.Delays[op]
		}
	}
	return cfg
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}
