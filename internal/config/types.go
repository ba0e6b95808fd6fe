package config

// ConfigLogger настройки логирования
type ConfigLogger struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json, logfmt
}

// ConfigServer настройки сервера
type ConfigServer struct {
	PortGRPC                int `mapstructure:"port_grpc"`
	PortHTTP                int `mapstructure:"port_http"`
	HTTPReadTimeout         int `mapstructure:"http_read_timeout"`
	HTTPWriteTimeout        int `mapstructure:"http_write_timeout"`
	HTTPIdleTimeout         int `mapstructure:"http_idle_timeout"`
	HTTPReadHeaderTimeout   int `mapstructure:"http_read_header_timeout"`
	GracefulShutdownTimeout int `mapstructure:"graceful_shutdown_timeout"`
}

// ConfigGateway настройки HTTP Gateway
type ConfigGateway struct {
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
	CORSMaxAge         int    `mapstructure:"cors_max_age"`
	RateLimitRPS       int    `mapstructure:"rate_limit_rps"`
	RateLimitBurst     int    `mapstructure:"rate_limit_burst"`
}

// ConfigSwagger настройки раздачи OpenAPI документа
type ConfigSwagger struct {
	Enabled bool `mapstructure:"enabled"`
}

// ConfigFaults настройки искусственных задержек и отказов хранилища.
// Только для тестирования клиентов, в production выключено.
type ConfigFaults struct {
	Enabled       bool    `mapstructure:"enabled"`
	FailureRate   float64 `mapstructure:"failure_rate"`
	ListDelayMs   int     `mapstructure:"list_delay_ms"`
	GetDelayMs    int     `mapstructure:"get_delay_ms"`
	CreateDelayMs int     `mapstructure:"create_delay_ms"`
	UpdateDelayMs int     `mapstructure:"update_delay_ms"`
	DeleteDelayMs int     `mapstructure:"delete_delay_ms"`
}

// ConfigSeed настройки демонстрационных данных
type ConfigSeed struct {
	Enabled bool `mapstructure:"enabled"`
}

// Config основная структура конфигурации
type Config struct {
	Logger  *ConfigLogger  `mapstructure:"logger"`
	Server  *ConfigServer  `mapstructure:"server"`
	Gateway *ConfigGateway `mapstructure:"gateway"`
	Swagger *ConfigSwagger `mapstructure:"swagger"`
	Faults  *ConfigFaults  `mapstructure:"faults"`
	Seed    *ConfigSeed    `mapstructure:"seed"`
}
