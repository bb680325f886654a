package settings

type Config struct {
	Logger Logger `mapstructure:"logger"`
	Kafka  Kafka  `mapstructure:"kafka"`
	Redis  Redis  `mapstructure:"redis"`
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level"`
	FileLogName string `mapstructure:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups"`
	MaxAge      int    `mapstructure:"max_age"`
	MaxSize     int    `mapstructure:"max_size"`
	Compress    bool   `mapstructure:"compress"`
}

// Kafka is the configuration for Kafka consumer sources
type Kafka struct {
	Brokers           []string `mapstructure:"brokers"`
	GroupID           string   `mapstructure:"group_id"`
	Topics            []string `mapstructure:"topics"`
	Timeout           int      `mapstructure:"timeout"`             // Seconds
	MaxRetries        int      `mapstructure:"max_retries"`         // Number of retries
	RetryBackoff      int      `mapstructure:"retry_backoff"`       // Milliseconds
	MaxProcessingTime int      `mapstructure:"max_processing_time"` // Milliseconds
}

// Redis is the configuration for Redis Pub/Sub sources
type Redis struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Password        string `mapstructure:"password"`
	Database        int    `mapstructure:"database"`
	PoolSize        int    `mapstructure:"pool_size"`
	MinIdleConns    int    `mapstructure:"min_idle_conns"`
	PoolTimeout     int    `mapstructure:"pool_timeout"`
	DialTimeout     int    `mapstructure:"dial_timeout"`
	ReadTimeout     int    `mapstructure:"read_timeout"`
	WriteTimeout    int    `mapstructure:"write_timeout"`
	MaxRetries      int    `mapstructure:"max_retries"`
	MaxRetryBackoff int    `mapstructure:"max_retry_backoff"`
	MinRetryBackoff int    `mapstructure:"min_retry_backoff"`
}
