package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Log       LogConfig       `mapstructure:"log"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RabbitMQ  RabbitMQConfig  `mapstructure:"rabbitmq"`
	S3        S3Config        `mapstructure:"s3"`
	Supabase  SupabaseConfig  `mapstructure:"supabase"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DatabaseConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxIdle     int    `mapstructure:"max_idle"`
	EnableTLS   bool   `mapstructure:"enable_tls"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	PoolSize  int    `mapstructure:"pool_size"`
	EnableTLS bool   `mapstructure:"enable_tls"`
}

type RabbitMQConfig struct {
	URL          string `mapstructure:"url"`
	EnableTLS    bool   `mapstructure:"enable_tls"`
	ExchangeName string `mapstructure:"exchange_name"`
	RoutingKey   struct {
		BookingEvents string `mapstructure:"booking_events"`
		QuoteEvents   string `mapstructure:"quote_events"`
	} `mapstructure:"routing_key"`
}

type S3Config struct {
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	MediaPrefix      string `mapstructure:"media_prefix"`
	PublicBaseURL    string `mapstructure:"public_base_url"`
	PresignExpireSec int    `mapstructure:"presign_expire_sec"`
}

type SupabaseConfig struct {
	ProjectRef string `mapstructure:"project_ref"`
	AnonKey    string `mapstructure:"anon_key"`
	AuthURL    string `mapstructure:"auth_url"`
}

type AdminConfig struct {
	// BootstrapEmail is granted a protected allow-list entry on startup and
	// can never be revoked.
	BootstrapEmail string `mapstructure:"bootstrap_email"`
}

type TelemetryConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	OtlpEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

// Load reads config.yaml from the working directory (optional) and overlays
// environment variables prefixed with VOYAGEVR (e.g. VOYAGEVR_DATABASE_DSN).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("VOYAGEVR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// the file is optional; env-only deployments are fine
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "voyagevr-api")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.addr", ":8080")

	v.SetDefault("log.level", "info")

	v.SetDefault("database.max_open", 20)
	v.SetDefault("database.max_idle", 5)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("rabbitmq.exchange_name", "voyagevr.events")
	v.SetDefault("rabbitmq.routing_key.booking_events", "booking")
	v.SetDefault("rabbitmq.routing_key.quote_events", "quote")

	v.SetDefault("s3.media_prefix", "destination-media/")
	v.SetDefault("s3.presign_expire_sec", 900)

	v.SetDefault("telemetry.sample_ratio", 1.0)
}
