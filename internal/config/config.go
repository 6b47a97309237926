package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		PublicBaseURL   string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"30"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN                string `env:"DSN,required"`
		ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout       int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		TransactionTimeout int    `env:"TRANSACTION_TIMEOUT" envDefault:"20"`
		MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime        int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	Company struct {
		Name    string `env:"NAME" envDefault:"CLASNET GROUP"`
		Address string `env:"ADDRESS" envDefault:"Jl. Serulingmas No. 32, Banjarnegara, Indonesia"`
		Phone   string `env:"PHONE" envDefault:"+62 286 123456"`
	} `envPrefix:"COMPANY_"`
	Document struct {
		DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"id"`
		CacheTTL      int    `env:"CACHE_TTL" envDefault:"600"` // 10 minutes
	} `envPrefix:"DOCUMENT_"`
	Payment struct {
		LeadBonusPercent      float64 `env:"LEAD_BONUS_PERCENT" envDefault:"10"`
		AssistantSharePercent float64 `env:"ASSISTANT_SHARE_PERCENT" envDefault:"50"`
	} `envPrefix:"PAYMENT_"`
	ShareLink struct {
		Secret     string `env:"SECRET,required"`
		Expiration int    `env:"EXPIRATION" envDefault:"604800"` // 7 days
	} `envPrefix:"SHARE_LINK_"`
	Seed struct {
		Count int `env:"COUNT" envDefault:"5"`
	} `envPrefix:"SEED_"`
	Email struct {
		SMTP struct {
			Username    string `env:"USERNAME,required"`
			Password    string `env:"PASSWORD,required"`
			Host        string `env:"HOST,required"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host                string `env:"HOST" envDefault:"localhost"`
		Port                int    `env:"PORT" envDefault:"6379"`
		Password            string `env:"PASSWORD"`
		ConnectTimeout      int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		OperationExpiration int    `env:"OPERATION_EXPIRATION" envDefault:"10"`
		StatsExpiration     int    `env:"STATS_EXPIRATION" envDefault:"30"`
	} `envPrefix:"REDIS_"`
	MinIO struct {
		Enabled         bool   `env:"ENABLED" envDefault:"false"`
		Endpoint        string `env:"ENDPOINT" envDefault:"localhost:9000"`
		AccessKeyID     string `env:"ACCESS_KEY_ID"`
		SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
		BucketName      string `env:"BUCKET_NAME" envDefault:"documents"`
		UseSSL          bool   `env:"USE_SSL" envDefault:"false"`
		PresignExpiry   int    `env:"PRESIGN_EXPIRY" envDefault:"3600"`
	} `envPrefix:"MINIO_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// only the first error keeps the log readable
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}
