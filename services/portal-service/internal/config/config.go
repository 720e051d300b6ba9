package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/vasapolrittideah/careers-portal/shared/mailer"
)

// PortalServiceConfig holds every setting of the portal service, read from the environment.
type PortalServiceConfig struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"portal-service"`
	AppEnv      string `env:"APP_ENV"      envDefault:"production"`
	LogLevel    string `env:"LOG_LEVEL"    envDefault:"info"`

	HTTP     HTTPConfig     `envPrefix:"HTTP_"`
	GRPC     GRPCConfig     `envPrefix:"GRPC_"`
	Mongo    MongoConfig    `envPrefix:"MONGO_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Token    TokenConfig    `envPrefix:"TOKEN_"`
	Google   GoogleConfig   `envPrefix:"GOOGLE_"`
	Facebook FacebookConfig `envPrefix:"FACEBOOK_"`
	Consul   ConsulConfig   `envPrefix:"CONSUL_"`
	SMTP     mailer.Config  `envPrefix:"SMTP_"`
	Contact  ContactConfig  `envPrefix:"CONTACT_"`
	Payment  PaymentConfig  `envPrefix:"PAYMENT_"`
}

type HTTPConfig struct {
	Port        int    `env:"PORT"         envDefault:"8080"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	// Only enable behind a proxy that overwrites X-Forwarded-For and X-Real-IP.
	TrustProxy  bool   `env:"TRUST_PROXY"  envDefault:"false"`
}

type GRPCConfig struct {
	Port int `env:"PORT" envDefault:"9090"`
}

type MongoConfig struct {
	URI      string `env:"URI"      envDefault:"mongodb://localhost:27017"`
	Database string `env:"DATABASE" envDefault:"careers_portal"`
}

// RedisConfig is optional. Without a URL the submit lock and the auth rate
// limit are disabled.
type RedisConfig struct {
	URL            string        `env:"URL"`
	SubmitLockTTL  time.Duration `env:"SUBMIT_LOCK_TTL"  envDefault:"30s"`
	AuthRateLimit  int           `env:"AUTH_RATE_LIMIT"  envDefault:"20"`
	AuthRateWindow time.Duration `env:"AUTH_RATE_WINDOW" envDefault:"1m"`
}

type TokenConfig struct {
	Issuer                string        `env:"ISSUER"             envDefault:"careers-portal"`
	Audience              string        `env:"AUDIENCE"           envDefault:"careers-portal-web"`
	AccessTokenSecret     string        `env:"ACCESS_SECRET"`
	AccessTokenExpiresIn  time.Duration `env:"ACCESS_EXPIRES_IN"  envDefault:"15m"`
	RefreshTokenSecret    string        `env:"REFRESH_SECRET"`
	RefreshTokenExpiresIn time.Duration `env:"REFRESH_EXPIRES_IN" envDefault:"168h"`
}

type GoogleConfig struct {
	ClientID string `env:"CLIENT_ID"`
}

type FacebookConfig struct {
	AppID     string `env:"APP_ID"`
	AppSecret string `env:"APP_SECRET"`
	GraphURL  string `env:"GRAPH_URL"`
}

// ConsulConfig is optional. Without an address the service does not register.
type ConsulConfig struct {
	Address        string `env:"ADDRESS"`
	ServiceAddress string `env:"SERVICE_ADDRESS" envDefault:"127.0.0.1"`
}

type ContactConfig struct {
	Inbox string `env:"INBOX"`
}

type PaymentConfig struct {
	QRImageURL string `env:"QR_IMAGE_URL" envDefault:"/upi-qr-code.png"`
}

// Load parses the environment and validates required settings.
func Load() (*PortalServiceConfig, error) {
	cfg, err := env.ParseAs[PortalServiceConfig]()
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *PortalServiceConfig) validate() error {
	if c.Mongo.URI == "" {
		return errors.New("missing MONGO_URI environment variable")
	}
	if c.Token.AccessTokenSecret == "" {
		return errors.New("missing TOKEN_ACCESS_SECRET environment variable")
	}
	if c.Token.RefreshTokenSecret == "" {
		return errors.New("missing TOKEN_REFRESH_SECRET environment variable")
	}
	if c.Token.AccessTokenSecret == c.Token.RefreshTokenSecret {
		return errors.New("TOKEN_ACCESS_SECRET and TOKEN_REFRESH_SECRET must differ")
	}

	return nil
}

// ContactEnabled reports whether both SMTP and the destination inbox are configured.
func (c *PortalServiceConfig) ContactEnabled() bool {
	return c.Contact.Inbox != "" && c.SMTP.Validate() == nil
}
