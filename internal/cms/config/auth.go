package config

import "time"

// AuthConfig содержит настройки аутентификации коллекций.
type AuthConfig struct {
	SecretKey         string        `yaml:"secret_key" env:"PAYLOAD_SECRET" env-default:"super-secret-key-change-me-in-production"`
	AdminTokenTTL     time.Duration `yaml:"admin_token_ttl" env:"CMS_AUTH_ADMIN_TOKEN_TTL" env-default:"720h"`
	AppUserTokenTTL   time.Duration `yaml:"app_user_token_ttl" env:"CMS_AUTH_APP_USER_TOKEN_TTL" env-default:"1440h"`
	ForgotPasswordTTL time.Duration `yaml:"forgot_password_ttl" env:"CMS_AUTH_FORGOT_PASSWORD_TTL" env-default:"72h"`
	MaxLoginAttempts  int           `yaml:"max_login_attempts" env:"CMS_AUTH_MAX_LOGIN_ATTEMPTS" env-default:"4"`
	LockTime          time.Duration `yaml:"lock_time" env:"CMS_AUTH_LOCK_TIME" env-default:"10m"`
	BCryptCost        int           `yaml:"bcrypt_cost" env:"CMS_AUTH_BCRYPT_COST" env-default:"10"`
}
