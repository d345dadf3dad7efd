package config

// EmailConfig содержит настройки отправки писем через Resend.
type EmailConfig struct {
	ResendAPIKey string `yaml:"resend_api_key" env:"RESEND_API_KEY"`
	FromAddress  string `yaml:"from_address" env:"RESEND_FROM_EMAIL" env-default:"onboarding@resend.dev"`
	FromName     string `yaml:"from_name" env:"CMS_EMAIL_FROM_NAME" env-default:"Simply Life Admin"`
}

// From возвращает адрес отправителя с именем.
func (e *EmailConfig) From() string {
	if e.FromName == "" {
		return e.FromAddress
	}
	return e.FromName + " <" + e.FromAddress + ">"
}
