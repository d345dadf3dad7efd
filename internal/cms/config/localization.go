package config

import "simplylife/pkg/i18n"

// LocalizationConfig содержит настройки локализации.
type LocalizationConfig struct {
	DefaultLocale string `yaml:"default_locale" env:"CMS_DEFAULT_LOCALE" env-default:"fr"`
}

// Default возвращает локаль по умолчанию.
func (l *LocalizationConfig) Default() i18n.Locale {
	return i18n.Parse(l.DefaultLocale)
}
