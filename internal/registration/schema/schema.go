// Package schema содержит правила проверки формы завершения регистрации.
package schema

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"simplylife/pkg/i18n"
)

// Ограничения полей формы.
const (
	MinPasswordLength = 10
	MinPhoneLength    = 10
	MaxImageSize      = 50_000_000

	RoleIndependent = "independent"
	ConsentAccept   = "accept"
	ConsentRefuse   = "refuse"
)

// Имена полей формы, совпадающие с ключами multipart-запроса.
const (
	FieldID            = "id"
	FieldRole          = "role"
	FieldEmail         = "email"
	FieldPassword      = "password"
	FieldLastname      = "lastname"
	FieldFirstname     = "firstname"
	FieldCabinet       = "cabinet"
	FieldAdressCabinet = "adress_cabinet"
	FieldBirthday      = "birthday"
	FieldEntryDate     = "entry_date"
	FieldRGPD          = "rgpd"
	FieldPhone         = "phone"
	FieldImage         = "image"
)

var (
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	letterPattern = regexp.MustCompile(`[a-zA-Z]`)
	digitPattern  = regexp.MustCompile(`[0-9]`)
)

// Attachment - прикрепленный файл изображения.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Content     []byte
}

// Submission - значения формы завершения регистрации.
type Submission struct {
	ID            string
	Role          string
	Email         string
	Password      string
	Lastname      string
	Firstname     string
	Cabinet       string
	AdressCabinet string
	Birthday      string
	EntryDate     string
	RGPD          string
	Phone         string
	Image         *Attachment
}

// Errors сопоставляет имя поля со списком сообщений об ошибках.
type Errors map[string][]string

// Valid сообщает, что ошибок нет.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Fields возвращает имена полей с ошибками в алфавитном порядке.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// First возвращает первое сообщение для поля или пустую строку.
func (e Errors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e Errors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

// RequiresAdressCabinet сообщает, обязательно ли адрес кабинета для роли.
func RequiresAdressCabinet(role string) bool {
	return role == RoleIndependent
}

// Validate проверяет все поля независимо и возвращает найденные ошибки.
// Сообщения локализуются в locale.
func Validate(s Submission, locale i18n.Locale) Errors {
	errs := Errors{}
	t := func(key i18n.Key, args ...any) string { return i18n.T(locale, key, args...) }

	if s.ID == "" {
		errs.add(FieldID, t(i18n.IDRequired))
	}
	if s.Role == "" {
		errs.add(FieldRole, t(i18n.RoleRequired))
	}
	if !ValidEmail(s.Email) {
		errs.add(FieldEmail, t(i18n.EmailInvalid))
	}

	for _, key := range PasswordViolations(s.Password) {
		errs.add(FieldPassword, t(key))
	}

	if strings.TrimSpace(s.Lastname) == "" {
		errs.add(FieldLastname, t(i18n.LastnameRequired))
	}
	if strings.TrimSpace(s.Firstname) == "" {
		errs.add(FieldFirstname, t(i18n.FirstnameRequired))
	}
	if strings.TrimSpace(s.Cabinet) == "" {
		errs.add(FieldCabinet, t(i18n.CabinetRequired))
	}
	if RequiresAdressCabinet(s.Role) && strings.TrimSpace(s.AdressCabinet) == "" {
		errs.add(FieldAdressCabinet, t(i18n.AdressCabinetRequired))
	}

	if s.Birthday == "" {
		errs.add(FieldBirthday, t(i18n.BirthdayRequired))
	}
	if s.EntryDate == "" {
		errs.add(FieldEntryDate, t(i18n.EntryDateRequired))
	}
	if s.RGPD != ConsentAccept && s.RGPD != ConsentRefuse {
		errs.add(FieldRGPD, t(i18n.RGPDInvalid))
	}
	if utf8.RuneCountInString(s.Phone) < MinPhoneLength {
		errs.add(FieldPhone, t(i18n.PhoneTooShort))
	}

	if s.Image != nil && s.Image.Size > MaxImageSize {
		errs.add(FieldImage, t(i18n.ImageTooLarge, FormatMegabytes(s.Image.Size)))
	}

	return errs
}

// ValidEmail проверяет формат адреса электронной почты.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// PasswordViolations возвращает ключи сообщений для каждого нарушенного правила пароля.
func PasswordViolations(password string) []i18n.Key {
	var keys []i18n.Key
	if utf8.RuneCountInString(password) < MinPasswordLength {
		keys = append(keys, i18n.PasswordTooShort)
	}
	if !letterPattern.MatchString(password) {
		keys = append(keys, i18n.PasswordNoLetter)
	}
	if !digitPattern.MatchString(password) {
		keys = append(keys, i18n.PasswordNoDigit)
	}
	return keys
}

// FormatMegabytes переводит байты в мегабайты (10^6) с одним знаком после точки.
func FormatMegabytes(size int64) string {
	return strconv.FormatFloat(float64(size)/1_000_000, 'f', 1, 64)
}
