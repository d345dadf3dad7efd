package services

import "errors"

// Ошибки отправки писем.
var (
	ErrEmailBodyMissing = errors.New("either 'html' or 'text' must be provided")
	ErrEmailRecipient   = errors.New("at least one recipient is required")
	ErrEmailSendFailed  = errors.New("email sending failed")
)

// EmailAttachment - вложение письма.
type EmailAttachment struct {
	Filename    string
	Content     []byte
	ContentType string
}

// Email описывает письмо для отправки.
type Email struct {
	To          []string
	Subject     string
	HTML        string
	Text        string
	From        string
	Cc          []string
	Bcc         []string
	ReplyTo     string
	Attachments []EmailAttachment
}
