// Package email отправляет письма CMS через Resend.
package email

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"simplylife/internal/cms/domain/services"
	svc "simplylife/internal/cms/ports/services"
	"simplylife/internal/cms/resilience"
	"simplylife/pkg/logger"
)

const (
	methodSend       = "Send"
	operationSend    = "resend.send"
	msgEmailSent     = "email sent"
	msgEmailFailed   = "error sending email"
	errCtxSendingEml = "sending email"
)

// Sender - часть клиента Resend, используемая адаптером.
type Sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Mailer реализует svc.Mailer поверх Resend.
type Mailer struct {
	sender     Sender
	from       string
	resilience *resilience.ServiceResilience
}

// NewMailer создает почтовый адаптер. from используется, если письмо не задает отправителя.
func NewMailer(sender Sender, from string, r *resilience.ServiceResilience) svc.Mailer {
	if r == nil {
		r = resilience.NewServiceResilience("resend")
	}
	return &Mailer{sender: sender, from: from, resilience: r}
}

// NewResendMailer создает адаптер с клиентом Resend по API-ключу.
func NewResendMailer(apiKey, from string) svc.Mailer {
	return NewMailer(resend.NewClient(apiKey).Emails, from, nil)
}

// Send проверяет письмо и отправляет его. Возвращает идентификатор письма у Resend.
func (m *Mailer) Send(ctx context.Context, email *services.Email) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSend), zap.Strings("to", email.To))

	if email.HTML == "" && email.Text == "" {
		return "", services.ErrEmailBodyMissing
	}
	if len(email.To) == 0 {
		return "", services.ErrEmailRecipient
	}

	req := toRequest(email, m.from)
	resp, err := resilience.Execute(ctx, m.resilience, operationSend, func() (*resend.SendEmailResponse, error) {
		resp, err := m.sender.SendWithContext(ctx, req)
		if err != nil && !notDelivered(err) {
			return nil, resilience.Permanent(err)
		}
		return resp, err
	})
	if err != nil {
		log.Error(ctx, msgEmailFailed, zap.String("subject", email.Subject), zap.Error(err))
		return "", fmt.Errorf("%s: %w: %w", errCtxSendingEml, services.ErrEmailSendFailed, err)
	}

	log.Info(ctx, msgEmailSent, zap.String("id", resp.Id))
	return resp.Id, nil
}

// notDelivered сообщает, что запрос не дошел до Resend и его можно повторить без риска дубля.
// Ответ с ошибкой или обрыв после отправки означают, что письмо могло быть принято.
func notDelivered(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}

func toRequest(email *services.Email, defaultFrom string) *resend.SendEmailRequest {
	from := email.From
	if from == "" {
		from = defaultFrom
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		Cc:      email.Cc,
		Bcc:     email.Bcc,
		ReplyTo: email.ReplyTo,
	}
	for _, a := range email.Attachments {
		req.Attachments = append(req.Attachments, &resend.Attachment{
			Content:     a.Content,
			Filename:    a.Filename,
			ContentType: a.ContentType,
		})
	}
	return req
}
