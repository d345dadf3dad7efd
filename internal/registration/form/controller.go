// Package form реализует состояние формы завершения регистрации,
// отправку данных на сервер и отображение состояния.
package form

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"simplylife/internal/registration/schema"
	"simplylife/pkg/i18n"
	"simplylife/pkg/logger"
)

// Ошибки контроллера формы.
var (
	ErrSubmissionInFlight = errors.New("submission already in flight")
	ErrFormClosed         = errors.New("registration already completed")
	ErrImmutableField     = errors.New("field is read-only")
	ErrUnknownField       = errors.New("unknown field")
	ErrValidationFailed   = errors.New("form has validation errors")
)

// Сообщения для логирования.
const (
	LogSubmitStarted   = "registration submission started"
	LogSubmitSucceeded = "registration submission succeeded"
	LogSubmitFailed    = "registration submission failed"
	LogValidation      = "registration form has validation errors"
)

// Sender выполняет отправку проверенной формы.
type Sender interface {
	Send(ctx context.Context, s schema.Submission) error
}

// Props - неизменяемые параметры страницы, полученные от сервера.
type Props struct {
	ID        string
	Role      string
	Email     string
	ServerURL string
	Locale    i18n.Locale
}

// State - снимок состояния формы.
type State struct {
	Props           Props
	Values          schema.Submission
	ImagePreview    string
	Errors          schema.Errors
	Failure         string
	Submitting      bool
	Succeeded       bool
	PasswordVisible bool
}

// Controller хранит значения полей и флаги интерфейса формы.
// Безопасен для конкурентного использования.
type Controller struct {
	mu sync.Mutex

	props  Props
	sender Sender

	values          schema.Submission
	preview         string
	errs            schema.Errors
	failure         string
	attempted       bool
	submitting      bool
	succeeded       bool
	passwordVisible bool
}

// NewController создает контроллер с предзаполненными полями id, role и email.
func NewController(props Props, sender Sender) *Controller {
	if props.Locale == "" {
		props.Locale = i18n.Default
	}
	return &Controller{
		props:  props,
		sender: sender,
		values: schema.Submission{
			ID:    props.ID,
			Role:  props.Role,
			Email: props.Email,
			RGPD:  schema.ConsentAccept,
		},
		errs: schema.Errors{},
	}
}

// Set изменяет значение поля по имени.
func (c *Controller) Set(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.succeeded {
		return ErrFormClosed
	}

	switch field {
	case schema.FieldID, schema.FieldRole, schema.FieldEmail:
		return ErrImmutableField
	case schema.FieldPassword:
		c.values.Password = value
	case schema.FieldLastname:
		c.values.Lastname = value
	case schema.FieldFirstname:
		c.values.Firstname = value
	case schema.FieldCabinet:
		c.values.Cabinet = value
	case schema.FieldAdressCabinet:
		c.values.AdressCabinet = value
	case schema.FieldBirthday:
		c.values.Birthday = value
	case schema.FieldEntryDate:
		c.values.EntryDate = value
	case schema.FieldRGPD:
		c.values.RGPD = value
	case schema.FieldPhone:
		c.values.Phone = value
	default:
		return ErrUnknownField
	}

	c.revalidate()
	return nil
}

// TogglePasswordVisibility переключает отображение пароля.
func (c *Controller) TogglePasswordVisibility() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.passwordVisible = !c.passwordVisible
}

// AttachImage сохраняет файл и вычисляет локальное превью без загрузки на сервер.
func (c *Controller) AttachImage(filename string, content []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.succeeded {
		return ErrFormClosed
	}

	contentType := http.DetectContentType(content)
	c.values.Image = &schema.Attachment{
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(content)),
		Content:     content,
	}
	c.preview = "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(content)

	c.revalidate()
	return nil
}

// DetachImage удаляет файл и превью.
func (c *Controller) DetachImage() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.succeeded {
		return ErrFormClosed
	}

	c.values.Image = nil
	c.preview = ""

	c.revalidate()
	return nil
}

// Submit проверяет форму и выполняет одну отправку.
// Повторный вызов во время отправки возвращает ErrSubmissionInFlight без сетевого запроса.
// При ошибке отправки значения полей сохраняются, а пользователю показывается общее сообщение.
func (c *Controller) Submit(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("method", "Submit"), zap.String("id", c.props.ID))

	c.mu.Lock()
	if c.succeeded {
		c.mu.Unlock()
		return ErrFormClosed
	}
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}

	c.attempted = true
	c.failure = ""
	c.errs = schema.Validate(c.values, c.props.Locale)
	if !c.errs.Valid() {
		fields := c.errs.Fields()
		c.mu.Unlock()
		log.Debug(ctx, LogValidation, zap.Strings("fields", fields))
		return ErrValidationFailed
	}

	c.submitting = true
	snapshot := c.values
	c.mu.Unlock()

	log.Debug(ctx, LogSubmitStarted)
	err := c.sender.Send(ctx, snapshot)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false

	if err != nil {
		log.Error(ctx, LogSubmitFailed, zap.Error(err))
		c.failure = i18n.T(c.props.Locale, i18n.SubmissionFailed)
		return err
	}

	log.Info(ctx, LogSubmitSucceeded)
	c.succeeded = true
	c.values = schema.Submission{}
	c.preview = ""
	c.errs = schema.Errors{}
	return nil
}

// State возвращает копию текущего состояния.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	errs := make(schema.Errors, len(c.errs))
	for k, v := range c.errs {
		errs[k] = append([]string(nil), v...)
	}

	return State{
		Props:           c.props,
		Values:          c.values,
		ImagePreview:    c.preview,
		Errors:          errs,
		Failure:         c.failure,
		Submitting:      c.submitting,
		Succeeded:       c.succeeded,
		PasswordVisible: c.passwordVisible,
	}
}

// revalidate пересчитывает ошибки после первой попытки отправки.
func (c *Controller) revalidate() {
	if c.attempted {
		c.errs = schema.Validate(c.values, c.props.Locale)
	}
}
