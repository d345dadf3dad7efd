package form

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"simplylife/internal/registration/schema"
)

// FinishRegistrationPath - путь обработчика завершения регистрации на сервере.
const FinishRegistrationPath = "/api/app-users/finish-registration"

// ImagePart - имя части multipart-запроса с изображением.
const ImagePart = "file"

// ErrSubmissionFailed - единственный класс ошибки отправки.
var ErrSubmissionFailed = errors.New("registration submission failed")

// Сообщения об ошибках.
const (
	ErrBuildBody      = "failed to build multipart body"
	ErrBuildRequest   = "failed to build request"
	ErrSendRequest    = "failed to send request"
	ErrUnexpectedHTTP = "unexpected status"
)

// Submitter отправляет форму одним multipart POST-запросом.
type Submitter struct {
	client   *http.Client
	endpoint string
}

// NewSubmitter создает адаптер отправки для базового адреса сервера.
// Если client равен nil, используется http.DefaultClient.
func NewSubmitter(serverURL string, client *http.Client) *Submitter {
	if client == nil {
		client = http.DefaultClient
	}
	return &Submitter{
		client:   client,
		endpoint: strings.TrimRight(serverURL, "/") + FinishRegistrationPath,
	}
}

// Endpoint возвращает полный адрес отправки.
func (s *Submitter) Endpoint() string {
	return s.endpoint
}

// Send выполняет ровно один запрос. Успех определяется только кодом 2xx, тело ответа не читается.
func (s *Submitter) Send(ctx context.Context, sub schema.Submission) error {
	body, contentType, err := EncodeMultipart(sub)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSubmissionFailed, ErrBuildBody, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, body)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSubmissionFailed, ErrBuildRequest, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSubmissionFailed, ErrSendRequest, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s %d", ErrSubmissionFailed, ErrUnexpectedHTTP, resp.StatusCode)
	}

	return nil
}

// EncodeMultipart сериализует форму: каждое скалярное поле под своим ключом,
// изображение - частью "file", если оно прикреплено.
func EncodeMultipart(sub schema.Submission) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := []struct{ key, value string }{
		{schema.FieldID, sub.ID},
		{schema.FieldRole, sub.Role},
		{schema.FieldEmail, sub.Email},
		{schema.FieldPassword, sub.Password},
		{schema.FieldLastname, sub.Lastname},
		{schema.FieldFirstname, sub.Firstname},
		{schema.FieldCabinet, sub.Cabinet},
		{schema.FieldAdressCabinet, sub.AdressCabinet},
		{schema.FieldBirthday, sub.Birthday},
		{schema.FieldEntryDate, sub.EntryDate},
		{schema.FieldRGPD, sub.RGPD},
		{schema.FieldPhone, sub.Phone},
	}
	for _, f := range fields {
		if err := w.WriteField(f.key, f.value); err != nil {
			return nil, "", err
		}
	}

	if sub.Image != nil {
		contentType := sub.Image.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, ImagePart, sub.Image.Filename))
		h.Set("Content-Type", contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(sub.Image.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
