package form

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"simplylife/pkg/i18n"
)

// RegistrationPropsPath - путь получения параметров страницы регистрации.
const RegistrationPropsPath = "/api/app-users/create/"

// ErrPropsUnavailable возвращается, если параметры страницы получить не удалось.
var ErrPropsUnavailable = errors.New("registration props unavailable")

// Сообщения об ошибках загрузки параметров.
const (
	ErrReadProps    = "failed to read props"
	ErrInvalidProps = "invalid props payload"
	ErrMissingProp  = "missing prop"
)

// FetchProps загружает параметры страницы для приглашенного пользователя.
// Если сервер не вернул serverURL, используется serverURL запроса.
func FetchProps(ctx context.Context, client *http.Client, serverURL, id string, locale i18n.Locale) (Props, error) {
	if client == nil {
		client = http.DefaultClient
	}
	base := strings.TrimRight(serverURL, "/")
	endpoint := base + RegistrationPropsPath + url.PathEscape(id) + "?locale=" + string(locale)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Props{}, fmt.Errorf("%w: %s: %w", ErrPropsUnavailable, ErrBuildRequest, err)
	}
	req.Header.Set("Accept-Language", string(locale))

	resp, err := client.Do(req)
	if err != nil {
		return Props{}, fmt.Errorf("%w: %s: %w", ErrPropsUnavailable, ErrSendRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Props{}, fmt.Errorf("%w: %s: %w", ErrPropsUnavailable, ErrReadProps, err)
	}
	if resp.StatusCode != http.StatusOK {
		if msg := gjson.GetBytes(body, "error").String(); msg != "" {
			return Props{}, fmt.Errorf("%w: %s %d: %s", ErrPropsUnavailable, ErrUnexpectedHTTP, resp.StatusCode, msg)
		}
		return Props{}, fmt.Errorf("%w: %s %d", ErrPropsUnavailable, ErrUnexpectedHTTP, resp.StatusCode)
	}

	props, err := ParseProps(body)
	if err != nil {
		return Props{}, err
	}
	if props.ServerURL == "" {
		props.ServerURL = base
	}
	if props.Locale == "" {
		props.Locale = locale
	}
	return props, nil
}

// ParseProps читает параметры страницы из JSON ответа сервера.
func ParseProps(body []byte) (Props, error) {
	if !gjson.ValidBytes(body) {
		return Props{}, fmt.Errorf("%w: %s", ErrPropsUnavailable, ErrInvalidProps)
	}
	res := gjson.GetManyBytes(body, "id", "email", "role", "serverURL", "locale")

	props := Props{
		ID:        res[0].String(),
		Email:     res[1].String(),
		Role:      res[2].String(),
		ServerURL: strings.TrimRight(res[3].String(), "/"),
	}
	if l := res[4].String(); l != "" {
		props.Locale = i18n.Parse(l)
	}

	if props.ID == "" {
		return Props{}, fmt.Errorf("%w: %s %q", ErrPropsUnavailable, ErrMissingProp, "id")
	}
	if props.Email == "" {
		return Props{}, fmt.Errorf("%w: %s %q", ErrPropsUnavailable, ErrMissingProp, "email")
	}
	return props, nil
}
