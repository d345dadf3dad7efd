package form_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplylife/internal/registration/form"
	"simplylife/internal/registration/schema"
	"simplylife/pkg/i18n"
)

type fakeSender struct {
	mu      sync.Mutex
	calls   []schema.Submission
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeSender) Send(_ context.Context, s schema.Submission) error {
	f.mu.Lock()
	f.calls = append(f.calls, s)
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.err
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func testProps(role string) form.Props {
	return form.Props{
		ID:        "7d4e4e1e-1c65-4d9c-9b1e-3a8f1e0c2b11",
		Role:      role,
		Email:     "paul.martin@example.fr",
		ServerURL: "http://localhost:3000",
		Locale:    i18n.French,
	}
}

func fill(t *testing.T, c *form.Controller) {
	t.Helper()
	values := map[string]string{
		schema.FieldPassword:  "motdepasse42",
		schema.FieldLastname:  "Martin",
		schema.FieldFirstname: "Paul",
		schema.FieldCabinet:   "Martin Conseil",
		schema.FieldBirthday:  "1980-02-03",
		schema.FieldEntryDate: "2015-06-01",
		schema.FieldPhone:     "0698765432",
	}
	for field, value := range values {
		require.NoError(t, c.Set(field, value))
	}
}

func TestNewControllerPrefillsProps(t *testing.T) {
	c := form.NewController(testProps("salaried"), &fakeSender{})
	st := c.State()

	assert.Equal(t, "7d4e4e1e-1c65-4d9c-9b1e-3a8f1e0c2b11", st.Values.ID)
	assert.Equal(t, "salaried", st.Values.Role)
	assert.Equal(t, "paul.martin@example.fr", st.Values.Email)
	assert.Equal(t, schema.ConsentAccept, st.Values.RGPD)
	assert.False(t, st.Submitting)
	assert.False(t, st.Succeeded)
	assert.False(t, st.PasswordVisible)
}

func TestControllerSet(t *testing.T) {
	c := form.NewController(testProps("salaried"), &fakeSender{})

	assert.ErrorIs(t, c.Set(schema.FieldEmail, "other@example.fr"), form.ErrImmutableField)
	assert.ErrorIs(t, c.Set(schema.FieldID, "x"), form.ErrImmutableField)
	assert.ErrorIs(t, c.Set(schema.FieldRole, "independent"), form.ErrImmutableField)
	assert.ErrorIs(t, c.Set("nickname", "x"), form.ErrUnknownField)

	require.NoError(t, c.Set(schema.FieldRGPD, schema.ConsentRefuse))
	assert.Equal(t, schema.ConsentRefuse, c.State().Values.RGPD)
}

func TestControllerTogglePasswordVisibility(t *testing.T) {
	c := form.NewController(testProps("salaried"), &fakeSender{})

	c.TogglePasswordVisibility()
	assert.True(t, c.State().PasswordVisible)
	c.TogglePasswordVisibility()
	assert.False(t, c.State().PasswordVisible)
}

func TestControllerSubmitValidationBlocksNetwork(t *testing.T) {
	sender := &fakeSender{}
	c := form.NewController(testProps(schema.RoleIndependent), sender)
	fill(t, c)

	err := c.Submit(context.Background())
	require.ErrorIs(t, err, form.ErrValidationFailed)
	assert.Equal(t, 0, sender.count())
	assert.Equal(t, []string{schema.FieldAdressCabinet}, c.State().Errors.Fields())

	require.NoError(t, c.Set(schema.FieldAdressCabinet, "3 place Bellecour, Lyon"))
	assert.True(t, c.State().Errors.Valid())
}

func TestControllerSubmitSuccessIsTerminal(t *testing.T) {
	sender := &fakeSender{}
	c := form.NewController(testProps("salaried"), sender)
	fill(t, c)

	require.NoError(t, c.Submit(context.Background()))
	require.Equal(t, 1, sender.count())
	assert.Equal(t, "Martin", sender.calls[0].Lastname)

	st := c.State()
	assert.True(t, st.Succeeded)
	assert.Empty(t, st.Values.Password)
	assert.ErrorIs(t, c.Set(schema.FieldLastname, "Durand"), form.ErrFormClosed)
	assert.ErrorIs(t, c.Submit(context.Background()), form.ErrFormClosed)
	assert.Equal(t, 1, sender.count())
}

func TestControllerSubmitFailurePreservesValues(t *testing.T) {
	sender := &fakeSender{err: form.ErrSubmissionFailed}
	c := form.NewController(testProps("salaried"), sender)
	fill(t, c)

	err := c.Submit(context.Background())
	require.ErrorIs(t, err, form.ErrSubmissionFailed)

	st := c.State()
	assert.False(t, st.Succeeded)
	assert.False(t, st.Submitting)
	assert.Equal(t, "Une erreur inconnue est survenue, contactez le support.", st.Failure)
	assert.Equal(t, "Martin", st.Values.Lastname)
	assert.Equal(t, "motdepasse42", st.Values.Password)

	sender.err = nil
	require.NoError(t, c.Submit(context.Background()))
	assert.Equal(t, 2, sender.count())
	assert.Empty(t, c.State().Failure)
}

func TestControllerSubmitInFlightGuard(t *testing.T) {
	sender := &fakeSender{started: make(chan struct{}), release: make(chan struct{})}
	c := form.NewController(testProps("salaried"), sender)
	fill(t, c)

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background()) }()

	<-sender.started
	assert.True(t, c.State().Submitting)
	assert.ErrorIs(t, c.Submit(context.Background()), form.ErrSubmissionInFlight)

	close(sender.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, sender.count())
}

func TestControllerImage(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000")
	sender := &fakeSender{}
	c := form.NewController(testProps("salaried"), sender)
	fill(t, c)

	require.NoError(t, c.AttachImage("avatar.png", png))
	st := c.State()
	require.NotNil(t, st.Values.Image)
	assert.Equal(t, "image/png", st.Values.Image.ContentType)
	assert.Equal(t, int64(len(png)), st.Values.Image.Size)
	assert.True(t, strings.HasPrefix(st.ImagePreview, "data:image/png;base64,"))

	require.NoError(t, c.DetachImage())
	st = c.State()
	assert.Nil(t, st.Values.Image)
	assert.Empty(t, st.ImagePreview)

	require.NoError(t, c.Submit(context.Background()))
	assert.Nil(t, sender.calls[0].Image)
}

func TestControllerOversizedImageBlocksSubmit(t *testing.T) {
	sender := &fakeSender{}
	c := form.NewController(testProps("salaried"), sender)
	fill(t, c)

	require.NoError(t, c.AttachImage("big.jpg", make([]byte, schema.MaxImageSize+1)))

	err := c.Submit(context.Background())
	require.True(t, errors.Is(err, form.ErrValidationFailed))
	assert.Equal(t, "Fichier trop lourd (50.0 Mo). Maximum autorisé : 50 Mo", c.State().Errors.First(schema.FieldImage))
	assert.Equal(t, 0, sender.count())
}
