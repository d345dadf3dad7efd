package form_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplylife/internal/registration/form"
	"simplylife/internal/registration/schema"
)

func submission() schema.Submission {
	return schema.Submission{
		ID:        "c0b1f3a4-8f4e-4d21-a8d4-2b1a0e9f7c55",
		Role:      "salaried",
		Email:     "lea.bernard@example.fr",
		Password:  "secretpass9",
		Lastname:  "Bernard",
		Firstname: "Léa",
		Cabinet:   "Bernard Patrimoine",
		Birthday:  "1990-11-30",
		EntryDate: "2020-01-15",
		RGPD:      schema.ConsentAccept,
		Phone:     "0611223344",
	}
}

func TestSubmitterSendsMultipart(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, form.FinishRegistrationPath, r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Bernard", r.FormValue(schema.FieldLastname))
		assert.Equal(t, "Léa", r.FormValue(schema.FieldFirstname))
		assert.Equal(t, schema.ConsentAccept, r.FormValue(schema.FieldRGPD))

		_, present := r.MultipartForm.Value[schema.FieldAdressCabinet]
		assert.True(t, present, "adress_cabinet is always sent")

		file, header, err := r.FormFile(form.ImagePart)
		require.NoError(t, err)
		defer file.Close()
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "avatar.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
		assert.Equal(t, []byte("png-bytes"), content)

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	sub := submission()
	sub.Image = &schema.Attachment{Filename: "avatar.png", ContentType: "image/png", Size: 9, Content: []byte("png-bytes")}

	s := form.NewSubmitter(srv.URL+"/", srv.Client())
	require.NoError(t, s.Send(context.Background(), sub))
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, srv.URL+form.FinishRegistrationPath, s.Endpoint())
}

func TestSubmitterOmitsFilePartWithoutImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, ok := r.MultipartForm.File[form.ImagePart]
		assert.False(t, ok)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, form.NewSubmitter(srv.URL, srv.Client()).Send(context.Background(), submission()))
}

func TestSubmitterStatusDecidesOutcome(t *testing.T) {
	t.Run("malformed body with 200 is success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("{not json"))
		}))
		defer srv.Close()

		assert.NoError(t, form.NewSubmitter(srv.URL, srv.Client()).Send(context.Background(), submission()))
	})

	t.Run("non 2xx is a failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		err := form.NewSubmitter(srv.URL, srv.Client()).Send(context.Background(), submission())
		require.ErrorIs(t, err, form.ErrSubmissionFailed)
		assert.Contains(t, err.Error(), "400")
	})

	t.Run("network error is a failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		url := srv.URL
		srv.Close()

		err := form.NewSubmitter(url, nil).Send(context.Background(), submission())
		assert.ErrorIs(t, err, form.ErrSubmissionFailed)
	})
}
