package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadFile(t *testing.T, router http.Handler, token, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/media", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestUploadMedia(t *testing.T) {
	router := setupTest(t)
	alice := createAccount(t, "alice")

	recorder := uploadFile(t, router, alice.Token, "cat.jpg", []byte("not really a jpeg"))
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	body := decodeBody[map[string]string](t, recorder)
	require.NotEmpty(t, body["path"])

	abs, err := MediaStore.AbsPath(body["path"])
	require.NoError(t, err)
	written, err := os.ReadFile(abs)
	require.NoError(t, err)
	assert.Equal(t, []byte("not really a jpeg"), written)
}

func TestUploadMediaRejections(t *testing.T) {
	router := setupTest(t)
	alice := createAccount(t, "alice")

	t.Run("non-image extension", func(t *testing.T) {
		recorder := uploadFile(t, router, alice.Token, "script.sh", []byte("#!/bin/sh"))
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPost, "/api/v1/media", alice.Token, nil)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		recorder := uploadFile(t, router, "", "cat.jpg", []byte("x"))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
