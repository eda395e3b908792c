package handlers

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Feaman/interview-server/types"
)

func uploadFile(t *testing.T, api *testAPI, token, name, fileName, content string) types.File {
	t.Helper()

	fields := map[string]string{}
	if name != "" {
		fields["name"] = name
	}
	body, contentType := multipartBody(t, fields, "file", fileName, content)
	rec := api.do(t, http.MethodPost, "/files", token, body, contentType)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var file types.File
	decodeBody(t, rec, &file)
	return file
}

func TestFileEndpoints(t *testing.T) {
	t.Run("upload records metadata and stores the bytes", func(t *testing.T) {
		api := newTestAPI(t)
		token := api.register(t, "owner@example.com")

		file := uploadFile(t, api, token, "resume", "Resume.PDF", "pdf bytes")
		assert.Positive(t, file.ID)
		assert.Equal(t, "resume", file.Name)
		assert.Equal(t, "Resume.PDF", file.OriginalName)
		assert.Equal(t, int64(len("pdf bytes")), file.Size)
		require.NotEmpty(t, file.Path)
		assert.Contains(t, file.Path, "files/")
		assert.Contains(t, file.Path, ".pdf")

		stored, err := api.objects.Get(context.Background(), file.Path)
		require.NoError(t, err)
		defer stored.Close()
		content, err := io.ReadAll(stored)
		require.NoError(t, err)
		assert.Equal(t, "pdf bytes", string(content))
	})

	t.Run("missing name falls back to the original filename", func(t *testing.T) {
		api := newTestAPI(t)
		token := api.register(t, "owner@example.com")

		file := uploadFile(t, api, token, "", "notes.txt", "text")
		assert.Equal(t, "notes.txt", file.Name)
	})

	t.Run("upload without a file is a bad request", func(t *testing.T) {
		api := newTestAPI(t)
		token := api.register(t, "owner@example.com")

		body, contentType := multipartBody(t, map[string]string{"name": "ghost"}, "", "", "")
		rec := api.do(t, http.MethodPost, "/files", token, body, contentType)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp ErrorResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "file is required", resp.Message)
	})

	t.Run("replacing the contents removes the old object", func(t *testing.T) {
		api := newTestAPI(t)
		token := api.register(t, "owner@example.com")

		file := uploadFile(t, api, token, "resume", "resume-v1.pdf", "v1 bytes")

		body, contentType := multipartBody(t, map[string]string{"name": "resume"}, "file", "resume-v2.pdf", "v2 bytes")
		rec := api.do(t, http.MethodPut, "/files/"+itoa(file.ID), token, body, contentType)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var updated types.File
		decodeBody(t, rec, &updated)
		assert.NotEqual(t, file.Path, updated.Path)
		assert.Equal(t, "resume-v2.pdf", updated.OriginalName)

		_, err := api.objects.Get(context.Background(), file.Path)
		assert.Error(t, err, "old object must be gone")

		stored, err := api.objects.Get(context.Background(), updated.Path)
		require.NoError(t, err)
		defer stored.Close()
		content, err := io.ReadAll(stored)
		require.NoError(t, err)
		assert.Equal(t, "v2 bytes", string(content))
	})

	t.Run("delete acknowledges and removes the stored object", func(t *testing.T) {
		api := newTestAPI(t)
		token := api.register(t, "owner@example.com")

		file := uploadFile(t, api, token, "resume", "resume.pdf", "bytes")

		rec := api.do(t, http.MethodDelete, "/files/"+itoa(file.ID), token, nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

		gone := api.do(t, http.MethodGet, "/files/"+itoa(file.ID), token, nil, "")
		assert.Equal(t, http.StatusNotFound, gone.Code)

		_, err := api.objects.Get(context.Background(), file.Path)
		assert.Error(t, err)
	})

	t.Run("another owner's file reads as not found", func(t *testing.T) {
		api := newTestAPI(t)
		ownerToken := api.register(t, "owner@example.com")
		strangerToken := api.register(t, "stranger@example.com")

		file := uploadFile(t, api, ownerToken, "private", "private.pdf", "secret")

		rec := api.do(t, http.MethodGet, "/files/"+itoa(file.ID), strangerToken, nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("all routes require authentication", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(t, http.MethodGet, "/files", "", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
