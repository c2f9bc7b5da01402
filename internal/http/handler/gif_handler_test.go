package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/sifan077/GifBoard/internal/app/model"
	"github.com/sifan077/GifBoard/internal/app/repository"
	"github.com/sifan077/GifBoard/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&model.Gif{}))

	svc := service.NewGifService(repository.NewGifRepository(db))
	return newAppWithService(svc)
}

func newAppWithService(svc service.GifService) *fiber.App {
	app := fiber.New()
	NewGifHandler(GifDeps{GifService: svc}).Register(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestGifHandler_CreateThenList(t *testing.T) {
	app := newTestApp(t)

	status, raw := doJSON(t, app, http.MethodPost, "/api/v1/gifs",
		`{"gif":{"name":"cat","url":"http://x/cat.gif"}}`)
	require.Equal(t, fiber.StatusOK, status, string(raw))

	var created GifResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "cat", created.Name)
	assert.Equal(t, "http://x/cat.gif", created.URL)
	assert.Equal(t, 0, created.Likes)

	status, raw = doJSON(t, app, http.MethodGet, "/api/v1/gifs", "")
	require.Equal(t, fiber.StatusOK, status)

	var listed []GifResponse
	require.NoError(t, json.Unmarshal(raw, &listed))
	assert.Contains(t, listed, created)
}

func TestGifHandler_CreateAcceptsFlatBody(t *testing.T) {
	app := newTestApp(t)

	status, raw := doJSON(t, app, http.MethodPost, "/api/v1/gifs",
		`{"name":"dog","url":"http://x/dog.gif","likes":4}`)
	require.Equal(t, fiber.StatusOK, status, string(raw))

	var created GifResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "dog", created.Name)
	assert.Equal(t, 4, created.Likes)
}

func TestGifHandler_CreateDuplicateReturns422(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/gifs", `{"gif":{"name":"cat","url":"u1"}}`)
	require.Equal(t, fiber.StatusOK, status)

	status, raw := doJSON(t, app, http.MethodPost, "/api/v1/gifs", `{"gif":{"name":"cat","url":"u2"}}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.JSONEq(t, `{"errors":["Name has already been taken"]}`, string(raw))

	_, raw = doJSON(t, app, http.MethodGet, "/api/v1/gifs", "")
	var listed []GifResponse
	require.NoError(t, json.Unmarshal(raw, &listed))
	assert.Len(t, listed, 1)
}

func TestGifHandler_CreateMissingFieldsReturns422(t *testing.T) {
	app := newTestApp(t)

	status, raw := doJSON(t, app, http.MethodPost, "/api/v1/gifs", `{"gif":{}}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.JSONEq(t, `{"errors":["Name can't be blank","Url can't be blank"]}`, string(raw))
}

func TestGifHandler_CreateInvalidJSON(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/gifs", `{"gif":`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestGifHandler_ListOrderedByLikes(t *testing.T) {
	app := newTestApp(t)

	for _, body := range []string{
		`{"gif":{"name":"a","url":"u","likes":5}}`,
		`{"gif":{"name":"b","url":"u","likes":1}}`,
		`{"gif":{"name":"c","url":"u","likes":3}}`,
	} {
		status, raw := doJSON(t, app, http.MethodPost, "/api/v1/gifs", body)
		require.Equal(t, fiber.StatusOK, status, string(raw))
	}

	_, raw := doJSON(t, app, http.MethodGet, "/api/v1/gifs", "")
	var listed []GifResponse
	require.NoError(t, json.Unmarshal(raw, &listed))
	require.Len(t, listed, 3)
	assert.Equal(t, []string{"a", "c", "b"}, []string{listed[0].Name, listed[1].Name, listed[2].Name})
}

func TestGifHandler_ListEmptyIsArray(t *testing.T) {
	app := newTestApp(t)

	status, raw := doJSON(t, app, http.MethodGet, "/api/v1/gifs", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestGifHandler_Get(t *testing.T) {
	app := newTestApp(t)

	_, raw := doJSON(t, app, http.MethodPost, "/api/v1/gifs", `{"gif":{"name":"cat","url":"u","likes":2}}`)
	var created GifResponse
	require.NoError(t, json.Unmarshal(raw, &created))

	status, raw := doJSON(t, app, http.MethodGet, "/api/v1/gifs/"+itoa(created.ID), "")
	require.Equal(t, fiber.StatusOK, status)

	var fetched GifResponse
	require.NoError(t, json.Unmarshal(raw, &fetched))
	assert.Equal(t, created, fetched)
}

func TestGifHandler_GetNotFound(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/v1/gifs/999", "/api/v1/gifs/abc", "/api/v1/gifs/0"} {
		status, raw := doJSON(t, app, http.MethodGet, path, "")
		assert.Equal(t, fiber.StatusNotFound, status, path)
		assert.JSONEq(t, `{"error":"gif not found"}`, string(raw), path)
	}
}

type failingService struct{}

func (failingService) ListGifs(ctx context.Context) ([]model.Gif, error) {
	return nil, errors.New("db down")
}

func (failingService) CreateGif(ctx context.Context, input service.CreateGifInput) (*model.Gif, error) {
	return nil, errors.New("db down")
}

func (failingService) GetGif(ctx context.Context, id uint) (*model.Gif, error) {
	return nil, errors.New("db down")
}

func TestGifHandler_InternalErrors(t *testing.T) {
	app := newAppWithService(failingService{})

	status, _ := doJSON(t, app, http.MethodGet, "/api/v1/gifs", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/gifs", `{"gif":{"name":"a","url":"b"}}`)
	assert.Equal(t, fiber.StatusInternalServerError, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/gifs/1", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
