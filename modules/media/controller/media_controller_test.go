package controller_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"travel-ticket-api/core/storage"
	"travel-ticket-api/modules/event/entity"
	"travel-ticket-api/modules/event/eventtest"
	"travel-ticket-api/modules/media"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) (*echo.Echo, *eventtest.MemoryStore) {
	t.Helper()
	e := echo.New()
	events := eventtest.NewMemoryStore()
	events.Put(entity.Event{Title: "Concert", Date: "2030-01-01"})
	media.Init(e.Group("/api"), storage.NewLocalStore(t.TempDir()), events)
	return e, events
}

func postJSON(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/upload-photo", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestUploadPhoto_JSON(t *testing.T) {
	e, events := newServer(t)

	rec := postJSON(e, `{"photo":"data:image/png;base64,aGVsbG8=","eventId":1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "image/png", resp["mimeType"])
	assert.EqualValues(t, 5, resp["size"])

	got, err := events.GetByID(t.Context(), 1)
	require.NoError(t, err)
	require.NotNil(t, got.PhotoPath)
	assert.Equal(t, resp["photoPath"], *got.PhotoPath)
}

func TestUploadPhoto_JSONStringEventID(t *testing.T) {
	e, _ := newServer(t)
	rec := postJSON(e, `{"photo":"data:image/png;base64,aGVsbG8=","eventId":"1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUploadPhoto_JSONErrors(t *testing.T) {
	cases := map[string]struct {
		body    string
		message string
	}{
		"missing photo":   {`{"eventId":1}`, "Invalid data"},
		"invalid format":  {`{"photo":"hello","eventId":1}`, "Invalid image format"},
		"invalid base64":  {`{"photo":"data:image/png;base64,@@","eventId":1}`, "Invalid base64 data"},
		"malformed json":  {`{"photo":`, "Invalid data"},
		"invalid eventId": {`{"photo":"data:image/png;base64,aGVsbG8=","eventId":"x"}`, "Invalid event ID"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			e, events := newServer(t)
			rec := postJSON(e, tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "error", resp["status"])
			assert.Equal(t, tc.message, resp["message"])
			assert.Zero(t, events.Calls["UpdatePhotoPath"])
		})
	}
}

func TestUploadPhoto_Multipart(t *testing.T) {
	e, events := newServer(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("eventId", "1"))
	fw, err := w.CreateFormFile("photo", "me.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte{0xff, 0xd8, 0xff, 0xe0})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload-photo", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, events.Calls["UpdatePhotoPath"])
}

func TestUploadPhoto_MultipartWithoutFile(t *testing.T) {
	e, _ := newServer(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("eventId", "1"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload-photo", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadPhoto_SizeLimitAppliesToBothShapes(t *testing.T) {
	image := make([]byte, 20<<20+1024)

	t.Run("json", func(t *testing.T) {
		e, events := newServer(t)
		body := `{"photo":"data:image/jpeg;base64,` + base64.StdEncoding.EncodeToString(image) + `","eventId":1}`
		rec := postJSON(e, body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "File too large")
		assert.Zero(t, events.Calls["UpdatePhotoPath"])
	})

	t.Run("multipart", func(t *testing.T) {
		e, events := newServer(t)
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		require.NoError(t, w.WriteField("eventId", "1"))
		fw, err := w.CreateFormFile("photo", "big.jpg")
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/upload-photo", &buf)
		req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "File too large")
		assert.Zero(t, events.Calls["UpdatePhotoPath"])
	})
}

func TestUploadPhoto_BodyOverLimitIsRejected(t *testing.T) {
	e, events := newServer(t)
	body := `{"photo":"data:image/jpeg;base64,` + strings.Repeat("A", 29<<20) + `","eventId":1}`

	rec := postJSON(e, body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Zero(t, events.Calls["UpdatePhotoPath"])
}
