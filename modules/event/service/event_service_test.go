package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"travel-ticket-api/core/errors"
	"travel-ticket-api/core/storage"
	"travel-ticket-api/modules/event/dto"
	"travel-ticket-api/modules/event/entity"
	"travel-ticket-api/modules/event/eventtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingMedia struct{}

func (failingMedia) Put(context.Context, storage.Object) (storage.Reference, error) {
	return storage.Reference{}, errors.Storage("disk full", nil)
}

func (failingMedia) Backend() string { return "local" }

func validRequest() dto.CreateEventRequest {
	return dto.CreateEventRequest{
		Title:    "Concert",
		Place:    "Arena",
		Gradient: "from-blue-200 to-blue-100",
		Icon:     "music",
		Date:     "2030-01-01",
		Time:     "20:00",
	}
}

func newService(t *testing.T) (*EventService, *eventtest.MemoryStore, *storage.LocalStore) {
	t.Helper()
	store := eventtest.NewMemoryStore()
	media := storage.NewLocalStore(filepath.Join(t.TempDir(), "public"))
	svc := NewEventService(store, media)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc, store, media
}

func TestListEvents_Filters(t *testing.T) {
	svc, store, _ := newService(t)
	store.Today = func() time.Time { return time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC) }

	store.Put(entity.Event{Title: "later", Date: "2025-07-01"})
	store.Put(entity.Event{Title: "today", Date: "2025-06-15"})
	store.Put(entity.Event{Title: "old", Date: "2024-01-01"})
	store.Put(entity.Event{Title: "yesterday", Date: "2025-06-14"})

	upcoming, err := svc.ListEvents(context.Background(), "upcoming")
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "today", upcoming[0].Title)
	assert.Equal(t, "later", upcoming[1].Title)

	previous, err := svc.ListEvents(context.Background(), "previous")
	require.NoError(t, err)
	require.Len(t, previous, 2)
	assert.Equal(t, "yesterday", previous[0].Title)
	assert.Equal(t, "old", previous[1].Title)
}

func TestListEvents_InvalidFilter(t *testing.T) {
	svc, _, _ := newService(t)

	for _, f := range []string{"", "all", "UPCOMING"} {
		_, err := svc.ListEvents(context.Background(), f)
		assert.Equal(t, errors.ErrInvalidInput, errors.CodeOf(err), f)
	}
}

func TestGetEvent(t *testing.T) {
	svc, store, _ := newService(t)
	id := store.Put(entity.Event{Title: "Concert", Date: "2030-01-01"})

	got, err := svc.GetEvent(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	_, err = svc.GetEvent(context.Background(), "404")
	assert.Equal(t, errors.ErrNotFound, errors.CodeOf(err))

	for _, raw := range []string{"abc", "0", "-3", "1.5", ""} {
		_, err = svc.GetEvent(context.Background(), raw)
		assert.Equal(t, errors.ErrInvalidInput, errors.CodeOf(err), raw)
	}
}

func TestCreateEvent_RequiresEveryField(t *testing.T) {
	blank := map[string]func(r *dto.CreateEventRequest){
		"title":    func(r *dto.CreateEventRequest) { r.Title = "" },
		"place":    func(r *dto.CreateEventRequest) { r.Place = "   " },
		"gradient": func(r *dto.CreateEventRequest) { r.Gradient = "" },
		"icon":     func(r *dto.CreateEventRequest) { r.Icon = "" },
		"date":     func(r *dto.CreateEventRequest) { r.Date = "" },
		"time":     func(r *dto.CreateEventRequest) { r.Time = "\t" },
	}

	for field, mutate := range blank {
		t.Run(field, func(t *testing.T) {
			svc, store, _ := newService(t)
			req := validRequest()
			mutate(&req)

			_, err := svc.CreateEvent(context.Background(), req, nil)
			require.Error(t, err)
			assert.Equal(t, errors.ErrInvalidInput, errors.CodeOf(err))
			assert.Contains(t, err.Error(), field)
			assert.Zero(t, store.Calls["Create"])
		})
	}
}

func TestCreateEvent_RejectsMalformedDateAndTime(t *testing.T) {
	svc, store, _ := newService(t)

	req := validRequest()
	req.Date = "01/01/2030"
	_, err := svc.CreateEvent(context.Background(), req, nil)
	assert.Equal(t, errors.ErrInvalidInput, errors.CodeOf(err))

	req = validRequest()
	req.Time = "8pm"
	_, err = svc.CreateEvent(context.Background(), req, nil)
	assert.Equal(t, errors.ErrInvalidInput, errors.CodeOf(err))

	assert.Zero(t, store.Calls["Create"])
}

func TestCreateEvent_StoresQRCode(t *testing.T) {
	svc, store, media := newService(t)
	qr := &dto.Upload{Filename: "Gate A.png", ContentType: "image/png", Data: []byte("png-bytes")}

	id, err := svc.CreateEvent(context.Background(), validRequest(), qr)
	require.NoError(t, err)

	got, err := store.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, got.QRCodePath)
	assert.Equal(t, "/qr-codes/1700000000000-gate-a.png", *got.QRCodePath)
	assert.Equal(t, entity.EventStatusPending, got.Status)

	data, err := media.Open(*got.QRCodePath)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestCreateEvent_QRFailureIsNotFatal(t *testing.T) {
	store := eventtest.NewMemoryStore()
	svc := NewEventService(store, failingMedia{})

	id, err := svc.CreateEvent(context.Background(), validRequest(), &dto.Upload{Filename: "qr.png", Data: []byte("x")})
	require.NoError(t, err)

	got, err := store.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, got.QRCodePath)
}

func TestUpdateStatus(t *testing.T) {
	svc, store, _ := newService(t)
	id := store.Put(entity.Event{Title: "Concert", Date: "2030-01-01"})

	require.NoError(t, svc.UpdateStatus(context.Background(), "1", "accepted"))
	got, _ := store.GetByID(context.Background(), id)
	assert.Equal(t, entity.EventStatusAccepted, got.Status)

	require.NoError(t, svc.UpdateStatus(context.Background(), "1", "declined"))
	got, _ = store.GetByID(context.Background(), id)
	assert.Equal(t, entity.EventStatusDeclined, got.Status)

	for _, bad := range []string{"pending", "maybe", ""} {
		err := svc.UpdateStatus(context.Background(), "1", bad)
		assert.Equal(t, errors.ErrInvalidInput, errors.CodeOf(err), bad)
	}
	got, _ = store.GetByID(context.Background(), id)
	assert.Equal(t, entity.EventStatusDeclined, got.Status)
}

func TestUpdateStatus_UnknownIDSucceeds(t *testing.T) {
	svc, _, _ := newService(t)
	assert.NoError(t, svc.UpdateStatus(context.Background(), "77", "accepted"))
}

func TestUploadQRCode_RoundTrip(t *testing.T) {
	svc, store, media := newService(t)
	id := store.Put(entity.Event{Title: "Concert", Date: "2030-01-01"})
	content := []byte{0x89, 'P', 'N', 'G', 1, 2, 3}

	path, err := svc.UploadQRCode(context.Background(), "1", &dto.Upload{Filename: "ticket.png", ContentType: "image/png", Data: content})
	require.NoError(t, err)

	got, err := svc.GetEvent(context.Background(), "1")
	require.NoError(t, err)
	require.NotNil(t, got.QRCodePath)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, path, *got.QRCodePath)

	data, err := media.Open(*got.QRCodePath)
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestUploadQRCode_Validation(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.UploadQRCode(context.Background(), "1", nil)
	assert.Equal(t, errors.ErrInvalidInput, errors.CodeOf(err))

	_, err = svc.UploadQRCode(context.Background(), "x", &dto.Upload{Filename: "a.png", Data: []byte("x")})
	assert.Equal(t, errors.ErrInvalidInput, errors.CodeOf(err))
}

func TestListPhotos(t *testing.T) {
	svc, store, _ := newService(t)
	link := "https://drive.google.com/file/d/abc/view"
	store.Put(entity.Event{Title: "with photo", Date: "2024-05-01", PhotoPath: &link})
	store.Put(entity.Event{Title: "no photo", Date: "2024-06-01"})

	photos, err := svc.ListPhotos(context.Background())
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, link, photos[0].PhotoPath)
	assert.Equal(t, "with photo", photos[0].Title)
}
