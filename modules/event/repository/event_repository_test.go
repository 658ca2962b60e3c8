package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"travel-ticket-api/core/config"
	"travel-ticket-api/core/database"
	"travel-ticket-api/core/errors"
	"travel-ticket-api/modules/event/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type engine struct {
	name  string
	start func(t *testing.T) config.DatabaseConfig
}

var engines = []engine{
	{name: "postgres", start: startPostgres},
	{name: "mysql", start: startMySQL},
}

func skipUnlessIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("skipping integration test: TEST_INTEGRATION not set")
	}
}

func startPostgres(t *testing.T) config.DatabaseConfig {
	t.Helper()
	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("travel_test"),
		postgres.WithUsername("travel"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	return containerConfig(t, container, "postgres", port.Int())
}

func startMySQL(t *testing.T) config.DatabaseConfig {
	t.Helper()
	ctx := context.Background()
	container, err := mysql.Run(ctx,
		"docker.io/mysql:8.0",
		mysql.WithDatabase("travel_test"),
		mysql.WithUsername("travel"),
		mysql.WithPassword("test-password"),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	port, err := container.MappedPort(ctx, "3306/tcp")
	require.NoError(t, err)
	return containerConfig(t, container, "mysql", port.Int())
}

func containerConfig(t *testing.T, container testcontainers.Container, driver string, port int) config.DatabaseConfig {
	t.Helper()
	host, err := container.Host(context.Background())
	require.NoError(t, err)

	return config.DatabaseConfig{
		Driver:          driver,
		Host:            host,
		Port:            port,
		User:            "travel",
		Password:        "test-password",
		DBName:          "travel_test",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
	}
}

// setupRepository starts the engine in a container, applies migrations twice
// and returns a repository over it.
func setupRepository(t *testing.T, e engine) *EventRepository {
	t.Helper()
	cfg := e.start(t)

	require.NoError(t, database.MigrateUp(cfg))
	require.NoError(t, database.MigrateUp(cfg))

	db, err := database.InitDB(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewEventRepository(db)
}

// eachEngine runs fn against a fresh PostgreSQL and a fresh MySQL database.
func eachEngine(t *testing.T, fn func(t *testing.T, repo *EventRepository)) {
	skipUnlessIntegration(t)
	for _, e := range engines {
		t.Run(e.name, func(t *testing.T) {
			fn(t, setupRepository(t, e))
		})
	}
}

func day(offset int) entity.Date {
	return entity.Date(time.Now().UTC().AddDate(0, 0, offset).Format("2006-01-02"))
}

func create(t *testing.T, repo *EventRepository, title string, date entity.Date) int64 {
	t.Helper()
	id, err := repo.Create(context.Background(), &entity.Event{
		Title:    title,
		Place:    "Arena",
		Gradient: "from-blue-200 to-blue-100",
		Icon:     "music",
		Date:     date,
		Time:     "20:00",
	})
	require.NoError(t, err)
	return id
}

func TestEventRepository_CreateAndGet(t *testing.T) {
	eachEngine(t, func(t *testing.T, repo *EventRepository) {
		ctx := context.Background()

		id := create(t, repo, "Concert", "2030-01-01")
		assert.Positive(t, id)

		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Concert", got.Title)
		assert.Equal(t, entity.Date("2030-01-01"), got.Date)
		assert.Equal(t, entity.ClockTime("20:00"), got.Time)
		assert.Equal(t, entity.EventStatusPending, got.Status)
		assert.Nil(t, got.QRCodePath)
		assert.Nil(t, got.PhotoPath)

		_, err = repo.GetByID(ctx, id+1000)
		assert.Equal(t, errors.ErrNotFound, errors.CodeOf(err))
	})
}

func TestEventRepository_ListFilters(t *testing.T) {
	eachEngine(t, func(t *testing.T, repo *EventRepository) {
		ctx := context.Background()

		create(t, repo, "next week", day(7))
		create(t, repo, "today", day(0))
		create(t, repo, "last year", day(-365))
		create(t, repo, "yesterday", day(-1))

		upcoming, err := repo.List(ctx, "upcoming")
		require.NoError(t, err)
		require.Len(t, upcoming, 2)
		assert.Equal(t, "today", upcoming[0].Title)
		assert.Equal(t, "next week", upcoming[1].Title)

		previous, err := repo.List(ctx, "previous")
		require.NoError(t, err)
		require.Len(t, previous, 2)
		assert.Equal(t, "yesterday", previous[0].Title)
		assert.Equal(t, "last year", previous[1].Title)
	})
}

func TestEventRepository_Updates(t *testing.T) {
	eachEngine(t, func(t *testing.T, repo *EventRepository) {
		ctx := context.Background()
		id := create(t, repo, "Concert", "2030-01-01")

		require.NoError(t, repo.UpdateStatus(ctx, id, entity.EventStatusAccepted))
		require.NoError(t, repo.UpdatePhotoPath(ctx, id, "https://drive.google.com/file/d/abc/view"))
		require.NoError(t, repo.UpdateQRCodePath(ctx, id, "/qr-codes/1-a.png"))
		require.NoError(t, repo.UpdateStatus(ctx, id+1000, entity.EventStatusDeclined))

		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, entity.EventStatusAccepted, got.Status)
		require.NotNil(t, got.PhotoPath)
		assert.Equal(t, "https://drive.google.com/file/d/abc/view", *got.PhotoPath)
		require.NotNil(t, got.QRCodePath)
		assert.Equal(t, "/qr-codes/1-a.png", *got.QRCodePath)

		photos, err := repo.ListPhotos(ctx)
		require.NoError(t, err)
		require.Len(t, photos, 1)
		assert.Equal(t, id, photos[0].ID)
		assert.Equal(t, entity.Date("2030-01-01"), photos[0].Date)
	})
}
