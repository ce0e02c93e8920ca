package repositories

import (
	"bucket-chan/domain"
	"bucket-chan/internal"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newMapRepository(t *testing.T) *MapRepository {
	t.Helper()
	repository, _ := newMapRepositoryWithDB(t)
	return repository
}

func newMapRepositoryWithDB(t *testing.T) (*MapRepository, *badger.DB) {
	t.Helper()
	req := require.New(t)
	db, err := OpenInMemory()
	req.NoError(err)
	repository, err := NewMapRepository(db, logs.GetLoggerFromLevel(slog.LevelDebug))
	req.NoError(err)
	t.Cleanup(func() {
		_ = repository.Close()
		_ = db.Close()
	})
	return repository, db
}

func Test_Map_Insertion_Order(t *testing.T) {
	req := require.New(t)
	repository := newMapRepository(t)
	at := time.Now().UTC()

	// Given more than ten maps, so a naive string sort would reorder them
	var stored []domain.MapEntry
	for i := 0; i < 12; i++ {
		entry := domain.MapEntry{
			ID:      uuid.New(),
			Name:    fmt.Sprintf("map-%d", 11-i),
			URL:     fmt.Sprintf("http://maps.example/%d", i),
			AddedAt: at.Add(time.Duration(i) * time.Second),
		}
		req.NoError(repository.Add(entry))
		stored = append(stored, entry)
	}

	// When
	entries, err := repository.List()

	// Then they come back in the order they were added
	req.NoError(err)
	req.Equal(stored, entries)
}

func Test_Map_Empty(t *testing.T) {
	req := require.New(t)
	repository := newMapRepository(t)

	entries, err := repository.List()
	req.NoError(err)
	req.Empty(entries)
}

func Test_Map_Duplicate_Names_Are_Kept(t *testing.T) {
	req := require.New(t)
	repository := newMapRepository(t)
	at := time.Now().UTC()

	req.NoError(repository.Add(domain.MapEntry{ID: uuid.New(), Name: "dust", URL: "a", AddedAt: at}))
	req.NoError(repository.Add(domain.MapEntry{ID: uuid.New(), Name: "dust", URL: "b", AddedAt: at}))

	entries, err := repository.List()
	req.NoError(err)
	req.Len(entries, 2)
	req.Equal("a", entries[0].URL)
	req.Equal("b", entries[1].URL)
}

func Test_Map_Inspect(t *testing.T) {
	req := require.New(t)
	repository, db := newMapRepositoryWithDB(t)

	// Given one stored map
	req.NoError(repository.Add(domain.MapEntry{
		ID:      uuid.New(),
		Name:    "cp_badlands",
		URL:     "http://maps.example/badlands",
		AddedAt: time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC),
	}))
	handler := internal.NewInspectHandler(db, MapPrefix, MapRow, func() map[string]any {
		return map[string]any{"goroutines": 7}
	})

	// When the inspector page is requested
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inspect", nil))

	// Then the entry and the stats are rendered
	req.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	req.Contains(body, "cp_badlands")
	req.Contains(body, "http://maps.example/badlands")
	req.Contains(body, "2026-03-01 20:00:00")
	req.Contains(body, "goroutines")
}

func Test_MapRow_Undecodable(t *testing.T) {
	req := require.New(t)
	row := MapRow("map:0000000000000000001", []byte{0xff, 0xff})
	req.Equal("map:0000000000000000001", row.Key)
	req.Contains(row.Detail, "undecodable")
}

func Test_Map_Invalid_UTF8_Is_Stored(t *testing.T) {
	req := require.New(t)
	repository := newMapRepository(t)

	// Given a name and url carrying invalid UTF-8 bytes
	err := repository.Add(domain.MapEntry{
		ID:      uuid.New(),
		Name:    "cp_\xffwell",
		URL:     "http://maps.example/\xfe",
		AddedAt: time.Now().UTC(),
	})

	// Then the entry is kept with the bytes replaced
	req.NoError(err)
	entries, err := repository.List()
	req.NoError(err)
	req.Len(entries, 1)
	req.Equal("cp_\uFFFDwell", entries[0].Name)
	req.Equal("http://maps.example/\uFFFD", entries[0].URL)
}
