package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cityverse/backend/internal/config"
	"github.com/cityverse/backend/internal/domain"
	"github.com/cityverse/backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCollection struct {
	records     map[string]json.RawMessage
	sets        int
	invalidated int
}

func (f *fakeCollection) Get(_ context.Context) (map[string]json.RawMessage, bool) {
	if f.records == nil {
		return nil, false
	}
	return f.records, true
}

func (f *fakeCollection) Set(_ context.Context, records map[string]json.RawMessage) {
	f.records = records
	f.sets++
}

func (f *fakeCollection) Invalidate(_ context.Context) {
	f.records = nil
	f.invalidated++
}

func newTestRepo(t *testing.T, handler http.HandlerFunc) (Cities, *fakeCollection, *int) {
	t.Helper()

	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	storeClient := store.NewClient(config.Store{
		BaseURL:    srv.URL,
		Collection: "cities",
		Timeout:    time.Second,
	}, nil)

	collection := &fakeCollection{}
	return newCityRepository(storeClient, collection), collection, &hits
}

func TestCityRepository_ListSortedAndCached(t *testing.T) {
	repo, collection, hits := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"b":{"name":"Tokyo"},"a":{"name":"Madrid"}}`)
	})

	cities, err := repo.List(context.Background())
	require.NoError(t, err)

	require.Len(t, cities, 2)
	assert.Equal(t, "a", cities[0].ID)
	assert.Equal(t, "b", cities[1].ID)
	assert.Equal(t, 1, collection.sets)

	// second read must be served from the cache
	_, err = repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, *hits)
}

func TestCityRepository_ListSkipsMalformedRecords(t *testing.T) {
	repo, _, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"bad":"not an object","good":{"name":"Madrid"}}`)
	})

	cities, err := repo.List(context.Background())
	require.NoError(t, err)

	require.Len(t, cities, 1)
	assert.Equal(t, "good", cities[0].ID)
}

func TestCityRepository_GetByID(t *testing.T) {
	repo, _, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/cities/c1.json" {
			io.WriteString(w, `{"name":"Madrid","country":"Spain"}`)
			return
		}
		io.WriteString(w, "null")
	})

	city, err := repo.GetByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Madrid", city.Name)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCityRepository_MutationsInvalidateCache(t *testing.T) {
	repo, collection, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			io.WriteString(w, `{"name":"new-id"}`)
		default:
			io.WriteString(w, "null")
		}
	})

	collection.Set(context.Background(), map[string]json.RawMessage{"a": json.RawMessage(`{}`)})

	id, err := repo.Create(context.Background(), map[string]any{"name": "Madrid"})
	require.NoError(t, err)
	assert.Equal(t, "new-id", id)
	assert.Equal(t, 1, collection.invalidated)

	require.NoError(t, repo.Patch(context.Background(), "a", map[string]any{"name": "x"}))
	require.NoError(t, repo.Delete(context.Background(), "a"))
	assert.Equal(t, 3, collection.invalidated)
}
