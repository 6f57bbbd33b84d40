package masterdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siviack-portal/internal/backend"
	"siviack-portal/internal/models"
)

func newBackendStub(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/config/listas", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"status":[{"id":1,"nombre":"En Proceso"}]}`))
	})
	mux.HandleFunc("/empresas/", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`[{"id":1,"razon_social":"ACME Logística"},{"id":2,"razon_social":"Norte SAC"}]`))
	})
	mux.HandleFunc("/areas/", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`[
			{"id":10,"codigo":"LOG","nombre":"Logística","empresa_id":1},
			{"id":11,"codigo":"FIN","nombre":"Finanzas","empresa_id":1},
			{"id":12,"codigo":"LEG","nombre":"Legal","empresa_id":2}
		]`))
	})
	mux.HandleFunc("/usuarios/", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`[
			{"id":1,"nombre_completo":"Carla","rol":"ADMIN"},
			{"id":2,"nombre_completo":"Diego","rol":"CONSULTOR"},
			{"id":3,"nombre_completo":"Cliente Uno","rol":"CLIENTE"}
		]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testSession(id string) *models.Session {
	return &models.Session{ID: id, Token: "tok-" + id}
}

func TestStoreGetCachesPerSession(t *testing.T) {
	var hits atomic.Int64
	srv := newBackendStub(t, &hits)
	store := NewStore(backend.NewClient(srv.URL, 5*time.Second))

	snap := store.Get(context.Background(), testSession("s1"))
	require.NotNil(t, snap)
	assert.Equal(t, int64(4), hits.Load())

	// Second read comes from cache
	again := store.Get(context.Background(), testSession("s1"))
	assert.Equal(t, int64(4), hits.Load())
	assert.Same(t, snap, again)
}

func TestStoreInvalidateForcesReload(t *testing.T) {
	var hits atomic.Int64
	srv := newBackendStub(t, &hits)
	store := NewStore(backend.NewClient(srv.URL, 5*time.Second))

	store.Get(context.Background(), testSession("s1"))
	store.Invalidate()
	store.Get(context.Background(), testSession("s1"))

	assert.Equal(t, int64(8), hits.Load())
}

func TestSnapshotAreaCascade(t *testing.T) {
	var hits atomic.Int64
	srv := newBackendStub(t, &hits)
	store := NewStore(backend.NewClient(srv.URL, 5*time.Second))

	snap := store.Get(context.Background(), testSession("s1"))

	acme := snap.AreasForEmpresa(1)
	require.Len(t, acme, 2)
	assert.Equal(t, "Logística", acme[0].Nombre)
	assert.Equal(t, "Finanzas", acme[1].Nombre)

	norte := snap.AreasForEmpresa(2)
	require.Len(t, norte, 1)
	assert.Equal(t, "Legal", norte[0].Nombre)

	// No company selected yields no options, never the full list
	assert.Empty(t, snap.AreasForEmpresa(0))
}

func TestSnapshotConsultoresExcludesClientes(t *testing.T) {
	var hits atomic.Int64
	srv := newBackendStub(t, &hits)
	store := NewStore(backend.NewClient(srv.URL, 5*time.Second))

	snap := store.Get(context.Background(), testSession("s1"))
	consultores := snap.Consultores()
	require.Len(t, consultores, 2)
	for _, u := range consultores {
		assert.NotEqual(t, "CLIENTE", u.Rol)
	}
}

func TestStoreToleratesPartialFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/empresas/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"razon_social":"ACME"}]`))
	})
	// listas, areas and usuarios return 500
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := NewStore(backend.NewClient(srv.URL, 5*time.Second))
	snap := store.Get(context.Background(), testSession("s1"))

	require.Len(t, snap.Empresas, 1)
	assert.Empty(t, snap.Areas)
	assert.Empty(t, snap.Trabajadores)
}

func TestStoreRefreshDropsRevokedTokens(t *testing.T) {
	var revoked atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if revoked.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/config/listas":
			w.Write([]byte(`{}`))
		default:
			w.Write([]byte(`[]`))
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := NewStore(backend.NewClient(srv.URL, 5*time.Second))
	store.Get(context.Background(), testSession("s1"))

	revoked.Store(true)
	store.Refresh()

	store.mu.Lock()
	_, still := store.cache["s1"]
	store.mu.Unlock()
	assert.False(t, still)
}

func TestRefreshReusesAuthProbeListas(t *testing.T) {
	var listasHits atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/config/listas", func(w http.ResponseWriter, r *http.Request) {
		listasHits.Add(1)
		w.Write([]byte(`{"status":[{"id":1,"nombre":"En Proceso"}]}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := NewStore(backend.NewClient(srv.URL, 5*time.Second))
	store.Get(context.Background(), testSession("s1"))
	require.Equal(t, int64(1), listasHits.Load())

	// The probe read is the only listas read per refreshed entry
	store.Refresh()
	assert.Equal(t, int64(2), listasHits.Load())

	store.mu.Lock()
	defer store.mu.Unlock()
	require.Contains(t, store.cache, "s1")
	assert.Equal(t, "En Proceso", store.cache["s1"].snapshot.Listas.Status[0].Nombre)
}

func TestStoreForget(t *testing.T) {
	var hits atomic.Int64
	srv := newBackendStub(t, &hits)
	store := NewStore(backend.NewClient(srv.URL, 5*time.Second))

	store.Get(context.Background(), testSession("s1"))
	store.Get(context.Background(), testSession("s2"))
	store.Forget("s1")

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.NotContains(t, store.cache, "s1")
	assert.Contains(t, store.cache, "s2")
}
