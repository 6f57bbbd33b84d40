package masterdata

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"siviack-portal/internal/backend"
	"siviack-portal/internal/models"
	"siviack-portal/internal/session"
)

// Snapshot holds the reference lists every dropdown and label needs. A
// partial load is valid: a list whose fetch failed is simply empty.
type Snapshot struct {
	Listas       backend.Listas    `json:"listas"`
	Empresas     []backend.Empresa `json:"empresas"`
	Areas        []backend.Area    `json:"areas"`
	Trabajadores []backend.Usuario `json:"trabajadores"`
	LoadedAt     time.Time         `json:"loaded_at"`
}

// AreasForEmpresa implements the empresa→area cascade: only areas owned by
// the selected company, and no selection means no options.
func (s *Snapshot) AreasForEmpresa(empresaID int) []backend.Area {
	if empresaID == 0 {
		return []backend.Area{}
	}
	filtered := []backend.Area{}
	for _, area := range s.Areas {
		if area.EmpresaID == empresaID {
			filtered = append(filtered, area)
		}
	}
	return filtered
}

// Consultores returns the users eligible as process owner (consultants and
// admins), matching the form's dropdown filter.
func (s *Snapshot) Consultores() []backend.Usuario {
	out := []backend.Usuario{}
	for _, u := range s.Trabajadores {
		if u.Rol == session.RolConsultor || u.Rol == session.RolAdmin {
			out = append(out, u)
		}
	}
	return out
}

type entry struct {
	token    string
	snapshot *Snapshot
}

// Store caches one master-data load per portal session instead of
// re-fetching on every modal open. Admin writes invalidate everything; a
// cron job refreshes warm entries in the background.
type Store struct {
	client *backend.Client

	mu    sync.Mutex
	cache map[string]*entry
}

func NewStore(client *backend.Client) *Store {
	return &Store{
		client: client,
		cache:  make(map[string]*entry),
	}
}

// Get returns the cached snapshot for the session, loading it on first use.
func (s *Store) Get(ctx context.Context, sess *models.Session) *Snapshot {
	s.mu.Lock()
	if e, ok := s.cache[sess.ID]; ok {
		s.mu.Unlock()
		return e.snapshot
	}
	s.mu.Unlock()

	snap := s.load(ctx, sess.Token)

	s.mu.Lock()
	s.cache[sess.ID] = &entry{token: sess.Token, snapshot: snap}
	s.mu.Unlock()
	return snap
}

// Invalidate drops every cached snapshot. Called after any master-data
// write, since those change reference data for all sessions.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.cache = make(map[string]*entry)
	s.mu.Unlock()
}

// Forget drops one session's snapshot (logout).
func (s *Store) Forget(sessionID string) {
	s.mu.Lock()
	delete(s.cache, sessionID)
	s.mu.Unlock()
}

// Refresh re-loads every warm entry. Entries whose token the backend no
// longer accepts are dropped; the next page load will redo login gating.
func (s *Store) Refresh() {
	s.mu.Lock()
	ids := make(map[string]string, len(s.cache))
	for id, e := range s.cache {
		ids[id] = e.token
	}
	s.mu.Unlock()

	for id, token := range ids {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		snap, err := s.reload(ctx, token)
		cancel()

		s.mu.Lock()
		if err != nil {
			delete(s.cache, id)
		} else if _, still := s.cache[id]; still {
			s.cache[id] = &entry{token: token, snapshot: snap}
		}
		s.mu.Unlock()
	}
}

// load issues the four reference reads concurrently. Partial failure is
// logged and leaves that list empty rather than blocking the page.
func (s *Store) load(ctx context.Context, token string) *Snapshot {
	snap := &Snapshot{LoadedAt: time.Now()}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		listas, err := s.client.GetListas(ctx, token)
		if err != nil {
			log.Printf("masterdata: listas load failed: %v", err)
			return
		}
		snap.Listas = listas
	}()

	s.fill(ctx, token, snap)
	wg.Wait()
	return snap
}

// reload is the strict variant used by the background refresher: the listas
// read doubles as the auth probe, so a 401 surfaces and the dead entry can
// be dropped. Its result is kept, never fetched twice.
func (s *Store) reload(ctx context.Context, token string) (*Snapshot, error) {
	listas, err := s.client.GetListas(ctx, token)
	if errors.Is(err, backend.ErrUnauthorized) {
		return nil, err
	}

	snap := &Snapshot{LoadedAt: time.Now()}
	if err != nil {
		log.Printf("masterdata: listas reload failed: %v", err)
	} else {
		snap.Listas = listas
	}
	s.fill(ctx, token, snap)
	return snap, nil
}

// fill fetches the three remaining reference lists concurrently into snap.
func (s *Store) fill(ctx context.Context, token string, snap *Snapshot) {
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		empresas, err := s.client.ListEmpresas(ctx, token)
		if err != nil {
			log.Printf("masterdata: empresas load failed: %v", err)
			return
		}
		snap.Empresas = empresas
	}()
	go func() {
		defer wg.Done()
		areas, err := s.client.ListAreas(ctx, token)
		if err != nil {
			log.Printf("masterdata: areas load failed: %v", err)
			return
		}
		snap.Areas = areas
	}()
	go func() {
		defer wg.Done()
		usuarios, err := s.client.ListUsuarios(ctx, token)
		if err != nil {
			log.Printf("masterdata: usuarios load failed: %v", err)
			return
		}
		snap.Trabajadores = usuarios
	}()

	wg.Wait()
}
