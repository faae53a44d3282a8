package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"maintenance-portal/internal/dto"
	"maintenance-portal/internal/integrations/backend"
	apperrors "maintenance-portal/pkg/errors"
)

type doerFunc func(req *http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func jsonResponse(status int, body any) *http.Response {
	var data []byte
	if s, ok := body.(string); ok {
		data = []byte(s)
	} else if body != nil {
		data, _ = json.Marshal(body)
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(data)),
		Header:     make(http.Header),
	}
}

func newAPI(f doerFunc) *backend.Client {
	return backend.New("http://api.test/api", zap.NewNop(), backend.WithHTTPClient(f))
}

func statusAPI(status int, body any) *backend.Client {
	return newAPI(func(_ *http.Request) (*http.Response, error) {
		return jsonResponse(status, body), nil
	})
}

func TestListLoaders_Outcomes(t *testing.T) {
	loaders := map[string]func(api API) (Outcome, int, error){
		"demandes": func(api API) (Outcome, int, error) {
			r := NewDemandeRepository(api, zap.NewNop()).GetDemandes(context.Background(), "tok")
			return r.Outcome, len(r.Items), r.Err
		},
		"interventions": func(api API) (Outcome, int, error) {
			r := NewInterventionRepository(api, zap.NewNop()).GetInterventions(context.Background(), "tok")
			return r.Outcome, len(r.Items), r.Err
		},
		"composants": func(api API) (Outcome, int, error) {
			r := NewComposantRepository(api, zap.NewNop()).GetComposants(context.Background(), "tok")
			return r.Outcome, len(r.Items), r.Err
		},
		"equipements": func(api API) (Outcome, int, error) {
			r := NewEquipementRepository(api, zap.NewNop()).GetEquipements(context.Background(), "tok")
			return r.Outcome, len(r.Items), r.Err
		},
		"users": func(api API) (Outcome, int, error) {
			r := NewUserRepository(api, zap.NewNop()).GetUsers(context.Background(), "tok")
			return r.Outcome, len(r.Items), r.Err
		},
	}

	for name, load := range loaders {
		t.Run(name+"/ok", func(t *testing.T) {
			outcome, n, err := load(statusAPI(http.StatusOK, []map[string]any{{"id": 1}, {"id": 2}}))
			assert.Equal(t, OutcomeOK, outcome)
			assert.Equal(t, 2, n)
			assert.NoError(t, err)
		})
		t.Run(name+"/401", func(t *testing.T) {
			outcome, n, err := load(statusAPI(http.StatusUnauthorized, map[string]string{"detail": "Token invalide"}))
			assert.Equal(t, OutcomeUnauthenticated, outcome)
			assert.Zero(t, n)
			assert.ErrorIs(t, err, backend.ErrUnauthorized)
		})
		t.Run(name+"/500", func(t *testing.T) {
			outcome, n, err := load(statusAPI(http.StatusInternalServerError, "boom"))
			assert.Equal(t, OutcomeDegraded, outcome)
			assert.Zero(t, n)
			assert.Error(t, err)
		})
		t.Run(name+"/network", func(t *testing.T) {
			api := newAPI(func(_ *http.Request) (*http.Response, error) {
				return nil, errors.New("dial tcp: connection refused")
			})
			outcome, n, err := load(api)
			assert.Equal(t, OutcomeDegraded, outcome)
			assert.Zero(t, n)
			assert.Error(t, err)
		})
	}
}

func TestFetchList_NullBodyGivesEmptySlice(t *testing.T) {
	r := NewComposantRepository(statusAPI(http.StatusOK, "null"), zap.NewNop()).GetComposants(context.Background(), "tok")

	require.True(t, r.OK())
	assert.NotNil(t, r.Items)
	assert.Empty(t, r.Items)
}

func TestFindDemande_NotFoundPropagates(t *testing.T) {
	repo := NewDemandeRepository(statusAPI(http.StatusNotFound, map[string]string{"detail": "Pas trouvé."}), zap.NewNop())

	d, err := repo.FindDemande(context.Background(), "tok", 42)
	assert.Nil(t, d)
	assert.ErrorIs(t, err, backend.ErrNotFound)
}

func TestCreateDemande_IsPublic(t *testing.T) {
	api := newAPI(func(req *http.Request) (*http.Response, error) {
		assert.Empty(t, req.Header.Get("Authorization"))
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/api/demandes/", req.URL.Path)
		return jsonResponse(http.StatusCreated, map[string]any{"id": 5, "status": "Nouvelle"}), nil
	})

	d, err := NewDemandeRepository(api, zap.NewNop()).CreateDemande(context.Background(), dto.CreateDemandeDTO{Nom: "Diallo"})
	require.NoError(t, err)
	assert.Equal(t, 5, d.ID)
	assert.Equal(t, "Nouvelle", d.Status)
}

func TestLogin(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		repo := NewAuthRepository(statusAPI(http.StatusOK, map[string]any{
			"token": "abc", "user_id": 3, "username": "amine", "email": "a@x.fr", "is_staff": true,
		}))
		resp, err := repo.Login(context.Background(), dto.LoginDTO{Username: "amine", Password: "pw"})
		require.NoError(t, err)
		assert.Equal(t, "abc", resp.Token)
		assert.True(t, resp.IsStaff)
	})
	t.Run("bad credentials", func(t *testing.T) {
		repo := NewAuthRepository(statusAPI(http.StatusBadRequest, map[string]any{"non_field_errors": []string{"Identifiants invalides."}}))
		_, err := repo.Login(context.Background(), dto.LoginDTO{Username: "amine", Password: "x"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
	t.Run("missing token", func(t *testing.T) {
		repo := NewAuthRepository(statusAPI(http.StatusOK, map[string]any{"username": "amine"}))
		_, err := repo.Login(context.Background(), dto.LoginDTO{Username: "amine", Password: "x"})
		assert.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestExportPDF(t *testing.T) {
	api := newAPI(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/api/equipements-export-pdf/", req.URL.Path)
		resp := jsonResponse(http.StatusOK, "%PDF-1.7")
		resp.Header.Set("Content-Type", "application/pdf")
		return resp, nil
	})

	doc, err := NewEquipementRepository(api, zap.NewNop()).ExportPDF(context.Background(), "tok")
	require.NoError(t, err)
	defer doc.Body.Close()

	data, err := io.ReadAll(doc.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(data))
	assert.Equal(t, "application/pdf", doc.ContentType)
}

// memoryCache - CacheRepositoryInterface в памяти, для тестов без Redis.
type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
	ttl  map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	default:
		return errors.New("unsupported value")
	}
	m.ttl[key] = expiration
	return nil
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (m *memoryCache) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
		delete(m.ttl, k)
	}
	return nil
}

func (m *memoryCache) Expire(_ context.Context, key string, expiration time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; !ok {
		return false, nil
	}
	m.ttl[key] = expiration
	return true, nil
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	cache := newMemoryCache()
	repo := NewSessionRepository(cache)
	ctx := context.Background()

	s := dto.SessionDTO{ID: "abc", UserID: 7, Token: "api-token", Username: "amine", IsStaff: true}
	require.NoError(t, repo.SaveSession(ctx, s, time.Hour))
	assert.Contains(t, cache.data, "session:abc")

	got, err := repo.FindSession(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "api-token", got.Token)
	assert.True(t, got.IsStaff)

	require.NoError(t, repo.TouchSession(ctx, "abc", 2*time.Hour))
	assert.Equal(t, 2*time.Hour, cache.ttl["session:abc"])

	require.NoError(t, repo.DeleteSession(ctx, "abc"))
	_, err = repo.FindSession(ctx, "abc")
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	assert.ErrorIs(t, repo.TouchSession(ctx, "abc", time.Hour), apperrors.ErrSessionNotFound)
}

func TestSessionRepository_CorruptedPayload(t *testing.T) {
	cache := newMemoryCache()
	cache.data["session:bad"] = "{not json"

	_, err := NewSessionRepository(cache).FindSession(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrSessionNotFound)
}
