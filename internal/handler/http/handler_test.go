package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-doc-vault/internal/adapter"
	"github.com/MKhiriev/go-doc-vault/internal/config"
	"github.com/MKhiriev/go-doc-vault/internal/crypto"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/service"
	"github.com/MKhiriev/go-doc-vault/internal/store"
	"github.com/MKhiriev/go-doc-vault/internal/validators"
	"github.com/MKhiriev/go-doc-vault/models"
)

// ─────────────────────────────────────────────
// In-memory repositories
// ─────────────────────────────────────────────

type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]models.User // by login
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: make(map[string]models.User)}
}

func (r *memUserRepo) CreateUser(_ context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Login]; exists {
		return models.User{}, store.ErrLoginAlreadyExists
	}
	user.UserID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	r.users[user.Login] = user
	return user, nil
}

func (r *memUserRepo) FindUserByLogin(_ context.Context, login string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[login]
	if !ok {
		return models.User{}, store.ErrNoUserWasFound
	}
	return user, nil
}

type memDocumentRepo struct {
	mu        sync.Mutex
	documents map[string]models.Document // by id
	order     []string
}

func newMemDocumentRepo() *memDocumentRepo {
	return &memDocumentRepo{documents: make(map[string]models.Document)}
}

func (r *memDocumentRepo) CreateDocument(_ context.Context, document models.Document) (models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	document.CreatedAt = time.Now()
	r.documents[document.ID] = document
	r.order = append(r.order, document.ID)
	return document, nil
}

func (r *memDocumentRepo) GetDocument(_ context.Context, userID int64, id string) (models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	document, ok := r.documents[id]
	if !ok || document.UserID != userID {
		return models.Document{}, store.ErrDocumentNotFound
	}
	return document, nil
}

func (r *memDocumentRepo) GetDocumentByID(_ context.Context, id string) (models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	document, ok := r.documents[id]
	if !ok {
		return models.Document{}, store.ErrDocumentNotFound
	}
	return document, nil
}

func (r *memDocumentRepo) ListDocuments(_ context.Context, userID int64, filter models.DocumentFilter) ([]models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Document
	for _, id := range r.order {
		document := r.documents[id]
		if document.UserID != userID {
			continue
		}
		if filter.Category != "" && document.Category != filter.Category {
			continue
		}
		if filter.FolderID != nil {
			if document.FolderID == nil || *document.FolderID != *filter.FolderID {
				continue
			}
		}
		out = append(out, document)
	}
	return out, nil
}

func (r *memDocumentRepo) UpdateDocument(_ context.Context, userID int64, id string, update models.DocumentUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	document, ok := r.documents[id]
	if !ok || document.UserID != userID {
		return store.ErrDocumentNotFound
	}
	switch update.Op {
	case models.DocumentOpRename:
		document.Name = *update.Name
	case models.DocumentOpRecategorize:
		document.Category = *update.Category
	case models.DocumentOpMoveFolder:
		document.FolderID = update.FolderID
	}
	r.documents[id] = document
	return nil
}

func (r *memDocumentRepo) DeleteDocument(_ context.Context, userID int64, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	document, ok := r.documents[id]
	if !ok || document.UserID != userID {
		return store.ErrDocumentNotFound
	}
	delete(r.documents, id)
	return nil
}

type memAccessObjectRepo struct {
	mu      sync.Mutex
	objects map[string]models.AccessObject
}

func newMemAccessObjectRepo() *memAccessObjectRepo {
	return &memAccessObjectRepo{objects: make(map[string]models.AccessObject)}
}

func (r *memAccessObjectRepo) CreateAccessObject(_ context.Context, accessObject models.AccessObject) (models.AccessObject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	accessObject.CreatedAt = time.Now()
	accessObject.UpdatedAt = accessObject.CreatedAt
	r.objects[accessObject.ID] = accessObject
	return accessObject, nil
}

func (r *memAccessObjectRepo) GetAccessObject(_ context.Context, id string) (models.AccessObject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	accessObject, ok := r.objects[id]
	if !ok {
		return models.AccessObject{}, store.ErrAccessObjectNotFound
	}
	return accessObject, nil
}

func (r *memAccessObjectRepo) UpdateAccessObject(_ context.Context, userID int64, id string, update models.AccessObjectUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	accessObject, ok := r.objects[id]
	if !ok || accessObject.UserID != userID {
		return store.ErrAccessObjectNotFound
	}
	switch update.Op {
	case models.AccessObjectOpRename:
		accessObject.Name = *update.Name
	case models.AccessObjectOpRelink:
		accessObject.DocumentIDs = update.DocumentIDs
	}
	accessObject.UpdatedAt = time.Now()
	r.objects[id] = accessObject
	return nil
}

func (r *memAccessObjectRepo) DeleteAccessObject(_ context.Context, userID int64, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	accessObject, ok := r.objects[id]
	if !ok || accessObject.UserID != userID {
		return store.ErrAccessObjectNotFound
	}
	delete(r.objects, id)
	return nil
}

func (r *memAccessObjectRepo) IncrementScanCount(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	accessObject, ok := r.objects[id]
	if !ok {
		return store.ErrAccessObjectNotFound
	}
	accessObject.ScanCount++
	r.objects[id] = accessObject
	return nil
}

func (r *memAccessObjectRepo) scanCount(id string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.objects[id].ScanCount
}

type memCardRepo struct {
	mu    sync.Mutex
	cards map[string]models.Card
	order []string
}

func newMemCardRepo() *memCardRepo {
	return &memCardRepo{cards: make(map[string]models.Card)}
}

func (r *memCardRepo) CreateCard(_ context.Context, card models.Card) (models.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	card.CreatedAt = time.Now()
	r.cards[card.ID] = card
	r.order = append(r.order, card.ID)
	return card, nil
}

func (r *memCardRepo) ListCards(_ context.Context, userID int64) ([]models.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Card
	for _, id := range r.order {
		if r.cards[id].UserID == userID {
			out = append(out, r.cards[id])
		}
	}
	return out, nil
}

func (r *memCardRepo) DeleteCard(_ context.Context, userID int64, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	card, ok := r.cards[id]
	if !ok || card.UserID != userID {
		return store.ErrCardNotFound
	}
	delete(r.cards, id)
	return nil
}

// ─────────────────────────────────────────────
// Blob store, URL signer, scan counter fakes
// ─────────────────────────────────────────────

type memBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: make(map[string][]byte)}
}

func (s *memBlobStore) EnsureBucket(context.Context) error { return nil }

func (s *memBlobStore) Upload(_ context.Context, content io.Reader, key, _ string) error {
	b, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = b
	return nil
}

func (s *memBlobStore) DownloadStream(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[key]
	if !ok {
		return nil, adapter.ErrBlobNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *memBlobStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

type stubURLSigner struct{}

func (stubURLSigner) IssueGetURL(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	return fmt.Sprintf("https://signed.example/%s/%s", bucket, key), nil
}

type stubScanCounter struct {
	mu  sync.Mutex
	ids []string
}

func (c *stubScanCounter) Enqueue(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids = append(c.ids, id)
}

func (c *stubScanCounter) enqueued() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.ids...)
}

// ─────────────────────────────────────────────
// Test environment
// ─────────────────────────────────────────────

type testEnv struct {
	router http.Handler

	users         *memUserRepo
	documents     *memDocumentRepo
	accessObjects *memAccessObjectRepo
	cards         *memCardRepo
	blobs         *memBlobStore
	scans         *stubScanCounter
}

// newTestEnv wires real services over in-memory storage so handler tests
// exercise the full request path, crypto included.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		users:         newMemUserRepo(),
		documents:     newMemDocumentRepo(),
		accessObjects: newMemAccessObjectRepo(),
		cards:         newMemCardRepo(),
		blobs:         newMemBlobStore(),
		scans:         &stubScanCounter{},
	}

	cfg := config.StructuredConfig{}
	cfg.App = config.App{
		PasswordHashKey:      "test-password-hash-key",
		TokenSignKey:         "test-token-sign-key",
		TokenIssuer:          "go-doc-vault-test",
		TokenDuration:        time.Hour,
		EphemeralTokenKey:    "test-ephemeral-secret",
		EncryptionSecret:     "test-encryption-secret",
		IntegrityHashKey:     testIntegrityKey,
		LegacyCardPassphrase: testLegacyPassphrase,
	}
	cfg.Storage.Blob.AssetBucket = "assets"

	keys := crypto.NewKeyChain(cfg.App.EncryptionSecret)
	deps := service.Dependencies{
		Repositories: &store.Repositories{
			UserRepository:         env.users,
			DocumentRepository:     env.documents,
			AccessObjectRepository: env.accessObjects,
			CardRepository:         env.cards,
		},
		BlobStore:       env.blobs,
		URLSigner:       stubURLSigner{},
		Envelope:        crypto.NewStreamEnvelope(keys),
		EphemeralTokens: crypto.NewTokenMinter(cfg.App.EphemeralTokenKey),
		FieldSigner:     crypto.NewIntegrityGuard(cfg.App.IntegrityHashKey),
		ScanCounter:     env.scans,
	}

	services := service.NewServices(deps, cfg, logger.Nop())
	handler := NewHandler(services, validators.NewVaultValidator(), logger.Nop())
	env.router = handler.Init()

	return env
}

const (
	testIntegrityKey     = "test-integrity-key"
	testLegacyPassphrase = "test-legacy-passphrase"
)

func (env *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_ReturnsNonNil(t *testing.T) {
	h := NewHandler(&service.Services{}, validators.NewVaultValidator(), logger.Nop())

	require.NotNil(t, h)
}

func TestNewHandler_StoresServices(t *testing.T) {
	svc := &service.Services{}
	h := NewHandler(svc, validators.NewVaultValidator(), logger.Nop())

	assert.Equal(t, svc, h.services)
}

// ─────────────────────────────────────────────
// Init — route registration
// ─────────────────────────────────────────────

func TestInit_UnknownRouteReturns404(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/does-not-exist", nil)
	rr := env.do(t, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestInit_SessionRoutesRejectAnonymous(t *testing.T) {
	env := newTestEnv(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/documents"},
		{http.MethodGet, "/api/documents"},
		{http.MethodGet, "/api/documents/some-id/content"},
		{http.MethodPatch, "/api/documents/some-id"},
		{http.MethodDelete, "/api/documents/some-id"},
		{http.MethodPost, "/api/access-objects"},
		{http.MethodPatch, "/api/access-objects/some-id"},
		{http.MethodDelete, "/api/access-objects/some-id"},
		{http.MethodPost, "/api/cards"},
		{http.MethodGet, "/api/cards"},
		{http.MethodDelete, "/api/cards/some-id"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			req := httptest.NewRequest(route.method, route.path, nil)
			rr := env.do(t, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestInit_TraceIDHeaderIsSet(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	rr := env.do(t, req)

	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
}

func TestInit_TraceIDHeaderIsEchoed(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	req.Header.Set(traceIDHeader, "client-supplied-trace")
	rr := env.do(t, req)

	assert.Equal(t, "client-supplied-trace", rr.Header().Get(traceIDHeader))
}
