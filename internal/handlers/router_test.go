package handlers

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"

	"sweetshop/internal/config"
	"sweetshop/internal/middleware"
	"sweetshop/internal/models"
	"sweetshop/internal/repository"
	"sweetshop/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// In-memory stores backing the full handler stack in tests.

type memUserStore struct {
	users       map[string]models.User
	createCalls int
}

func (m *memUserStore) Create(ctx context.Context, user *models.User) error {
	m.createCalls++
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", m.createCalls)
	}
	m.users[user.Email] = *user
	return nil
}

func (m *memUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := m.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

type memSweetStore struct {
	sweets      map[string]models.Sweet
	createCalls int
}

func (m *memSweetStore) Create(ctx context.Context, sweet *models.Sweet) error {
	m.createCalls++
	if sweet.ID == "" {
		sweet.ID = fmt.Sprintf("sweet-%d", m.createCalls)
	}
	m.sweets[sweet.ID] = *sweet
	return nil
}

func (m *memSweetStore) GetByID(ctx context.Context, id string) (*models.Sweet, error) {
	sweet, ok := m.sweets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &sweet, nil
}

func (m *memSweetStore) List(ctx context.Context) ([]models.Sweet, error) {
	var out []models.Sweet
	for _, s := range m.sweets {
		out = append(out, s)
	}
	return out, nil
}

func (m *memSweetStore) Search(ctx context.Context, filter repository.SweetFilter) ([]models.Sweet, error) {
	var out []models.Sweet
	for _, s := range m.sweets {
		if filter.Name != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(s.Category, filter.Category) {
			continue
		}
		if filter.MinPrice != nil && s.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && s.Price > *filter.MaxPrice {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memSweetStore) Update(ctx context.Context, id string, patch repository.SweetPatch) (*models.Sweet, error) {
	sweet, ok := m.sweets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Name != nil {
		sweet.Name = *patch.Name
	}
	if patch.Category != nil {
		sweet.Category = *patch.Category
	}
	if patch.Price != nil {
		sweet.Price = *patch.Price
	}
	if patch.Quantity != nil {
		sweet.Quantity = *patch.Quantity
	}
	m.sweets[id] = sweet
	return &sweet, nil
}

func (m *memSweetStore) Delete(ctx context.Context, id string) error {
	if _, ok := m.sweets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.sweets, id)
	return nil
}

func (m *memSweetStore) AdjustQuantity(ctx context.Context, id string, delta int) (*models.Sweet, error) {
	sweet, ok := m.sweets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if sweet.Quantity+delta < 0 {
		return nil, repository.ErrInsufficientStock
	}
	sweet.Quantity += delta
	m.sweets[id] = sweet
	return &sweet, nil
}

type memAuditStore struct {
	entries []models.AuditEntry
}

func (m *memAuditStore) Create(ctx context.Context, entry *models.AuditEntry) error {
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memAuditStore) Recent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	if limit > len(m.entries) {
		limit = len(m.entries)
	}
	out := make([]models.AuditEntry, 0, limit)
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

type testEnv struct {
	router *gin.Engine
	users  *memUserStore
	sweets *memSweetStore
	audit  *memAuditStore
	tokens *services.TokenService
}

// setupEnv wires the whole stack exactly like the serve command, over
// in-memory stores.
func setupEnv() *testEnv {
	users := &memUserStore{users: map[string]models.User{}}
	sweets := &memSweetStore{sweets: map[string]models.Sweet{}}
	audit := &memAuditStore{}

	tokens := services.NewTokenService(config.AuthConfig{Secret: "test-secret", TokenTTLMin: 60})
	authService := services.NewAuthService(users, tokens)
	sweetService := services.NewSweetService(sweets)
	auditService := services.NewAuditService(audit)

	authHandler := NewAuthHandler(authService, auditService)
	sweetHandler := NewSweetHandler(sweetService, auditService)
	auditHandler := NewAuditHandler(auditService)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("/")
	protected.Use(middleware.Auth(tokens))
	{
		protected.POST("/sweets", sweetHandler.Create)
		protected.GET("/sweets", sweetHandler.List)
		protected.GET("/sweets/search", sweetHandler.Search)
		protected.PUT("/sweets/:id", sweetHandler.Update)
		protected.DELETE("/sweets/:id", sweetHandler.Delete)
		protected.POST("/sweets/:id/purchase", sweetHandler.Purchase)
		protected.POST("/sweets/:id/restock", sweetHandler.Restock)
		protected.GET("/audit", auditHandler.List)
	}

	return &testEnv{router: r, users: users, sweets: sweets, audit: audit, tokens: tokens}
}

func (e *testEnv) tokenFor(role models.Role) string {
	token, err := e.tokens.Issue("tester-"+strings.ToLower(string(role)), role)
	if err != nil {
		panic(err)
	}
	return token
}

func (e *testEnv) seed(sweet models.Sweet) {
	e.sweets.sweets[sweet.ID] = sweet
}

func (e *testEnv) do(method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
