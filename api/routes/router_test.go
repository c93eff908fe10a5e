package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	authsvc "github.com/southsteak/ordering-backend/internal/auth"
	cartsvc "github.com/southsteak/ordering-backend/internal/cart"
	categoriessvc "github.com/southsteak/ordering-backend/internal/categories"
	checkoutsvc "github.com/southsteak/ordering-backend/internal/checkout"
	menusvc "github.com/southsteak/ordering-backend/internal/menu"
	pmsvc "github.com/southsteak/ordering-backend/internal/paymentmethods"
	settingssvc "github.com/southsteak/ordering-backend/internal/settings"
	pkgauth "github.com/southsteak/ordering-backend/pkg/auth"
	"github.com/southsteak/ordering-backend/pkg/config"
	"github.com/southsteak/ordering-backend/pkg/db/models"
	pkgerrors "github.com/southsteak/ordering-backend/pkg/errors"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, email, password string) (*authsvc.LoginResult, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}

func (stubAuthService) Verify(ctx context.Context, token string) (*pkgauth.AdminClaims, error) {
	if token == "good-token" {
		return &pkgauth.AdminClaims{Email: "owner@southsteak.ph"}, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token")
}

type stubMenuService struct{}

func (stubMenuService) ListMenu(ctx context.Context, filters menusvc.ListFilters) ([]menusvc.MenuItemDTO, error) {
	return []menusvc.MenuItemDTO{}, nil
}

func (stubMenuService) GetMenuItemDTO(ctx context.Context, id uuid.UUID) (*menusvc.MenuItemDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
}

func (stubMenuService) GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
}

func (stubMenuService) CreateMenuItem(ctx context.Context, input menusvc.CreateMenuItemInput) (*menusvc.MenuItemDTO, error) {
	return &menusvc.MenuItemDTO{}, nil
}

func (stubMenuService) UpdateMenuItem(ctx context.Context, id uuid.UUID, input menusvc.UpdateMenuItemInput) (*menusvc.MenuItemDTO, error) {
	return &menusvc.MenuItemDTO{}, nil
}

func (stubMenuService) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubCategoriesService struct{}

func (stubCategoriesService) List(ctx context.Context) ([]models.Category, error) {
	return []models.Category{}, nil
}

func (stubCategoriesService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
}

func (stubCategoriesService) Create(ctx context.Context, input categoriessvc.CategoryInput) (*models.Category, error) {
	return &models.Category{}, nil
}

func (stubCategoriesService) Update(ctx context.Context, id uuid.UUID, input categoriessvc.CategoryInput) (*models.Category, error) {
	return &models.Category{}, nil
}

func (stubCategoriesService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubPaymentMethodsService struct{}

func (stubPaymentMethodsService) ListActive(ctx context.Context) ([]models.PaymentMethod, error) {
	return []models.PaymentMethod{}, nil
}

func (stubPaymentMethodsService) ListAll(ctx context.Context) ([]models.PaymentMethod, error) {
	return []models.PaymentMethod{}, nil
}

func (stubPaymentMethodsService) Get(ctx context.Context, id uuid.UUID) (*models.PaymentMethod, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment method not found")
}

func (stubPaymentMethodsService) Create(ctx context.Context, input pmsvc.PaymentMethodInput) (*models.PaymentMethod, error) {
	return &models.PaymentMethod{}, nil
}

func (stubPaymentMethodsService) Update(ctx context.Context, id uuid.UUID, input pmsvc.UpdatePaymentMethodInput) (*models.PaymentMethod, error) {
	return &models.PaymentMethod{}, nil
}

func (stubPaymentMethodsService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubSettingsService struct{}

func (stubSettingsService) Get(ctx context.Context) (*models.SiteSettings, error) {
	return &models.SiteSettings{SiteName: "South Steak"}, nil
}

func (stubSettingsService) Update(ctx context.Context, input settingssvc.UpdateInput) (*models.SiteSettings, error) {
	return &models.SiteSettings{SiteName: "South Steak"}, nil
}

type stubRouterCartService struct{}

func (stubRouterCartService) Get(ctx context.Context, sessionID string) (*cartsvc.Cart, error) {
	return cartsvc.NewCart(sessionID), nil
}

func (stubRouterCartService) AddItem(ctx context.Context, sessionID string, input cartsvc.AddItemInput) (*cartsvc.Cart, error) {
	return cartsvc.NewCart(sessionID), nil
}

func (stubRouterCartService) UpdateQuantity(ctx context.Context, sessionID string, lineKey string, quantity int) (*cartsvc.Cart, error) {
	return cartsvc.NewCart(sessionID), nil
}

func (stubRouterCartService) RemoveLine(ctx context.Context, sessionID string, lineKey string) (*cartsvc.Cart, error) {
	return cartsvc.NewCart(sessionID), nil
}

func (stubRouterCartService) Clear(ctx context.Context, sessionID string) (*cartsvc.Cart, error) {
	return cartsvc.NewCart(sessionID), nil
}

type stubRouterCheckoutService struct{}

func (stubRouterCheckoutService) BuildHandoff(ctx context.Context, sessionID string, input checkoutsvc.Input) (*checkoutsvc.Handoff, error) {
	return &checkoutsvc.Handoff{}, nil
}

type stubCronRunner struct {
	runs int
}

func (s *stubCronRunner) RunOnce(ctx context.Context) error {
	s.runs++
	return nil
}

func newTestRouter(t *testing.T, cron *stubCronRunner) http.Handler {
	t.Helper()
	if cron == nil {
		cron = &stubCronRunner{}
	}
	cfg := &config.Config{
		App:  config.AppConfig{Env: "test"},
		Cron: config.CronConfig{Secret: "cron-secret"},
	}
	return NewRouter(RouterParams{
		Config:         cfg,
		Logger:         nil,
		DB:             stubPinger{},
		Redis:          stubPinger{},
		Auth:           stubAuthService{},
		Menu:           stubMenuService{},
		Categories:     stubCategoriesService{},
		PaymentMethods: stubPaymentMethodsService{},
		Settings:       stubSettingsService{},
		Cart:           stubRouterCartService{},
		Checkout:       stubRouterCheckoutService{},
		Cron:           cron,
	})
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterPublicMenu(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/menu", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterCartRequiresSessionHeader(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Session-Id", "session-1")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRouterAdminRequiresToken(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/menu", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/v1/menu", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRouterCronRequiresSecret(t *testing.T) {
	runner := &stubCronRunner{}
	router := newTestRouter(t, runner)

	req := httptest.NewRequest(http.MethodPost, "/api/cron/v1/run", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	if runner.runs != 0 {
		t.Fatalf("expected no runs, got %d", runner.runs)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/cron/v1/run", nil)
	req.Header.Set("Authorization", "Bearer cron-secret")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if runner.runs != 1 {
		t.Fatalf("expected 1 run, got %d", runner.runs)
	}
}
