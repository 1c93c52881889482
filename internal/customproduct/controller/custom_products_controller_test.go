package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"bikeshop/internal/compat"
	"bikeshop/internal/customproduct/usecase"
	"bikeshop/internal/dto"
	apperrors "bikeshop/internal/errors"
)

// Mock implementations

type mockUseCase struct {
	ListFunc         func(ctx context.Context) ([]dto.CustomProductDTO, error)
	GetFunc          func(ctx context.Context, id uint) (*dto.CustomProductDTO, error)
	CreateFunc       func(ctx context.Context, req dto.CreateCustomProductRequest) (*dto.CustomProductDTO, error)
	UpdateFunc       func(ctx context.Context, id uint, req dto.UpdateCustomProductRequest) (*dto.CustomProductDTO, error)
	ReplacePartsFunc func(ctx context.Context, id uint, partIDs []uint) (*dto.CustomProductDTO, error)
	AttachPartFunc   func(ctx context.Context, id uint, partID uint) (*dto.CustomProductDTO, error)
	DeleteFunc       func(ctx context.Context, id uint) error
}

func (m *mockUseCase) List(ctx context.Context) ([]dto.CustomProductDTO, error) {
	return m.ListFunc(ctx)
}

func (m *mockUseCase) Get(ctx context.Context, id uint) (*dto.CustomProductDTO, error) {
	return m.GetFunc(ctx, id)
}

func (m *mockUseCase) Create(ctx context.Context, req dto.CreateCustomProductRequest) (*dto.CustomProductDTO, error) {
	return m.CreateFunc(ctx, req)
}

func (m *mockUseCase) Update(ctx context.Context, id uint, req dto.UpdateCustomProductRequest) (*dto.CustomProductDTO, error) {
	return m.UpdateFunc(ctx, id, req)
}

func (m *mockUseCase) ReplaceParts(ctx context.Context, id uint, partIDs []uint) (*dto.CustomProductDTO, error) {
	return m.ReplacePartsFunc(ctx, id, partIDs)
}

func (m *mockUseCase) AttachPart(ctx context.Context, id uint, partID uint) (*dto.CustomProductDTO, error) {
	return m.AttachPartFunc(ctx, id, partID)
}

func (m *mockUseCase) Delete(ctx context.Context, id uint) error {
	return m.DeleteFunc(ctx, id)
}

type noopBroadcaster struct{}

func (noopBroadcaster) Broadcast(event string, payload interface{}) {}

func newTestRouter(uc UseCase) http.Handler {
	ctrl := NewCustomProductsController(uc, noopBroadcaster{}, zap.NewNop())

	r := chi.NewRouter()
	r.Get("/custom-products/{id}", ctrl.HandleGet)
	r.Put("/custom-products/{id}", ctrl.HandleUpdate)
	r.Post("/custom-products/{id}/parts", ctrl.HandleAttachPart)
	r.Patch("/custom-products/{id}/parts", ctrl.HandleReplaceParts)
	return r
}

// Tests

func TestHandleGet_NotFoundMapsTo404(t *testing.T) {
	uc := &mockUseCase{
		GetFunc: func(ctx context.Context, id uint) (*dto.CustomProductDTO, error) {
			return nil, apperrors.NewNotFoundError("custom product with id 5 not found")
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/custom-products/5", nil)
	newTestRouter(uc).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleAttachPart_ViolationMapsTo400(t *testing.T) {
	uc := &mockUseCase{
		AttachPartFunc: func(ctx context.Context, id uint, partID uint) (*dto.CustomProductDTO, error) {
			return nil, apperrors.NewValidationError("Mountain wheels require a full-suspension frame.")
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/custom-products/5/parts", strings.NewReader(`{"partId":2}`))
	newTestRouter(uc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Message != "Mountain wheels require a full-suspension frame." {
		t.Errorf("unexpected message %q", body.Message)
	}
}

func TestHandleUpdate_IncompatibleTypeCarriesPartList(t *testing.T) {
	uc := &mockUseCase{
		UpdateFunc: func(ctx context.Context, id uint, req dto.UpdateCustomProductRequest) (*dto.CustomProductDTO, error) {
			return nil, &usecase.IncompatibleTypeError{
				IncompatibleParts: []compat.IncompatiblePart{
					{PartID: 1, Category: "frameType", ProductType: "bicycle"},
					{PartID: 2, Category: "wheels", ProductType: "bicycle"},
				},
			}
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/custom-products/5", strings.NewReader(`{"productType":"ski"}`))
	newTestRouter(uc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}

	var body struct {
		Error             string                    `json:"error"`
		IncompatibleParts []compat.IncompatiblePart `json:"incompatibleParts"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(body.IncompatibleParts) != 2 {
		t.Errorf("expected 2 incompatible parts, got %v", body.IncompatibleParts)
	}
}

func TestHandleReplaceParts_EmptyListRejectedUpstream(t *testing.T) {
	called := false
	uc := &mockUseCase{
		ReplacePartsFunc: func(ctx context.Context, id uint, partIDs []uint) (*dto.CustomProductDTO, error) {
			called = true
			return nil, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/custom-products/5/parts", strings.NewReader(`{"parts":[]}`))
	newTestRouter(uc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if called {
		t.Errorf("empty replacement must be rejected before the use case runs")
	}
}

func TestHandleUpdate_InvalidID(t *testing.T) {
	uc := &mockUseCase{}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/custom-products/abc", strings.NewReader(`{"name":"x"}`))
	newTestRouter(uc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
