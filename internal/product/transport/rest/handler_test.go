package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	producterrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/abgdnv/productcatalog/internal/product/service"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProductService is a mock implementation of the ProductService interface
type mockProductService struct {
	product  *service.ProductDto
	products []service.ProductDto
	error    error
	updateID int64
}

func (m *mockProductService) FindAll(_ context.Context) ([]service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.products, nil
}

func (m *mockProductService) FindByID(_ context.Context, _ int64) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) Create(_ context.Context, _ service.ProductCreateDto) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) Update(_ context.Context, id int64, _ service.ProductDto) error {
	m.updateID = id
	return m.error
}

func (m *mockProductService) DeleteByID(_ context.Context, _ int64) error {
	return m.error
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	ValidationErrors map[string]string `json:"validation_errors"`
}

// toJSON is a helper function to convert a struct to JSON string
func toJSON(t *testing.T, v any) string {
	t.Helper()
	bytes, err := json.Marshal(v)
	require.NoError(t, err)
	return string(bytes)
}

func newRouter(svc service.ProductService) http.Handler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	mux := chi.NewRouter()
	NewHandler(svc, logger).RegisterRoutes(mux)
	return mux
}

func serve(t *testing.T, svc service.ProductService, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rr, req)
	return rr
}

func laptop() *service.ProductDto {
	return &service.ProductDto{ID: 1, Name: "Laptop Dell XPS", Price: service.NewPrice(decimal.RequireFromString("1200.50")), Quantity: 10}
}

func Test_ProductAPI_FindAll(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - products found",
			mockService:  mockProductService{products: []service.ProductDto{*laptop()}},
			expectedCode: http.StatusOK,
			expectedBody: `[{"id":1,"name":"Laptop Dell XPS","price":1200.5,"quantity":10}]`,
		},
		{
			name:         "Success - empty catalog",
			mockService:  mockProductService{products: []service.ProductDto{}},
			expectedCode: http.StatusOK,
			expectedBody: `[]`,
		},
		{
			name:         "Error - service error",
			mockService:  mockProductService{error: errors.New("boom")},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Failed to fetch products"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			rr := serve(t, &tc.mockService, http.MethodGet, "/products", "")

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_ProductAPI_FindByID(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		productID    string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product found",
			mockService:  mockProductService{product: laptop()},
			productID:    "1",
			expectedCode: http.StatusOK,
			expectedBody: `{"id":1,"name":"Laptop Dell XPS","price":1200.5,"quantity":10}`,
		},
		{
			name:         "Error - invalid id",
			productID:    "abc",
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Invalid ID: abc"}),
		},
		{
			name:         "Error - product not found",
			mockService:  mockProductService{error: producterrors.ErrProductNotFound},
			productID:    "42",
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, ErrorResponse{Error: "Product with ID 42 not found"}),
		},
		{
			name:         "Error - service error",
			mockService:  mockProductService{error: errors.New("service unavailable")},
			productID:    "1",
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to retrieve product"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := serve(t, &tc.mockService, http.MethodGet, "/products/"+tc.productID, "")

			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_ProductAPI_Create(t *testing.T) {
	mouse := &service.ProductDto{ID: 4, Name: "Mouse", Price: service.NewPrice(decimal.RequireFromString("20.00")), Quantity: 5}
	testCases := []struct {
		name             string
		mockService      mockProductService
		body             string
		expectedCode     int
		expectedBody     string
		expectedLocation string
	}{
		{
			name:             "Success - product created",
			mockService:      mockProductService{product: mouse},
			body:             `{"name":"Mouse","price":20.00,"quantity":5}`,
			expectedCode:     http.StatusCreated,
			expectedBody:     `{"id":4,"name":"Mouse","price":20,"quantity":5}`,
			expectedLocation: "/products/4",
		},
		{
			name:         "Error - malformed body",
			body:         `{"name":`,
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Invalid request body"}),
		},
		{
			name:         "Error - quoted price",
			mockService:  mockProductService{product: mouse},
			body:         `{"name":"abc","price":"5","quantity":1}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Invalid request body"}),
		},
		{
			name: "Error - validation",
			mockService: mockProductService{error: &producterrors.ValidationError{Fields: []producterrors.FieldError{
				{Field: "name", Message: "name must be at least 3 characters long"},
			}}},
			body:         `{"name":"ab","price":1,"quantity":1}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ValidationErrorResponse{ValidationErrors: map[string]string{
				"name": "name must be at least 3 characters long",
			}}),
		},
		{
			name:         "Error - service error",
			mockService:  mockProductService{error: errors.New("boom")},
			body:         `{"name":"Mouse","price":20.00,"quantity":5}`,
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to create product"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := serve(t, &tc.mockService, http.MethodPost, "/products", tc.body)

			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			assert.Equal(t, tc.expectedLocation, rr.Header().Get("Location"))
		})
	}
}

func Test_ProductAPI_Update(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		productID    string
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product updated",
			productID:    "2",
			body:         `{"id":2,"name":"Mouse Pro","price":80,"quantity":7}`,
			expectedCode: http.StatusNoContent,
		},
		{
			name:         "Error - id mismatch",
			mockService:  mockProductService{error: producterrors.ErrIDMismatch},
			productID:    "2",
			body:         `{"id":3,"name":"Mouse Pro","price":80,"quantity":7}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Product ID in URL does not match ID in request body"}),
		},
		{
			name:         "Error - invalid id",
			productID:    "x1",
			body:         `{}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Invalid ID: x1"}),
		},
		{
			name:         "Error - malformed body",
			productID:    "2",
			body:         `not json`,
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Invalid request body"}),
		},
		{
			name:         "Error - product not found",
			mockService:  mockProductService{error: producterrors.ErrProductNotFound},
			productID:    "99",
			body:         `{"id":99,"name":"Mouse Pro","price":80,"quantity":7}`,
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, ErrorResponse{Error: "Product with ID 99 not found"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := serve(t, &tc.mockService, http.MethodPut, "/products/"+tc.productID, tc.body)

			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.expectedBody == "" {
				assert.Empty(t, rr.Body.String())
				assert.Equal(t, int64(2), tc.mockService.updateID)
				return
			}
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_ProductAPI_DeleteByID(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		productID    string
		expectedCode int
		expectedBody string
	}{
		{name: "Success - product deleted", productID: "1", expectedCode: http.StatusNoContent},
		{
			name:         "Error - invalid id",
			productID:    "1.5",
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Invalid ID: 1.5"}),
		},
		{
			name:         "Error - product not found",
			mockService:  mockProductService{error: producterrors.ErrProductNotFound},
			productID:    "7",
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, ErrorResponse{Error: "Product with ID 7 not found"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := serve(t, &tc.mockService, http.MethodDelete, "/products/"+tc.productID, "")

			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.expectedBody == "" {
				assert.Empty(t, rr.Body.String())
				return
			}
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_ProductAPI_HealthCheck(t *testing.T) {
	rr := serve(t, &mockProductService{}, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rr.Code)
}
