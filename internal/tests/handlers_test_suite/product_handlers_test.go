package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rogerio-castellano/stock-dashboard/internal/analytics"
	handler "github.com/rogerio-castellano/stock-dashboard/internal/http/handlers"
)

func TestCreateProductHandler_Valid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter(false)

	w := createProduct(r, productPayload{Name: "Laptop", Category: "Electronics", Price: 1500.5, Quantity: 1})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if resp.Name != "Laptop" {
		t.Errorf("expected name 'Laptop', got %v", resp.Name)
	}
	if resp.Price.String() != "1500.5" {
		t.Errorf("expected price 1500.5, got %v", resp.Price)
	}
	if resp.Quantity != 1 {
		t.Errorf("expected quantity 1, got %v", resp.Quantity)
	}
	if resp.MinStock != 5 {
		t.Errorf("expected default minStock 5, got %d", resp.MinStock)
	}
	if resp.Status != analytics.LowStock {
		t.Errorf("expected LOW_STOCK, got %s", resp.Status)
	}
}

func TestCreateProductHandler_ExplicitMinStock(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter(false)

	resp := mustCreateProduct(r, productPayload{Name: "Cable", Category: "Electronics", Price: 3, Quantity: 1, MinStock: intPtr(0)})

	if resp.MinStock != 0 {
		t.Errorf("expected minStock 0, got %d", resp.MinStock)
	}
	if resp.Status != analytics.InStock {
		t.Errorf("expected IN_STOCK, got %s", resp.Status)
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter(false)

	tests := []struct {
		name           string
		payload        productPayload
		expectCode     int
		expectedErrors []string
	}{
		{
			name:           "Empty name and category",
			payload:        productPayload{Price: 1},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"name", "category"},
		},
		{
			name:           "Negative price",
			payload:        productPayload{Name: "Mouse", Category: "Peripherals", Price: -5.0},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"price"},
		},
		{
			name:           "Negative quantity",
			payload:        productPayload{Name: "Keyboard", Category: "Peripherals", Price: 50.0, Quantity: -1},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"quantity"},
		},
		{
			name:           "Negative minStock",
			payload:        productPayload{Name: "Keyboard", Category: "Peripherals", Price: 50.0, MinStock: intPtr(-2)},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"minStock"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createProduct(r, tt.payload)

			if w.Code != tt.expectCode {
				t.Errorf("expected status %d, got %d", tt.expectCode, w.Code)
			}

			var resp handler.ValidationErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}

			for _, field := range tt.expectedErrors {
				found := false
				for _, err := range resp.Errors {
					if strings.EqualFold(err.Field, field) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error for field %q, but not found", field)
				}
			}
		})
	}

	products, _ := productRepo.GetAll(t.Context())
	if len(products) != 0 {
		t.Errorf("invalid products must not be stored, found %d", len(products))
	}
}

func TestCreateProductHandler_MalformedJSON(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter(false)

	badJSON := `{"name": "Invalid" "price": 100 }` // missing comma
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString(badJSON))
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 Bad Request, got %d", w.Code)
	}
	if msg := decodeMessage(w); msg != "invalid input" {
		t.Errorf("expected 'invalid input', got %q", msg)
	}
}

func TestGetProductsHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter(false)

	mustCreateProduct(r, productPayload{Name: "Phone", Category: "Electronics", Price: 999.99, Quantity: 1})
	mustCreateProduct(r, productPayload{Name: "Tablet", Category: "Electronics", Price: 499.99, Quantity: 20})

	getW := doGet(r, "/api/products", "")
	if getW.Code != http.StatusOK {
		t.Fatalf("expected 200 OK for product retrieval, got %d", getW.Code)
	}

	var products []handler.ProductResponse
	if err := json.NewDecoder(getW.Body).Decode(&products); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("expected two products, got %d", len(products))
	}
	if products[0].Name != "Phone" || products[0].Price.String() != "999.99" {
		t.Errorf("unexpected first product %+v", products[0])
	}
	if products[1].Name != "Tablet" || products[1].Quantity != 20 {
		t.Errorf("unexpected second product %+v", products[1])
	}
}

func TestGetProductsHandler_EmptyCatalog(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter(false)

	w := doGet(r, "/api/products", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("expected an empty JSON array, got %s", body)
	}
}

func TestGetProductByIDHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter(false)
	created := mustCreateProduct(r, productPayload{Name: "Chair", Category: "Furniture", Price: 89.9, Quantity: 12})

	w := doGet(r, fmt.Sprintf("/api/products/%d", created.Id), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var got handler.ProductResponse
	json.NewDecoder(w.Body).Decode(&got)
	if got.Name != "Chair" {
		t.Errorf("expected 'Chair', got %q", got.Name)
	}

	if w := doGet(r, "/api/products/999999", ""); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown product, got %d", w.Code)
	}
	if w := doGet(r, "/api/products/abc", ""); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric id, got %d", w.Code)
	}
}

func TestUpdateProductHandler_Valid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter(false)
	created := mustCreateProduct(r, productPayload{Name: "Old Name", Category: "Misc", Price: 100.0, Quantity: 1, MinStock: intPtr(2)})

	updateW := doJSON(r, http.MethodPut, fmt.Sprintf("/api/products/%d", created.Id), employeeToken,
		productPayload{Name: "New Name", Category: "Misc", Price: 200.0, Quantity: 0})

	if updateW.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", updateW.Code)
	}

	var updated handler.ProductResponse
	if err := json.NewDecoder(updateW.Body).Decode(&updated); err != nil {
		t.Fatalf("error decoding update response: %v", err)
	}

	if updated.Name != "New Name" {
		t.Errorf("expected name 'New Name', got %v", updated.Name)
	}
	if updated.Price.String() != "200" {
		t.Errorf("expected price 200, got %v", updated.Price)
	}
	if updated.MinStock != 2 {
		t.Errorf("expected omitted minStock to be kept at 2, got %d", updated.MinStock)
	}
	if updated.Status != analytics.OutOfStock {
		t.Errorf("expected OUT_OF_STOCK, got %s", updated.Status)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("createdAt changed from %v to %v", created.CreatedAt, updated.CreatedAt)
	}
}

func TestUpdateProductHandler_NotFound(t *testing.T) {
	r := newRouter(false)
	w := doJSON(r, http.MethodPut, "/api/products/999999", adminToken, productPayload{Name: "Ghost", Category: "None", Price: 1.0})

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
}

func TestUpdateProductHandler_InvalidInput(t *testing.T) {
	r := newRouter(false)
	invalidJSON := `{"name": "Bad" "price": 999}` // missing comma
	req := httptest.NewRequest(http.MethodPut, "/api/products/1", bytes.NewBufferString(invalidJSON))
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestUpdateProductHandler_ValidationErrors(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter(false)
	created := mustCreateProduct(r, productPayload{Name: "Temporary", Category: "Misc", Price: 100.0, Quantity: 1})

	w := doJSON(r, http.MethodPut, fmt.Sprintf("/api/products/%d", created.Id), adminToken,
		productPayload{Name: "", Category: "Misc", Price: -100, Quantity: -1})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request, got %d", w.Code)
	}

	var resp handler.ValidationErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	assertField := func(field string) {
		for _, err := range resp.Errors {
			if err.Field == field {
				return
			}
		}
		t.Errorf("expected validation error for %q", field)
	}

	assertField("name")
	assertField("price")
	assertField("quantity")
}

func TestDeleteProductHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter(false)
	created := mustCreateProduct(r, productPayload{Name: "Lamp", Category: "Furniture", Price: 25, Quantity: 4})

	path := fmt.Sprintf("/api/products/%d", created.Id)
	w := doJSON(r, http.MethodDelete, path, adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	if w := doGet(r, path, ""); w.Code != http.StatusNotFound {
		t.Errorf("expected deleted product to be gone, got %d", w.Code)
	}

	if w := doJSON(r, http.MethodDelete, path, adminToken, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", w.Code)
	}
}

func TestFilterProductsHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter(false)

	products := []productPayload{
		{Name: "Phone", Category: "Electronics", Price: 699.99, Quantity: 10},
		{Name: "Laptop", Category: "Electronics", Price: 1299.99, Quantity: 3},
		{Name: "Mouse", Category: "Peripherals", Price: 29.99, Quantity: 0},
		{Name: "Monitor", Category: "Peripherals", Price: 199.99, Quantity: 20},
	}

	for _, p := range products {
		mustCreateProduct(r, p)
	}

	names := func(t *testing.T, query string) []string {
		t.Helper()
		w := doGet(r, "/api/products"+query, "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp []handler.ProductResponse
		json.NewDecoder(w.Body).Decode(&resp)
		out := make([]string, len(resp))
		for i, p := range resp {
			out[i] = p.Name
		}
		return out
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"By name fragment", "?name=PHO", []string{"Phone"}},
		{"By category", "?category=Peripherals", []string{"Mouse", "Monitor"}},
		{"Category All", "?category=All", []string{"Phone", "Laptop", "Mouse", "Monitor"}},
		{"Out of stock", "?status=OUT_OF_STOCK", []string{"Mouse"}},
		{"Low stock label", "?status=Low%20Stock", []string{"Laptop"}},
		{"In stock within category", "?status=IN_STOCK&category=Electronics", []string{"Phone"}},
		{"No match", "?name=xyz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(t, tt.query)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	t.Run("Unknown status", func(t *testing.T) {
		if w := doGet(r, "/api/products?status=BROKEN", ""); w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}
