package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/stock-dashboard/internal/analytics"
	models "github.com/rogerio-castellano/stock-dashboard/internal/models"
	repo "github.com/rogerio-castellano/stock-dashboard/internal/repo"
)

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the inventory
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/products [post]
func (s *Server) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid input")
		return
	}

	if validationErrors := validateProduct(req); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, ValidationErrorResponse{Message: "validation failed", Errors: validationErrors})
		return
	}

	minStock := models.DefaultMinStock
	if req.MinStock != nil {
		minStock = *req.MinStock
	}

	now := s.now()
	created, err := s.productRepo.Create(r.Context(), models.Product{
		Name:      req.Name,
		Category:  req.Category,
		Quantity:  req.Quantity,
		Price:     req.Price,
		MinStock:  minStock,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		log.Printf("could not create product: %v", err)
		writeMessage(w, http.StatusInternalServerError, "could not create product")
		return
	}
	s.invalidateDashboard(r.Context())

	respond(w, http.StatusCreated, toProductResponse(created))
}

// GetProductsHandler godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param name query string false "Case-insensitive name fragment"
// @Param category query string false "Exact category"
// @Param status query string false "IN_STOCK, LOW_STOCK or OUT_OF_STOCK"
// @Success 200 {array} ProductResponse
// @Failure 400 {object} MessageResponse "Invalid status"
// @Failure 500 {object} MessageResponse "Internal error"
// @Router /api/products [get]
func (s *Server) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var status analytics.Classification
	if raw := q.Get("status"); raw != "" && raw != "All" {
		parsed, ok := analytics.ParseClassification(raw)
		if !ok {
			writeMessage(w, http.StatusBadRequest, "invalid status filter")
			return
		}
		status = parsed
	}

	products, err := s.productRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("could not fetch products: %v", err)
		writeMessage(w, http.StatusInternalServerError, "could not fetch products")
		return
	}

	filter := productFilter{
		name:     strings.ToLower(q.Get("name")),
		category: q.Get("category"),
		status:   status,
	}
	respond(w, http.StatusOK, toProductResponses(filter.apply(products)))
}

type productFilter struct {
	name     string
	category string
	status   analytics.Classification
}

func (f productFilter) apply(products []models.Product) []models.Product {
	filtered := []models.Product{}
	for _, p := range products {
		if f.name != "" && !strings.Contains(strings.ToLower(p.Name), f.name) {
			continue
		}
		if f.category != "" && f.category != "All" && p.Category != f.category {
			continue
		}
		if f.status != "" && analytics.Classify(p.Quantity, p.MinStock) != f.status {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} MessageResponse "Invalid ID"
// @Failure 404 {object} MessageResponse "Not found"
// @Failure 500 {object} MessageResponse "Internal error"
// @Router /api/products/{id} [get]
func (s *Server) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	product, err := s.productRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeMessage(w, http.StatusNotFound, "product not found")
			return
		}
		log.Printf("could not fetch product %d: %v", id, err)
		writeMessage(w, http.StatusInternalServerError, "could not fetch product")
		return
	}
	respond(w, http.StatusOK, toProductResponse(product))
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Updated product"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} MessageResponse "Not found"
// @Failure 500 {object} MessageResponse "Internal error"
// @Router /api/products/{id} [put]
// @Security BearerAuth
func (s *Server) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid input")
		return
	}

	if validationErrors := validateProduct(req); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, ValidationErrorResponse{Message: "validation failed", Errors: validationErrors})
		return
	}

	existing, err := s.productRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeMessage(w, http.StatusNotFound, "product not found")
			return
		}
		log.Printf("could not fetch product %d: %v", id, err)
		writeMessage(w, http.StatusInternalServerError, "could not update product")
		return
	}

	existing.Name = req.Name
	existing.Category = req.Category
	existing.Quantity = req.Quantity
	existing.Price = req.Price
	if req.MinStock != nil {
		existing.MinStock = *req.MinStock
	}
	existing.UpdatedAt = s.now()

	updated, err := s.productRepo.Update(r.Context(), existing)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeMessage(w, http.StatusNotFound, "product not found")
			return
		}
		log.Printf("could not update product %d: %v", id, err)
		writeMessage(w, http.StatusInternalServerError, "could not update product")
		return
	}
	s.invalidateDashboard(r.Context())

	respond(w, http.StatusOK, toProductResponse(updated))
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Param id path int true "Product ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} MessageResponse "Invalid ID"
// @Failure 403 {object} MessageResponse "Require Admin Role!"
// @Failure 404 {object} MessageResponse "Not found"
// @Failure 500 {object} MessageResponse "Internal error"
// @Router /api/products/{id} [delete]
// @Security BearerAuth
func (s *Server) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	if err := s.productRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeMessage(w, http.StatusNotFound, "Product not found or already deleted")
			return
		}
		log.Printf("could not delete product %d: %v", id, err)
		writeMessage(w, http.StatusInternalServerError, "could not delete product")
		return
	}
	s.invalidateDashboard(r.Context())

	writeMessage(w, http.StatusOK, "Product deleted")
}
