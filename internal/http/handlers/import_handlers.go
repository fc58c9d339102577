package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	models "github.com/rogerio-castellano/stock-dashboard/internal/models"
	repo "github.com/rogerio-castellano/stock-dashboard/internal/repo"
	"github.com/shopspring/decimal"
)

type csvRow struct {
	Line     int
	Err      error
	Name     string
	Category string
	Price    decimal.Decimal
	Quantity int
	MinStock int
}

var requiredImportColumns = []string{"name", "category", "price", "quantity"}

func parseCSV(r io.Reader) ([]csvRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, errors.New("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredImportColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var rows []csvRow
	for line := 2; ; line++ { // header is row 1
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		row := parseRow(record, index)
		row.Line = line
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(record []string, index map[string]int) csvRow {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	price, err := decimal.NewFromString(field("price"))
	if err != nil {
		return csvRow{Err: errors.New("invalid price")}
	}
	quantity, err := strconv.Atoi(field("quantity"))
	if err != nil {
		return csvRow{Err: errors.New("invalid quantity")}
	}
	minStock := models.DefaultMinStock
	if raw := field("min_stock"); raw != "" {
		if minStock, err = strconv.Atoi(raw); err != nil {
			return csvRow{Err: errors.New("invalid min_stock")}
		}
	}

	return csvRow{
		Name:     field("name"),
		Category: field("category"),
		Price:    price,
		Quantity: quantity,
		MinStock: minStock,
	}
}

func (r csvRow) request() ProductRequest {
	minStock := r.MinStock
	return ProductRequest{
		Name:     r.Name,
		Category: r.Category,
		Quantity: r.Quantity,
		Price:    r.Price,
		MinStock: &minStock,
	}
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Columns: name, category, price, quantity and optional min_stock
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {object} MessageResponse "Invalid file"
// @Router /api/products/import [post]
// @Security BearerAuth
func (s *Server) ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip" // default
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	imported := 0
	errorsList := []ProductValidationError{}

	for _, rec := range records {
		rowNum := rec.Line
		if rec.Err != nil {
			errorsList = append(errorsList, ProductValidationError{Field: "row", Description: fmt.Sprintf("row %d: %v", rowNum, rec.Err)})
			continue
		}

		if verrs := validateProduct(rec.request()); len(verrs) > 0 {
			for _, v := range verrs {
				errorsList = append(errorsList, ProductValidationError{Field: v.Field, Description: fmt.Sprintf("row %d: %s", rowNum, v.Description)})
			}
			continue
		}

		existing, err := s.productRepo.GetByName(ctx, rec.Name)
		switch {
		case err == nil:
			if mode == "skip" {
				errorsList = append(errorsList, ProductValidationError{Field: "name", Description: fmt.Sprintf("row %d: product '%s' already exists", rowNum, rec.Name)})
				continue
			}
			existing.Category = rec.Category
			existing.Price = rec.Price
			existing.Quantity = rec.Quantity
			existing.MinStock = rec.MinStock
			existing.UpdatedAt = s.now()
			if _, err := s.productRepo.Update(ctx, existing); err != nil {
				log.Printf("import: failed to update %q: %v", rec.Name, err)
				errorsList = append(errorsList, ProductValidationError{Field: "name", Description: fmt.Sprintf("row %d: failed to update '%s'", rowNum, rec.Name)})
				continue
			}
		case errors.Is(err, repo.ErrProductNotFound):
			now := s.now()
			if _, err := s.productRepo.Create(ctx, models.Product{
				Name:      rec.Name,
				Category:  rec.Category,
				Price:     rec.Price,
				Quantity:  rec.Quantity,
				MinStock:  rec.MinStock,
				CreatedAt: now,
				UpdatedAt: now,
			}); err != nil {
				log.Printf("import: failed to create %q: %v", rec.Name, err)
				errorsList = append(errorsList, ProductValidationError{Field: "name", Description: fmt.Sprintf("row %d: failed to create '%s'", rowNum, rec.Name)})
				continue
			}
		default:
			log.Printf("import: lookup of %q failed: %v", rec.Name, err)
			errorsList = append(errorsList, ProductValidationError{Field: "name", Description: fmt.Sprintf("row %d: lookup failed", rowNum)})
			continue
		}
		imported++
	}

	if imported > 0 {
		s.invalidateDashboard(ctx)
	}

	respond(w, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	})
}
