package handlers

import (
	"encoding/csv"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/stock-dashboard/internal/analytics"
)

var exportHeader = []string{"id", "name", "category", "quantity", "price", "min_stock", "status"}

// ExportProductsHandler godoc
// @Summary Export the catalog
// @Tags products
// @Produce json
// @Produce text/csv
// @Param format query string false "csv (default) or json"
// @Success 200 {array} ProductResponse
// @Failure 400 {object} MessageResponse "Invalid format"
// @Router /api/export [get]
func (s *Server) ExportProductsHandler(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "json" {
		writeMessage(w, http.StatusBadRequest, "format must be csv or json")
		return
	}

	products, err := s.productRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("could not fetch products for export: %v", err)
		writeMessage(w, http.StatusInternalServerError, "could not export products")
		return
	}

	if format == "json" {
		respond(w, http.StatusOK, toProductResponses(products))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="inventory.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write(exportHeader)
	for _, p := range products {
		_ = cw.Write([]string{
			strconv.Itoa(p.ID),
			p.Name,
			p.Category,
			strconv.Itoa(p.Quantity),
			p.Price.String(),
			strconv.Itoa(p.MinStock),
			string(analytics.Classify(p.Quantity, p.MinStock)),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Printf("csv export failed: %v", err)
	}
}
