package handlers

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/rogerio-castellano/stock-dashboard/internal/analytics"
	"github.com/rogerio-castellano/stock-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

type ProductRequest struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	// MinStock is optional: create falls back to the default threshold and
	// update keeps the stored one.
	MinStock *int `json:"minStock,omitempty"`
}

type ProductResponse struct {
	Id        int                      `json:"id"`
	Name      string                   `json:"name"`
	Category  string                   `json:"category"`
	Quantity  int                      `json:"quantity"`
	Price     json.Number              `json:"price"`
	MinStock  int                      `json:"minStock"`
	Status    analytics.Classification `json:"status"`
	CreatedAt time.Time                `json:"createdAt"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

type CategoryEntry struct {
	Name  string      `json:"name"`
	Value json.Number `json:"value"`
}

type ActivityResponse struct {
	Id     int    `json:"id"`
	Action string `json:"action"`
	Item   string `json:"item"`
	Time   string `json:"time"`
	User   string `json:"user"`
}

type DashboardResponse struct {
	TotalProducts             int                `json:"totalProducts"`
	LowStockCount             int                `json:"lowStockCount"`
	OutOfStockCount           int                `json:"outOfStockCount"`
	TotalValue                json.Number        `json:"totalValue"`
	LowStockItems             []ProductResponse  `json:"lowStockItems"`
	CategoryDistribution      []CategoryEntry    `json:"categoryDistribution"`
	CategoryValueDistribution []CategoryEntry    `json:"categoryValueDistribution"`
	RecentActivity            []ActivityResponse `json:"recentActivity"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Id          int         `json:"id"`
	Username    string      `json:"username"`
	Role        models.Role `json:"role"`
	AccessToken string      `json:"accessToken"`
}

type CreateUserRequest struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

type UserResponse struct {
	Id        int         `json:"id"`
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

type CreateUserResult struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
}

// number renders a decimal as an exact JSON number.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Id:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Quantity:  p.Quantity,
		Price:     number(p.Price),
		MinStock:  p.MinStock,
		Status:    analytics.Classify(p.Quantity, p.MinStock),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toProductResponses(products []models.Product) []ProductResponse {
	resp := make([]ProductResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}
	return resp
}

func toUserResponse(u models.User) UserResponse {
	return UserResponse{
		Id:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func toDashboardResponse(s analytics.DashboardSummary) DashboardResponse {
	resp := DashboardResponse{
		TotalProducts:             s.TotalProducts,
		LowStockCount:             s.LowStockCount,
		OutOfStockCount:           s.OutOfStockCount,
		TotalValue:                number(s.TotalValue),
		LowStockItems:             toProductResponses(s.LowStockItems),
		CategoryDistribution:      make([]CategoryEntry, len(s.CategoryDistribution)),
		CategoryValueDistribution: make([]CategoryEntry, len(s.CategoryValueDistribution)),
		RecentActivity:            make([]ActivityResponse, len(s.RecentActivity)),
	}
	for i, c := range s.CategoryDistribution {
		resp.CategoryDistribution[i] = CategoryEntry{Name: c.Name, Value: json.Number(strconv.Itoa(c.Value))}
	}
	for i, c := range s.CategoryValueDistribution {
		resp.CategoryValueDistribution[i] = CategoryEntry{Name: c.Name, Value: number(c.Value)}
	}
	for i, a := range s.RecentActivity {
		resp.RecentActivity[i] = ActivityResponse{
			Id:     a.ID,
			Action: a.Action,
			Item:   a.Item,
			Time:   a.Time,
			User:   a.User,
		}
	}
	return resp
}
