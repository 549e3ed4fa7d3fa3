package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /pets/* (el router ya está bajo /api).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/pets/", listPetsHandler(svc))
		pr.Get("/pets/{petID}/", getPetHandler(svc))
		pr.Get("/categories/", listCategoriesHandler(svc))
	})
}

type petListItem struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Price        string `json:"price"`
	Image        string `json:"image,omitempty"`
	CategoryName string `json:"category_name"`
	IsAvailable  bool   `json:"is_available"`
	Gender       Gender `json:"gender"`
}

type petResponse struct {
	ID                int64     `json:"id"`
	Category          int64     `json:"category"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Price             string    `json:"price"`
	ImageURL          string    `json:"image_url,omitempty"`
	Gender            Gender    `json:"gender"`
	IsAvailable       bool      `json:"is_available"`
	StockQuantity     int       `json:"stock_quantity"`
	MinStockThreshold int       `json:"min_stock_threshold"`
	StockStatus       string    `json:"stock_status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type categoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// listPetsHandler
// @Summary  List pets for sale
// @Param    category query int    false "category id"
// @Param    search   query string false "name/description contains"
// @Param    ordering query string false "price, -price, name, -name"
// @Success  200 {array} petListItem
// @Router   /pets/pets/ [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		f := ListFilter{
			Search:   q.Get("search"),
			Ordering: q.Get("ordering"),
		}
		if v := strings.TrimSpace(q.Get("category")); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "category must be an integer")
				return
			}
			f.CategoryID = id
		}

		items, err := svc.ListForSale(r.Context(), f)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		names, err := svc.CategoryNames(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]petListItem, 0, len(items))
		for _, p := range items {
			out = append(out, petListItem{
				ID:           p.ID,
				Name:         p.Name,
				Price:        FormatPrice(p.Price),
				Image:        p.ImageURL,
				CategoryName: names[p.CategoryID],
				IsAvailable:  p.IsAvailable,
				Gender:       p.Gender,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler
// @Summary  Pet detail
// @Param    petID path int true "pet id"
// @Success  200 {object} petResponse
// @Failure  404 {object} errorResponse
// @Router   /pets/pets/{petID}/ [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "petID"), 10, 64)
		if err != nil {
			writeError(w, http.StatusNotFound, "Not found.")
			return
		}

		p, err := svc.GetPet(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeError(w, http.StatusNotFound, "Not found.")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// listCategoriesHandler
// @Summary  List categories
// @Success  200 {array} categoryResponse
// @Router   /pets/categories/ [get]
func listCategoriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := svc.Categories(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]categoryResponse, 0, len(cats))
		for _, c := range cats {
			out = append(out, categoryResponse{
				ID:          c.ID,
				Name:        c.Name,
				Description: c.Description,
				CreatedAt:   c.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:                p.ID,
		Category:          p.CategoryID,
		Name:              p.Name,
		Description:       p.Description,
		Price:             FormatPrice(p.Price),
		ImageURL:          p.ImageURL,
		Gender:            p.Gender,
		IsAvailable:       p.IsAvailable,
		StockQuantity:     p.StockQuantity,
		MinStockThreshold: p.MinStockThreshold,
		StockStatus:       p.StockStatus(),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// FormatPrice imita el DecimalField serializado ("1500.00").
func FormatPrice(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
