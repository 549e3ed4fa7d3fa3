package orders

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"petstore-client/internal/middleware"
	"petstore-client/internal/ports/auth"
)

const dateLayout = "2006-01-02"

func RegisterRoutes(r chi.Router, svc *Service) {
	validate := newValidator()

	r.Route("/orders", func(rr chi.Router) {
		rr.Post("/orders/", createOrderHandler(svc, validate))
		rr.Get("/orders/", listOrdersHandler(svc))
		rr.Get("/orders/user_orders/", userOrdersHandler(svc))
		rr.Post("/orders/{orderID}/cancel/", cancelOrderHandler(svc))
	})
}

type createOrderRequest struct {
	Pet            json.Number `json:"pet" validate:"required,pk"`
	Quantity       *int        `json:"quantity" validate:"omitempty,gt=0"` // nil => 1
	DeliveryMethod string      `json:"delivery_method" validate:"omitempty,oneof=pickup delivery"`
	PickupDate     string      `json:"pickup_date" validate:"omitempty,datetime=2006-01-02"`
	RecipientName  string      `json:"recipient_name" validate:"max=100"`
}

// newValidator reporta los campos con su nombre JSON y agrega "pk":
// un id entero positivo.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("pk", func(fl validator.FieldLevel) bool {
		id, err := strconv.ParseInt(strings.TrimSpace(fl.Field().String()), 10, 64)
		return err == nil && id > 0
	})
	return v
}

type orderResponse struct {
	ID             int64          `json:"id"`
	Number         string         `json:"number"`
	User           int64          `json:"user"`
	Pet            int64          `json:"pet"`
	Quantity       int            `json:"quantity"`
	TotalPrice     string         `json:"total_price"`
	Status         Status         `json:"status"`
	DeliveryMethod DeliveryMethod `json:"delivery_method"`
	PickupDate     *string        `json:"pickup_date"`
	RecipientName  string         `json:"recipient_name"`
	OrderDate      time.Time      `json:"order_date"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// createOrderHandler
// @Summary  Create an order for one pet
// @Security Bearer
// @Param    body body createOrderRequest true "order"
// @Success  201 {object} orderResponse
// @Failure  400 {object} map[string][]string
// @Router   /orders/orders/ [post]
func createOrderHandler(svc *Service, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		var req createOrderRequest
		if !decodeAndValidate(w, r, validate, &req) {
			return
		}

		o, err := svc.Create(r.Context(), actor, req.toInput())
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				writeFieldError(w, ve)
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, toOrderResponse(o))
	}
}

// toInput asume un request ya validado.
func (req createOrderRequest) toInput() CreateInput {
	petID, _ := strconv.ParseInt(strings.TrimSpace(req.Pet.String()), 10, 64)
	in := CreateInput{
		PetID:          petID,
		Quantity:       1,
		DeliveryMethod: DeliveryMethod(req.DeliveryMethod),
		RecipientName:  req.RecipientName,
	}
	if req.Quantity != nil {
		in.Quantity = *req.Quantity
	}
	if req.PickupDate != "" {
		d, _ := time.Parse(dateLayout, req.PickupDate)
		in.PickupDate = &d
	}
	return in
}

// listOrdersHandler
// @Summary  List orders (admin: all)
// @Security Bearer
// @Success  200 {array} orderResponse
// @Router   /orders/orders/ [get]
func listOrdersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		items, err := svc.List(r.Context(), actor)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeOrders(w, items)
	}
}

// userOrdersHandler
// @Summary  Orders of the current user (admin may pass user_id)
// @Security Bearer
// @Success  200 {array} orderResponse
// @Router   /orders/orders/user_orders/ [get]
func userOrdersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		userID := actor.UserID
		if v := strings.TrimSpace(r.URL.Query().Get("user_id")); v != "" && actor.IsAdmin {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "user_id must be an integer")
				return
			}
			userID = id
		}

		items, err := svc.ListByUser(r.Context(), userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeOrders(w, items)
	}
}

// cancelOrderHandler
// @Summary  Cancel a pending order and restore stock
// @Security Bearer
// @Param    orderID path int true "order id"
// @Success  200 {object} orderResponse
// @Failure  400 {object} map[string]string
// @Router   /orders/orders/{orderID}/cancel/ [post]
func cancelOrderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
		if err != nil {
			writeError(w, http.StatusNotFound, "Not found.")
			return
		}

		o, err := svc.Cancel(r.Context(), actor, id)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				writeError(w, http.StatusNotFound, "Not found.")
			case errors.Is(err, ErrNotPending):
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Cannot cancel order that is not pending"})
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}
		writeJSON(w, http.StatusOK, toOrderResponse(o))
	}
}

func actorFrom(w http.ResponseWriter, r *http.Request) (Actor, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return Actor{}, false
	}
	actor, err := actorFromClaims(claims)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Given token not valid for any token type")
		return Actor{}, false
	}
	return actor, true
}

func actorFromClaims(c auth.Claims) (Actor, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.UserID), 10, 64)
	if err != nil || id <= 0 {
		return Actor{}, errors.New("invalid user id")
	}
	return Actor{UserID: id, IsAdmin: c.Role == "admin"}, nil
}

func writeOrders(w http.ResponseWriter, items []Order) {
	out := make([]orderResponse, 0, len(items))
	for _, o := range items {
		out = append(out, toOrderResponse(o))
	}
	writeJSON(w, http.StatusOK, out)
}

func toOrderResponse(o Order) orderResponse {
	var pickup *string
	if o.PickupDate != nil {
		s := o.PickupDate.Format(dateLayout)
		pickup = &s
	}
	return orderResponse{
		ID:             o.ID,
		Number:         o.Number,
		User:           o.UserID,
		Pet:            o.PetID,
		Quantity:       o.Quantity,
		TotalPrice:     strconv.FormatFloat(o.TotalPrice, 'f', 2, 64),
		Status:         o.Status,
		DeliveryMethod: o.DeliveryMethod,
		PickupDate:     pickup,
		RecipientName:  o.RecipientName,
		OrderDate:      o.OrderDate,
		UpdatedAt:      o.UpdatedAt,
	}
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			writeJSON(w, http.StatusBadRequest, fieldErrors(vErrs))
			return false
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// fieldErrors arma {"campo": ["mensaje"]}.
func fieldErrors(vErrs validator.ValidationErrors) map[string][]string {
	out := make(map[string][]string, len(vErrs))
	for _, fe := range vErrs {
		msg := "invalid value"
		switch fe.Tag() {
		case "required":
			msg = "This field is required."
		case "pk":
			msg = "Incorrect type. Expected pk value."
		case "gt":
			msg = "Ensure this value is greater than " + fe.Param() + "."
		case "oneof":
			msg = strconv.Quote(fmt.Sprint(fe.Value())) + " is not a valid choice."
		case "datetime":
			msg = "Date has wrong format. Use YYYY-MM-DD."
		case "max":
			msg = "Ensure this field has no more than " + fe.Param() + " characters."
		}
		out[fe.Field()] = append(out[fe.Field()], msg)
	}
	return out
}

func writeFieldError(w http.ResponseWriter, ve *ValidationError) {
	writeJSON(w, http.StatusBadRequest, map[string][]string{ve.Field: {ve.Message}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
