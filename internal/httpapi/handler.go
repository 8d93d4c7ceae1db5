package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/jmorgan-io/shop-service/internal/billing"
	"github.com/jmorgan-io/shop-service/internal/catalog"
	"github.com/jmorgan-io/shop-service/internal/orders"
	"github.com/jmorgan-io/shop-service/internal/storage"
	"github.com/jmorgan-io/shop-service/internal/validation"
	"github.com/jmorgan-io/shop-service/pkg/models"
)

// ActivityHub receives API activity for the live dashboard feed.
type ActivityHub interface {
	Broadcast(eventType string, payload interface{})
}

// Handler exposes the catalog, order, and billing services over HTTP.
type Handler struct {
	products *catalog.Service
	orders   *orders.Service
	bills    *billing.Service
	logger   *logrus.Logger
	hub      ActivityHub
}

func NewHandler(products *catalog.Service, orderService *orders.Service, bills *billing.Service, logger *logrus.Logger) *Handler {
	return &Handler{
		products: products,
		orders:   orderService,
		bills:    bills,
		logger:   logger,
	}
}

// SetActivityHub wires an optional live activity feed.
func (h *Handler) SetActivityHub(hub ActivityHub) {
	h.hub = hub
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req catalog.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithError(err).Error("Failed to decode product request")
		h.respondWithFieldErrors(w, http.StatusBadRequest, []validation.FieldError{
			{Message: "invalid request body", Field: "body"},
		})
		return
	}

	product, err := h.products.Create(r.Context(), req)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	h.broadcast("product_created", product)

	w.Header().Set("Location", "/products/"+product.ID)
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context(), r.URL.Query().Get("sort"))
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	h.respondWithJSON(w, http.StatusOK, products)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, product)
}

func (h *Handler) DeleteAllProducts(w http.ResponseWriter, r *http.Request) {
	if err := h.products.DeleteAll(r.Context()); err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req orders.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithError(err).Error("Failed to decode order request")
		h.respondWithFieldErrors(w, http.StatusBadRequest, []validation.FieldError{
			{Message: "invalid request body", Field: "body"},
		})
		return
	}

	order, err := h.orders.Create(r.Context(), req)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	h.broadcast("order_created", order)

	w.Header().Set("Location", "/orders/"+order.ID)
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orderList, err := h.orders.List(r.Context(), r.URL.Query().Get("sort"))
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	if orderList == nil {
		orderList = []models.Order{}
	}
	h.respondWithJSON(w, http.StatusOK, orderList)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, order)
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithError(err).Error("Failed to decode status request")
		h.respondWithFieldErrors(w, http.StatusBadRequest, []validation.FieldError{
			{Message: "invalid request body", Field: "body"},
		})
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	h.broadcast("order_status_changed", order)

	h.respondWithJSON(w, http.StatusOK, order)
}

func (h *Handler) DeleteAllOrders(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.DeleteAll(r.Context()); err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.bills.List(r.Context())
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	if bills == nil {
		bills = []models.Bill{}
	}
	h.respondWithJSON(w, http.StatusOK, bills)
}

func (h *Handler) DeleteAllBills(w http.ResponseWriter, r *http.Request) {
	if err := h.bills.DeleteAll(r.Context()); err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) broadcast(eventType string, payload interface{}) {
	if h.hub != nil {
		h.hub.Broadcast(eventType, payload)
	}
}

// respondWithServiceError translates service errors into HTTP
// responses: validation-class failures become 400 with a field list,
// missing records become an empty 404, everything else is a 500.
func (h *Handler) respondWithServiceError(w http.ResponseWriter, err error) {
	var verr *validation.Errors
	if errors.As(err, &verr) {
		h.respondWithFieldErrors(w, http.StatusBadRequest, verr.Fields)
		return
	}

	var uerr *orders.UnknownProductsError
	if errors.As(err, &uerr) {
		h.respondWithFieldErrors(w, http.StatusBadRequest, []validation.FieldError{
			{Message: "Unknown products", Field: "product_list"},
		})
		return
	}

	var serr *orders.InvalidStatusError
	if errors.As(err, &serr) {
		h.respondWithFieldErrors(w, http.StatusBadRequest, []validation.FieldError{
			{Message: serr.Error(), Field: "status"},
		})
		return
	}

	if errors.Is(err, orders.ErrNotFound) || errors.Is(err, storage.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	h.logger.WithError(err).Error("Request failed")
	h.respondWithJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func (h *Handler) respondWithFieldErrors(w http.ResponseWriter, code int, fields []validation.FieldError) {
	h.respondWithJSON(w, code, map[string]interface{}{"data": fields})
}

func (h *Handler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
