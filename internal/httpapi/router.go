package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// NewRouter assembles the API routes with logging and CORS middleware.
func NewRouter(handler *Handler, health http.HandlerFunc, logger *logrus.Logger) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", health).Methods("GET", "OPTIONS")

	router.HandleFunc("/products", handler.CreateProduct).Methods("POST")
	router.HandleFunc("/products", handler.ListProducts).Methods("GET", "OPTIONS")
	router.HandleFunc("/products/{id}", handler.GetProduct).Methods("GET", "OPTIONS")
	router.HandleFunc("/products", handler.DeleteAllProducts).Methods("DELETE")

	router.HandleFunc("/orders", handler.CreateOrder).Methods("POST")
	router.HandleFunc("/orders", handler.ListOrders).Methods("GET", "OPTIONS")
	router.HandleFunc("/orders/{id}", handler.GetOrder).Methods("GET", "OPTIONS")
	router.HandleFunc("/orders/{id}/status", handler.UpdateOrderStatus).Methods("PUT", "OPTIONS")
	router.HandleFunc("/orders", handler.DeleteAllOrders).Methods("DELETE")

	router.HandleFunc("/bills", handler.ListBills).Methods("GET", "OPTIONS")
	router.HandleFunc("/bills", handler.DeleteAllBills).Methods("DELETE")

	router.Use(loggingMiddleware(logger))
	router.Use(corsMiddleware())

	return router
}
