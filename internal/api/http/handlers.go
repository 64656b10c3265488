package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"restaurant-ops/internal/domain"
	"restaurant-ops/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Services struct {
	Catalog       service.CatalogServiceInterface
	Users         service.UserServiceInterface
	Orders        service.OrderServiceInterface
	Reservations  service.ReservationServiceInterface
	Payments      service.PaymentServiceInterface
	Notifications service.NotificationServiceInterface
	Activity      service.ActivityServiceInterface
}

type Handler struct {
	Services
	Events service.EventPublisher
	Clock  service.Clock
	Logger *zap.Logger
	// Location is the time zone ?date= query values are read in.
	Location *time.Location
	// PublishTimeout caps how long a response waits on the event publisher.
	PublishTimeout time.Duration
}

const defaultPublishTimeout = 250 * time.Millisecond

func NewHandler(services Services, events service.EventPublisher, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Services:       services,
		Events:         events,
		Clock:          service.SystemClock{},
		Logger:         logger,
		Location:       time.Local,
		PublishTimeout: defaultPublishTimeout,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(requestLogger(h.Logger))

	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/restaurants", h.createRestaurant).Methods("POST")
	r.HandleFunc("/api/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.updateRestaurant).Methods("PUT")
	r.HandleFunc("/api/restaurants/{id}", h.deleteRestaurant).Methods("DELETE")
	r.HandleFunc("/api/restaurants/{id}/tables", h.createTable).Methods("POST")
	r.HandleFunc("/api/restaurants/{id}/tables", h.getTables).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/categories", h.createCategory).Methods("POST")
	r.HandleFunc("/api/restaurants/{id}/categories", h.getCategories).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/activity", h.getActivity).Methods("GET")
	r.HandleFunc("/api/categories/{id}/items", h.createMenuItem).Methods("POST")
	r.HandleFunc("/api/categories/{id}/items", h.getMenuItems).Methods("GET")
	r.HandleFunc("/api/menu-items/{id}", h.getMenuItem).Methods("GET")
	r.HandleFunc("/api/menu-items/{id}", h.updateMenuItem).Methods("PUT")

	r.HandleFunc("/api/users", h.createUser).Methods("POST")
	r.HandleFunc("/api/users", h.getUsers).Methods("GET")
	r.HandleFunc("/api/users/{id}", h.getUser).Methods("GET")
	r.HandleFunc("/api/users/{id}/notifications", h.getNotifications).Methods("GET")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.deleteOrder).Methods("DELETE")
	r.HandleFunc("/api/orders/{id}/status", h.updateOrderStatus).Methods("PATCH")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
	r.HandleFunc("/api/orders/{id}/payment", h.getPayment).Methods("GET")
	r.HandleFunc("/api/payments", h.recordPayment).Methods("POST")

	r.HandleFunc("/api/reservations", h.createReservation).Methods("POST")
	r.HandleFunc("/api/reservations", h.getReservations).Methods("GET")
	r.HandleFunc("/api/reservations/{id}", h.getReservation).Methods("GET")
	r.HandleFunc("/api/reservations/{id}", h.deleteReservation).Methods("DELETE")
	r.HandleFunc("/api/reservations/{id}/status", h.updateReservationStatus).Methods("PATCH")

	r.HandleFunc("/api/notifications", h.sendNotification).Methods("POST")
	r.HandleFunc("/api/notifications/{id}/delivered", h.markNotificationDelivered).Methods("PATCH")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "restaurant-api",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto status codes.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case domain.IsInvalid(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrTransitionNotAllowed):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.Logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

func queryID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
}

func (h *Handler) queryDay(r *http.Request) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", r.URL.Query().Get("date"), h.Location)
}

// publish is fire-and-forget: a broker failure never fails the request, and
// a slow broker holds the response for at most PublishTimeout. Cancelling the
// request does not cancel the publish.
func (h *Handler) publish(ctx context.Context, event domain.Event) {
	if h.Events == nil {
		return
	}
	timeout := h.PublishTimeout
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := h.Events.Publish(ctx, event); err != nil {
		h.Logger.Warn("failed to publish lifecycle event",
			zap.String("type", event.Type),
			zap.Int64("restaurant_id", event.RestaurantID),
			zap.Error(err))
	}
}
