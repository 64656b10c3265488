package httpapi

import (
	"encoding/json"
	"net/http"

	"restaurant-ops/internal/domain"

	"go.uber.org/zap"
)

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	order, err := h.Orders.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.publish(r.Context(), domain.OrderEvent(domain.EventOrderCreated, order, h.Clock.Now()))
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := queryID(r, "restaurantId")
	if err != nil {
		http.Error(w, "restaurantId is required", http.StatusBadRequest)
		return
	}
	day, err := h.queryDay(r)
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	orders, err := h.Orders.FindForRestaurant(r.Context(), restaurantID, day)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}
	order, err := h.Orders.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}
	raw, err := requestedStatus(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	status, err := domain.ParseOrderStatus(raw)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	order, err := h.Orders.UpdateStatus(r.Context(), id, status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.publish(r.Context(), domain.OrderEvent(domain.EventOrderStatusChanged, order, h.Clock.Now()))
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}
	if err := h.Orders.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}
	png, err := h.Orders.QRCode(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req domain.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payment, err := h.Payments.Record(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if order, err := h.Orders.Get(r.Context(), payment.OrderID); err == nil {
		event := domain.OrderEvent(domain.EventPaymentRecorded, order, h.Clock.Now())
		event.Amount = payment.Amount.StringFixed(2) + " " + payment.Currency
		h.publish(r.Context(), event)
	} else {
		h.Logger.Warn("payment recorded but order reload failed",
			zap.Int64("order_id", payment.OrderID), zap.Error(err))
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (h *Handler) getPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}
	payment, err := h.Payments.ForOrder(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

// requestedStatus reads the target status from ?status= or a JSON body.
func requestedStatus(r *http.Request) (string, error) {
	if s := r.URL.Query().Get("status"); s != "" {
		return s, nil
	}
	var req domain.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", err
	}
	return req.Status, nil
}
