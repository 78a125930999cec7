package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/domain"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/logx"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/service"
)

// OrderHandler serves HTTP endpoints for order resources.
type OrderHandler struct {
	usecase service.OrderUsecase
	logger  logx.Logger
}

// NewOrderHandler wires an OrderUsecase into HTTP handlers.
func NewOrderHandler(logger logx.Logger, uc service.OrderUsecase) *OrderHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &OrderHandler{usecase: uc, logger: logger}
}

// Place handles POST /api/orders.
// @Summary Оформить заказ
// @Tags orders
// @Accept json
// @Produce json
// @Param request body placeOrderRequest true "Order payload"
// @Success 201 {object} orderDTO
// @Failure 400 {object} ErrorResponse "invalid input"
// @Router /api/orders [post]
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	o, err := h.usecase.Place(r.Context(), req.toModel())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/api/orders/"+strconv.FormatInt(o.ID, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, orderToResponse(*o))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := optionalInt(r, "limit")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := optionalInt(r, "offset")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.usecase.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, ordersToResponse(list))
}

// Get handles GET /api/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	o, err := h.usecase.Get(r.Context(), id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, orderToResponse(*o))
}

// ForCustomer handles GET /api/orders/customer/{customerId}.
// A malformed id yields an empty list, the web client polls this with whatever id it has.
func (h *OrderHandler) ForCustomer(w http.ResponseWriter, r *http.Request) {
	h.listBy(w, r, "customerId", h.usecase.ForCustomer)
}

// ForRestaurant handles GET /api/orders/restaurant/{restaurantId}.
func (h *OrderHandler) ForRestaurant(w http.ResponseWriter, r *http.Request) {
	h.listBy(w, r, "restaurantId", h.usecase.ForRestaurant)
}

func (h *OrderHandler) listBy(w http.ResponseWriter, r *http.Request, param string,
	list func(ctx context.Context, id int64) ([]domain.Order, error)) {
	id, err := idFromURL(r, param)
	if err != nil || id <= 0 {
		writeJSON(h.logger, w, r, http.StatusOK, []orderDTO{})
		return
	}
	found, err := list(r.Context(), id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, ordersToResponse(found))
}

// Stats handles GET /api/orders/stats.
// @Summary Статистика заказов
// @Tags orders
// @Produce json
// @Success 200 {object} orderStatsDTO
// @Router /api/orders/stats [get]
func (h *OrderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.usecase.Stats(r.Context())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, statsToResponse(st))
}

// UpdateStatus handles PUT /api/orders/{id}/status.
// @Summary Обновить статус заказа
// @Description Вызывается сервисом доставки (с version) или оператором (без version)
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body updateOrderStatusRequest true "Status"
// @Success 200 {object} orderDTO
// @Failure 400 {object} ErrorResponse "invalid status"
// @Failure 404 {object} ErrorResponse "order not found"
// @Failure 409 {object} ErrorResponse "stale update"
// @Router /api/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req updateOrderStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	o, err := h.usecase.UpdateStatus(r.Context(), id, req.toModel())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, orderToResponse(*o))
}
