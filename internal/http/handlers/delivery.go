package handlers

import (
	"net/http"
	"strconv"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/logx"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/service"
)

// DeliveryHandler handles HTTP requests for delivery resources.
type DeliveryHandler struct {
	usecase service.DeliveryUsecase
	logger  logx.Logger
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(logger logx.Logger, uc service.DeliveryUsecase) *DeliveryHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &DeliveryHandler{usecase: uc, logger: logger}
}

// Create handles POST /api/deliveries.
// @Summary Создать доставку
// @Description Открывает доставку для заказа; с driverId сразу ACCEPTED
// @Tags deliveries
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Idempotency key"
// @Param request body createDeliveryRequest true "Delivery payload"
// @Success 201 {object} deliveryDTO
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 409 {object} ErrorResponse "delivery exists or driver busy"
// @Failure 500 {object} ErrorResponse "internal error"
// @Router /api/deliveries [post]
func (h *DeliveryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDeliveryRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, err := h.usecase.Create(r.Context(), req.toModel())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/api/deliveries/"+strconv.FormatInt(d.ID, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, deliveryToResponse(*d))
}

// All handles GET /api/deliveries.
func (h *DeliveryHandler) All(w http.ResponseWriter, r *http.Request) {
	list, err := h.usecase.All(r.Context())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveriesToResponse(list))
}

// Pending handles GET /api/deliveries/pending.
func (h *DeliveryHandler) Pending(w http.ResponseWriter, r *http.Request) {
	list, err := h.usecase.Pending(r.Context())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveriesToResponse(list))
}

// GetByID handles GET /api/deliveries/{id}.
func (h *DeliveryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	d, err := h.usecase.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryToResponse(*d))
}

// GetByOrderID handles GET /api/deliveries/order/{orderId}.
func (h *DeliveryHandler) GetByOrderID(w http.ResponseWriter, r *http.Request) {
	orderID, err := idFromURL(r, "orderId")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}
	d, err := h.usecase.GetByOrderID(r.Context(), orderID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryToResponse(*d))
}

// ForDriver handles GET /api/deliveries/driver/{driverId}.
func (h *DeliveryHandler) ForDriver(w http.ResponseWriter, r *http.Request) {
	driverID, err := idFromURL(r, "driverId")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid driver id")
		return
	}
	list, err := h.usecase.ForDriver(r.Context(), driverID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveriesToResponse(list))
}

// ActiveForDriver handles GET /api/deliveries/driver/{driverId}/active.
func (h *DeliveryHandler) ActiveForDriver(w http.ResponseWriter, r *http.Request) {
	driverID, err := idFromURL(r, "driverId")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid driver id")
		return
	}
	list, err := h.usecase.ActiveForDriver(r.Context(), driverID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveriesToResponse(list))
}

// AdvanceStatus handles PUT /api/deliveries/{id}/status.
// @Summary Сменить статус доставки
// @Tags deliveries
// @Accept json
// @Produce json
// @Param id path int true "Delivery ID"
// @Param request body updateDeliveryStatusRequest true "Target status"
// @Success 200 {object} deliveryDTO
// @Failure 400 {object} ErrorResponse "invalid status"
// @Failure 404 {object} ErrorResponse "delivery not found"
// @Failure 409 {object} ErrorResponse "terminal or backward transition"
// @Router /api/deliveries/{id}/status [put]
func (h *DeliveryHandler) AdvanceStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req updateDeliveryStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, err := h.usecase.AdvanceStatus(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryToResponse(*d))
}

// Assign handles PUT /api/deliveries/{id}/assign.
// @Summary Назначить водителя
// @Tags deliveries
// @Accept json
// @Produce json
// @Param id path int true "Delivery ID"
// @Param request body assignDriverRequest true "Driver"
// @Success 200 {object} deliveryDTO
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 404 {object} ErrorResponse "delivery not found"
// @Failure 409 {object} ErrorResponse "driver busy or delivery taken"
// @Router /api/deliveries/{id}/assign [put]
func (h *DeliveryHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req assignDriverRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, err := h.usecase.Assign(r.Context(), id, req.DriverID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryToResponse(*d))
}
