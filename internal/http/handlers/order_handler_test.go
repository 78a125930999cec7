package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/apperr"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/domain"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/service/orders"
)

type stubOrderUsecase struct {
	placeFn  func(ctx context.Context, in domain.NewOrder) (*domain.Order, error)
	getFn    func(ctx context.Context, id int64) (*domain.Order, error)
	listFn   func(ctx context.Context, limit, offset *int) ([]domain.Order, error)
	updateFn func(ctx context.Context, id int64, ch orders.StatusChange) (*domain.Order, error)
	byCustFn func(ctx context.Context, customerID int64) ([]domain.Order, error)
	byRestFn func(ctx context.Context, restaurantID int64) ([]domain.Order, error)
	statsFn  func(ctx context.Context) (domain.OrderStats, error)
}

func (s *stubOrderUsecase) ForCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	if s.byCustFn == nil {
		panic("ForCustomer not expected in this test")
	}
	return s.byCustFn(ctx, customerID)
}

func (s *stubOrderUsecase) ForRestaurant(ctx context.Context, restaurantID int64) ([]domain.Order, error) {
	if s.byRestFn == nil {
		panic("ForRestaurant not expected in this test")
	}
	return s.byRestFn(ctx, restaurantID)
}

func (s *stubOrderUsecase) Stats(ctx context.Context) (domain.OrderStats, error) {
	if s.statsFn == nil {
		panic("Stats not expected in this test")
	}
	return s.statsFn(ctx)
}

func (s *stubOrderUsecase) Place(ctx context.Context, in domain.NewOrder) (*domain.Order, error) {
	if s.placeFn == nil {
		panic("Place not expected in this test")
	}
	return s.placeFn(ctx, in)
}

func (s *stubOrderUsecase) Get(ctx context.Context, id int64) (*domain.Order, error) {
	if s.getFn == nil {
		panic("Get not expected in this test")
	}
	return s.getFn(ctx, id)
}

func (s *stubOrderUsecase) List(ctx context.Context, limit, offset *int) ([]domain.Order, error) {
	if s.listFn == nil {
		panic("List not expected in this test")
	}
	return s.listFn(ctx, limit, offset)
}

func (s *stubOrderUsecase) UpdateStatus(ctx context.Context, id int64, ch orders.StatusChange) (*domain.Order, error) {
	if s.updateFn == nil {
		panic("UpdateStatus not expected in this test")
	}
	return s.updateFn(ctx, id, ch)
}

func TestOrderHandler_Place(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{
		placeFn: func(_ context.Context, in domain.NewOrder) (*domain.Order, error) {
			require.Equal(t, int64(1), in.CustomerID)
			require.Equal(t, int64(2), in.RestaurantID)
			require.Equal(t, "1 Main St", in.DeliveryAddress)
			return &domain.Order{ID: 42, CustomerID: 1, RestaurantID: 2, Status: domain.OrderPlaced,
				DeliveryAddress: "1 Main St", RestaurantName: domain.PlaceholderRestaurantName, CreatedAt: ts, UpdatedAt: ts}, nil
		},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/orders",
		strings.NewReader(`{"customerId":1,"restaurantId":2,"deliveryAddress":"1 Main St"}`))
	rr := httptest.NewRecorder()

	NewOrderHandler(nil, uc).Place(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/api/orders/42", rr.Header().Get("Location"))
	var got orderDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, int64(42), got.OrderID)
	assert.Equal(t, "PLACED", got.Status)
	assert.Equal(t, domain.PlaceholderRestaurantName, got.RestaurantName)
}

func TestOrderHandler_Place_WebClientCart(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{
		placeFn: func(_ context.Context, in domain.NewOrder) (*domain.Order, error) {
			require.Equal(t, domain.NewOrder{CustomerID: 5, RestaurantID: 3}, in)
			return &domain.Order{ID: 77, CustomerID: 5, RestaurantID: 3, Status: domain.OrderPlaced,
				DeliveryAddress: domain.PlaceholderCustomerAddress, RestaurantName: domain.PlaceholderRestaurantName}, nil
		},
	}
	// корзина веб-клиента: id строками, позиции и сумма
	body := `{"customerId":"5","restaurantId":3,` +
		`"items":[{"menuItemId":"11","quantity":2},{"menuItemId":"12","quantity":1}],"totalAmount":27.5}`
	rr := httptest.NewRecorder()

	NewOrderHandler(nil, uc).Place(rr, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rr.Code)
	var got orderDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, int64(77), got.OrderID)
}

func TestOrderHandler_Place_BadPayload(t *testing.T) {
	t.Parallel()

	for name, body := range map[string]string{
		"non numeric id": `{"customerId":"abc","restaurantId":3}`,
		"unknown field":  `{"customerId":1,"restaurantId":3,"coupon":"X"}`,
	} {
		body := body
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rr := httptest.NewRecorder()
			NewOrderHandler(nil, &stubOrderUsecase{}).Place(rr,
				httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body)))
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestOrderHandler_ForCustomer(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{
		byCustFn: func(_ context.Context, customerID int64) ([]domain.Order, error) {
			require.Equal(t, int64(5), customerID)
			return []domain.Order{{ID: 1, CustomerID: 5}, {ID: 2, CustomerID: 5}}, nil
		},
	}
	h := NewOrderHandler(nil, uc)

	rr := httptest.NewRecorder()
	h.ForCustomer(rr, withURLParams(httptest.NewRequest(http.MethodGet, "/api/orders/customer/5", nil), "customerId", "5"))
	require.Equal(t, http.StatusOK, rr.Code)
	var got []orderDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Len(t, got, 2)

	// нечисловой id: пустой список, usecase не вызывается
	rr = httptest.NewRecorder()
	h.ForCustomer(rr, withURLParams(httptest.NewRequest(http.MethodGet, "/api/orders/customer/me", nil), "customerId", "me"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestOrderHandler_ForRestaurant(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{
		byRestFn: func(_ context.Context, restaurantID int64) ([]domain.Order, error) {
			require.Equal(t, int64(3), restaurantID)
			return []domain.Order{{ID: 9, RestaurantID: 3}}, nil
		},
	}
	rr := httptest.NewRecorder()
	NewOrderHandler(nil, uc).ForRestaurant(rr,
		withURLParams(httptest.NewRequest(http.MethodGet, "/api/orders/restaurant/3", nil), "restaurantId", "3"))
	require.Equal(t, http.StatusOK, rr.Code)
	var got []orderDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, int64(9), got[0].OrderID)
}

func TestOrderHandler_Stats(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{
		statsFn: func(context.Context) (domain.OrderStats, error) {
			return domain.OrderStats{Total: 10, Pending: 4, Delivered: 5}, nil
		},
	}
	rr := httptest.NewRecorder()
	NewOrderHandler(nil, uc).Stats(rr, httptest.NewRequest(http.MethodGet, "/api/orders/stats", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"totalOrders":10,"pendingOrders":4,"deliveredOrders":5}`, rr.Body.String())
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{
		updateFn: func(_ context.Context, id int64, ch orders.StatusChange) (*domain.Order, error) {
			require.Equal(t, int64(42), id)
			require.Equal(t, orders.StatusChange{Status: "DELIVERING", SourceStatus: "PICKED_UP", Version: 3}, ch)
			return &domain.Order{ID: 42, Status: domain.OrderDelivering, StatusVersion: 3}, nil
		},
	}
	req := withURLParams(httptest.NewRequest(http.MethodPut, "/api/orders/42/status",
		strings.NewReader(`{"status":"DELIVERING","sourceStatus":"PICKED_UP","version":3}`)), "id", "42")
	rr := httptest.NewRecorder()

	NewOrderHandler(nil, uc).UpdateStatus(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got orderDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, int64(3), got.StatusVersion)
}

func TestOrderHandler_UpdateStatus_Stale(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{
		updateFn: func(context.Context, int64, orders.StatusChange) (*domain.Order, error) {
			return nil, apperr.ErrStaleUpdate
		},
	}
	req := withURLParams(httptest.NewRequest(http.MethodPut, "/api/orders/42/status",
		strings.NewReader(`{"status":"DELIVERING","version":1}`)), "id", "42")
	rr := httptest.NewRecorder()

	NewOrderHandler(nil, uc).UpdateStatus(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apperr.ErrStaleUpdate.Error(), decodeError(t, rr))
}

func TestOrderHandler_List(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{
		listFn: func(_ context.Context, limit, offset *int) ([]domain.Order, error) {
			require.NotNil(t, limit)
			require.Equal(t, 5, *limit)
			require.Nil(t, offset)
			return []domain.Order{{ID: 1}, {ID: 2}}, nil
		},
	}
	h := NewOrderHandler(nil, uc)

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/orders?limit=5", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var got []orderDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Len(t, got, 2)

	rr = httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/orders?offset=-2", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid offset", decodeError(t, rr))
}

func TestOrderHandler_Get_NotFound(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{
		getFn: func(context.Context, int64) (*domain.Order, error) { return nil, apperr.ErrNotFound },
	}
	rr := httptest.NewRecorder()
	NewOrderHandler(nil, uc).Get(rr, withURLParams(httptest.NewRequest(http.MethodGet, "/api/orders/3", nil), "id", "3"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
