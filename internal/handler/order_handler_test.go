package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"techstore/internal/middleware"
	"techstore/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, userID uuid.UUID, req *model.CreateOrderRequest) (*model.Order, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) CancelMine(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, orderID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) ListAll(ctx context.Context) ([]model.AdminOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AdminOrder), args.Error(1)
}

func (m *MockOrderService) GetAdmin(ctx context.Context, orderID uuid.UUID) (*model.AdminOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminOrder), args.Error(1)
}

func (m *MockOrderService) Summary(ctx context.Context) (model.OrderSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.OrderSummary), args.Error(1)
}

func (m *MockOrderService) Update(ctx context.Context, orderID uuid.UUID, req *model.UpdateOrderRequest) (*model.Order, error) {
	args := m.Called(ctx, orderID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

// withUser injects an authenticated user the way the auth middleware does.
func withUser(r *http.Request, user *model.User) *http.Request {
	return r.WithContext(middleware.ContextWithUser(r.Context(), user))
}

// withURLParam injects a chi route parameter for handlers called outside a
// router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func testUser() *model.User {
	return &model.User{ID: uuid.New(), Name: "Rahim", Email: "rahim@example.com"}
}

func TestOrderHandler_Create(t *testing.T) {
	logger := zerolog.Nop()
	user := testUser()

	created := &model.Order{
		ID:     uuid.New(),
		UserID: user.ID,
		Status: model.StatusProcessing,
		Total:  2080,
	}

	tests := []struct {
		name           string
		body           string
		mockReturn     *model.Order
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			body:           `{"items":[{"product":"` + uuid.New().String() + `","qty":2,"price":1040}],"shipping":{"city":"Dhaka"}}`,
			mockReturn:     created,
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name:           "Empty order",
			body:           `{"items":[]}`,
			mockError:      model.ErrEmptyOrder,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Malformed JSON",
			body:           `{"items":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			if tt.expectService {
				mockService.On("Create", mock.Anything, user.ID, mock.AnythingOfType("*model.CreateOrderRequest")).
					Return(tt.mockReturn, tt.mockError)
			}

			h := NewOrderHandler(mockService, logger)

			req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(tt.body))
			req = withUser(req, user)
			rec := httptest.NewRecorder()

			h.Create(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusCreated {
				var got model.Order
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, created.ID, got.ID)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestOrderHandler_ListMine(t *testing.T) {
	logger := zerolog.Nop()
	user := testUser()

	mockService := new(MockOrderService)
	mockService.On("ListMine", mock.Anything, user.ID).Return([]model.Order{}, nil)

	h := NewOrderHandler(mockService, logger)

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/orders", nil), user)
	rec := httptest.NewRecorder()

	h.ListMine(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String(), "empty list serialises as [], not null")
	mockService.AssertExpectations(t)
}

func TestOrderHandler_Cancel(t *testing.T) {
	logger := zerolog.Nop()
	user := testUser()
	orderID := uuid.New()

	tests := []struct {
		name           string
		orderID        string
		mockReturn     *model.Order
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			orderID:        orderID.String(),
			mockReturn:     &model.Order{ID: orderID, Status: model.StatusCancelled},
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Already shipped",
			orderID:        orderID.String(),
			mockError:      model.NewStateConflictError("Cannot cancel when status is shipped"),
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Not found",
			orderID:        orderID.String(),
			mockError:      model.ErrOrderNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Invalid ID",
			orderID:        "not-a-uuid",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			if tt.expectService {
				mockService.On("CancelMine", mock.Anything, orderID, user.ID).
					Return(tt.mockReturn, tt.mockError)
			}

			h := NewOrderHandler(mockService, logger)

			req := httptest.NewRequest(http.MethodPatch, "/api/orders/"+tt.orderID+"/cancel", nil)
			req = withUser(req, user)
			req = withURLParam(req, "id", tt.orderID)
			rec := httptest.NewRecorder()

			h.Cancel(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestOrderHandler_ListAll(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockOrderService)
	mockService.On("ListAll", mock.Anything).Return([]model.AdminOrder{
		{Order: model.Order{ID: uuid.New()}, UserName: "Rahim", UserEmail: "rahim@example.com"},
	}, nil)

	h := NewOrderHandler(mockService, logger)

	rec := httptest.NewRecorder()
	h.ListAll(rec, httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var got []model.AdminOrder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Rahim", got[0].UserName)
	mockService.AssertExpectations(t)
}

func TestOrderHandler_Summary(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockOrderService)
	mockService.On("Summary", mock.Anything).Return(model.OrderSummary{Count: 3, Revenue: 6240}, nil)

	h := NewOrderHandler(mockService, logger)

	rec := httptest.NewRecorder()
	h.Summary(rec, httptest.NewRequest(http.MethodGet, "/api/admin/orders/summary", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":3,"revenue":6240}`, rec.Body.String())
	mockService.AssertExpectations(t)
}

func TestOrderHandler_Update(t *testing.T) {
	logger := zerolog.Nop()
	orderID := uuid.New()

	tests := []struct {
		name           string
		orderID        string
		body           string
		mockReturn     *model.Order
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Status change",
			orderID:        orderID.String(),
			body:           `{"status":"shipped","trackingNumber":"TRK-1"}`,
			mockReturn:     &model.Order{ID: orderID, Status: model.StatusShipped, TrackingNumber: "TRK-1"},
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Unknown status",
			orderID:        orderID.String(),
			body:           `{"status":"returned"}`,
			mockError:      model.ErrInvalidStatus,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Illegal transition",
			orderID:        orderID.String(),
			body:           `{"status":"processing"}`,
			mockError:      model.NewStateConflictError("Cannot change status from delivered to processing"),
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Not found",
			orderID:        orderID.String(),
			body:           `{"status":"shipped"}`,
			mockError:      model.ErrOrderNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Invalid ID",
			orderID:        "nope",
			body:           `{"status":"shipped"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			if tt.expectService {
				mockService.On("Update", mock.Anything, orderID, mock.AnythingOfType("*model.UpdateOrderRequest")).
					Return(tt.mockReturn, tt.mockError)
			}

			h := NewOrderHandler(mockService, logger)

			req := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/"+tt.orderID,
				bytes.NewBufferString(tt.body))
			req = withURLParam(req, "id", tt.orderID)
			rec := httptest.NewRecorder()

			h.Update(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestOrderHandler_Update_DeliveredAtNullDistinctFromAbsent(t *testing.T) {
	logger := zerolog.Nop()
	orderID := uuid.New()

	var captured *model.UpdateOrderRequest
	mockService := new(MockOrderService)
	mockService.On("Update", mock.Anything, orderID, mock.AnythingOfType("*model.UpdateOrderRequest")).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(*model.UpdateOrderRequest)
		}).
		Return(&model.Order{ID: orderID}, nil)

	h := NewOrderHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/"+orderID.String(),
		bytes.NewBufferString(`{"deliveredAt":null}`))
	req = withURLParam(req, "id", orderID.String())
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.True(t, captured.DeliveredAt.Set, "explicit null must mark the field present")
	assert.Nil(t, captured.DeliveredAt.Value)
}
