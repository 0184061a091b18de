package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hooiv/foodorder/internal/access"
	"github.com/hooiv/foodorder/internal/database/models"
)

type PaymentsService struct {
	users *UsersService
}

func NewPaymentsService(users *UsersService) *PaymentsService {
	return &PaymentsService{users: users}
}

type PaymentMethodResult struct {
	PaymentMethod string `json:"paymentMethod"`
}

type ProcessPaymentInput struct {
	OrderID       string `json:"orderId"`
	PaymentMethod string `json:"paymentMethod"`
}

type ProcessPaymentResult struct {
	Success   bool   `json:"success"`
	PaymentID string `json:"paymentId"`
	Message   string `json:"message"`
}

func (s *PaymentsService) GetPaymentMethod(ctx context.Context, userID string, caller access.Identity) (*PaymentMethodResult, error) {
	if userID != caller.UserID && caller.Role != models.RoleAdmin {
		return nil, forbidden("You do not have permission to access this payment method")
	}

	user, err := s.users.getByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &PaymentMethodResult{PaymentMethod: user.PaymentMethod}, nil
}

func (s *PaymentsService) UpdatePaymentMethod(ctx context.Context, userID, paymentMethod string, caller access.Identity) (*PaymentMethodResult, error) {
	if caller.Role != models.RoleAdmin {
		return nil, forbidden("Only administrators can update payment methods")
	}

	user, err := s.users.UpdatePaymentMethod(ctx, userID, paymentMethod, caller)
	if err != nil {
		return nil, err
	}
	return &PaymentMethodResult{PaymentMethod: user.PaymentMethod}, nil
}

// Process is a gateway stub: it always succeeds and mints a synthetic
// payment id.
func (s *PaymentsService) Process(ctx context.Context, input ProcessPaymentInput) *ProcessPaymentResult {
	return &ProcessPaymentResult{
		Success:   true,
		PaymentID: fmt.Sprintf("payment_%s", uuid.NewString()),
		Message:   "Payment processed successfully",
	}
}
