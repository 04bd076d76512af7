package biz

import (
	"context"

	"go.uber.org/fx"

	"github.com/campushq/campushub/internal/authz"
	"github.com/campushq/campushub/internal/store"
)

// GetPaymentQuery reads one payment record of a student. The student id is
// part of the request shape so the guardian policy can evaluate before the
// payment row is touched.
type GetPaymentQuery struct {
	Payment int
	Student int
}

func (GetPaymentQuery) RequestName() string { return "payments.get" }

func (q GetPaymentQuery) StudentID() int { return q.Student }

type PaymentServiceParams struct {
	fx.In

	Store  *store.Store
	Engine *authz.Engine
}

func NewPaymentService(params PaymentServiceParams) *PaymentService {
	return &PaymentService{
		AbstractService: &AbstractService{store: params.Store},
		engine:          params.Engine,
	}
}

type PaymentService struct {
	*AbstractService

	engine *authz.Engine
}

func (s *PaymentService) GetPayment(ctx context.Context, query GetPaymentQuery) (*store.Payment, error) {
	if err := s.engine.AuthorizeContext(ctx, query); err != nil {
		return nil, err
	}

	ident := authz.MustGetIdentity(ctx)

	payment, err := s.store.GetPayment(ctx, ident.TenantID, query.Payment)
	if err != nil {
		return nil, err
	}

	// The authorized student and the payment's student must agree; a payment
	// reached through someone else's student id reads as missing.
	if payment.StudentID != query.Student {
		return nil, store.ErrNotFound
	}

	return payment, nil
}
