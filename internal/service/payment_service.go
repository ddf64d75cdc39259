package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"time"

	"ai-faq-generator-be/internal/config"
	"ai-faq-generator-be/internal/dto"
	"ai-faq-generator-be/internal/entity"
	"ai-faq-generator-be/internal/pkg/logger"
	"ai-faq-generator-be/internal/repository/specification"
	"ai-faq-generator-be/internal/repository/unitofwork"
	"ai-faq-generator-be/pkg/events"
	pkgNats "ai-faq-generator-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type IPaymentService interface {
	ListPlans(ctx context.Context) ([]*dto.PlanResponse, error)
	Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
}

type paymentService struct {
	uowFactory     unitofwork.RepositoryFactory
	logger         logger.ILogger
	eventPublisher *pkgNats.Publisher
	cfg            config.PaymentConfig
	clientURL      string
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
	eventPublisher *pkgNats.Publisher,
	cfg config.PaymentConfig,
	clientURL string,
) IPaymentService {
	return &paymentService{
		uowFactory:     uowFactory,
		logger:         log,
		eventPublisher: eventPublisher,
		cfg:            cfg,
		clientURL:      clientURL,
	}
}

func (s *paymentService) ListPlans(ctx context.Context) ([]*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plans, err := uow.SubscriptionRepository().FindAllPlans(ctx,
		specification.ActivePlans{},
		specification.OrderBy{Field: "sort_order", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PlanResponse, 0, len(plans))
	for _, plan := range plans {
		res = append(res, &dto.PlanResponse{
			Id:            plan.Id,
			Name:          plan.Name,
			Slug:          plan.Slug,
			Price:         plan.Price,
			BillingPeriod: string(plan.BillingPeriod),
			Description:   plan.Description,
			FaqDailyLimit: plan.FaqDailyLimit,
		})
	}
	return res, nil
}

func (s *paymentService) Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: req.PlanId})
	if err != nil {
		return nil, err
	}
	if plan == nil || !plan.IsActive {
		return nil, &dto.NotFoundError{Resource: "subscription plan"}
	}

	subId := uuid.New()
	sub := &entity.UserSubscription{
		Id:                 subId,
		UserId:             userId,
		PlanId:             plan.Id,
		Status:             entity.SubscriptionStatusInactive,
		PaymentStatus:      entity.PaymentStatusPending,
		CurrentPeriodStart: time.Now(),
		CurrentPeriodEnd:   time.Now().AddDate(0, 1, 0),
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
	if plan.BillingPeriod == entity.BillingPeriodYearly {
		sub.CurrentPeriodEnd = time.Now().AddDate(1, 0, 0)
	}

	if err := uow.SubscriptionRepository().CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	// External call stays outside any DB transaction.
	var sClient snap.Client
	env := midtrans.Sandbox
	if s.cfg.MidtransIsProduction {
		env = midtrans.Production
	}
	sClient.New(s.cfg.MidtransServerKey, env)

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  subId.String(),
			GrossAmt: int64(plan.Price),
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: fmt.Sprintf("%s/dashboard?payment=success", s.clientURL),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.FirstName,
			LName: req.LastName,
			Email: req.Email,
			Phone: req.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    plan.Id.String(),
				Price: int64(plan.Price),
				Qty:   1,
				Name:  plan.Name,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	s.logger.Info("PAYMENT", "Checkout created", map[string]interface{}{
		"user_id":         userId,
		"subscription_id": subId,
		"plan":            plan.Slug,
	})

	return &dto.CheckoutResponse{
		SubscriptionId:  subId,
		SnapToken:       snapResp.Token,
		SnapRedirectUrl: snapResp.RedirectURL,
	}, nil
}

func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	if s.cfg.MidtransServerKey == "" {
		return fmt.Errorf("server configuration error")
	}

	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + s.cfg.MidtransServerKey
	expectedSignature := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if req.SignatureKey != expectedSignature {
		s.logger.Warn("PAYMENT", "Webhook signature mismatch", map[string]interface{}{
			"order_id": req.OrderId,
		})
		return fmt.Errorf("invalid signature")
	}

	subId, err := uuid.Parse(req.OrderId)
	if err != nil {
		return fmt.Errorf("invalid order id format")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx, specification.ByID{ID: subId})
	if err != nil {
		return err
	}
	if sub == nil {
		return fmt.Errorf("subscription not found")
	}

	var newStatus entity.SubscriptionStatus
	var newPaymentStatus entity.PaymentStatus

	switch req.TransactionStatus {
	case "capture", "settlement":
		newStatus = entity.SubscriptionStatusActive
		newPaymentStatus = entity.PaymentStatusPaid
	case "deny", "cancel", "expire":
		newStatus = entity.SubscriptionStatusInactive
		newPaymentStatus = entity.PaymentStatusFailed
	case "pending":
		return nil
	default:
		return nil
	}

	if sub.Status == newStatus && sub.PaymentStatus == newPaymentStatus {
		return nil
	}

	s.logger.Info("PAYMENT", "Subscription state transition", map[string]interface{}{
		"subscription_id": sub.Id,
		"from_status":     string(sub.Status),
		"to_status":       string(newStatus),
		"from_payment":    string(sub.PaymentStatus),
		"to_payment":      string(newPaymentStatus),
	})

	sub.Status = newStatus
	sub.PaymentStatus = newPaymentStatus
	orderId := req.OrderId
	sub.MidtransTransactionId = &orderId

	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if newStatus == entity.SubscriptionStatusActive {
		s.publishActivated(ctx, sub)
	}
	return nil
}

func (s *paymentService) publishActivated(ctx context.Context, sub *entity.UserSubscription) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: "SUBSCRIPTION_ACTIVATED",
		Data: map[string]interface{}{
			"subscription_id": sub.Id,
			"user_id":         sub.UserId,
			"plan_id":         sub.PlanId,
			"period_end":      sub.CurrentPeriodEnd,
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("PAYMENT", "Failed to publish event", map[string]interface{}{
			"event": "SUBSCRIPTION_ACTIVATED",
			"error": err.Error(),
		})
	}
}
