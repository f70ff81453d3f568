package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-builder-be/internal/config"
	"resume-builder-be/internal/dto"
	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/pkg/mailer"
	"resume-builder-be/internal/repository/specification"
	"resume-builder-be/internal/repository/unitofwork"
	"resume-builder-be/pkg/billing"
	"resume-builder-be/pkg/events"
	pktNats "resume-builder-be/pkg/nats"
	"resume-builder-be/pkg/plancatalog"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	stripe "github.com/stripe/stripe-go/v78"
	stripeclient "github.com/stripe/stripe-go/v78/client"
)

var ErrNoSubscription = errors.New("no subscription on file")

// Midtrans has no recurring price objects; monthly amounts in IDR.
var midtransTierAmounts = map[plancatalog.Tier]int64{
	plancatalog.TierPro:        149000,
	plancatalog.TierEnterprise: 499000,
}

type IBillingService interface {
	CreateCheckout(ctx context.Context, userId uuid.UUID, req *dto.CreateCheckoutRequest) (*dto.CreateCheckoutResponse, error)
	HandleStripeWebhook(ctx context.Context, payload []byte, sigHeader string) error
	HandleMidtransNotification(ctx context.Context, payload []byte) error
	GetSubscription(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionResponse, error)
	CancelSubscription(ctx context.Context, userId uuid.UUID) (*dto.CancelSubscriptionResponse, error)
	BillingPortal(ctx context.Context, userId uuid.UUID) (*dto.BillingPortalResponse, error)
}

type billingService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	emailService   mailer.IEmailService
	billingCfg     config.BillingConfig
	clientURL      string
	stripeClient   *stripeclient.API
}

func NewBillingService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	billingCfg config.BillingConfig,
	clientURL string,
) IBillingService {
	sc := &stripeclient.API{}
	sc.Init(billingCfg.StripeSecretKey, nil)

	return &billingService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		emailService:   emailService,
		billingCfg:     billingCfg,
		clientURL:      clientURL,
		stripeClient:   sc,
	}
}

func (s *billingService) CreateCheckout(ctx context.Context, userId uuid.UUID, req *dto.CreateCheckoutRequest) (*dto.CreateCheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	tier, ok := plancatalog.ParseTier(req.Tier)
	if !ok || tier == plancatalog.TierFree {
		return nil, errors.New("tier is not purchasable")
	}
	if user.Plan == tier {
		return nil, errors.New("already on this plan")
	}

	provider := req.Provider
	if provider == "" {
		provider = billing.ProviderStripe
	}

	switch provider {
	case billing.ProviderStripe:
		return s.createStripeCheckout(user, tier)
	case billing.ProviderMidtrans:
		return s.createMidtransCheckout(user, tier)
	default:
		return nil, errors.New("unsupported payment provider")
	}
}

func (s *billingService) createStripeCheckout(user *entity.User, tier plancatalog.Tier) (*dto.CreateCheckoutResponse, error) {
	priceId := s.billingCfg.StripePriceIdPro
	if tier == plancatalog.TierEnterprise {
		priceId = s.billingCfg.StripePriceIdEnt
	}

	metadata := map[string]string{
		"user_id": user.Id.String(),
		"tier":    string(tier),
	}
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail: stripe.String(user.Email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceId),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.clientURL + "/settings/billing?checkout=success"),
		CancelURL:  stripe.String(s.clientURL + "/settings/billing?checkout=canceled"),
		Metadata:   metadata,
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: metadata,
		},
	}

	session, err := s.stripeClient.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout: %w", err)
	}

	return &dto.CreateCheckoutResponse{
		Provider:    billing.ProviderStripe,
		CheckoutURL: session.URL,
	}, nil
}

func (s *billingService) createMidtransCheckout(user *entity.User, tier plancatalog.Tier) (*dto.CreateCheckoutResponse, error) {
	var sClient snap.Client
	env := midtrans.Sandbox
	if s.billingCfg.MidtransIsProduction {
		env = midtrans.Production
	}
	sClient.New(s.billingCfg.MidtransServerKey, env)

	orderId := "sub-" + uuid.NewString()
	amount := midtransTierAmounts[tier]

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderId,
			GrossAmt: amount,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: s.clientURL + "/settings/billing?checkout=success",
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.FullName,
			Email: user.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    string(tier),
				Price: amount,
				Qty:   1,
				Name:  fmt.Sprintf("%s plan (monthly)", tier),
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
		CustomField1:    user.Id.String(),
		CustomField2:    string(tier),
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	return &dto.CreateCheckoutResponse{
		Provider:    billing.ProviderMidtrans,
		CheckoutURL: snapResp.RedirectURL,
		Token:       snapResp.Token,
		OrderId:     orderId,
	}, nil
}

func (s *billingService) HandleStripeWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	stripeEvent, err := billing.VerifyStripePayload(payload, sigHeader, s.billingCfg.StripeWebhookSecret)
	if err != nil {
		return err
	}

	planEvent, handled, err := billing.DecodeStripeEvent(stripeEvent)
	if err != nil {
		return err
	}
	if !handled {
		return nil
	}

	return s.applyPlanEvent(ctx, planEvent)
}

func (s *billingService) HandleMidtransNotification(ctx context.Context, payload []byte) error {
	var notification billing.MidtransNotification
	if err := json.Unmarshal(payload, &notification); err != nil {
		return billing.ErrEventMalformed
	}
	if !notification.VerifySignature(s.billingCfg.MidtransServerKey) {
		return billing.ErrSignatureInvalid
	}

	planEvent, handled, err := billing.DecodeMidtransNotification(&notification)
	if err != nil {
		return err
	}
	if !handled {
		return nil
	}

	return s.applyPlanEvent(ctx, planEvent)
}

// applyPlanEvent resolves the account, runs the transition handler and
// persists user, subscription and ledger in one transaction. Events
// for customers this platform does not know are acknowledged and
// dropped so the provider stops retrying them.
func (s *billingService) applyPlanEvent(ctx context.Context, ev *billing.PlanEvent) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	userId := ev.UserId
	var sub *entity.BillingSubscription
	var err error

	if userId == uuid.Nil {
		sub, err = uow.SubscriptionRepository().FindByCustomerRef(ctx, ev.Provider, ev.CustomerRef)
		if err != nil {
			return err
		}
		if sub == nil {
			fmt.Printf("[WARN] Billing event for unknown customer %s/%s dropped\n", ev.Provider, ev.CustomerRef)
			return nil
		}
		userId = sub.UserId
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		fmt.Printf("[WARN] Billing event for missing user %s dropped\n", userId)
		return nil
	}

	if sub == nil {
		sub, err = uow.SubscriptionRepository().FindByUserId(ctx, userId)
		if err != nil {
			return err
		}
	}
	if sub == nil {
		now := time.Now()
		sub = &entity.BillingSubscription{
			Id:        uuid.New(),
			UserId:    userId,
			Provider:  ev.Provider,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	previousPlan := user.Plan

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	ledger, err := ensureLedger(ctx, uow, user)
	if err != nil {
		return err
	}

	if err := billing.ApplyTransition(user, sub, ledger, ev, time.Now()); err != nil {
		return err
	}

	if err := uow.UserRepository().UpdatePlan(ctx, user.Id, string(user.Plan)); err != nil {
		return err
	}
	sub.UpdatedAt = time.Now()
	if err := uow.SubscriptionRepository().Upsert(ctx, sub); err != nil {
		return err
	}
	if err := uow.UsageLedgerRepository().ResizeLimits(ctx, user.Id, ledger.ResumesLimit, ledger.AiCreditsLimit); err != nil {
		return err
	}
	if ev.Type == billing.EventPaymentSucceeded {
		if err := uow.UsageLedgerRepository().ResetAICredits(ctx, user.Id); err != nil {
			return err
		}
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.publishBillingEvents(ctx, user, ev, previousPlan)
	return nil
}

func (s *billingService) publishBillingEvents(ctx context.Context, user *entity.User, ev *billing.PlanEvent, previousPlan plancatalog.Tier) {
	switch ev.Type {
	case billing.EventCheckoutCompleted, billing.EventSubscriptionUpdated, billing.EventSubscriptionDeleted:
		if user.Plan == previousPlan {
			return
		}
		if s.eventPublisher != nil {
			evt := events.New(events.TypePlanChanged, map[string]interface{}{
				"user_id": user.Id,
				"from":    string(previousPlan),
				"to":      string(user.Plan),
			})
			if err := s.eventPublisher.Publish(ctx, evt); err != nil {
				fmt.Printf("[WARN] Failed to publish PLAN_CHANGED event: %v\n", err)
			}
		}

	case billing.EventPaymentFailed:
		if s.eventPublisher != nil {
			evt := events.New(events.TypePaymentFailed, map[string]interface{}{
				"user_id": user.Id,
				"plan":    string(user.Plan),
			})
			if err := s.eventPublisher.Publish(ctx, evt); err != nil {
				fmt.Printf("[WARN] Failed to publish PAYMENT_FAILED event: %v\n", err)
			}
		}
		go func() {
			if err := s.emailService.SendPaymentFailed(user.Email, string(user.Plan)); err != nil {
				fmt.Printf("[WARN] Failed to send payment-failed email to %s: %v\n", user.Email, err)
			}
		}()
	}
}

func (s *billingService) GetSubscription(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	sub, err := uow.SubscriptionRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	out := &dto.SubscriptionResponse{
		Plan:   string(user.Plan),
		Status: entity.SubscriptionStatusActive,
	}
	if sub != nil {
		out.Status = sub.Status
		out.Provider = sub.Provider
		out.CancelAtPeriodEnd = sub.CancelAtPeriodEnd
		if !sub.CurrentPeriodStart.IsZero() {
			start := sub.CurrentPeriodStart
			out.CurrentPeriodStart = &start
		}
		if !sub.CurrentPeriodEnd.IsZero() {
			end := sub.CurrentPeriodEnd
			out.CurrentPeriodEnd = &end
		}
	}
	return out, nil
}

// CancelSubscription flags the subscription to lapse at period end.
// The actual downgrade arrives later through the provider's
// subscription-deleted webhook; benefits stay until then.
func (s *billingService) CancelSubscription(ctx context.Context, userId uuid.UUID) (*dto.CancelSubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.Status == entity.SubscriptionStatusCanceled {
		return nil, ErrNoSubscription
	}

	if sub.Provider == billing.ProviderStripe && sub.SubscriptionRef != "" {
		_, err := s.stripeClient.Subscriptions.Update(sub.SubscriptionRef, &stripe.SubscriptionParams{
			CancelAtPeriodEnd: stripe.Bool(true),
		})
		if err != nil {
			return nil, fmt.Errorf("stripe cancel: %w", err)
		}
	}

	sub.CancelAtPeriodEnd = true
	sub.UpdatedAt = time.Now()
	if err := uow.SubscriptionRepository().Upsert(ctx, sub); err != nil {
		return nil, err
	}

	out := &dto.CancelSubscriptionResponse{
		Status:            sub.Status,
		CancelAtPeriodEnd: true,
	}
	if !sub.CurrentPeriodEnd.IsZero() {
		end := sub.CurrentPeriodEnd
		out.EffectiveAt = &end
	}
	return out, nil
}

func (s *billingService) BillingPortal(ctx context.Context, userId uuid.UUID) (*dto.BillingPortalResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.Provider != billing.ProviderStripe || sub.CustomerRef == "" {
		return nil, ErrNoSubscription
	}

	session, err := s.stripeClient.BillingPortalSessions.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(sub.CustomerRef),
		ReturnURL: stripe.String(s.clientURL + "/settings/billing"),
	})
	if err != nil {
		return nil, fmt.Errorf("stripe billing portal: %w", err)
	}

	return &dto.BillingPortalResponse{PortalURL: session.URL}, nil
}
