package create_plan_purchase

import (
	"context"
	"fmt"
	"strings"

	"github.com/evilazio/barbershop-booking/internal/domain"
	"github.com/evilazio/barbershop-booking/internal/service/payments"
	"github.com/evilazio/barbershop-booking/pkg/ptr"
)

// UseCase use case для покупки плана через PIX
type UseCase struct {
	purchaseRepo PurchaseRepository
	pricer       PlanPricer
	gateway      PaymentGateway
	txManager    TransactionManager
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	purchaseRepo PurchaseRepository,
	pricer PlanPricer,
	gateway PaymentGateway,
	txManager TransactionManager,
	timeProvider TimeProvider,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		purchaseRepo: purchaseRepo,
		pricer:       pricer,
		gateway:      gateway,
		txManager:    txManager,
		settings:     settings,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute создает покупку в ожидании оплаты и платеж у провайдера
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreatePlanPurchase: user=%d, plan=%q", req.UserID, req.PlanType)

	// 1. Администратор не покупает план
	if req.Role == domain.RoleAdmin {
		return nil, ErrAdminNoPlan
	}

	// 2. Валидация
	planType, preferredCut, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreatePlanPurchase: validation failed: %v", err)
		return nil, err
	}

	amount, err := uc.pricer.Price(planType)
	if err != nil {
		return nil, ErrInvalidPlan
	}

	now := uc.timeProvider.Now()
	code := payments.NewPaymentCode(domain.PaymentCodePrefixPlan, now)
	description := fmt.Sprintf("Plano %s Evilazio", strings.ToUpper(string(planType)))

	var created *domain.PlanPurchase

	// 3. Покупка и платеж в одной транзакции
	err = uc.txManager.Do(ctx, func(ctx context.Context) error {
		// 3.1 Создаем покупку с окном оплаты
		purchase, err := uc.purchaseRepo.Create(ctx, &domain.PlanPurchase{
			UserID:       req.UserID,
			PlanType:     planType,
			PreferredCut: preferredCut,
			Amount:       amount,
			Status:       domain.PurchasePendingPayment,
			Payment: domain.Payment{
				Method:      domain.PaymentMethodPix,
				PlanType:    planType,
				PaymentCode: code,
				Amount:      amount,
				ExpiresAt:   ptr.Ptr(now.Add(uc.settings.PendingWindow)),
			},
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create purchase: %v", ErrInternal, err)
		}

		// 3.2 Создаем платеж у провайдера
		ref := payments.ExternalReference{Type: payments.ReferencePlan, ID: purchase.ID, Code: code}
		descriptor, err := uc.gateway.BuildPixDescriptor(ctx, amount, description, code, ref.String())
		if err != nil {
			return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
		}

		// 3.3 Сохраняем данные платежа
		descriptor.ApplyTo(&purchase.Payment)
		if err := uc.purchaseRepo.UpdatePayment(ctx, purchase.ID, purchase.Payment, now); err != nil {
			return fmt.Errorf("%w: failed to save payment: %v", ErrInternal, err)
		}

		created = purchase
		return nil
	})
	if err != nil {
		uc.logger.Error("CreatePlanPurchase: user=%d: %v", req.UserID, err)
		return nil, err
	}

	uc.logger.Info("CreatePlanPurchase: purchase id=%d created for user=%d, plan=%s",
		created.ID, created.UserID, created.PlanType)

	return &Response{
		PurchaseID:   created.ID,
		PlanType:     created.PlanType,
		PreferredCut: created.PreferredCut,
		Amount:       created.Amount,
		Status:       created.Status,
		Payment:      created.Payment,
	}, nil
}
