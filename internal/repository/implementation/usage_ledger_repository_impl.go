package implementation

import (
	"context"
	"errors"
	"time"

	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/mapper"
	"resume-builder-be/internal/model"
	"resume-builder-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsageLedgerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UsageLedgerMapper
}

func NewUsageLedgerRepository(db *gorm.DB) contract.UsageLedgerRepository {
	return &UsageLedgerRepositoryImpl{
		db:     db,
		mapper: mapper.NewUsageLedgerMapper(),
	}
}

func (r *UsageLedgerRepositoryImpl) Create(ctx context.Context, ledger *entity.UsageLedger) error {
	modelLedger := r.mapper.ToModel(ledger)
	if err := r.db.WithContext(ctx).Create(modelLedger).Error; err != nil {
		return err
	}
	*ledger = *r.mapper.ToEntity(modelLedger)
	return nil
}

func (r *UsageLedgerRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.UsageLedger, error) {
	var modelLedger model.UsageLedger
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&modelLedger).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&modelLedger), nil
}

// IncrementResumesCreated folds the entitlement check into the UPDATE
// itself so two concurrent requests cannot both pass a read-then-write
// check. RowsAffected == 0 means either the ceiling refused the bump or
// the ledger row does not exist; a follow-up read tells the two apart.
func (r *UsageLedgerRepositoryImpl) IncrementResumesCreated(ctx context.Context, userId uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.UsageLedger{}).
		Where("user_id = ? AND (resumes_limit = -1 OR resumes_created < resumes_limit)", userId).
		UpdateColumn("resumes_created", gorm.Expr("resumes_created + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.refusalReason(ctx, userId)
	}
	return nil
}

func (r *UsageLedgerRepositoryImpl) DecrementResumesCreated(ctx context.Context, userId uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.UsageLedger{}).
		Where("user_id = ?", userId).
		UpdateColumn("resumes_created", gorm.Expr("GREATEST(resumes_created - 1, 0)"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return contract.ErrLedgerNotFound
	}
	return nil
}

func (r *UsageLedgerRepositoryImpl) ConsumeAICredits(ctx context.Context, userId uuid.UUID, n int) error {
	if n <= 0 {
		return contract.ErrInvalidCreditAmount
	}
	result := r.db.WithContext(ctx).Model(&model.UsageLedger{}).
		Where("user_id = ? AND (ai_credits_limit = -1 OR ai_credits_used + ? <= ai_credits_limit)", userId, n).
		UpdateColumn("ai_credits_used", gorm.Expr("ai_credits_used + ?", n))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.refusalReason(ctx, userId)
	}
	return nil
}

func (r *UsageLedgerRepositoryImpl) IncrementViews(ctx context.Context, userId uuid.UUID) error {
	return r.bump(ctx, userId, "total_views")
}

func (r *UsageLedgerRepositoryImpl) IncrementDownloads(ctx context.Context, userId uuid.UUID) error {
	return r.bump(ctx, userId, "total_downloads")
}

// IncrementPremiumTemplatesUsed sets the flag; the column is a bool,
// not a counter, so re-applying a premium template is a no-op write.
func (r *UsageLedgerRepositoryImpl) IncrementPremiumTemplatesUsed(ctx context.Context, userId uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.UsageLedger{}).
		Where("user_id = ?", userId).
		UpdateColumn("premium_templates_used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return contract.ErrLedgerNotFound
	}
	return nil
}

func (r *UsageLedgerRepositoryImpl) ResizeLimits(ctx context.Context, userId uuid.UUID, resumesLimit, aiCreditsLimit int) error {
	result := r.db.WithContext(ctx).Model(&model.UsageLedger{}).
		Where("user_id = ?", userId).
		Updates(map[string]interface{}{
			"resumes_limit":    resumesLimit,
			"ai_credits_limit": aiCreditsLimit,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return contract.ErrLedgerNotFound
	}
	return nil
}

func (r *UsageLedgerRepositoryImpl) ResetAICredits(ctx context.Context, userId uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.UsageLedger{}).
		Where("user_id = ?", userId).
		Updates(map[string]interface{}{
			"ai_credits_used": 0,
			"last_reset_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return contract.ErrLedgerNotFound
	}
	return nil
}

func (r *UsageLedgerRepositoryImpl) GrantExtraAICredits(ctx context.Context, userId uuid.UUID, n int) error {
	result := r.db.WithContext(ctx).Model(&model.UsageLedger{}).
		Where("user_id = ? AND ai_credits_limit <> -1", userId).
		UpdateColumn("ai_credits_limit", gorm.Expr("ai_credits_limit + ?", n))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the row is missing or the limit is already unlimited.
		ledger, err := r.FindByUserId(ctx, userId)
		if err != nil {
			return err
		}
		if ledger == nil {
			return contract.ErrLedgerNotFound
		}
	}
	return nil
}

func (r *UsageLedgerRepositoryImpl) SumAiCalls(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.UsageLedger{}).
		Select("COALESCE(SUM(ai_credits_used), 0)").
		Scan(&total).Error
	return total, err
}

func (r *UsageLedgerRepositoryImpl) bump(ctx context.Context, userId uuid.UUID, column string) error {
	result := r.db.WithContext(ctx).Model(&model.UsageLedger{}).
		Where("user_id = ?", userId).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return contract.ErrLedgerNotFound
	}
	return nil
}

// refusalReason distinguishes a conditional update refused by the
// ceiling from one that matched no row at all.
func (r *UsageLedgerRepositoryImpl) refusalReason(ctx context.Context, userId uuid.UUID) error {
	ledger, err := r.FindByUserId(ctx, userId)
	if err != nil {
		return err
	}
	if ledger == nil {
		return contract.ErrLedgerNotFound
	}
	return contract.ErrLimitReached
}
