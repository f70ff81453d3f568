package integration

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/repository/contract"
	"resume-builder-be/internal/repository/specification"
	"resume-builder-be/internal/repository/unitofwork"
	"resume-builder-be/pkg/database"
	"resume-builder-be/pkg/plancatalog"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.UsageLedgerRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Resume Embedding Repository", func(t *testing.T) {
		assert.NotNil(t, uow.ResumeEmbeddingRepository())
	})
}

// TestLedgerPremiumTemplateFlag verifies the flag write executes
// against the real bool column and stays set on re-application.
func TestLedgerPremiumTemplateFlag(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(ctx)

	user := &entity.User{
		Id:       uuid.New(),
		Email:    "test-premium-" + uuid.New().String() + "@example.com",
		FullName: "Premium Flag",
		Role:     entity.RoleUser,
		Status:   entity.UserStatusActive,
		Plan:     plancatalog.TierPro,
	}
	require.NoError(t, uow.UserRepository().Create(ctx, user))
	defer func() {
		_ = uow.UserRepository().Delete(ctx, user.Id)
	}()

	ledger := &entity.UsageLedger{
		Id:             uuid.New(),
		UserId:         user.Id,
		ResumesLimit:   plancatalog.Unlimited,
		AiCreditsLimit: 100,
		LastResetAt:    time.Now(),
	}
	require.NoError(t, uow.UsageLedgerRepository().Create(ctx, ledger))

	require.NoError(t, uow.UsageLedgerRepository().IncrementPremiumTemplatesUsed(ctx, user.Id))
	// Second application is a no-op write, not an error.
	require.NoError(t, uow.UsageLedgerRepository().IncrementPremiumTemplatesUsed(ctx, user.Id))

	fresh, err := uow.UsageLedgerRepository().FindByUserId(ctx, user.Id)
	require.NoError(t, err)
	require.NotNil(t, fresh)
	assert.True(t, fresh.PremiumTemplatesUsed)
}

// TestLedgerConcurrentConsume hammers ConsumeAICredits from many
// goroutines and asserts the conditional UPDATE never oversells.
func TestLedgerConcurrentConsume(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(ctx)

	user := &entity.User{
		Id:       uuid.New(),
		Email:    "test-ledger-" + uuid.New().String() + "@example.com",
		FullName: "Ledger Race",
		Role:     entity.RoleUser,
		Status:   entity.UserStatusActive,
		Plan:     plancatalog.TierFree,
	}
	require.NoError(t, uow.UserRepository().Create(ctx, user))

	const creditLimit = 10
	ledger := &entity.UsageLedger{
		Id:             uuid.New(),
		UserId:         user.Id,
		ResumesLimit:   1,
		AiCreditsLimit: creditLimit,
		LastResetAt:    time.Now(),
	}
	require.NoError(t, uow.UsageLedgerRepository().Create(ctx, ledger))

	defer func() {
		_ = uow.UserRepository().Delete(ctx, user.Id)
	}()

	const workers = 25
	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := uowFactory.NewUnitOfWork(ctx).UsageLedgerRepository().ConsumeAICredits(ctx, user.Id, 1)
			if err == nil {
				mu.Lock()
				granted++
				mu.Unlock()
				return
			}
			assert.True(t, errors.Is(err, contract.ErrLimitReached), "unexpected error: %v", err)
		}()
	}
	wg.Wait()

	assert.Equal(t, creditLimit, granted)

	fresh, err := uow.UsageLedgerRepository().FindByUserId(ctx, user.Id)
	require.NoError(t, err)
	require.NotNil(t, fresh)
	assert.Equal(t, creditLimit, fresh.AiCreditsUsed)

	// One more consume must refuse.
	err = uow.UsageLedgerRepository().ConsumeAICredits(ctx, user.Id, 1)
	assert.ErrorIs(t, err, contract.ErrLimitReached)

	// Sanity: the user row is still readable through a specification.
	found, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: user.Id})
	require.NoError(t, err)
	require.NotNil(t, found)
}
