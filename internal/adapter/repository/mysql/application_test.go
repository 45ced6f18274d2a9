package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	appDomain "loanflow-backend/internal/domain/application"
	"loanflow-backend/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&appDomain.Application{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeApplication(applicationID string) *appDomain.Application {
	return &appDomain.Application{
		ApplicationID: applicationID,
		BusinessID:    id.NewID32(),
		ApplicantID:   id.NewID32(),
		LoanProductID: id.NewID32(),
		Amount:        500_000.00,
		Currency:      "USD",
		Tenure:        12,
		TenureType:    "interest_free_months",
		UseOfFunds:    "inventory",
		Status:        appDomain.StatusEligibilityCheck,
	}
}

func TestApplicationRepository_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	a := makeApplication("APP-1")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.ID == 0 {
		t.Fatal("numeric id not generated")
	}

	got, err := repo.GetByApplicationID(ctx, "APP-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != appDomain.StatusEligibilityCheck || got.Tenure != 12 {
		t.Fatalf("unexpected row: %+v", got)
	}
}

func TestApplicationRepository_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewApplicationRepository(db)

	_, err := repo.GetByApplicationID(context.Background(), "missing")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}

func TestApplicationRepository_SoftDeletedExcluded(t *testing.T) {
	db := openTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	a := makeApplication("APP-DEL")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := db.Delete(a).Error; err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	if _, err := repo.GetByApplicationID(ctx, "APP-DEL"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("soft-deleted application still visible: %v", err)
	}
	if _, err := repo.GetByApplicationIDForUpdate(ctx, "APP-DEL"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("soft-deleted application still lockable: %v", err)
	}
}

func TestApplicationRepository_SavePersistsStageSlot(t *testing.T) {
	db := openTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	a := makeApplication("APP-SAVE")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	a.Status = appDomain.StatusCreditAnalysis
	a.EligibilityComment = "looks eligible"
	a.EligibilityCompletedAt = &now
	a.EligibilityCompletedBy = "reviewer-1"
	a.LastUpdatedBy = "reviewer-1"
	a.LastUpdatedAt = now
	if err := repo.Save(ctx, a); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.GetByApplicationID(ctx, "APP-SAVE")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != appDomain.StatusCreditAnalysis || got.EligibilityComment != "looks eligible" {
		t.Fatalf("stage slot not persisted: %+v", got)
	}
	if got.EligibilityCompletedAt == nil || !got.EligibilityCompletedAt.Equal(now) {
		t.Fatalf("completed_at = %v, want %v", got.EligibilityCompletedAt, now)
	}
}
