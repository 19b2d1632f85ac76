package repository

import (
	"path/filepath"
	"testing"
	"time"

	"job_manager_fields/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.PostMetaEntity{}, &model.JobListingEntity{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestPostMetaRepository_CRUD(t *testing.T) {
	repo := NewPostMetaRepository(openTestDB(t))

	got, err := repo.FindByPostAndKey(42, "_company_office_morale")
	if err != nil || got != nil {
		t.Fatalf("FindByPostAndKey(empty) = %v, %v; want nil, nil", got, err)
	}

	now := time.Now()
	meta := &model.PostMetaEntity{PostID: 42, MetaKey: "_company_office_morale", MetaValue: "Happy", CreatedAt: now, UpdatedAt: now}
	if err := repo.Save(meta); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if meta.ID == 0 {
		t.Error("Save() did not assign meta_id")
	}

	meta.MetaValue = "Great team!"
	if err := repo.Update(meta); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	got, err = repo.FindByPostAndKey(42, "_company_office_morale")
	if err != nil {
		t.Fatalf("FindByPostAndKey() error: %v", err)
	}
	if got == nil || got.MetaValue != "Great team!" {
		t.Fatalf("FindByPostAndKey() = %+v, want value %q", got, "Great team!")
	}

	other := &model.PostMetaEntity{PostID: 42, MetaKey: "_job_location", MetaValue: "Remote"}
	if err := repo.Save(other); err != nil {
		t.Fatalf("Save(other) error: %v", err)
	}
	all, err := repo.FindByPost(42)
	if err != nil {
		t.Fatalf("FindByPost() error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("FindByPost() returned %d rows, want 2", len(all))
	}

	if err := repo.DeleteByPostAndKey(42, "_job_location"); err != nil {
		t.Fatalf("DeleteByPostAndKey() error: %v", err)
	}
	all, _ = repo.FindByPost(42)
	if len(all) != 1 {
		t.Errorf("after delete FindByPost() returned %d rows, want 1", len(all))
	}
}

func TestJobListingRepository(t *testing.T) {
	repo := NewJobListingRepository(openTestDB(t))

	job := &model.JobListingEntity{Title: "Go Developer", Status: "preview"}
	if err := repo.Save(job); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := repo.FindByID(job.ID)
	if err != nil || got == nil {
		t.Fatalf("FindByID() = %v, %v", got, err)
	}
	if got.Title != "Go Developer" {
		t.Errorf("Title = %q", got.Title)
	}

	got.Status = "publish"
	if err := repo.Update(got); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	published, err := repo.FindByStatus("publish")
	if err != nil || len(published) != 1 {
		t.Fatalf("FindByStatus(publish) = %v, %v", published, err)
	}

	if err := repo.Delete(job.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	got, err = repo.FindByID(job.ID)
	if err != nil || got != nil {
		t.Errorf("FindByID(deleted) = %v, %v; want nil, nil", got, err)
	}
}
