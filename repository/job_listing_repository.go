package repository

import (
	"errors"
	"job_manager_fields/model"

	"gorm.io/gorm"
)

type JobListingRepository interface {
	FindByID(id int64) (*model.JobListingEntity, error)
	FindByStatus(status string) ([]*model.JobListingEntity, error)
	Save(job *model.JobListingEntity) error
	Update(job *model.JobListingEntity) error
	Delete(id int64) error
}

type jobListingRepository struct {
	db *gorm.DB
}

func NewJobListingRepository(db *gorm.DB) JobListingRepository {
	return &jobListingRepository{db: db}
}

func (r *jobListingRepository) FindByID(id int64) (*model.JobListingEntity, error) {
	var job model.JobListingEntity
	err := r.db.First(&job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobListingRepository) FindByStatus(status string) ([]*model.JobListingEntity, error) {
	var jobs []*model.JobListingEntity
	err := r.db.Where("status = ?", status).Order("id ASC").Find(&jobs).Error
	return jobs, err
}

func (r *jobListingRepository) Save(job *model.JobListingEntity) error {
	return r.db.Create(job).Error
}

func (r *jobListingRepository) Update(job *model.JobListingEntity) error {
	return r.db.Save(job).Error
}

func (r *jobListingRepository) Delete(id int64) error {
	return r.db.Delete(&model.JobListingEntity{}, id).Error
}
