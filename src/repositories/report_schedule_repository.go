package repositories

import (
	"context"
	"reports/src/models"
	"time"

	"gorm.io/gorm"
)

type ReportScheduleRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*models.ReportSchedule, error)
	GetByID(ctx context.Context, id uint) (*models.ReportSchedule, error)
	Create(ctx context.Context, schedule *models.ReportSchedule) error
	Save(ctx context.Context, schedule *models.ReportSchedule) error
	Delete(ctx context.Context, id uint) error
	MarkSent(ctx context.Context, id uint, sentAt time.Time) error
}

type reportScheduleRepo struct {
	DB *gorm.DB
}

func NewReportScheduleRepository(db *gorm.DB) ReportScheduleRepository {
	return &reportScheduleRepo{DB: db}
}

func (r *reportScheduleRepo) List(ctx context.Context, activeOnly bool) ([]*models.ReportSchedule, error) {
	query := r.DB.WithContext(ctx).Order("id")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var schedules []*models.ReportSchedule
	if err := query.Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

// GetByID returns gorm.ErrRecordNotFound when no schedule has id.
func (r *reportScheduleRepo) GetByID(ctx context.Context, id uint) (*models.ReportSchedule, error) {
	var schedule models.ReportSchedule
	if err := r.DB.WithContext(ctx).First(&schedule, id).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *reportScheduleRepo) Create(ctx context.Context, schedule *models.ReportSchedule) error {
	return r.DB.WithContext(ctx).Create(schedule).Error
}

// Save writes every column, zero values included.
func (r *reportScheduleRepo) Save(ctx context.Context, schedule *models.ReportSchedule) error {
	return r.DB.WithContext(ctx).Save(schedule).Error
}

func (r *reportScheduleRepo) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&models.ReportSchedule{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reportScheduleRepo) MarkSent(ctx context.Context, id uint, sentAt time.Time) error {
	return r.DB.WithContext(ctx).Model(&models.ReportSchedule{}).
		Where("id = ?", id).
		Update("last_sent_at", sentAt).Error
}
