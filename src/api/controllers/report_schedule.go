package controllers

import (
	"context"
	"errors"
	"fmt"
	"reports/src/models"
	"reports/src/repositories"
	"reports/src/schemas"
	"reports/src/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

type ReportScheduleControllerI interface {
	GetAllReportSchedules(ctx context.Context) ([]*schemas.ReportScheduleResponse, error)
	GetReportScheduleByID(ctx context.Context, ID uint) (*schemas.ReportScheduleResponse, error)
	CreateReportSchedule(ctx context.Context, req *schemas.CreateReportScheduleRequest) (*schemas.ReportScheduleResponse, error)
	UpdateReportSchedule(ctx context.Context, req *schemas.UpdateReportScheduleRequest) (*schemas.ReportScheduleResponse, error)
	DeleteReportSchedule(ctx context.Context, id uint) error
}

type ReportScheduleController struct {
	Repo repositories.ReportScheduleRepository
}

// NewReportScheduleController accepts a nil db; every operation then fails
// with 503.
func NewReportScheduleController(db *gorm.DB) *ReportScheduleController {
	if db == nil {
		return &ReportScheduleController{}
	}
	return &ReportScheduleController{Repo: repositories.NewReportScheduleRepository(db)}
}

func (rc *ReportScheduleController) repo() (repositories.ReportScheduleRepository, error) {
	if rc.Repo == nil {
		return nil, utils.ServiceUnavailable("report schedules require a database")
	}
	return rc.Repo, nil
}

func toScheduleResponse(rs *models.ReportSchedule) *schemas.ReportScheduleResponse {
	return &schemas.ReportScheduleResponse{
		ID:         rs.ID,
		ReportType: rs.ReportType,
		Format:     rs.Format,
		CronTime:   rs.CronTime,
		RangeDays:  rs.RangeDays,
		LastSentAt: rs.LastSentAt,
		CreatedAt:  rs.CreatedAt,
		UpdatedAt:  rs.UpdatedAt,
		Active:     rs.Active,
	}
}

func validateReportType(value string) (schemas.ReportType, error) {
	rt, ok := schemas.ParseReportType(value)
	if !ok {
		return "", utils.UnprocessableEntity(fmt.Sprintf("unknown report type %q", value))
	}
	return rt, nil
}

func validateFormat(value string) (schemas.ExportFormat, error) {
	f, ok := schemas.ParseExportFormat(value)
	if !ok {
		return "", utils.UnprocessableEntity(fmt.Sprintf("unsupported format %q", value))
	}
	return f, nil
}

func validateCron(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return utils.UnprocessableEntity(fmt.Sprintf("invalid cron expression %q: %v", spec, err))
	}
	return nil
}

func validateRangeDays(days int) error {
	if days < 1 {
		return utils.UnprocessableEntity("range_days must be at least 1")
	}
	return nil
}

// GetAllReportSchedules lists every schedule ordered by id.
func (rc *ReportScheduleController) GetAllReportSchedules(ctx context.Context) ([]*schemas.ReportScheduleResponse, error) {
	repo, err := rc.repo()
	if err != nil {
		return nil, err
	}

	schedules, err := repo.List(ctx, false)
	if err != nil {
		return nil, err
	}

	responses := make([]*schemas.ReportScheduleResponse, 0, len(schedules))
	for _, schedule := range schedules {
		responses = append(responses, toScheduleResponse(schedule))
	}
	return responses, nil
}

func (rc *ReportScheduleController) GetReportScheduleByID(ctx context.Context, ID uint) (*schemas.ReportScheduleResponse, error) {
	repo, err := rc.repo()
	if err != nil {
		return nil, err
	}

	schedule, err := repo.GetByID(ctx, ID)
	if err != nil {
		return nil, err
	}
	return toScheduleResponse(schedule), nil
}

func (rc *ReportScheduleController) CreateReportSchedule(ctx context.Context, req *schemas.CreateReportScheduleRequest) (*schemas.ReportScheduleResponse, error) {
	repo, err := rc.repo()
	if err != nil {
		return nil, err
	}

	rt, err := validateReportType(req.ReportType)
	if err != nil {
		return nil, err
	}
	exportFormat, err := validateFormat(req.Format)
	if err != nil {
		return nil, err
	}
	if err := validateCron(req.CronTime); err != nil {
		return nil, err
	}
	rangeDays := req.RangeDays
	if rangeDays == 0 {
		rangeDays = 1
	}
	if err := validateRangeDays(rangeDays); err != nil {
		return nil, err
	}

	schedule := models.ReportSchedule{
		ReportType: string(rt),
		Format:     string(exportFormat),
		CronTime:   req.CronTime,
		RangeDays:  rangeDays,
		Active:     true,
	}
	if err := repo.Create(ctx, &schedule); err != nil {
		return nil, err
	}
	return toScheduleResponse(&schedule), nil
}

// UpdateReportSchedule applies the fields present in req.
func (rc *ReportScheduleController) UpdateReportSchedule(ctx context.Context, req *schemas.UpdateReportScheduleRequest) (*schemas.ReportScheduleResponse, error) {
	repo, err := rc.repo()
	if err != nil {
		return nil, err
	}

	schedule, err := repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.ReportType != nil {
		rt, err := validateReportType(*req.ReportType)
		if err != nil {
			return nil, err
		}
		schedule.ReportType = string(rt)
	}
	if req.Format != nil {
		exportFormat, err := validateFormat(*req.Format)
		if err != nil {
			return nil, err
		}
		schedule.Format = string(exportFormat)
	}
	if req.CronTime != nil {
		if err := validateCron(*req.CronTime); err != nil {
			return nil, err
		}
		schedule.CronTime = *req.CronTime
	}
	if req.RangeDays != nil {
		if err := validateRangeDays(*req.RangeDays); err != nil {
			return nil, err
		}
		schedule.RangeDays = *req.RangeDays
	}
	if req.Active != nil {
		schedule.Active = *req.Active
	}

	if err := repo.Save(ctx, schedule); err != nil {
		return nil, err
	}
	return toScheduleResponse(schedule), nil
}

func (rc *ReportScheduleController) DeleteReportSchedule(ctx context.Context, id uint) error {
	repo, err := rc.repo()
	if err != nil {
		return err
	}
	return repo.Delete(ctx, id)
}

// IsNotFound reports whether err means the schedule does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
