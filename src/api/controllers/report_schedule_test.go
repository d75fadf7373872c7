package controllers_test

import (
	"context"
	"net/http"
	"reports/src/api/controllers"
	"reports/src/models"
	"reports/src/schemas"
	"reports/src/utils"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.ReportSchedule{}))
	return db
}

func assertStatus(t *testing.T, err error, code int) {
	t.Helper()
	var httpErr *utils.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, code, httpErr.Code)
}

func TestReportScheduleCRUD(t *testing.T) {
	ctx := context.Background()
	rc := controllers.NewReportScheduleController(setupTestDB(t))

	created, err := rc.CreateReportSchedule(ctx, &schemas.CreateReportScheduleRequest{
		ReportType: "Sales",
		Format:     "xlsx",
		CronTime:   "0 7 * * 1",
		RangeDays:  7,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "sales", created.ReportType)
	assert.Equal(t, "xlsx", created.Format)
	assert.True(t, created.Active)
	assert.Nil(t, created.LastSentAt)

	defaults, err := rc.CreateReportSchedule(ctx, &schemas.CreateReportScheduleRequest{
		ReportType: "income-expense",
		CronTime:   "@daily",
	})
	require.NoError(t, err)
	assert.Equal(t, "pdf", defaults.Format)
	assert.Equal(t, 1, defaults.RangeDays)

	all, err := rc.GetAllReportSchedules(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, created.ID, all[0].ID)

	inactive := false
	cronTime := "30 6 * * *"
	updated, err := rc.UpdateReportSchedule(ctx, &schemas.UpdateReportScheduleRequest{
		ID:       created.ID,
		CronTime: &cronTime,
		Active:   &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "30 6 * * *", updated.CronTime)
	assert.False(t, updated.Active)

	loaded, err := rc.GetReportScheduleByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, loaded.Active)
	assert.Equal(t, "xlsx", loaded.Format)

	require.NoError(t, rc.DeleteReportSchedule(ctx, created.ID))
	_, err = rc.GetReportScheduleByID(ctx, created.ID)
	assert.True(t, controllers.IsNotFound(err))
	assert.True(t, controllers.IsNotFound(rc.DeleteReportSchedule(ctx, created.ID)))
}

func TestReportScheduleValidation(t *testing.T) {
	ctx := context.Background()
	rc := controllers.NewReportScheduleController(setupTestDB(t))

	_, err := rc.CreateReportSchedule(ctx, &schemas.CreateReportScheduleRequest{ReportType: "payroll", CronTime: "@daily"})
	assertStatus(t, err, http.StatusUnprocessableEntity)

	_, err = rc.CreateReportSchedule(ctx, &schemas.CreateReportScheduleRequest{ReportType: "sales", Format: "docx", CronTime: "@daily"})
	assertStatus(t, err, http.StatusUnprocessableEntity)

	_, err = rc.CreateReportSchedule(ctx, &schemas.CreateReportScheduleRequest{ReportType: "sales", CronTime: "every day"})
	assertStatus(t, err, http.StatusUnprocessableEntity)

	_, err = rc.CreateReportSchedule(ctx, &schemas.CreateReportScheduleRequest{ReportType: "sales", CronTime: "@daily", RangeDays: -3})
	assertStatus(t, err, http.StatusUnprocessableEntity)

	created, err := rc.CreateReportSchedule(ctx, &schemas.CreateReportScheduleRequest{ReportType: "sales", CronTime: "@daily"})
	require.NoError(t, err)

	zero := 0
	_, err = rc.UpdateReportSchedule(ctx, &schemas.UpdateReportScheduleRequest{ID: created.ID, RangeDays: &zero})
	assertStatus(t, err, http.StatusUnprocessableEntity)

	_, err = rc.UpdateReportSchedule(ctx, &schemas.UpdateReportScheduleRequest{ID: created.ID + 100})
	assert.True(t, controllers.IsNotFound(err))
}

func TestReportScheduleWithoutDatabase(t *testing.T) {
	rc := controllers.NewReportScheduleController(nil)
	_, err := rc.GetAllReportSchedules(context.Background())
	assertStatus(t, err, http.StatusServiceUnavailable)
}
