package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gdb, mock
}

func TestListEmailLogs_Filters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT * FROM "email_logs" WHERE status = $1 AND email_type = $2 AND created_at >= $3 AND created_at <= $4 ORDER BY created_at DESC LIMIT $5`).
		WithArgs("processed", "order", "2026-01-01", "2026-01-31", 100).
		WillReturnRows(sqlmock.NewRows([]string{"id", "message_id", "status"}).
			AddRow(1, "m-1", "processed"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet,
		"/api/email-logs?status=processed&email_type=order&start_date=2026-01-01&end_date=2026-01-31", nil)

	ListEmailLogs(gdb)(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEmailLogs_TypeAllIsNotFiltered(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb, mock := newMockDB(t)

	// email_type=all は条件に含めない
	mock.ExpectQuery(`SELECT * FROM "email_logs" ORDER BY created_at DESC LIMIT $1`).
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/email-logs?email_type=all", nil)

	ListEmailLogs(gdb)(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
