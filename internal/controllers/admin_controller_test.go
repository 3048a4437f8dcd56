package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteer_hub/internal/cache"
	"volunteer_hub/internal/middleware"
	"volunteer_hub/internal/models"
)

// redisRecorder answers every command locally and keeps its arguments.
type redisRecorder struct {
	mu   sync.Mutex
	cmds [][]interface{}
}

func (r *redisRecorder) DialHook(next redis.DialHook) redis.DialHook { return next }

func (r *redisRecorder) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		r.mu.Lock()
		r.cmds = append(r.cmds, cmd.Args())
		r.mu.Unlock()
		if c, ok := cmd.(*redis.IntCmd); ok {
			c.SetVal(1)
		}
		return nil
	}
}

func (r *redisRecorder) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (r *redisRecorder) commands() [][]interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]interface{}(nil), r.cmds...)
}

// withRecordedCache installs a listing cache whose Redis traffic is recorded.
func withRecordedCache(t *testing.T) *redisRecorder {
	t.Helper()
	rec := &redisRecorder{}
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	rdb.AddHook(rec)
	t.Cleanup(func() { rdb.Close() })
	Configure(Options{Cache: cache.New(rdb, time.Minute)})
	return rec
}

var listingInvalidation = []interface{}{"incr", "events:version"}

func newAdminRouter() *gin.Engine {
	r := gin.New()
	admin := r.Group("/api/admin", middleware.RequireAuthWithRole(models.RoleAdmin))
	admin.GET("/users", ListUsers)
	admin.PATCH("/organizations/:id/verify", VerifyOrganization)
	return r
}

func expectOrganization(mock sqlmock.Sqlmock, id uint, verified bool) {
	mock.ExpectQuery(`SELECT \* FROM "organization_profiles" WHERE "organization_profiles"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "is_verified"}).AddRow(id, 4, "Green Earth", verified))
}

func TestVerifyOrganization_EmptyBodyVerifies(t *testing.T) {
	mock := setupMockDB(t)
	rec := withRecordedCache(t)

	expectOrganization(mock, 7, false)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "organization_profiles" SET "is_verified"=\$1,"updated_at"=\$2 WHERE .*"id" = \$3`).
		WithArgs(true, sqlmock.AnyArg(), 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := doJSON(newAdminRouter(), http.MethodPatch, "/api/admin/organizations/7/verify", bearer(t, 1, models.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var org models.OrganizationProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &org))
	assert.True(t, org.IsVerified)
	assert.Equal(t, [][]interface{}{listingInvalidation}, rec.commands())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyOrganization_Revoke(t *testing.T) {
	mock := setupMockDB(t)
	rec := withRecordedCache(t)

	expectOrganization(mock, 7, true)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "organization_profiles" SET "is_verified"=\$1,"updated_at"=\$2 WHERE .*"id" = \$3`).
		WithArgs(false, sqlmock.AnyArg(), 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := doJSON(newAdminRouter(), http.MethodPatch, "/api/admin/organizations/7/verify", bearer(t, 1, models.RoleAdmin), gin.H{"verified": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var org models.OrganizationProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &org))
	assert.False(t, org.IsVerified)
	assert.Equal(t, [][]interface{}{listingInvalidation}, rec.commands())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyOrganization_NotFound(t *testing.T) {
	mock := setupMockDB(t)
	rec := withRecordedCache(t)

	mock.ExpectQuery(`SELECT \* FROM "organization_profiles" WHERE "organization_profiles"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := doJSON(newAdminRouter(), http.MethodPatch, "/api/admin/organizations/7/verify", bearer(t, 1, models.RoleAdmin), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, rec.commands())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyOrganization_AdminOnly(t *testing.T) {
	mock := setupMockDB(t)

	w := doJSON(newAdminRouter(), http.MethodPatch, "/api/admin/organizations/7/verify", bearer(t, 4, models.RoleOrganization), nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsers_FiltersByRole(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE role = \$1`).
		WithArgs("ORGANIZATION").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE role = \$1 .*ORDER BY created_at DESC LIMIT \$2`).
		WithArgs("ORGANIZATION", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role"}).AddRow(4, "Green Earth", "org@example.com", "ORGANIZATION"))
	mock.ExpectQuery(`SELECT \* FROM "organization_profiles" WHERE "organization_profiles"."user_id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}).AddRow(7, 4, "Green Earth"))

	w := doJSON(newAdminRouter(), http.MethodGet, "/api/admin/users?role=organization", bearer(t, 1, models.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Users      []models.User `json:"users"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Users, 1)
	assert.Equal(t, "org@example.com", body.Users[0].Email)
	assert.Equal(t, int64(1), body.Pagination.Total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsers_InvalidRole(t *testing.T) {
	mock := setupMockDB(t)

	w := doJSON(newAdminRouter(), http.MethodGet, "/api/admin/users?role=owner", bearer(t, 1, models.RoleAdmin), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid role", errorMessage(t, w))
	require.NoError(t, mock.ExpectationsWereMet())
}
