package controllers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"volunteer_hub/internal/config"
	"volunteer_hub/internal/models"
)

func newAuthRouter() *gin.Engine {
	r := gin.New()
	r.POST("/api/auth/register", RegisterUser)
	r.POST("/api/auth/login", LoginUser)
	return r
}

// captureCreates records every value passed to Create on config.DB.
func captureCreates(t *testing.T) *[]interface{} {
	t.Helper()
	var created []interface{}
	err := config.DB.Callback().Create().Before("gorm:create").Register("test:capture", func(db *gorm.DB) {
		created = append(created, db.Statement.Dest)
	})
	require.NoError(t, err)
	return &created
}

func expectEmailCount(mock sqlmock.Sqlmock, email string, n int) {
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WithArgs(email).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(n))
}

func TestRegisterUser_VolunteerGetsVolunteerProfile(t *testing.T) {
	mock := setupMockDB(t)
	created := captureCreates(t)

	expectEmailCount(mock, "ann@example.com", 0)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "volunteer_profiles"`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	w := doJSON(newAuthRouter(), http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ann", "email": "Ann@Example.com", "password": "secret123", "role": "VOLUNTEER",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"message":"User created successfully"}`, w.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, *created, 2)
	user, ok := (*created)[0].(*models.User)
	require.True(t, ok)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.Equal(t, models.RoleVolunteer, user.Role)
	assert.NotEqual(t, "secret123", user.Password)

	profile, ok := (*created)[1].(*models.VolunteerProfile)
	require.True(t, ok)
	assert.Equal(t, uint(1), profile.UserID)
}

func TestRegisterUser_OrganizationProfileTakesSubmittedName(t *testing.T) {
	mock := setupMockDB(t)
	created := captureCreates(t)

	expectEmailCount(mock, "contact@greenearth.org", 0)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectQuery(`INSERT INTO "organization_profiles"`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	w := doJSON(newAuthRouter(), http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Green Earth", "email": "contact@greenearth.org", "password": "secret123", "role": "organization",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, *created, 2)
	profile, ok := (*created)[1].(*models.OrganizationProfile)
	require.True(t, ok)
	assert.Equal(t, "Green Earth", profile.Name)
	assert.Equal(t, uint(4), profile.UserID)
}

func TestRegisterUser_AdminRoleRejected(t *testing.T) {
	for _, role := range []string{"ADMIN", "admin", " Admin "} {
		t.Run(role, func(t *testing.T) {
			mock := setupMockDB(t)

			w := doJSON(newAuthRouter(), http.MethodPost, "/api/auth/register", "", gin.H{
				"name": "Root", "email": "root@example.com", "password": "secret123", "role": role,
			})

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Invalid role", errorMessage(t, w))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSeedAdmin_CreatesAdminOnce(t *testing.T) {
	mock := setupMockDB(t)
	created := captureCreates(t)

	expectEmailCount(mock, "root@example.com", 0)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	ok, err := SeedAdmin(config.DB, "", " Root@Example.com ", "secret123")
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, *created, 1)
	user, isUser := (*created)[0].(*models.User)
	require.True(t, isUser)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, "root@example.com", user.Email)
	assert.Equal(t, "Administrator", user.Name)
	assert.NotEqual(t, "secret123", user.Password)

	expectEmailCount(mock, "root@example.com", 1)
	ok, err = SeedAdmin(config.DB, "Root", "root@example.com", "secret123")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedAdmin_RequiresCredentials(t *testing.T) {
	mock := setupMockDB(t)

	_, err := SeedAdmin(config.DB, "Root", "", "secret123")
	require.Error(t, err)
	_, err = SeedAdmin(config.DB, "Root", "root@example.com", "")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterUser_DuplicateEmailInsertsNothing(t *testing.T) {
	mock := setupMockDB(t)

	expectEmailCount(mock, "ann@example.com", 1)

	w := doJSON(newAuthRouter(), http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ann", "email": "ann@example.com", "password": "secret123", "role": "VOLUNTEER",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User with this email already exists", errorMessage(t, w))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterUser_UniqueViolationRaceIsBadRequest(t *testing.T) {
	mock := setupMockDB(t)

	expectEmailCount(mock, "ann@example.com", 0)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	w := doJSON(newAuthRouter(), http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ann", "email": "ann@example.com", "password": "secret123", "role": "VOLUNTEER",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User with this email already exists", errorMessage(t, w))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterUser_Validation(t *testing.T) {
	cases := []struct {
		name string
		body interface{}
		want string
	}{
		{"empty body", `{}`, "Missing required fields"},
		{"malformed json", `{"name":`, "Missing required fields"},
		{"missing password", gin.H{"name": "Ann", "email": "a@b.c", "role": "VOLUNTEER"}, "Missing required fields"},
		{"blank name", gin.H{"name": "   ", "email": "a@b.c", "password": "x", "role": "VOLUNTEER"}, "Missing required fields"},
		{"unknown role", gin.H{"name": "Ann", "email": "a@b.c", "password": "x", "role": "DRIVER"}, "Invalid role"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := setupMockDB(t)

			w := doJSON(newAuthRouter(), http.MethodPost, "/api/auth/register", "", tc.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.want, errorMessage(t, w))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLoginUser_UnknownEmail(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := doJSON(newAuthRouter(), http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "nobody@example.com", "password": "whatever",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", errorMessage(t, w))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUser_IssuesToken(t *testing.T) {
	mock := setupMockDB(t)
	mock.MatchExpectationsInOrder(false)

	hash, err := hashPassword("secret123")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "role"}).
			AddRow(3, "Ann", "ann@example.com", hash, "VOLUNTEER"))
	mock.ExpectQuery(`SELECT \* FROM "volunteer_profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(11, 3))
	mock.ExpectQuery(`SELECT \* FROM "organization_profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}))

	w := doJSON(newAuthRouter(), http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "ann@example.com", "password": "secret123",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"token"`)
	assert.NotContains(t, w.Body.String(), hash)
	assert.Contains(t, w.Body.String(), `"volunteer_profile"`)
	require.NoError(t, mock.ExpectationsWereMet())
}
