package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"autoparts/app/models"
	"autoparts/pkg/database"
)

func setupDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegisterEndpoint(t *testing.T) {
	setupDB(t)
	c := NewAuthController()

	rec := postJSON(t, c.Register, "/api/auth/register",
		`{"name":"Ana","email":"ana@example.com","password":"hunter22"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		Data struct {
			Token string `json:"token"`
			User  struct {
				Email string `json:"email"`
				Role  string `json:"role"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Data.Token)
	assert.Equal(t, "ana@example.com", body.Data.User.Email)
	assert.Equal(t, "CLIENTE", body.Data.User.Role)

	// The hash must never leak into the response.
	assert.NotContains(t, rec.Body.String(), "password")

	// Same email again conflicts.
	rec = postJSON(t, c.Register, "/api/auth/register",
		`{"name":"Ana","email":"ana@example.com","password":"hunter22"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	setupDB(t)
	c := NewAuthController()

	rec := postJSON(t, c.Register, "/api/auth/register",
		`{"name":"A","email":"not-an-email","password":"x"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Errors, "name")
	assert.Contains(t, body.Errors, "email")
	assert.Contains(t, body.Errors, "password")

	rec = postJSON(t, c.Register, "/api/auth/register", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	setupDB(t)
	c := NewAuthController()

	rec := postJSON(t, c.Register, "/api/auth/register",
		`{"name":"Ana","email":"ana@example.com","password":"hunter22"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, c.Login, "/api/auth/login",
		`{"email":"ana@example.com","password":"hunter22"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, c.Login, "/api/auth/login",
		`{"email":"ana@example.com","password":"wrong999"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postJSON(t, c.Login, "/api/auth/login",
		`{"email":"ghost@example.com","password":"whatever1"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
