package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varejolabs/catalog_api/internal/models"
)

func TestListDepartments(t *testing.T) {
	router, _ := newTestRouter(t)

	res := doRequest(router, http.MethodGet, "/api/departments", "")
	require.Equal(t, http.StatusOK, res.Code)
	env := decodeEnvelope(t, res)

	var departments []models.Department
	require.NoError(t, json.Unmarshal(env.Data, &departments))
	require.Len(t, departments, 4)
	assert.Equal(t, "010", departments[0].Code)
}

func TestGetDepartmentByCode(t *testing.T) {
	router, _ := newTestRouter(t)

	res := doRequest(router, http.MethodGet, "/api/departments/010", "")
	require.Equal(t, http.StatusOK, res.Code)
	env := decodeEnvelope(t, res)

	var department models.Department
	require.NoError(t, json.Unmarshal(env.Data, &department))
	assert.Equal(t, "BEBIDAS", department.Description)
}

func TestGetDepartmentNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	res := doRequest(router, http.MethodGet, "/api/departments/999", "")
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestGetDepartmentBlankCode(t *testing.T) {
	router, _ := newTestRouter(t)

	res := doRequest(router, http.MethodGet, "/api/departments/%20", "")
	assert.Equal(t, http.StatusBadRequest, res.Code)
}
