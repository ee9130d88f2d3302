package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/staffalloc/backend/internal/controllers/v1"
	"github.com/staffalloc/backend/internal/models"
	"github.com/staffalloc/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRolesOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No role with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Role exists", createTestRole(suite.T(), v1.RoleEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/roles", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestRolesCreate() {
	role := createTestRole(suite.T(), v1.RoleEditable{Name: "  Backend Engineer  ", Description: "Implements services"})

	// Whitespace is trimmed on save
	assert.Equal(suite.T(), "Backend Engineer", role.Data.Name)
	assert.Equal(suite.T(), "Implements services", role.Data.Description)
}

// TestRolesCreateDuplicateName verifies that a role name is unique per
// owner, but is allowed for a different owner.
func (suite *TestSuiteStandard) TestRolesCreateDuplicateName() {
	owner := createTestUser(suite.T(), v1.UserEditable{SystemRole: "manager"})
	_ = createTestRole(suite.T(), v1.RoleEditable{OwnerID: owner.Data.ID, Name: "Backend Engineer"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/roles", []v1.RoleEditable{
		{OwnerID: owner.Data.ID, Name: "Backend Engineer"},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.RoleCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrRoleNameNotUnique.Error(), *response.Data[0].Error)

	// The same name for a different owner works
	_ = createTestRole(suite.T(), v1.RoleEditable{Name: "Backend Engineer"})
}

func (suite *TestSuiteStandard) TestRolesGetFiltered() {
	owner := createTestUser(suite.T(), v1.UserEditable{SystemRole: "manager"})
	_ = createTestRole(suite.T(), v1.RoleEditable{OwnerID: owner.Data.ID, Name: "Backend Engineer"})
	_ = createTestRole(suite.T(), v1.RoleEditable{OwnerID: owner.Data.ID, Name: "Data Engineer"})
	_ = createTestRole(suite.T(), v1.RoleEditable{Name: "Product Manager"})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"By owner", fmt.Sprintf("owner=%s", owner.Data.ID), 2},
		{"By name", "name=Data+Engineer", 1},
		{"Search", "search=engineer", 2},
		{"No match", "name=Gardener", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/roles?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.RoleListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestRolesUpdate() {
	role := createTestRole(suite.T(), v1.RoleEditable{Name: "Backend Engineer", Description: "Keep me"})

	r := test.Request(suite.T(), http.MethodPatch, role.Data.Links.Self, map[string]any{
		"name": "Platform Engineer",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.RoleResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Platform Engineer", response.Data.Name)
	assert.Equal(suite.T(), "Keep me", response.Data.Description)
}

func (suite *TestSuiteStandard) TestRolesDelete() {
	role := createTestRole(suite.T(), v1.RoleEditable{})

	r := test.Request(suite.T(), http.MethodDelete, role.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, role.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
