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

// TestUsersDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestUsersDBClosed() {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestUser(t, v1.UserEditable{Email: "closed@example.com"}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/users", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.UserListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

// TestUsersOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestUsersOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No user with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"User exists", createTestUser(suite.T(), v1.UserEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/users", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestUsersCreate() {
	user := createTestUser(suite.T(), v1.UserEditable{
		Email:      "Clara.Weiss@Example.com",
		FirstName:  "Clara",
		LastName:   "Weiss",
		SystemRole: "manager",
		Active:     true,
	})

	// The email address is normalized on save
	assert.Equal(suite.T(), "clara.weiss@example.com", user.Data.Email)
	assert.Equal(suite.T(), models.SystemRole("manager"), user.Data.SystemRole)
	assert.NotEmpty(suite.T(), user.Data.Links.Self)
}

func (suite *TestSuiteStandard) TestUsersCreateDefaultsSystemRole() {
	user := createTestUser(suite.T(), v1.UserEditable{})
	assert.Equal(suite.T(), models.SystemRoleEmployee, user.Data.SystemRole)
}

func (suite *TestSuiteStandard) TestUsersCreateInvalidSystemRole() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/users", []v1.UserEditable{
		{Email: "invalid-role@example.com", SystemRole: "superuser"},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUsersCreateDuplicateEmail() {
	_ = createTestUser(suite.T(), v1.UserEditable{Email: "twice@example.com"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/users", []v1.UserEditable{
		{Email: "twice@example.com"},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.UserCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrUserEmailNotUnique.Error(), *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestUsersGetSingle() {
	user := createTestUser(suite.T(), v1.UserEditable{})

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing user", user.Data.ID.String(), http.StatusOK},
		{"ID nonexistent", uuid.New().String(), http.StatusNotFound},
		{"ID not a UUID", "definitely-not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/users/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestUsersGetFiltered() {
	manager := createTestUser(suite.T(), v1.UserEditable{SystemRole: "manager"})
	_ = createTestUser(suite.T(), v1.UserEditable{Email: "anna.fuchs@example.com", FirstName: "Anna", ManagerID: &manager.Data.ID})
	_ = createTestUser(suite.T(), v1.UserEditable{Email: "ben.fuchs@example.com", FirstName: "Ben", ManagerID: &manager.Data.ID})
	_ = createTestUser(suite.T(), v1.UserEditable{Email: "caro.lang@example.com", FirstName: "Caro"})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"By manager", fmt.Sprintf("manager=%s", manager.Data.ID), 2},
		{"By email", "email=anna.fuchs@example.com", 1},
		{"By system role", "systemRole=manager", 1},
		{"Search last name", "search=fuchs", 2},
		{"Search no match", "search=nobody", 0},
		{"Limit", "limit=2", 2},
		{"Offset", "offset=3", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/users?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.UserListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestUsersUpdate() {
	user := createTestUser(suite.T(), v1.UserEditable{FirstName: "Old", LastName: "Name", Active: true})

	r := test.Request(suite.T(), http.MethodPatch, user.Data.Links.Self, map[string]any{
		"firstName": "New",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "New", response.Data.FirstName)

	// Fields not in the request body stay untouched
	assert.Equal(suite.T(), "Name", response.Data.LastName)
	assert.True(suite.T(), response.Data.Active)
}

func (suite *TestSuiteStandard) TestUsersUpdateInvalidSystemRole() {
	user := createTestUser(suite.T(), v1.UserEditable{})

	r := test.Request(suite.T(), http.MethodPatch, user.Data.Links.Self, map[string]any{
		"systemRole": "superuser",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUsersDelete() {
	user := createTestUser(suite.T(), v1.UserEditable{})

	r := test.Request(suite.T(), http.MethodDelete, user.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, user.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestUsersDeleteRemovesAssignments verifies that deleting a user also
// removes their assignments and allocations.
func (suite *TestSuiteStandard) TestUsersDeleteRemovesAssignments() {
	user := createTestUser(suite.T(), v1.UserEditable{})
	assignment := createTestAssignment(suite.T(), v1.AssignmentEditable{UserID: user.Data.ID, FundedHours: 100})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{AssignmentID: assignment.Data.ID, Hours: 40})

	r := test.Request(suite.T(), http.MethodDelete, user.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, assignment.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Allocation{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)
}
