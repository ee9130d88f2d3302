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

// registerTestUser creates a user account with a password via the
// registration endpoint.
func registerTestUser(t *testing.T, editable v1.RegisterEditable, expectedStatus ...int) v1.UserResponse {
	if editable.Email == "" {
		editable.Email = fmt.Sprintf("%s@example.com", uuid.New())
	}

	if editable.Password == "" {
		editable.Password = "hunter2hunter2"
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/auth/register", editable)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.UserResponse
	test.DecodeResponse(t, &r, &response)

	return response
}

func (suite *TestSuiteStandard) TestAuthOptions() {
	for _, path := range []string{"register", "login"} {
		suite.T().Run(path, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, fmt.Sprintf("http://example.com/v1/auth/%s", path), "")
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			assert.Equal(t, "OPTIONS, POST", r.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestAuthRegister() {
	response := registerTestUser(suite.T(), v1.RegisterEditable{
		Email:      "Nora.Fuchs@Example.com",
		FirstName:  "Nora",
		LastName:   "Fuchs",
		SystemRole: models.SystemRoleManager,
	})

	assert.Equal(suite.T(), "nora.fuchs@example.com", response.Data.Email)
	assert.Equal(suite.T(), models.SystemRoleManager, response.Data.SystemRole)
	assert.True(suite.T(), response.Data.Active)
}

func (suite *TestSuiteStandard) TestAuthRegisterErrors() {
	tests := []struct {
		name     string
		editable v1.RegisterEditable
		status   int
		err      string
	}{
		{"Empty password", v1.RegisterEditable{Email: "kim@example.com", Password: " "}, http.StatusBadRequest, "the password must not be empty"},
		{"Invalid system role", v1.RegisterEditable{Email: "kim@example.com", Password: "hunter2hunter2", SystemRole: "superuser"}, http.StatusBadRequest, "the specified system role is invalid"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/auth/register", tt.editable)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.UserResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.err, *response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestAuthRegisterDuplicateEmail() {
	_ = registerTestUser(suite.T(), v1.RegisterEditable{Email: "dup@example.com"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/register", v1.RegisterEditable{
		Email:    "dup@example.com",
		Password: "hunter2hunter2",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrUserEmailNotUnique.Error(), *response.Error)
}

func (suite *TestSuiteStandard) TestAuthLogin() {
	user := registerTestUser(suite.T(), v1.RegisterEditable{
		Email:    "login@example.com",
		Password: "correct horse battery staple",
	})

	// The email is matched case-insensitively
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/login", v1.LoginEditable{
		Email:    "Login@Example.com",
		Password: "correct horse battery staple",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.LoginResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.NotEmpty(suite.T(), response.Data.Token)
	assert.Equal(suite.T(), user.Data.ID, response.Data.User.ID)
}

func (suite *TestSuiteStandard) TestAuthLoginRejected() {
	_ = registerTestUser(suite.T(), v1.RegisterEditable{
		Email:    "login@example.com",
		Password: "correct horse battery staple",
	})

	tests := []struct {
		name     string
		editable v1.LoginEditable
	}{
		{"Wrong password", v1.LoginEditable{Email: "login@example.com", Password: "incorrect"}},
		{"Unknown email", v1.LoginEditable{Email: "nobody@example.com", Password: "correct horse battery staple"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/auth/login", tt.editable)
			test.AssertHTTPStatus(t, &r, http.StatusUnauthorized)

			var response v1.LoginResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, "the email or password is incorrect", *response.Error)
		})
	}
}
