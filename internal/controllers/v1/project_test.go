package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/staffalloc/backend/internal/controllers/v1"
	"github.com/staffalloc/backend/internal/models"
	"github.com/staffalloc/backend/internal/types"
	"github.com/staffalloc/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestProjectsOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No project with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Project exists", createTestProject(suite.T(), v1.ProjectEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/projects", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestProjectsCreate verifies defaulting of the status and the derived
// end date. Six two-week sprints starting 2025-01-06 end 2025-03-31.
func (suite *TestSuiteStandard) TestProjectsCreate() {
	project := createTestProject(suite.T(), v1.ProjectEditable{
		Code:      "PHX",
		Name:      "Phoenix",
		StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		Sprints:   6,
	})

	assert.Equal(suite.T(), models.ProjectStatusPlanning, project.Data.Status)
	assert.Equal(suite.T(), time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), project.Data.EndDate)
}

func (suite *TestSuiteStandard) TestProjectsCreateInvalidSprints() {
	manager := createTestUser(suite.T(), v1.UserEditable{SystemRole: "manager"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/projects", []v1.ProjectEditable{
		{ManagerID: manager.Data.ID, Code: "NEG", Sprints: -1, StartDate: time.Now()},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.ProjectCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrSprintsNotPositive.Error(), *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestProjectsCreateInvalidStatus() {
	manager := createTestUser(suite.T(), v1.UserEditable{SystemRole: "manager"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/projects", []v1.ProjectEditable{
		{ManagerID: manager.Data.ID, Code: "BAD", Status: "cancelled", Sprints: 6, StartDate: time.Now()},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestProjectsCreateDuplicateCode verifies that a project code must be
// unique per manager.
func (suite *TestSuiteStandard) TestProjectsCreateDuplicateCode() {
	manager := createTestUser(suite.T(), v1.UserEditable{SystemRole: "manager"})
	_ = createTestProject(suite.T(), v1.ProjectEditable{ManagerID: manager.Data.ID, Code: "PHX"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/projects", []v1.ProjectEditable{
		{ManagerID: manager.Data.ID, Code: "PHX", Sprints: 6, StartDate: time.Now()},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.ProjectCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrProjectCodeNotUnique.Error(), *response.Data[0].Error)

	// The same code for a different manager works
	_ = createTestProject(suite.T(), v1.ProjectEditable{Code: "PHX"})
}

func (suite *TestSuiteStandard) TestProjectsCreateUnknownManager() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/projects", []v1.ProjectEditable{
		{ManagerID: uuid.New(), Code: "GHOST", Sprints: 6, StartDate: time.Now()},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestProjectsGetFiltered() {
	manager := createTestUser(suite.T(), v1.UserEditable{SystemRole: "manager"})
	_ = createTestProject(suite.T(), v1.ProjectEditable{ManagerID: manager.Data.ID, Code: "PHX", Name: "Phoenix", Status: "active"})
	_ = createTestProject(suite.T(), v1.ProjectEditable{ManagerID: manager.Data.ID, Code: "ORD", Name: "Order Pipeline"})
	_ = createTestProject(suite.T(), v1.ProjectEditable{Code: "EXT", Name: "External"})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"By manager", fmt.Sprintf("manager=%s", manager.Data.ID), 2},
		{"By code", "code=PHX", 1},
		{"By status", "status=active", 1},
		{"By status planning", "status=planning", 2},
		{"Search", "search=pipeline", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/projects?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ProjectListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestProjectsUpdate() {
	project := createTestProject(suite.T(), v1.ProjectEditable{Name: "Phoenix"})

	r := test.Request(suite.T(), http.MethodPatch, project.Data.Links.Self, map[string]any{
		"status": "active",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ProjectResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ProjectStatusActive, response.Data.Status)
	assert.Equal(suite.T(), "Phoenix", response.Data.Name)
}

func (suite *TestSuiteStandard) TestProjectsDeleteRemovesDependents() {
	project := createTestProject(suite.T(), v1.ProjectEditable{})
	assignment := createTestAssignment(suite.T(), v1.AssignmentEditable{ProjectID: project.Data.ID, FundedHours: 160})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{AssignmentID: assignment.Data.ID, Hours: 80})

	r := test.Request(suite.T(), http.MethodPost, project.Data.Links.Overrides, v1.OverrideEditable{
		Month: types.NewMonth(2025, time.February),
		Hours: 120,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodDelete, project.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, assignment.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.MonthlyHourOverride{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)
}

// TestProjectOverrides verifies the upsert behavior of the overrides
// subresource. The first write creates, the second updates in place.
func (suite *TestSuiteStandard) TestProjectOverrides() {
	project := createTestProject(suite.T(), v1.ProjectEditable{})

	r := test.Request(suite.T(), http.MethodPost, project.Data.Links.Overrides, v1.OverrideEditable{
		Month: types.NewMonth(2025, time.February),
		Hours: 120,
		Note:  "Short month",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.OverrideResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "2025-02", response.Data.Month)
	assert.Equal(suite.T(), 120, response.Data.Hours)

	// A second write for the same month updates the existing override
	r = test.Request(suite.T(), http.MethodPost, project.Data.Links.Overrides, v1.OverrideEditable{
		Month: types.NewMonth(2025, time.February),
		Hours: 100,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), 100, response.Data.Hours)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.MonthlyHourOverride{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TestSuiteStandard) TestProjectOverridesInvalidHours() {
	project := createTestProject(suite.T(), v1.ProjectEditable{})

	r := test.Request(suite.T(), http.MethodPost, project.Data.Links.Overrides, v1.OverrideEditable{
		Month: types.NewMonth(2025, time.February),
		Hours: 0,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.OverrideResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrOverrideHoursNotPositive.Error(), *response.Error)
}

func (suite *TestSuiteStandard) TestProjectOverridesGetAndDelete() {
	project := createTestProject(suite.T(), v1.ProjectEditable{})

	r := test.Request(suite.T(), http.MethodPost, project.Data.Links.Overrides, v1.OverrideEditable{
		Month: types.NewMonth(2025, time.March),
		Hours: 80,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	tests := []struct {
		name   string
		method string
		month  string
		status int
	}{
		{"Get existing", http.MethodGet, "2025-03", http.StatusOK},
		{"Get missing month", http.MethodGet, "2025-04", http.StatusNotFound},
		{"Get unparseable month", http.MethodGet, "not-a-month", http.StatusBadRequest},
		{"Delete existing", http.MethodDelete, "2025-03", http.StatusNoContent},
		{"Get after delete", http.MethodGet, "2025-03", http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", project.Data.Links.Overrides, tt.month)
			r := test.Request(t, tt.method, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestProjectOverridesList() {
	project := createTestProject(suite.T(), v1.ProjectEditable{})

	for _, month := range []time.Month{time.January, time.February} {
		r := test.Request(suite.T(), http.MethodPost, project.Data.Links.Overrides, v1.OverrideEditable{
			Month: types.NewMonth(2025, month),
			Hours: 100,
		})
		test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
	}

	r := test.Request(suite.T(), http.MethodGet, project.Data.Links.Overrides, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.OverrideListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 2)
}
