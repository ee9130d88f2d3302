package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/staffalloc/backend/internal/controllers/v1"
	"github.com/staffalloc/backend/internal/reporting"
	"github.com/staffalloc/backend/internal/types"
	"github.com/staffalloc/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestReportsOptions() {
	paths := []string{
		"portfolio",
		fmt.Sprintf("projects/%s", uuid.New()),
		fmt.Sprintf("employees/%s", uuid.New()),
		"manager-allocations",
		"role-utilization",
	}

	for _, path := range paths {
		suite.T().Run(path, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, fmt.Sprintf("http://example.com/v1/reports/%s", path), "")
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			assert.Equal(t, "OPTIONS, GET", r.Header().Get("allow"))
		})
	}
}

// TestReportsPortfolio verifies the portfolio totals and the
// over-allocation and bench flags for the current month.
func (suite *TestSuiteStandard) TestReportsPortfolio() {
	manager := createTestUser(suite.T(), v1.UserEditable{SystemRole: "manager"})
	project := createTestProject(suite.T(), v1.ProjectEditable{ManagerID: manager.Data.ID})
	role := createTestRole(suite.T(), v1.RoleEditable{})

	busy := createTestUser(suite.T(), v1.UserEditable{ManagerID: &manager.Data.ID})
	bench := createTestUser(suite.T(), v1.UserEditable{ManagerID: &manager.Data.ID})

	overbooked := createTestAssignment(suite.T(), v1.AssignmentEditable{ProjectID: project.Data.ID, UserID: busy.Data.ID, RoleID: role.Data.ID, FundedHours: 400})
	_ = createTestAssignment(suite.T(), v1.AssignmentEditable{ProjectID: project.Data.ID, UserID: bench.Data.ID, RoleID: role.Data.ID, FundedHours: 200})

	// An unrelated manager's project must not show up in the scoped report
	_ = createTestAssignment(suite.T(), v1.AssignmentEditable{FundedHours: 80})

	current := types.MonthOf(time.Now())
	standard := reporting.StandardMonthHours(current)
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{AssignmentID: overbooked.Data.ID, Month: current, Hours: standard + 8})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/reports/portfolio?manager=%s", manager.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.PortfolioResponse
	test.DecodeResponse(suite.T(), &r, &response)

	report := response.Data
	assert.Equal(suite.T(), int64(1), report.TotalProjects)
	assert.Equal(suite.T(), 2, report.TotalEmployees)
	assert.Equal(suite.T(), 600, report.TotalFundedHours)
	assert.Equal(suite.T(), standard+8, report.TotalAllocatedHours)

	suite.Require().Len(report.OverAllocated, 1)
	assert.Equal(suite.T(), busy.Data.ID, report.OverAllocated[0].UserID)
	assert.Equal(suite.T(), standard+8, report.OverAllocated[0].Hours)
	assert.Equal(suite.T(), 0, report.OverAllocated[0].AvailableHours)

	suite.Require().Len(report.Bench, 1)
	assert.Equal(suite.T(), bench.Data.ID, report.Bench[0].UserID)
	assert.Equal(suite.T(), standard, report.Bench[0].AvailableHours)
}

func (suite *TestSuiteStandard) TestReportsPortfolioUnscoped() {
	_ = createTestAssignment(suite.T(), v1.AssignmentEditable{FundedHours: 80})
	_ = createTestAssignment(suite.T(), v1.AssignmentEditable{FundedHours: 120})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports/portfolio", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.PortfolioResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), int64(2), response.Data.TotalProjects)
	assert.Equal(suite.T(), 2, response.Data.TotalEmployees)
	assert.Equal(suite.T(), 200, response.Data.TotalFundedHours)
}

func (suite *TestSuiteStandard) TestReportsProjectDashboard() {
	project := createTestProject(suite.T(), v1.ProjectEditable{})
	assignment := createTestAssignment(suite.T(), v1.AssignmentEditable{ProjectID: project.Data.ID, FundedHours: 300})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{AssignmentID: assignment.Data.ID, Month: types.NewMonth(2025, time.January), Hours: 120})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{AssignmentID: assignment.Data.ID, Month: types.NewMonth(2025, time.February), Hours: 100})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/reports/projects/%s", project.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ProjectDashboardResponse
	test.DecodeResponse(suite.T(), &r, &response)

	report := response.Data
	assert.Equal(suite.T(), project.Data.ID, report.ProjectID)
	assert.Equal(suite.T(), 300, report.TotalFundedHours)
	assert.Equal(suite.T(), 220, report.TotalAllocatedHours)
	assert.Equal(suite.T(), 73.33, report.UtilizationPct)

	// The window spans the months with allocations
	assert.Len(suite.T(), report.BurnDown, 2)
}

// TestReportsProjectDashboardNoAllocations verifies the fallback window
// from the start date to the estimated project end.
func (suite *TestSuiteStandard) TestReportsProjectDashboardNoAllocations() {
	project := createTestProject(suite.T(), v1.ProjectEditable{})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/reports/projects/%s", project.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ProjectDashboardResponse
	test.DecodeResponse(suite.T(), &r, &response)

	// Six sprints from 2025-01-06 end in March
	assert.Len(suite.T(), response.Data.BurnDown, 3)
	assert.Equal(suite.T(), float64(0), response.Data.UtilizationPct)
}

func (suite *TestSuiteStandard) TestReportsProjectDashboardErrors() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No project with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/reports/projects/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestReportsEmployeeTimeline() {
	user := createTestUser(suite.T(), v1.UserEditable{})
	first := createTestAssignment(suite.T(), v1.AssignmentEditable{UserID: user.Data.ID, FundedHours: 300})
	second := createTestAssignment(suite.T(), v1.AssignmentEditable{UserID: user.Data.ID, FundedHours: 100})

	_ = createTestAllocation(suite.T(), v1.AllocationEditable{AssignmentID: first.Data.ID, Month: types.NewMonth(2025, time.January), Hours: 100})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{AssignmentID: second.Data.ID, Month: types.NewMonth(2025, time.January), Hours: 60})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{AssignmentID: first.Data.ID, Month: types.NewMonth(2025, time.February), Hours: 80})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/reports/employees/%s", user.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.EmployeeTimelineResponse
	test.DecodeResponse(suite.T(), &r, &response)

	report := response.Data
	assert.Equal(suite.T(), user.Data.ID, report.UserID)
	suite.Require().Len(report.Months, 2)

	january := report.Months[0]
	assert.Equal(suite.T(), "Jan 2025", january.Label)
	assert.Equal(suite.T(), "2025-01-01", january.Date)
	assert.Equal(suite.T(), 160, january.Hours)

	// Project breakdowns are sorted by hours, descending
	suite.Require().Len(january.Projects, 2)
	assert.Equal(suite.T(), 100, january.Projects[0].Hours)
	assert.Equal(suite.T(), 60, january.Projects[1].Hours)
}

func (suite *TestSuiteStandard) TestReportsEmployeeTimelineRange() {
	user := createTestUser(suite.T(), v1.UserEditable{})
	assignment := createTestAssignment(suite.T(), v1.AssignmentEditable{UserID: user.Data.ID, FundedHours: 300})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{AssignmentID: assignment.Data.ID, Month: types.NewMonth(2025, time.January), Hours: 100})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{AssignmentID: assignment.Data.ID, Month: types.NewMonth(2025, time.February), Hours: 80})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{AssignmentID: assignment.Data.ID, Month: types.NewMonth(2025, time.March), Hours: 40})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/reports/employees/%s?from=2025-02&until=2025-02", user.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.EmployeeTimelineResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data.Months, 1)
	assert.Equal(suite.T(), 80, response.Data.Months[0].Hours)
}

func (suite *TestSuiteStandard) TestReportsEmployeeTimelineUnknownUser() {
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/reports/employees/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestReportsManagerAllocations() {
	manager := createTestUser(suite.T(), v1.UserEditable{SystemRole: "manager"})
	project := createTestProject(suite.T(), v1.ProjectEditable{ManagerID: manager.Data.ID})
	employee := createTestUser(suite.T(), v1.UserEditable{ManagerID: &manager.Data.ID})
	assignment := createTestAssignment(suite.T(), v1.AssignmentEditable{ProjectID: project.Data.ID, UserID: employee.Data.ID, FundedHours: 480})

	_ = createTestAllocation(suite.T(), v1.AllocationEditable{AssignmentID: assignment.Data.ID, Month: types.NewMonth(2025, time.January), Hours: 100})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{AssignmentID: assignment.Data.ID, Month: types.NewMonth(2025, time.February), Hours: 50})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{AssignmentID: assignment.Data.ID, Month: types.NewMonth(2025, time.June), Hours: 40})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/reports/manager-allocations?manager=%s&from=2025-01&until=2025-03", manager.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ManagerRollupResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 1)
	assert.Equal(suite.T(), 480, response.Data[0].TotalFundedHours)

	// June is outside of the requested range
	suite.Require().Len(response.Data[0].Months, 2)
	assert.Equal(suite.T(), 100, response.Data[0].Months[0].Hours)
	assert.Equal(suite.T(), 50, response.Data[0].Months[1].Hours)
}

func (suite *TestSuiteStandard) TestReportsManagerAllocationsErrors() {
	manager := createTestUser(suite.T(), v1.UserEditable{SystemRole: "manager"})

	tests := []struct {
		name  string
		query string
		err   string
	}{
		{"Missing manager", "from=2025-01&until=2025-03", "the manager query parameter must be set"},
		{"Missing range", fmt.Sprintf("manager=%s", manager.Data.ID), "the from and until query parameters must be set"},
		{"Missing until", fmt.Sprintf("manager=%s&from=2025-01", manager.Data.ID), "the from and until query parameters must be set"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/reports/manager-allocations?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.ManagerRollupResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.err, *response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestReportsRoleUtilization() {
	role := createTestRole(suite.T(), v1.RoleEditable{})
	first := createTestAssignment(suite.T(), v1.AssignmentEditable{RoleID: role.Data.ID, FundedHours: 300})
	second := createTestAssignment(suite.T(), v1.AssignmentEditable{RoleID: role.Data.ID, FundedHours: 200})

	_ = createTestAllocation(suite.T(), v1.AllocationEditable{AssignmentID: first.Data.ID, Month: types.NewMonth(2025, time.January), Hours: 120})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{AssignmentID: second.Data.ID, Month: types.NewMonth(2025, time.January), Hours: 40})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{AssignmentID: first.Data.ID, Month: types.NewMonth(2025, time.February), Hours: 80})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports/role-utilization?month=2025-01", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.RoleUtilizationResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 1)
	entry := response.Data[0]
	assert.Equal(suite.T(), role.Data.ID, entry.RoleID)
	assert.Equal(suite.T(), 160, entry.AllocatedHours)
	assert.Equal(suite.T(), 500, entry.FundedHours)
	assert.Equal(suite.T(), 2, entry.AssignmentCount)
}

func (suite *TestSuiteStandard) TestReportsRoleUtilizationMissingMonth() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports/role-utilization", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.RoleUtilizationResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "the month query parameter must be set", *response.Error)
}
