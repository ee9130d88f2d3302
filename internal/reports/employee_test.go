package reports_test

import (
	"time"

	"github.com/staffalloc/backend/internal/models"
	"github.com/staffalloc/backend/internal/reports"
	"github.com/staffalloc/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// timelineFixture creates one employee with allocations on two projects
// across January to March 2025.
func (suite *TestSuiteStandard) timelineFixture() (models.User, models.User) {
	manager := suite.createTestUser(models.User{FirstName: "Maria", LastName: "Krug", SystemRole: models.SystemRoleManager})
	employee := suite.createTestUser(models.User{FirstName: "Clara", LastName: "Weiss", ManagerID: &manager.ID})
	role := suite.createTestRole(models.Role{OwnerID: manager.ID, Name: "Backend Engineer"})

	phoenix := suite.createTestProject(models.Project{ManagerID: manager.ID, Name: "Phoenix"})
	kestrel := suite.createTestProject(models.Project{ManagerID: manager.ID, Name: "Kestrel"})

	one := suite.createTestAssignment(models.Assignment{ProjectID: phoenix.ID, UserID: employee.ID, RoleID: role.ID, FundedHours: 320})
	two := suite.createTestAssignment(models.Assignment{ProjectID: kestrel.ID, UserID: employee.ID, RoleID: role.ID, FundedHours: 160})

	_ = suite.createTestAllocation(models.Allocation{AssignmentID: one.ID, Month: types.NewMonth(2025, time.January), Hours: 100})
	_ = suite.createTestAllocation(models.Allocation{AssignmentID: two.ID, Month: types.NewMonth(2025, time.January), Hours: 60})
	_ = suite.createTestAllocation(models.Allocation{AssignmentID: one.ID, Month: types.NewMonth(2025, time.February), Hours: 160})
	_ = suite.createTestAllocation(models.Allocation{AssignmentID: one.ID, Month: types.NewMonth(2025, time.March), Hours: 80})

	return manager, employee
}

func (suite *TestSuiteStandard) TestEmployeeTimeline() {
	_, employee := suite.timelineFixture()

	timeline, err := reports.EmployeeTimeline(models.DB, employee.ID, nil, nil)
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), "Clara Weiss", timeline.Name)
	require.Len(suite.T(), timeline.Months, 3)

	january := timeline.Months[0]
	assert.Equal(suite.T(), "Jan 2025", january.Label)
	assert.Equal(suite.T(), "2025-01-01", january.Date)
	assert.Equal(suite.T(), 160, january.Hours)
	assert.Equal(suite.T(), 184, january.StandardHours)
	assert.Equal(suite.T(), 86.96, january.FtePct)
	assert.Equal(suite.T(), 24, january.AvailableHours)

	// Project breakdown sorted descending by hours
	require.Len(suite.T(), january.Projects, 2)
	assert.Equal(suite.T(), "Phoenix", january.Projects[0].ProjectName)
	assert.Equal(suite.T(), 100, january.Projects[0].Hours)
	assert.Equal(suite.T(), "Kestrel", january.Projects[1].ProjectName)

	// February has 160 standard hours and a 100% FTE
	february := timeline.Months[1]
	assert.Equal(suite.T(), 100.0, february.FtePct)
	assert.Equal(suite.T(), 0, february.AvailableHours)
}

func (suite *TestSuiteStandard) TestEmployeeTimelineRange() {
	_, employee := suite.timelineFixture()

	from := types.NewMonth(2025, time.February)
	until := types.NewMonth(2025, time.February)

	timeline, err := reports.EmployeeTimeline(models.DB, employee.ID, &from, &until)
	require.Nil(suite.T(), err)

	require.Len(suite.T(), timeline.Months, 1)
	assert.Equal(suite.T(), "Feb 2025", timeline.Months[0].Label)
}

func (suite *TestSuiteStandard) TestManagerRollup() {
	manager, _ := suite.timelineFixture()

	// Another employee with fewer hours, sorted after Clara by name
	other := suite.createTestUser(models.User{FirstName: "Paul", LastName: "Adler", ManagerID: &manager.ID})
	role := suite.createTestRole(models.Role{OwnerID: manager.ID, Name: "Designer"})
	project := suite.createTestProject(models.Project{ManagerID: manager.ID, Name: "Osprey"})
	assignment := suite.createTestAssignment(models.Assignment{ProjectID: project.ID, UserID: other.ID, RoleID: role.ID, FundedHours: 80})
	_ = suite.createTestAllocation(models.Allocation{AssignmentID: assignment.ID, Month: types.NewMonth(2025, time.January), Hours: 40})

	rollup, err := reports.ManagerRollup(models.DB, manager.ID, types.NewMonth(2025, time.January), types.NewMonth(2025, time.February))
	require.Nil(suite.T(), err)

	require.Len(suite.T(), rollup, 2)
	assert.Equal(suite.T(), "Clara Weiss", rollup[0].Name)
	assert.Equal(suite.T(), "Paul Adler", rollup[1].Name)

	assert.Equal(suite.T(), 480, rollup[0].TotalFundedHours)

	// March is outside the requested range
	require.Len(suite.T(), rollup[0].Months, 2)
	assert.Equal(suite.T(), 160, rollup[0].Months[0].Hours)
	assert.Equal(suite.T(), 86.96, rollup[0].Months[0].FtePct)

	require.Len(suite.T(), rollup[1].Months, 1)
	assert.Equal(suite.T(), 40, rollup[1].Months[0].Hours)
}

func (suite *TestSuiteStandard) TestManagerRollupIncludesUnassignedReports() {
	manager, _ := suite.timelineFixture()
	idle := suite.createTestUser(models.User{FirstName: "Ingo", LastName: "Brandt", ManagerID: &manager.ID})

	rollup, err := reports.ManagerRollup(models.DB, manager.ID, types.NewMonth(2025, time.January), types.NewMonth(2025, time.February))
	require.Nil(suite.T(), err)

	require.Len(suite.T(), rollup, 2)
	assert.Equal(suite.T(), idle.ID, rollup[1].UserID)
	assert.Equal(suite.T(), "Ingo Brandt", rollup[1].Name)
	assert.Equal(suite.T(), 0, rollup[1].TotalFundedHours)
	assert.Empty(suite.T(), rollup[1].Months)
}

func (suite *TestSuiteStandard) TestRoleUtilizationReport() {
	manager, _ := suite.timelineFixture()

	entries, err := reports.RoleUtilizationReport(models.DB, types.NewMonth(2025, time.January), &manager.ID)
	require.Nil(suite.T(), err)

	require.Len(suite.T(), entries, 1)
	assert.Equal(suite.T(), "Backend Engineer", entries[0].RoleName)
	assert.Equal(suite.T(), 160, entries[0].AllocatedHours)
	assert.Equal(suite.T(), 480, entries[0].FundedHours)
	assert.Equal(suite.T(), 2, entries[0].AssignmentCount)
	assert.Equal(suite.T(), 86.96, entries[0].FtePct)
}
