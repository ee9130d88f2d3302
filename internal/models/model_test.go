package models_test

import (
	"time"

	"github.com/staffalloc/backend/internal/models"
	"github.com/staffalloc/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestUserEmailNormalized() {
	user := suite.createTestUser(models.User{Email: "  Maria.Krug@Example.Com "})
	assert.Equal(suite.T(), "maria.krug@example.com", user.Email)
	assert.Equal(suite.T(), models.SystemRoleEmployee, user.SystemRole)
}

func (suite *TestSuiteStandard) TestUserEmailUnique() {
	_ = suite.createTestUser(models.User{Email: "maria@example.com"})

	err := models.DB.Create(&models.User{Email: "maria@example.com"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrUserEmailNotUnique)
}

func (suite *TestSuiteStandard) TestRoleNameUniquePerOwner() {
	manager := suite.createTestUser(models.User{SystemRole: models.SystemRoleManager})
	other := suite.createTestUser(models.User{SystemRole: models.SystemRoleManager})
	_ = suite.createTestRole(models.Role{OwnerID: manager.ID, Name: "Backend Engineer"})

	err := models.DB.Create(&models.Role{OwnerID: manager.ID, Name: "Backend Engineer"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrRoleNameNotUnique)

	// The same name is fine for another owner
	err = models.DB.Create(&models.Role{OwnerID: other.ID, Name: "Backend Engineer"}).Error
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestProjectSprintsValidation() {
	manager := suite.createTestUser(models.User{SystemRole: models.SystemRoleManager})

	err := models.DB.Create(&models.Project{ManagerID: manager.ID, Code: "PHX", Sprints: 0}).Error
	assert.ErrorIs(suite.T(), err, models.ErrSprintsNotPositive)
}

func (suite *TestSuiteStandard) TestProjectDefaultEnd() {
	manager := suite.createTestUser(models.User{SystemRole: models.SystemRoleManager})
	project := suite.createTestProject(models.Project{
		ManagerID: manager.ID,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Sprints:   6,
	})

	assert.Equal(suite.T(), time.Date(2025, 3, 26, 0, 0, 0, 0, time.UTC), project.DefaultEnd())
}

func (suite *TestSuiteStandard) TestProjectManagerMustExist() {
	err := models.DB.Create(&models.Project{Code: "PHX", Sprints: 6}).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestAssignmentValidation() {
	f := suite.createAggregateFixture()

	err := models.DB.Create(&models.Assignment{ProjectID: f.projectA.ID, UserID: f.employeeB.ID, RoleID: f.roleA.ID, FundedHours: -1}).Error
	assert.ErrorIs(suite.T(), err, models.ErrFundedHoursNegative)

	// One assignment per project and user pair
	err = models.DB.Create(&models.Assignment{ProjectID: f.projectA.ID, UserID: f.employeeA.ID, RoleID: f.roleA.ID, FundedHours: 40}).Error
	assert.ErrorIs(suite.T(), err, models.ErrAssignmentNotUnique)
}

func (suite *TestSuiteStandard) TestAllocationValidation() {
	f := suite.createAggregateFixture()

	err := models.DB.Create(&models.Allocation{AssignmentID: f.assignmentA.ID, Month: types.NewMonth(2025, time.March), Hours: -4}).Error
	assert.ErrorIs(suite.T(), err, models.ErrAllocatedHoursNegative)

	err = models.DB.Create(&models.Allocation{AssignmentID: f.assignmentA.ID, Month: types.NewMonth(2025, time.January), Hours: 8}).Error
	assert.ErrorIs(suite.T(), err, models.ErrAllocationMonthNotUnique)
}

func (suite *TestSuiteStandard) TestOverrideValidation() {
	f := suite.createAggregateFixture()

	err := models.DB.Create(&models.MonthlyHourOverride{ProjectID: f.projectA.ID, Month: types.NewMonth(2025, time.December), Hours: 0}).Error
	assert.ErrorIs(suite.T(), err, models.ErrOverrideHoursNotPositive)

	_ = suite.createTestOverride(models.MonthlyHourOverride{ProjectID: f.projectA.ID, Month: types.NewMonth(2025, time.December), Hours: 96})

	overrides, err := models.OverridesForProject(models.DB, f.projectA.ID)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 96, overrides[types.NewMonth(2025, time.December)])
}

func (suite *TestSuiteStandard) TestProjectDeleteCascades() {
	f := suite.createAggregateFixture()

	err := models.DB.Delete(&f.projectA).Error
	require.Nil(suite.T(), err)

	var assignments int64
	models.DB.Model(&models.Assignment{}).Where("project_id = ?", f.projectA.ID).Count(&assignments)
	assert.Equal(suite.T(), int64(0), assignments)

	var allocations int64
	models.DB.Model(&models.Allocation{}).Where("assignment_id = ?", f.assignmentA.ID).Count(&allocations)
	assert.Equal(suite.T(), int64(0), allocations)

	// The other manager's project is untouched
	var remaining int64
	models.DB.Model(&models.Allocation{}).Count(&remaining)
	assert.Equal(suite.T(), int64(1), remaining)
}

func (suite *TestSuiteStandard) TestAssignmentDeleteCascades() {
	f := suite.createAggregateFixture()

	err := models.DB.Delete(&f.assignmentA).Error
	require.Nil(suite.T(), err)

	var allocations int64
	models.DB.Model(&models.Allocation{}).Where("assignment_id = ?", f.assignmentA.ID).Count(&allocations)
	assert.Equal(suite.T(), int64(0), allocations)
}

func (suite *TestSuiteStandard) TestRagDocumentUpsert() {
	f := suite.createAggregateFixture()

	doc, err := models.UpsertRagDocument(models.DB, models.RagDocument{
		SourceEntity: "project",
		SourceID:     f.projectA.ID,
		Title:        "Project Phoenix",
		Content:      "Phoenix is staffed with one backend engineer.",
	})
	require.Nil(suite.T(), err)

	updated, err := models.UpsertRagDocument(models.DB, models.RagDocument{
		SourceEntity: "project",
		SourceID:     f.projectA.ID,
		Title:        "Project Phoenix",
		Content:      "Phoenix is fully staffed.",
	})
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), doc.ID, updated.ID)

	var count int64
	models.DB.Model(&models.RagDocument{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}
