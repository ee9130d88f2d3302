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

func (suite *TestSuiteStandard) TestAllocationsOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No allocation with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Allocation exists", createTestAllocation(suite.T(), v1.AllocationEditable{Hours: 80}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/allocations", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestAllocationsCreate() {
	allocation := createTestAllocation(suite.T(), v1.AllocationEditable{Month: types.NewMonth(2025, time.March), Hours: 140})

	assert.Equal(suite.T(), 140, allocation.Data.Hours)
	assert.True(suite.T(), allocation.Data.Month.Equal(types.NewMonth(2025, time.March)))
	assert.NotEmpty(suite.T(), allocation.Data.Links.Assignment)
}

func (suite *TestSuiteStandard) TestAllocationsCreateNegativeHours() {
	assignment := createTestAssignment(suite.T(), v1.AssignmentEditable{FundedHours: 100})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/allocations", []v1.AllocationEditable{
		{AssignmentID: assignment.Data.ID, Month: types.NewMonth(2025, time.January), Hours: -8},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.AllocationCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrAllocatedHoursNegative.Error(), *response.Data[0].Error)
}

// TestAllocationsCreateDuplicateMonth verifies that an assignment can
// only have one allocation row per month.
func (suite *TestSuiteStandard) TestAllocationsCreateDuplicateMonth() {
	allocation := createTestAllocation(suite.T(), v1.AllocationEditable{Hours: 80})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/allocations", []v1.AllocationEditable{
		{AssignmentID: allocation.Data.AssignmentID, Month: allocation.Data.Month, Hours: 120},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.AllocationCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrAllocationMonthNotUnique.Error(), *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestAllocationsCreateUnknownAssignment() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/allocations", []v1.AllocationEditable{
		{AssignmentID: uuid.New(), Month: types.NewMonth(2025, time.January), Hours: 40},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAllocationsGetFiltered() {
	assignment := createTestAssignment(suite.T(), v1.AssignmentEditable{FundedHours: 480})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{AssignmentID: assignment.Data.ID, Month: types.NewMonth(2025, time.January), Hours: 120})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{AssignmentID: assignment.Data.ID, Month: types.NewMonth(2025, time.February), Hours: 160})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{Month: types.NewMonth(2025, time.January), Hours: 40})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"By assignment", fmt.Sprintf("assignment=%s", assignment.Data.ID), 2},
		{"By month", "month=2025-01", 2},
		{"By assignment and month", fmt.Sprintf("assignment=%s&month=2025-02", assignment.Data.ID), 1},
		{"By month without allocations", "month=2024-06", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/allocations?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.AllocationListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestAllocationsGetInvalidMonth() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/allocations?month=NotAMonth", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAllocationsUpdate() {
	allocation := createTestAllocation(suite.T(), v1.AllocationEditable{Hours: 80})

	r := test.Request(suite.T(), http.MethodPatch, allocation.Data.Links.Self, map[string]any{
		"hours": 96,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AllocationResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), 96, response.Data.Hours)
}

func (suite *TestSuiteStandard) TestAllocationsDelete() {
	allocation := createTestAllocation(suite.T(), v1.AllocationEditable{Hours: 80})

	r := test.Request(suite.T(), http.MethodDelete, allocation.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, allocation.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
