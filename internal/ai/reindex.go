package ai

import (
	"fmt"
	"strings"

	"github.com/staffalloc/backend/internal/models"
	"github.com/staffalloc/backend/internal/reports"
	"gorm.io/gorm"
)

// Reindex re-renders the retrieval corpus from the current staffing
// data. It replaces the cached summary of every project and every user
// that has assignments.
func Reindex(db *gorm.DB) (int, error) {
	count := 0

	var projects []models.Project
	err := db.Find(&projects).Error
	if err != nil {
		return 0, err
	}

	for _, project := range projects {
		content, err := renderProjectSummary(db, project)
		if err != nil {
			return count, err
		}

		_, err = models.UpsertRagDocument(db, models.RagDocument{
			SourceEntity: "project",
			SourceID:     project.ID,
			Title:        fmt.Sprintf("Project %s (%s)", project.Name, project.Code),
			Content:      content,
		})
		if err != nil {
			return count, err
		}

		count++
	}

	roster, err := models.UserFundingTotals(db, nil)
	if err != nil {
		return count, err
	}

	for _, employee := range roster {
		content, err := renderUserSummary(db, employee)
		if err != nil {
			return count, err
		}

		_, err = models.UpsertRagDocument(db, models.RagDocument{
			SourceEntity: "user",
			SourceID:     employee.UserID,
			Title:        employee.UserName,
			Content:      content,
		})
		if err != nil {
			return count, err
		}

		count++
	}

	return count, nil
}

func renderProjectSummary(db *gorm.DB, project models.Project) (string, error) {
	dashboard, err := reports.ProjectDashboard(db, project.ID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Project %s (code %s) is %s and starts on %s.\n", project.Name, project.Code, project.Status, project.StartDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "It has %d funded hours, %d allocated hours and a utilization of %.2f%%.\n", dashboard.TotalFundedHours, dashboard.TotalAllocatedHours, dashboard.UtilizationPct)

	var assignments []models.Assignment
	err = db.Preload("User").Preload("Role").Where(models.Assignment{ProjectID: project.ID}).Find(&assignments).Error
	if err != nil {
		return "", err
	}

	for _, assignment := range assignments {
		fmt.Fprintf(&b, "%s works on it as %s with %d funded hours.\n", assignment.User.Name(), assignment.Role.Name, assignment.FundedHours)
	}

	return b.String(), nil
}

func renderUserSummary(db *gorm.DB, employee models.UserFundingRow) (string, error) {
	timeline, err := reports.EmployeeTimeline(db, employee.UserID, nil, nil)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s has %d funded hours across all assignments.\n", employee.UserName, employee.FundedHours)

	for _, month := range timeline.Months {
		projects := make([]string, 0, len(month.Projects))
		for _, project := range month.Projects {
			projects = append(projects, fmt.Sprintf("%s (%dh)", project.ProjectName, project.Hours))
		}

		fmt.Fprintf(&b, "In %s they are allocated %d hours (%.2f%% FTE) on %s.\n", month.Label, month.Hours, month.FtePct, strings.Join(projects, ", "))
	}

	return b.String(), nil
}
