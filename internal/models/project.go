package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProjectAssigned  = "assigned"
	ProjectCompleted = "completed"
	ProjectRejected  = "rejected"
)

type ProjectAssignment struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	ProjectName string     `json:"projectName"`
	Description string     `json:"projectDescription"`
	Status      string     `json:"status"`
	GithubLink  *string    `json:"githubLink"`
	DueDate     *time.Time `json:"dueDate"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`

	// Populated on joined reads.
	EmployeeName string `json:"employeeName,omitempty"`
}

type AssignProjectRequest struct {
	EmployeeID  string `json:"employeeId"`
	ProjectName string `json:"projectName"`
	DueDate     string `json:"dueDate"`
	Description string `json:"projectDescription"`
}
