package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"smartpulse-backend/internal/middleware"
	"smartpulse-backend/internal/models"
	"smartpulse-backend/internal/repository"
)

// ProjectHandler serves the admin's project-assignment CRUD.
type ProjectHandler struct {
	projects *repository.ProjectRepo
}

func NewProjectHandler(projects *repository.ProjectRepo) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.ListByCompany(r.Context(), middleware.GetCompanyID(r.Context()))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch projects", r))
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req models.AssignProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid employee ID", r))
		return
	}
	if req.ProjectName == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Project name is required", r))
		return
	}

	project := &models.ProjectAssignment{
		UserID:      employeeID,
		ProjectName: req.ProjectName,
		Description: req.Description,
	}
	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Due date must be YYYY-MM-DD", r))
			return
		}
		project.DueDate = &due
	}

	if err := h.projects.Create(r.Context(), project); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to assign project", r))
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) Complete(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid project ID", r))
		return
	}

	var req struct {
		GithubLink string `json:"githubLink"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if err := h.projects.Complete(r.Context(), projectID, req.GithubLink); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to complete project", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Project marked complete"})
}

func (h *ProjectHandler) Reject(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid project ID", r))
		return
	}

	if err := h.projects.Reject(r.Context(), projectID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to reject project", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Project rejected"})
}

func (h *ProjectHandler) UpdateDueDate(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid project ID", r))
		return
	}

	var req struct {
		DueDate string `json:"dueDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	due, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Due date must be YYYY-MM-DD", r))
		return
	}

	if err := h.projects.UpdateDueDate(r.Context(), projectID, due); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update due date", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Due date updated"})
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid project ID", r))
		return
	}

	if err := h.projects.Delete(r.Context(), projectID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete project", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Project deleted"})
}
