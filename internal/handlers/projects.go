// internal/handlers/projects.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ngo-management-api/internal/models"
	"ngo-management-api/internal/store"
)

type ProjectsHandler struct {
	projects store.ProjectStore
	users    store.UserStore
	log      *logrus.Logger
}

func NewProjectsHandler(projects store.ProjectStore, users store.UserStore, log *logrus.Logger) *ProjectsHandler {
	return &ProjectsHandler{projects: projects, users: users, log: log}
}

// GetProjects handles GET /projects.
func (h *ProjectsHandler) GetProjects(c *gin.Context) {
	ctx, cancel := storeCtx(c)
	defer cancel()

	projects, err := h.projects.FindAll(ctx)
	if err != nil {
		respondError(c, h.log, err, "Project not found")
		return
	}

	if err := h.expandManagers(ctx, projects); err != nil {
		respondError(c, h.log, err, "Project not found")
		return
	}

	c.JSON(http.StatusOK, projects)
}

// GetProject handles GET /projects/:id.
func (h *ProjectsHandler) GetProject(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	project, err := h.projects.FindByID(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "Project not found")
		return
	}

	if manager, err := h.users.FindByID(ctx, project.ManagerID); err == nil {
		project.Manager = manager.Ref()
	}

	c.JSON(http.StatusOK, project)
}

// CreateProject handles POST /projects. Requires the projects:manage
// permission; the manager must exist before anything is written.
func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}

	doc, errs := models.ProjectTable.ValidateCreate(body)
	if len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	managerID := doc["managerId"].(primitive.ObjectID)
	manager, err := h.users.FindByID(ctx, managerID)
	if err != nil {
		respondError(c, h.log, err, "Manager not found")
		return
	}

	now := time.Now()
	project := models.Project{
		Name:         doc["name"].(string),
		Description:  doc["description"].(string),
		StartDate:    doc["startDate"].(time.Time),
		EndDate:      doc["endDate"].(time.Time),
		Budget:       doc["budget"].(float64),
		TargetAmount: doc["targetAmount"].(float64),
		ManagerID:    managerID,
		Category:     doc["category"].(string),
		Status:       doc["status"].(string),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.projects.Create(ctx, &project); err != nil {
		respondError(c, h.log, err, "Project not found")
		return
	}

	project.Manager = manager.Ref()
	c.JSON(http.StatusCreated, project)
}

// UpdateProject handles PUT /projects/:id. Cross-field rules run
// against the merged document, so changing only endDate is still
// checked against the stored startDate.
func (h *ProjectsHandler) UpdateProject(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	body, ok := bindBody(c)
	if !ok {
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	project, err := h.projects.FindByID(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "Project not found")
		return
	}

	doc, errs := models.ProjectTable.ValidatePartial(body)
	if len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	if v, ok := doc["managerId"]; ok {
		managerID := v.(primitive.ObjectID)
		if _, err := h.users.FindByID(ctx, managerID); err != nil {
			respondError(c, h.log, err, "Manager not found")
			return
		}
		project.ManagerID = managerID
	}
	if v, ok := doc["name"]; ok {
		project.Name = v.(string)
	}
	if v, ok := doc["description"]; ok {
		project.Description = v.(string)
	}
	if v, ok := doc["startDate"]; ok {
		project.StartDate = v.(time.Time)
	}
	if v, ok := doc["endDate"]; ok {
		project.EndDate = v.(time.Time)
	}
	if v, ok := doc["budget"]; ok {
		project.Budget = v.(float64)
	}
	if v, ok := doc["targetAmount"]; ok {
		project.TargetAmount = v.(float64)
	}
	if v, ok := doc["category"]; ok {
		project.Category = v.(string)
	}
	if v, ok := doc["status"]; ok {
		project.Status = v.(string)
	}
	project.UpdatedAt = time.Now()

	if err := project.Validate(); err != nil {
		respondError(c, h.log, err, "Project not found")
		return
	}

	if err := h.projects.Update(ctx, project); err != nil {
		respondError(c, h.log, err, "Project not found")
		return
	}

	if manager, err := h.users.FindByID(ctx, project.ManagerID); err == nil {
		project.Manager = manager.Ref()
	}
	c.JSON(http.StatusOK, project)
}

// DeleteProject handles DELETE /projects/:id.
func (h *ProjectsHandler) DeleteProject(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	project, err := h.projects.Delete(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "Project not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
		"project": project,
	})
}

// GetProjectsByManager handles GET /projects/manager/:managerId.
func (h *ProjectsHandler) GetProjectsByManager(c *gin.Context) {
	managerID, err := primitive.ObjectIDFromHex(c.Param("managerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid manager ID"})
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	manager, err := h.users.FindByID(ctx, managerID)
	if err != nil {
		respondError(c, h.log, err, "Manager not found")
		return
	}

	projects, err := h.projects.FindByManager(ctx, managerID)
	if err != nil {
		respondError(c, h.log, err, "Project not found")
		return
	}

	ref := manager.Ref()
	for i := range projects {
		projects[i].Manager = ref
	}

	c.JSON(http.StatusOK, projects)
}

func (h *ProjectsHandler) expandManagers(ctx context.Context, projects []models.Project) error {
	refs := map[primitive.ObjectID]*models.UserRef{}
	for i := range projects {
		managerID := projects[i].ManagerID
		ref, ok := refs[managerID]
		if !ok {
			manager, err := h.users.FindByID(ctx, managerID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					refs[managerID] = nil
					continue
				}
				return err
			}
			ref = manager.Ref()
			refs[managerID] = ref
		}
		projects[i].Manager = ref
	}
	return nil
}
