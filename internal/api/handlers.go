package api

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"task-planner/internal/domain"
	"task-planner/internal/errors"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// generateSubtasks hands the raw body to the regeneration pipeline, which validates it
func (s *Server) generateSubtasks(c *gin.Context) {
	const op = "api.generateSubtasks"

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, int64(s.cfg.MaxBodyBytes))
	body, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			respondError(c, op, errors.NewValidationError(
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), err))
			return
		}
		respondError(c, op, errors.NewValidationError("failed to read request body", err))
		return
	}

	result, err := s.services.RegenerationService.Regenerate(c.Request.Context(), UserFromContext(c), body)
	if err != nil {
		respondError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) logout(c *gin.Context) {
	const op = "api.logout"

	if err := s.services.AuthService.Revoke(c.Request.Context(), s.auth.Token(c.Request)); err != nil {
		respondError(c, op, err)
		return
	}

	log.WithFields(log.Fields{"operation": op, "user_id": UserFromContext(c)}).Info("session revoked")
	c.SetCookie(s.cookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

func (s *Server) createProject(c *gin.Context) {
	const op = "api.createProject"

	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, op, err)
		return
	}

	project, err := s.services.ProjectService.CreateProject(c.Request.Context(), UserFromContext(c), req.Name, req.Description)
	if err != nil {
		respondError(c, op, err)
		return
	}

	c.JSON(http.StatusCreated, newProjectView(*project))
}

func (s *Server) listProjects(c *gin.Context) {
	const op = "api.listProjects"

	projects, err := s.services.ProjectService.ListProjects(c.Request.Context(), UserFromContext(c))
	if err != nil {
		respondError(c, op, err)
		return
	}

	views := make([]projectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, newProjectView(p))
	}
	c.JSON(http.StatusOK, gin.H{"projects": views})
}

func (s *Server) addMember(c *gin.Context) {
	const op = "api.addMember"

	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, op, err)
		return
	}

	member, err := s.services.ProjectService.AddMember(c.Request.Context(), UserFromContext(c),
		c.Param("projectID"), req.UserID, req.Role)
	if err != nil {
		respondError(c, op, err)
		return
	}

	c.JSON(http.StatusCreated, newMemberView(*member))
}

func (s *Server) listMembers(c *gin.Context) {
	const op = "api.listMembers"

	members, err := s.services.ProjectService.ListMembers(c.Request.Context(), UserFromContext(c), c.Param("projectID"))
	if err != nil {
		respondError(c, op, err)
		return
	}

	views := make([]memberView, 0, len(members))
	for _, m := range members {
		views = append(views, newMemberView(m))
	}
	c.JSON(http.StatusOK, gin.H{"members": views})
}

func (s *Server) createTask(c *gin.Context) {
	const op = "api.createTask"

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, op, err)
		return
	}

	task := domain.Task{
		ProjectID:     c.Param("projectID"),
		ParentTaskID:  req.ParentTaskID,
		Title:         req.Title,
		Description:   req.Description,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Status:        req.Status,
		HierarchyType: req.HierarchyType,
	}

	created, err := s.services.TaskService.CreateTask(c.Request.Context(), UserFromContext(c), task)
	if err != nil {
		respondError(c, op, err)
		return
	}

	c.JSON(http.StatusCreated, newTaskView(*created))
}

func (s *Server) listSubtasks(c *gin.Context) {
	const op = "api.listSubtasks"

	records, err := s.services.TaskService.ListSubtasks(c.Request.Context(), UserFromContext(c),
		c.Param("projectID"), c.Param("taskID"))
	if err != nil {
		respondError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subtasks": records})
}

// confirmSubtasks persists a proposal and answers with the stored list
func (s *Server) confirmSubtasks(c *gin.Context) {
	const op = "api.confirmSubtasks"

	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, op, err)
		return
	}

	ctx := c.Request.Context()
	callerID := UserFromContext(c)
	projectID, taskID := c.Param("projectID"), c.Param("taskID")

	if err := s.services.TaskService.ConfirmSubtasks(ctx, callerID, projectID, taskID, req.Subtasks); err != nil {
		respondError(c, op, err)
		return
	}

	records, err := s.services.TaskService.ListSubtasks(ctx, callerID, projectID, taskID)
	if err != nil {
		respondError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subtasks": records})
}

func (s *Server) updateStatus(c *gin.Context) {
	const op = "api.updateStatus"

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, op, err)
		return
	}

	err := s.services.TaskService.UpdateStatus(c.Request.Context(), UserFromContext(c),
		c.Param("projectID"), c.Param("taskID"), req.Status)
	if err != nil {
		respondError(c, op, err)
		return
	}

	c.Status(http.StatusNoContent)
}
