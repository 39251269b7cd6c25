package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salesdesk/internal/models"
	"salesdesk/internal/services"
)

type TeamHandler struct {
	Service *services.TeamService
}

func NewTeamHandler(service *services.TeamService) *TeamHandler {
	return &TeamHandler{Service: service}
}

// @Summary      Create a team
// @Tags         Teams
// @Accept       json
// @Produce      json
// @Param        team  body      models.Team  true  "Team"
// @Success      201   {object}  map[string]interface{}
// @Router       /teams [post]
func (h *TeamHandler) Create(c *gin.Context) {
	var team models.Team
	if err := c.ShouldBindJSON(&team); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Service.Create(&team); err != nil {
		failFromErr(c, err)
		return
	}
	created(c, "team created", team)
}

// @Summary      List teams
// @Tags         Teams
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /teams [get]
func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.Service.List()
	if err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, "teams listed", teams)
}

// @Summary      Get one team with roster
// @Tags         Teams
// @Produce      json
// @Param        id  path  int  true  "Team id"
// @Success      200  {object}  map[string]interface{}
// @Router       /teams/{id} [get]
func (h *TeamHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	team, err := h.Service.GetByID(id)
	if err != nil {
		failFromErr(c, err)
		return
	}
	if team == nil {
		fail(c, http.StatusNotFound, "team not found")
		return
	}
	ok(c, "team found", team)
}

// @Summary      Update a team
// @Tags         Teams
// @Accept       json
// @Produce      json
// @Param        id    path  int          true  "Team id"
// @Param        team  body  models.Team  true  "Team"
// @Success      200  {object}  map[string]interface{}
// @Router       /teams/{id} [put]
func (h *TeamHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	var team models.Team
	if err := c.ShouldBindJSON(&team); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	team.ID = id
	if err := h.Service.Update(&team); err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, "team updated", team)
}

// @Summary      Delete a team
// @Tags         Teams
// @Produce      json
// @Param        id  path  int  true  "Team id"
// @Success      200  {object}  map[string]interface{}
// @Router       /teams/{id} [delete]
func (h *TeamHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Service.Delete(id); err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, "team deleted", gin.H{"id": id})
}

type memberRequest struct {
	EmployeeID int64 `json:"employeeId"`
}

// @Summary      Add a member
// @Tags         Teams
// @Accept       json
// @Produce      json
// @Param        id    path  int            true  "Team id"
// @Param        body  body  memberRequest  true  "Employee"
// @Success      200  {object}  map[string]interface{}
// @Router       /teams/{id}/members [post]
func (h *TeamHandler) AddMember(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Service.AddMember(id, req.EmployeeID); err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, "member added", gin.H{"teamId": id, "employeeId": req.EmployeeID})
}

// @Summary      Remove a member
// @Description  The current team lead cannot be removed
// @Tags         Teams
// @Produce      json
// @Param        id          path  int  true  "Team id"
// @Param        employeeId  path  int  true  "Employee id"
// @Success      200  {object}  map[string]interface{}
// @Router       /teams/{id}/members/{employeeId} [delete]
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	employeeID, err := strconv.ParseInt(c.Param("employeeId"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid employee id")
		return
	}
	if err := h.Service.RemoveMember(id, employeeID); err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, "member removed", gin.H{"teamId": id, "employeeId": employeeID})
}
