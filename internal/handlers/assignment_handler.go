package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salesdesk/internal/services"
)

type AssignmentHandler struct {
	Service *services.AssignmentService
}

func NewAssignmentHandler(service *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{Service: service}
}

type leadIDsRequest struct {
	LeadIDs []int64 `json:"leadIds"`
}

type changeStateRequest struct {
	State string `json:"state"`
}

// @Summary      Assign leads to a team
// @Description  Only unassigned leads transition; the returned count
// @Description  is authoritative and may be lower than requested
// @Tags         Assignments
// @Accept       json
// @Produce      json
// @Param        teamId  path  int             true  "Team id"
// @Param        body    body  leadIDsRequest  true  "Lead ids"
// @Success      200  {object}  map[string]interface{}
// @Router       /team-assignments/teams/{teamId}/leads [put]
func (h *AssignmentHandler) AssignToTeam(c *gin.Context) {
	sess, okSess := getSession(c)
	if !okSess {
		fail(c, http.StatusUnauthorized, "no session")
		return
	}
	teamID, err := strconv.ParseInt(c.Param("teamId"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid team id")
		return
	}
	var req leadIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	count, err := h.Service.AssignToTeam(sess, req.LeadIDs, teamID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, "leads assigned to team", gin.H{"count": count})
}

// @Summary      Assign leads to a member
// @Tags         Assignments
// @Accept       json
// @Produce      json
// @Param        memberId  path  int             true  "Member id"
// @Param        body      body  leadIDsRequest  true  "Lead ids"
// @Success      200  {object}  map[string]interface{}
// @Router       /team-assignments/members/{memberId}/leads [put]
func (h *AssignmentHandler) AssignToMember(c *gin.Context) {
	sess, okSess := getSession(c)
	if !okSess {
		fail(c, http.StatusUnauthorized, "no session")
		return
	}
	memberID, err := strconv.ParseInt(c.Param("memberId"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid member id")
		return
	}
	var req leadIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	count, err := h.Service.AssignToMember(sess, req.LeadIDs, memberID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, "leads assigned to member", gin.H{"count": count})
}

// @Summary      Change a lead's status
// @Description  The new status must be inside the acting role's
// @Description  visible-status projection
// @Tags         Assignments
// @Accept       json
// @Produce      json
// @Param        leadId  path  int                 true  "Lead id"
// @Param        body    body  changeStateRequest  true  "New status"
// @Success      200  {object}  map[string]interface{}
// @Router       /team-assignments/lead/change-lead-state/{leadId} [put]
func (h *AssignmentHandler) ChangeState(c *gin.Context) {
	sess, okSess := getSession(c)
	if !okSess {
		fail(c, http.StatusUnauthorized, "no session")
		return
	}
	leadID, err := strconv.ParseInt(c.Param("leadId"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid lead id")
		return
	}
	var req changeStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	count, err := h.Service.ChangeStatus(sess, leadID, req.State)
	if err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, "lead status changed", gin.H{"count": count})
}

// @Summary      Unassign a lead
// @Description  Returns the lead to the unassigned pool, clearing
// @Description  team, handler and the assignment timestamp
// @Tags         Assignments
// @Produce      json
// @Param        uuid  path  string  true  "Lead uuid"
// @Success      200  {object}  map[string]interface{}
// @Router       /team-assignments/lead/unassign/{uuid} [put]
func (h *AssignmentHandler) Unassign(c *gin.Context) {
	sess, okSess := getSession(c)
	if !okSess {
		fail(c, http.StatusUnauthorized, "no session")
		return
	}
	u, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid uuid")
		return
	}
	count, err := h.Service.Unassign(sess, u)
	if err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, "lead unassigned", gin.H{"count": count})
}
