package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salesdesk/internal/models"
	"salesdesk/internal/services"
)

type LeaveHandler struct {
	Service *services.LeaveService
}

func NewLeaveHandler(service *services.LeaveService) *LeaveHandler {
	return &LeaveHandler{Service: service}
}

// @Summary      Apply for leave
// @Tags         Leaves
// @Accept       json
// @Produce      json
// @Param        leave  body      models.LeaveApplication  true  "Application"
// @Success      201    {object}  map[string]interface{}
// @Router       /leaves [post]
func (h *LeaveHandler) Apply(c *gin.Context) {
	sess, okSess := getSession(c)
	if !okSess {
		fail(c, http.StatusUnauthorized, "no session")
		return
	}
	var leave models.LeaveApplication
	if err := c.ShouldBindJSON(&leave); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Service.Apply(sess, &leave); err != nil {
		failFromErr(c, err)
		return
	}
	created(c, "leave applied", leave)
}

// @Summary      List leave applications
// @Description  HR and Admin see all; everyone else their own
// @Tags         Leaves
// @Produce      json
// @Param        status  query  string  false  "PENDING, APPROVED or REJECTED"
// @Success      200  {object}  map[string]interface{}
// @Router       /leaves [get]
func (h *LeaveHandler) List(c *gin.Context) {
	sess, okSess := getSession(c)
	if !okSess {
		fail(c, http.StatusUnauthorized, "no session")
		return
	}
	var filter models.LeaveFilter
	if raw := c.Query("status"); raw != "" {
		status := models.LeaveStatus(raw)
		filter.Status = &status
	}
	rows, err := h.Service.List(sess, filter)
	if err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, "leaves listed", rows)
}

type reviewRequest struct {
	Status models.LeaveStatus `json:"status"`
}

// @Summary      Review a leave application
// @Description  HR approves or rejects; a decided application never
// @Description  changes again
// @Tags         Leaves
// @Accept       json
// @Produce      json
// @Param        id    path  int            true  "Application id"
// @Param        body  body  reviewRequest  true  "Decision"
// @Success      200  {object}  map[string]interface{}
// @Router       /leaves/{id}/review [put]
func (h *LeaveHandler) Review(c *gin.Context) {
	sess, okSess := getSession(c)
	if !okSess {
		fail(c, http.StatusUnauthorized, "no session")
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	leave, err := h.Service.Review(sess, id, req.Status)
	if err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, "leave reviewed", leave)
}
