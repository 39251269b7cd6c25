package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salesdesk/internal/services"
)

type AttendanceHandler struct {
	Service *services.AttendanceService
}

func NewAttendanceHandler(service *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{Service: service}
}

// @Summary      Check in for the day
// @Tags         Attendance
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Router       /attendance/check-in [post]
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	sess, okSess := getSession(c)
	if !okSess {
		fail(c, http.StatusUnauthorized, "no session")
		return
	}
	att, err := h.Service.CheckIn(sess.EmployeeID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	created(c, "checked in", att)
}

// @Summary      Check out for the day
// @Tags         Attendance
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /attendance/check-out [post]
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	sess, okSess := getSession(c)
	if !okSess {
		fail(c, http.StatusUnauthorized, "no session")
		return
	}
	att, err := h.Service.CheckOut(sess.EmployeeID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, "checked out", att)
}

// @Summary      Day attendance sheet
// @Tags         Attendance
// @Produce      json
// @Param        day  query  string  false  "yyyy-MM-dd, defaults to today"
// @Success      200  {object}  map[string]interface{}
// @Router       /attendance [get]
func (h *AttendanceHandler) ListDay(c *gin.Context) {
	rows, err := h.Service.ListDay(c.Query("day"))
	if err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, "attendance listed", rows)
}
