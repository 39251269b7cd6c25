package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salesdesk/internal/authz"
	"salesdesk/internal/pdf"
	"salesdesk/internal/services"
)

type AnalyticsHandler struct {
	Service *services.AnalyticsService
	Teams   *services.TeamService
	Reports pdf.Generator
}

func NewAnalyticsHandler(service *services.AnalyticsService, teams *services.TeamService, reports pdf.Generator) *AnalyticsHandler {
	return &AnalyticsHandler{Service: service, Teams: teams, Reports: reports}
}

func parseWindow(c *gin.Context) (services.DateRange, bool) {
	rng, err := services.ParseRange(c.Query("fromDate"), c.Query("toDate"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid date range: both fromDate and toDate are required")
		return services.DateRange{}, false
	}
	return rng, true
}

// @Summary      Self analytics
// @Description  The acting employee's own rollup for the window
// @Tags         Analytics
// @Produce      json
// @Param        fromDate  query  string  true  "yyyy-MM-dd"
// @Param        toDate    query  string  true  "yyyy-MM-dd"
// @Success      200  {object}  map[string]interface{}
// @Router       /lead-analytics/self/analytics [get]
func (h *AnalyticsHandler) Self(c *gin.Context) {
	sess, okSess := getSession(c)
	if !okSess {
		fail(c, http.StatusUnauthorized, "no session")
		return
	}
	if !authz.CanViewSelfAnalytics(sess) {
		fail(c, http.StatusForbidden, "forbidden")
		return
	}
	rng, okRng := parseWindow(c)
	if !okRng {
		return
	}
	agg, err := h.Service.Self(rng, sess.EmployeeID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, "analytics computed", agg)
}

// @Summary      Team analytics
// @Description  The acting employee's team rollup, nested by member
// @Tags         Analytics
// @Produce      json
// @Param        fromDate  query  string  true  "yyyy-MM-dd"
// @Param        toDate    query  string  true  "yyyy-MM-dd"
// @Success      200  {object}  map[string]interface{}
// @Router       /lead-analytics/team/analytics [get]
func (h *AnalyticsHandler) Team(c *gin.Context) {
	sess, okSess := getSession(c)
	if !okSess {
		fail(c, http.StatusUnauthorized, "no session")
		return
	}
	if !authz.CanViewTeamAnalytics(sess) || sess.TeamID == 0 {
		fail(c, http.StatusForbidden, "forbidden")
		return
	}
	rng, okRng := parseWindow(c)
	if !okRng {
		return
	}
	team, err := h.Teams.GetByID(sess.TeamID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	if team == nil {
		fail(c, http.StatusNotFound, "team not found")
		return
	}
	agg, err := h.Service.Team(rng, *team, team.Members)
	if err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, "analytics computed", agg)
}

// @Summary      Admin analytics
// @Description  Global rollup with per-team trees
// @Tags         Analytics
// @Produce      json
// @Param        fromDate  query  string  true  "yyyy-MM-dd"
// @Param        toDate    query  string  true  "yyyy-MM-dd"
// @Success      200  {object}  map[string]interface{}
// @Router       /lead-analytics/admin/analytics [get]
func (h *AnalyticsHandler) Admin(c *gin.Context) {
	rng, okRng := parseWindow(c)
	if !okRng {
		return
	}
	agg, err := h.Service.Global(rng)
	if err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, "analytics computed", agg)
}

// @Summary      Ops analytics
// @Description  Rollup over the ops status slice only
// @Tags         Analytics
// @Produce      json
// @Param        fromDate  query  string  true  "yyyy-MM-dd"
// @Param        toDate    query  string  true  "yyyy-MM-dd"
// @Success      200  {object}  map[string]interface{}
// @Router       /lead-analytics/ops/analytics [get]
func (h *AnalyticsHandler) Ops(c *gin.Context) {
	rng, okRng := parseWindow(c)
	if !okRng {
		return
	}
	agg, err := h.Service.Ops(rng)
	if err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, "analytics computed", agg)
}

// @Summary      Export admin analytics as PDF
// @Tags         Analytics
// @Produce      json
// @Param        fromDate  query  string  true  "yyyy-MM-dd"
// @Param        toDate    query  string  true  "yyyy-MM-dd"
// @Success      200  {object}  map[string]interface{}
// @Router       /lead-analytics/admin/analytics/export [get]
func (h *AnalyticsHandler) Export(c *gin.Context) {
	rng, okRng := parseWindow(c)
	if !okRng {
		return
	}
	agg, err := h.Service.Global(rng)
	if err != nil {
		failFromErr(c, err)
		return
	}
	path, err := h.Reports.GenerateAnalyticsReport(agg)
	if err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, "report generated", gin.H{"path": path})
}
