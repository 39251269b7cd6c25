package routes

import (
	"github.com/gin-gonic/gin"

	"salesdesk/internal/authz"
	"salesdesk/internal/handlers"
	"salesdesk/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	sessionMiddleware gin.HandlerFunc,
	authHandler *handlers.AuthHandler,
	leadHandler *handlers.LeadHandler,
	assignmentHandler *handlers.AssignmentHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	teamHandler *handlers.TeamHandler,
	attendanceHandler *handlers.AttendanceHandler,
	leaveHandler *handlers.LeaveHandler,
) *gin.Engine {

	// ---- public
	r.POST("/login", authHandler.Login)

	// ---- protected
	r.Use(middleware.AuthMiddleware(jwtSecret))
	r.Use(sessionMiddleware)

	r.GET("/check/auth/role", authHandler.Role)

	// LEADS
	leads := r.Group("/leads")
	{
		leads.POST("/", leadHandler.Create)
		leads.GET("/", leadHandler.List)
		leads.GET("/:id", leadHandler.GetByID)
		leads.PUT("/:id", leadHandler.Update)
		leads.DELETE("/:uuid", leadHandler.Delete)
		leads.POST("/upload", leadHandler.Upload)
	}

	// ASSIGNMENTS
	assignments := r.Group("/team-assignments")
	{
		assignments.PUT("/teams/:teamId/leads", assignmentHandler.AssignToTeam)
		assignments.PUT("/members/:memberId/leads", assignmentHandler.AssignToMember)
		assignments.PUT("/lead/change-lead-state/:leadId", assignmentHandler.ChangeState)
		assignments.PUT("/lead/unassign/:uuid", assignmentHandler.Unassign)
	}

	// ANALYTICS (one endpoint variant per role scope)
	analytics := r.Group("/lead-analytics")
	{
		analytics.GET("/self/analytics", analyticsHandler.Self)
		analytics.GET("/team/analytics", analyticsHandler.Team)

		admin := analytics.Group("/admin", middleware.RequireRoles(authz.RoleAdmin))
		{
			admin.GET("/analytics", analyticsHandler.Admin)
			admin.GET("/analytics/export", analyticsHandler.Export)
		}

		ops := analytics.Group("/ops", middleware.RequireRoles(authz.RoleOpsTeam, authz.RoleAdmin))
		{
			ops.GET("/analytics", analyticsHandler.Ops)
		}
	}

	// TEAMS (Admin and manager tier manage rosters)
	teams := r.Group("/teams")
	{
		teams.GET("/", teamHandler.List)
		teams.GET("/:id", teamHandler.GetByID)

		manage := teams.Group("", middleware.RequireRoles(
			authz.RoleAdmin, authz.RoleVerticalManager, authz.RoleMarketingHead, authz.RoleLeadGenManager,
		))
		{
			manage.POST("/", teamHandler.Create)
			manage.PUT("/:id", teamHandler.Update)
			manage.DELETE("/:id", teamHandler.Delete)
			manage.POST("/:id/members", teamHandler.AddMember)
			manage.DELETE("/:id/members/:employeeId", teamHandler.RemoveMember)
		}
	}

	// ATTENDANCE
	attendance := r.Group("/attendance")
	{
		attendance.POST("/check-in", attendanceHandler.CheckIn)
		attendance.POST("/check-out", attendanceHandler.CheckOut)
		attendance.GET("/", middleware.RequireRoles(authz.RoleHR, authz.RoleAdmin), attendanceHandler.ListDay)
	}

	// LEAVES
	leaves := r.Group("/leaves")
	{
		leaves.POST("/", leaveHandler.Apply)
		leaves.GET("/", leaveHandler.List)
		leaves.PUT("/:id/review", middleware.RequireRoles(authz.RoleHR, authz.RoleAdmin), leaveHandler.Review)
	}

	return r
}
