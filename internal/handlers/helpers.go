package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"salesdesk/internal/authz"
	"salesdesk/internal/services"
)

// Every endpoint answers the same envelope. Failures omit
// "additional", which clients treat as the failure signal regardless
// of HTTP status.

func ok(c *gin.Context, message string, additional any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "additional": additional})
}

func created(c *gin.Context, message string, additional any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": message, "additional": additional})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// failFromErr maps service sentinels onto statuses; anything
// unexpected becomes a generic 500 so internals never leak.
func failFromErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		fail(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, services.ErrNotFound):
		fail(c, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrEmptySelection),
		errors.Is(err, services.ErrUnknownStatus),
		errors.Is(err, services.ErrStatusNotVisible),
		errors.Is(err, services.ErrInvalidRange):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrTeamLeadRemoval),
		errors.Is(err, services.ErrAlreadyCheckedIn),
		errors.Is(err, services.ErrNotCheckedIn):
		fail(c, http.StatusConflict, err.Error())
	default:
		fail(c, http.StatusInternalServerError, "something went wrong")
	}
}

// SessionMiddleware builds the request's session once, right after
// authentication, and stashes it for every handler. Permission checks
// only ever read this session object.
func SessionMiddleware(employees *services.EmployeeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		idV, okID := c.Get("employee_id")
		roleV, okRole := c.Get("role")
		if !okID || !okRole {
			c.Next() // public path
			return
		}
		employeeID, _ := idV.(int64)
		roleStr, _ := roleV.(string)
		role, okParse := authz.ParseRole(roleStr)
		if !okParse {
			fail(c, http.StatusForbidden, "unknown role")
			c.Abort()
			return
		}
		sess, err := employees.SessionFor(employeeID, role)
		if err != nil {
			fail(c, http.StatusInternalServerError, "something went wrong")
			c.Abort()
			return
		}
		c.Set("session", sess)
		c.Next()
	}
}

func getSession(c *gin.Context) (authz.Session, bool) {
	v, exists := c.Get("session")
	if !exists {
		return authz.Session{}, false
	}
	sess, okCast := v.(authz.Session)
	return sess, okCast
}
