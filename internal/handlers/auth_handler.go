package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"salesdesk/internal/models"
	"salesdesk/internal/services"
)

type AuthHandler struct {
	Employees *services.EmployeeService
}

func NewAuthHandler(employees *services.EmployeeService) *AuthHandler {
	return &AuthHandler{Employees: employees}
}

// @Summary      Log in
// @Description  Authenticates an employee and returns an access token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("[auth][login] attempt email=%q", req.Email)

	token, emp, err := h.Employees.Login(req.Email, req.Password)
	if err != nil {
		log.Printf("[auth][login] rejected email=%q: %v", req.Email, err)
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	ok(c, "logged in", gin.H{
		"accessToken": token,
		"employee":    emp,
	})
}

// @Summary      Current role
// @Description  Returns the authenticated employee's role tag
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /check/auth/role [get]
func (h *AuthHandler) Role(c *gin.Context) {
	sess, okSess := getSession(c)
	if !okSess {
		fail(c, http.StatusUnauthorized, "no session")
		return
	}
	ok(c, "role resolved", gin.H{"role": sess.Role})
}
