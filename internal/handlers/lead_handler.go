package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salesdesk/internal/authz"
	"salesdesk/internal/models"
	"salesdesk/internal/services"
)

type LeadHandler struct {
	Service *services.LeadService
	Uploads *services.UploadService
}

func NewLeadHandler(service *services.LeadService, uploads *services.UploadService) *LeadHandler {
	return &LeadHandler{Service: service, Uploads: uploads}
}

// @Summary      Create a lead
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        lead  body      models.Lead  true  "Lead"
// @Success      201   {object}  map[string]interface{}
// @Router       /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	sess, okSess := getSession(c)
	if !okSess {
		fail(c, http.StatusUnauthorized, "no session")
		return
	}
	var lead models.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Service.Create(sess, &lead); err != nil {
		failFromErr(c, err)
		return
	}
	created(c, "lead created", lead)
}

// @Summary      List leads
// @Tags         Leads
// @Produce      json
// @Param        page    query  int     false  "Page"
// @Param        limit   query  int     false  "Page size"
// @Param        status  query  string  false  "Status filter"
// @Param        search  query  string  false  "Name/email/phone search"
// @Param        day     query  string  false  "Creation day yyyy-MM-dd"
// @Success      200  {object}  map[string]interface{}
// @Router       /leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	sess, okSess := getSession(c)
	if !okSess {
		fail(c, http.StatusUnauthorized, "no session")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	filter := models.LeadFilter{
		Search: c.Query("search"),
		Day:    c.Query("day"),
		Page:   page,
		Limit:  limit,
	}
	if raw := c.Query("status"); raw != "" {
		status, okStatus := authz.ParseStatus(raw)
		if !okStatus {
			fail(c, http.StatusBadRequest, "unknown status")
			return
		}
		filter.Status = &status
	}

	pageResult, err := h.Service.List(sess, filter)
	if err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, "leads listed", pageResult)
}

// @Summary      Get one lead
// @Tags         Leads
// @Produce      json
// @Param        id  path  int  true  "Lead id"
// @Success      200  {object}  map[string]interface{}
// @Router       /leads/{id} [get]
func (h *LeadHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	lead, err := h.Service.GetByID(id)
	if err != nil {
		failFromErr(c, err)
		return
	}
	if lead == nil {
		fail(c, http.StatusNotFound, "lead not found")
		return
	}
	ok(c, "lead found", lead)
}

// @Summary      Edit a lead
// @Description  Contact, fee and comment fields; fee edits are
// @Description  refused for manager-tier roles
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        id    path  int          true  "Lead id"
// @Param        lead  body  models.Lead  true  "Editable fields"
// @Success      200  {object}  map[string]interface{}
// @Router       /leads/{id} [put]
func (h *LeadHandler) Update(c *gin.Context) {
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
	var body models.Lead
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := h.Service.UpdateEditable(sess, id, &body)
	if err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, "lead updated", updated)
}

// @Summary      Delete a lead
// @Description  Only leads outside team custody can be deleted
// @Tags         Leads
// @Produce      json
// @Param        uuid  path  string  true  "Lead uuid"
// @Success      200  {object}  map[string]interface{}
// @Router       /leads/{uuid} [delete]
func (h *LeadHandler) Delete(c *gin.Context) {
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
	if err := h.Service.Delete(sess, u); err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, "lead deleted", gin.H{"uuid": u})
}

// @Summary      Bulk upload leads
// @Tags         Leads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV file"
// @Success      200  {object}  map[string]interface{}
// @Router       /leads/upload [post]
func (h *LeadHandler) Upload(c *gin.Context) {
	sess, okSess := getSession(c)
	if !okSess {
		fail(c, http.StatusUnauthorized, "no session")
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "missing file")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, "unreadable file")
		return
	}
	defer f.Close()

	result, err := h.Uploads.Upload(sess, f)
	if err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, "upload processed", result)
}
