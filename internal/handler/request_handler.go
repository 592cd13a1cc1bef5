package handler

import (
	"encoding/json"
	"net/http"

	"fieldrep/internal/directory"
	"fieldrep/internal/gallery"
	"fieldrep/internal/metrics"
	"fieldrep/internal/model"
	"fieldrep/internal/presentation"
	"fieldrep/internal/service"
	"fieldrep/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestHandler serves the representative's own orders, directory
// entries and utility requests. Every POST is one form session.
type RequestHandler struct {
	deps service.Deps
}

func NewRequestHandler(deps service.Deps) *RequestHandler {
	return &RequestHandler{deps: deps}
}

func (h *RequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api")
	{
		api.GET("/orders", h.GetOrders)
		api.POST("/orders", h.CreateOrder)
		api.GET("/doctors", h.GetDoctors)
		api.POST("/doctors", h.CreateDoctor)
		api.GET("/doctors/:id/visual-aids", h.GetVisualAids)
		api.GET("/utilities", h.GetUtilities)
		api.POST("/utilities", h.CreateUtility)
	}
}

// item pairs a record with the badges the list screens render for it.
type item[T any] struct {
	Record        T                   `json:"record"`
	StatusBadge   presentation.Badge  `json:"status_badge"`
	PriorityBadge *presentation.Badge `json:"priority_badge,omitempty"`
}

func withBadges[T any](records []T, meta func(*T) (status, priority string)) []item[T] {
	out := make([]item[T], len(records))
	for i := range records {
		status, priority := meta(&records[i])
		out[i] = item[T]{Record: records[i], StatusBadge: presentation.ForStatus(status)}
		if priority != "" {
			b := presentation.ForPriority(priority)
			out[i].PriorityBadge = &b
		}
	}
	return out
}

func (h *RequestHandler) owner(c *gin.Context) (string, bool) {
	s, err := h.deps.Identity.Current(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return "", false
	}
	return s.OwnerID, true
}

// GetOrders lists the caller's orders, newest first
// @Summary      List orders
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=object}
// @Failure      401  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /api/orders [get]
func (h *RequestHandler) GetOrders(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}
	orders, err := h.deps.Repo.FetchOrders(c.Request.Context(), ownerID)
	metrics.RecordFetch(model.KindOrder, err)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, withBadges(orders, func(o *model.OrderRequest) (string, string) {
		return o.Status, o.Priority
	})))
}

// CreateOrder submits an order form
// @Summary      Submit order
// @Description  Applies the body fields to a fresh order draft and submits it. Total and summary are computed from the catalog price.
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.OrderDraft  true  "Order form fields"
// @Success      201      {object}  response.Response{data=model.OrderRequest}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Failure      502      {object}  response.Response
// @Router       /api/orders [post]
func (h *RequestHandler) CreateOrder(c *gin.Context) {
	var body formBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	form := service.NewOrderForm(h.deps)
	if _, err := form.LoadCatalog(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	if err := body.apply(form); err != nil {
		writeError(c, err)
		return
	}
	order, err := form.Submit(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, order))
}

// GetDoctors lists the caller's directory, optionally filtered
// @Summary      List directory entries
// @Description  Entries are ordered by name. q matches name, speciality or type case-insensitively.
// @Tags         doctors
// @Security     BearerAuth
// @Produce      json
// @Param        q    query     string  false  "Filter text"
// @Success      200  {object}  response.Response{data=object}
// @Failure      401  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /api/doctors [get]
func (h *RequestHandler) GetDoctors(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}
	doctors, err := h.deps.Repo.FetchDoctors(c.Request.Context(), ownerID)
	metrics.RecordFetch(model.KindDoctor, err)
	if err != nil {
		writeError(c, err)
		return
	}
	doctors = directory.Filter(c.Query("q"), doctors)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, withBadges(doctors, func(d *model.DoctorEntry) (string, string) {
		return d.Status, ""
	})))
}

// CreateDoctor submits a directory entry form
// @Summary      Submit directory entry
// @Tags         doctors
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.DoctorDraft  true  "Directory entry fields"
// @Success      201      {object}  response.Response{data=model.DoctorEntry}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Failure      502      {object}  response.Response
// @Router       /api/doctors [post]
func (h *RequestHandler) CreateDoctor(c *gin.Context) {
	var body formBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	form := service.NewDoctorForm(h.deps)
	if _, err := form.LoadLocations(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	if err := body.apply(form, "visualAids"); err != nil {
		writeError(c, err)
		return
	}
	if raw, ok := body["visualAids"]; ok {
		var aids []string
		if err := json.Unmarshal(raw, &aids); err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "visualAids must be an array of image references"))
			return
		}
		for _, a := range aids {
			form.AddVisualAid(a)
		}
	}
	entry, err := form.Submit(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, entry))
}

// GetVisualAids returns an entry's gallery at maximum image quality
// @Summary      Get visual aids
// @Tags         doctors
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Directory entry ID"
// @Success      200  {object}  response.Response{data=[]string}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/doctors/{id}/visual-aids [get]
func (h *RequestHandler) GetVisualAids(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid entry ID"))
		return
	}
	entry, err := h.deps.Repo.FindDoctor(c.Request.Context(), ownerID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	urls := make([]string, len(entry.VisualAids))
	for i, ref := range entry.VisualAids {
		urls[i] = gallery.MaxQuality(ref)
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, urls))
}

// GetUtilities lists the caller's utility requests, newest first
// @Summary      List utility requests
// @Tags         utilities
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=object}
// @Failure      401  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /api/utilities [get]
func (h *RequestHandler) GetUtilities(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}
	utilities, err := h.deps.Repo.FetchUtilities(c.Request.Context(), ownerID)
	metrics.RecordFetch(model.KindUtility, err)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, withBadges(utilities, func(u *model.UtilityRequest) (string, string) {
		return u.Status, u.Priority
	})))
}

// CreateUtility submits a utility request form
// @Summary      Submit utility request
// @Tags         utilities
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.UtilityDraft  true  "Utility request fields"
// @Success      201      {object}  response.Response{data=model.UtilityRequest}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Failure      502      {object}  response.Response
// @Router       /api/utilities [post]
func (h *RequestHandler) CreateUtility(c *gin.Context) {
	var body formBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	form := service.NewUtilityForm(h.deps)
	if err := body.apply(form); err != nil {
		writeError(c, err)
		return
	}
	req, err := form.Submit(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, req))
}
