package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/worksafe-api/internal/application"
	"github.com/oksasatya/worksafe-api/internal/domain/entity"
	repo "github.com/oksasatya/worksafe-api/internal/domain/repository"
	"github.com/oksasatya/worksafe-api/pkg/helpers"
	"github.com/oksasatya/worksafe-api/pkg/response"
	"github.com/oksasatya/worksafe-api/pkg/validation"
)

const collectionPath = "/api/workstations"

type WorkstationHandler struct {
	Svc     *application.Service
	Logger  *logrus.Logger
	BaseURL string
}

// NewWorkstationHandler builds absolute links from baseURL, or from the request host when it is empty.
func NewWorkstationHandler(svc *application.Service, logger *logrus.Logger, baseURL string) *WorkstationHandler {
	return &WorkstationHandler{Svc: svc, Logger: logger, BaseURL: strings.TrimRight(baseURL, "/")}
}

type workstationRequest struct {
	ID                 *int64 `json:"id"`
	Name               string `json:"name" binding:"text100"`
	EmployeeName       string `json:"employeeName" binding:"text100"`
	Department         string `json:"department" binding:"text100"`
	MonitorDistanceCm  int    `json:"monitorDistanceCm" binding:"monitorcm"`
	HasAdjustableChair bool   `json:"hasAdjustableChair"`
	HasFootrest        bool   `json:"hasFootrest"`
}

func (r workstationRequest) input() application.WorkstationInput {
	return application.WorkstationInput{
		Name:               r.Name,
		EmployeeName:       r.EmployeeName,
		Department:         r.Department,
		MonitorDistanceCm:  r.MonitorDistanceCm,
		HasAdjustableChair: r.HasAdjustableChair,
		HasFootrest:        r.HasFootrest,
	}
}

type link struct {
	Rel    string `json:"rel"`
	Href   string `json:"href"`
	Method string `json:"method"`
}

type workstationResponse struct {
	ID                 int64            `json:"id"`
	Name               string           `json:"name"`
	EmployeeName       string           `json:"employeeName"`
	Department         string           `json:"department"`
	MonitorDistanceCm  int              `json:"monitorDistanceCm"`
	HasAdjustableChair bool             `json:"hasAdjustableChair"`
	HasFootrest        bool             `json:"hasFootrest"`
	ErgonomicRiskLevel entity.RiskLevel `json:"ergonomicRiskLevel"`
	IsCompliant        bool             `json:"isCompliant"`
	LastEvaluationDate time.Time        `json:"lastEvaluationDate"`
	Links              []link           `json:"links"`
}

type pagination struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

type pageResponse struct {
	Items      []workstationResponse `json:"items"`
	Pagination pagination            `json:"pagination"`
	Links      []link                `json:"links"`
}

func (h *WorkstationHandler) base(c *gin.Context) string {
	if h.BaseURL != "" {
		return h.BaseURL
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if p := c.GetHeader("X-Forwarded-Proto"); p != "" {
		scheme = p
	}
	return scheme + "://" + c.Request.Host
}

func (h *WorkstationHandler) itemURL(c *gin.Context, id int64) string {
	return h.base(c) + collectionPath + "/" + strconv.FormatInt(id, 10)
}

func (h *WorkstationHandler) toResponse(c *gin.Context, w *entity.Workstation) workstationResponse {
	self := h.itemURL(c, w.ID)
	return workstationResponse{
		ID:                 w.ID,
		Name:               w.Name,
		EmployeeName:       w.EmployeeName,
		Department:         w.Department,
		MonitorDistanceCm:  w.MonitorDistanceCm,
		HasAdjustableChair: w.HasAdjustableChair,
		HasFootrest:        w.HasFootrest,
		ErgonomicRiskLevel: w.RiskLevel(),
		IsCompliant:        w.IsCompliant(),
		LastEvaluationDate: w.LastEvaluationDate(),
		Links: []link{
			{Rel: "self", Href: self, Method: http.MethodGet},
			{Rel: "update", Href: self, Method: http.MethodPut},
			{Rel: "delete", Href: self, Method: http.MethodDelete},
		},
	}
}

// filterFromQuery reads the search parameters. Malformed numbers keep their defaults.
func filterFromQuery(c *gin.Context) repo.SearchFilter {
	f := repo.NewSearchFilter()
	if v, ok := c.GetQuery("department"); ok {
		f.Department = &v
	}
	if v, ok := c.GetQuery("riskLevel"); ok {
		f.SetRiskLevelToken(v)
	}
	if v, ok := c.GetQuery("searchTerm"); ok {
		f.SearchTerm = &v
	}
	if v := c.Query("sortBy"); v != "" {
		f.SortBy = v
	}
	if v := c.Query("sortDirection"); v != "" {
		f.SortDirection = v
	}
	if n, err := strconv.Atoi(c.Query("pageNumber")); err == nil {
		f.PageNumber = n
	}
	if n, err := strconv.Atoi(c.Query("pageSize")); err == nil {
		f.SetPageSize(n)
	}
	return f
}

// filterQuery renders the effective filter back into query parameters.
func filterQuery(f repo.SearchFilter, pageNumber int) url.Values {
	q := url.Values{}
	if d, ok := f.DepartmentFilter(); ok {
		q.Set("department", d)
	}
	if f.RiskLevel != nil {
		q.Set("riskLevel", f.RiskLevel.String())
	}
	if t, ok := f.TermFilter(); ok {
		q.Set("searchTerm", t)
	}
	q.Set("sortBy", f.SortKey())
	dir := repo.SortAsc
	if f.Descending() {
		dir = repo.SortDesc
	}
	q.Set("sortDirection", dir)
	q.Set("pageNumber", strconv.Itoa(pageNumber))
	q.Set("pageSize", strconv.Itoa(f.PageSize()))
	return q
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid id", map[string]string{"id": "must be an integer"})
		return 0, false
	}
	return id, true
}

func (h *WorkstationHandler) fail(c *gin.Context, err error) {
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
	case errors.Is(err, application.ErrWorkstationNotFound):
		response.Error[any](c, http.StatusNotFound, "workstation not found", nil)
	case errors.Is(err, application.ErrUnsupportedFormat):
		response.Error[any](c, http.StatusBadRequest, "unsupported format", map[string]string{"format": "must be one of: xlsx, pdf"})
	case errors.Is(err, application.ErrReportsUnavailable):
		response.Error[any](c, http.StatusServiceUnavailable, "report storage not configured", nil)
	default:
		helpers.LogError(h.Logger, "request failed", err, logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString("request_id"),
		})
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}

func (h *WorkstationHandler) Search(c *gin.Context) {
	f := filterFromQuery(c)
	page, err := h.Svc.Search(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}

	items := make([]workstationResponse, 0, len(page.Items))
	for _, w := range page.Items {
		items = append(items, h.toResponse(c, w))
	}
	collection := h.base(c) + collectionPath
	self := collection + "/search?" + filterQuery(f, page.PageNumber).Encode()

	response.Success(c, http.StatusOK, pageResponse{
		Items: items,
		Pagination: pagination{
			PageNumber: page.PageNumber,
			PageSize:   page.PageSize,
			TotalCount: page.TotalCount,
			TotalPages: page.TotalPages(),
		},
		Links: []link{
			{Rel: "self", Href: self, Method: http.MethodGet},
			{Rel: "create", Href: collection, Method: http.MethodPost},
		},
	}, "workstations", nil)
}

func (h *WorkstationHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	w, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.toResponse(c, w), "workstation", nil)
}

func (h *WorkstationHandler) Create(c *gin.Context) {
	var req workstationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	w, err := h.Svc.Create(c.Request.Context(), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Location", h.itemURL(c, w.ID))
	response.Success(c, http.StatusCreated, h.toResponse(c, w), "workstation created", nil)
}

func (h *WorkstationHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req workstationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if req.ID == nil || *req.ID != id {
		response.Error[any](c, http.StatusBadRequest, "id mismatch", map[string]string{"id": "route id and body id must be the same"})
		return
	}
	w, err := h.Svc.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.toResponse(c, w), "workstation updated", nil)
}

func (h *WorkstationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WorkstationHandler) Lookup(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Svc.Lookup(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "lookup", map[string]any{"count": len(hits)})
}

func (h *WorkstationHandler) Export(c *gin.Context) {
	file, err := h.Svc.Export(c.Request.Context(), filterFromQuery(c), c.Query("format"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}

func (h *WorkstationHandler) PublishReport(c *gin.Context) {
	u, err := h.Svc.PublishReport(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Location", u)
	response.Success(c, http.StatusCreated, map[string]string{"url": u}, "report published", nil)
}
