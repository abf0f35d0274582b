package lists

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"listdist/internal/distribution"
	"listdist/internal/shared/server/respond"
)

// Multipart framing on top of the file cap.
const formOverheadBytes = 1 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches list routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/lists", h.upload)
	rg.GET("/lists", h.list)
	rg.GET("/lists/:id", h.get)
	rg.GET("/agents", h.agents)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Svc.maxUploadBytes()+formOverheadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the upload limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	list, err := h.Svc.Upload(c.Request.Context(), UploadInput{
		FileName: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Body:     file,
		Agents:   c.PostFormArray("agents"),
	})
	if err != nil {
		writeError(c, err, "failed to distribute list")
		return
	}

	c.Set("listId", list.ID)
	c.Set("recordCount", list.TotalRecordCount)
	respond.Created(c, toResponse(list))
}

func (h *Handler) get(c *gin.Context) {
	list, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to fetch list")
		return
	}
	c.Set("listId", list.ID)
	respond.OK(c, toResponse(list))
}

func (h *Handler) list(c *gin.Context) {
	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	lists, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err, "failed to list distributions")
		return
	}

	resp := make([]ListSummary, 0, len(lists))
	for _, list := range lists {
		resp = append(resp, toSummary(list))
	}
	respond.OK(c, resp)
}

func (h *Handler) agents(c *gin.Context) {
	respond.OK(c, gin.H{"agents": h.Svc.Agents()})
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, distribution.ErrUnsupportedFileType):
		respond.Error(c, http.StatusUnsupportedMediaType, string(distribution.KindUnsupportedFileType), err.Error(), nil)
	case errors.Is(err, distribution.ErrFormat):
		respond.Error(c, http.StatusUnprocessableEntity, string(distribution.KindFormat), err.Error(), nil)
	case errors.Is(err, distribution.ErrConfig):
		respond.Error(c, http.StatusBadRequest, string(distribution.KindConfig), err.Error(), nil)
	case errors.Is(err, ErrTooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "list not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
