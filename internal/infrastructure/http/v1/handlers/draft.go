package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"cartline/internal/core/apperror"
	"cartline/internal/core/id"
	"cartline/internal/domain/draft"
	"cartline/internal/domain/orderline"
	"cartline/internal/infrastructure/http/v1/dto"
)

// DraftHandler handles HTTP requests for order/purchase drafts.
type DraftHandler struct {
	*BaseHandler
	service *draft.Service
}

// NewDraftHandler creates a new draft handler.
func NewDraftHandler(base *BaseHandler, service *draft.Service) *DraftHandler {
	return &DraftHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Start handles POST /drafts
func (h *DraftHandler) Start(c *gin.Context) {
	var req dto.StartDraftRequest
	if !h.BindJSON(c, &req) {
		return
	}

	d, err := h.service.Start(c.Request.Context(), orderline.Mode(req.Mode))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, d.ID.String())
}

// Get handles GET /drafts/:id
func (h *DraftHandler) Get(c *gin.Context) {
	draftID, ok := h.parseDraftID(c)
	if !ok {
		return
	}

	d, err := h.service.Get(c.Request.Context(), draftID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromDraft(d))
}

// AddLine handles POST /drafts/:id/lines
func (h *DraftHandler) AddLine(c *gin.Context) {
	draftID, ok := h.parseDraftID(c)
	if !ok {
		return
	}

	var req dto.AddLineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	res, err := h.service.AddLine(c.Request.Context(), draftID, productID, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromLineResult(res))
}

// EditLine handles PUT /drafts/:id/lines/:index
func (h *DraftHandler) EditLine(c *gin.Context) {
	draftID, ok := h.parseDraftID(c)
	if !ok {
		return
	}

	index, ok := h.parseLineIndex(c)
	if !ok {
		return
	}

	var req dto.EditLineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	res, err := h.service.EditLine(c.Request.Context(), draftID, index, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromLineResult(res))
}

// RemoveLine handles DELETE /drafts/:id/lines/:index
func (h *DraftHandler) RemoveLine(c *gin.Context) {
	draftID, ok := h.parseDraftID(c)
	if !ok {
		return
	}

	index, ok := h.parseLineIndex(c)
	if !ok {
		return
	}

	d, err := h.service.RemoveLine(c.Request.Context(), draftID, index)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromDraft(d))
}

// Submit handles POST /drafts/:id/submit
func (h *DraftHandler) Submit(c *gin.Context) {
	draftID, ok := h.parseDraftID(c)
	if !ok {
		return
	}

	payload, err := h.service.Submit(c.Request.Context(), draftID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSubmission(payload))
}

func (h *DraftHandler) parseDraftID(c *gin.Context) (id.ID, bool) {
	draftID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid draft id format"))
		return id.Nil(), false
	}
	return draftID, true
}

func (h *DraftHandler) parseLineIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		h.Error(c, apperror.NewValidation("invalid line index"))
		return 0, false
	}
	return index, true
}
