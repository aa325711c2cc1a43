package handler

import (
	"github.com/bukusaku/bukusaku-api/internal/application/service"
	"github.com/bukusaku/bukusaku-api/internal/presentation/http/dto/request"
	"github.com/bukusaku/bukusaku-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// NoteHandler handles note-related HTTP requests
type NoteHandler struct {
	noteService *service.NoteService
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func (h *NoteHandler) List(c *gin.Context) {
	notes, err := h.noteService.ListNotes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Notes retrieved successfully", notes)
}

func (h *NoteHandler) Create(c *gin.Context) {
	var req request.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	note, err := h.noteService.CreateNote(c.Request.Context(), &service.NoteInput{
		Title:    req.Title,
		Content:  req.Content,
		IsPinned: req.IsPinned,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Note created successfully", note)
}

func (h *NoteHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	note, err := h.noteService.GetNote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Note retrieved successfully", note)
}

func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req request.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	note, err := h.noteService.UpdateNote(c.Request.Context(), id, &service.NoteInput{
		Title:    req.Title,
		Content:  req.Content,
		IsPinned: req.IsPinned,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Note updated successfully", note)
}

func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.noteService.DeleteNote(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
