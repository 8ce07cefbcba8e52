package handlers

import (
	"context"
	"net/http"

	"github.com/astraautomax/automax-backend/models"
	"github.com/gin-gonic/gin"
)

// ListContacts godoc
// @Summary List contact submissions
// @Description Returns every contact-form submission, newest first.
// @Tags contacts
// @Produce json
// @Success 200 {array} models.Contact
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /contacts [get]
func (h *Handler) ListContacts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	contacts, err := h.contacts.ListContacts(ctx)
	if err != nil {
		internalError(c, "error fetching contacts", err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// CreateContact godoc
// @Summary Submit the contact form
// @Tags contacts
// @Accept json
// @Produce json
// @Param contact body models.CreateContactRequest true "Contact form"
// @Success 201 {object} map[string]interface{} "Contact form submitted"
// @Failure 400 {object} map[string]interface{} "Missing fields"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /contact [post]
func (h *Handler) CreateContact(c *gin.Context) {
	var req models.CreateContactRequest
	if !bindJSON(c, &req) {
		return
	}
	if missing := models.ValidateContact(req); len(missing) > 0 {
		missingFields(c, missing)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	contact := models.NewContact(req)
	if err := h.contacts.CreateContact(ctx, &contact); err != nil {
		internalError(c, "error submitting contact form", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Contact form submitted successfully", "contact": contact})
}
