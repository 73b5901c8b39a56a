package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"SPENDWISE_BACK-END/internal/dto"
	"SPENDWISE_BACK-END/internal/service"
	"SPENDWISE_BACK-END/internal/utils"
)

// CategoriesHandler manages category endpoints
type CategoriesHandler struct {
	categories *service.CategoryService
}

// NewCategoriesHandler creates a new CategoriesHandler
func NewCategoriesHandler(categories *service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{categories: categories}
}

// requireUserID extracts the authenticated user id or writes Unauthorized
func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, r, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses the id segment after prefix, writing BadRequest on failure
func pathID(w http.ResponseWriter, r *http.Request, prefix string) (uuid.UUID, bool) {
	raw := strings.TrimPrefix(r.URL.Path, prefix)
	raw = strings.TrimSuffix(raw, "/")
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.WriteErrorResponse(w, r, http.StatusBadRequest, "Invalid id", "Path id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// Collection dispatches by HTTP method for /api/categories
func (h *CategoriesHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.List(w, r)
	case http.MethodPost:
		h.Create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Item dispatches by HTTP method for /api/categories/:id
func (h *CategoriesHandler) Item(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetOne(w, r)
	case http.MethodPatch:
		h.Update(w, r)
	case http.MethodDelete:
		h.Delete(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Create handles POST /api/categories
// @Summary Create a new category
// @Tags categories
// @Accept json
// @Produce json
// @Param payload body dto.CreateCategoryRequest true "Category payload"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/categories [post]
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	req.Name = strings.TrimSpace(req.Name)

	category, err := h.categories.Create(r.Context(), userID, req)
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, "Category created successfully", dto.NewCategoryResponse(category))
}

// List handles GET /api/categories
// @Summary List the caller's categories, newest first
// @Tags categories
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/categories [get]
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	categories, err := h.categories.List(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	resp := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		resp = append(resp, dto.NewCategoryResponse(&categories[i]))
	}
	utils.WriteJSONResponse(w, http.StatusOK, "Categories retrieved successfully", resp)
}

// GetOne handles GET /api/categories/:id
// @Summary Get a single category
// @Tags categories
// @Produce json
// @Param id path string true "Category id"
// @Success 200 {object} dto.CategoryResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/categories/{id} [get]
func (h *CategoriesHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "/api/categories/")
	if !ok {
		return
	}

	category, err := h.categories.GetOne(r.Context(), id, userID)
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, "Category retrieved successfully", dto.NewCategoryResponse(category))
}

// Update handles PATCH /api/categories/:id
// @Summary Partially update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category id"
// @Param payload body dto.UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} dto.CategoryResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/categories/{id} [patch]
func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "/api/categories/")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	category, err := h.categories.Update(r.Context(), id, userID, req)
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, "Category updated successfully", dto.NewCategoryResponse(category))
}

// Delete handles DELETE /api/categories/:id
// @Summary Delete a category
// @Description Deletion is blocked with 409 while expenses or quick prices still reference the category
// @Tags categories
// @Produce json
// @Param id path string true "Category id"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/categories/{id} [delete]
func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "/api/categories/")
	if !ok {
		return
	}

	if err := h.categories.Delete(r.Context(), id, userID); err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, "Category deleted successfully", nil)
}
