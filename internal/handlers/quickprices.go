package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"SPENDWISE_BACK-END/internal/dto"
	"SPENDWISE_BACK-END/internal/service"
	"SPENDWISE_BACK-END/internal/utils"
)

// QuickPricesHandler manages quick-price endpoints
type QuickPricesHandler struct {
	quickPrices *service.QuickPriceService
}

// NewQuickPricesHandler creates a new QuickPricesHandler
func NewQuickPricesHandler(quickPrices *service.QuickPriceService) *QuickPricesHandler {
	return &QuickPricesHandler{quickPrices: quickPrices}
}

// Collection dispatches by HTTP method for /api/quick-prices
func (h *QuickPricesHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.List(w, r)
	case http.MethodPost:
		h.Create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Item dispatches for /api/quick-prices/:id and
// /api/quick-prices/:id/create-expense
func (h *QuickPricesHandler) Item(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(strings.TrimSuffix(r.URL.Path, "/"), "/create-expense") {
		h.Instantiate(w, r)
		return
	}
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

// Create handles POST /api/quick-prices
// @Summary Create a new quick price
// @Tags quick-prices
// @Accept json
// @Produce json
// @Param payload body dto.CreateQuickPriceRequest true "Quick price payload"
// @Success 201 {object} dto.QuickPriceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quick-prices [post]
func (h *QuickPricesHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dto.CreateQuickPriceRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	req.Name = strings.TrimSpace(req.Name)

	quickPrice, category, err := h.quickPrices.Create(r.Context(), userID, req)
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, "Quick price created successfully", dto.NewQuickPriceResponse(quickPrice, category))
}

// List handles GET /api/quick-prices
// @Summary List the caller's quick prices, newest first
// @Tags quick-prices
// @Produce json
// @Success 200 {array} dto.QuickPriceResponse
// @Router /api/quick-prices [get]
func (h *QuickPricesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	quickPrices, categories, err := h.quickPrices.List(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	resp := make([]dto.QuickPriceResponse, 0, len(quickPrices))
	for i := range quickPrices {
		resp = append(resp, dto.NewQuickPriceResponse(&quickPrices[i], categories[quickPrices[i].CategoryID]))
	}
	utils.WriteJSONResponse(w, http.StatusOK, "Quick prices retrieved successfully", resp)
}

// GetOne handles GET /api/quick-prices/:id
// @Summary Get a single quick price
// @Tags quick-prices
// @Produce json
// @Param id path string true "Quick price id"
// @Success 200 {object} dto.QuickPriceResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quick-prices/{id} [get]
func (h *QuickPricesHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "/api/quick-prices/")
	if !ok {
		return
	}

	quickPrice, category, err := h.quickPrices.GetOne(r.Context(), id, userID)
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, "Quick price retrieved successfully", dto.NewQuickPriceResponse(quickPrice, category))
}

// Update handles PATCH /api/quick-prices/:id
// @Summary Partially update a quick price
// @Tags quick-prices
// @Accept json
// @Produce json
// @Param id path string true "Quick price id"
// @Param payload body dto.UpdateQuickPriceRequest true "Fields to change"
// @Success 200 {object} dto.QuickPriceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quick-prices/{id} [patch]
func (h *QuickPricesHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "/api/quick-prices/")
	if !ok {
		return
	}

	var req dto.UpdateQuickPriceRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	quickPrice, category, err := h.quickPrices.Update(r.Context(), id, userID, req)
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, "Quick price updated successfully", dto.NewQuickPriceResponse(quickPrice, category))
}

// Delete handles DELETE /api/quick-prices/:id
// @Summary Delete a quick price
// @Tags quick-prices
// @Produce json
// @Param id path string true "Quick price id"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quick-prices/{id} [delete]
func (h *QuickPricesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "/api/quick-prices/")
	if !ok {
		return
	}

	if err := h.quickPrices.Delete(r.Context(), id, userID); err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, "Quick price deleted successfully", nil)
}

// Instantiate handles POST /api/quick-prices/:id/create-expense
// @Summary Create an expense from a quick price
// @Description Copies the template's category and amount; the supplied description falls back to the stored one, the date to now
// @Tags quick-prices
// @Accept json
// @Produce json
// @Param id path string true "Quick price id"
// @Param payload body dto.InstantiateQuickPriceRequest false "Optional date and description"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quick-prices/{id}/create-expense [post]
func (h *QuickPricesHandler) Instantiate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := instantiatePathID(w, r)
	if !ok {
		return
	}

	var req dto.InstantiateQuickPriceRequest
	if r.ContentLength > 0 {
		if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
			return
		}
	}

	expense, category, err := h.quickPrices.Instantiate(r.Context(), id, userID, req)
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, "Expense created from quick price", dto.NewExpenseResponse(expense, category))
}

// instantiatePathID parses the quick price id out of
// /api/quick-prices/:id/create-expense
func instantiatePathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := strings.TrimPrefix(r.URL.Path, "/api/quick-prices/")
	raw = strings.TrimSuffix(strings.TrimSuffix(raw, "/"), "/create-expense")
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.WriteErrorResponse(w, r, http.StatusBadRequest, "Invalid id", "Path id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}
