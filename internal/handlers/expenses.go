package handlers

import (
	"net/http"

	"SPENDWISE_BACK-END/internal/dto"
	"SPENDWISE_BACK-END/internal/service"
	"SPENDWISE_BACK-END/internal/utils"
)

// ExpensesHandler manages expense endpoints
type ExpensesHandler struct {
	expenses *service.ExpenseService
}

// NewExpensesHandler creates a new ExpensesHandler
func NewExpensesHandler(expenses *service.ExpenseService) *ExpensesHandler {
	return &ExpensesHandler{expenses: expenses}
}

// Collection dispatches by HTTP method for /api/expenses
func (h *ExpensesHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.List(w, r)
	case http.MethodPost:
		h.Create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Item dispatches by HTTP method for /api/expenses/:id
func (h *ExpensesHandler) Item(w http.ResponseWriter, r *http.Request) {
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

// Create handles POST /api/expenses
// @Summary Record a new expense
// @Description The referenced category must exist and belong to the caller; the date defaults to now
// @Tags expenses
// @Accept json
// @Produce json
// @Param payload body dto.CreateExpenseRequest true "Expense payload"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/expenses [post]
func (h *ExpensesHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	expense, category, err := h.expenses.Create(r.Context(), userID, req)
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, "Expense created successfully", dto.NewExpenseResponse(expense, category))
}

// List handles GET /api/expenses with filters, sorting and pagination
// @Summary List the caller's expenses
// @Tags expenses
// @Produce json
// @Param categoryId query string false "Filter by category"
// @Param startDate query string false "YYYY-MM-DD or RFC3339"
// @Param endDate query string false "YYYY-MM-DD or RFC3339"
// @Param minAmount query string false "Decimal lower bound"
// @Param maxAmount query string false "Decimal upper bound"
// @Param page query int false "1-based page"
// @Param limit query int false "Items per page"
// @Param sortBy query string false "date|amount|createdAt"
// @Param sortOrder query string false "asc|desc"
// @Success 200 {object} dto.ExpenseListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/expenses [get]
func (h *ExpensesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	query := service.ExpenseListQuery{
		CategoryID: q.Get("categoryId"),
		StartDate:  q.Get("startDate"),
		EndDate:    q.Get("endDate"),
		MinAmount:  q.Get("minAmount"),
		MaxAmount:  q.Get("maxAmount"),
		Page:       q.Get("page"),
		Limit:      q.Get("limit"),
		SortBy:     q.Get("sortBy"),
		SortOrder:  q.Get("sortOrder"),
	}

	expenses, categories, pagination, err := h.expenses.List(r.Context(), userID, query)
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}

	data := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		data = append(data, dto.NewExpenseResponse(&expenses[i], categories[expenses[i].CategoryID]))
	}
	utils.WriteJSONResponse(w, http.StatusOK, "Expenses retrieved successfully", dto.ExpenseListResponse{
		Data:       data,
		Pagination: pagination,
	})
}

// GetOne handles GET /api/expenses/:id
// @Summary Get a single expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense id"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/expenses/{id} [get]
func (h *ExpensesHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "/api/expenses/")
	if !ok {
		return
	}

	expense, category, err := h.expenses.GetOne(r.Context(), id, userID)
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, "Expense retrieved successfully", dto.NewExpenseResponse(expense, category))
}

// Update handles PATCH /api/expenses/:id
// @Summary Partially update an expense
// @Description A changed category id is revalidated against the new category
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense id"
// @Param payload body dto.UpdateExpenseRequest true "Fields to change"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/expenses/{id} [patch]
func (h *ExpensesHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "/api/expenses/")
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	expense, category, err := h.expenses.Update(r.Context(), id, userID, req)
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, "Expense updated successfully", dto.NewExpenseResponse(expense, category))
}

// Delete handles DELETE /api/expenses/:id
// @Summary Delete an expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense id"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/expenses/{id} [delete]
func (h *ExpensesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "/api/expenses/")
	if !ok {
		return
	}

	if err := h.expenses.Delete(r.Context(), id, userID); err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, "Expense deleted successfully", nil)
}
