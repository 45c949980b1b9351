package handler

import (
	"net/http"
	"strconv"

	"go-atm/common"
	"go-atm/service"
)

// TransactionHandler serves the ledger of the session's account.
type TransactionHandler struct{}

func NewTransactionHandler() *TransactionHandler {
	return &TransactionHandler{}
}

// ListTransactions godoc
// @Summary      Recent transactions
// @Description  Returns the most recent ledger entries of the session's account, oldest first.
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Number of entries (default 10)"
// @Success      200  {array}   model.Transaction
// @Failure      400  {object}  common.AppError "Invalid limit"
// @Router       /api/transactions [get]
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) *common.AppError {
	_, account, appErr := sessionFrom(r)
	if appErr != nil {
		return appErr
	}

	limit := service.DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return common.NewAppError(http.StatusBadRequest, "Invalid limit", err)
		}
		limit = n
	}

	common.WriteJSON(w, http.StatusOK, account.TransactionHistory(limit))
	return nil
}
