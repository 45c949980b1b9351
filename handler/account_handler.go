package handler

import (
	"net/http"

	"go-atm/common"
	"go-atm/logger"
	"go-atm/model"
	"go-atm/service"

	"github.com/sirupsen/logrus"
)

type AccountHandler struct {
	directory *service.AccountDirectory
}

func NewAccountHandler(directory *service.AccountDirectory) *AccountHandler {
	return &AccountHandler{directory: directory}
}

// Balance returns the current balance of the session's account.
func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) *common.AppError {
	_, account, appErr := sessionFrom(r)
	if appErr != nil {
		return appErr
	}
	common.WriteJSON(w, http.StatusOK, model.BalanceResponse{Balance: account.Balance()})
	return nil
}

// Withdraw godoc
// @Summary      Withdraw cash
// @Description  Applies the daily withdrawal limit and withdraws from the session's account.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        amount body model.AmountRequest true "Amount"
// @Success      200  {object}  model.BalanceResponse
// @Failure      400  {object}  common.AppError "Invalid amount"
// @Failure      422  {object}  common.AppError "Insufficient funds or daily limit exceeded"
// @Router       /api/withdrawals [post]
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) *common.AppError {
	return h.transact(w, r, model.KindWithdrawal)
}

// Deposit godoc
// @Summary      Deposit cash
// @Description  Applies the daily deposit limit and deposits to the session's account.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        amount body model.AmountRequest true "Amount"
// @Success      200  {object}  model.BalanceResponse
// @Router       /api/deposits [post]
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) *common.AppError {
	return h.transact(w, r, model.KindDeposit)
}

func (h *AccountHandler) transact(w http.ResponseWriter, r *http.Request, kind model.TransactionKind) *common.AppError {
	session, account, appErr := sessionFrom(r)
	if appErr != nil {
		return appErr
	}

	var req model.AmountRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	// The amount itself is logged by the ledger once it passed the bounds.
	logger.Log.WithFields(logrus.Fields{
		"session_id": session.ID().String(),
		"type":       kind,
	}).Info("Transaction request received")

	balance, err := h.directory.Apply(account, kind, req.Amount)
	if err != nil {
		return serviceError(err)
	}

	common.WriteJSON(w, http.StatusOK, model.BalanceResponse{Balance: balance})
	return nil
}

// ChangePin godoc
// @Summary      Change the card PIN
// @Description  Verifies the current PIN, checks the new PIN was entered twice identically and stores it.
// @Tags         accounts
// @Accept       json
// @Security     BearerAuth
// @Param        pin body model.ChangePinRequest true "Current and new PIN"
// @Success      204
// @Failure      400  {object}  common.AppError "PINs do not match or new PIN is not 4 digits"
// @Failure      401  {object}  common.AppError "Current PIN incorrect"
// @Router       /api/pin [put]
func (h *AccountHandler) ChangePin(w http.ResponseWriter, r *http.Request) *common.AppError {
	_, account, appErr := sessionFrom(r)
	if appErr != nil {
		return appErr
	}

	var req model.ChangePinRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	if err := account.VerifyPin(req.CurrentPIN); err != nil {
		return serviceError(err)
	}
	if req.NewPIN != req.ConfirmPIN {
		return common.NewAppError(http.StatusBadRequest, "PINs do not match", nil)
	}
	if err := account.ChangePin(req.NewPIN); err != nil {
		return serviceError(err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
