package handler

import (
	"net/http"

	"go-atm/common"
	"go-atm/logger"
	"go-atm/model"
	"go-atm/service"
)

type AdminHandler struct {
	directory *service.AccountDirectory
}

func NewAdminHandler(directory *service.AccountDirectory) *AdminHandler {
	return &AdminHandler{directory: directory}
}

// ListAccounts godoc
// @Summary      List all accounts
// @Description  Masked card number, balance and status of every account.
// @Tags         admin
// @Produce      json
// @Param        X-Admin-Secret header string true "Admin credential"
// @Success      200  {array}   model.AccountSummary
// @Failure      403  {object}  common.AppError
// @Router       /admin/accounts [get]
func (h *AdminHandler) ListAccounts(w http.ResponseWriter, r *http.Request) *common.AppError {
	common.WriteJSON(w, http.StatusOK, h.directory.ListAccounts())
	return nil
}

// ProvisionAccount godoc
// @Summary      Add a new account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        X-Admin-Secret header string true "Admin credential"
// @Param        account body model.ProvisionAccountRequest true "Card, PIN and opening balance"
// @Success      201  {object}  model.AccountSummary
// @Failure      400  {object}  common.AppError "Malformed card, PIN or negative balance"
// @Failure      409  {object}  common.AppError "Card number already exists"
// @Router       /admin/accounts [post]
func (h *AdminHandler) ProvisionAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.ProvisionAccountRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	logger.Log.WithField("card", logger.MaskCard(req.CardNumber)).Info("Provision account request received")

	account, err := h.directory.ProvisionAccount(req.CardNumber, req.PIN, req.InitialBalance)
	if err != nil {
		return serviceError(err)
	}

	common.WriteJSON(w, http.StatusCreated, account.Summary())
	return nil
}
