package handler

import (
	"net/http"

	"go-atm/common"
	"go-atm/logger"
	"go-atm/model"
	"go-atm/service"
)

// SessionHandler covers card lookup and the session lifecycle.
type SessionHandler struct {
	directory *service.AccountDirectory
	tokens    *service.TokenService
}

func NewSessionHandler(directory *service.AccountDirectory, tokens *service.TokenService) *SessionHandler {
	return &SessionHandler{directory: directory, tokens: tokens}
}

// VerifyCard godoc
// @Summary      Check a card number
// @Description  Confirms the card number is well formed and known. Does not check the PIN.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        card body model.CardRequest true "Card number"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  common.AppError "Malformed card number"
// @Failure      404  {object}  common.AppError "Card not found"
// @Router       /cards/verify [post]
func (h *SessionHandler) VerifyCard(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CardRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	if err := h.directory.AuthenticateCard(req.CardNumber); err != nil {
		return serviceError(err)
	}

	common.WriteJSON(w, http.StatusOK, map[string]string{"status": "Card number valid"})
	return nil
}

// OpenSession godoc
// @Summary      Open a session
// @Description  Verifies the PIN for a card and returns a bearer token bound to a new session.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        session body model.SessionRequest true "Card number and PIN"
// @Success      201  {object}  model.SessionResponse
// @Failure      401  {object}  common.AppError "Incorrect PIN, with remaining attempts"
// @Failure      423  {object}  common.AppError "Card is blocked"
// @Router       /sessions [post]
func (h *SessionHandler) OpenSession(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SessionRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	log := logger.Log.WithField("card", logger.MaskCard(req.CardNumber))
	log.Info("Open session request received")

	if err := h.directory.AuthenticateCard(req.CardNumber); err != nil {
		return serviceError(err)
	}
	if err := h.directory.VerifyPin(req.CardNumber, req.PIN); err != nil {
		log.WithError(err).Warn("PIN verification failed")
		return serviceError(err)
	}

	session, err := h.directory.StartSession(req.CardNumber)
	if err != nil {
		return serviceError(err)
	}

	token, expiresAt, err := h.tokens.Issue(session, req.CardNumber)
	if err != nil {
		h.directory.EndSession(session)
		return common.NewAppError(http.StatusInternalServerError, "Could not open session", err)
	}

	common.WriteJSON(w, http.StatusCreated, model.SessionResponse{Token: token, ExpiresAt: expiresAt.Unix()})
	return nil
}

// CloseSession godoc
// @Summary      End the current session
// @Tags         sessions
// @Security     BearerAuth
// @Success      204
// @Router       /api/session [delete]
func (h *SessionHandler) CloseSession(w http.ResponseWriter, r *http.Request) *common.AppError {
	session, _, appErr := sessionFrom(r)
	if appErr != nil {
		return appErr
	}
	h.directory.EndSession(session)
	w.WriteHeader(http.StatusNoContent)
	return nil
}
