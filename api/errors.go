package api

import (
	"context"
	"errors"
	"net/http"

	errorsmod "cosmossdk.io/errors"
	"github.com/gin-gonic/gin"

	dextypes "github.com/simpledex/simpledex/x/dex/types"
	tokentypes "github.com/simpledex/simpledex/x/token/types"
)

// httpStatus maps a ledger error to a response code.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	case errorsmod.IsOf(err, dextypes.ErrPoolNotFound, dextypes.ErrInvalidToken, tokentypes.ErrTokenNotFound):
		return http.StatusNotFound
	case errorsmod.IsOf(err, dextypes.ErrDuplicatePool):
		return http.StatusConflict
	case errorsmod.IsOf(err, dextypes.ErrSlippageExceeded):
		return http.StatusPreconditionFailed
	case errorsmod.IsOf(err, dextypes.ErrEmptyPool):
		return http.StatusUnprocessableEntity
	case errorsmod.IsOf(err, tokentypes.ErrUnauthorized):
		return http.StatusForbidden
	case errorsmod.IsOf(err, dextypes.ErrInvariantBroken, tokentypes.ErrSupplyInvariantBroken):
		return http.StatusInternalServerError
	}

	if codespace, _, _ := errorsmod.ABCIInfo(err, false); codespace == dextypes.ModuleName || codespace == tokentypes.ModuleName {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeError replies with the registered codespace and code of err.
// Unregistered errors are reported as internal without their message.
func writeError(c *gin.Context, err error) {
	status := httpStatus(err)
	codespace, code, msg := errorsmod.ABCIInfo(err, false)
	if status == http.StatusGatewayTimeout {
		msg = "request timed out"
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg, Codespace: codespace, Code: code})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}
