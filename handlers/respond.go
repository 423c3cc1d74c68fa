package handlers

import (
	"errors"
	"net/http"

	"cliniq/services/scheduling"
	"cliniq/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// respondSchedulingError maps engine errors onto HTTP statuses:
// malformed input is 400, missing records 404, booking conflicts and
// illegal transitions 409, availability rejections 422, everything else
// 500.
func respondSchedulingError(c *gin.Context, err error) {
	var ve scheduling.ValidationError
	switch {
	case errors.As(err, &ve):
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
	case errors.Is(err, mongo.ErrNoDocuments):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	case scheduling.IsConflict(err), scheduling.IsCapacity(err):
		utils.JSONError(c, http.StatusConflict, "booking conflict", err.Error())
	case errors.Is(err, scheduling.ErrInvalidTransition):
		utils.JSONError(c, http.StatusConflict, "invalid transition", err.Error())
	case scheduling.IsAvailability(err):
		utils.JSONError(c, http.StatusUnprocessableEntity, "not available", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}
