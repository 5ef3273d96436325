package handlers

import (
	"errors"
	"net/http"

	"mewayz/internal/services"
	"mewayz/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondServiceError maps service error kinds onto the HTTP envelope.
// Anything unrecognised is treated as an internal failure.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, services.ErrIneligible):
		utils.ErrorResponse(c, http.StatusForbidden, "INELIGIBLE", err.Error())
	case errors.Is(err, services.ErrInvalidInput):
		utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, services.ErrDuplicateResource):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrNoReferralSource):
		utils.UnprocessableResponse(c, "NO_REFERRAL_SOURCE", err.Error())
	case errors.Is(err, services.ErrBelowMinimumThreshold):
		utils.UnprocessableResponse(c, "BELOW_MINIMUM_THRESHOLD", err.Error())
	case errors.Is(err, services.ErrNoEligibleConversions):
		utils.UnprocessableResponse(c, "NO_ELIGIBLE_CONVERSIONS", err.Error())
	case errors.Is(err, services.ErrUnavailable):
		utils.ServiceUnavailableResponse(c, err.Error())
	default:
		utils.InternalServerErrorResponse(c)
	}
}

// currentUserID pulls the authenticated user out of the gin context.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	userID, ok := value.(primitive.ObjectID)
	if !ok {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	return userID, true
}

// pathObjectID parses an object id path parameter, responding 400 itself
// when the value is malformed.
func pathObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name)
		return primitive.NilObjectID, false
	}
	return id, true
}
