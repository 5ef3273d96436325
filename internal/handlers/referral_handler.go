package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"mewayz/internal/config"
	"mewayz/internal/models"
	"mewayz/internal/services"
	"mewayz/internal/utils"
	"mewayz/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReferralHandler struct {
	referralService   services.ReferralService
	conversionService services.ConversionService
	analyticsService  services.AnalyticsService
	config            *config.Config
}

func NewReferralHandler(
	referralService services.ReferralService,
	conversionService services.ConversionService,
	analyticsService services.AnalyticsService,
	cfg *config.Config,
) *ReferralHandler {
	return &ReferralHandler{
		referralService:   referralService,
		conversionService: conversionService,
		analyticsService:  analyticsService,
		config:            cfg,
	}
}

// TrackClick is the public referral link landing. It records the visit and
// redirects the visitor onward; a signed attribution cookie is set unless
// the click was flagged as suspicious.
func (h *ReferralHandler) TrackClick(c *gin.Context) {
	visitor := models.VisitorMetadata{
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		Referrer:  c.GetHeader("Referer"),
		UTM: models.UTMParams{
			Source:   c.Query("utm_source"),
			Medium:   c.Query("utm_medium"),
			Campaign: c.Query("utm_campaign"),
			Term:     c.Query("utm_term"),
			Content:  c.Query("utm_content"),
		},
	}

	result, err := h.referralService.TrackClick(c.Request.Context(), c.Param("code"), visitor)
	if err != nil {
		// Visitors always land somewhere, even on a dead link.
		c.Redirect(http.StatusFound, h.config.Referral.DefaultRedirectURL)
		return
	}

	if result.Cookie.Code != "" {
		if encoded, err := encodeCookie(result.Cookie); err == nil {
			maxAge := int(time.Until(result.Cookie.ExpiresAt).Seconds())
			c.SetCookie(h.config.Referral.CookieName, encoded, maxAge, "/", "", true, true)
		}
	}

	c.Redirect(http.StatusFound, result.RedirectURL)
}

// GenerateCode issues (or returns the existing) referral code for the
// authenticated user in a program.
func (h *ReferralHandler) GenerateCode(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request validators.CodeGenerateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateCodeGenerate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	programID, err := primitive.ObjectIDFromHex(request.ProgramID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid program ID")
		return
	}

	code, err := h.referralService.GenerateCode(c.Request.Context(), &services.CodeRequest{
		UserID:     userID,
		ProgramID:  programID,
		CustomCode: request.CustomCode,
		ParentCode: request.ParentCode,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Referral code ready", code)
}

// ListCodes returns the authenticated user's referral codes.
func (h *ReferralHandler) ListCodes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	codes, total, err := h.referralService.ListCodes(c.Request.Context(), userID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	}
	utils.SuccessResponseWithMeta(c, "Referral codes retrieved", gin.H{"codes": codes}, meta)
}

// GetCode looks up a single referral code by its string value.
func (h *ReferralHandler) GetCode(c *gin.Context) {
	code, err := h.referralService.GetCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Referral code retrieved", code)
}

// RecordConversion registers a conversion attributed to a referral code or
// a tracked click.
func (h *ReferralHandler) RecordConversion(c *gin.Context) {
	var request validators.ConversionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateConversion(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	input := &models.ConversionInput{
		ReferralCode: request.ReferralCode,
		ClickID:      request.ClickID,
		Type:         request.Type,
		Value:        request.Value,
		Currency:     request.Currency,
		ReferredUser: request.ReferredUser,
	}

	// Fall back to the attribution cookie when the caller passed no source.
	if input.ReferralCode == "" && input.ClickID == "" {
		if cookie, ok := h.readAttributionCookie(c); ok {
			input.ReferralCode = cookie.Code
			input.ClickID = cookie.ClickID
		}
	}

	result, err := h.conversionService.ProcessConversion(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Conversion recorded", result)
}

// ListConversions returns the authenticated referrer's conversions,
// optionally filtered by status.
func (h *ReferralHandler) ListConversions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	status := models.ConversionStatus(c.Query("status"))
	params := utils.GetPaginationParams(c)

	conversions, total, err := h.conversionService.ListConversions(c.Request.Context(), userID, status, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	}
	utils.SuccessResponseWithMeta(c, "Conversions retrieved", gin.H{"conversions": conversions}, meta)
}

// RequestPayout pays out the authenticated user's approved commission.
func (h *ReferralHandler) RequestPayout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request validators.PayoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	programID, err := primitive.ObjectIDFromHex(request.ProgramID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid program ID")
		return
	}

	payout, err := h.conversionService.ProcessPayout(c.Request.Context(), userID, programID, models.PayoutMethod(request.Method))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Payout processed", payout)
}

// ListPayouts returns the authenticated user's payout history.
func (h *ReferralHandler) ListPayouts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	payouts, total, err := h.conversionService.ListPayouts(c.Request.Context(), userID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	}
	utils.SuccessResponseWithMeta(c, "Payouts retrieved", gin.H{"payouts": payouts}, meta)
}

// GetSummary returns the authenticated referrer's analytics dashboard,
// optionally scoped to one program via the program_id query parameter.
func (h *ReferralHandler) GetSummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var programID *primitive.ObjectID
	if raw := c.Query("program_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid program ID")
			return
		}
		programID = &id
	}

	summary, err := h.analyticsService.GetReferrerSummary(c.Request.Context(), userID, programID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Referral summary retrieved", summary)
}

func (h *ReferralHandler) readAttributionCookie(c *gin.Context) (models.CookiePayload, bool) {
	raw, err := c.Cookie(h.config.Referral.CookieName)
	if err != nil {
		return models.CookiePayload{}, false
	}

	cookie, err := decodeCookie(raw)
	if err != nil {
		return models.CookiePayload{}, false
	}

	if !services.VerifyCookie(cookie, h.config.Security.CookieSigningKey) {
		return models.CookiePayload{}, false
	}

	return cookie, true
}

func encodeCookie(cookie models.CookiePayload) (string, error) {
	raw, err := json.Marshal(cookie)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}

func decodeCookie(value string) (models.CookiePayload, error) {
	var cookie models.CookiePayload

	raw, err := base64.URLEncoding.DecodeString(value)
	if err != nil {
		return cookie, err
	}
	if err := json.Unmarshal(raw, &cookie); err != nil {
		return cookie, err
	}

	return cookie, nil
}
