package handlers

import (
	"mewayz/internal/models"
	"mewayz/internal/services"
	"mewayz/internal/utils"
	"mewayz/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminHandler exposes program management, conversion review and
// reporting for workspace administrators.
type AdminHandler struct {
	programService    services.ProgramService
	referralService   services.ReferralService
	conversionService services.ConversionService
	analyticsService  services.AnalyticsService
	reportService     services.ReportService
}

func NewAdminHandler(
	programService services.ProgramService,
	referralService services.ReferralService,
	conversionService services.ConversionService,
	analyticsService services.AnalyticsService,
	reportService services.ReportService,
) *AdminHandler {
	return &AdminHandler{
		programService:    programService,
		referralService:   referralService,
		conversionService: conversionService,
		analyticsService:  analyticsService,
		reportService:     reportService,
	}
}

// CreateProgram provisions a new referral program for a workspace.
func (h *AdminHandler) CreateProgram(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request validators.ProgramCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateProgramCreate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	workspaceID, err := primitive.ObjectIDFromHex(request.WorkspaceID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid workspace ID")
		return
	}

	program := &models.ReferralProgram{
		Name:        request.Name,
		Description: request.Description,
		WorkspaceID: workspaceID,
		Commission: models.CommissionStructure{
			Type:              models.CommissionType(request.CommissionType),
			PrimaryRate:       request.PrimaryRate,
			SecondaryRate:     request.SecondaryRate,
			TertiaryRate:      request.TertiaryRate,
			MinimumPayout:     request.MinimumPayout,
			MaximumCommission: request.MaximumCommission,
			Currency:          request.Currency,
		},
		Eligibility: models.EligibilityRules{
			MinAccountAgeDays: request.MinAccountAgeDays,
			MinPriorReferrals: request.MinPriorReferrals,
			AllowedCategories: request.AllowedCategories,
		},
		Tracking: models.TrackingSettings{
			CookieDurationDays:  request.CookieDurationDays,
			AttributionModel:    models.AttributionModel(request.AttributionModel),
			SubReferralTracking: request.SubReferralTracking,
			FraudDetection:      request.FraudDetection,
			RequireApproval:     request.RequireApproval,
			RequireConversionOK: request.RequireConversionOK,
		},
		Payouts: models.PayoutSettings{
			Frequency:       request.PayoutFrequency,
			DefaultMethod:   request.DefaultMethod,
			AutoPayout:      request.AutoPayout,
			PayoutDelayDays: request.PayoutDelayDays,
		},
		CreatedBy: adminID,
	}

	if err := h.programService.CreateProgram(c.Request.Context(), program); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Program created successfully", program)
}

// GetProgram returns one program by ID.
func (h *AdminHandler) GetProgram(c *gin.Context) {
	programID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	program, err := h.programService.GetProgram(c.Request.Context(), programID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Program retrieved", program)
}

// ListPrograms returns the workspace's programs.
func (h *AdminHandler) ListPrograms(c *gin.Context) {
	workspaceID, err := primitive.ObjectIDFromHex(c.Query("workspace_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid workspace ID")
		return
	}

	params := utils.GetPaginationParams(c)
	programs, total, err := h.programService.ListPrograms(c.Request.Context(), workspaceID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	}
	utils.SuccessResponseWithMeta(c, "Programs retrieved", gin.H{"programs": programs}, meta)
}

// UpdateProgram applies a partial update to a program.
func (h *AdminHandler) UpdateProgram(c *gin.Context) {
	programID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.programService.UpdateProgram(c.Request.Context(), programID, updates); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Program updated", nil)
}

// SetProgramStatus moves a program between active, paused and ended.
func (h *AdminHandler) SetProgramStatus(c *gin.Context) {
	programID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var request validators.ProgramStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	if err := h.programService.SetProgramStatus(c.Request.Context(), programID, models.ProgramStatus(request.Status)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Program status updated", nil)
}

// SetCodeStatus approves or disables a referral code.
func (h *AdminHandler) SetCodeStatus(c *gin.Context) {
	codeID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var request struct {
		Status string `json:"status" binding:"required,oneof=pending_approval active disabled"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.referralService.SetCodeStatus(c.Request.Context(), codeID, models.CodeStatus(request.Status)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Code status updated", nil)
}

// ApproveConversion moves a pending conversion to approved, crediting
// commission counters.
func (h *AdminHandler) ApproveConversion(c *gin.Context) {
	conversionID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	conversion, err := h.conversionService.ApproveConversion(c.Request.Context(), conversionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Conversion approved", conversion)
}

// CancelConversion voids a pending or approved conversion.
func (h *AdminHandler) CancelConversion(c *gin.Context) {
	conversionID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var request struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	conversion, err := h.conversionService.CancelConversion(c.Request.Context(), conversionID, request.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Conversion cancelled", conversion)
}

// CreatePayout runs the payout processor for a referrer on their behalf.
func (h *AdminHandler) CreatePayout(c *gin.Context) {
	var request validators.AdminPayoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	userID, err := primitive.ObjectIDFromHex(request.UserID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID")
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

// RetryPayout re-attempts disbursement of a failed payout.
func (h *AdminHandler) RetryPayout(c *gin.Context) {
	payoutID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	payout, err := h.conversionService.RetryPayout(c.Request.Context(), payoutID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Payout retried", payout)
}

// GetProgramSummary returns program-level analytics.
func (h *AdminHandler) GetProgramSummary(c *gin.Context) {
	programID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	summary, err := h.analyticsService.GetProgramSummary(c.Request.Context(), programID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Program summary retrieved", summary)
}

// ExportConversions writes the program's conversion history to object
// storage and returns a download link.
func (h *AdminHandler) ExportConversions(c *gin.Context) {
	programID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	report, err := h.reportService.ExportConversions(c.Request.Context(), programID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Conversion report exported", report)
}
