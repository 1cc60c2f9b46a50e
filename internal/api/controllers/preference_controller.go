package controllers

import (
	"net/http"
	"strconv"

	"datecourse/internal/models/request_models"
	"datecourse/internal/planner"
	"datecourse/internal/services"
	"datecourse/pkg/utils"
	"github.com/gin-gonic/gin"
)

type PreferenceController struct {
	preferenceService services.PreferenceServiceInterface
	venueService      services.VenueServiceInterface
}

func NewPreferenceController(preferenceService services.PreferenceServiceInterface, venueService services.VenueServiceInterface) *PreferenceController {
	return &PreferenceController{
		preferenceService: preferenceService,
		venueService:      venueService,
	}
}

// GetPreference godoc
// @Summary Get my taste vector
// @Tags Preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=response_models.PreferenceResponse}
// @Router /preferences [get]
func (p *PreferenceController) GetPreference(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pref, err := p.preferenceService.GetPreference(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pref, "Preference fetched successfully")
}

// UpdatePreference godoc
// @Summary Replace my taste vector
// @Description Dimensions left out are reset to 0.5
// @Tags Preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.UpdatePreferenceRequest true "Vector"
// @Success 200 {object} utils.APIResponse{data=response_models.PreferenceResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /preferences [put]
func (p *PreferenceController) UpdatePreference(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.UpdatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	pref, err := p.preferenceService.SetPreference(c.Request.Context(), userID, req.Vector)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pref, "Preference updated successfully")
}

// SubmitFeedback godoc
// @Summary Like or dislike a venue
// @Description Updates the taste vector without re-planning
// @Tags Preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.FeedbackRequest true "Feedback"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /preferences/feedback [post]
func (p *PreferenceController) SubmitFeedback(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	vector, _, err := p.preferenceService.ApplyFeedback(c.Request.Context(), userID, req.VenueID, planner.Action(req.Action), nil)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, vector.Map(), "Feedback recorded successfully")
}

// ListFeedback godoc
// @Summary List my feedback
// @Tags Preferences
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse{data=[]response_models.FeedbackResponse}
// @Router /preferences/feedback [get]
func (p *PreferenceController) ListFeedback(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, pageSize, ok := parsePaging(c, "10")
	if !ok {
		return
	}

	history, err := p.preferenceService.ListFeedback(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, history, "Feedback fetched successfully")
}

// RecommendVenues godoc
// @Summary Venues closest to my taste
// @Tags Preferences
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of venues" default(10) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse{data=[]response_models.Venue}
// @Router /preferences/venues [get]
func (p *PreferenceController) RecommendVenues(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit (must be 1-100)")
		return
	}

	vector, err := p.preferenceService.GetVector(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	venues, err := p.venueService.NearestTaste(c.Request.Context(), vector, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, venues, "Venues fetched successfully")
}
