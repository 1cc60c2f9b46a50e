package controllers

import (
	"net/http"

	"datecourse/internal/models/request_models"
	"datecourse/internal/services"
	"datecourse/pkg/utils"
	"github.com/gin-gonic/gin"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{itineraryService: itineraryService}
}

// GenerateItinerary godoc
// @Summary Plan an outing
// @Description Builds a time-boxed itinerary from the start venue and opens a planning session for feedback
// @Tags Itineraries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.GenerateItineraryRequest true "Outing request"
// @Success 201 {object} utils.APIResponse{data=response_models.ItineraryResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /itineraries [post]
func (i *ItineraryController) GenerateItinerary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.GenerateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	itinerary, err := i.itineraryService.Generate(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondWithStatus(c, http.StatusCreated, itinerary, "Itinerary generated successfully")
}

// Replan godoc
// @Summary Like or dislike a venue and re-plan
// @Description Updates the taste vector and plans the session again. Disliked venues stay out of the session.
// @Tags Itineraries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Planning session ID"
// @Param request body request_models.FeedbackRequest true "Feedback"
// @Success 200 {object} utils.APIResponse{data=response_models.ItineraryResponse}
// @Failure 404 {object} utils.APIResponse
// @Router /itineraries/{sessionId}/feedback [post]
func (i *ItineraryController) Replan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	itinerary, err := i.itineraryService.Replan(c.Request.Context(), userID, c.Param("sessionId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary re-planned successfully")
}

// GetItinerary godoc
// @Summary Get itinerary
// @Tags Itineraries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Itinerary ID"
// @Success 200 {object} utils.APIResponse{data=response_models.ItineraryResponse}
// @Failure 404 {object} utils.APIResponse
// @Router /itineraries/{id} [get]
func (i *ItineraryController) GetItinerary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	itinerary, err := i.itineraryService.GetItinerary(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary fetched successfully")
}

// ListItineraries godoc
// @Summary List my itineraries
// @Tags Itineraries
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse{data=[]response_models.ItineraryResponse}
// @Router /itineraries [get]
func (i *ItineraryController) ListItineraries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, pageSize, ok := parsePaging(c, "10")
	if !ok {
		return
	}

	itineraries, err := i.itineraryService.ListItineraries(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itineraries, "Itineraries fetched successfully")
}
