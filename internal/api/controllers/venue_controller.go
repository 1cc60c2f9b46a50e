package controllers

import (
	"net/http"

	"datecourse/internal/models/request_models"
	"datecourse/internal/services"
	"datecourse/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VenueController struct {
	venueService services.VenueServiceInterface
}

func NewVenueController(venueService services.VenueServiceInterface) *VenueController {
	return &VenueController{venueService: venueService}
}

// GetVenue godoc
// @Summary Get venue
// @Tags Venues
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} utils.APIResponse{data=response_models.Venue}
// @Failure 404 {object} utils.APIResponse
// @Router /venues/{id} [get]
func (v *VenueController) GetVenue(c *gin.Context) {
	venue, err := v.venueService.GetVenueByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, venue, "Venue fetched successfully")
}

// ListVenues godoc
// @Summary List venues
// @Description Paginated venue catalogue, optionally narrowed to one district
// @Tags Venues
// @Produce json
// @Param district query string false "District"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse{data=[]response_models.Venue}
// @Router /venues [get]
func (v *VenueController) ListVenues(c *gin.Context) {
	page, pageSize, ok := parsePaging(c, "20")
	if !ok {
		return
	}

	venues, err := v.venueService.ListVenues(c.Request.Context(), c.Query("district"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, venues, "Venues fetched successfully")
}

// CreateVenue godoc
// @Summary Create venue
// @Tags Venues
// @Accept json
// @Produce json
// @Param X-Admin-Key header string true "Admin key"
// @Param request body request_models.CreateVenueRequest true "Venue"
// @Success 201 {object} utils.APIResponse{data=response_models.Venue}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /venues [post]
func (v *VenueController) CreateVenue(c *gin.Context) {
	var req request_models.CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	venue, err := v.venueService.CreateVenue(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondWithStatus(c, http.StatusCreated, venue, "Venue created successfully")
}

// DeleteVenue godoc
// @Summary Delete venue
// @Tags Venues
// @Param X-Admin-Key header string true "Admin key"
// @Param id path string true "Venue ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /venues/{id} [delete]
func (v *VenueController) DeleteVenue(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid venue ID")
		return
	}

	if err := v.venueService.DeleteVenue(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Venue deleted successfully")
}
