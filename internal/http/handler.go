package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"waste-service/internal/http/middleware"
	"waste-service/internal/model"
	"waste-service/internal/repository"
	"waste-service/internal/service"
)

type Handler struct {
	binService   *service.BinService
	truckService *service.TruckService
	routeService *service.RouteService
	log          zerolog.Logger
}

func NewHandler(
	binService *service.BinService,
	truckService *service.TruckService,
	routeService *service.RouteService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		binService:   binService,
		truckService: truckService,
		routeService: routeService,
		log:          log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := r.Group("/")
	protected.Use(authMiddleware)

	bins := protected.Group("/bins")
	{
		bins.GET("", h.listBins)
		bins.POST("", h.createBin)
		bins.GET("/:id", h.getBin)
		bins.PUT("/:id", h.updateBin)
		bins.DELETE("/:id", h.deleteBin)
		bins.PUT("/:id/fill", h.recordBinReading)
		bins.POST("/sync", h.syncBinReadings)
	}

	trucks := protected.Group("/trucks")
	{
		trucks.GET("", h.listTrucks)
		trucks.POST("", h.createTruck)
		trucks.GET("/:id", h.getTruck)
		trucks.PUT("/:id/location", h.updateTruckLocation)
		trucks.PUT("/:id/status", h.updateTruckStatus)
		trucks.DELETE("/:id", h.deleteTruck)
	}

	routes := protected.Group("/routes")
	{
		routes.POST("/optimize", h.optimizeRoutes)
		routes.POST("/preview", h.previewRoute)
		routes.GET("/efficiency", h.routeEfficiency)
		routes.PUT("/strategy", h.setStrategy)
		routes.GET("", h.listRoutes)
		routes.GET("/:id", h.getRoute)
		routes.PUT("/:id/dispatch", h.dispatchRoute)
		routes.PUT("/:id/complete", h.completeRoute)
		routes.DELETE("/:id", h.deleteRoute)
	}

	protected.PUT("/distances", h.updateDistance)
}

func (h *Handler) createBin(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		SensorID     string   `json:"sensor_id" binding:"required"`
		LocationName string   `json:"location_name" binding:"required"`
		FillLevel    float64  `json:"fill_level"`
		Latitude     *float64 `json:"latitude"`
		Longitude    *float64 `json:"longitude"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	bin, err := h.binService.Create(c.Request.Context(), principal, service.CreateBinInput{
		SensorID:     req.SensorID,
		LocationName: req.LocationName,
		FillLevel:    req.FillLevel,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(bin))
}

func (h *Handler) getBin(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid bin id"))
		return
	}

	bin, err := h.binService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(bin))
}

func (h *Handler) listBins(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var filter repository.BinListFilter
	if raw := c.Query("min_fill_level"); raw != "" {
		minFill, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid min_fill_level"))
			return
		}
		filter.MinFillLevel = &minFill
	}
	if raw := c.Query("location"); raw != "" {
		location := strings.TrimSpace(raw)
		filter.LocationName = &location
	}

	bins, err := h.binService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(bins))
}

func (h *Handler) updateBin(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		LocationName *string  `json:"location_name"`
		FillLevel    *float64 `json:"fill_level"`
		Latitude     *float64 `json:"latitude"`
		Longitude    *float64 `json:"longitude"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	bin, err := h.binService.Update(c.Request.Context(), principal, c.Param("id"), service.UpdateBinInput{
		LocationName: req.LocationName,
		FillLevel:    req.FillLevel,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(bin))
}

func (h *Handler) deleteBin(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	if err := h.binService.Delete(c.Request.Context(), principal, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"deleted": true}))
}

func (h *Handler) recordBinReading(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		FillLevel float64 `json:"fill_level" binding:"min=0"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	bin, err := h.binService.Get(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	updated, err := h.binService.RecordReading(c.Request.Context(), principal, bin.SensorID, req.FillLevel)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(updated))
}

func (h *Handler) syncBinReadings(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	updated, err := h.binService.SyncReadings(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"updated": updated}))
}

func (h *Handler) createTruck(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		PlateNumber     string  `json:"plate_number" binding:"required"`
		Status          string  `json:"status"`
		CurrentLocation *string `json:"current_location"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	truck, err := h.truckService.Create(c.Request.Context(), principal, service.CreateTruckInput{
		PlateNumber:     req.PlateNumber,
		Status:          req.Status,
		CurrentLocation: req.CurrentLocation,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(truck))
}

func (h *Handler) getTruck(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	truck, err := h.truckService.Get(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(truck))
}

func (h *Handler) listTrucks(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var filter repository.TruckListFilter
	if raw := c.Query("status"); raw != "" {
		status := model.TruckStatus(strings.ToUpper(strings.TrimSpace(raw)))
		filter.Status = &status
	}

	trucks, err := h.truckService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(trucks))
}

func (h *Handler) updateTruckLocation(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		Location string `json:"location"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	truck, err := h.truckService.UpdateLocation(c.Request.Context(), principal, c.Param("id"), req.Location)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(truck))
}

func (h *Handler) updateTruckStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	truck, err := h.truckService.UpdateStatus(c.Request.Context(), principal, c.Param("id"), req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(truck))
}

func (h *Handler) deleteTruck(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	if err := h.truckService.Delete(c.Request.Context(), principal, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"deleted": true}))
}

func (h *Handler) optimizeRoutes(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	routes, err := h.routeService.Optimize(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(routes))
}

func (h *Handler) previewRoute(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		StartLocation string   `json:"start_location"`
		SensorIDs     []string `json:"sensor_ids" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	ordered, err := h.routeService.PreviewRoute(c.Request.Context(), principal, req.StartLocation, req.SensorIDs)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{
		"locations":         ordered.Locations,
		"total_distance_km": ordered.TotalDistanceKm,
	}))
}

func (h *Handler) routeEfficiency(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	estimate, err := h.routeService.Efficiency(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(estimate))
}

func (h *Handler) listRoutes(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var filter repository.RouteListFilter
	if raw := c.Query("status"); raw != "" {
		status := model.RouteStatus(strings.ToUpper(strings.TrimSpace(raw)))
		filter.Status = &status
	}
	if raw := c.Query("truck_id"); raw != "" {
		truckID := strings.TrimSpace(raw)
		filter.TruckID = &truckID
	}

	routes, err := h.routeService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(routes))
}

func (h *Handler) getRoute(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	route, err := h.routeService.Get(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(route))
}

func (h *Handler) dispatchRoute(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	route, err := h.routeService.Dispatch(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(route))
}

func (h *Handler) completeRoute(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	route, err := h.routeService.Complete(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(route))
}

func (h *Handler) deleteRoute(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	if err := h.routeService.Delete(c.Request.Context(), principal, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"deleted": true}))
}

func (h *Handler) updateDistance(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		From string `json:"from" binding:"required"`
		To   string `json:"to" binding:"required"`
		// No binding tag: zero is a legal distance, the service rejects
		// negatives.
		DistanceKm float64 `json:"distance_km"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	applied, err := h.routeService.UpdateDistance(principal, req.From, req.To, req.DistanceKm)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"applied": applied}))
}

func (h *Handler) setStrategy(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		Strategy string `json:"strategy" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	if err := h.routeService.SetStrategy(principal, req.Strategy); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"strategy": req.Strategy}))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}
