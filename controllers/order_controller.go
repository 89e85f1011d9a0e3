package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/pirate444/food-order-app/errors"
	"github.com/pirate444/food-order-app/middleware"
	"github.com/pirate444/food-order-app/services"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// CreateOrder places an order from caller-supplied lines and total
func (oc *OrderController) CreateOrder(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, apperrors.Unauthenticated("Not authorized"))
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: "Invalid request payload"})
		return
	}

	order, appErr := oc.service.Create(c.Request.Context(), userID, &req)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respondData(c, http.StatusCreated, order)
}

// GetUserOrders lists the caller's orders, newest-first
func (oc *OrderController) GetUserOrders(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, apperrors.Unauthenticated("Not authorized"))
		return
	}

	orders, appErr := oc.service.GetUserOrders(c.Request.Context(), userID)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respondData(c, http.StatusOK, orders)
}

// GetOrderByID returns a single order, 403 when owned by another user
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, apperrors.Unauthenticated("Not authorized"))
		return
	}

	order, appErr := oc.service.GetByID(c.Request.Context(), userID, c.Param("id"))
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respondData(c, http.StatusOK, order)
}

// UpdateOrderStatus sets the fulfillment status (administrative)
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: "Invalid request payload"})
		return
	}

	order, appErr := oc.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respondData(c, http.StatusOK, order)
}

// GetAllOrders lists every order across users (administrative)
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders, appErr := oc.service.ListAll(c.Request.Context())
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respondData(c, http.StatusOK, orders)
}
