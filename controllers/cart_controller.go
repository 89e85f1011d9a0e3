package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/pirate444/food-order-app/errors"
	"github.com/pirate444/food-order-app/middleware"
	"github.com/pirate444/food-order-app/services"
)

type CartController struct {
	service *services.CartService
}

func NewCartController(service *services.CartService) *CartController {
	return &CartController{service: service}
}

type cartItemRequest struct {
	FoodID   string `json:"foodId"`
	Quantity int    `json:"quantity"`
}

type removeItemRequest struct {
	FoodID string `json:"foodId"`
}

// GetCart returns the caller's cart, creating an empty one on first access
func (cc *CartController) GetCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, apperrors.Unauthenticated("Not authorized"))
		return
	}

	cart, appErr := cc.service.GetCart(c.Request.Context(), userID)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respondData(c, http.StatusOK, cart)
}

// AddToCart merges {foodId, quantity} into the caller's cart
func (cc *CartController) AddToCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, apperrors.Unauthenticated("Not authorized"))
		return
	}

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: "Please provide valid food ID and quantity"})
		return
	}

	cart, appErr := cc.service.AddItem(c.Request.Context(), userID, req.FoodID, req.Quantity)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respondData(c, http.StatusOK, cart)
}

// UpdateCartItem replaces the quantity of an existing line
func (cc *CartController) UpdateCartItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, apperrors.Unauthenticated("Not authorized"))
		return
	}

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: "Please provide valid food ID and quantity"})
		return
	}

	cart, appErr := cc.service.UpdateItemQuantity(c.Request.Context(), userID, req.FoodID, req.Quantity)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respondData(c, http.StatusOK, cart)
}

// RemoveFromCart drops the line for {foodId} if present
func (cc *CartController) RemoveFromCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, apperrors.Unauthenticated("Not authorized"))
		return
	}

	var req removeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: "Invalid request payload"})
		return
	}

	cart, appErr := cc.service.RemoveItem(c.Request.Context(), userID, req.FoodID)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respondData(c, http.StatusOK, cart)
}

// ClearCart empties the caller's cart
func (cc *CartController) ClearCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, apperrors.Unauthenticated("Not authorized"))
		return
	}

	cart, appErr := cc.service.ClearCart(c.Request.Context(), userID)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	respondData(c, http.StatusOK, cart)
}
