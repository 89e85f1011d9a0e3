package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pirate444/food-order-app/services"
)

type FoodController struct {
	service *services.FoodService
}

func NewFoodController(service *services.FoodService) *FoodController {
	return &FoodController{service: service}
}

// GetAllFoods lists the catalog, optionally filtered by ?category=
func (fc *FoodController) GetAllFoods(c *gin.Context) {
	foods, err := fc.service.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, foods)
}

func (fc *FoodController) GetFoodByID(c *gin.Context) {
	food, err := fc.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, food)
}

func (fc *FoodController) CreateFood(c *gin.Context) {
	var req services.CreateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: "Invalid request payload"})
		return
	}

	food, err := fc.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, food)
}

func (fc *FoodController) UpdateFood(c *gin.Context) {
	var req services.UpdateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: "Invalid request payload"})
		return
	}

	food, err := fc.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, food)
}

func (fc *FoodController) DeleteFood(c *gin.Context) {
	if err := fc.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Food deleted successfully")
}
