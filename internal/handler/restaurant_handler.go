package handler

import (
	"net/http"

	"menucraft/internal/usecase"

	"github.com/labstack/echo/v4"
)

type RestaurantHandler struct {
	uc *usecase.RestaurantUsecase
}

func NewRestaurantHandler(uc *usecase.RestaurantUsecase) *RestaurantHandler {
	return &RestaurantHandler{uc: uc}
}

func (h *RestaurantHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/restaurants", h.create)
	e.GET("/api/restaurants/:slug", h.config)
}

func (h *RestaurantHandler) create(c echo.Context) error {
	var req usecase.CreateRestaurantInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateRestaurant(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// 注文サイト向けの店舗設定（認証なし）
func (h *RestaurantHandler) config(c echo.Context) error {
	out, err := h.uc.GetConfig(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
