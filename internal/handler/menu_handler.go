package handler

import (
	"net/http"
	"strconv"

	"menucraft/internal/config"
	"menucraft/internal/middleware"
	"menucraft/internal/usecase"

	"github.com/labstack/echo/v4"
)

type MenuHandler struct {
	uc *usecase.MenuUsecase
}

func NewMenuHandler(uc *usecase.MenuUsecase) *MenuHandler {
	return &MenuHandler{uc: uc}
}

func (h *MenuHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/menus")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RequireAdmin())

	g.POST("/:restaurant_id", h.replace)
}

// メニュー差し替え（既存メニューは非アクティブ化）
func (h *MenuHandler) replace(c echo.Context) error {
	restaurantID, err := strconv.ParseInt(c.Param("restaurant_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid restaurant id"})
	}

	callerRestaurantID, ok := getRestaurantIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req usecase.ReplaceMenuInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.ReplaceMenu(c.Request().Context(), callerRestaurantID, restaurantID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}
