package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tastecraft/menu-studio/internal/core/domain"
	"github.com/tastecraft/menu-studio/internal/core/ports"
)

// MenuHandler exposes the menu lifecycle endpoints.
type MenuHandler struct {
	menus ports.MenuService
}

func NewMenuHandler(menus ports.MenuService) *MenuHandler {
	return &MenuHandler{menus: menus}
}

// Create handles POST /api/menus.
//
// @Summary      Create a menu
// @Tags         menus
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMenuRequest  true  "Menu with optional dishes"
// @Success      201   {object}  createMenuResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/menus [post]
func (h *MenuHandler) Create(c echo.Context) error {
	userID, _, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createMenuRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	menu, err := h.menus.Create(c.Request().Context(), userID, toCreateMenuInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createMenuResponse{ID: menu.ID, Message: "Menu created"})
}

// List handles GET /api/menus — the caller's own menus.
//
// @Summary      List own menus
// @Tags         menus
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   menuResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/menus [get]
func (h *MenuHandler) List(c echo.Context) error {
	userID, _, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	menus, err := h.menus.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMenuResponses(menus))
}

// ListAll handles GET /api/admin/menus — every menu, admin/manager only.
//
// @Summary      List all menus
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   menuResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/menus [get]
func (h *MenuHandler) ListAll(c echo.Context) error {
	userID, _, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	menus, err := h.menus.ListAll(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMenuResponses(menus))
}

// Get handles GET /api/menus/:id.
//
// @Summary      Get a menu with its dishes
// @Tags         menus
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Menu id"
// @Success      200  {object}  menuDetailResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/menus/{id} [get]
func (h *MenuHandler) Get(c echo.Context) error {
	userID, _, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	menuID, err := menuIDParam(c)
	if err != nil {
		return err
	}

	detail, err := h.menus.Get(c.Request().Context(), userID, menuID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMenuDetailResponse(detail))
}

// Update handles PUT /api/menus/:id. A status change only has to name a
// recognized status; there is no transition restriction here.
//
// @Summary      Update a menu
// @Tags         menus
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Menu id"
// @Param        body  body      updateMenuRequest  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/menus/{id} [put]
func (h *MenuHandler) Update(c echo.Context) error {
	userID, _, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	menuID, err := menuIDParam(c)
	if err != nil {
		return err
	}

	var req updateMenuRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	in := ports.UpdateMenuInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}
	if err := h.menus.Update(c.Request().Context(), userID, menuID, in); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Menu updated"})
}

// Submit handles POST /api/menus/:id/submit — the guarded draft → submitted
// transition.
//
// @Summary      Submit a menu
// @Tags         menus
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Menu id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/menus/{id}/submit [post]
func (h *MenuHandler) Submit(c echo.Context) error {
	userID, _, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	menuID, err := menuIDParam(c)
	if err != nil {
		return err
	}

	if err := h.menus.Submit(c.Request().Context(), userID, menuID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Menu submitted successfully"})
}

// Delete handles DELETE /api/menus/:id and cascades to the menu's dishes.
//
// @Summary      Delete a menu
// @Tags         menus
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Menu id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/menus/{id} [delete]
func (h *MenuHandler) Delete(c echo.Context) error {
	userID, _, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	menuID, err := menuIDParam(c)
	if err != nil {
		return err
	}

	if err := h.menus.Delete(c.Request().Context(), userID, menuID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Menu deleted"})
}

// menuIDParam parses the :id path segment. A non-numeric id can never exist,
// so it is reported as not found rather than a syntax error.
func menuIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.ErrMenuNotFound
	}
	return id, nil
}
