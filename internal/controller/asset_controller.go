package controller

import (
	"asset-selector-be/internal/dto"
	"asset-selector-be/internal/pkg/serverutils"
	"asset-selector-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssetController interface {
	RegisterRoutes(r fiber.Router, adminMiddleware fiber.Handler)
	Select(ctx *fiber.Ctx) error
	Recency(ctx *fiber.Ctx) error
	CatalogStats(ctx *fiber.Ctx) error
	ReloadCatalog(ctx *fiber.Ctx) error
}

type assetController struct {
	service service.ISelectionService
}

func NewAssetController(service service.ISelectionService) IAssetController {
	return &assetController{service: service}
}

func (c *assetController) RegisterRoutes(r fiber.Router, adminMiddleware fiber.Handler) {
	h := r.Group("/assets/v1")
	h.Post("/select", c.Select)
	h.Get("/recency", c.Recency)
	h.Get("/catalog", c.CatalogStats)
	h.Post("/catalog/reload", adminMiddleware, c.ReloadCatalog)
}

func (c *assetController) Select(ctx *fiber.Ctx) error {
	var req dto.SelectAssetRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res := c.service.SelectDetailed(ctx.UserContext(), req.Title, req.Sentiment)

	return ctx.JSON(serverutils.SuccessResponse("Asset selected", dto.SelectAssetResponse{
		Url:       res.Asset.URL,
		LocalPath: res.Asset.LocalPath,
		Metadata:  res.Asset.Metadata,
		Sentiment: res.Sentiment,
		Stage:     string(res.Stage),
	}))
}

func (c *assetController) Recency(ctx *fiber.Ctx) error {
	snap := c.service.RecencySnapshot()

	return ctx.JSON(serverutils.SuccessResponse("Recency state", dto.RecencyResponse{
		LastUpdated:       snap.LastUpdated,
		GlobalRecent:      snap.GlobalRecent,
		PerCategoryRecent: snap.PerCategoryRecent,
	}))
}

func (c *assetController) CatalogStats(ctx *fiber.Ctx) error {
	st := c.service.CatalogStats()

	return ctx.JSON(serverutils.SuccessResponse("Catalog stats", dto.CatalogStatsResponse{
		Total:       st.Total,
		BySentiment: st.BySentiment,
		ByCategory:  st.ByCategory,
	}))
}

func (c *assetController) ReloadCatalog(ctx *fiber.Ctx) error {
	if err := c.service.Reload(ctx.UserContext()); err != nil {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	st := c.service.CatalogStats()
	return ctx.JSON(serverutils.SuccessResponse("Catalog reloaded", dto.CatalogStatsResponse{
		Total:       st.Total,
		BySentiment: st.BySentiment,
		ByCategory:  st.ByCategory,
	}))
}
