package handlers

import (
	"errors"
	"log"
	"strconv"

	"assetdesk/internal/middleware"
	"assetdesk/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AssetHandler handles the asset list page and asset mutations.
type AssetHandler struct {
	assetService *services.AssetService
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService *services.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// RegisterRoutes registers the asset routes. The router passed in must
// already carry the session guard.
func (h *AssetHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleIndex)
	router.Post("/add_asset", h.HandleAddAsset)
	router.Post("/edit_asset/:asset_id", h.HandleEditAsset)
	router.Post("/delete_asset/:asset_id", h.HandleDeleteAsset)
}

// HandleIndex renders the asset list with the allocation roster.
func (h *AssetHandler) HandleIndex(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)

	assets, users, err := h.assetService.List()
	if err != nil {
		log.Printf("Error listing assets: %v", err)
		return err
	}

	return c.Render("index", fiber.Map{
		"Username": identity.Username,
		"Role":     identity.Role,
		"Assets":   assets,
		"Users":    users,
	})
}

// AssetForm represents the add/edit asset form fields.
type AssetForm struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	Status      string `form:"status"`
	AllocatedTo string `form:"allocated_to"`
}

// HandleAddAsset creates a new asset. Any authenticated user may do this.
func (h *AssetHandler) HandleAddAsset(c *fiber.Ctx) error {
	input, err := h.parseAssetForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if _, err := h.assetService.Create(*input); err != nil {
		return assetError(c, err)
	}
	return c.Redirect("/")
}

// HandleEditAsset updates an existing asset subject to the ownership rules.
func (h *AssetHandler) HandleEditAsset(c *fiber.Ctx) error {
	assetID, err := strconv.ParseUint(c.Params("asset_id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Asset not found"})
	}

	input, err := h.parseAssetForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	identity := middleware.CurrentIdentity(c)
	if _, err := h.assetService.Update(uint(assetID), *input, identity); err != nil {
		return assetError(c, err)
	}
	return c.Redirect("/")
}

// HandleDeleteAsset deletes an asset. Admin only.
func (h *AssetHandler) HandleDeleteAsset(c *fiber.Ctx) error {
	assetID, err := strconv.ParseUint(c.Params("asset_id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Asset not found"})
	}

	identity := middleware.CurrentIdentity(c)
	if err := h.assetService.Delete(uint(assetID), identity); err != nil {
		return assetError(c, err)
	}
	return c.Redirect("/")
}

// parseAssetForm reads the form fields and resolves allocated_to to a user
// id; an absent or blank value means unallocated.
func (h *AssetHandler) parseAssetForm(c *fiber.Ctx) (*services.AssetInput, error) {
	var form AssetForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing asset form: %v", err)
		return nil, errors.New("Invalid form submission")
	}

	input := services.AssetInput{
		Name:        form.Name,
		Description: form.Description,
		Status:      form.Status,
	}
	if form.AllocatedTo != "" {
		id, err := strconv.ParseUint(form.AllocatedTo, 10, 32)
		if err != nil {
			return nil, errors.New("Invalid allocated_to value")
		}
		allocated := uint(id)
		input.AllocatedTo = &allocated
	}
	return &input, nil
}

// assetError maps service errors onto the JSON error contract for asset
// mutations: 400 validation, 403 access denied, 404 not found.
func assetError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr.Message})
	case errors.Is(err, services.ErrAccessDenied):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access Denied"})
	case errors.Is(err, services.ErrAssetNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Asset not found"})
	default:
		log.Printf("Asset operation failed: %v", err)
		return err
	}
}
