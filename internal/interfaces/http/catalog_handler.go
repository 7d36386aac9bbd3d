package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
	"github.com/jhoicas/MenuQR-api/internal/application/usecase"
)

// CatalogHandler CRUD de categorías, productos y variantes del restaurante de la sesión.
type CatalogHandler struct {
	categories *usecase.CategoryUseCase
	products   *usecase.ProductUseCase
	variants   *usecase.VariantUseCase
}

func NewCatalogHandler(categories *usecase.CategoryUseCase, products *usecase.ProductUseCase, variants *usecase.VariantUseCase) *CatalogHandler {
	return &CatalogHandler{categories: categories, products: products, variants: variants}
}

// ── Categorías ────────────────────────────────────────────────────────────────

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         dashboard-categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/dashboard/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.categories.Create(c.UserContext(), GetRestaurantID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         dashboard-categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/dashboard/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.categories.List(c.UserContext(), GetRestaurantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateCategory godoc
// @Summary      Actualizar categoría
// @Tags         dashboard-categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.CategoryRequest  true  "Datos de la categoría"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/dashboard/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.categories.Update(c.UserContext(), GetRestaurantID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteCategory godoc
// @Summary      Eliminar categoría (y sus productos)
// @Tags         dashboard-categories
// @Security     Bearer
// @Param        id   path  string  true  "ID de la categoría"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.categories.Delete(c.UserContext(), GetRestaurantID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReorderCategories godoc
// @Summary      Reordenar categorías
// @Tags         dashboard-categories
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.ReorderRequest  true  "IDs en el orden deseado"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/categories/reorder [put]
func (h *CatalogHandler) ReorderCategories(c *fiber.Ctx) error {
	var in dto.ReorderRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	if err := h.categories.Reorder(c.UserContext(), GetRestaurantID(c), in.IDs); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Productos ─────────────────────────────────────────────────────────────────

// CreateProduct godoc
// @Summary      Crear producto
// @Tags         dashboard-products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/dashboard/products [post]
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.products.Create(c.UserContext(), GetRestaurantID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListProducts godoc
// @Summary      Listar productos
// @Tags         dashboard-products
// @Security     Bearer
// @Produce      json
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/dashboard/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	out, err := h.products.List(c.UserContext(), GetRestaurantID(c), c.Query("category_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetProduct godoc
// @Summary      Obtener producto con variantes
// @Tags         dashboard-products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	out, err := h.products.Get(c.UserContext(), GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateProduct godoc
// @Summary      Actualizar producto
// @Tags         dashboard-products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/dashboard/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.products.Update(c.UserContext(), GetRestaurantID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ToggleProduct godoc
// @Summary      Alternar disponibilidad del producto
// @Tags         dashboard-products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Router       /api/dashboard/products/{id}/toggle [patch]
func (h *CatalogHandler) ToggleProduct(c *fiber.Ctx) error {
	out, err := h.products.ToggleAvailability(c.UserContext(), GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UploadProductImage godoc
// @Summary      Subir imagen del producto
// @Tags         dashboard-products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "ID del producto"
// @Param        file  formData  file    true  "JPEG, PNG o WebP (máx. 5 MB)"
// @Success      200   {object}  dto.ImageUploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/dashboard/products/{id}/image [post]
func (h *CatalogHandler) UploadProductImage(c *fiber.Ctx) error {
	img, closer, err := readImage(c)
	if closer == nil {
		return err
	}
	defer closer.Close()
	out, err := h.products.UploadImage(c.UserContext(), GetRestaurantID(c), c.Params("id"), img)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteProduct godoc
// @Summary      Eliminar producto
// @Tags         dashboard-products
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Router       /api/dashboard/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.products.Delete(c.UserContext(), GetRestaurantID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Variantes ─────────────────────────────────────────────────────────────────

// CreateVariant godoc
// @Summary      Crear variante de un producto
// @Tags         dashboard-variants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.VariantRequest  true  "Nombre y precio"
// @Success      201   {object}  dto.VariantResponse
// @Router       /api/dashboard/products/{id}/variants [post]
func (h *CatalogHandler) CreateVariant(c *fiber.Ctx) error {
	var in dto.VariantRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.variants.Create(c.UserContext(), GetRestaurantID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListVariants godoc
// @Summary      Listar variantes de un producto
// @Tags         dashboard-variants
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}  dto.VariantResponse
// @Router       /api/dashboard/products/{id}/variants [get]
func (h *CatalogHandler) ListVariants(c *fiber.Ctx) error {
	out, err := h.variants.List(c.UserContext(), GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateVariant godoc
// @Summary      Actualizar variante
// @Tags         dashboard-variants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la variante"
// @Param        body  body  dto.VariantRequest  true  "Nombre y precio"
// @Success      200   {object}  dto.VariantResponse
// @Router       /api/dashboard/variants/{id} [put]
func (h *CatalogHandler) UpdateVariant(c *fiber.Ctx) error {
	var in dto.VariantRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.variants.Update(c.UserContext(), GetRestaurantID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteVariant godoc
// @Summary      Eliminar variante
// @Tags         dashboard-variants
// @Security     Bearer
// @Param        id   path  string  true  "ID de la variante"
// @Success      204
// @Router       /api/dashboard/variants/{id} [delete]
func (h *CatalogHandler) DeleteVariant(c *fiber.Ctx) error {
	if err := h.variants.Delete(c.UserContext(), GetRestaurantID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
