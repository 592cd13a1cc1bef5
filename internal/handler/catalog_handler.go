package handler

import (
	"net/http"

	"fieldrep/internal/presentation"
	"fieldrep/internal/repository"
	"fieldrep/pkg/pagination"
	"fieldrep/pkg/response"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the read-only product catalog and the badge legend
// the client renders statuses and priorities with.
type CatalogHandler struct {
	catalog repository.CatalogRepository
	limits  pagination.Limits
}

func NewCatalogHandler(catalog repository.CatalogRepository, limits pagination.Limits) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, limits: limits}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api")
	{
		api.GET("/products", h.GetProducts)
		api.GET("/products/:id", h.GetProduct)
		api.GET("/presentation", h.GetPresentation)
	}
}

// GetProducts handles retrieving a page of the catalog
// @Summary      Get products
// @Description  Retrieves a paginated list of catalog products with price tiers
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page"
// @Param        search  query     string  false  "Search by product name"
// @Success      200     {object}  response.Response{data=object}
// @Failure      502     {object}  response.Response
// @Router       /api/products [get]
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	p := pagination.Parse(c, h.limits)
	products, total, err := h.catalog.List(c.Request.Context(), p.Page, p.Limit, c.Query("search"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"products":   products,
		"pagination": p.Meta(total),
	}))
}

// GetProduct handles retrieving one catalog product
// @Summary      Get product
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Response{data=model.Product}
// @Failure      404  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.ProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

// GetPresentation returns the status and priority badges
// @Summary      Get badge legend
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/presentation [get]
func (h *CatalogHandler) GetPresentation(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, presentation.Legend()))
}
