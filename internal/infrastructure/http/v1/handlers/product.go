package handlers

import (
	"stockcard/internal/domain/catalogs/product"
	"stockcard/internal/infrastructure/http/v1/dto"
)

// ProductHTTPHandler is a type alias for the configured generic handler.
type ProductHTTPHandler = CatalogHandler[
	*product.Product,
	dto.CreateProductRequest,
	dto.UpdateProductRequest,
]

// NewProductHandler creates a configured generic handler for products.
func NewProductHandler(
	base *BaseHandler,
	service *product.Service,
) *ProductHTTPHandler {

	config := CatalogHandlerConfig[
		*product.Product,
		dto.CreateProductRequest,
		dto.UpdateProductRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "product",

		MapCreateDTO: func(req dto.CreateProductRequest) *product.Product {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.Product) *product.Product {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *product.Product) any {
			return dto.FromProduct(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
