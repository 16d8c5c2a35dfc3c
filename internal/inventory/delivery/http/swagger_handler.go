package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for the inventory service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListIngredientsDoc godoc
// @Summary List ingredients
// @Description List all ingredients ordered by name
// @Tags Ingredients
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/inventory/ingredients [get]
func (h *InventoryHandler) ListIngredientsDoc() {}

// CreateIngredientDoc godoc
// @Summary Create ingredient
// @Description Create an ingredient. Unit defaults to pcs, numeric fields to 0.
// @Tags Ingredients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,description=string,quantity=number,unit=string,min_stock_level=number,cost_per_unit=number} true "Ingredient data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string,errors=object}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/inventory/ingredients [post]
func (h *InventoryHandler) CreateIngredientDoc() {}

// LowStockDoc godoc
// @Summary Low-stock ingredients
// @Description Ingredients whose quantity is at or below their minimum stock level
// @Tags Ingredients
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/inventory/ingredients/low-stock [get]
func (h *InventoryHandler) LowStockDoc() {}

// ExportIngredientsDoc godoc
// @Summary Export ingredients
// @Description Download all ingredients as an xlsx workbook
// @Tags Ingredients
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "Workbook"
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/inventory/ingredients/export [get]
func (h *InventoryHandler) ExportIngredientsDoc() {}

// GetIngredientDoc godoc
// @Summary Get ingredient
// @Tags Ingredients
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/ingredients/{id} [get]
func (h *InventoryHandler) GetIngredientDoc() {}

// UpdateIngredientDoc godoc
// @Summary Update ingredient
// @Description Partial update; omitted fields are left unchanged
// @Tags Ingredients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Ingredient ID"
// @Param request body object{name=string,description=string,quantity=number,unit=string,min_stock_level=number,cost_per_unit=number} true "Fields to change"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string,errors=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/ingredients/{id} [put]
// @Router /api/inventory/ingredients/{id} [patch]
func (h *InventoryHandler) UpdateIngredientDoc() {}

// DeleteIngredientDoc godoc
// @Summary Delete ingredient
// @Description Delete an ingredient and every recipe link that references it
// @Tags Ingredients
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Success 204
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/ingredients/{id} [delete]
func (h *InventoryHandler) DeleteIngredientDoc() {}

// ListItemsDoc godoc
// @Summary List items
// @Description List all items ordered by category and name, with their recipes
// @Tags Items
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/inventory/items [get]
func (h *InventoryHandler) ListItemsDoc() {}

// CreateItemDoc godoc
// @Summary Create item
// @Description Create an item and its recipe in one transaction
// @Tags Items
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,description=string,category=string,price=number,is_available=bool,ingredients_data=array} true "Item data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string,errors=object}
// @Router /api/inventory/items [post]
func (h *InventoryHandler) CreateItemDoc() {}

// GetItemDoc godoc
// @Summary Get item
// @Tags Items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/items/{id} [get]
func (h *InventoryHandler) GetItemDoc() {}

// UpdateItemDoc godoc
// @Summary Update item
// @Description Partial update. When ingredients_data is present the whole recipe is replaced; an empty list clears it.
// @Tags Items
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body object{name=string,description=string,category=string,price=number,is_available=bool,ingredients_data=array} true "Fields to change"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string,errors=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/items/{id} [put]
// @Router /api/inventory/items/{id} [patch]
func (h *InventoryHandler) UpdateItemDoc() {}

// DeleteItemDoc godoc
// @Summary Delete item
// @Tags Items
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 204
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/items/{id} [delete]
func (h *InventoryHandler) DeleteItemDoc() {}
