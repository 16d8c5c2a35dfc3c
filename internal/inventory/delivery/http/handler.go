package http

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tair/population/internal/inventory/domain"
	"github.com/tair/population/internal/inventory/usecase/command"
	"github.com/tair/population/internal/inventory/usecase/query"
	"github.com/tair/population/pkg/apperror"
	"github.com/tair/population/pkg/httpx"
	"github.com/tair/population/pkg/logger"
	"github.com/tair/population/pkg/middleware"
	"github.com/tair/population/pkg/spreadsheet"
)

// CommandHandlers groups the inventory write use cases.
type CommandHandlers struct {
	CreateIngredient *command.CreateIngredientHandler
	UpdateIngredient *command.UpdateIngredientHandler
	DeleteIngredient *command.DeleteIngredientHandler
	CreateItem       *command.CreateItemHandler
	UpdateItem       *command.UpdateItemHandler
	DeleteItem       *command.DeleteItemHandler
}

// QueryHandlers groups the inventory read use cases.
type QueryHandlers struct {
	GetIngredient   *query.GetIngredientHandler
	ListIngredients *query.ListIngredientsHandler
	LowStock        *query.LowStockHandler
	GetItem         *query.GetItemHandler
	ListItems       *query.ListItemsHandler
}

// InventoryHandler handles HTTP requests for ingredients and items.
type InventoryHandler struct {
	commands *CommandHandlers
	queries  *QueryHandlers
	auth     *middleware.Authenticator

	metrics       *middleware.HTTPMetrics
	lowStockGauge prometheus.Gauge
}

// NewInventoryHandler creates the handler and registers its collectors on reg.
func NewInventoryHandler(
	commands *CommandHandlers,
	queries *QueryHandlers,
	authenticator *middleware.Authenticator,
	reg prometheus.Registerer,
) *InventoryHandler {
	lowStockGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "inventory_service_low_stock_ingredients",
		Help: "Number of ingredients at or below their minimum stock level at the last low-stock query",
	})
	reg.MustRegister(lowStockGauge)

	return &InventoryHandler{
		commands:      commands,
		queries:       queries,
		auth:          authenticator,
		metrics:       middleware.NewHTTPMetrics(reg, "inventory_service"),
		lowStockGauge: lowStockGauge,
	}
}

// RegisterRoutes registers all inventory routes. Reads are public; every
// mutation and the export require an authenticated user.
func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api/inventory").Subrouter()

	api.HandleFunc("/ingredients", h.metrics.Wrap("/ingredients", h.ListIngredients)).Methods("GET")
	api.HandleFunc("/ingredients/low-stock", h.metrics.Wrap("/ingredients/low-stock", h.LowStock)).Methods("GET")
	api.HandleFunc("/ingredients/{id:[0-9]+}", h.metrics.Wrap("/ingredients/{id}", h.GetIngredient)).Methods("GET")
	api.HandleFunc("/items", h.metrics.Wrap("/items", h.ListItems)).Methods("GET")
	api.HandleFunc("/items/{id:[0-9]+}", h.metrics.Wrap("/items/{id}", h.GetItem)).Methods("GET")

	api.HandleFunc("/ingredients", h.metrics.Wrap("/ingredients", h.auth.RequireAuth(h.CreateIngredient))).Methods("POST")
	api.HandleFunc("/ingredients/export", h.metrics.Wrap("/ingredients/export", h.auth.RequireAuth(h.ExportIngredients))).Methods("GET")
	api.HandleFunc("/ingredients/{id:[0-9]+}", h.metrics.Wrap("/ingredients/{id}", h.auth.RequireAuth(h.UpdateIngredient))).Methods("PUT", "PATCH")
	api.HandleFunc("/ingredients/{id:[0-9]+}", h.metrics.Wrap("/ingredients/{id}", h.auth.RequireAuth(h.DeleteIngredient))).Methods("DELETE")
	api.HandleFunc("/items", h.metrics.Wrap("/items", h.auth.RequireAuth(h.CreateItem))).Methods("POST")
	api.HandleFunc("/items/{id:[0-9]+}", h.metrics.Wrap("/items/{id}", h.auth.RequireAuth(h.UpdateItem))).Methods("PUT", "PATCH")
	api.HandleFunc("/items/{id:[0-9]+}", h.metrics.Wrap("/items/{id}", h.auth.RequireAuth(h.DeleteItem))).Methods("DELETE")
}

// RegisterHealthCheck registers the health endpoint.
func (h *InventoryHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			httpx.RespondErrorMessage(w, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		httpx.RespondMessage(w, http.StatusOK, "Inventory service is healthy", nil)
	}).Methods("GET")
}

// --- Ingredients ---

// ListIngredients handles GET /api/inventory/ingredients
func (h *InventoryHandler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.queries.ListIngredients.Handle(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondData(w, http.StatusOK, newIngredientResponses(ingredients))
}

// LowStock handles GET /api/inventory/ingredients/low-stock
func (h *InventoryHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.queries.LowStock.Handle(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	h.lowStockGauge.Set(float64(len(ingredients)))
	httpx.RespondData(w, http.StatusOK, newIngredientResponses(ingredients))
}

// GetIngredient handles GET /api/inventory/ingredients/{id}
func (h *InventoryHandler) GetIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "Ingredient")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	ingredient, err := h.queries.GetIngredient.Handle(r.Context(), query.GetIngredientQuery{ID: id})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondData(w, http.StatusOK, newIngredientResponse(*ingredient))
}

// CreateIngredient handles POST /api/inventory/ingredients
func (h *InventoryHandler) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	p, err := decodePayload(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	cmd, errs := decodeCreateIngredient(p)
	if err := mergeValidation(errs, cmd.Validate()); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	ingredient, err := h.commands.CreateIngredient.Handle(r.Context(), cmd)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	logger.Info(r.Context()).
		Uint("ingredient_id", ingredient.ID).
		Str("name", ingredient.Name).
		Msg("Ingredient created")
	httpx.RespondMessage(w, http.StatusCreated, "Ingredient created successfully", newIngredientResponse(*ingredient))
}

// UpdateIngredient handles PUT /api/inventory/ingredients/{id}; fields are partial
func (h *InventoryHandler) UpdateIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "Ingredient")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	p, err := decodePayload(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	cmd, errs := decodeUpdateIngredient(id, p)
	if err := mergeValidation(errs, cmd.Validate()); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	ingredient, err := h.commands.UpdateIngredient.Handle(r.Context(), cmd)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondMessage(w, http.StatusOK, "Ingredient updated successfully", newIngredientResponse(*ingredient))
}

// DeleteIngredient handles DELETE /api/inventory/ingredients/{id}
func (h *InventoryHandler) DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "Ingredient")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	if err := h.commands.DeleteIngredient.Handle(r.Context(), command.DeleteIngredientCommand{ID: id}); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	logger.Info(r.Context()).Uint("ingredient_id", id).Msg("Ingredient deleted")
	httpx.RespondNoContent(w)
}

// ExportIngredients handles GET /api/inventory/ingredients/export
func (h *InventoryHandler) ExportIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.queries.ListIngredients.Handle(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	if err := spreadsheet.Serve(w, "ingredients", IngredientTable(ingredients)); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to export ingredients")
	}
}

// IngredientTable lays out ingredients for a spreadsheet export.
func IngredientTable(ingredients []domain.Ingredient) spreadsheet.Table {
	title := cases.Title(language.English)
	rows := make([][]interface{}, 0, len(ingredients))
	for _, ing := range ingredients {
		status := "In Stock"
		if ing.IsLowStock() {
			status = "Low Stock"
		}
		quantity, _ := ing.Quantity.Float64()
		minStock, _ := ing.MinStockLevel.Float64()
		cost, _ := ing.CostPerUnit.Float64()
		rows = append(rows, []interface{}{
			ing.ID,
			title.String(ing.Name),
			quantity,
			ing.Unit.Label(),
			minStock,
			cost,
			status,
		})
	}
	return spreadsheet.Table{
		Sheet:  "Ingredients",
		Header: []string{"id", "name", "quantity", "unit", "min_stock_level", "cost_per_unit", "status"},
		Rows:   rows,
	}
}

// --- Items ---

// ListItems handles GET /api/inventory/items
func (h *InventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListItems.Handle(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondData(w, http.StatusOK, newItemResponses(items))
}

// GetItem handles GET /api/inventory/items/{id}
func (h *InventoryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "Item")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	item, err := h.queries.GetItem.Handle(r.Context(), query.GetItemQuery{ID: id})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondData(w, http.StatusOK, newItemResponse(*item))
}

// CreateItem handles POST /api/inventory/items
func (h *InventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	p, err := decodePayload(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	cmd, errs := decodeCreateItem(p)
	if err := mergeValidation(errs, cmd.Validate()); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	item, err := h.commands.CreateItem.Handle(r.Context(), cmd)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	logger.Info(r.Context()).
		Uint("item_id", item.ID).
		Int("recipe_size", len(item.Recipe)).
		Msg("Item created")
	httpx.RespondMessage(w, http.StatusCreated, "Item created successfully", newItemResponse(*item))
}

// UpdateItem handles PUT /api/inventory/items/{id}
func (h *InventoryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "Item")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	p, err := decodePayload(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	cmd, errs := decodeUpdateItem(id, p)
	if err := mergeValidation(errs, cmd.Validate()); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	item, err := h.commands.UpdateItem.Handle(r.Context(), cmd)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondMessage(w, http.StatusOK, "Item updated successfully", newItemResponse(*item))
}

// DeleteItem handles DELETE /api/inventory/items/{id}
func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "Item")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	if err := h.commands.DeleteItem.Handle(r.Context(), command.DeleteItemCommand{ID: id}); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	logger.Info(r.Context()).Uint("item_id", id).Msg("Item deleted")
	httpx.RespondNoContent(w)
}

func mergeValidation(wire, cmd *apperror.ValidationError) error {
	wire.Merge(cmd)
	return wire.OrNil()
}
