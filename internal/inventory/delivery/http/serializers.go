package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/population/internal/inventory/domain"
	"github.com/tair/population/internal/inventory/usecase/command"
	"github.com/tair/population/pkg/apperror"
)

// payload keeps the raw JSON of every supplied field so that partial updates
// can tell an omitted field from a null or zero one.
type payload map[string]json.RawMessage

func decodePayload(r *http.Request) (payload, error) {
	var p payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p == nil {
		return nil, apperror.FieldError("non_field_errors", "Invalid data. Expected a JSON object.")
	}
	return p, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// str returns the string under key, or nil when absent or invalid.
func (p payload) str(errs *apperror.ValidationError, key string) *string {
	raw, ok := p[key]
	if !ok {
		return nil
	}
	if isNull(raw) {
		errs.Add(key, "This field may not be null.")
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		errs.Add(key, "Not a valid string.")
		return nil
	}
	return &s
}

// nullableStr handles optional text fields where null clears the value.
func (p payload) nullableStr(errs *apperror.ValidationError, key string) domain.Optional[*string] {
	raw, ok := p[key]
	if !ok {
		return domain.None[*string]()
	}
	if isNull(raw) {
		return domain.Some[*string](nil)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		errs.Add(key, "Not a valid string.")
		return domain.None[*string]()
	}
	return domain.Some(&s)
}

// maxDecimalInput caps the raw token handed to the decimal parser.
const maxDecimalInput = 64

// decimal accepts JSON numbers and numeric strings.
func (p payload) decimal(errs *apperror.ValidationError, key string) *decimal.Decimal {
	raw, ok := p[key]
	if !ok {
		return nil
	}
	d, msg := parseDecimal(raw)
	if msg != "" {
		errs.Add(key, msg)
		return nil
	}
	return &d
}

func parseDecimal(raw json.RawMessage) (decimal.Decimal, string) {
	if isNull(raw) {
		return decimal.Decimal{}, "This field may not be null."
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) > maxDecimalInput {
		return decimal.Decimal{}, "A valid number is required."
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(raw); err != nil || !domain.DecimalInBounds(d) {
		return decimal.Decimal{}, "A valid number is required."
	}
	return d, ""
}

func (p payload) boolean(errs *apperror.ValidationError, key string) *bool {
	raw, ok := p[key]
	if !ok {
		return nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil || isNull(raw) {
		errs.Add(key, "Must be a valid boolean.")
		return nil
	}
	return &b
}

func parseID(raw json.RawMessage) (uint, bool) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		n = json.Number(s)
	}
	id, err := strconv.ParseUint(n.String(), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// recipe decodes ingredients_data. An absent key yields None; an explicit
// list, including an empty one, yields Some.
func (p payload) recipe(errs *apperror.ValidationError) domain.Optional[[]domain.IngredientRequirement] {
	raw, ok := p[domain.RecipeField]
	if !ok {
		return domain.None[[]domain.IngredientRequirement]()
	}
	if isNull(raw) {
		errs.Add(domain.RecipeField, "This field may not be null.")
		return domain.None[[]domain.IngredientRequirement]()
	}

	var entries []payload
	if err := json.Unmarshal(raw, &entries); err != nil {
		errs.Add(domain.RecipeField, "Expected a list of objects.")
		return domain.None[[]domain.IngredientRequirement]()
	}

	reqs := make([]domain.IngredientRequirement, 0, len(entries))
	for i, entry := range entries {
		prefix := fmt.Sprintf("%s.%d.", domain.RecipeField, i)
		var req domain.IngredientRequirement

		if rawID, ok := entry["ingredient_id"]; !ok || isNull(rawID) {
			errs.Add(prefix+"ingredient_id", "This field is required.")
		} else if id, ok := parseID(rawID); !ok {
			errs.Add(prefix+"ingredient_id", "A valid integer is required.")
		} else {
			req.IngredientID = id
		}

		if rawQty, ok := entry["quantity_required"]; !ok {
			errs.Add(prefix+"quantity_required", "This field is required.")
		} else if d, msg := parseDecimal(rawQty); msg != "" {
			errs.Add(prefix+"quantity_required", msg)
		} else {
			req.QuantityRequired = d
		}

		reqs = append(reqs, req)
	}
	return domain.Some(reqs)
}

func (p payload) unit(errs *apperror.ValidationError) *domain.Unit {
	s := p.str(errs, "unit")
	if s == nil {
		return nil
	}
	u := domain.Unit(*s)
	return &u
}

func (p payload) category(errs *apperror.ValidationError) *domain.Category {
	s := p.str(errs, "category")
	if s == nil {
		return nil
	}
	c := domain.Category(*s)
	return &c
}

// Each decoder returns the command plus every wire-level problem found.
// Callers merge the command's own validation into these errors; the first
// message recorded for a field wins, so a wire-level error is not
// overwritten by e.g. "This field is required." for the same field.

func decodeCreateIngredient(p payload) (command.CreateIngredientCommand, *apperror.ValidationError) {
	errs := apperror.NewValidationError()
	cmd := command.CreateIngredientCommand{
		Quantity:      p.decimal(errs, "quantity"),
		MinStockLevel: p.decimal(errs, "min_stock_level"),
		CostPerUnit:   p.decimal(errs, "cost_per_unit"),
	}
	if name := p.str(errs, "name"); name != nil {
		cmd.Name = *name
	}
	if description, ok := p.nullableStr(errs, "description").Get(); ok {
		cmd.Description = description
	}
	if unit := p.unit(errs); unit != nil {
		cmd.Unit = *unit
		if *unit == "" {
			errs.Add("unit", "\"\" is not a valid choice.")
		}
	}
	return cmd, errs
}

func decodeUpdateIngredient(id uint, p payload) (command.UpdateIngredientCommand, *apperror.ValidationError) {
	errs := apperror.NewValidationError()
	cmd := command.UpdateIngredientCommand{
		ID:            id,
		Name:          p.str(errs, "name"),
		Description:   p.nullableStr(errs, "description"),
		Quantity:      p.decimal(errs, "quantity"),
		Unit:          p.unit(errs),
		MinStockLevel: p.decimal(errs, "min_stock_level"),
		CostPerUnit:   p.decimal(errs, "cost_per_unit"),
	}
	return cmd, errs
}

func decodeCreateItem(p payload) (command.CreateItemCommand, *apperror.ValidationError) {
	errs := apperror.NewValidationError()
	cmd := command.CreateItemCommand{
		Price:       p.decimal(errs, "price"),
		IsAvailable: p.boolean(errs, "is_available"),
	}
	if name := p.str(errs, "name"); name != nil {
		cmd.Name = *name
	}
	if description, ok := p.nullableStr(errs, "description").Get(); ok {
		cmd.Description = description
	}
	if category := p.category(errs); category != nil {
		cmd.Category = *category
		if *category == "" {
			errs.Add("category", "\"\" is not a valid choice.")
		}
	}
	if reqs, ok := p.recipe(errs).Get(); ok {
		cmd.Recipe = reqs
	}
	return cmd, errs
}

func decodeUpdateItem(id uint, p payload) (command.UpdateItemCommand, *apperror.ValidationError) {
	errs := apperror.NewValidationError()
	cmd := command.UpdateItemCommand{
		ID:          id,
		Name:        p.str(errs, "name"),
		Description: p.nullableStr(errs, "description"),
		Category:    p.category(errs),
		Price:       p.decimal(errs, "price"),
		IsAvailable: p.boolean(errs, "is_available"),
		Recipe:      p.recipe(errs),
	}
	return cmd, errs
}

// fixed2 renders decimals the way they are stored: two decimal places,
// quoted to avoid float rounding on the client.
type fixed2 decimal.Decimal

func (d fixed2) MarshalJSON() ([]byte, error) {
	return []byte(`"` + decimal.Decimal(d).StringFixed(2) + `"`), nil
}

type ingredientResponse struct {
	ID            uint        `json:"id"`
	Name          string      `json:"name"`
	Description   *string     `json:"description"`
	Quantity      fixed2      `json:"quantity"`
	Unit          domain.Unit `json:"unit"`
	MinStockLevel fixed2      `json:"min_stock_level"`
	CostPerUnit   fixed2      `json:"cost_per_unit"`
	IsLowStock    bool        `json:"is_low_stock"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func newIngredientResponse(i domain.Ingredient) ingredientResponse {
	return ingredientResponse{
		ID:            i.ID,
		Name:          i.Name,
		Description:   i.Description,
		Quantity:      fixed2(i.Quantity),
		Unit:          i.Unit,
		MinStockLevel: fixed2(i.MinStockLevel),
		CostPerUnit:   fixed2(i.CostPerUnit),
		IsLowStock:    i.IsLowStock(),
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

func newIngredientResponses(ingredients []domain.Ingredient) []ingredientResponse {
	out := make([]ingredientResponse, 0, len(ingredients))
	for _, i := range ingredients {
		out = append(out, newIngredientResponse(i))
	}
	return out
}

type recipeLinkResponse struct {
	ID               uint        `json:"id"`
	IngredientID     uint        `json:"ingredient"`
	IngredientName   string      `json:"ingredient_name"`
	IngredientUnit   domain.Unit `json:"ingredient_unit"`
	QuantityRequired fixed2      `json:"quantity_required"`
}

type itemResponse struct {
	ID              uint                 `json:"id"`
	Name            string               `json:"name"`
	Description     *string              `json:"description"`
	Category        domain.Category      `json:"category"`
	Price           fixed2               `json:"price"`
	IsAvailable     bool                 `json:"is_available"`
	ItemIngredients []recipeLinkResponse `json:"item_ingredients"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func newItemResponse(item domain.Item) itemResponse {
	links := make([]recipeLinkResponse, 0, len(item.Recipe))
	for _, link := range item.Recipe {
		resp := recipeLinkResponse{
			ID:               link.ID,
			IngredientID:     link.IngredientID,
			QuantityRequired: fixed2(link.QuantityRequired),
		}
		if link.Ingredient != nil {
			resp.IngredientName = link.Ingredient.Name
			resp.IngredientUnit = link.Ingredient.Unit
		}
		links = append(links, resp)
	}

	return itemResponse{
		ID:              item.ID,
		Name:            item.Name,
		Description:     item.Description,
		Category:        item.Category,
		Price:           fixed2(item.Price),
		IsAvailable:     item.IsAvailable,
		ItemIngredients: links,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

func newItemResponses(items []domain.Item) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, newItemResponse(item))
	}
	return out
}
