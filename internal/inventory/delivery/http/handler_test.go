package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/tair/population/internal/inventory/domain"
	"github.com/tair/population/internal/inventory/repository"
	"github.com/tair/population/internal/inventory/usecase/command"
	"github.com/tair/population/internal/inventory/usecase/query"
	"github.com/tair/population/pkg/auth"
	"github.com/tair/population/pkg/database"
	"github.com/tair/population/pkg/middleware"
	"github.com/tair/population/pkg/spreadsheet"
)

type testServer struct {
	router *mux.Router
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "inventory.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	if err := db.AutoMigrate(&domain.Ingredient{}, &domain.Item{}, &domain.ItemIngredient{}); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}
	sqlDB, _ := db.DB()
	t.Cleanup(func() { sqlDB.Close() })

	ingredients := repository.NewGormIngredientRepository(db)
	items := repository.NewGormItemRepository(db)
	publisher := domain.NoopPublisher{}

	commands := &CommandHandlers{
		CreateIngredient: command.NewCreateIngredientHandler(ingredients, publisher),
		UpdateIngredient: command.NewUpdateIngredientHandler(ingredients, publisher),
		DeleteIngredient: command.NewDeleteIngredientHandler(ingredients),
		CreateItem:       command.NewCreateItemHandler(items, publisher),
		UpdateItem:       command.NewUpdateItemHandler(items, publisher),
		DeleteItem:       command.NewDeleteItemHandler(items, publisher),
	}
	queries := &QueryHandlers{
		GetIngredient:   query.NewGetIngredientHandler(ingredients),
		ListIngredients: query.NewListIngredientsHandler(ingredients),
		LowStock:        query.NewLowStockHandler(ingredients),
		GetItem:         query.NewGetItemHandler(items),
		ListItems:       query.NewListItemsHandler(items),
	}

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	authenticator := middleware.NewAuthenticator(tokens, auth.NewMemoryRevocationStore())
	handler := NewInventoryHandler(commands, queries, authenticator, prometheus.NewRegistry())

	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	token, err := tokens.GenerateToken(1, "manager", "manager")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	return &testServer{router: router, token: token}
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

func (s *testServer) do(t *testing.T, method, path, body string, authed bool) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s: %v (%s)", method, path, err, rec.Body.String())
		}
	}
	return rec, env
}

type ingredientBody struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	Quantity      string  `json:"quantity"`
	Unit          string  `json:"unit"`
	MinStockLevel string  `json:"min_stock_level"`
	CostPerUnit   string  `json:"cost_per_unit"`
	IsLowStock    bool    `json:"is_low_stock"`
}

type itemBody struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	Price           string `json:"price"`
	IsAvailable     bool   `json:"is_available"`
	ItemIngredients []struct {
		ID               uint   `json:"id"`
		Ingredient       uint   `json:"ingredient"`
		IngredientName   string `json:"ingredient_name"`
		IngredientUnit   string `json:"ingredient_unit"`
		QuantityRequired string `json:"quantity_required"`
	} `json:"item_ingredients"`
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v (%s)", err, env.Data)
	}
}

func (s *testServer) createIngredient(t *testing.T, body string) ingredientBody {
	t.Helper()
	rec, env := s.do(t, http.MethodPost, "/api/inventory/ingredients", body, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create ingredient status = %d, want 201 (%s)", rec.Code, rec.Body.String())
	}
	var ing ingredientBody
	decodeData(t, env, &ing)
	return ing
}

func TestMutationsRequireAuth(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/inventory/ingredients"},
		{http.MethodPut, "/api/inventory/ingredients/1"},
		{http.MethodDelete, "/api/inventory/ingredients/1"},
		{http.MethodGet, "/api/inventory/ingredients/export"},
		{http.MethodPost, "/api/inventory/items"},
		{http.MethodPatch, "/api/inventory/items/1"},
		{http.MethodDelete, "/api/inventory/items/1"},
	}
	for _, tt := range tests {
		rec, _ := s.do(t, tt.method, tt.path, `{}`, false)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s status = %d, want 401", tt.method, tt.path, rec.Code)
		}
	}

	rec, _ := s.do(t, http.MethodGet, "/api/inventory/ingredients", "", false)
	if rec.Code != http.StatusOK {
		t.Errorf("public list status = %d, want 200", rec.Code)
	}
}

func TestCreateIngredientFormatsDecimals(t *testing.T) {
	s := newTestServer(t)

	ing := s.createIngredient(t, `{"name":"Milk","quantity":1.5,"unit":"l","min_stock_level":"2","cost_per_unit":0.8}`)
	if ing.Quantity != "1.50" || ing.MinStockLevel != "2.00" || ing.CostPerUnit != "0.80" {
		t.Errorf("decimals = %s/%s/%s, want 1.50/2.00/0.80", ing.Quantity, ing.MinStockLevel, ing.CostPerUnit)
	}
	if !ing.IsLowStock {
		t.Error("is_low_stock = false, want true")
	}

	def := s.createIngredient(t, `{"name":"Eggs"}`)
	if def.Unit != "pcs" || def.Quantity != "0.00" {
		t.Errorf("defaults = %s %s, want pcs 0.00", def.Unit, def.Quantity)
	}
}

func TestCreateIngredientValidation(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/inventory/ingredients",
		`{"name":"","unit":"lbs","quantity":"abc","min_stock_level":1.234}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	want := map[string]string{
		"name":            "This field is required.",
		"unit":            `"lbs" is not a valid choice.`,
		"quantity":        "A valid number is required.",
		"min_stock_level": "Ensure that there are no more than 2 decimal places.",
	}
	for field, msg := range want {
		if env.Errors[field] != msg {
			t.Errorf("errors[%s] = %q, want %q", field, env.Errors[field], msg)
		}
	}

	rec, _ = s.do(t, http.MethodPost, "/api/inventory/ingredients", `[1,2]`, true)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-object body status = %d, want 400", rec.Code)
	}
}

func TestCreateIngredientRejectsExtremeExponents(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"tiny exponent string", `{"name":"X","quantity":"1e-400000000"}`, "quantity"},
		{"huge exponent number", `{"name":"X","quantity":1e400000000}`, "quantity"},
		{"huge exponent cost", `{"name":"X","cost_per_unit":"5E+999999999"}`, "cost_per_unit"},
		{"overlong token", `{"name":"X","min_stock_level":"` + strings.Repeat("9", 100) + `"}`, "min_stock_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := s.do(t, http.MethodPost, "/api/inventory/ingredients", tt.body, true)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (%s)", rec.Code, rec.Body.String())
			}
			if env.Errors[tt.field] != "A valid number is required." {
				t.Errorf("errors[%s] = %q", tt.field, env.Errors[tt.field])
			}
		})
	}

	milk := s.createIngredient(t, `{"name":"Milk"}`)
	body := `{"name":"A","price":1,"ingredients_data":[{"ingredient_id":` + itoa(milk.ID) + `,"quantity_required":"1e-999999999"}]}`
	rec, env := s.do(t, http.MethodPost, "/api/inventory/items", body, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("recipe status = %d, want 400", rec.Code)
	}
	if env.Errors["ingredients_data.0.quantity_required"] != "A valid number is required." {
		t.Errorf("errors = %v", env.Errors)
	}
}

func TestLowStockEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.createIngredient(t, `{"name":"Sugar","quantity":10,"min_stock_level":2}`)
	s.createIngredient(t, `{"name":"Butter","quantity":2,"min_stock_level":2}`)
	s.createIngredient(t, `{"name":"Cocoa","quantity":1,"min_stock_level":5}`)

	rec, env := s.do(t, http.MethodGet, "/api/inventory/ingredients/low-stock", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var low []ingredientBody
	decodeData(t, env, &low)
	if len(low) != 2 || low[0].Name != "Butter" || low[1].Name != "Cocoa" {
		t.Errorf("low stock = %+v, want Butter, Cocoa", low)
	}
}

func TestItemLifecycle(t *testing.T) {
	s := newTestServer(t)
	milk := s.createIngredient(t, `{"name":"Milk","quantity":10,"unit":"l"}`)
	coffee := s.createIngredient(t, `{"name":"Coffee","quantity":5,"unit":"kg"}`)

	body := `{"name":"Latte","price":"3.5","ingredients_data":[` +
		`{"ingredient_id":` + itoa(milk.ID) + `,"quantity_required":0.2},` +
		`{"ingredient_id":"` + itoa(coffee.ID) + `","quantity_required":"0.02"}]}`
	rec, env := s.do(t, http.MethodPost, "/api/inventory/items", body, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create item status = %d, want 201 (%s)", rec.Code, rec.Body.String())
	}
	if env.Message != "Item created successfully" {
		t.Errorf("message = %q", env.Message)
	}
	var item itemBody
	decodeData(t, env, &item)
	if item.Category != "beverage" || !item.IsAvailable || item.Price != "3.50" {
		t.Errorf("item = %+v, want beverage, available, 3.50", item)
	}
	if len(item.ItemIngredients) != 2 {
		t.Fatalf("item_ingredients = %+v, want 2 entries", item.ItemIngredients)
	}
	link := item.ItemIngredients[0]
	if link.Ingredient != milk.ID || link.IngredientName != "Milk" || link.IngredientUnit != "l" || link.QuantityRequired != "0.20" {
		t.Errorf("first link = %+v", link)
	}
	path := "/api/inventory/items/" + itoa(item.ID)

	// Omitting ingredients_data leaves the recipe alone.
	rec, env = s.do(t, http.MethodPatch, path, `{"price":4}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d (%s)", rec.Code, rec.Body.String())
	}
	var patched itemBody
	decodeData(t, env, &patched)
	if patched.Price != "4.00" || len(patched.ItemIngredients) != 2 || patched.ItemIngredients[0].ID != link.ID {
		t.Errorf("patched = %+v, want price 4.00 and original links", patched)
	}

	// An empty list clears it.
	rec, env = s.do(t, http.MethodPut, path, `{"ingredients_data":[]}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d (%s)", rec.Code, rec.Body.String())
	}
	var cleared itemBody
	decodeData(t, env, &cleared)
	if len(cleared.ItemIngredients) != 0 || cleared.Name != "Latte" {
		t.Errorf("cleared = %+v, want Latte with no links", cleared)
	}

	rec, _ = s.do(t, http.MethodDelete, path, "", true)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}
	rec, env = s.do(t, http.MethodGet, path, "", false)
	if rec.Code != http.StatusNotFound || env.Error != "Item not found" {
		t.Errorf("get after delete = %d %q, want 404 Item not found", rec.Code, env.Error)
	}
}

func TestOutOfRangeIDsAreNotFound(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		method string
		path   string
		authed bool
		want   string
	}{
		{http.MethodGet, "/api/inventory/items/0", false, "Item not found"},
		{http.MethodGet, "/api/inventory/items/4294967296", false, "Item not found"},
		{http.MethodPatch, "/api/inventory/items/0", true, "Item not found"},
		{http.MethodDelete, "/api/inventory/ingredients/99999999999999999999", true, "Ingredient not found"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec, env := s.do(t, tt.method, tt.path, `{"name":"x"}`, tt.authed)
			if rec.Code != http.StatusNotFound || env.Error != tt.want {
				t.Errorf("got %d %q, want 404 %q", rec.Code, env.Error, tt.want)
			}
		})
	}
}

func TestCreateItemRecipeErrors(t *testing.T) {
	s := newTestServer(t)
	milk := s.createIngredient(t, `{"name":"Milk"}`)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing ingredient", `{"name":"A","price":1,"ingredients_data":[{"ingredient_id":` + itoa(milk.ID) + `,"quantity_required":1},{"ingredient_id":999,"quantity_required":1}]}`, "ingredients_data.1.ingredient_id"},
		{"missing quantity", `{"name":"A","price":1,"ingredients_data":[{"ingredient_id":` + itoa(milk.ID) + `}]}`, "ingredients_data.0.quantity_required"},
		{"bad id", `{"name":"A","price":1,"ingredients_data":[{"ingredient_id":"x","quantity_required":1}]}`, "ingredients_data.0.ingredient_id"},
		{"not a list", `{"name":"A","price":1,"ingredients_data":{"a":1}}`, "ingredients_data"},
		{"duplicate", `{"name":"A","price":1,"ingredients_data":[{"ingredient_id":` + itoa(milk.ID) + `,"quantity_required":1},{"ingredient_id":` + itoa(milk.ID) + `,"quantity_required":2}]}`, "ingredients_data.1.ingredient_id"},
		{"invalid category", `{"name":"A","price":1,"category":"snack"}`, "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := s.do(t, http.MethodPost, "/api/inventory/items", tt.body, true)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (%s)", rec.Code, rec.Body.String())
			}
			if _, ok := env.Errors[tt.field]; !ok {
				t.Errorf("errors = %v, want key %s", env.Errors, tt.field)
			}
		})
	}

	rec, env := s.do(t, http.MethodGet, "/api/inventory/items", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var items []itemBody
	decodeData(t, env, &items)
	if len(items) != 0 {
		t.Errorf("items after failed creates = %d, want 0", len(items))
	}
}

func TestDeleteIngredientRemovesLinks(t *testing.T) {
	s := newTestServer(t)
	milk := s.createIngredient(t, `{"name":"Milk"}`)

	rec, env := s.do(t, http.MethodPost, "/api/inventory/items",
		`{"name":"Shake","price":2,"ingredients_data":[{"ingredient_id":`+itoa(milk.ID)+`,"quantity_required":1}]}`, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create item status = %d", rec.Code)
	}
	var item itemBody
	decodeData(t, env, &item)

	rec, _ = s.do(t, http.MethodDelete, "/api/inventory/ingredients/"+itoa(milk.ID), "", true)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}

	_, env = s.do(t, http.MethodGet, "/api/inventory/items/"+itoa(item.ID), "", false)
	var after itemBody
	decodeData(t, env, &after)
	if len(after.ItemIngredients) != 0 {
		t.Errorf("links after ingredient delete = %+v, want none", after.ItemIngredients)
	}

	rec, _ = s.do(t, http.MethodDelete, "/api/inventory/ingredients/"+itoa(milk.ID), "", true)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestUpdateIngredientPartial(t *testing.T) {
	s := newTestServer(t)
	ing := s.createIngredient(t, `{"name":"Flour","description":"white","quantity":3,"unit":"kg"}`)
	path := "/api/inventory/ingredients/" + itoa(ing.ID)

	rec, env := s.do(t, http.MethodPut, path, `{"quantity":"7.25"}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	var updated ingredientBody
	decodeData(t, env, &updated)
	if updated.Quantity != "7.25" || updated.Unit != "kg" || updated.Description == nil || *updated.Description != "white" {
		t.Errorf("updated = %+v", updated)
	}

	rec, _ = s.do(t, http.MethodPut, "/api/inventory/ingredients/999", `{"quantity":1}`, true)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing ingredient status = %d, want 404", rec.Code)
	}
}

func TestExportIngredients(t *testing.T) {
	s := newTestServer(t)
	s.createIngredient(t, `{"name":"sea salt","quantity":1,"min_stock_level":3}`)

	rec, _ := s.do(t, http.MethodGet, "/api/inventory/ingredients/export", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != spreadsheet.ContentType {
		t.Errorf("Content-Type = %q", ct)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Ingredients")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[1][1] != "Sea Salt" || rows[1][6] != "Low Stock" {
		t.Errorf("row = %v, want Sea Salt ... Low Stock", rows[1])
	}
}

func TestIngredientTable(t *testing.T) {
	table := IngredientTable([]domain.Ingredient{{
		ID:            3,
		Name:          "milk",
		Quantity:      decimal.RequireFromString("5"),
		Unit:          domain.UnitLiters,
		MinStockLevel: decimal.RequireFromString("1"),
	}})
	if len(table.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(table.Rows))
	}
	row := table.Rows[0]
	if row[1] != "Milk" || row[3] != "Liters" || row[6] != "In Stock" {
		t.Errorf("row = %v", row)
	}
}

func itoa(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
