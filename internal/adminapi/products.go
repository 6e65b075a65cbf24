package adminapi

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/talkincode/supermarkt/internal/goods"
	"github.com/talkincode/supermarkt/internal/importer"
	"github.com/talkincode/supermarkt/internal/inventory"
	"github.com/talkincode/supermarkt/internal/report"
	"github.com/talkincode/supermarkt/internal/simulate"
)

const (
	defaultSimulateDays = 7
	maxSimulateDays     = 3650
)

type productPayload struct {
	Type         string  `json:"type"`
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Quality      float64 `json:"quality"`
	ExpiryDate   string  `json:"expiry_date"`
	BasePrice    float64 `json:"base_price"`
	MeatType     string  `json:"meat_type"`
	VacuumPacked bool    `json:"vacuum_packed"`
}

// productView is the JSON shape of a shelf product.
type productView struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	Quality         float64 `json:"quality"`
	ExpiryDate      string  `json:"expiry_date"`
	BasePrice       float64 `json:"base_price"`
	Price           float64 `json:"price"`
	Expired         bool    `json:"expired"`
	RemoveFromShelf *bool   `json:"remove_from_shelf,omitempty"`
	MeatType        string  `json:"meat_type,omitempty"`
	VacuumPacked    *bool   `json:"vacuum_packed,omitempty"`
}

func viewOf(p *goods.Product) productView {
	exp, _ := p.ExpiryDate()
	v := productView{
		ID:         p.ID(),
		Name:       p.Name(),
		Type:       p.Category().String(),
		Quality:    p.Quality(),
		ExpiryDate: exp.String(),
		BasePrice:  p.BasePrice(),
		Price:      p.Price(),
		Expired:    p.IsExpired(),
	}
	if remove, applies := p.ShouldBeRemoved(); applies {
		v.RemoveFromShelf = &remove
	}
	if meat, ok := p.Meat(); ok {
		v.MeatType = meat.Kind.String()
		v.VacuumPacked = &meat.VacuumPacked
	}
	return v
}

func wantsText(c echo.Context) bool {
	return strings.EqualFold(c.QueryParam("format"), "text")
}

func registerProductRoutes(g *echo.Group) {
	g.GET("/products", listProducts)
	g.GET("/products/:id", getProduct)
	g.POST("/products", createProduct)
	g.DELETE("/products/:id", deleteProduct)
	g.GET("/products/:id/simulate", simulateProduct)
}

// listProducts returns the shelf in id order, optionally filtered by type.
func listProducts(c echo.Context) error {
	products := GetAppContext(c).Inventory().List()
	if typ := strings.TrimSpace(c.QueryParam("type")); typ != "" {
		filtered := products[:0]
		for _, p := range products {
			if strings.EqualFold(p.Category().String(), typ) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	if wantsText(c) {
		var sb strings.Builder
		for _, p := range products {
			sb.WriteString(p.Describe())
			sb.WriteString("\n")
		}
		return c.String(http.StatusOK, sb.String())
	}
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, viewOf(p))
	}
	return ok(c, views)
}

func getProduct(c echo.Context) error {
	p, found := GetAppContext(c).Inventory().Get(c.Param("id"))
	if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	if wantsText(c) {
		return c.String(http.StatusOK, p.Describe())
	}
	return ok(c, viewOf(p))
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	appCtx := GetAppContext(c)

	payload.ID = strings.TrimSpace(payload.ID)
	if payload.ID == "" {
		payload.ID = appCtx.NewID()
	}
	if appCtx.Inventory().Has(payload.ID) {
		return fail(c, http.StatusConflict, "DUPLICATE_ID", "A product with this ID already exists", payload.ID)
	}
	expiry, err := importer.ParseDate(payload.ExpiryDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "Invalid expiry date", err.Error())
	}

	p, err := goods.New(goods.Params{
		Category:     goods.ParseCategory(payload.Type),
		ID:           payload.ID,
		Name:         strings.TrimSpace(payload.Name),
		Quality:      payload.Quality,
		Expiry:       expiry,
		BasePrice:    payload.BasePrice,
		MeatKind:     goods.MeatKind(strings.ToUpper(strings.TrimSpace(payload.MeatType))),
		VacuumPacked: payload.VacuumPacked,
		Today:        appCtx.Today(),
	})
	if err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error(), nil)
	}
	if err := appCtx.Inventory().Add(p); err != nil {
		if errors.Is(err, inventory.ErrDuplicateID) {
			return fail(c, http.StatusConflict, "DUPLICATE_ID", "A product with this ID already exists", payload.ID)
		}
		return fail(c, http.StatusInternalServerError, "ADD_FAILED", "Failed to add product", err.Error())
	}
	return c.JSON(http.StatusCreated, Response{Code: "OK", Data: viewOf(p)})
}

func deleteProduct(c echo.Context) error {
	id := c.Param("id")
	if !GetAppContext(c).Inventory().Remove(id) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, map[string]interface{}{"id": id})
}

// simulateProduct runs one product forward without touching the shelf.
func simulateProduct(c echo.Context) error {
	days, err := parseDays(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DAYS", err.Error(), nil)
	}
	p, found := GetAppContext(c).Inventory().Get(c.Param("id"))
	if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	snapshots, err := simulate.Days(p, days)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DAYS", err.Error(), nil)
	}
	return writeResults(c, []inventory.Result{{ProductID: p.ID(), Snapshots: snapshots}})
}

func parseDays(c echo.Context) (int, error) {
	s := strings.TrimSpace(c.QueryParam("days"))
	if s == "" {
		return defaultSimulateDays, nil
	}
	days, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Errorf("days must be a whole number, got %q", s)
	}
	if days < 0 {
		return 0, simulate.ErrNegativeHorizon
	}
	if days > maxSimulateDays {
		return 0, errors.Errorf("days must be at most %d", maxSimulateDays)
	}
	return days, nil
}

func writeResults(c echo.Context, results []inventory.Result) error {
	if wantsText(c) {
		var buf bytes.Buffer
		if err := report.WriteText(&buf, results); err != nil {
			return fail(c, http.StatusInternalServerError, "REPORT_FAILED", "Failed to render simulation", err.Error())
		}
		return c.String(http.StatusOK, buf.String())
	}
	rows := report.Rows(results)
	if rows == nil {
		rows = []*report.Row{}
	}
	return ok(c, rows)
}
