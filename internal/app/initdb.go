package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/talkincode/supermarkt/internal/domain"
	"github.com/talkincode/supermarkt/internal/importer"
)

// demoProducts is one valid product per category relative to today.
func (a *Application) demoProducts() []domain.Product {
	today := a.Today()
	date := func(days int) *time.Time {
		t := today.AddDays(days).Time()
		return &t
	}
	return []domain.Product{
		{ID: "demo-cheese-gouda", Type: "Cheese", Name: "Gouda", Quality: 45, ExpiryDate: date(75), BasePrice: 8.5},
		{ID: "demo-wine-merlot", Type: "Wine", Name: "Merlot", Quality: 20, BasePrice: 12.95},
		{ID: "demo-meat-beef", Type: "Meat", Name: "Ribeye", Quality: 60, ExpiryDate: date(3), BasePrice: 14, MeatType: "BEEF"},
		{ID: "demo-meat-lamb", Type: "Meat", Name: "Lamb chops", Quality: 62, ExpiryDate: date(8), BasePrice: 11.5, MeatType: "LAMB", VacuumPacked: true},
		{ID: "demo-bread", Type: "CommonProduct", Name: "Sourdough", Quality: 30, ExpiryDate: date(4), BasePrice: 3.2},
	}
}

// checkProducts writes the demo rows to the products table. Existing demo
// rows get their expiry dates moved relative to today so they stay valid.
func (a *Application) checkProducts() {
	if a.gormDB == nil {
		return
	}
	for _, p := range a.demoProducts() {
		res := a.gormDB.Model(&domain.Product{}).Where("id = ?", p.ID).
			Updates(map[string]interface{}{"expiry_date": p.ExpiryDate, "updated_at": time.Now()})
		if res.Error != nil {
			zap.L().Error("failed to refresh demo product", zap.String("id", p.ID), zap.Error(res.Error))
			continue
		}
		if res.RowsAffected > 0 {
			continue
		}
		p.CreatedAt = time.Now()
		p.UpdatedAt = time.Now()
		if err := a.gormDB.Create(&p).Error; err != nil {
			zap.L().Error("failed to create demo product", zap.String("id", p.ID), zap.Error(err))
		} else {
			zap.L().Info("initialized demo product", zap.String("id", p.ID), zap.String("type", p.Type))
		}
	}
}

// loadDemoProducts puts the demo products on the shelf. They are always
// built for today's date, whatever the products table holds.
func (a *Application) loadDemoProducts(ctx context.Context) {
	res, err := importer.ImportSQL(ctx, rowsSource(a.demoProducts()), domain.Product{}.TableName(), a.ImportOptions())
	added := 0
	if err == nil {
		added, err = a.addImported(res, "demo")
	}
	if err != nil {
		zap.L().Warn("demo products partially loaded", zap.String("namespace", "app"), zap.Error(err))
	}
	zap.L().Info("demo products loaded", zap.String("namespace", "app"), zap.Int("count", added))
}

// rowsSource serves product rows from memory in the shape the database
// returns them.
type rowsSource []domain.Product

func (s rowsSource) Rows(_ context.Context, _ string) ([]map[string]interface{}, error) {
	rows := make([]map[string]interface{}, 0, len(s))
	for _, p := range s {
		rows = append(rows, productColumns(p))
	}
	return rows, nil
}

func productColumns(p domain.Product) map[string]interface{} {
	var expiry interface{}
	if p.ExpiryDate != nil {
		expiry = *p.ExpiryDate
	}
	return map[string]interface{}{
		"id":            p.ID,
		"type":          p.Type,
		"name":          p.Name,
		"quality":       p.Quality,
		"expiry_date":   expiry,
		"base_price":    p.BasePrice,
		"meat_type":     p.MeatType,
		"vacuum_packed": p.VacuumPacked,
	}
}
