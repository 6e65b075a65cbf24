package domain

import "time"

// Product is a row of the products table. The SQL importer reads it and the
// demo seeder fills it.
type Product struct {
	ID           string     `gorm:"primaryKey;size:64" json:"id"`
	Type         string     `gorm:"size:32;index" json:"type"` // Cheese, Wine, Meat or CommonProduct
	Name         string     `gorm:"index" json:"name"`
	Quality      float64    `json:"quality"`
	ExpiryDate   *time.Time `gorm:"type:date" json:"expiry_date"`
	BasePrice    float64    `json:"base_price"`
	MeatType     string     `gorm:"size:16" json:"meat_type"`
	VacuumPacked bool       `json:"vacuum_packed"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

// ShelfEvent records what happened to a product on the live shelf.
type ShelfEvent struct {
	ID        int64     `json:"id,string"`
	ProductID string    `gorm:"index;size:64" json:"product_id"`
	Action    string    `gorm:"size:32" json:"action"` // added, removed, advanced
	Detail    string    `json:"detail"`
	EventTime time.Time `gorm:"index" json:"event_time"`
}

// TableName Specify table name
func (ShelfEvent) TableName() string {
	return "shelf_event"
}
