package catalog

import "time"

// Gender de la mascota.
// @Enum M, F
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// Category agrupa mascotas (perros, gatos, aves...).
type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}

// Pet es una mascota a la venta.
type Pet struct {
	ID          int64
	CategoryID  int64
	Name        string
	Description string
	Price       float64
	Gender      Gender
	ImageURL    string

	IsAvailable       bool
	StockQuantity     int
	MinStockThreshold int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Pet) IsOutOfStock() bool {
	return p.StockQuantity <= 0
}

func (p Pet) IsLowStock() bool {
	return p.StockQuantity > 0 && p.StockQuantity <= p.MinStockThreshold
}

// IsForSale: visible para clientes.
func (p Pet) IsForSale() bool {
	return p.IsAvailable && !p.IsOutOfStock()
}

// StockStatus resume el stock para la UI.
func (p Pet) StockStatus() string {
	switch {
	case p.IsOutOfStock():
		return "out_of_stock"
	case p.IsLowStock():
		return "low_stock"
	default:
		return "in_stock"
	}
}
