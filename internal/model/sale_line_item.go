package model

import "github.com/shopspring/decimal"

// SaleLineItem is one product/quantity/price row of a sale.
type SaleLineItem struct {
	ID        uint            `gorm:"column:id_detalle;primaryKey" json:"id_detalle"`
	SaleID    uint            `gorm:"column:venta;not null;index" json:"venta"`
	ProductID uint            `gorm:"column:producto;not null;index" json:"producto"`
	Product   *Product        `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Quantity  int             `gorm:"column:cantidad;not null" json:"cantidad"`
	UnitPrice decimal.Decimal `gorm:"column:precio_unitario;type:decimal(10,2);not null" json:"precio_unitario"`
	Subtotal  decimal.Decimal `gorm:"column:subtotal;type:decimal(10,2);not null" json:"subtotal"`
	Timestamps
}

func (SaleLineItem) TableName() string {
	return "detalles_venta"
}
