package model

import "github.com/shopspring/decimal"

type Product struct {
	ID          uint            `gorm:"column:id_producto;primaryKey" json:"id_producto"`
	Name        string          `gorm:"column:nombre;type:varchar(100);not null" json:"nombre"`
	Description *string         `gorm:"column:descripcion;type:text" json:"descripcion"`
	Price       decimal.Decimal `gorm:"column:precio;type:decimal(10,2);not null" json:"precio"`
	BranchID    *uint           `gorm:"column:sucursal;index" json:"sucursal"`
	Branch      *Branch         `gorm:"foreignKey:BranchID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Timestamps
}

func (Product) TableName() string {
	return "productos"
}
