package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type SaleStatus string

const (
	SaleCompleted SaleStatus = "Completada"
	SaleCancelled SaleStatus = "Cancelada"
	SaleRefunded  SaleStatus = "Reembolsada"
)

// Valid reports whether s is one of the three accepted states.
func (s SaleStatus) Valid() bool {
	switch s {
	case SaleCompleted, SaleCancelled, SaleRefunded:
		return true
	}
	return false
}

type Sale struct {
	ID            uint            `gorm:"column:id_venta;primaryKey" json:"id_venta"`
	SaleDate      time.Time       `gorm:"column:fecha_venta;not null;index" json:"fecha_venta"`
	Total         decimal.Decimal `gorm:"column:total;type:decimal(10,2);not null" json:"total"`
	PaymentMethod string          `gorm:"column:metodo_pago;type:varchar(50);not null" json:"metodo_pago"`
	BranchID      *uint           `gorm:"column:sucursal;index" json:"sucursal"`
	EmployeeID    *uint           `gorm:"column:empleado_venta;index" json:"empleado_venta"`
	Status        SaleStatus      `gorm:"column:estado;type:varchar(20);not null" json:"estado"`
	Timestamps

	Branch    *Branch        `gorm:"foreignKey:BranchID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Employee  *Employee      `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	LineItems []SaleLineItem `gorm:"foreignKey:SaleID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"detalles"`
}

func (Sale) TableName() string {
	return "ventas"
}

// LineItemsTotal sums the subtotals. Total is caller-supplied, so the two may differ.
func (s *Sale) LineItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range s.LineItems {
		sum = sum.Add(item.Subtotal)
	}
	return sum
}
