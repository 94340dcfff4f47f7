package model

// Branch is a physical store location.
type Branch struct {
	ID      uint    `gorm:"column:id_sucursal;primaryKey" json:"id_sucursal"`
	Name    string  `gorm:"column:nombre;type:varchar(100);not null" json:"nombre"`
	Address string  `gorm:"column:direccion;type:varchar(255);not null" json:"direccion"`
	Phone   *string `gorm:"column:telefono;type:varchar(20)" json:"telefono"`
	Timestamps
}

func (Branch) TableName() string {
	return "sucursales"
}
