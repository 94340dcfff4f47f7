package model

type Employee struct {
	ID        uint    `gorm:"column:id_empleado;primaryKey" json:"id_empleado"`
	FirstName string  `gorm:"column:nombre;type:varchar(100);not null" json:"nombre"`
	LastName  string  `gorm:"column:apellido;type:varchar(100);not null" json:"apellido"`
	Role      string  `gorm:"column:rol;type:varchar(50);not null" json:"rol"`
	BranchID  *uint   `gorm:"column:sucursal;index" json:"sucursal"`
	Branch    *Branch `gorm:"foreignKey:BranchID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Timestamps
}

func (Employee) TableName() string {
	return "empleados"
}

// FullName joins first and last name for display and token claims.
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
