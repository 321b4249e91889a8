package models

type Employee struct {
	ID        string  `gorm:"primaryKey;type:varchar(64)"`
	FirstName string  `gorm:"type:varchar(200);not null"`
	LastName  string  `gorm:"type:varchar(200);not null"`
	Salary    float64 `gorm:"type:numeric(14,2);not null"`
	ManagerID *string `gorm:"type:varchar(64);index"`
	Ordinal   int     `gorm:"not null;index"`

	// SalaryText is the salary exactly as written in the source, when there is one.
	SalaryText string `gorm:"-"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// ManagerRef returns the manager identifier, or "" for the root.
func (e Employee) ManagerRef() string {
	if e.ManagerID == nil {
		return ""
	}
	return *e.ManagerID
}
