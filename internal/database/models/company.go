package models

// Company is the tenant boundary. Every user and task belongs to exactly
// one company, and all queries are scoped by company ID.
type Company struct {
	Base
	Name string `gorm:"not null" json:"name"`

	// Relationships
	Users []User `gorm:"foreignKey:CompanyID" json:"-"`
	Tasks []Task `gorm:"foreignKey:CompanyID" json:"-"`
}

func (Company) TableName() string {
	return "companies"
}
