package models

// Character is a read-only catalog entry, exposed under /people.
type Character struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"type:varchar(250);not null" validate:"required,max=250"`
	Description *string `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
}

func (Character) TableName() string {
	return "personaje"
}
