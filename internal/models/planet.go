package models

// Planet is a read-only catalog entry.
type Planet struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"type:varchar(250);not null" validate:"required,max=250"`
	Description *string `json:"description" gorm:"type:varchar(250)" validate:"omitempty,max=250"`
}

func (Planet) TableName() string {
	return "planeta"
}
