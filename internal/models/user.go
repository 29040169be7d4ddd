package models

// User represents an account that can collect favorites.
type User struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	Email            string     `json:"email" gorm:"uniqueIndex;type:varchar(250);not null" validate:"required,email"`
	Username         string     `json:"username" gorm:"uniqueIndex;type:varchar(250);not null" validate:"required,min=3,max=250"`
	Password         string     `json:"-" gorm:"type:varchar(250);not null" validate:"required,min=6"` // No json tag for security
	SubscriptionDate *string    `json:"subscription_date" gorm:"type:varchar(250)"`
	Favorites        []Favorite `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the table name used by the existing database.
func (User) TableName() string {
	return "usuario"
}
