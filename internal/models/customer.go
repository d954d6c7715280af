package models

type Customer struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string `gorm:"size:255;not null;index" json:"name"`
	Email    string `gorm:"size:255;not null" json:"email"`
	ImageURL string `gorm:"column:image_url;size:255;not null" json:"image_url"`
}
