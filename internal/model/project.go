package model

import "gorm.io/datatypes"

// Project represents a photography project shown in the portfolio.
type Project struct {
	ID          int                         `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Title       string                      `json:"title" gorm:"size:255;not null"`
	Description string                      `json:"description" gorm:"type:text"`
	Year        string                      `json:"year" gorm:"size:16"`
	Category    string                      `json:"category" gorm:"size:100;index"`
	Image       string                      `json:"image" gorm:"size:1024"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	Details     datatypes.JSONSlice[string] `json:"details"`
}

// TableName pins the collection name regardless of naming strategy.
func (Project) TableName() string {
	return "projects"
}
