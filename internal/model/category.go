package model

import "time"

type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex"`
	Slug        string    `json:"slug" gorm:"not null;uniqueIndex"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Icon        string    `json:"icon,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
