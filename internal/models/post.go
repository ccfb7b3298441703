package models

import "time"

// Post represents a published post in the Quill application.
// PubDate and AuthorID are fixed at creation; the repository layer only ever
// updates text, group and image.
type Post struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	PubDate  time.Time `gorm:"not null;index;autoCreateTime" json:"pub_date"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	GroupID  *uint     `gorm:"index" json:"group_id,omitempty"`
	Group    *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	ImageURL string    `json:"image_url,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}
