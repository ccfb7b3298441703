// Package seed populates the database with built-in groups and demo content.
package seed

import (
	"quill/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInGroup is a permanent system group.
type BuiltInGroup struct {
	Title       string
	Slug        string
	Description string
}

// BuiltInGroups defines the permanent system groups.
var BuiltInGroups = []BuiltInGroup{
	{Title: "General", Slug: "general", Description: "Everything that fits nowhere else."},
	{Title: "Writing", Slug: "writing", Description: "Prose, poetry, and works in progress."},
	{Title: "Travel", Slug: "travel", Description: "Trip reports and travel notes."},
	{Title: "Technology", Slug: "technology", Description: "Software, hardware, and tinkering."},
	{Title: "Photography", Slug: "photography", Description: "Photos and the stories behind them."},
	{Title: "Books", Slug: "books", Description: "Reading lists and reviews."},
	{Title: "Music", Slug: "music", Description: "Music discovery and discussion."},
	{Title: "Food", Slug: "food", Description: "Recipes and cooking experiments."},
}

// Groups seeds the permanent built-in groups, updating title and description
// for slugs that already exist.
func Groups(db *gorm.DB) error {
	for _, item := range BuiltInGroups {
		group := models.Group{
			Title:       item.Title,
			Slug:        item.Slug,
			Description: item.Description,
		}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "updated_at"}),
		}).Create(&group).Error; err != nil {
			return err
		}
	}
	return nil
}
