package models

// TagModel is a canonical content tag. Slug is always the normalized form of
// Name; the tag service recomputes it on every save.
type TagModel struct {
	Base
	Name string `json:"name" gorm:"uniqueIndex;not null;size:64"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:64"`
}

func (TagModel) TableName() string { return "tags" }
