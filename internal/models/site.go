package models

// SiteModel is an entry in the site registry. Articles with no explicit site
// association are attached to the configured default site on save.
type SiteModel struct {
	Base
	Name   string `json:"name"   gorm:"not null"`
	Domain string `json:"domain" gorm:"uniqueIndex;not null"`
}

func (SiteModel) TableName() string { return "sites" }
