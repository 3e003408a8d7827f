package models

// ArticleStatusModel is one entry in the ordered publication-status list.
// Multiple statuses may be flagged live.
type ArticleStatusModel struct {
	Base
	Name     string `json:"name"     gorm:"not null;size:50"`
	Ordering int    `json:"ordering" gorm:"default:0;index"`
	IsLive   bool   `json:"is_live"  gorm:"default:false"`
}

func (ArticleStatusModel) TableName() string { return "article_statuses" }
