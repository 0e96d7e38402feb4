package models

// GenreTitle is the explicit join row between Title and Genre (has its own id).
type GenreTitle struct {
	ID      int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	GenreID int64 `json:"genre_id" gorm:"index;not null"`
	TitleID int64 `json:"title_id" gorm:"index;not null"`
}

func (GenreTitle) TableName() string {
	return "genre_titles"
}
