package model

import "time"

// MovieModel mirrors the 'movies' table. Classification links live in
// explicit join tables managed through GORM many2many associations.
type MovieModel struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	Name            string `gorm:"type:varchar(255);not null"`
	Description     string `gorm:"type:text"`
	DurationMinutes int
	Certificate     string `gorm:"type:varchar(20)"`
	ReleaseDate     time.Time
	AvgRating       float64
	Poster          string `gorm:"type:text"`

	Genres    []GenreModel    `gorm:"many2many:movie_genres"`
	Formats   []FormatModel   `gorm:"many2many:movie_formats"`
	Languages []LanguageModel `gorm:"many2many:movie_languages"`
	Ratings   []RatingModel   `gorm:"foreignKey:MovieID"`
}

// TableName explicitly sets the table name for GORM.
func (MovieModel) TableName() string {
	return "movies"
}

// GenreModel mirrors the 'genres' lookup table.
type GenreModel struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null"`
}

// TableName explicitly sets the table name for GORM.
func (GenreModel) TableName() string {
	return "genres"
}

// FormatModel mirrors the 'formats' lookup table.
type FormatModel struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null"`
}

// TableName explicitly sets the table name for GORM.
func (FormatModel) TableName() string {
	return "formats"
}

// LanguageModel mirrors the 'languages' lookup table.
type LanguageModel struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null"`
}

// TableName explicitly sets the table name for GORM.
func (LanguageModel) TableName() string {
	return "languages"
}

// RatingModel mirrors the 'ratings' table.
type RatingModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	MovieID   int64  `gorm:"not null;index"`
	Username  string `gorm:"type:varchar(100);not null"`
	Score     float64
	Review    string `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RatingModel) TableName() string {
	return "ratings"
}
