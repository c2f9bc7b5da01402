package model

// DefaultLikes is the like count assigned when a gif is created without one.
const DefaultLikes = 0

// Gif describes the catalog entry stored in Postgres.
type Gif struct {
	ID    uint   `db:"id" json:"id" gorm:"primaryKey"`
	Name  string `db:"name" json:"name" gorm:"type:text;not null;uniqueIndex"`
	URL   string `db:"url" json:"url" gorm:"type:text;not null"`
	Likes int    `db:"likes" json:"likes" gorm:"not null;default:0"`
}
