package model

import (
	"time"
)

// Book is a catalog entry keyed by its ISBN.
type Book struct {
	ISBN          uint64    `gorm:"primaryKey;autoIncrement:false" json:"book_id"` // ISBN
	Name          string    `gorm:"type:varchar(255);not null" json:"book_name"`   // 제목
	Description   string    `gorm:"type:text" json:"book_description"`             // 소개
	Price         float64   `gorm:"not null" json:"price"`                         // 가격
	Author        string    `gorm:"type:varchar(255);index" json:"author"`         // 저자 이름 ("이름 성")
	Genre         string    `gorm:"type:varchar(100);index" json:"genre"`          // 장르
	Publisher     string    `gorm:"type:varchar(255);index" json:"publisher"`      // 출판사
	YearPublished int       `json:"year_published"`                                // 출간 연도
	CopiesSold    int       `gorm:"not null;default:0;index" json:"copies_sold"`   // 판매 부수
	Rating        float64   `gorm:"not null;default:0" json:"rating"`              // 평점 (0-5)
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

func (Book) TableName() string {
	return "books"
}

type Author struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement:false" json:"author_id"`
	FirstName string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Biography string    `gorm:"type:text" json:"biography"`
	Publisher string    `gorm:"type:varchar(255)" json:"publisher"`
	CreatedAt time.Time `json:"-"`
}

func (Author) TableName() string {
	return "authors"
}

// FullName is the name books are attributed to.
func (a *Author) FullName() string {
	return a.FirstName + " " + a.LastName
}
