package model

import (
	"time"
)

// Review is a 1-5 star rating of a book with an optional comment.
type Review struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`           // UUID
	BookID    string    `gorm:"type:varchar(100);not null;index" json:"book_id"` // 리뷰 대상 도서
	Rating    int       `gorm:"not null" json:"rating"`                          // 평점 (1-5)
	Comment   *string   `gorm:"type:text" json:"comment"`                        // 선택 코멘트
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}
