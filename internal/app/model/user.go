package model

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primarykey" json:"-"`                                   // 내부 ID
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"` // 로그인 이름, 장바구니/위시리스트의 user_id
	PasswordHash string    `gorm:"not null" json:"-"`                                      // 비밀번호 해시
	Name         string    `json:"name,omitempty"`                                         // 이름
	Email        string    `json:"email,omitempty"`                                        // 이메일 (생성 후 변경 불가)
	HomeAddress  string    `json:"home_address,omitempty"`                                 // 주소
	CreatedAt    time.Time `json:"created_at"`                                             // 생성 시각
	UpdatedAt    time.Time `json:"updated_at"`                                             // 수정 시각
}

func (User) TableName() string {
	return "users"
}
