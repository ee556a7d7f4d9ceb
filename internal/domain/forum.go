package domain

import "time"

type Thread struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"author_id" gorm:"index"`
	Title     string    `json:"title" validate:"required"`
	Content   string    `json:"content" gorm:"type:text" validate:"required"`
	IsPinned  bool      `json:"is_pinned"`
	IsLocked  bool      `json:"is_locked"`
	Views     int64     `json:"views"`
	IsEdited  bool      `json:"is_edited"`
	EditCount int       `json:"edit_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author *Profile `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

type Post struct {
	ID        int64     `json:"id"`
	ThreadID  int64     `json:"thread_id" gorm:"index"`
	AuthorID  int64     `json:"author_id" gorm:"index"`
	Content   string    `json:"content" gorm:"type:text" validate:"required"`
	IsEdited  bool      `json:"is_edited"`
	EditCount int       `json:"edit_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author *Profile `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}
