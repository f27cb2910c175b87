package models

import (
	"time"

	"gorm.io/datatypes"
)

type PostType string

const (
	PostDiscussion PostType = "discussion"
	PostQuestion   PostType = "question"
)

type ForumPost struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	CourseID uint     `json:"course_id" gorm:"not null;index"`
	AuthorID uint     `json:"author_id" gorm:"not null;index"`
	Title    string   `json:"title" gorm:"not null;size:200"`
	Content  string   `json:"content" gorm:"type:text;not null"`
	Type     PostType `json:"type" gorm:"size:20;default:discussion"`

	IsPinned bool `json:"is_pinned" gorm:"default:false"`
	IsLocked bool `json:"is_locked" gorm:"default:false"`

	// Free-form attachment metadata (links, uploaded file refs)
	Metadata datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author  *User        `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Course  *Course      `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Replies []ForumReply `json:"replies,omitempty" gorm:"foreignKey:PostID"`
}

func (ForumPost) TableName() string {
	return "forum_posts"
}

type ForumReply struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	PostID   uint   `json:"post_id" gorm:"not null;index"`
	AuthorID uint   `json:"author_id" gorm:"not null"`
	Content  string `json:"content" gorm:"type:text;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

func (ForumReply) TableName() string {
	return "forum_replies"
}
