package model

import "time"

// PostKind 发布类型
type PostKind string

const (
	PostKindNews  PostKind = "News"
	PostKindEvent PostKind = "Event"
)

// Valid 是否为合法的发布类型
func (k PostKind) Valid() bool {
	return k == PostKindNews || k == PostKindEvent
}

// Post 新闻/活动表，对应 posts
type Post struct {
	ID        uint      `gorm:"primaryKey"                                                                json:"id"`
	Title     *string   `gorm:"type:varchar(200)"                                                         json:"title"`
	Summary   *string   `gorm:"type:varchar(200)"                                                         json:"summary"`
	PostedAs  PostKind  `gorm:"type:varchar(10);not null;check:chk_posts_posted_as,posted_as IN ('News','Event')" json:"posted_as"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"                                                            json:"updated_at"`
	CreatedAt time.Time `gorm:"autoCreateTime"                                                            json:"created_at"`
}

// TableName 指定表名
func (Post) TableName() string { return "posts" }

// PrimaryKey 实现 Identifiable
func (p *Post) PrimaryKey() uint { return p.ID }

// String 展示名称（标题）
func (p *Post) String() string { return derefString(p.Title) }
