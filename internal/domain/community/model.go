package community

import "go.mongodb.org/mongo-driver/bson"

const StatusSubscribed = "subscribed"

const (
	DefaultForumLimit = 6
	MaxForumLimit     = 50
	MaxForumPage      = 100000
)

type SubscribeInput struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name,omitempty"`
}

type Page struct {
	Page  int
	Limit int
}

// Normalize clamps page to [1, MaxForumPage] and limit to (0, MaxForumLimit].
func (p *Page) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxForumPage {
		p.Page = MaxForumPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultForumLimit
	}
	if p.Limit > MaxForumLimit {
		p.Limit = MaxForumLimit
	}
}

func (p Page) Skip() int64 { return int64(p.Page-1) * int64(p.Limit) }

type ForumPage struct {
	Posts []bson.M `json:"posts"`
	Page  int      `json:"page"`
	Limit int      `json:"limit"`
	Total int64    `json:"total"`
}
