package announcement

import (
	"encoding/json"
	"net/url"
	"strconv"
)

const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

type ListQuery struct {
	Page     int    `form:"page" json:"page" binding:"omitempty,min=1"`
	PerPage  int    `form:"per_page" json:"per_page" binding:"omitempty,min=1,max=100"`
	Priority string `form:"priority" json:"priority" binding:"omitempty,oneof=low normal high"`
	Search   string `form:"search" json:"search" binding:"omitempty,max=100"`
}

func (q ListQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(q.PerPage))
	}
	if q.Priority != "" {
		v.Set("priority", q.Priority)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

// AnnouncementRequest dipakai untuk create maupun update.
type AnnouncementRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Content     string  `json:"content" binding:"required"`
	Priority    string  `json:"priority" binding:"omitempty,oneof=low normal high"`
	PublishDate *string `json:"publish_date" binding:"omitempty,datetime=2006-01-02"`
	ExpireDate  *string `json:"expire_date" binding:"omitempty,datetime=2006-01-02"`
}

type ListResult struct {
	Items json.RawMessage
	Total int64
	Page  int
	Limit int
}
