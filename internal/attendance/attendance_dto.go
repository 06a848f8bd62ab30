package attendance

import (
	"encoding/json"
	"net/url"
	"strconv"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
)

// ListQuery adalah filter list attendance yang diteruskan apa adanya ke backend.
type ListQuery struct {
	Page     int    `form:"page" json:"page" binding:"omitempty,min=1"`
	PerPage  int    `form:"per_page" json:"per_page" binding:"omitempty,min=1,max=100"`
	DateFrom string `form:"date_from" json:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" json:"date_to" binding:"omitempty,datetime=2006-01-02"`
	Status   string `form:"status" json:"status" binding:"omitempty,oneof=PRESENT LATE ABSENT LEAVE"`
	Search   string `form:"search" json:"search" binding:"omitempty,max=100"`
}

func (q ListQuery) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("per_page", strconv.Itoa(q.PerPage))
	if q.DateFrom != "" {
		v.Set("date_from", q.DateFrom)
	}
	if q.DateTo != "" {
		v.Set("date_to", q.DateTo)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

type ListResult struct {
	Items json.RawMessage
	Total int64
	Page  int
	Limit int
}
