package model

import (
	"net/url"
	"strconv"
	"strings"
)

// Page mirrors the server's paginated payload.
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Size          int `json:"size"`
	Number        int `json:"number"`
}

type PageQuery struct {
	Page    int
	Size    int
	Keyword string
}

// Values encodes the query; keyword is sent trimmed and only when non-empty.
func (q PageQuery) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("size", strconv.Itoa(q.Size))
	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		v.Set("keyword", kw)
	}
	return v
}
