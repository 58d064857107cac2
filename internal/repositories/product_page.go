package repositories

import (
	"fmt"
	"net/url"

	"katalog/internal/models"
)

// ProductPage is one page of a product listing.
type ProductPage struct {
	Items   []models.Product
	Total   int64
	Page    int
	PerPage int
}

// PageMeta describes the position of a page within the full result set.
type PageMeta struct {
	CurrentPage int    `json:"current_page"`
	From        *int   `json:"from"`
	To          *int   `json:"to"`
	LastPage    int    `json:"last_page"`
	PerPage     int    `json:"per_page"`
	Total       int64  `json:"total"`
	Path        string `json:"path"`
}

// PageLinks holds navigation URLs; absent pages are null.
type PageLinks struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

// LastPage returns the number of the final page, at least 1.
func (p ProductPage) LastPage() int {
	if p.Total == 0 || p.PerPage <= 0 {
		return 1
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// Meta builds pagination metadata for a listing served at path.
func (p ProductPage) Meta(path string) PageMeta {
	meta := PageMeta{
		CurrentPage: p.Page,
		LastPage:    p.LastPage(),
		PerPage:     p.PerPage,
		Total:       p.Total,
		Path:        path,
	}
	if len(p.Items) > 0 {
		from := (p.Page-1)*p.PerPage + 1
		to := from + len(p.Items) - 1
		meta.From = &from
		meta.To = &to
	}
	return meta
}

// Links builds page URLs from path, keeping every query value except page.
func (p ProductPage) Links(path string, query url.Values) PageLinks {
	pageURL := func(n int) string {
		q := url.Values{}
		for k, vs := range query {
			q[k] = vs
		}
		q.Set("page", fmt.Sprint(n))
		return path + "?" + q.Encode()
	}

	last := p.LastPage()
	links := PageLinks{First: pageURL(1), Last: pageURL(last)}
	if p.Page > 1 {
		prev := pageURL(min(p.Page-1, last))
		links.Prev = &prev
	}
	if p.Page < last {
		next := pageURL(p.Page + 1)
		links.Next = &next
	}
	return links
}
