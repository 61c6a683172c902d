package models

import (
	"strings"
	"time"
)

// PostDate renders t the way post dates are displayed, e.g. "OCT 24, 2023".
func PostDate(t time.Time) string {
	return strings.ToUpper(t.Format("Jan 2, 2006"))
}

// ProjectDraft is what the admin editor submits. A zero ID means "new".
type ProjectDraft struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description"`
	Tags        TagList `json:"tags"`
	Link        string  `json:"link"`
	Color       string  `json:"color"`
	Image       string  `json:"image"`
}

// Project converts the draft, using id for the entity.
func (d ProjectDraft) Project(id int64) Project {
	return Project{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Tags:        normalizeTags(d.Tags),
		Link:        d.Link,
		Color:       d.Color,
		Image:       d.Image,
	}
}

// PostDraft is what the admin editor submits for a post.
type PostDraft struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title" validate:"required,max=200"`
	Date     string  `json:"date"`
	Excerpt  string  `json:"excerpt"`
	Content  string  `json:"content"`
	ReadTime string  `json:"readTime"`
	Tags     TagList `json:"tags"`
}

// Post converts the draft. An empty body is stored as absent content.
func (d PostDraft) Post(id int64) BlogPost {
	p := BlogPost{
		ID:       id,
		Title:    d.Title,
		Date:     d.Date,
		Excerpt:  d.Excerpt,
		ReadTime: d.ReadTime,
		Tags:     normalizeTags(d.Tags),
	}
	if d.Content != "" {
		content := d.Content
		p.Content = &content
	}
	return p
}
