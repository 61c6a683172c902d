// Package models holds the portfolio entities and their editor drafts.
package models

import (
	"encoding/json"
	"strings"
)

// Project is a showcase entry.
type Project struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Link        string   `json:"link"`
	Color       string   `json:"color"`
	Image       string   `json:"image"`
}

func (p Project) EntityID() int64 { return p.ID }

// BlogPost is a "thoughts" entry. Content is the optional full body with
// Markdown-flavoured markup.
type BlogPost struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Date     string   `json:"date"`
	Excerpt  string   `json:"excerpt"`
	Content  *string  `json:"content,omitempty"`
	ReadTime string   `json:"readTime"`
	Tags     []string `json:"tags"`
}

func (p BlogPost) EntityID() int64 { return p.ID }

// Entity is implemented by everything the content store persists.
type Entity interface {
	Project | BlogPost
	EntityID() int64
}

// SystemConfig carries remote storage and AI credentials.
type SystemConfig struct {
	APIURL       string `json:"apiUrl"`
	APIKey       string `json:"apiKey"`
	Cluster      string `json:"cluster"`
	Database     string `json:"database"`
	GeminiAPIKey string `json:"geminiApiKey,omitempty"`
}

// Configured reports whether remote storage can be used. A partially filled
// config counts as absent.
func (c SystemConfig) Configured() bool {
	return c.APIURL != "" && c.APIKey != ""
}

// Masked returns a copy fit for display: credentials keep only their last
// four characters.
func (c SystemConfig) Masked() SystemConfig {
	c.APIKey = maskSecret(c.APIKey)
	c.GeminiAPIKey = maskSecret(c.GeminiAPIKey)
	return c
}

func maskSecret(v string) string {
	switch {
	case v == "":
		return ""
	case len(v) <= 4:
		return "****"
	default:
		return "****" + v[len(v)-4:]
	}
}

// TagList decodes from a JSON array or from a comma-joined string.
type TagList []string

func (t *TagList) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err == nil {
		*t = SplitTags(raw)
		return nil
	}

	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*t = normalizeTags(list)
	return nil
}

// SplitTags splits s on commas, trims each part and drops empty ones.
func SplitTags(s string) []string {
	return normalizeTags(strings.Split(s, ","))
}

func normalizeTags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, tag := range in {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
