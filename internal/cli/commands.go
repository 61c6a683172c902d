package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/neoportfolio/internal/models"
	"github.com/dmitrijs2005/neoportfolio/internal/netx"
	"github.com/dmitrijs2005/neoportfolio/internal/services"
)

// getSimpleText, getMultiline and getPassword are indirections used to
// facilitate testing.
var (
	getSimpleText = GetSimpleText
	getMultiline  = GetMultiline
	getPassword   = GetPassword
)

func (a *App) prompt(label string) (string, error) {
	return getSimpleText(a.reader, label, a.out)
}

func (a *App) Login(ctx context.Context) error {
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	if err := a.admin.Login(ctx, password); err != nil {
		return err
	}
	printlnFn(okText("Login successful"))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.admin.Logout(ctx)
	printlnFn("Logged out")
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (a *App) Status(ctx context.Context) error {
	s := a.admin.Status(ctx)
	printlnFn(fmt.Sprintf("storage: %s | ai: %s | admin: %s",
		s.Storage, onOff(s.AIEnabled), onOff(s.LoggedIn)))
	return nil
}

func (a *App) Projects(ctx context.Context) error {
	items, err := a.content.Projects().List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		printlnFn("No projects")
		return nil
	}
	for _, p := range items {
		printlnFn(fmt.Sprintf("#%d %s %s", p.ID, p.Title, dimText(strings.Join(p.Tags, ", "))))
	}
	return nil
}

func (a *App) Posts(ctx context.Context) error {
	items, err := a.content.Posts().List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		printlnFn("No posts")
		return nil
	}
	for _, p := range items {
		printlnFn(fmt.Sprintf("#%d %s %s", p.ID, dimText(p.Date), p.Title))
	}
	return nil
}

// readID reads an optional id; blank means a new entity.
func (a *App) readID() (int64, error) {
	s, err := a.prompt("Id (empty for new)")
	if err != nil || s == "" {
		return 0, err
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id must be an integer", services.ErrInvalidDraft)
	}
	return id, nil
}

// readFields prompts for each label in order and stops at the first error.
func (a *App) readFields(labels ...string) ([]string, error) {
	values := make([]string, len(labels))
	for i, l := range labels {
		v, err := a.prompt(l)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func (a *App) AddProject(ctx context.Context) error {
	id, err := a.readID()
	if err != nil {
		return err
	}
	f, err := a.readFields("Title", "Description", "Tags (comma separated)", "Link", "Color", "Image URL")
	if err != nil {
		return err
	}

	p, err := a.admin.SaveProject(ctx, models.ProjectDraft{
		ID:          id,
		Title:       f[0],
		Description: f[1],
		Tags:        models.SplitTags(f[2]),
		Link:        f[3],
		Color:       f[4],
		Image:       f[5],
	})
	if err != nil {
		return err
	}
	printlnFn(okText(fmt.Sprintf("Saved project #%d", p.ID)))
	return nil
}

func (a *App) AddPost(ctx context.Context) error {
	id, err := a.readID()
	if err != nil {
		return err
	}
	f, err := a.readFields("Title", "Date (empty for today)", "Excerpt", "Read time", "Tags (comma separated)")
	if err != nil {
		return err
	}
	body, err := getMultiline(a.reader, "Content (Markdown)", a.out)
	if err != nil {
		return err
	}

	p, err := a.admin.SavePost(ctx, models.PostDraft{
		ID:       id,
		Title:    f[0],
		Date:     f[1],
		Excerpt:  f[2],
		ReadTime: f[3],
		Tags:     models.SplitTags(f[4]),
		Content:  body,
	})
	if err != nil {
		return err
	}
	printlnFn(okText(fmt.Sprintf("Saved post #%d", p.ID)))
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func (a *App) DeleteProject(ctx context.Context, s string) error {
	id, err := parseID(s)
	if err != nil {
		return err
	}
	if err := a.admin.DeleteProject(ctx, id); err != nil {
		return err
	}
	printlnFn(okText(fmt.Sprintf("Deleted project #%d", id)))
	return nil
}

func (a *App) DeletePost(ctx context.Context, s string) error {
	id, err := parseID(s)
	if err != nil {
		return err
	}
	if err := a.admin.DeletePost(ctx, id); err != nil {
		return err
	}
	printlnFn(okText(fmt.Sprintf("Deleted post #%d", id)))
	return nil
}

func (a *App) ShowConfig(ctx context.Context) error {
	cfg, err := a.admin.Config(ctx)
	if err != nil {
		return err
	}
	if cfg == nil {
		printlnFn("No config saved")
		return nil
	}
	m := cfg.Masked()
	printlnFn(fmt.Sprintf("api url:  %s\napi key:  %s\ncluster:  %s\ndatabase: %s\ngemini:   %s",
		m.APIURL, m.APIKey, m.Cluster, m.Database, m.GeminiAPIKey))
	return nil
}

func (a *App) SetConfig(ctx context.Context) error {
	if !a.isLoggedIn() {
		return services.ErrNotLoggedIn
	}
	f, err := a.readFields("Data API URL", "Data API key", "Cluster", "Database", "Gemini API key")
	if err != nil {
		return err
	}
	err = a.admin.SaveConfig(ctx, models.SystemConfig{
		APIURL:       f[0],
		APIKey:       f[1],
		Cluster:      f[2],
		Database:     f[3],
		GeminiAPIKey: f[4],
	})
	if err != nil {
		return err
	}
	a.setMode(a.content.Kind(ctx))
	printlnFn(okText("Config saved"))
	return nil
}

func (a *App) Disconnect(ctx context.Context) error {
	if err := a.admin.Disconnect(ctx); err != nil {
		return err
	}
	a.setMode(a.content.Kind(ctx))
	printlnFn(okText("Config removed"))
	return nil
}

func (a *App) Ask(ctx context.Context, question string) error {
	if strings.TrimSpace(question) == "" {
		q, err := a.prompt("Question")
		if err != nil {
			return err
		}
		question = q
	}

	_, err := a.chat.Ask(ctx, question, func(chunk string) error {
		_, err := fmt.Fprint(a.out, chunk)
		return err
	})
	fmt.Fprintln(a.out)
	return err
}

func (a *App) Generate(ctx context.Context, title string) error {
	if !a.isLoggedIn() {
		return services.ErrNotLoggedIn
	}
	if strings.TrimSpace(title) == "" {
		t, err := a.prompt("Post title")
		if err != nil {
			return err
		}
		title = t
	}

	body, err := a.chat.GeneratePost(ctx, title)
	if err != nil {
		return err
	}
	printlnFn(body)
	return nil
}

// Upload sends a local image to object storage and prints the URL to put in
// a project's image field.
func (a *App) Upload(ctx context.Context, path string) error {
	if !a.isLoggedIn() {
		return services.ErrNotLoggedIn
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	up, err := a.uploads.PresignImage(ctx, filepath.Base(path))
	if err != nil {
		return err
	}

	if err := netx.UploadToPresignedURL(ctx, a.http, up.UploadURL, up.ContentType, data); err != nil {
		return err
	}

	printlnFn(okText("Uploaded:"), up.ImageURL)
	return nil
}
