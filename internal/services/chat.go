package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/neoportfolio/internal/gemini"
	"github.com/dmitrijs2005/neoportfolio/internal/logging"
	"github.com/dmitrijs2005/neoportfolio/internal/models"
)

// Generator is the language model client.
type Generator interface {
	Generate(ctx context.Context, req gemini.Request) (string, error)
	Stream(ctx context.Context, req gemini.Request, onChunk func(string) error) (string, error)
}

const assistantPersona = `You are NEO_MIND, a cyberpunk digital construct of the developer's portfolio.
STYLE: Raw, Neobrutalist, Technical, Concise.
TONE: Sarcastic but helpful. Use uppercase for emphasis.
Constraint: Keep answers under 50 words unless asked for detail.
Context: %s`

const writerPersona = `You are a technical content writer. Write raw, opinionated, neobrutalist-style technical blog posts.
Keep sentences short. Use Markdown. Format: Introduction, Key Points (use bullet points), Conclusion.
Use ## for Headers. Use ** for bold.`

type ChatService struct {
	resolver ConfigResolver
	store    ContentStore
	gen      Generator
	log      logging.Logger
}

func NewChatService(resolver ConfigResolver, store ContentStore, gen Generator, log logging.Logger) *ChatService {
	return &ChatService{resolver: resolver, store: store, gen: gen, log: log.With("component", "chat")}
}

type projectSummary struct {
	Title string   `json:"title"`
	Desc  string   `json:"desc"`
	Tags  []string `json:"tags"`
}

type postSummary struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

// BuildContext renders the portfolio content the assistant may talk about.
func BuildContext(projects []models.Project, posts []models.BlogPost) (string, error) {
	ps := make([]projectSummary, 0, len(projects))
	for _, p := range projects {
		tags := p.Tags
		if tags == nil {
			tags = []string{}
		}
		ps = append(ps, projectSummary{Title: p.Title, Desc: p.Description, Tags: tags})
	}
	bs := make([]postSummary, 0, len(posts))
	for _, p := range posts {
		bs = append(bs, postSummary{Title: p.Title, Desc: p.Excerpt})
	}

	pj, err := json.Marshal(ps)
	if err != nil {
		return "", fmt.Errorf("encode projects: %w", err)
	}
	bj, err := json.Marshal(bs)
	if err != nil {
		return "", fmt.Errorf("encode posts: %w", err)
	}

	return fmt.Sprintf("You are the digital portfolio assistant.\nPROJECTS DATABASE: %s.\nBLOG DATABASE: %s.", pj, bj), nil
}

// Ask answers a visitor question, streaming increments to onChunk, and
// returns the full answer.
func (s *ChatService) Ask(ctx context.Context, question string, onChunk func(string) error) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}
	key := s.resolver.AIKey(ctx)
	if key == "" {
		return "", ErrAIDisabled
	}

	projects, err := s.store.Projects().List(ctx)
	if err != nil {
		return "", err
	}
	posts, err := s.store.Posts().List(ctx)
	if err != nil {
		return "", err
	}

	portfolio, err := BuildContext(projects, posts)
	if err != nil {
		return "", err
	}

	answer, err := s.gen.Stream(ctx, gemini.Request{
		APIKey: key,
		System: fmt.Sprintf(assistantPersona, portfolio),
		Prompt: question,
	}, onChunk)
	if err != nil {
		s.log.Error(ctx, "chat failed", "error", err)
		return answer, fmt.Errorf("chat: %w", err)
	}
	return answer, nil
}

// GeneratePost drafts a Markdown post body for title.
func (s *ChatService) GeneratePost(ctx context.Context, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title required", ErrInvalidDraft)
	}
	key := s.resolver.AIKey(ctx)
	if key == "" {
		return "", ErrAIDisabled
	}

	body, err := s.gen.Generate(ctx, gemini.Request{
		APIKey: key,
		System: writerPersona,
		Prompt: fmt.Sprintf("Write a blog post about: %q", title),
	})
	if err != nil {
		s.log.Error(ctx, "post generation failed", "error", err)
		return "", fmt.Errorf("generate post: %w", err)
	}
	return body, nil
}
