package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/neoportfolio/internal/bootstrap"
	"github.com/dmitrijs2005/neoportfolio/internal/config"
	"github.com/dmitrijs2005/neoportfolio/internal/content"
	"github.com/dmitrijs2005/neoportfolio/internal/logging"
	"github.com/dmitrijs2005/neoportfolio/internal/models"
	"github.com/dmitrijs2005/neoportfolio/internal/services"
)

type adminService interface {
	Login(ctx context.Context, password string) error
	Logout(ctx context.Context)
	LoggedIn() bool
	Status(ctx context.Context) services.Status
	Config(ctx context.Context) (*models.SystemConfig, error)
	SaveConfig(ctx context.Context, cfg models.SystemConfig) error
	Disconnect(ctx context.Context) error
	SaveProject(ctx context.Context, d models.ProjectDraft) (models.Project, error)
	SavePost(ctx context.Context, d models.PostDraft) (models.BlogPost, error)
	DeleteProject(ctx context.Context, id int64) error
	DeletePost(ctx context.Context, id int64) error
}

type chatService interface {
	Ask(ctx context.Context, question string, onChunk func(string) error) (string, error)
	GeneratePost(ctx context.Context, title string) (string, error)
}

type uploadService interface {
	PresignImage(ctx context.Context, filename string) (*services.Upload, error)
}

type App struct {
	config  *config.Config
	admin   adminService
	chat    chatService
	uploads uploadService
	content services.ContentStore
	http    *http.Client
	reader  *bufio.Reader
	out     io.Writer
	closers []io.Closer

	mu   sync.Mutex
	mode content.BackendKind
}

func NewApp(ctx context.Context, c *config.Config, env config.Env) (*App, error) {
	logger, logCloser, err := logging.New(logging.Options{
		Backend: c.LogBackend,
		Level:   c.LogLevel,
		Format:  "text",
		File:    c.LogFile,
		Output:  os.Stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	stack, err := bootstrap.Build(ctx, c, env, logger)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		_ = logCloser.Close()
		return nil, err
	}

	return &App{
		config:  c,
		admin:   stack.Admin,
		chat:    stack.Chat,
		uploads: stack.Uploads,
		content: stack.Content,
		http:    &http.Client{Timeout: 2 * time.Minute},
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		closers: []io.Closer{stack, logCloser},
	}, nil
}

func (a *App) currentMode() content.BackendKind {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode content.BackendKind) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) isLoggedIn() bool {
	return a.admin.LoggedIn()
}

// StartModeWatcher re-resolves the storage backend every interval and
// reports switches between local and remote until ctx is done.
func (a *App) StartModeWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.setMode(a.content.Kind(ctx))
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		for _, c := range a.closers {
			if err := c.Close(); err != nil {
				log.Printf("close: %s", err.Error())
			}
		}
	}()
	a.Root(ctx)
}

func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to the neoportfolio admin console (type 'help' for commands)")

	a.setMode(a.content.Kind(ctx))

	go a.StartModeWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) getStatus() string {
	s := string(a.currentMode())
	if a.isLoggedIn() {
		s = "admin " + s
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
