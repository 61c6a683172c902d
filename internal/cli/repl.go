package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

var (
	errorText = color.New(color.FgRed, color.Bold).SprintFunc()
	okText    = color.New(color.FgGreen).SprintFunc()
	dimText   = color.New(color.FgHiBlack).SprintFunc()
)

// execIface is the command surface the REPL drives; App implements it.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Projects(ctx context.Context) error
	Posts(ctx context.Context) error
	AddProject(ctx context.Context) error
	AddPost(ctx context.Context) error
	DeleteProject(ctx context.Context, id string) error
	DeletePost(ctx context.Context, id string) error
	ShowConfig(ctx context.Context) error
	SetConfig(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Ask(ctx context.Context, question string) error
	Generate(ctx context.Context, title string) error
	Upload(ctx context.Context, path string) error
}

const (
	helpPublic = "Available commands: login, status, projects, posts, ask, exit"
	helpAdmin  = "Available commands: status, projects, posts, addproject, addpost, delproject <id>, delpost <id>, " +
		"upload <file>, config, setconfig, disconnect, ask, generate, logout, exit"
)

// runREPL reads one command per line and dispatches it to a until EOF or
// "exit"/"quit". Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("neo %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		rest := strings.Join(args, " ")

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpAdmin)
			} else {
				printlnFn(helpPublic)
			}

		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "status":
			cmdErr = a.Status(ctx)
		case "projects":
			cmdErr = a.Projects(ctx)
		case "posts":
			cmdErr = a.Posts(ctx)
		case "addproject":
			cmdErr = a.AddProject(ctx)
		case "addpost":
			cmdErr = a.AddPost(ctx)

		case "delproject", "delpost":
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			if cmd == "delproject" {
				cmdErr = a.DeleteProject(ctx, args[0])
			} else {
				cmdErr = a.DeletePost(ctx, args[0])
			}

		case "upload":
			if len(args) == 0 {
				printlnFn("Usage: upload <file>")
				continue
			}
			cmdErr = a.Upload(ctx, rest)

		case "config":
			cmdErr = a.ShowConfig(ctx)
		case "setconfig":
			cmdErr = a.SetConfig(ctx)
		case "disconnect":
			cmdErr = a.Disconnect(ctx)
		case "ask":
			cmdErr = a.Ask(ctx, rest)
		case "generate":
			cmdErr = a.Generate(ctx, rest)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(errorText("error:"), cmdErr)
		}
		if err != nil {
			return
		}
	}
}
