package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	failWith error

	calls []string
	args  []string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return f.failWith
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Status(context.Context) error     { return f.record("status") }
func (f *fakeExec) Projects(context.Context) error   { return f.record("projects") }
func (f *fakeExec) Posts(context.Context) error      { return f.record("posts") }
func (f *fakeExec) AddProject(context.Context) error { return f.record("addproject") }
func (f *fakeExec) AddPost(context.Context) error    { return f.record("addpost") }
func (f *fakeExec) DeleteProject(_ context.Context, id string) error {
	f.args = append(f.args, id)
	return f.record("delproject")
}
func (f *fakeExec) DeletePost(_ context.Context, id string) error {
	f.args = append(f.args, id)
	return f.record("delpost")
}
func (f *fakeExec) ShowConfig(context.Context) error { return f.record("config") }
func (f *fakeExec) SetConfig(context.Context) error  { return f.record("setconfig") }
func (f *fakeExec) Disconnect(context.Context) error { return f.record("disconnect") }
func (f *fakeExec) Ask(_ context.Context, q string) error {
	f.args = append(f.args, q)
	return f.record("ask")
}
func (f *fakeExec) Generate(_ context.Context, title string) error {
	f.args = append(f.args, title)
	return f.record("generate")
}
func (f *fakeExec) Upload(_ context.Context, path string) error {
	f.args = append(f.args, path)
	return f.record("upload")
}

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_Dispatch(t *testing.T) {
	out := capturePrints(t)

	input := strings.Join([]string{
		"help",
		"login",
		"help",
		"",
		"status",
		"projects",
		"posts",
		"addproject",
		"addpost",
		"delproject 12",
		"delpost 34",
		"config",
		"setconfig",
		"disconnect",
		"ask what   is this",
		"generate Go tips",
		"upload",
		"upload shot.png",
		"logout",
		"foobar",
		"exit",
		"status",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(local)" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"login", "status", "projects", "posts", "addproject", "addpost",
		"delproject", "delpost", "config", "setconfig", "disconnect",
		"ask", "generate", "upload", "logout",
	}, exec.calls)
	assert.Equal(t, []string{"12", "34", "what is this", "Go tips", "shot.png"}, exec.args)
	assert.Contains(t, *out, "Usage: upload <file>")

	assert.Contains(t, *out, helpPublic)
	assert.Contains(t, *out, helpAdmin)
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "neo (local)> ")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_UsageAndEOF(t *testing.T) {
	out := capturePrints(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("delproject\nstatus")))

	assert.Equal(t, []string{"status"}, exec.calls)
	assert.Contains(t, *out, "Usage: delproject <id>")
}

func TestRunREPL_PrintsErrors(t *testing.T) {
	out := capturePrints(t)

	exec := &fakeExec{failWith: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("posts\nquit\n")))

	assert.Equal(t, []string{"posts"}, exec.calls)
	found := false
	for _, l := range *out {
		if strings.Contains(l, "boom") {
			found = true
		}
	}
	assert.True(t, found, "error not printed: %v", *out)
}
