package cli

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophboard/internal/logging"
	"github.com/dmitrijs2005/gophboard/internal/server/config"
	"github.com/dmitrijs2005/gophboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophboard/internal/server/rest"
	"github.com/dmitrijs2005/gophboard/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const knownKey = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

type env struct {
	t    *testing.T
	dir  string
	srv  *httptest.Server
	base []string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	cfg := &config.Config{SecretKey: "cli-test-secret", TokenValidityDuration: time.Hour, DeletedPageSize: 5}
	log := logging.Discard()
	s := rest.NewHTTPServer(":0", log,
		services.NewAuthService(cfg, log),
		services.NewBoardService(nil, repomanager.NewInMemoryRepositoryManager(), cfg, log),
		[]string{"*"})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	return &env{
		t:   t,
		dir: dir,
		srv: srv,
		base: []string{
			"--server", srv.URL,
			"--db", filepath.Join(dir, "session.db"),
			"--key", filepath.Join(dir, "wallet.key"),
		},
	}
}

// run executes the client and returns its output.
func (e *env) run(stdin string, args ...string) (string, error) {
	e.t.Helper()
	var out, errOut bytes.Buffer
	err := Execute(context.Background(), append(args, e.base...), strings.NewReader(stdin), &out, &errOut)
	return out.String(), err
}

func (e *env) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run("", args...)
	require.NoError(e.t, err, "gophboard %v", args)
	return out
}

func TestCLI_KeygenLoginWhoami(t *testing.T) {
	e := newEnv(t)

	out := e.mustRun("keygen")
	assert.Contains(t, out, "New wallet 0x")

	_, err := e.run("", "keygen")
	require.Error(t, err)
	e.mustRun("keygen", "--force")

	out = e.mustRun("login")
	require.True(t, strings.HasPrefix(out, "Logged in as 0x"), out)
	addr := strings.TrimSpace(strings.TrimPrefix(out, "Logged in as "))

	out = e.mustRun("whoami")
	assert.Equal(t, addr+" @ "+e.srv.URL+"\n", out)

	e.mustRun("logout")
	_, err = e.run("", "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestCLI_LoginWithTypedKey(t *testing.T) {
	old := getSecret
	defer func() { getSecret = old }()
	getSecret = func(string, io.Writer) ([]byte, error) { return []byte(knownKey), nil }

	e := newEnv(t)
	out := e.mustRun("login", "--save")
	assert.Equal(t, "Logged in as 0x2c7536E3605D9C16a7a3D7b1898e529396a65c23\n", out)

	b, err := os.ReadFile(filepath.Join(e.dir, "wallet.key"))
	require.NoError(t, err)
	assert.Contains(t, string(b), knownKey)
}

func TestCLI_EncryptedKeyFile(t *testing.T) {
	old := getSecret
	defer func() { getSecret = old }()
	pass := "correct horse"
	getSecret = func(string, io.Writer) ([]byte, error) { return []byte(pass), nil }

	e := newEnv(t)
	out := e.mustRun("keygen", "--encrypt")
	assert.Contains(t, out, "New wallet 0x")

	out = e.mustRun("login")
	assert.True(t, strings.HasPrefix(out, "Logged in as 0x"), out)

	pass = "wrong"
	_, err := e.run("", "login")
	assert.Error(t, err)
}

func TestCLI_RequiresLogin(t *testing.T) {
	e := newEnv(t)
	_, err := e.run("", "ls")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestCLI_Ping(t *testing.T) {
	e := newEnv(t)
	assert.Equal(t, e.srv.URL+" is up\n", e.mustRun("ping"))
}

func TestCLI_BoardCommands(t *testing.T) {
	e := newEnv(t)
	e.mustRun("keygen")
	e.mustRun("login")

	first := strings.TrimSpace(e.mustRun("add", "first", "card"))
	second := strings.TrimSpace(e.mustRun("add", "second"))
	require.NotEmpty(t, first)
	require.NotEqual(t, first, second)

	assert.Equal(t,
		"todo (2)\n  "+second+"  second\n  "+first+"  first card\n",
		e.mustRun("ls", "todo"))

	// without a position the card goes to the end
	e.mustRun("mv", first, "doing")
	e.mustRun("mv", second, "doing")
	assert.Equal(t,
		"doing (2)\n  "+first+"  first card\n  "+second+"  second\n",
		e.mustRun("ls", "doing"))

	e.mustRun("mv", second, "doing", "0")
	assert.Equal(t,
		"doing (2)\n  "+second+"  second\n  "+first+"  first card\n",
		e.mustRun("ls", "doing"))

	e.mustRun("edit", first, "--title", "renamed", "--content", "# Hello")
	out := e.mustRun("show", first)
	assert.True(t, strings.HasPrefix(out, "renamed [doing]\n"), out)
	assert.Contains(t, out, "Hello")

	e.mustRun("rm", second)
	out = e.mustRun("trash")
	assert.Contains(t, out, second+"  second  [doing]")

	e.mustRun("restore", second)
	assert.Contains(t, e.mustRun("ls", "doing"), "  "+second+"  second\n")
	assert.Equal(t, "nothing deleted\n", e.mustRun("trash"))

	e.mustRun("rm", second)
	e.mustRun("purge", second, "-c", "doing")
	assert.Equal(t, "nothing deleted\n", e.mustRun("trash"))

	out = e.mustRun("ls")
	assert.Equal(t, "todo (0)\ndoing (1)\n  "+first+"  renamed\ndone (0)\n", out)
}

func TestCLI_EditPrompts(t *testing.T) {
	e := newEnv(t)
	e.mustRun("keygen")
	e.mustRun("login")
	id := strings.TrimSpace(e.mustRun("add", "old"))

	_, err := e.run("new title\nline one\nline two\n\n", "edit", id)
	require.NoError(t, err)

	out := e.mustRun("show", id)
	assert.True(t, strings.HasPrefix(out, "new title [todo]\n"), out)
	assert.Contains(t, out, "line one")
}

func TestCLI_InvalidArguments(t *testing.T) {
	e := newEnv(t)
	e.mustRun("keygen")
	e.mustRun("login")

	_, err := e.run("", "add", "-c", "later", "x")
	assert.Error(t, err)

	_, err = e.run("", "mv", "id", "doing", "-1")
	assert.Error(t, err)

	_, err = e.run("", "show", "missing")
	assert.Error(t, err)

	_, err = e.run("", "nope")
	assert.Error(t, err)
}
