package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/pizza/internal/app"
	"github.com/Makepad-fr/pizza/internal/config"
	"github.com/Makepad-fr/pizza/internal/model"
	"github.com/Makepad-fr/pizza/internal/split"
	"github.com/Makepad-fr/pizza/internal/ui"
)

const logFileName = "pizza.log"

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, cfg *config.Config) int {
	ui.SetTheme(cfg.Theme)

	cmd := "ui"
	if len(args) > 0 {
		cmd = args[0]
	}
	if len(args) > 1 {
		ui.Fail("usage: pizza [flags] " + cmd)
		return 2
	}

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0
	case "ui":
		return doUI(cfg)
	case "ls":
		return withDeps(cfg, doList)
	case "export":
		return withDeps(cfg, doExport)
	case "logout":
		return withDeps(cfg, doLogout)
	}

	ui.Fail("unknown subcommand: " + cmd)
	PrintHelp()
	return 2
}

func PrintHelp() {
	ui.Print(`pizza - split the cost of pizza orders

Usage:
  pizza [flags] [subcommand]

Subcommands:
  ui        Interactive order book (default)
  ls        Print orders and what everyone owes
  export    Print the export link (contains your password)
  logout    Forget the saved login and draft

Flags:
  -server, -bucket, -collection, -state-dir, -store, -timeout, -theme, -log-level
  (also PIZZA_SERVER, PIZZA_BUCKET, ... and LOG_LEVEL in the environment or .env)

Participants are typed one per line; end a name with /2 for a half portion.`)
}

// withDeps runs a plain subcommand that logs to stderr.
func withDeps(cfg *config.Config, fn func(*deps) int) int {
	d, err := openDeps(cfg, os.Stderr, true)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	defer d.Close()
	return fn(d)
}

// -------------- subcommand impls ----------------

func doUI(cfg *config.Config) int {
	if err := os.MkdirAll(cfg.StateDir, 0o700); err != nil {
		ui.Fail("state dir: " + err.Error())
		return 1
	}
	// the terminal belongs to the UI, so logs go to a file
	f, err := os.OpenFile(filepath.Join(cfg.StateDir, logFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		ui.Fail("log file: " + err.Error())
		return 1
	}
	defer f.Close()

	d, err := openDeps(cfg, f, false)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	defer d.Close()

	seed := d.bridge.Seed()
	if seed.Credential.Server == "" {
		seed.Credential.Server = cfg.Server
	}
	m := app.New(app.Deps{
		Store:   d.client,
		Persist: d.bridge,
		Logger:  d.logger,
		Timeout: cfg.Timeout,
	}, seed)

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		ui.Fail("ui: " + err.Error())
		return 1
	}
	return 0
}

func loggedIn(d *deps) (model.Credential, bool) {
	c := d.bridge.Seed().Credential
	if !c.Complete() {
		ui.Fail("not logged in. Run `pizza` and log in first")
		return c, false
	}
	return c, true
}

func doList(d *deps) int {
	cred, ok := loggedIn(d)
	if !ok {
		return 1
	}
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout)
	defer cancel()

	orders, err := d.client.List(ctx, cred)
	if err != nil {
		ui.Fail("list: " + err.Error())
		return 1
	}
	model.SortByDateDesc(orders)

	t := ui.Current()
	lines := []string{
		fmt.Sprintf("%s  %s %s  %s %d",
			ui.C(t.Title, "Pizza orders"),
			ui.C(t.Muted, "as"), ui.C(t.Accent, cred.Username),
			ui.C(t.Muted, "orders"), len(orders)),
		"",
	}
	if len(orders) == 0 {
		lines = append(lines, ui.C(t.Muted, "no orders yet"))
	}
	for i, o := range orders {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, orderLines(o)...)
	}
	ui.Panel(lines)
	return 0
}

func orderLines(o model.Order) []string {
	t := ui.Current()
	paid := 0
	for _, p := range o.Participants {
		if p.Paid {
			paid++
		}
	}
	lines := []string{
		fmt.Sprintf("%s  %s", ui.C(t.Accent, o.Date), ui.Money(o.Price)),
		ui.C(t.Muted, ui.ProgressBar(paid, len(o.Participants), 20)),
	}
	shares, err := split.Shares(o.Price, o.Participants)
	switch {
	case errors.Is(err, split.ErrNoParticipants):
		return append(lines, ui.C(t.Muted, "  nobody"))
	case err != nil:
		return append(lines, ui.C(t.Error, "  price out of range"))
	}
	for i, p := range o.Participants {
		box := ui.C(t.Muted, ui.Box(false))
		if p.Paid {
			box = ui.C(t.Success, ui.Box(true))
		}
		lines = append(lines, fmt.Sprintf("  %s %-20s %s", box, p.Name, ui.C(t.Pending, ui.Money(shares[i]))))
	}
	return lines
}

func doExport(d *deps) int {
	cred, ok := loggedIn(d)
	if !ok {
		return 1
	}
	u, err := d.client.ExportURL(cred)
	if err != nil {
		ui.Fail("export: " + err.Error())
		return 1
	}
	ui.Print(u)
	return 0
}

func doLogout(d *deps) int {
	if err := d.bridge.ClearSession(); err != nil {
		ui.Fail("logout: " + err.Error())
		return 1
	}
	ui.OK("logged out")
	return 0
}
