// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of acmeui

package view

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/acme/acmeui/internal/config"
	"github.com/acme/acmeui/internal/config/data"
	"github.com/acme/acmeui/internal/dao"
	"github.com/acme/acmeui/internal/ui"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// FlashDelay sets the flash auto-clear delay.
const FlashDelay = 5 * time.Second

// FlashLevel represents flash message severity.
type FlashLevel int

const (
	// FlashInfo represents an info message.
	FlashInfo FlashLevel = iota
	// FlashWarn represents a warning message.
	FlashWarn
	// FlashErr represents an error message.
	FlashErr
)

// Flash shows short lived status messages.
type Flash struct {
	*tview.TextView

	queue  func(func())
	cancel context.CancelFunc
	mx     sync.Mutex
}

// NewFlash creates a new Flash drawing through queue.
func NewFlash(queue func(func())) *Flash {
	f := &Flash{
		TextView: tview.NewTextView(),
		queue:    queue,
	}
	f.SetDynamicColors(true)
	f.SetTextAlign(tview.AlignLeft)
	f.SetBorderPadding(0, 0, 1, 1)
	f.SetBackgroundColor(tcell.ColorDefault)

	return f
}

// Info displays an informational message.
func (f *Flash) Info(msg string) {
	f.setMessage(FlashInfo, msg)
}

// Infof displays a formatted informational message.
func (f *Flash) Infof(format string, args ...any) {
	f.Info(fmt.Sprintf(format, args...))
}

// Warn displays a warning message.
func (f *Flash) Warn(msg string) {
	f.setMessage(FlashWarn, msg)
}

// Err displays an error message.
func (f *Flash) Err(err error) {
	if err != nil {
		f.setMessage(FlashErr, err.Error())
	}
}

// Errf displays a formatted error message.
func (f *Flash) Errf(format string, args ...any) {
	f.setMessage(FlashErr, fmt.Sprintf(format, args...))
}

// Clear clears the flash message.
func (f *Flash) Clear() {
	f.mx.Lock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.mx.Unlock()

	f.queue(func() { f.TextView.Clear() })
}

func (f *Flash) setMessage(level FlashLevel, msg string) {
	if msg == "" {
		f.Clear()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	f.mx.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	f.cancel = cancel
	f.mx.Unlock()

	f.queue(func() {
		f.TextView.Clear()
		f.SetTextColor(flashColor(level))
		_, _ = fmt.Fprintf(f.TextView, "%s %s", flashEmoji(level), tview.Escape(msg))
	})

	go func() {
		select {
		case <-ctx.Done():
		case <-time.After(FlashDelay):
			f.Clear()
		}
	}()
}

func flashColor(level FlashLevel) tcell.Color {
	switch level {
	case FlashWarn:
		return tcell.ColorOrange
	case FlashErr:
		return tcell.ColorOrangeRed
	default:
		return tcell.ColorNavajoWhite
	}
}

func flashEmoji(level FlashLevel) string {
	switch level {
	case FlashWarn:
		return "😗"
	case FlashErr:
		return "😡"
	default:
		return "😎"
	}
}

// Sender is a view posting composed messages.
type Sender interface {
	Send(string)
}

// App represents the main application container.
type App struct {
	*tview.Application

	version string
	Main    *tview.Pages
	Content *ui.Pages
	command *Command
	factory dao.Factory
	config  *config.Config
	aliases *config.Aliases
	hotkeys *config.HotKeys
	state   *data.View
	cmdBar  *ui.CmdBar
	menu    *ui.Menu
	crumbs  *ui.Crumbs
	flash   *Flash
	log     *slog.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
	mx      sync.RWMutex
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, f dao.Factory, version string, log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		Application: tview.NewApplication(),
		version:     version,
		Main:        tview.NewPages(),
		Content:     ui.NewPages(),
		factory:     f,
		config:      cfg,
		aliases:     config.NewAliases(),
		hotkeys:     config.NewHotKeys(),
		state:       data.NewView(cfg.Acme.DefaultView),
		menu:        ui.NewMenu(),
		log:         log,
		ctx:         ctx,
		cancel:      cancel,
	}
	a.flash = NewFlash(a.QueueUpdateDraw)
	a.crumbs = ui.NewCrumbs(a.Content)

	return a
}

// Init loads user settings and builds the layout.
func (a *App) Init() error {
	if err := a.aliases.Load(); err != nil {
		a.log.Warn("aliases load failed", "error", err)
	}
	if err := a.hotkeys.Load(); err != nil {
		a.log.Warn("hotkeys load failed", "error", err)
	}
	if err := a.state.Load(config.AppViewsFile); err != nil {
		a.log.Debug("no view state", "error", err)
	}
	a.state.Validate(a.config.Acme.DefaultView)

	a.command = NewCommand(a)
	a.cmdBar = ui.NewCmdBar(a.aliases.Names())
	a.cmdBar.SetActiveFn(func(active bool) {
		if active {
			a.SetFocus(a.cmdBar)
			return
		}
		a.focusTop()
	})
	a.cmdBar.SetCommandFn(func(cmd string) {
		if err := a.command.Run(cmd); err != nil {
			a.flash.Err(err)
		}
	})
	a.cmdBar.SetFilterFn(a.applyFilter)
	a.cmdBar.SetCancelFn(func() { a.applyFilter("") })
	a.cmdBar.SetSendFn(func(text string) {
		if s, ok := a.Content.Top().(Sender); ok {
			s.Send(text)
		}
	})

	a.Content.AddListener(a.menu)
	a.Content.AddListener(a.crumbs)

	a.Main.AddPage("main", a.layout(), true, true)
	a.SetRoot(a.Main, true)
	a.EnableMouse(a.config.Acme.UI.EnableMouse)
	a.SetInputCapture(a.keyboard)

	return nil
}

// Run shows the last active view and starts the event loop.
func (a *App) Run() error {
	a.mx.Lock()
	a.running = true
	a.mx.Unlock()

	start := a.config.Acme.DefaultView
	if last := a.state.ActiveView(); last != "" && start == config.DefaultView {
		start = last
	}
	if err := a.command.Run(start); err != nil {
		a.flash.Errf("Unable to open %s: %v", start, err)
	}

	return a.Application.Run()
}

// Stop persists the view state and stops the application.
func (a *App) Stop() {
	a.mx.Lock()
	a.running = false
	a.mx.Unlock()

	if top := a.Content.Top(); top != nil {
		top.Stop()
	}
	a.cancel()
	if err := a.state.Save(config.AppViewsFile); err != nil {
		a.log.Warn("view state save failed", "error", err)
	}
	a.Application.Stop()
}

// IsRunning returns whether the application is currently running.
func (a *App) IsRunning() bool {
	a.mx.RLock()
	defer a.mx.RUnlock()
	return a.running
}

// Context returns the application context, canceled on exit.
func (a *App) Context() context.Context {
	return a.ctx
}

// Flash returns the flash message handler.
func (a *App) Flash() *Flash {
	return a.flash
}

// Factory returns the service factory.
func (a *App) Factory() dao.Factory {
	return a.factory
}

// Config returns the application configuration.
func (a *App) Config() *config.Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.log
}

// State returns the persisted view state.
func (a *App) State() *data.View {
	return a.state
}

// APITimeout returns the per call timeout for remote services.
func (a *App) APITimeout() time.Duration {
	d, err := a.config.Acme.GetAPITimeout()
	if err != nil {
		return config.DefaultAPITimeout
	}
	return d
}

// QueueUpdateDraw queues a function to be executed on the UI thread.
func (a *App) QueueUpdateDraw(fn func()) {
	go a.Application.QueueUpdateDraw(fn)
}

// ActivateSend opens the command bar in chat compose mode.
func (a *App) ActivateSend() {
	a.cmdBar.Activate(ui.ModeSend)
}

// Show replaces the content with c and starts it.
func (a *App) Show(c ui.Component) error {
	if err := c.Init(a.ctx); err != nil {
		return err
	}
	a.Content.Replace(c)
	a.state.SetActive(c.Name())
	a.focusTop()
	c.Start()

	return nil
}

func (a *App) focusTop() {
	if top := a.Content.Top(); top != nil {
		a.SetFocus(top)
		return
	}
	a.SetFocus(a.Content)
}

func (a *App) layout() *tview.Flex {
	header := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(a.menu, 0, 1, false)

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, 6, 0, false).
		AddItem(a.cmdBar, 3, 0, false).
		AddItem(a.Content, 0, 10, true).
		AddItem(a.crumbs, 1, 0, false).
		AddItem(a.flash, 1, 0, false)
}

func (a *App) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if a.cmdBar.IsActive() {
		return evt
	}
	if name, _ := a.Main.GetFrontPage(); name != "main" {
		return evt
	}
	if cmd, ok := a.hotKey(evt); ok {
		if err := a.command.Run(cmd); err != nil {
			a.flash.Err(err)
		}
		return nil
	}

	switch evt.Key() {
	case tcell.KeyCtrlC:
		a.Stop()
		return nil
	case tcell.KeyCtrlR:
		a.refresh()
		return nil
	case tcell.KeyEsc:
		if a.cmdBar.GetFilterText() != "" {
			a.cmdBar.ClearFilter()
			return nil
		}
		a.Content.Pop()
		a.focusTop()
		return nil
	case tcell.KeyRune:
		switch evt.Rune() {
		case ':':
			a.cmdBar.Activate(ui.ModeCommand)
			return nil
		case '/':
			if _, ok := a.Content.Top().(ui.Filterable); ok {
				a.cmdBar.Activate(ui.ModeFilter)
				return nil
			}
		case '?':
			if err := a.command.Run(config.HelpView); err != nil {
				a.flash.Err(err)
			}
			return nil
		case 'q':
			a.Stop()
			return nil
		}
	}

	return evt
}

func (a *App) hotKey(evt *tcell.EventKey) (string, bool) {
	hk, ok := a.hotkeys.Match(evt.Name())
	return hk.Command, ok
}

func (a *App) applyFilter(text string) {
	if f, ok := a.Content.Top().(ui.Filterable); ok {
		f.SetFilter(text)
	}
}

func (a *App) refresh() {
	top := a.Content.Top()
	if top == nil {
		return
	}
	a.flash.Info("Refreshing...")
	top.Stop()
	top.Start()
}
