package view

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/acme/acmeui/internal/config"
	"github.com/acme/acmeui/internal/dao"
	"github.com/acme/acmeui/internal/model"
	"github.com/acme/acmeui/internal/render"
	"github.com/acme/acmeui/internal/ui"
	"github.com/derailed/tcell/v2"
)

// Chat shows the most recent chat messages and posts new ones.
type Chat struct {
	*ui.FeedList

	app      *App
	chat     dao.ChatFeed
	feed     *model.Feed[dao.Message]
	renderer *render.Message

	cancel context.CancelFunc
	mx     sync.Mutex
}

// NewChat returns the chat view.
func NewChat(app *App) (ui.Component, error) {
	c, err := app.Factory().Chat()
	if err != nil {
		return nil, err
	}

	return &Chat{
		FeedList: ui.NewFeedList(config.ChatView),
		app:      app,
		chat:     c,
		feed:     model.NewFeed[dao.Message](c, app.Config().Acme.FeedWindow, app.Logger()),
		renderer: &render.Message{},
	}, nil
}

// Init initializes the view.
func (c *Chat) Init(context.Context) error {
	c.Actions().Bulk(ui.KeyMap{
		ui.KeyGreater: ui.NewKeyAction("Send", c.sendCmd, true),
		ui.KeyR:       ui.NewKeyAction("Reconnect", c.reconnectCmd, true),
	})

	return nil
}

// Start subscribes to the chat feed, replacing any previous subscription.
func (c *Chat) Start() {
	ctx, cancel := context.WithCancel(c.app.Context())
	c.mx.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	c.mx.Unlock()

	c.SetStatus("connecting")
	go c.subscribe(ctx)
}

// Stop detaches from the chat feed.
func (c *Chat) Stop() {
	c.mx.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mx.Unlock()

	c.feed.Detach()
}

// Send posts text as the configured user.
func (c *Chat) Send(text string) {
	go func() {
		ctx, cancel := context.WithTimeout(c.app.Context(), c.app.APITimeout())
		defer cancel()

		if _, err := c.chat.Send(ctx, text); err != nil {
			c.app.Flash().Errf("Send failed: %v", err)
			return
		}
		c.app.Flash().Info("Message sent")
	}()
}

func (c *Chat) subscribe(ctx context.Context) {
	err := c.feed.Subscribe(ctx, c.update, c.failed)
	if err != nil {
		if ctx.Err() == nil {
			c.failed(err)
		}
		return
	}
	c.app.QueueUpdateDraw(func() { c.SetStatus("") })
}

func (c *Chat) update(mm []dao.Message) {
	lines := make([]string, len(mm))
	for i, m := range mm {
		lines[i] = c.renderer.Line(m)
	}
	c.app.QueueUpdateDraw(func() { c.SetLines(lines) })
}

func (c *Chat) failed(err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, dao.ErrDetached) {
		return
	}
	c.app.Logger().Error("chat feed failed", "error", err)
	c.app.Flash().Err(fmt.Errorf("chat: %w", err))
	c.app.QueueUpdateDraw(func() { c.SetStatus("disconnected") })
}

func (c *Chat) sendCmd(*tcell.EventKey) *tcell.EventKey {
	c.app.ActivateSend()
	return nil
}

func (c *Chat) reconnectCmd(*tcell.EventKey) *tcell.EventKey {
	c.Start()
	return nil
}
