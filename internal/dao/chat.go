// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of acmeui

package dao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const chatBacklog = 64

// ChatService talks to the chat websocket endpoint.
type ChatService struct {
	url  string
	user string
	log  *slog.Logger
	now  func() time.Time
}

// NewChatService returns a chat service posting as user.
func NewChatService(url, user string, log *slog.Logger) *ChatService {
	if log == nil {
		log = slog.Default()
	}
	return &ChatService{url: url, user: user, log: log, now: time.Now}
}

// Subscribe dials the endpoint and streams incoming messages.
func (c *ChatService) Subscribe(ctx context.Context) (Subscription[Message], error) {
	conn, _, err := websocket.Dial(ctx, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %w", ErrRemote, c.url, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	s := chatSubscription{
		conn:   conn,
		cancel: cancel,
		msgs:   make(chan Message, chatBacklog),
		log:    c.log,
	}
	go s.read(ctx)

	return &s, nil
}

// Send posts text as the current user.
func (c *ChatService) Send(ctx context.Context, text string) (Message, error) {
	m := Message{Text: text, Time: c.now(), UserName: c.user}
	if err := m.Validate(); err != nil {
		return Message{}, err
	}

	raw, err := sjson.SetBytes(nil, "text", m.Text)
	if err == nil {
		raw, err = sjson.SetBytes(raw, "userName", m.UserName)
	}
	if err == nil {
		raw, err = sjson.SetBytes(raw, "time", m.Time.UnixMilli())
	}
	if err != nil {
		return Message{}, fmt.Errorf("encode message: %w", err)
	}

	conn, _, err := websocket.Dial(ctx, c.url, nil)
	if err != nil {
		return Message{}, fmt.Errorf("%w: dial %s: %w", ErrRemote, c.url, err)
	}
	defer func() {
		_ = conn.Close(websocket.StatusNormalClosure, "sent")
	}()

	if err := wsjson.Write(ctx, conn, json.RawMessage(raw)); err != nil {
		return Message{}, fmt.Errorf("%w: send: %w", ErrRemote, err)
	}
	c.log.Debug("chat message sent", "user", m.UserName)

	return m, nil
}

type chatSubscription struct {
	conn   *websocket.Conn
	cancel context.CancelFunc
	msgs   chan Message
	log    *slog.Logger

	mx      sync.Mutex
	err     error
	closing bool
	once    sync.Once
}

func (s *chatSubscription) Messages() <-chan Message {
	return s.msgs
}

func (s *chatSubscription) Err() error {
	s.mx.Lock()
	defer s.mx.Unlock()

	return s.err
}

func (s *chatSubscription) Close() error {
	var err error
	s.once.Do(func() {
		s.mx.Lock()
		s.closing = true
		s.mx.Unlock()
		err = s.conn.Close(websocket.StatusNormalClosure, "detached")
		s.cancel()
	})

	return err
}

func (s *chatSubscription) read(ctx context.Context) {
	defer close(s.msgs)
	defer s.cancel()

	for {
		var raw json.RawMessage
		if err := wsjson.Read(ctx, s.conn, &raw); err != nil {
			s.finish(ctx, err)
			return
		}
		m, err := messageFromJSON(raw)
		if err != nil {
			s.log.Warn("dropping chat message", "error", err)
			continue
		}
		select {
		case s.msgs <- m:
		case <-ctx.Done():
			return
		}
	}
}

func (s *chatSubscription) finish(ctx context.Context, err error) {
	s.mx.Lock()
	defer s.mx.Unlock()

	if s.closing || ctx.Err() != nil {
		return
	}
	if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
		return
	}
	if errors.Is(err, context.Canceled) {
		return
	}
	s.err = fmt.Errorf("%w: chat stream: %w", ErrRemote, err)
	s.log.Error("chat stream failed", "error", err)
}

func messageFromJSON(raw []byte) (Message, error) {
	if !gjson.ValidBytes(raw) {
		return Message{}, fmt.Errorf("%w: malformed chat payload", ErrInvalidItem)
	}
	r := gjson.ParseBytes(raw)
	m := Message{
		Text:     r.Get("text").String(),
		UserName: r.Get("userName").String(),
		Time:     parseTime(r.Get("time")),
	}

	return m, m.Validate()
}
