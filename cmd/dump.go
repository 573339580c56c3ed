// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of acmeui

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/acme/acmeui/internal/config"
	"github.com/acme/acmeui/internal/dao"
	"github.com/acme/acmeui/internal/logging"
	"github.com/acme/acmeui/internal/model"
	"github.com/acme/acmeui/internal/model1"
	"github.com/acme/acmeui/internal/render"
	"github.com/acme/acmeui/internal/view"
)

type dumpFlags struct {
	page   int
	size   int
	filter string
	sort   string
	group  string
	send   string
}

func dumpCmds() []*cobra.Command {
	ordersFlags, docsFlags := dumpFlags{}, dumpFlags{}
	notifFlags, taskFlags, chatFlags := dumpFlags{}, dumpFlags{}, dumpFlags{}

	orders := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"ord"},
		Short:   "Print a page of orders",
		Args:    cobra.NoArgs,
		RunE: headless(func(ctx context.Context, w io.Writer, cfg *config.Config, f *dao.ServiceFactory) error {
			fetcher, err := f.Orders()
			if err != nil {
				return err
			}
			return dumpPage[dao.Order](ctx, w, config.OrdersView, fetcher, &render.Order{}, ordersFlags, cfg)
		}),
	}
	pageFlags(orders, &ordersFlags)

	docs := &cobra.Command{
		Use:     "docs",
		Aliases: []string{config.DocumentsView},
		Short:   "Print a page of repository documents",
		Args:    cobra.NoArgs,
		RunE: headless(func(ctx context.Context, w io.Writer, cfg *config.Config, f *dao.ServiceFactory) error {
			fetcher, err := f.Documents()
			if err != nil {
				return err
			}
			return dumpPage[dao.Document](ctx, w, config.DocumentsView, fetcher, &render.Document{}, docsFlags, cfg)
		}),
	}
	pageFlags(docs, &docsFlags)

	notifications := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notif"},
		Short:   "Print the current user notifications",
		Args:    cobra.NoArgs,
		RunE: headless(func(ctx context.Context, w io.Writer, cfg *config.Config, f *dao.ServiceFactory) error {
			l, err := f.Notifications()
			if err != nil {
				return err
			}
			return dumpList[dao.Notification](ctx, w, config.NotificationsView, l, &render.Notification{},
				render.NotificationField, view.MatchNotification, notifFlags, cfg)
		}),
	}
	notifications.Flags().StringVar(&notifFlags.filter, "filter", "", "Only show notifications containing this text")
	notifications.Flags().StringVar(&notifFlags.sort, "sort", "time:desc", "Sort clauses as field[:desc], comma separated")

	tasks := &cobra.Command{
		Use:   "tasks",
		Short: "Print the tasks waiting on a candidate group",
		Args:  cobra.NoArgs,
		RunE: headless(func(ctx context.Context, w io.Writer, cfg *config.Config, f *dao.ServiceFactory) error {
			l, err := f.Tasks()
			if err != nil {
				return err
			}
			return dumpList[dao.Task](ctx, w, config.TasksView, l, &render.Task{},
				render.TaskField, view.MatchTask, taskFlags, cfg)
		}),
	}
	tasks.Flags().StringVar(&taskFlags.group, "group", "", "Candidate group, defaults to the configured one")
	tasks.Flags().StringVar(&taskFlags.filter, "filter", "", "Only show tasks containing this text")
	tasks.Flags().StringVar(&taskFlags.sort, "sort", "priority:desc", "Sort clauses as field[:desc], comma separated")
	tasks.PreRun = func(*cobra.Command, []string) {
		groupOverride = taskFlags.group
	}

	chat := &cobra.Command{
		Use:   "chat",
		Short: "Tail the team chat or post a message",
		Args:  cobra.NoArgs,
		RunE: headless(func(ctx context.Context, w io.Writer, cfg *config.Config, f *dao.ServiceFactory) error {
			c, err := f.Chat()
			if err != nil {
				return err
			}
			if chatFlags.send != "" {
				return sendChat(ctx, w, c, chatFlags.send)
			}
			return tailChat(ctx, w, c, cfg.Acme.FeedWindow, logging.Slog())
		}),
	}
	chat.Flags().StringVar(&chatFlags.send, "send", "", "Post this message and exit")

	return []*cobra.Command{orders, notifications, tasks, docs, chat}
}

// groupOverride replaces the configured candidate group for one run.
var groupOverride string

type headlessFunc func(ctx context.Context, w io.Writer, cfg *config.Config, f *dao.ServiceFactory) error

func headless(fn headlessFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if groupOverride != "" {
			cfg.Acme.CandidateGroup = groupOverride
		}
		logging.InitWriter(cmd.ErrOrStderr(), cfg.Acme.Logger.Level)

		ctx, cancel := signal.NotifyContext(contextOf(cmd), os.Interrupt)
		defer cancel()

		f, err := newFactory(ctx, cfg, logging.Slog())
		if err != nil {
			return err
		}

		return fn(ctx, cmd.OutOrStdout(), cfg, f)
	}
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func pageFlags(cmd *cobra.Command, f *dumpFlags) {
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number, starting at 1")
	cmd.Flags().IntVar(&f.size, "size", 0, "Rows per page, defaults to the configured page size")
}

// dumpView prints the named view once. Used by --headless.
func dumpView(ctx context.Context, w io.Writer, cfg *config.Config, name string) error {
	ctx = orBackground(ctx)
	f, err := newFactory(ctx, cfg, logging.Slog())
	if err != nil {
		return err
	}

	aliases := config.NewAliases()
	if err := aliases.Load(); err != nil {
		logging.Slog().Warn("aliases load failed", "error", err)
	}
	switch v := aliases.Get(name); v {
	case config.OrdersView:
		fetcher, err := f.Orders()
		if err != nil {
			return err
		}
		return dumpPage[dao.Order](ctx, w, v, fetcher, &render.Order{}, dumpFlags{page: 1}, cfg)
	case config.DocumentsView:
		fetcher, err := f.Documents()
		if err != nil {
			return err
		}
		return dumpPage[dao.Document](ctx, w, v, fetcher, &render.Document{}, dumpFlags{page: 1}, cfg)
	case config.NotificationsView:
		l, err := f.Notifications()
		if err != nil {
			return err
		}
		return dumpList[dao.Notification](ctx, w, v, l, &render.Notification{},
			render.NotificationField, view.MatchNotification, dumpFlags{sort: "time:desc"}, cfg)
	case config.TasksView:
		l, err := f.Tasks()
		if err != nil {
			return err
		}
		return dumpList[dao.Task](ctx, w, v, l, &render.Task{},
			render.TaskField, view.MatchTask, dumpFlags{sort: "priority:desc"}, cfg)
	case config.ChatView:
		c, err := f.Chat()
		if err != nil {
			return err
		}
		return tailChat(ctx, w, c, cfg.Acme.FeedWindow, logging.Slog())
	default:
		return fmt.Errorf("unknown view %q", name)
	}
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

func dumpPage[T any](ctx context.Context, w io.Writer, title string, f dao.PageFetcher[T], r model1.Renderer, flags dumpFlags, cfg *config.Config) error {
	size := flags.size
	if size <= 0 {
		size = cfg.Acme.PageSize
	}
	page := max(flags.page, 1)

	timeout, err := cfg.Acme.GetAPITimeout()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	t := model.NewPageTable[T](title, f, r, size, logging.Slog())
	if page > 1 {
		// Page 0 caches the record count.
		if err := t.Load(ctx, 0); err != nil {
			return err
		}
	}
	if err := t.Load(ctx, page-1); err != nil {
		return err
	}

	data := t.Peek()
	if err := printTable(w, data); err != nil {
		return err
	}
	if total, ok := data.Total(); ok {
		_, err = fmt.Fprintf(w, "\n%d total records\n", total)
		return err
	}
	_, err = fmt.Fprintf(w, "\nPage %d\n", page)

	return err
}

func dumpList[T dao.Entity](
	ctx context.Context,
	w io.Writer,
	title string,
	l dao.Lister[T],
	r model1.Renderer,
	field model.FieldFunc[T],
	match view.MatchFunc[T],
	flags dumpFlags,
	cfg *config.Config,
) error {
	timeout, err := cfg.Acme.GetAPITimeout()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	t := model.NewTableData[T](title, l, r, field, cfg.Acme.GetRefreshRate(), logging.Slog())
	t.SetSort(parseSort(flags.sort)...)
	if needle := strings.ToLower(strings.TrimSpace(flags.filter)); needle != "" {
		t.SetFilter(model.NewFilter(needle, func(it T) bool { return match(it, needle) }))
	}
	if err := t.Refresh(ctx); err != nil {
		return err
	}

	return printTable(w, t.Peek())
}

func sendChat(ctx context.Context, w io.Writer, c dao.ChatFeed, text string) error {
	msg, err := c.Send(ctx, text)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, (&render.Message{}).Line(msg))

	return err
}

func tailChat(ctx context.Context, w io.Writer, c dao.ChatFeed, size int, log *slog.Logger) error {
	feed := model.NewFeed[dao.Message](c, size, log)
	r := &render.Message{}

	var (
		last  string
		errCh = make(chan error, 1)
	)
	err := feed.Subscribe(ctx,
		func(mm []dao.Message) {
			for _, m := range unseen(mm, last) {
				fmt.Fprintln(w, r.Line(m))
			}
			if len(mm) > 0 {
				last = mm[len(mm)-1].GetID()
			}
		},
		func(err error) { errCh <- err },
	)
	if err != nil {
		return err
	}
	defer feed.Detach()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		// A bare disconnect is the server ending the stream cleanly.
		if errors.Is(err, context.Canceled) || err == dao.ErrDisconnected {
			return nil
		}
		return err
	}
}

// unseen returns the window items that follow the last printed id.
func unseen(mm []dao.Message, last string) []dao.Message {
	if last == "" {
		return mm
	}
	for i := len(mm) - 1; i >= 0; i-- {
		if mm[i].GetID() == last {
			return mm[i+1:]
		}
	}
	return mm
}

// parseSort reads clauses such as "time:desc,title".
func parseSort(s string) []model.SortClause {
	var cc []model.SortClause
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		field, dir, _ := strings.Cut(part, ":")
		cc = append(cc, model.SortClause{
			Field: strings.ToLower(strings.TrimSpace(field)),
			Desc:  strings.EqualFold(strings.TrimSpace(dir), "desc"),
		})
	}
	return cc
}

func printTable(w io.Writer, data *model1.TableData) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(data.Header().ColumnNames(true), "\t"))
	data.RowEvents().Range(func(_ int, re model1.RowEvent) bool {
		fmt.Fprintln(tw, strings.Join(re.Row.Fields, "\t"))
		return true
	})

	return tw.Flush()
}
