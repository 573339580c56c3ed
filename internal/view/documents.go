// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of acmeui

package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/acme/acmeui/internal/aws"
	"github.com/acme/acmeui/internal/config"
	"github.com/acme/acmeui/internal/dao"
	"github.com/acme/acmeui/internal/model"
	"github.com/acme/acmeui/internal/render"
	"github.com/acme/acmeui/internal/ui"
	"github.com/derailed/tcell/v2"
)

// Downloader fetches a stored document.
type Downloader interface {
	Download(ctx context.Context, key string, w io.Writer) (int64, error)
}

// DocumentSource hands out the document service and its AWS connection.
type DocumentSource interface {
	DocumentService() (*dao.DocumentService, error)
	ReconnectDocuments(ctx context.Context) (bool, error)
	Connection() aws.Connection
}

// Documents is the paged document repository grid.
type Documents struct {
	*PageView[dao.Document]

	source DocumentSource
	store  Downloader
	dir    string
}

// NewDocuments returns the documents grid.
func NewDocuments(app *App) (ui.Component, error) {
	f, ok := app.Factory().(DocumentSource)
	if !ok {
		return nil, dao.ErrNoService
	}
	svc, err := f.DocumentService()
	if err != nil {
		return nil, err
	}
	r := &render.Document{}
	m := model.NewPageTable[dao.Document](documentsTitle(f.Connection().ConnectionOK()), svc, r, app.Config().Acme.PageSize, app.Logger())
	d := Documents{
		PageView: NewPageView(app, config.DocumentsView, m),
		source:   f,
		store:    svc,
		dir:      config.AppDownloadsDir,
	}
	d.SetColorerFn(r.ColorerFunc())

	return &d, nil
}

// Init initializes the view.
func (d *Documents) Init(ctx context.Context) error {
	if err := d.PageView.Init(ctx); err != nil {
		return err
	}
	d.Actions().Bulk(ui.KeyMap{
		ui.KeyD:      ui.NewKeyAction("Download", d.downloadCmd, true),
		ui.KeyShiftR: ui.NewKeyAction("Reset", d.resetCmd, true),
	})

	return nil
}

// resetCmd rebuilds the S3 clients then reloads from the first page.
func (d *Documents) resetCmd(*tcell.EventKey) *tcell.EventKey {
	d.run(func(ctx context.Context) error {
		ok, err := d.source.ReconnectDocuments(ctx)
		if err != nil {
			d.app.Flash().Errf("Reconnect failed: %v", err)
			return err
		}
		d.model.SetTitle(documentsTitle(ok))
		if !ok {
			d.app.Flash().Warn("Document repository unreachable")
		}
		return d.model.Reset(ctx)
	})
	return nil
}

func documentsTitle(connected bool) string {
	if connected {
		return config.DocumentsView
	}
	return config.DocumentsView + " (offline)"
}

func (d *Documents) downloadCmd(*tcell.EventKey) *tcell.EventKey {
	key := d.GetSelectedItem()
	if key == "" {
		return nil
	}
	path := filepath.Join(d.dir, dao.Document{Key: key}.Name())
	if _, err := os.Stat(path); err == nil {
		ui.NewConfirm(d.app.Main, fmt.Sprintf("Overwrite %s?", path)).
			SetOnConfirm(func() { d.download(key, path) }).
			SetOnCancel(func() { d.app.focusTop() }).
			Show()
		return nil
	}
	d.download(key, path)

	return nil
}

func (d *Documents) download(key, path string) {
	d.app.focusTop()
	d.app.Flash().Infof("Downloading %s...", key)

	go func() {
		n, err := d.save(d.app.Context(), key, path)
		if err != nil {
			d.app.Flash().Errf("Download %s failed: %v", key, err)
			return
		}
		d.app.Flash().Infof("Saved %s (%s)", path, render.FormatSize(n))
	}()
}

func (d *Documents) save(ctx context.Context, key, path string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return 0, err
	}
	tmp := path + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return 0, err
	}

	n, err := d.store.Download(ctx, key, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return 0, err
	}

	return n, os.Rename(tmp, path)
}
