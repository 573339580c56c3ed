package view

import (
	"strings"

	"github.com/acme/acmeui/internal/config"
	"github.com/acme/acmeui/internal/dao"
	"github.com/acme/acmeui/internal/model"
	"github.com/acme/acmeui/internal/render"
	"github.com/acme/acmeui/internal/ui"
)

// NewTasks returns the candidate group task list.
func NewTasks(app *App) (ui.Component, error) {
	l, err := app.Factory().Tasks()
	if err != nil {
		return nil, err
	}
	r := &render.Task{}
	m := model.NewTableData[dao.Task](
		config.TasksView,
		l,
		r,
		render.TaskField,
		app.Config().Acme.GetRefreshRate(),
		app.Logger(),
	)
	v := NewListView(app, config.TasksView, m, MatchTask)
	v.SetColorerFn(r.ColorerFunc())

	return v, nil
}

// MatchTask returns true if a lowercased needle appears in the task name, assignee, group or id.
func MatchTask(t dao.Task, text string) bool {
	for _, s := range []string{t.Name, t.Assignee, t.CandidateGroup, t.ID} {
		if strings.Contains(strings.ToLower(s), text) {
			return true
		}
	}
	return false
}
