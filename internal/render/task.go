// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of acmeui

package render

import (
	"fmt"
	"strconv"

	"github.com/acme/acmeui/internal/dao"
	"github.com/acme/acmeui/internal/model1"
	"github.com/gdamore/tcell/v2"
)

// Task renders BPM user tasks.
type Task struct {
	Base
}

// Header returns the task header.
func (*Task) Header() model1.Header {
	return model1.Header{
		{Name: "ID", Attrs: model1.Attrs{Wide: true, SortField: "id"}},
		{Name: colName, Attrs: model1.Attrs{SortField: "name"}},
		{Name: "ASSIGNEE", Attrs: model1.Attrs{SortField: "assignee"}},
		{Name: "GROUP", Attrs: model1.Attrs{SortField: "group"}},
		{Name: "PRIORITY", Attrs: model1.Attrs{Number: true, SortField: "priority"}},
		{Name: colAge, Attrs: model1.Attrs{Time: true, SortField: "created"}},
	}
}

// Render renders a task to a row.
func (r *Task) Render(o any, row *model1.Row) error {
	t, ok := o.(dao.Task)
	if !ok {
		return fmt.Errorf("expected Task, got %T", o)
	}

	row.ID = t.GetID()
	row.Fields = model1.Fields{
		t.ID,
		t.Name,
		Missing(t.Assignee),
		NA(t.CandidateGroup),
		strconv.Itoa(t.Priority),
		Freshness(r.Now(), t.Created),
	}

	return nil
}

// ColorerFunc highlights unclaimed tasks.
func (*Task) ColorerFunc() model1.ColorerFunc {
	return func(h model1.Header, re *model1.RowEvent) tcell.Color {
		if re.Kind == model1.EventUnchanged {
			if idx, ok := h.IndexOf("ASSIGNEE", true); ok && idx < len(re.Row.Fields) && re.Row.Fields[idx] == MissingValue {
				return model1.PendingColor
			}
		}
		return model1.DefaultColorer(h, re)
	}
}

// TaskField resolves task sort fields.
func TaskField(t dao.Task, field string) any {
	switch field {
	case "name":
		return t.Name
	case "assignee":
		return t.Assignee
	case "group":
		return t.CandidateGroup
	case "priority":
		return t.Priority
	case "created":
		return t.Created
	default:
		return t.ID
	}
}
