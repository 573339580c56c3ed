package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/acme/acmeui/internal/config"
	"github.com/acme/acmeui/internal/dao"
	"github.com/acme/acmeui/internal/model"
	"github.com/acme/acmeui/internal/render"
	"github.com/acme/acmeui/internal/view"
)

type taskLister []dao.Task

func (l taskLister) List(context.Context) ([]dao.Task, error) {
	return l, nil
}

type orderPages []dao.Order

func (o orderPages) FetchPage(_ context.Context, pageIndex, pageSize int) (dao.Page[dao.Order], error) {
	start := min(pageIndex*pageSize, len(o))
	end := min(start+pageSize, len(o))
	return dao.Page[dao.Order]{Items: o[start:end]}, nil
}

func (o orderPages) Count(context.Context) (int64, error) {
	return int64(len(o)), nil
}

func TestParseSort(t *testing.T) {
	uu := map[string]struct {
		s string
		e []model.SortClause
	}{
		"blank": {},
		"single": {
			s: "name",
			e: []model.SortClause{{Field: "name"}},
		},
		"multi": {
			s: "Priority:DESC, name:asc ,",
			e: []model.SortClause{{Field: "priority", Desc: true}, {Field: "name"}},
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			cc := parseSort(u.s)
			if len(cc) != len(u.e) {
				t.Fatalf("expected %v but got %v", u.e, cc)
			}
			for i := range cc {
				if cc[i] != u.e[i] {
					t.Fatalf("clause %d: expected %v but got %v", i, u.e[i], cc[i])
				}
			}
		})
	}
}

func TestUnseen(t *testing.T) {
	now := time.Now()
	mm := []dao.Message{
		{UserName: "ann", Text: "a", Time: now},
		{UserName: "bob", Text: "b", Time: now.Add(time.Second)},
		{UserName: "cat", Text: "c", Time: now.Add(2 * time.Second)},
	}

	if got := unseen(mm, ""); len(got) != 3 {
		t.Fatalf("expected 3 messages but got %d", len(got))
	}
	if got := unseen(mm, mm[1].GetID()); len(got) != 1 || got[0].UserName != "cat" {
		t.Fatalf("expected cat only but got %v", got)
	}
	if got := unseen(mm, mm[2].GetID()); len(got) != 0 {
		t.Fatalf("expected nothing but got %v", got)
	}
	if got := unseen(mm, "gone@0"); len(got) != 3 {
		t.Fatalf("expected the whole window but got %d", len(got))
	}
}

func TestDumpList(t *testing.T) {
	l := taskLister{
		{ID: "1", Name: "Approve invoice", CandidateGroup: "finance", Priority: 10},
		{ID: "2", Name: "Ship order", CandidateGroup: "warehouse", Priority: 50},
		{ID: "3", Name: "Approve refund", CandidateGroup: "finance", Priority: 30},
	}

	var out bytes.Buffer
	flags := dumpFlags{filter: "Approve", sort: "priority:desc"}
	err := dumpList[dao.Task](context.Background(), &out, config.TasksView, l, &render.Task{},
		render.TaskField, view.MatchTask, flags, config.NewConfig())
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows but got %q", out.String())
	}
	if !strings.Contains(lines[1], "Approve refund") || !strings.Contains(lines[2], "Approve invoice") {
		t.Fatalf("unexpected order %q", lines[1:])
	}
}

func TestDumpPage(t *testing.T) {
	oo := make(orderPages, 0, 5)
	for i := 1; i <= 5; i++ {
		oo = append(oo, dao.Order{ID: int64(i), StoreID: "s1", ProductID: "p", Quantity: "1", Amount: "9.99"})
	}

	uu := map[string]struct {
		page  int
		rows  int
		label string
	}{
		"first": {page: 1, rows: 2, label: "5 total records"},
		"last":  {page: 3, rows: 1, label: "5 total records"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			var out bytes.Buffer
			err := dumpPage[dao.Order](context.Background(), &out, config.OrdersView, oo, &render.Order{},
				dumpFlags{page: u.page, size: 2}, config.NewConfig())
			if err != nil {
				t.Fatal(err)
			}
			body, footer, _ := strings.Cut(out.String(), "\n\n")
			if n := len(strings.Split(strings.TrimSpace(body), "\n")) - 1; n != u.rows {
				t.Fatalf("expected %d rows but got %d in %q", u.rows, n, body)
			}
			if strings.TrimSpace(footer) != u.label {
				t.Fatalf("expected %q but got %q", u.label, footer)
			}
		})
	}
}
