package dao

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
)

const allTasksQuery = `query allTasks($candidateGroup: String) {
  allTasks(candidateGroup: $candidateGroup) {
    id name assignee candidateGroup priority created
  }
}`

// TaskService lists BPM tasks for a candidate group.
type TaskService struct {
	gql   *GraphQLClient
	group string
}

// NewTaskService returns a task service. An empty group lists every task.
func NewTaskService(gql *GraphQLClient, group string) *TaskService {
	return &TaskService{gql: gql, group: group}
}

// List returns the tasks of the candidate group.
func (s *TaskService) List(ctx context.Context) ([]Task, error) {
	var vars map[string]any
	if s.group != "" {
		vars = map[string]any{"candidateGroup": s.group}
	}

	data, err := s.gql.Do(ctx, allTasksQuery, vars)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tt, err := decodeAll(data.Get("allTasks"), taskFromJSON)
	if err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	return tt, nil
}

func taskFromJSON(r gjson.Result) Task {
	return Task{
		ID:             r.Get("id").String(),
		Name:           r.Get("name").String(),
		Assignee:       r.Get("assignee").String(),
		CandidateGroup: r.Get("candidateGroup").String(),
		Priority:       int(r.Get("priority").Int()),
		Created:        parseTime(r.Get("created")),
	}
}
