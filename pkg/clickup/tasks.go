package clickup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

type Task struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	CustomFields []CustomField `json:"custom_fields"`
	Tags         []Tag         `json:"tags"`
}

type Tag struct {
	Name string `json:"name"`
}

type CustomField struct {
	ID    string `json:"id"`
	Value any    `json:"value"`
}

type CreateTaskRequest struct {
	Name         string        `json:"name"`
	CustomFields []CustomField `json:"custom_fields,omitempty"`
	Tags         []string      `json:"tags,omitempty"`
}

// FindTaskByEmail queries the list for a task whose email custom field equals
// email. Closed tasks are included so a returning customer keeps their
// original task. Returns nil when there is no match.
func (c Client) FindTaskByEmail(ctx context.Context, email string) (*Task, error) {
	filter, err := json.Marshal([]map[string]any{{
		"field_id": c.Fields.Email,
		"operator": "=",
		"value":    email,
	}})
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("include_closed", "true")
	q.Set("custom_fields", string(filter))

	var resp struct {
		Tasks []Task `json:"tasks"`
	}
	if _, err := c.doJSON(ctx, http.MethodGet, "/list/"+url.PathEscape(c.ListID)+"/task", q, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Tasks) == 0 {
		return nil, nil
	}
	return &resp.Tasks[0], nil
}

func (c Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	var task Task
	if _, err := c.doJSON(ctx, http.MethodPost, "/list/"+url.PathEscape(c.ListID)+"/task", nil, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c Client) AddTag(ctx context.Context, taskID, tag string) error {
	path := "/task/" + url.PathEscape(taskID) + "/tag/" + url.PathEscape(tag)
	_, err := c.doJSON(ctx, http.MethodPost, path, nil, map[string]any{}, nil)
	return err
}

func (c Client) SetCustomField(ctx context.Context, taskID, fieldID string, value any) error {
	path := "/task/" + url.PathEscape(taskID) + "/field/" + url.PathEscape(fieldID)
	_, err := c.doJSON(ctx, http.MethodPost, path, nil, map[string]any{"value": value}, nil)
	return err
}
