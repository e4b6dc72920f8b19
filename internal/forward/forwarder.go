package forward

import (
	"context"
	"fmt"
	"strings"

	"taskbridge/internal/normalize"
	"taskbridge/pkg/clickup"
)

// TaskClient is the slice of the task-tracking API the forwarder needs.
type TaskClient interface {
	FindTaskByEmail(ctx context.Context, email string) (*clickup.Task, error)
	CreateTask(ctx context.Context, req clickup.CreateTaskRequest) (*clickup.Task, error)
	AddTag(ctx context.Context, taskID, tag string) error
	SetCustomField(ctx context.Context, taskID, fieldID string, value any) error
}

type Forwarder struct {
	Client TaskClient
	Fields clickup.FieldIDs
}

type Result struct {
	TaskID     string   `json:"task_id"`
	Created    bool     `json:"created"`
	Operations []string `json:"operations"`
}

// Sync upserts one normalized record into the task tracker. Tasks are keyed
// by the email custom field: an existing task just collects the new tags,
// a new lead gets a full task. Calls are sequential and there is no retry;
// the first failed call aborts the upsert.
func (f *Forwarder) Sync(ctx context.Context, rec normalize.Record) (*Result, error) {
	if rec.Email == nil {
		return nil, fmt.Errorf("record has no email")
	}

	existing, err := f.Client.FindTaskByEmail(ctx, *rec.Email)
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}

	res := &Result{}
	if existing != nil {
		res.TaskID = existing.ID
		res.Operations = append(res.Operations, "task matched by email")
	} else {
		task, err := f.Client.CreateTask(ctx, f.createRequest(rec))
		if err != nil {
			return nil, fmt.Errorf("create task: %w", err)
		}
		res.TaskID = task.ID
		res.Created = true
		res.Operations = append(res.Operations, "task created")
	}

	for _, tag := range []*string{rec.Action, rec.Tag, rec.Product} {
		if tag == nil {
			continue
		}
		if err := f.Client.AddTag(ctx, res.TaskID, *tag); err != nil {
			return nil, fmt.Errorf("add tag %s: %w", *tag, err)
		}
		res.Operations = append(res.Operations, "tag "+*tag+" added")
	}

	if rec.Action != nil && *rec.Action == normalize.ActionBuyer && rec.SettledAmount != nil && f.Fields.Settled != "" {
		if err := f.Client.SetCustomField(ctx, res.TaskID, f.Fields.Settled, *rec.SettledAmount); err != nil {
			return nil, fmt.Errorf("set settled field: %w", err)
		}
		res.Operations = append(res.Operations, "settled amount set")
	}

	return res, nil
}

func (f *Forwarder) createRequest(rec normalize.Record) clickup.CreateTaskRequest {
	name := "[Lead] " + *rec.Email
	if rec.Name != nil {
		name = *rec.Name
	}

	req := clickup.CreateTaskRequest{Name: name}
	req.CustomFields = append(req.CustomFields, clickup.CustomField{ID: f.Fields.Email, Value: *rec.Email})

	if rec.Phone != nil {
		if f.Fields.Phone != "" {
			req.CustomFields = append(req.CustomFields, clickup.CustomField{ID: f.Fields.Phone, Value: *rec.Phone})
		}
		if f.Fields.WhatsApp != "" {
			link := "wa.me/" + strings.TrimPrefix(*rec.Phone, "+")
			req.CustomFields = append(req.CustomFields, clickup.CustomField{ID: f.Fields.WhatsApp, Value: link})
		}
	}
	if rec.Amount != nil && f.Fields.Value != "" {
		req.CustomFields = append(req.CustomFields, clickup.CustomField{ID: f.Fields.Value, Value: *rec.Amount})
	}
	if rec.Tag != nil {
		req.Tags = append(req.Tags, *rec.Tag)
	}
	return req
}
