// Package schedule manages one-shot EventBridge Scheduler triggers for
// delayed message delivery.
package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/scheduler"
	"github.com/aws/aws-sdk-go-v2/service/scheduler/types"
)

// API is the subset of the Scheduler client used by the Client.
type API interface {
	CreateSchedule(ctx context.Context, params *scheduler.CreateScheduleInput, optFns ...func(*scheduler.Options)) (*scheduler.CreateScheduleOutput, error)
	DeleteSchedule(ctx context.Context, params *scheduler.DeleteScheduleInput, optFns ...func(*scheduler.Options)) (*scheduler.DeleteScheduleOutput, error)
}

// Client creates and deletes one-shot schedules in a fixed schedule group,
// targeting the worker function.
type Client struct {
	api       API
	group     string
	roleARN   string
	targetARN string
}

// New creates a Client. group may be empty when schedules live in the
// default group.
func New(api API, group, roleARN, targetARN string) *Client {
	return &Client{
		api:       api,
		group:     group,
		roleARN:   roleARN,
		targetARN: targetARN,
	}
}

// CreateOneShot registers a trigger that fires once at the given UTC
// timestamp (RFC 3339, fractional seconds ignored) and invokes the target
// with the JSON-encoded payload. The schedule deletes itself after firing.
// Returns the schedule ARN for later cancellation.
func (c *Client) CreateOneShot(ctx context.Context, name, at string, payload any) (string, error) {
	input, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal schedule payload: %w", err)
	}

	result, err := c.api.CreateSchedule(ctx, &scheduler.CreateScheduleInput{
		Name:                       aws.String(name),
		GroupName:                  groupName(c.group),
		ScheduleExpression:         aws.String(fmt.Sprintf("at(%s)", atExpression(at))),
		ScheduleExpressionTimezone: aws.String("UTC"),
		FlexibleTimeWindow: &types.FlexibleTimeWindow{
			Mode: types.FlexibleTimeWindowModeOff,
		},
		ActionAfterCompletion: types.ActionAfterCompletionDelete,
		Target: &types.Target{
			Arn:     aws.String(c.targetARN),
			RoleArn: aws.String(c.roleARN),
			Input:   aws.String(string(input)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("create schedule %s: %w", name, err)
	}
	return aws.ToString(result.ScheduleArn), nil
}

// Delete removes a schedule by name. The trigger may already have fired and
// deleted itself; callers tolerate that failure.
func (c *Client) Delete(ctx context.Context, name string) error {
	_, err := c.api.DeleteSchedule(ctx, &scheduler.DeleteScheduleInput{
		Name:      aws.String(name),
		GroupName: groupName(c.group),
	})
	if err != nil {
		return fmt.Errorf("delete schedule %s: %w", name, err)
	}
	return nil
}

// atExpression trims fractional seconds: "2026-01-02T15:04:05.000Z"
// becomes "2026-01-02T15:04:05", the format at() expects.
func atExpression(timestamp string) string {
	return strings.SplitN(timestamp, ".", 2)[0]
}

func groupName(group string) *string {
	if group == "" {
		return nil
	}
	return aws.String(group)
}
