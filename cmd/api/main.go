// The api binary serves one REST operation per deployed function. Every
// function runs this same binary; HANDLER_NAME selects which operation the
// function handles.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/scheduler"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/joho/godotenv"

	"github.com/datavibes/eventapi/handler"
	"github.com/datavibes/eventapi/schedule"
	"github.com/datavibes/eventapi/slack"
	"github.com/datavibes/eventapi/storage"
	"github.com/datavibes/eventapi/store"
)

type handlerFunc func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

func main() {
	// Local development only; in Lambda the env comes from the function
	// configuration and there is no .env file.
	_ = godotenv.Load()

	logger := newLogger()

	h, err := build(context.Background(), logger)
	if err != nil {
		logger.Error("failed to initialise", "error", err)
		os.Exit(1)
	}

	name := os.Getenv("HANDLER_NAME")
	route, ok := routes(h)[name]
	if !ok {
		logger.Error("unknown handler name", "handler_name", name)
		os.Exit(1)
	}

	lambda.Start(route)
}

func routes(h *handler.Handler) map[string]handlerFunc {
	return map[string]handlerFunc{
		"createEvent":      h.CreateEvent,
		"listEvents":       h.ListEvents,
		"getEvent":         h.GetEvent,
		"updateEvent":      h.UpdateEvent,
		"deleteEvent":      h.DeleteEvent,
		"rsvp":             h.RSVP,
		"createPoll":       h.CreatePoll,
		"vote":             h.Vote,
		"closePoll":        h.ClosePoll,
		"addBudgetItem":    h.AddBudgetItem,
		"updateBudgetItem": h.UpdateBudgetItem,
		"addVendor":        h.AddVendor,
		"updateVendor":     h.UpdateVendor,
		"createMedia":      h.CreateMedia,
		"deleteMedia":      h.DeleteMedia,
		"createMessage":    h.CreateMessage,
		"listMessages":     h.ListMessages,
		"deleteMessage":    h.DeleteMessage,
	}
}

func build(ctx context.Context, logger *slog.Logger) (*handler.Handler, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	storeCfg := store.DefaultConfig()
	if table := os.Getenv("DYNAMODB_TABLE"); table != "" {
		storeCfg.Table = table
	}
	s := store.New(dynamodb.NewFromConfig(cfg), storeCfg)

	deps := handler.Deps{
		Media: storage.New(cfg, os.Getenv("MEDIA_BUCKET"), cfg.Region),
		Scheduler: schedule.New(
			scheduler.NewFromConfig(cfg),
			os.Getenv("SCHEDULER_GROUP_NAME"),
			os.Getenv("SCHEDULER_ROLE_ARN"),
			os.Getenv("WORKER_FUNCTION_ARN"),
		),
		Slack: slack.New(secretsmanager.NewFromConfig(cfg), os.Getenv("SLACK_SECRET_ARN")),
	}

	return handler.New(s, deps, logger), nil
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		_ = level.UnmarshalText([]byte(v))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
