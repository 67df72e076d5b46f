// The worker binary delivers scheduled messages. One-shot schedules created
// by the API invoke it with an {eventId, messageId} payload.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/joho/godotenv"

	"github.com/datavibes/eventapi/email"
	"github.com/datavibes/eventapi/handler"
	"github.com/datavibes/eventapi/slack"
	"github.com/datavibes/eventapi/store"
)

func main() {
	_ = godotenv.Load()

	logger := newLogger()

	h, err := build(context.Background(), logger)
	if err != nil {
		logger.Error("failed to initialise", "error", err)
		os.Exit(1)
	}

	lambda.Start(h.ProcessMessage)
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
		Slack: slack.New(secretsmanager.NewFromConfig(cfg), os.Getenv("SLACK_SECRET_ARN")),
		Email: email.New(ses.NewFromConfig(cfg), os.Getenv("EMAIL_FROM")),
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
