package api

import (
	"encoding/json"
	"errors"

	"github.com/aws/aws-lambda-go/events"
)

// ErrEmptyBody is returned by ParseBody when the request carries no body.
var ErrEmptyBody = errors.New("api: request body is required")

// PathParam returns the named path parameter, or "" when absent.
func PathParam(req events.APIGatewayProxyRequest, name string) string {
	return req.PathParameters[name]
}

// QueryParam returns the named query-string parameter, or "" when absent.
func QueryParam(req events.APIGatewayProxyRequest, name string) string {
	return req.QueryStringParameters[name]
}

// ParseBody unmarshals the JSON request body into v.
func ParseBody(req events.APIGatewayProxyRequest, v any) error {
	if req.Body == "" {
		return ErrEmptyBody
	}
	return json.Unmarshal([]byte(req.Body), v)
}
