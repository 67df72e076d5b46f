// Package api provides the JSON response envelope and request helpers for
// the API Gateway proxy integration.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

func defaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,Authorization,X-Amz-Date,X-Api-Key,X-Amz-Security-Token",
		"Access-Control-Allow-Methods": "GET,POST,PUT,DELETE,OPTIONS",
	}
}

// JSON builds a response with the given status code and serialized body.
// The CORS headers are always present.
func JSON(statusCode int, data any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(data)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    defaultHeaders(),
			Body:       `{"error":"Internal server error"}`,
		}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    defaultHeaders(),
		Body:       string(body),
	}
}

// Success returns 200 with the given body.
func Success(data any) events.APIGatewayProxyResponse {
	return JSON(http.StatusOK, data)
}

// Created returns 201 with the given body.
func Created(data any) events.APIGatewayProxyResponse {
	return JSON(http.StatusCreated, data)
}

// Error returns the given status with an {error: message} body.
func Error(statusCode int, message string) events.APIGatewayProxyResponse {
	return JSON(statusCode, map[string]string{"error": message})
}

// BadRequest returns 400 with the given message.
func BadRequest(message string) events.APIGatewayProxyResponse {
	return Error(http.StatusBadRequest, message)
}

// NotFound returns 404 with the given message.
func NotFound(message string) events.APIGatewayProxyResponse {
	if message == "" {
		message = "Not found"
	}
	return Error(http.StatusNotFound, message)
}

// InternalError returns a generic 500. Internal detail is never leaked to
// the caller; handlers log the underlying failure instead.
func InternalError() events.APIGatewayProxyResponse {
	return Error(http.StatusInternalServerError, "Internal server error")
}
