package api_test

import (
	"encoding/json"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datavibes/eventapi/api"
)

func TestResponseHeaders(t *testing.T) {
	responses := []events.APIGatewayProxyResponse{
		api.Success(map[string]string{"ok": "yes"}),
		api.Created(nil),
		api.BadRequest("nope"),
		api.NotFound(""),
		api.InternalError(),
	}

	for _, resp := range responses {
		assert.Equal(t, "application/json", resp.Headers["Content-Type"])
		assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
		assert.Equal(t, "GET,POST,PUT,DELETE,OPTIONS", resp.Headers["Access-Control-Allow-Methods"])
		assert.NotEmpty(t, resp.Headers["Access-Control-Allow-Headers"])
	}
}

func TestSuccess(t *testing.T) {
	resp := api.Success(map[string]int{"count": 3})
	assert.Equal(t, 200, resp.StatusCode)
	assert.JSONEq(t, `{"count":3}`, resp.Body)
}

func TestCreated(t *testing.T) {
	resp := api.Created(map[string]string{"id": "e1"})
	assert.Equal(t, 201, resp.StatusCode)
	assert.JSONEq(t, `{"id":"e1"}`, resp.Body)
}

func TestErrorEnvelope(t *testing.T) {
	resp := api.BadRequest("title is required")
	assert.Equal(t, 400, resp.StatusCode)
	assert.JSONEq(t, `{"error":"title is required"}`, resp.Body)

	resp = api.NotFound("Event not found")
	assert.Equal(t, 404, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Event not found"}`, resp.Body)

	// The 404 message falls back to a generic body.
	resp = api.NotFound("")
	assert.JSONEq(t, `{"error":"Not found"}`, resp.Body)

	resp = api.InternalError()
	assert.Equal(t, 500, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Internal server error"}`, resp.Body)
}

func TestParseBody(t *testing.T) {
	var out struct {
		Title string `json:"title"`
	}

	req := events.APIGatewayProxyRequest{Body: `{"title":"Offsite"}`}
	require.NoError(t, api.ParseBody(req, &out))
	assert.Equal(t, "Offsite", out.Title)

	err := api.ParseBody(events.APIGatewayProxyRequest{}, &out)
	assert.ErrorIs(t, err, api.ErrEmptyBody)

	err = api.ParseBody(events.APIGatewayProxyRequest{Body: "{not json"}, &out)
	assert.Error(t, err)
}

func TestParams(t *testing.T) {
	req := events.APIGatewayProxyRequest{
		PathParameters:        map[string]string{"eventId": "e1"},
		QueryStringParameters: map[string]string{"status": "upcoming"},
	}

	assert.Equal(t, "e1", api.PathParam(req, "eventId"))
	assert.Equal(t, "", api.PathParam(req, "missing"))
	assert.Equal(t, "upcoming", api.QueryParam(req, "status"))
	assert.Equal(t, "", api.QueryParam(events.APIGatewayProxyRequest{}, "status"))
}

func TestJSONMarshalsCleanly(t *testing.T) {
	resp := api.JSON(200, map[string]any{"nested": map[string]any{"a": 1}})
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &out))
	assert.Contains(t, out, "nested")
}
