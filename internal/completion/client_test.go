package completion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newFakeServer(t *testing.T, handler func(body map[string]any) (int, any)) (*httptest.Server, *map[string]any) {
	t.Helper()
	captured := &map[string]any{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		*captured = body
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("authorization = %q", auth)
		}
		status, resp := handler(body)
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func chatReply(content string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
}

func TestCompleteFreeText(t *testing.T) {
	server, captured := newFakeServer(t, func(map[string]any) (int, any) {
		return http.StatusOK, chatReply("a thoughtful answer")
	})

	c := NewClient(server.URL, "test-key")
	got, err := c.Complete(context.Background(), []Message{
		{Role: "system", Content: "be helpful"},
		{Role: "user", Content: "explain Genesis 1:1"},
	}, Options{Model: "test-model", Temperature: 0.8})
	if err != nil {
		t.Fatal(err)
	}
	if got != "a thoughtful answer" {
		t.Errorf("content = %q", got)
	}

	body := *captured
	if body["model"] != "test-model" {
		t.Errorf("model = %v", body["model"])
	}
	if body["temperature"] != 0.8 {
		t.Errorf("temperature = %v", body["temperature"])
	}
	if _, ok := body["response_format"]; ok {
		t.Error("free-text call must not carry response_format")
	}
}

func TestCompleteStructured(t *testing.T) {
	server, captured := newFakeServer(t, func(map[string]any) (int, any) {
		return http.StatusOK, chatReply(`{"cross_references":[]}`)
	})

	c := NewClient(server.URL, "test-key")
	schema := &Schema{
		Name: "cross_references",
		Properties: map[string]*Property{
			"cross_references": {Type: "array", Items: Object(map[string]*Property{
				"reference": {Type: "string"},
			})},
		},
		Required: []string{"cross_references"},
	}
	got, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "go"}},
		Options{Model: "test-model", Schema: schema})
	if err != nil {
		t.Fatal(err)
	}
	if got != `{"cross_references":[]}` {
		t.Errorf("content = %q", got)
	}

	rf, ok := (*captured)["response_format"].(map[string]any)
	if !ok {
		t.Fatal("response_format missing")
	}
	if rf["type"] != "json_schema" {
		t.Errorf("response_format type = %v", rf["type"])
	}
	js := rf["json_schema"].(map[string]any)
	if js["name"] != "cross_references" || js["strict"] != true {
		t.Errorf("json_schema = %v", js)
	}
	inner := js["schema"].(map[string]any)
	if inner["additionalProperties"] != false {
		t.Errorf("schema = %v", inner)
	}
}

func TestCompleteHTTPError(t *testing.T) {
	server, _ := newFakeServer(t, func(map[string]any) (int, any) {
		return http.StatusTooManyRequests, map[string]any{"error": map[string]any{"message": "rate limited"}}
	})

	c := NewClient(server.URL, "test-key")
	if _, err := c.Complete(context.Background(), nil, Options{}); err == nil {
		t.Fatal("HTTP error not reported")
	}
}

func TestCompleteUpstreamErrorBody(t *testing.T) {
	server, _ := newFakeServer(t, func(map[string]any) (int, any) {
		return http.StatusOK, map[string]any{"error": map[string]any{"message": "model overloaded"}}
	})

	c := NewClient(server.URL, "test-key")
	if _, err := c.Complete(context.Background(), nil, Options{}); err == nil {
		t.Fatal("error body not reported")
	}
}

func TestCompleteNoChoices(t *testing.T) {
	server, _ := newFakeServer(t, func(map[string]any) (int, any) {
		return http.StatusOK, map[string]any{"choices": []any{}}
	})

	c := NewClient(server.URL, "test-key")
	if _, err := c.Complete(context.Background(), nil, Options{}); err == nil {
		t.Fatal("empty choices not reported")
	}
}
