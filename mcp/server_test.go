package mcp

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	hawkfuel "github.com/HlnefzgerSchoolAct/HawkFuel"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	client, err := hawkfuel.New(hawkfuel.Config{
		LocalPath: filepath.Join(t.TempDir(), "hawkfuel.db"),
	})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return NewServer(client)
}

func TestListTools(t *testing.T) {
	s := newTestServer(t)
	tools := s.ListTools()
	if len(tools) != 6 {
		t.Fatalf("tools = %d, want 6", len(tools))
	}
	for _, tool := range tools {
		if !strings.HasPrefix(tool.Name, "hawkfuel_") {
			t.Errorf("tool %q missing hawkfuel_ prefix", tool.Name)
		}
	}
}

func TestCallToolLogFood(t *testing.T) {
	s := newTestServer(t)

	result, err := s.CallTool(context.Background(), "hawkfuel_log_food", map[string]any{
		"name":      "apple",
		"calories":  float64(95),
		"protein_g": float64(0.5),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %s", result.Content)
	}
	if !strings.Contains(result.Content, "apple") {
		t.Errorf("result = %q, want food name", result.Content)
	}

	day, err := s.client.TodayLog()
	if err != nil {
		t.Fatalf("reading today's log: %v", err)
	}
	if len(day.Entries) != 1 || day.Entries[0].Calories != 95 {
		t.Errorf("today's log = %+v, want the logged entry", day.Entries)
	}
}

func TestCallToolLogFoodMissingName(t *testing.T) {
	s := newTestServer(t)

	result, err := s.CallTool(context.Background(), "hawkfuel_log_food", map[string]any{
		"calories": float64(95),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("missing name must be a tool error")
	}
}

func TestCallToolLogWater(t *testing.T) {
	s := newTestServer(t)

	result, err := s.CallTool(context.Background(), "hawkfuel_log_water", map[string]any{
		"ml": float64(500),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %s", result.Content)
	}

	day, _ := s.client.TodayLog()
	if day.Water != 500 {
		t.Errorf("water = %d, want 500", day.Water)
	}
}

func TestCallToolToday(t *testing.T) {
	s := newTestServer(t)

	if _, err := s.CallTool(context.Background(), "hawkfuel_log_food", map[string]any{
		"name": "toast", "calories": float64(210),
	}); err != nil {
		t.Fatalf("log food: %v", err)
	}

	result, err := s.CallTool(context.Background(), "hawkfuel_today", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %s", result.Content)
	}
	if !strings.Contains(result.Content, "toast") {
		t.Errorf("today output missing logged food:\n%s", result.Content)
	}
}

func TestCallToolSyncOffline(t *testing.T) {
	s := newTestServer(t)

	result, err := s.CallTool(context.Background(), "hawkfuel_sync", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("sync without cloud configuration must report a tool error")
	}
}

func TestCallToolUnknown(t *testing.T) {
	s := newTestServer(t)

	result, err := s.CallTool(context.Background(), "hawkfuel_teleport", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("unknown tool must report an error result")
	}
}
