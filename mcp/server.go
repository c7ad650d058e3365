// Package mcp exposes HawkFuel tracking operations as MCP tools so that
// assistants can log meals, water, and weigh-ins conversationally.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	hawkfuel "github.com/HlnefzgerSchoolAct/HawkFuel"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps the MCP server with HawkFuel tools.
type Server struct {
	client    *hawkfuel.Client
	mcpServer *server.MCPServer
}

// ToolResult represents the result of a tool call.
type ToolResult struct {
	Content string
	IsError bool
}

// ToolInfo represents a registered tool.
type ToolInfo struct {
	Name        string
	Description string
}

// NewServer creates a new MCP server with HawkFuel tools registered.
func NewServer(client *hawkfuel.Client) *Server {
	s := &Server{client: client}

	s.mcpServer = server.NewMCPServer(
		"hawkfuel",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerTools()
	return s
}

// Run starts the MCP server, reading from stdin and writing to stdout.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

// HandleMessage processes a raw JSON-RPC message and returns a response.
// This is primarily for testing the MCP protocol layer.
func (s *Server) HandleMessage(ctx context.Context, message json.RawMessage) mcp.JSONRPCMessage {
	return s.mcpServer.HandleMessage(ctx, message)
}

// ListTools returns all registered tools.
func (s *Server) ListTools() []ToolInfo {
	return []ToolInfo{
		{Name: "hawkfuel_log_food", Description: "Log a food item with calories and macros to today's log"},
		{Name: "hawkfuel_log_exercise", Description: "Log an exercise session with calories burned"},
		{Name: "hawkfuel_log_water", Description: "Add water intake in milliliters to today's log"},
		{Name: "hawkfuel_log_weight", Description: "Record a weigh-in for today"},
		{Name: "hawkfuel_today", Description: "Show today's log: food entries, exercise, water, and calories remaining"},
		{Name: "hawkfuel_sync", Description: "Sync local data with the cloud (push or pull)"},
	}
}

// CallTool executes a tool by name with the given arguments.
// This is used for testing and direct invocation.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (*ToolResult, error) {
	switch name {
	case "hawkfuel_log_food":
		return s.handleLogFood(ctx, args)
	case "hawkfuel_log_exercise":
		return s.handleLogExercise(ctx, args)
	case "hawkfuel_log_water":
		return s.handleLogWater(ctx, args)
	case "hawkfuel_log_weight":
		return s.handleLogWeight(ctx, args)
	case "hawkfuel_today":
		return s.handleToday(ctx, args)
	case "hawkfuel_sync":
		return s.handleSync(ctx, args)
	default:
		return &ToolResult{Content: fmt.Sprintf("unknown tool: %s", name), IsError: true}, nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("hawkfuel_log_food",
		mcp.WithDescription("Log a food item with calories and macros to today's log. Updates recent foods, food history, daily history, and the logging streak."),
		mcp.WithString("name",
			mcp.Description("Name of the food"),
			mcp.Required(),
		),
		mcp.WithNumber("calories",
			mcp.Description("Calories in the portion logged"),
			mcp.Required(),
		),
		mcp.WithNumber("protein_g",
			mcp.Description("Protein in grams"),
		),
		mcp.WithNumber("carbs_g",
			mcp.Description("Carbohydrates in grams"),
		),
		mcp.WithNumber("fat_g",
			mcp.Description("Fat in grams"),
		),
	), s.mcpHandleLogFood)

	s.mcpServer.AddTool(mcp.NewTool("hawkfuel_log_exercise",
		mcp.WithDescription("Log an exercise session with an estimate of calories burned."),
		mcp.WithString("name",
			mcp.Description("Name of the activity"),
			mcp.Required(),
		),
		mcp.WithNumber("calories_burned",
			mcp.Description("Estimated calories burned"),
			mcp.Required(),
		),
	), s.mcpHandleLogExercise)

	s.mcpServer.AddTool(mcp.NewTool("hawkfuel_log_water",
		mcp.WithDescription("Add water intake in milliliters to today's running total."),
		mcp.WithNumber("ml",
			mcp.Description("Milliliters of water to add"),
			mcp.Required(),
		),
	), s.mcpHandleLogWater)

	s.mcpServer.AddTool(mcp.NewTool("hawkfuel_log_weight",
		mcp.WithDescription("Record a weigh-in for today. A second weigh-in on the same day replaces the first."),
		mcp.WithNumber("weight_kg",
			mcp.Description("Body weight in kilograms"),
			mcp.Required(),
		),
	), s.mcpHandleLogWeight)

	s.mcpServer.AddTool(mcp.NewTool("hawkfuel_today",
		mcp.WithDescription("Show today's log: food entries, exercise, water, and calories remaining against the daily target."),
	), s.mcpHandleToday)

	s.mcpServer.AddTool(mcp.NewTool("hawkfuel_sync",
		mcp.WithDescription("Sync local data with the cloud. Requires a signed-in user and configured cloud URL."),
		mcp.WithString("direction",
			mcp.Description("Sync direction: push or pull (default: push)"),
		),
	), s.mcpHandleSync)
}

// MCP handlers that wrap internal handlers

func (s *Server) mcpHandleLogFood(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleLogFood(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func (s *Server) mcpHandleLogExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleLogExercise(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func (s *Server) mcpHandleLogWater(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleLogWater(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func (s *Server) mcpHandleLogWeight(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleLogWeight(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func (s *Server) mcpHandleToday(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleToday(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func (s *Server) mcpHandleSync(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleSync(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func toMCPResult(r *ToolResult) *mcp.CallToolResult {
	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: r.Content,
			},
		},
	}
	if r.IsError {
		result.IsError = true
	}
	return result
}

// Internal handlers

func (s *Server) handleLogFood(ctx context.Context, args map[string]any) (*ToolResult, error) {
	name, ok := args["name"].(string)
	if !ok || name == "" {
		return &ToolResult{Content: "name is required", IsError: true}, nil
	}
	calories, ok := args["calories"].(float64)
	if !ok {
		return &ToolResult{Content: "calories is required", IsError: true}, nil
	}

	entry := hawkfuel.FoodEntry{
		Name:     name,
		Calories: int(calories),
	}
	if v, ok := args["protein_g"].(float64); ok {
		entry.ProteinG = v
	}
	if v, ok := args["carbs_g"].(float64); ok {
		entry.CarbsG = v
	}
	if v, ok := args["fat_g"].(float64); ok {
		entry.FatG = v
	}

	if err := s.client.LogFood(ctx, entry); err != nil {
		return &ToolResult{Content: fmt.Sprintf("log food failed: %v", err), IsError: true}, nil
	}
	return &ToolResult{Content: fmt.Sprintf("Logged %s (%d kcal)", name, int(calories))}, nil
}

func (s *Server) handleLogExercise(ctx context.Context, args map[string]any) (*ToolResult, error) {
	name, ok := args["name"].(string)
	if !ok || name == "" {
		return &ToolResult{Content: "name is required", IsError: true}, nil
	}
	burned, ok := args["calories_burned"].(float64)
	if !ok {
		return &ToolResult{Content: "calories_burned is required", IsError: true}, nil
	}

	entry := hawkfuel.ExerciseEntry{
		Name:           name,
		CaloriesBurned: int(burned),
	}
	if err := s.client.LogExercise(ctx, entry); err != nil {
		return &ToolResult{Content: fmt.Sprintf("log exercise failed: %v", err), IsError: true}, nil
	}
	return &ToolResult{Content: fmt.Sprintf("Logged %s (%d kcal burned)", name, int(burned))}, nil
}

func (s *Server) handleLogWater(ctx context.Context, args map[string]any) (*ToolResult, error) {
	ml, ok := args["ml"].(float64)
	if !ok || ml <= 0 {
		return &ToolResult{Content: "ml must be a positive number", IsError: true}, nil
	}

	if err := s.client.LogWater(ctx, int(ml)); err != nil {
		return &ToolResult{Content: fmt.Sprintf("log water failed: %v", err), IsError: true}, nil
	}

	day, err := s.client.TodayLog()
	if err != nil {
		return &ToolResult{Content: fmt.Sprintf("Added %d ml of water", int(ml))}, nil
	}
	return &ToolResult{Content: fmt.Sprintf("Added %d ml of water (today: %d ml)", int(ml), day.Water)}, nil
}

func (s *Server) handleLogWeight(ctx context.Context, args map[string]any) (*ToolResult, error) {
	kg, ok := args["weight_kg"].(float64)
	if !ok || kg <= 0 {
		return &ToolResult{Content: "weight_kg must be a positive number", IsError: true}, nil
	}

	if err := s.client.LogWeight(ctx, hawkfuel.WeightEntry{WeightKg: kg}); err != nil {
		return &ToolResult{Content: fmt.Sprintf("log weight failed: %v", err), IsError: true}, nil
	}
	return &ToolResult{Content: fmt.Sprintf("Recorded weigh-in: %.1f kg", kg)}, nil
}

func (s *Server) handleToday(ctx context.Context, args map[string]any) (*ToolResult, error) {
	day, err := s.client.TodayLog()
	if err != nil {
		return &ToolResult{Content: fmt.Sprintf("reading today's log failed: %v", err), IsError: true}, nil
	}

	var target hawkfuel.DailyTarget
	hasTarget, _ := s.client.Store().GetSlotInto(hawkfuel.SlotDailyTarget, &target)

	return &ToolResult{Content: formatToday(day, target, hasTarget)}, nil
}

func (s *Server) handleSync(ctx context.Context, args map[string]any) (*ToolResult, error) {
	direction, _ := args["direction"].(string)

	switch direction {
	case "pull":
		if err := s.client.Pull(ctx); err != nil {
			return &ToolResult{Content: fmt.Sprintf("pull failed: %v", err), IsError: true}, nil
		}
		return &ToolResult{Content: "Pulled cloud data into the local store"}, nil
	case "", "push":
		if err := s.client.Sync(ctx); err != nil {
			return &ToolResult{Content: fmt.Sprintf("sync failed: %v", err), IsError: true}, nil
		}
		return &ToolResult{Content: "Pushed local data to the cloud"}, nil
	default:
		return &ToolResult{Content: fmt.Sprintf("unknown direction: %s (want push or pull)", direction), IsError: true}, nil
	}
}

// Formatting

func formatToday(day hawkfuel.DayLog, target hawkfuel.DailyTarget, hasTarget bool) string {
	var sb strings.Builder

	eaten := 0
	for _, e := range day.Entries {
		eaten += e.Calories
	}
	burned := 0
	for _, e := range day.Exercise {
		burned += e.CaloriesBurned
	}

	if len(day.Entries) == 0 {
		sb.WriteString("Nothing logged yet today.\n")
	} else {
		sb.WriteString(fmt.Sprintf("Today's food (%d entries):\n", len(day.Entries)))
		for _, e := range day.Entries {
			sb.WriteString(fmt.Sprintf("  - %s: %d kcal\n", e.Name, e.Calories))
		}
	}

	if len(day.Exercise) > 0 {
		sb.WriteString(fmt.Sprintf("Exercise (%d kcal burned):\n", burned))
		for _, e := range day.Exercise {
			sb.WriteString(fmt.Sprintf("  - %s: %d kcal\n", e.Name, e.CaloriesBurned))
		}
	}

	sb.WriteString(fmt.Sprintf("Water: %d ml\n", day.Water))
	sb.WriteString(fmt.Sprintf("Eaten: %d kcal\n", eaten))
	if hasTarget && target.Calories > 0 {
		remaining := target.Calories - eaten + burned
		sb.WriteString(fmt.Sprintf("Remaining: %d of %d kcal", remaining, target.Calories))
	}

	return strings.TrimRight(sb.String(), "\n")
}
