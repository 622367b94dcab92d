// Package mcpserver exposes a calculator session as Model Context Protocol tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/arloliu/abacus/angle"
	"github.com/arloliu/abacus/convert"
	"github.com/arloliu/abacus/engine"
	"github.com/arloliu/abacus/internal/options"
	"github.com/arloliu/abacus/session"
	"github.com/arloliu/abacus/stats"
)

const (
	serverName        = "abacus"
	defaultHistoryMax = 20
)

// Server serves calculator tools over a shared session.
type Server struct {
	session *session.Session
	mcp     *server.MCPServer
	version string
	logger  *slog.Logger
}

// Option configures a Server.
type Option = options.Option[*Server]

// WithVersion sets the version reported to clients.
func WithVersion(version string) Option {
	return options.NoError(func(s *Server) {
		s.version = version
	})
}

// WithLogger sets the logger for tool calls.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	})
}

// New creates a Server with every tool registered.
func New(sess *session.Session, opts ...Option) (*Server, error) {
	s := &Server{
		session: sess,
		version: "dev",
		logger:  slog.New(slog.DiscardHandler),
	}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	s.mcp = server.NewMCPServer(
		serverName,
		s.version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	s.registerTools()

	return s, nil
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves the tools on stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("evaluate",
		mcp.WithDescription("Evaluate a math expression without recording it in history"),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Expression such as 'sqrt(16) + 2^3'")),
		mcp.WithString("mode", mcp.Description("Angle mode: deg, rad or grad (defaults to the session mode)")),
	), s.handleEvaluate)

	s.mcp.AddTool(mcp.NewTool("calculate",
		mcp.WithDescription("Evaluate a math expression in the session and record it in history"),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Expression to calculate")),
	), s.handleCalculate)

	s.mcp.AddTool(mcp.NewTool("set_angle_mode",
		mcp.WithDescription("Set the session angle mode for trigonometric functions"),
		mcp.WithString("mode", mcp.Required(), mcp.Description("deg, rad or grad")),
	), s.handleSetAngleMode)

	s.mcp.AddTool(mcp.NewTool("history",
		mcp.WithDescription("List recent calculations, newest first"),
		mcp.WithNumber("limit", mcp.Description("Maximum number of items (default 20)")),
	), s.handleHistory)

	s.mcp.AddTool(mcp.NewTool("search_history",
		mcp.WithDescription("Find calculations whose expression contains a query, ignoring case"),
		mcp.WithString("query", mcp.Required(), mcp.Description("Text to search for")),
	), s.handleSearchHistory)

	s.mcp.AddTool(mcp.NewTool("statistics",
		mcp.WithDescription("Summarize numeric results in history"),
		mcp.WithString("since", mcp.Description("RFC 3339 start time, inclusive")),
		mcp.WithString("until", mcp.Description("RFC 3339 end time, inclusive")),
	), s.handleStatistics)

	s.mcp.AddTool(mcp.NewTool("clear_history",
		mcp.WithDescription("Remove every calculation from history"),
	), s.handleClearHistory)

	s.mcp.AddTool(mcp.NewTool("convert_units",
		mcp.WithDescription("Convert a value between units of the same category"),
		mcp.WithNumber("value", mcp.Required(), mcp.Description("Value to convert")),
		mcp.WithString("from", mcp.Required(), mcp.Description("Source unit key, e.g. 'km'")),
		mcp.WithString("to", mcp.Required(), mcp.Description("Target unit key, e.g. 'mi'")),
		mcp.WithString("category", mcp.Required(), mcp.Description("length, weight, temperature, volume or area")),
	), s.handleConvertUnits)
}

func (s *Server) handleEvaluate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	expr, ok := args["expression"].(string)
	if !ok {
		return mcp.NewToolResultError("expression is required"), nil
	}

	mode := s.session.AngleMode()
	if raw, ok := args["mode"].(string); ok && raw != "" {
		parsed, err := angle.Parse(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		mode = parsed
	}

	v, err := s.session.Engine().EvaluateIn(expr, mode)
	if err != nil {
		s.logger.Debug("evaluate failed", slog.String("expression", expr), slog.String("error", err.Error()))
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(engine.FormatResult(v)), nil
}

func (s *Server) handleCalculate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expr, ok := request.GetArguments()["expression"].(string)
	if !ok {
		return mcp.NewToolResultError("expression is required"), nil
	}

	item, err := s.session.Submit(expr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(item)
}

func (s *Server) handleSetAngleMode(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := request.GetArguments()["mode"].(string)
	if !ok {
		return mcp.NewToolResultError("mode is required"), nil
	}

	mode, err := angle.Parse(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.session.SetAngleMode(mode); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("angle mode set to " + mode.String()), nil
}

func (s *Server) handleHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := defaultHistoryMax
	if raw, ok := request.GetArguments()["limit"].(float64); ok && raw > 0 {
		limit = int(raw)
	}

	return jsonResult(s.session.HistoryStore().Recent(limit))
}

func (s *Server) handleSearchHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, ok := request.GetArguments()["query"].(string)
	if !ok {
		return mcp.NewToolResultError("query is required"), nil
	}

	return jsonResult(s.session.HistoryStore().Search(query))
}

func (s *Server) handleStatistics(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	since, err := timeArg(args, "since")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	until, err := timeArg(args, "until")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	items := s.session.History()
	if since.IsZero() && until.IsZero() {
		return jsonResult(stats.Calculate(items))
	}
	if until.IsZero() {
		until = time.Now()
	}

	return jsonResult(stats.CalculateForPeriod(items, since, until))
}

func (s *Server) handleClearHistory(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.session.ClearHistory()

	return mcp.NewToolResultText("history cleared"), nil
}

func (s *Server) handleConvertUnits(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	value, ok := args["value"].(float64)
	if !ok {
		return mcp.NewToolResultError("value is required"), nil
	}
	from, _ := args["from"].(string)
	to, _ := args["to"].(string)
	rawCategory, _ := args["category"].(string)

	category, err := convert.ParseCategory(rawCategory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c, err := convert.Convert(value, from, to, category)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(c.String()), nil
}

func timeArg(args map[string]any, name string) (time.Time, error) {
	raw, ok := args[name].(string)
	if !ok || raw == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", name, err)
	}

	return t, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	return mcp.NewToolResultText(string(data)), nil
}
