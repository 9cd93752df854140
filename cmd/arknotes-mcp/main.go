package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"arknotes/internal/adapters/filesystem"
	mcpadapter "arknotes/internal/adapters/mcp"
	"arknotes/internal/adapters/sqlite"
	"arknotes/internal/config"
	"arknotes/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("arknotes-mcp: %v", err)
	}
	homeFlag := flag.String("home", cfg.Home, "data directory holding data.json and settings.json")
	flag.Parse()
	home := config.ExpandHome(*homeFlag)

	// stdout carries the protocol, so logs go to the data directory
	logger, err := logging.Open(home, cfg.LogLevel, "arknotes-mcp")
	if err != nil {
		log.Fatalf("arknotes-mcp: %v", err)
	}
	defer logger.Close()

	repo := filesystem.NewRepository(home, logger.Logger)
	index := sqlite.NewIndex()
	if err := index.Open(home); err != nil {
		logger.Error().Err(err).Msg("failed to open search index")
		os.Exit(1)
	}
	defer index.Close()

	mcpServer := server.NewMCPServer(
		"arknotes-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, repo, index)
	mcpadapter.RegisterWriteTools(mcpServer, repo)

	logger.Info().Str("home", home).Msg("serving on stdio")
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error().Err(err).Msg("server stopped")
		index.Close()
		os.Exit(1)
	}
}
