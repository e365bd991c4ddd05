package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"custom-updater/internal/config"
	"custom-updater/pkg/content"
	"custom-updater/pkg/customupdate"
	"custom-updater/pkg/graph"
	"custom-updater/pkg/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("err", err.Error()))

		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))

	store := session.NewStore(cfg.Token())
	h := &handler{
		logger:    logger,
		store:     store,
		requester: customupdate.New(logger, graph.New(logger, cfg.GraphURL, store)),
	}

	srv := server.NewMCPServer(
		"Custom update",
		"0.1.0")

	tool := mcp.NewTool("send_custom_update",
		mcp.WithDescription("Send a custom update with a message and either media by URL or an inline PNG image into a game context"),
		mcp.WithString("context_token_id",
			mcp.Required(),
			mcp.Description("Context token id of the game instance to send the update to"),
		),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Text of the update"),
		),
		mcp.WithString("media_url",
			mcp.Description("URL of the media to show, mutually exclusive with image_base64"),
		),
		mcp.WithString("media_type",
			mcp.Description("Type of the media behind media_url"),
			mcp.Enum(string(content.MediaPhoto), string(content.MediaGIF), string(content.MediaVideo)),
		),
		mcp.WithString("image_base64",
			mcp.Description("Base64 encoded image to embed"),
		),
		mcp.WithString("cta",
			mcp.Description("Text of the action button"),
		),
		mcp.WithString("payload",
			mcp.Description("Payload passed back when the receiver interacts with the update"),
		),
	)

	srv.AddTool(tool, h.sendCustomUpdate)

	streamableSrv := server.NewStreamableHTTPServer(srv)
	logger.Info("starting Streamable HTTP server", slog.String("addr", cfg.Addr))
	if err := streamableSrv.Start(cfg.Addr); err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error(err.Error())
		}
	}
}
