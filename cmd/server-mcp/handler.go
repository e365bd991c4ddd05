package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"custom-updater/pkg/content"
	"custom-updater/pkg/customupdate"
	"custom-updater/pkg/session"
)

type handler struct {
	logger    *slog.Logger
	store     *session.Store
	requester *customupdate.Requester
}

type outcome struct {
	success bool
	err     error
}

func (h *handler) sendCustomUpdate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	contextTokenID := request.GetString("context_token_id", "")
	message := request.GetString("message", "")

	var opts []content.Option
	if cta := request.GetString("cta", ""); cta != "" {
		opts = append(opts, content.WithCTA(cta))
	}
	if payload := request.GetString("payload", ""); payload != "" {
		opts = append(opts, content.WithPayload(payload))
	}

	resCh := make(chan outcome, 1)
	done := func(success bool, err error) {
		resCh <- outcome{success: success, err: err}
	}

	tok := h.store.Current()

	var err error
	if img := request.GetString("image_base64", ""); img != "" {
		data, decErr := base64.StdEncoding.DecodeString(img)
		if decErr != nil {
			return mcp.NewToolResultError("image_base64 is not valid base64"), nil
		}
		err = h.requester.SendImage(tok, content.NewImage(contextTokenID, message, data, opts...), done)
	} else {
		media := content.URLMedia{
			URL:  request.GetString("media_url", ""),
			Type: content.MediaType(request.GetString("media_type", string(content.MediaPhoto))),
		}
		err = h.requester.SendMedia(tok, content.NewMedia(contextTokenID, message, media, opts...), done)
	}
	if err != nil {
		h.logger.Info("custom update not sent", slog.String("err", err.Error()))

		return mcp.NewToolResultError(err.Error()), nil
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resCh:
		if res.err != nil {
			return mcp.NewToolResultError(res.err.Error()), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("custom update sent, success: %t", res.success)), nil
	}
}
