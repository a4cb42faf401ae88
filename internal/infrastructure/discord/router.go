// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package discord

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/pkg/constants"
	errs "github.com/linuxfoundation/lfx-v2-committee-relay-bot/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/pkg/log"
)

// CommandHandler executes one command invocation. msg.Content carries only
// the arguments; the prefix and command word are already stripped.
type CommandHandler func(ctx context.Context, msg model.Message) error

// Router translates gateway message events into command invocations. Each
// command runs on its own goroutine with a request ID in its log context, so
// a slow relay workflow never blocks the event loop.
type Router struct {
	session   *discordgo.Session
	messenger port.Messenger
	handlers  map[string]CommandHandler

	// wg tracks in-flight commands so shutdown can wait for them.
	wg sync.WaitGroup
}

// NewRouter creates a router and registers its event handlers on the session.
func NewRouter(session *discordgo.Session, messenger port.Messenger, handlers map[string]CommandHandler) *Router {
	r := &Router{
		session:   session,
		messenger: messenger,
		handlers:  handlers,
	}
	session.AddHandler(r.handleReady)
	session.AddHandler(r.handleMessageCreate)
	return r
}

// Wait blocks until every in-flight command has finished.
func (r *Router) Wait() {
	r.wg.Wait()
}

// handleReady logs the identity the gateway assigned to the session.
func (r *Router) handleReady(_ *discordgo.Session, event *discordgo.Ready) {
	slog.Info("logged in", "username", event.User.Username, "service", constants.ServiceName)
}

// handleMessageCreate parses command messages and dispatches them. The bot's
// own messages and non-command chatter are ignored.
func (r *Router) handleMessageCreate(_ *discordgo.Session, event *discordgo.MessageCreate) {
	botID := r.botUserID()
	if event.Author == nil || event.Author.ID == botID {
		return
	}

	command, args, ok := parseCommand(event.Content, botID)
	if !ok {
		return
	}
	handler, ok := r.handlers[command]
	if !ok {
		return
	}

	msg, err := convertMessage(event.Message)
	if err != nil {
		slog.Warn("dropping malformed command message", "error", err)
		return
	}
	msg.Content = args

	ctx := log.AppendCtx(context.Background(), slog.String("request_id", uuid.NewString()))
	ctx = log.AppendCtx(ctx, slog.String("command", command))

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.dispatch(ctx, command, handler, *msg)
	}()
}

// dispatch runs one command. Errors carrying user-facing text become chat
// replies; everything else is a logged command failure.
func (r *Router) dispatch(ctx context.Context, command string, handler CommandHandler, msg model.Message) {
	slog.InfoContext(ctx, "command received",
		"author_id", msg.AuthorID,
		"channel_id", msg.ChannelID)

	err := handler(ctx, msg)
	if err == nil {
		slog.InfoContext(ctx, "command completed")
		return
	}

	if reply, ok := errs.UserFacing(err); ok {
		if _, replyErr := r.messenger.ReplyToMessage(ctx, msg.ChannelID, msg.ID, reply); replyErr != nil {
			slog.ErrorContext(ctx, "failed to deliver refusal reply", "error", replyErr)
		}
		return
	}

	slog.ErrorContext(ctx, "command failed",
		"error", err,
		log.PriorityCritical())
}

// botUserID returns the session's own user ID, empty before Ready.
func (r *Router) botUserID() string {
	if r.session.State != nil && r.session.State.User != nil {
		return r.session.State.User.ID
	}
	return ""
}

// parseCommand splits a raw chat message into a command word and its
// arguments. A message is a command when it starts with the command prefix
// or with a mention of the bot. The command word is lowercased; argument
// text is preserved as written.
func parseCommand(content, botID string) (command, args string, ok bool) {
	content = strings.TrimSpace(content)

	switch {
	case strings.HasPrefix(content, constants.CommandPrefix):
		content = content[len(constants.CommandPrefix):]
	case botID != "" && strings.HasPrefix(content, "<@"+botID+">"):
		content = content[len("<@"+botID+">"):]
	case botID != "" && strings.HasPrefix(content, "<@!"+botID+">"):
		content = content[len("<@!"+botID+">"):]
	default:
		return "", "", false
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return "", "", false
	}

	command, args, _ = strings.Cut(content, " ")
	return strings.ToLower(command), strings.TrimSpace(args), true
}
