// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// The committee-relay-bot command runs the Discord gateway process: it loads
// the guild configuration, wires the relay and role-assignment services to a
// discordgo session, and serves commands until interrupted.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/infrastructure/config"
	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/infrastructure/discord"
	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/service"
	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/pkg/log"
)

func main() {
	// A local .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	log.InitStructureLogConfig()

	opts, err := config.ParseOptions()
	if err != nil {
		slog.Error("invalid environment options", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load(opts.Path)
	if err != nil {
		slog.Error("failed to load guild configuration", "error", err, "path", opts.Path)
		os.Exit(1)
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		slog.Error("failed to create gateway session", "error", err)
		os.Exit(1)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentMessageContent

	gateway := discord.NewGateway(session)
	authorizer := service.NewAuthorizer(cfg, gateway)
	relay := service.NewRelayService(cfg, gateway, gateway, gateway, authorizer, opts.VoteTimeout, opts.ReplyWindow)
	roles := service.NewRoleService(cfg, gateway, gateway, gateway)

	router := discord.NewRouter(session, gateway, map[string]discord.CommandHandler{
		constants.CommandForward: relay.Forward,
		constants.CommandJoin:    roles.Join,
	})

	if err := session.Open(); err != nil {
		slog.Error("failed to open gateway connection", "error", err)
		os.Exit(1)
	}

	slog.Info("gateway connection open",
		"service", constants.ServiceName,
		"guild_id", cfg.GuildID,
		"committees", len(cfg.Committees))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	slog.Info("shutting down, waiting for in-flight commands")
	router.Wait()

	if err := session.Close(); err != nil {
		slog.Error("failed to close gateway connection", "error", err)
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}
