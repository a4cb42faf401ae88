// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package config loads and validates the bot's guild configuration file.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/domain/model"
	errs "github.com/linuxfoundation/lfx-v2-committee-relay-bot/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/pkg/utils"
)

// committeeYAML is the file representation of a committee. IDs travel as
// decimal strings and are parsed to integers at load time.
type committeeYAML struct {
	Name      string `yaml:"name"`
	RoleID    string `yaml:"role_id"`
	ChannelID string `yaml:"channel_id"`
}

// configYAML is the file representation of the guild configuration.
type configYAML struct {
	Token          string          `yaml:"token"`
	GuildID        string          `yaml:"guild_id"`
	DelegateRoleID string          `yaml:"delegate_role_id"`
	StaffRoleID    string          `yaml:"staff_role_id"`
	ChairRoleID    string          `yaml:"chair_role_id"`
	Committees     []committeeYAML `yaml:"committees"`
}

// Load reads, parses, and validates the configuration file at path. Any
// failure is fatal at startup: the bot serves no commands without a valid
// configuration.
func Load(path string) (*model.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.NewValidation(fmt.Sprintf("missing config file %s", path), err)
	}

	var raw configYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errs.NewValidation(fmt.Sprintf("invalid config file %s", path), err)
	}

	return build(&raw)
}

// build converts the wire form into the immutable runtime configuration.
func build(raw *configYAML) (*model.Config, error) {
	if raw.Token == "" {
		return nil, errs.NewValidation("config: token is required")
	}

	config := &model.Config{Token: raw.Token}

	var err error
	if config.GuildID, err = requireID("guild_id", raw.GuildID); err != nil {
		return nil, err
	}
	if config.DelegateRoleID, err = requireID("delegate_role_id", raw.DelegateRoleID); err != nil {
		return nil, err
	}
	if config.StaffRoleID, err = optionalID("staff_role_id", raw.StaffRoleID); err != nil {
		return nil, err
	}
	if config.ChairRoleID, err = optionalID("chair_role_id", raw.ChairRoleID); err != nil {
		return nil, err
	}

	if len(raw.Committees) == 0 {
		return nil, errs.NewValidation("config: at least one committee is required")
	}

	seen := make(map[string]bool, len(raw.Committees))
	for _, c := range raw.Committees {
		if c.Name == "" {
			return nil, errs.NewValidation("config: committee name is required")
		}
		key := strings.ToLower(c.Name)
		if seen[key] {
			return nil, errs.NewValidation(fmt.Sprintf("config: duplicate committee name %q", c.Name))
		}
		seen[key] = true

		committee := model.Committee{Name: c.Name}
		if committee.RoleID, err = requireID(fmt.Sprintf("committee %q role_id", c.Name), c.RoleID); err != nil {
			return nil, err
		}
		if committee.ChannelID, err = requireID(fmt.Sprintf("committee %q channel_id", c.Name), c.ChannelID); err != nil {
			return nil, err
		}
		config.Committees = append(config.Committees, committee)
	}

	return config, nil
}

func requireID(field, value string) (uint64, error) {
	if value == "" {
		return 0, errs.NewValidation(fmt.Sprintf("config: %s is required", field))
	}
	id, err := utils.ParseSnowflake(value)
	if err != nil {
		return 0, errs.NewValidation(fmt.Sprintf("config: %s is not a valid ID", field), err)
	}
	return id, nil
}

func optionalID(field, value string) (uint64, error) {
	if value == "" {
		return 0, nil
	}
	id, err := utils.ParseSnowflake(value)
	if err != nil {
		return 0, errs.NewValidation(fmt.Sprintf("config: %s is not a valid ID", field), err)
	}
	return id, nil
}
