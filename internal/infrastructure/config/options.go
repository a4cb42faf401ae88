// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Options are the process-level settings read from the environment. The
// guild description itself lives in the YAML file Path points at.
type Options struct {
	// Path is the location of the YAML guild configuration.
	Path string `env:"BOT_CONFIG_PATH" envDefault:"config.yaml"`

	// VoteTimeout bounds the committee voting window for external requests.
	VoteTimeout time.Duration `env:"BOT_VOTE_TIMEOUT" envDefault:"10m"`

	// ReplyWindow bounds how long committee replies keep being relayed.
	ReplyWindow time.Duration `env:"BOT_REPLY_WINDOW" envDefault:"10m"`
}

// ParseOptions reads the process options from the environment.
func ParseOptions() (Options, error) {
	var opts Options
	if err := env.Parse(&opts); err != nil {
		return Options{}, fmt.Errorf("failed to parse environment options: %w", err)
	}
	return opts, nil
}
