// ABOUTME: Erlang command for the sdcch-dim CLI
// ABOUTME: Answers required-channel and blocking questions for a single load

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ubaidashraf22/RF/backend/models"
	"github.com/ubaidashraf22/RF/backend/services"
	"github.com/ubaidashraf22/RF/cli/internal/client"
)

type erlangOptions struct {
	load        float64
	blocking    float64
	channels    int
	maxChannels int
	remote      bool
}

var erlFlags = erlangOptions{
	blocking:    services.DefaultBlockingProbability,
	channels:    -1,
	maxChannels: services.DefaultMaxChannels,
}

var erlangCmd = &cobra.Command{
	Use:   "erlang",
	Short: "Erlang-B channel and blocking calculator",
	Long: `Without --channels, print the fewest channels that carry --load Erlangs at or
below the --blocking target. With --channels, print the blocking that many
channels give at --load.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runErlang(ctx, erlFlags, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(erlangCmd)
	f := erlangCmd.Flags()
	f.Float64Var(&erlFlags.load, "load", 0, "Offered load in Erlangs (required)")
	f.Float64Var(&erlFlags.blocking, "blocking", erlFlags.blocking, "Target blocking probability")
	f.IntVar(&erlFlags.channels, "channels", -1, "Channel count to evaluate instead of searching")
	f.IntVar(&erlFlags.maxChannels, "max-channels", erlFlags.maxChannels, "Erlang-B search bound")
	f.BoolVar(&erlFlags.remote, "remote", false, "Ask the backend instead of computing locally")
	erlangCmd.MarkFlagsMutuallyExclusive("blocking", "channels")
	_ = erlangCmd.MarkFlagRequired("load")
}

// runErlang answers one query and returns the exit code
func runErlang(ctx context.Context, opts erlangOptions, w io.Writer) int {
	if opts.load < 0 {
		fmt.Fprintln(w, "Error: --load must be non-negative")
		return exitError
	}

	var out any
	if opts.channels >= 0 {
		resp, err := erlangBlocking(ctx, opts)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
		out = resp
		if !IsJSONOutput() {
			fmt.Fprintf(w, "%g Erl on %d channel(s): blocking %.6f\n", resp.OfferedErlangs, resp.Channels, resp.Blocking)
			return exitOK
		}
	} else {
		resp, err := erlangChannels(ctx, opts)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
		out = resp
		if !IsJSONOutput() {
			fmt.Fprintf(w, "%g Erl at %g target: %d channel(s), %d SDCCH8 group(s), achieved blocking %.6f\n",
				resp.OfferedErlangs, resp.TargetBlocking, resp.RequiredChannels, resp.RequiredGroups, resp.AchievedBlocking)
			return exitOK
		}
	}

	data, _ := json.MarshalIndent(out, "", "  ")
	fmt.Fprintln(w, string(data))
	return exitOK
}

func erlangChannels(ctx context.Context, opts erlangOptions) (*models.RequiredChannelsResponse, error) {
	if opts.remote {
		return client.New(GetAPIURL()).RequiredChannels(ctx, opts.load, opts.blocking)
	}
	calc := services.NewCapacityCalculator(opts.maxChannels)
	n, err := calc.RequiredChannels(opts.load, opts.blocking)
	if errors.Is(err, models.ErrCapacityOverflow) {
		return nil, fmt.Errorf("%w (raise --max-channels above %d)", err, calc.MaxChannels())
	}
	if err != nil {
		return nil, err
	}
	return &models.RequiredChannelsResponse{
		OfferedErlangs:   opts.load,
		TargetBlocking:   opts.blocking,
		RequiredChannels: n,
		RequiredGroups:   models.GroupsFor(n),
		AchievedBlocking: calc.Blocking(opts.load, n),
	}, nil
}

func erlangBlocking(ctx context.Context, opts erlangOptions) (*models.BlockingResponse, error) {
	if opts.remote {
		return client.New(GetAPIURL()).Blocking(ctx, opts.load, opts.channels)
	}
	return &models.BlockingResponse{
		OfferedErlangs: opts.load,
		Channels:       opts.channels,
		Blocking:       services.ErlangB(opts.load, opts.channels),
	}, nil
}
