// ABOUTME: Dimension command for the sdcch-dim CLI
// ABOUTME: Runs the dimensioning pipeline on exports and writes the conversion report

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ubaidashraf22/RF/backend/models"
	"github.com/ubaidashraf22/RF/backend/report"
	"github.com/ubaidashraf22/RF/cli/internal/client"
	"github.com/ubaidashraf22/RF/cli/internal/plan"
)

// Exit codes shared by all commands.
const (
	exitOK         = 0
	exitCellErrors = 1
	exitError      = 2
)

type dimensionOptions struct {
	trafficPath  string
	channelsPath string
	output       string
	excluded     []string
	packetData   []string
	remote       bool
	params       plan.Params
}

var dimFlags = dimensionOptions{params: plan.DefaultParams()}

var dimensionCmd = &cobra.Command{
	Use:   "dimension",
	Short: "Dimension SDCCH capacity and plan channel conversions",
	Long: `Read a traffic CSV export and a TRXCHAN export, compute the required SDCCH8
groups per cell, and plan the channel retyping that realizes them.

Exit codes:
  0 - Plan produced for every cell
  1 - One or more cells could not be dimensioned
  2 - Error (bad input, unreadable files, backend unreachable)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runDimension(ctx, dimFlags, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(dimensionCmd)
	f := dimensionCmd.Flags()
	f.StringVar(&dimFlags.trafficPath, "traffic", "", "Traffic CSV export (required)")
	f.StringVar(&dimFlags.channelsPath, "trxchan", "", "TRXCHAN channel export (required)")
	f.StringVarP(&dimFlags.output, "output", "o", report.DefaultFileName, "Report path (.xlsx or .csv); empty to skip")
	f.IntVar(&dimFlags.params.TopNDays, "top-days", dimFlags.params.TopNDays, "Busiest days averaged per cell")
	f.Float64Var(&dimFlags.params.Blocking, "blocking", dimFlags.params.Blocking, "Target blocking probability")
	f.IntVar(&dimFlags.params.MaxChannels, "max-channels", dimFlags.params.MaxChannels, "Erlang-B search bound")
	f.IntVar(&dimFlags.params.Workers, "workers", dimFlags.params.Workers, "Cells planned in parallel")
	f.StringArrayVar(&dimFlags.excluded, "exclude-date", nil, "Date to leave out of aggregation (YYYY-MM-DD, repeatable)")
	f.StringArrayVar(&dimFlags.packetData, "packet-data", nil, "Packet-data instruction CELL=COUNT (repeatable)")
	f.BoolVar(&dimFlags.params.FailFast, "fail-fast", false, "Abort on the first cell that cannot be dimensioned")
	f.BoolVar(&dimFlags.remote, "remote", false, "Run on the backend instead of locally")
	_ = dimensionCmd.MarkFlagRequired("traffic")
	_ = dimensionCmd.MarkFlagRequired("trxchan")
}

// runDimension executes one dimensioning run and returns the exit code
func runDimension(ctx context.Context, opts dimensionOptions, w io.Writer) int {
	params := opts.params
	var err error
	if params.ExcludedDates, err = plan.ParseDates(opts.excluded); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}
	for _, raw := range opts.packetData {
		instr, err := plan.ParsePacketData(raw)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
		params.PacketData = append(params.PacketData, instr)
	}

	in, err := plan.Load(opts.trafficPath, opts.channelsPath)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	var resp *models.PlanResponse
	if opts.remote {
		resp, err = plan.RunRemote(ctx, client.New(GetAPIURL()), in, params)
	} else {
		resp, err = plan.RunLocal(ctx, in, params)
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		if plan.IsCellError(err) {
			return exitCellErrors
		}
		return exitError
	}

	if opts.output != "" {
		if err := plan.WriteReport(opts.output, resp); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprint(w, formatDimensionHuman(resp, in.Warnings(), opts.output))
	}

	if len(resp.Errors) > 0 {
		return exitCellErrors
	}
	return exitOK
}

// formatDimensionHuman renders the per-cell results and the run summary
func formatDimensionHuman(resp *models.PlanResponse, warnings []string, output string) string {
	var sb strings.Builder

	for _, msg := range warnings {
		fmt.Fprintf(&sb, "! %s\n", msg)
	}
	if len(warnings) > 0 {
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "%-12s %9s %8s %8s %8s %6s  %s\n", "CELL", "LOAD_ERL", "CHANNELS", "REQ_GRP", "CUR_GRP", "DELTA", "ACTION")
	packet := resp.PacketDataCells()
	for _, r := range resp.Results {
		action := r.Action
		if packet[r.CellID] {
			action = models.ActionAddPacketData
		}
		fmt.Fprintf(&sb, "%-12s %9.3f %8d %8d %8d %+6d  %s\n",
			r.CellID, r.OfferedErlangs, r.RequiredChannels,
			r.RequiredSignallingGroups, r.CurrentSignallingGroups, r.Delta, action)
	}

	for _, e := range resp.Errors {
		fmt.Fprintf(&sb, "✗ cell %s (%s): %s\n", e.CellID, e.Stage, e.Error)
	}

	s := plan.Summarize(resp)
	fmt.Fprintf(&sb, "\n%d cell(s): %d add signalling, %d convert to traffic, %d packet data, %d unchanged; %d channel conversion(s)\n",
		s.Cells, s.Add, s.Convert, s.PacketData, s.None, s.Conversions)
	if s.CellErrors > 0 {
		fmt.Fprintf(&sb, "FAILED: %d cell(s) could not be dimensioned\n", s.CellErrors)
	}
	if output != "" {
		fmt.Fprintf(&sb, "Report: %s\n", output)
	}
	return sb.String()
}
