package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sifan077/GifBoard/internal/client"
	"github.com/sifan077/GifBoard/internal/infra/logger"
	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:8080"

type options struct {
	server  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "gifctl",
		Short:         "Browse and add gifs on a GifBoard server.",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "error"
			if opts.verbose {
				level = "debug"
			}
			_, err := logger.Init(logger.Config{Development: true, Level: level, Encoding: "console"})
			return err
		},
	}

	server := os.Getenv("GIFBOARD_SERVER")
	if server == "" {
		server = defaultServer
	}
	root.PersistentFlags().StringVarP(&opts.server, "server", "s", server, "GifBoard base URL (env GIFBOARD_SERVER)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log requests")

	root.AddCommand(newListCmd(opts), newAddCmd(opts), newShowCmd(opts))
	return root
}

// failureCounter reports through the log and remembers that something failed
// so the command can exit non-zero.
type failureCounter struct {
	next   client.ErrorReporter
	failed int
}

func (f *failureCounter) Report(err error) {
	f.failed++
	f.next.Report(err)
}

func (f *failureCounter) err() error {
	if f.failed == 0 {
		return nil
	}
	return fmt.Errorf("%d request(s) failed", f.failed)
}

func newIndex(opts *options) (*client.Index, *failureCounter) {
	reporter := &failureCounter{next: client.NewLogReporter(logger.L())}
	return client.NewIndex(client.NewAPI(opts.server), reporter), reporter
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List gifs, most liked first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, failures := newIndex(opts)
			idx.Mount(cmd.Context())
			if err := failures.err(); err != nil {
				return err
			}
			return client.RenderText(cmd.OutOrStdout(), idx.Gifs())
		},
	}
}

func newAddCmd(opts *options) *cobra.Command {
	form := &client.Form{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a gif.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, failures := newIndex(opts)
			form.Submit(cmd.Context(), idx)
			if err := failures.err(); err != nil {
				return err
			}
			return client.RenderText(cmd.OutOrStdout(), idx.Gifs())
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "gif name (required, unique)")
	cmd.Flags().StringVar(&form.URL, "url", "", "gif URL (required)")
	cmd.Flags().StringVar(&form.Likes, "likes", "", "initial likes (server default when omitted)")
	return cmd
}

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one gif.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			gif, err := client.NewAPI(opts.server).GetGif(cmd.Context(), uint(id))
			if err != nil {
				return err
			}
			return client.RenderText(cmd.OutOrStdout(), []client.Gif{*gif})
		},
	}
}
