// Package main provides the CLI entry point for wishsheet.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/ukaji3/wishsheet-go/internal/config"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/assets"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/frame"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/models"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/output"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/parser"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/source"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/wish"
)

var (
	configPath  string
	outputPath  string
	pretty      bool
	workbook    string
	logLevel    string
	showMetrics bool

	cfg      *config.Config
	registry = prometheus.NewRegistry()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wishsheet",
		Short: "Load wishes from a public spreadsheet",
		Long: `wishsheet fetches the wish generator's sheets (UI copy, Oracle wishes,
Max Frei quotes), decodes them into normalized JSON, draws wishes, and
prepares the image manifests and blur-hash placeholders the widget uses.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if showMetrics {
				dumpMetrics(os.Stderr)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "wishsheet.yaml", "Config file path")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().StringVar(&workbook, "workbook", "", "Read sheets from an exported .xlsx instead of the query endpoint")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "Print load metrics to stderr")

	rootCmd.AddCommand(
		newLoadCmd(),
		newFlatCmd(),
		newDrawCmd(),
		newFrameCmd(),
		newImagesCmd(),
		newBlurhashCmd(),
		newPlaceholderCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if workbook != "" {
		cfg.Workbook = workbook
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	return nil
}

func newSource() source.Source {
	if cfg.Workbook != "" {
		return source.NewWorkbook(cfg.Workbook)
	}
	return source.NewGViz(cfg.SheetID,
		source.WithBaseURL(cfg.BaseURL),
		source.WithTimeout(cfg.Timeout),
	)
}

func loadOptions() wishsheet.Options {
	opts := wishsheet.DefaultOptions()
	opts.SheetID = cfg.SheetID
	opts.Timeout = cfg.Timeout
	opts.Concurrency = cfg.Concurrency
	opts.Registerer = registry
	opts.Modes = make(map[string]wishsheet.Mode)
	for name, mode := range cfg.SheetModes() {
		opts.Modes[name] = wishsheet.Mode(mode)
	}
	return opts
}

func newLoader() wishsheet.Loader {
	return wishsheet.Loader{Source: newSource(), Options: loadOptions()}
}

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load [sheet...]",
		Short: "Load and normalize sheets",
		Long: `Load every named sheet (default: the configured sheets) concurrently and print
the normalized mapping of each. A sheet that fails to load is reported as empty.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets := args
			if len(sheets) == 0 {
				sheets = cfg.SheetNames()
			}
			book := newLoader().Load(cmd.Context(), sheets)
			return writeOutput(cmd.OutOrStdout(), book)
		},
	}
}

func newFlatCmd() *cobra.Command {
	var minLength int

	cmd := &cobra.Command{
		Use:   "flat [sheet]",
		Short: "List the texts of a sheet whose content lives in column labels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := loadOptions()
			opts.Modes[args[0]] = wishsheet.ModeFlat
			opts.IsContentLabel = parser.MinLength(minLength)

			m, err := wishsheet.LoadSheet(cmd.Context(), newSource(), args[0], opts)
			if err != nil {
				log.Warn().Err(err).Str("sheet", args[0]).Msg("sheet yielded no texts")
			}
			return writeOutput(cmd.OutOrStdout(), wish.NormalizeWishes(m))
		},
	}

	cmd.Flags().IntVar(&minLength, "min-label-length", parser.DefaultMinLabelLength, "Shortest column label treated as content")
	return cmd
}

func newDrawCmd() *cobra.Command {
	var (
		mode    string
		wishIdx int
		imgIdx  int
		link    string
		message string
	)

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Draw a wish",
		Long: `Draw a random wish for a mode, or a specific one by 1-based index.

A specific wish can also be requested with a deep-link query (--link "wish=3&img=5")
or an inbound frame message (--message '{"type":"setWish","wish":3}').`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := models.Mode(mode)
			if !m.Valid() {
				return fmt.Errorf("invalid mode: %s (must be %s or %s)", mode, models.ModeOracle, models.ModeMaxFrei)
			}

			target, specific, err := drawTarget(cmd, wishIdx, imgIdx, link, message)
			if err != nil {
				return err
			}

			manifest, err := assets.LoadManifest(optionalFile(cfg.Assets.ImageList), optionalFile(cfg.Assets.Placeholders))
			if err != nil {
				return err
			}

			gen := wish.NewGenerator(newLoader(), manifest, wish.NewCryptoPicker()).WithUIAliases(cfg.UIAliases)
			ctx := cmd.Context()
			ui, _ := gen.LoadUI(ctx)

			var w models.Wish
			if specific {
				w, err = gen.GenerateSpecific(ctx, m, target.Wish, target.Img)
			} else {
				w, err = gen.Generate(ctx, m)
			}
			if err != nil {
				if ui.DataLoadingIssue != "" {
					return fmt.Errorf("%s: %w", ui.DataLoadingIssue, err)
				}
				return err
			}

			placeholder, _ := gen.Placeholder(w)
			result := drawResult{
				Wish:        w,
				ImagePath:   assets.ImagePath(cfg.Assets.BasePath, w.Folder, w.Image),
				Placeholder: placeholder,
			}
			if specific && message != "" {
				if result.Reply, err = frame.ScrollToTopMessage(); err != nil {
					return err
				}
			}
			if specific && link != "" {
				q, _ := url.ParseQuery(strings.TrimPrefix(link, "?"))
				result.Link = frame.ClearDeepLink(q).Encode()
			}
			return writeOutput(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(models.ModeOracle), "Wish mode: Oracle or MaxFrei")
	cmd.Flags().IntVar(&wishIdx, "wish", 0, "1-based wish index (0: random)")
	cmd.Flags().IntVar(&imgIdx, "img", 0, "Image index for --wish (default: same as the wish)")
	cmd.Flags().StringVar(&link, "link", "", "Deep-link query string")
	cmd.Flags().StringVar(&message, "message", "", "Inbound frame message (JSON)")
	return cmd
}

type drawResult struct {
	models.Wish
	ImagePath   string             `json:"imagePath"`
	Placeholder models.Placeholder `json:"placeholder"`
	// Reply is the message posted back after an inbound setWish.
	Reply json.RawMessage `json:"reply,omitempty"`
	// Link is the deep-link query with the wish parameters removed.
	Link string `json:"link,omitempty"`
}

// drawTarget resolves which specific wish was requested, if any.
func drawTarget(cmd *cobra.Command, wishIdx, imgIdx int, link, message string) (frame.Command, bool, error) {
	switch {
	case message != "":
		c, err := frame.ParseInbound([]byte(message))
		if err != nil {
			return frame.Command{}, false, err
		}
		return c, true, nil
	case link != "":
		q, err := url.ParseQuery(strings.TrimPrefix(link, "?"))
		if err != nil {
			return frame.Command{}, false, fmt.Errorf("invalid link: %w", err)
		}
		c, ok := frame.ParseDeepLink(q)
		return c, ok, nil
	case wishIdx > 0:
		c := frame.Command{Wish: wishIdx}
		if cmd.Flags().Changed("img") {
			c.Img = &imgIdx
		}
		return c, true, nil
	}
	return frame.Command{}, false, nil
}

func newFrameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frame",
		Short: "Encode and decode cross-frame messages",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "height [pixels]",
		Short: "Print the height update message for the embedding page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var h int
			if _, err := fmt.Sscanf(args[0], "%d", &h); err != nil {
				return fmt.Errorf("invalid height: %s", args[0])
			}
			data, err := frame.HeightMessage(h)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}, &cobra.Command{
		Use:   "parse [message]",
		Short: "Decode an inbound message from the embedding page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := frame.ParseInbound([]byte(args[0]))
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), c)
		},
	})
	return cmd
}

func writeOutput(stdout io.Writer, v interface{}) error {
	if outputPath == "" {
		return output.Write(stdout, v, pretty)
	}
	jsonData, err := output.ToJSON(v, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// optionalFile returns path if the file exists, "" otherwise.
func optionalFile(path string) string {
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		log.Debug().Str("path", path).Msg("asset manifest not found, skipping")
		return ""
	}
	return path
}

func dumpMetrics(w io.Writer) {
	families, err := registry.Gather()
	if err != nil {
		log.Error().Err(err).Msg("could not gather metrics")
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			value := m.GetCounter().GetValue()
			if h := m.GetHistogram(); h != nil {
				value = h.GetSampleSum()
			}
			fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), value)
		}
	}
}
