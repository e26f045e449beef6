package region

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cachekit/treekey/cmd/fqnctl/commons"
	"github.com/cachekit/treekey/pkg/fqn"
	"github.com/cachekit/treekey/pkg/logging"
	"github.com/cachekit/treekey/pkg/metrics"
	"github.com/cachekit/treekey/pkg/region"
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var Cmd = &cobra.Command{
	Use:   "region",
	Short: "work with region configs",
}

var lookupCmd = &cobra.Command{
	Use:   "lookup PATH...",
	Short: "print the region owning each path and its eviction settings",
	Example: `  # find the regions of two paths
  fqnctl region lookup --config=regions.yaml /app/users/42 /tmp/x`,
	Run:  runLookup,
	Args: cobra.MinimumNArgs(1),
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "print how the regions of a config nest",
	Example: `  # show the region tree
  fqnctl region tree --config=regions.yaml`,
	Run:  runTree,
	Args: cobra.ExactArgs(0),
}

var (
	flagConfig         string
	flagConcurrency    int
	flagMetricsBackend string
	flagOTLPEndpoint   string
)

const (
	flagNameConfig         = "config"
	flagNameConcurrency    = "concurrency"
	flagNameMetricsBackend = "metrics-backend"
	flagNameOTLPEndpoint   = "otlp-endpoint"

	// NoRegion is printed for paths outside every region.
	NoRegion = "<none>"
)

func init() {
	lookupCmd.Flags().StringVarP(&flagConfig, flagNameConfig, "c", "", "a YAML or JSON region config.")
	lookupCmd.Flags().IntVar(&flagConcurrency, flagNameConcurrency, 4, "number of concurrent lookups.")
	lookupCmd.Flags().StringVar(&flagMetricsBackend, flagNameMetricsBackend, metrics.NoneBackend,
		fmt.Sprintf("Backend for lookup metrics. One of: %s|%s|%s|%s. Prometheus metrics are written to stderr on exit.", metrics.NoneBackend, metrics.PrometheusBackend, metrics.OTLPBackend, metrics.StackdriverBackend))
	lookupCmd.Flags().StringVar(&flagOTLPEndpoint, flagNameOTLPEndpoint, "", "OTLP/HTTP collector endpoint for the opentelemetry metrics backend.")
	_ = lookupCmd.MarkFlagRequired(flagNameConfig)

	treeCmd.Flags().StringVarP(&flagConfig, flagNameConfig, "c", "", "a YAML or JSON region config.")
	_ = treeCmd.MarkFlagRequired(flagNameConfig)

	Cmd.AddCommand(lookupCmd, treeCmd)
}

func runLookup(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log := commons.Logger()

	mp, err := metrics.NewProvider(ctx, metrics.Options{
		Backend:      flagMetricsBackend,
		ServiceName:  "fqnctl",
		OTLPEndpoint: flagOTLPEndpoint,
	})
	if err != nil {
		commons.ErrFatalf("%v", err)
	}

	reg, err := load(flagConfig, log, region.WithMeterProvider(mp))
	if err != nil {
		commons.ErrFatalf("%v", err)
	}

	lines, err := Lookup(ctx, reg, args, flagConcurrency)
	if err != nil {
		commons.ErrFatalf("%v", err)
	}
	for _, line := range lines {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}

	if err := mp.WriteText(cmd.ErrOrStderr()); err != nil {
		log.Error(err, "writing metrics")
	}
	if err := mp.Shutdown(ctx); err != nil {
		log.Error(err, "shutting down metrics")
	}
}

func runTree(cmd *cobra.Command, _ []string) {
	reg, err := load(flagConfig, commons.Logger())
	if err != nil {
		commons.ErrFatalf("%v", err)
	}
	out, err := Tree(reg)
	if err != nil {
		commons.ErrFatalf("%v", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
}

// Tree renders the region hierarchy of reg, one region per line indented
// below the region it is nested in. Siblings are ordered by root.
func Tree(reg *region.Registry) (string, error) {
	g, err := reg.Hierarchy()
	if err != nil {
		return "", err
	}
	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return "", errors.Wrap(err, "reading region hierarchy")
	}
	predecessors, err := g.PredecessorMap()
	if err != nil {
		return "", errors.Wrap(err, "reading region hierarchy")
	}

	var b strings.Builder
	var walk func(r *region.Region, depth int)
	walk = func(r *region.Region, depth int) {
		fmt.Fprintf(&b, "%s%s\t%s", strings.Repeat("  ", depth), r.Name, r.Root)
		if r.Inactive {
			b.WriteString("\tinactive")
		}
		b.WriteString("\n")
		// Regions is in root order, so children come out in root order too.
		for _, child := range reg.Regions() {
			if _, ok := adjacency[r.Name][child.Name]; ok {
				walk(child, depth+1)
			}
		}
	}
	for _, r := range reg.Regions() {
		if len(predecessors[r.Name]) == 0 {
			walk(r, 0)
		}
	}
	return b.String(), nil
}

func load(path string, log logr.Logger, opts ...region.Option) (*region.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %q", path)
	}
	cfg, err := region.LoadConfig(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config %q", path)
	}
	reg, err := region.FromConfig(cfg, append(opts, region.WithLogger(log))...)
	if err != nil {
		return nil, errors.Wrapf(err, "config %q", path)
	}
	log.V(1).Info("loaded region config", logging.ConfigFile, path, logging.RegionCount, len(cfg.Regions))
	return reg, nil
}

// Lookup finds the region of every path, running at most concurrency lookups
// at once. Each line holds the path, the region name and its eviction
// settings. The returned lines follow the order of paths.
func Lookup(ctx context.Context, reg *region.Registry, paths []string, concurrency int) ([]string, error) {
	lines := make([]string, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lines[i] = p + "\t" + NoRegion
			if r, ok := reg.Find(ctx, fqn.FromString(p)); ok {
				lines[i] = fmt.Sprintf("%s\t%s\tmaxNodes=%d\tttl=%s", p, r.Name, r.MaxNodes, r.TTL)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lines, nil
}
