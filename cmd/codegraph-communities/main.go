package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dd0wney/cluso-codegraph/pkg/codegraph"
	"github.com/dd0wney/cluso-codegraph/pkg/community"
	"github.com/dd0wney/cluso-codegraph/pkg/config"
	"github.com/dd0wney/cluso-codegraph/pkg/graphql"
	"github.com/dd0wney/cluso-codegraph/pkg/logging"
	"github.com/dd0wney/cluso-codegraph/pkg/metrics"
	"github.com/dd0wney/cluso-codegraph/pkg/report"
	"github.com/dd0wney/cluso-codegraph/pkg/server"
)

type options struct {
	graphPath     string
	configPath    string
	algorithm     string
	resolution    float64
	k             int
	maxIterations int
	compare       bool
	algorithms    string
	describe      bool
	minSize       int
	snapshotPath  string
	metricsPath   string
	serveAddr     string
	set           map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("codegraph-communities", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.StringVar(&o.graphPath, "graph", "", "Graph document (JSON); - reads stdin")
	fs.StringVar(&o.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&o.algorithm, "algorithm", "", "Algorithm: leiden, louvain, girvan_newman, label_propagation, identity")
	fs.Float64Var(&o.resolution, "resolution", 0, "Resolution for leiden and louvain")
	fs.IntVar(&o.k, "k", 0, "Target community count for girvan_newman")
	fs.IntVar(&o.maxIterations, "max-iterations", 0, "Label propagation round limit")
	fs.BoolVar(&o.compare, "compare", false, "Compare algorithms instead of running one")
	fs.StringVar(&o.algorithms, "algorithms", "", "Comma-separated algorithms to compare (default: all but identity)")
	fs.BoolVar(&o.describe, "describe", false, "Include community digests for description generators")
	fs.IntVar(&o.minSize, "min-size", 0, "Smallest community included in digests")
	fs.StringVar(&o.snapshotPath, "snapshot", "", "Write a compressed report snapshot to this file")
	fs.StringVar(&o.metricsPath, "metrics", "", "Write Prometheus metrics in text format to this file")
	fs.StringVar(&o.serveAddr, "serve", "", "Serve the GraphQL API on this address instead of printing a report")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if o.graphPath == "" {
		return nil, errors.New("-graph is required")
	}

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

// loadConfig reads the configuration and applies flag overrides
func loadConfig(o *options) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg.ApplyEnv()
	}

	if o.set["algorithm"] {
		cfg.Detection.Algorithm = o.algorithm
	}
	if o.set["resolution"] {
		cfg.Detection.Resolution = o.resolution
	}
	if o.set["k"] {
		cfg.Detection.K = o.k
	}
	if o.set["max-iterations"] {
		cfg.Detection.MaxIterations = o.maxIterations
	}
	if o.set["min-size"] {
		cfg.Report.MinDescriptionSize = o.minSize
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadGraph(path string, stdin io.Reader) (*codegraph.Graph, error) {
	if path == "-" {
		return codegraph.Decode(stdin)
	}
	return codegraph.LoadFile(path)
}

type detectOutput struct {
	*report.Report
	Descriptions []report.Digest `json:"descriptions,omitempty"`
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	started := time.Now()

	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	logger := logging.NewJSONLogger(stderr, cfg.Level())
	registry := metrics.NewRegistry()

	g, err := loadGraph(o.graphPath, stdin)
	if err != nil {
		return err
	}
	registry.SetGraphSize(g.NodeCount(), g.EdgeCount(), g.LinkCount())
	logger.Info("graph loaded", logging.Path(o.graphPath), logging.Nodes(g.NodeCount()), logging.Edges(g.EdgeCount()))

	if o.serveAddr != "" {
		return serve(o, cfg, g, logger, registry)
	}
	engine := newEngine(cfg, logger, registry)

	var snapshot any
	if o.compare {
		names := splitList(o.algorithms)
		algs, err := community.ParseAlgorithms(names)
		if err != nil {
			return err
		}
		cmp, err := engine.Compare(g, algs, cfg.Parameters())
		if err != nil {
			return err
		}
		out := report.BuildComparison(g, cmp, cfg.Advisor())
		logger.Debug("comparison report built", logging.RunID(out.RunID))
		snapshot = out
		if err := report.WriteJSON(stdout, out); err != nil {
			return err
		}
	} else {
		result, err := engine.Detect(g, cfg.Algorithm(), cfg.Parameters())
		if err != nil {
			return err
		}
		out := detectOutput{Report: report.Build(g, result, cfg.Advisor())}
		logger.Debug("detection report built", logging.RunID(out.RunID))
		if o.describe {
			out.Descriptions = report.Describe(g, result, cfg.Report.MinDescriptionSize)
		}
		snapshot = out.Report
		if err := report.WriteJSON(stdout, out); err != nil {
			return err
		}
	}

	if o.snapshotPath != "" {
		if err := writeFile(o.snapshotPath, func(w io.Writer) error { return report.WriteSnapshot(w, snapshot) }); err != nil {
			return err
		}
	}
	if o.metricsPath != "" {
		registry.UpdateSystemMetrics(started)
		if err := writeFile(o.metricsPath, registry.WriteText); err != nil {
			return err
		}
	}
	return nil
}

func newEngine(cfg *config.Config, logger logging.Logger, registry *metrics.Registry) *community.Engine {
	opts := append(cfg.EngineOptions(), community.WithLogger(logger), community.WithRecorder(registry))
	return community.NewEngine(opts...)
}

// serve exposes the graph over GraphQL. SIGHUP re-reads the configuration
// file and rebuilds the engine.
func serve(o *options, cfg *config.Config, g *codegraph.Graph, logger logging.Logger, registry *metrics.Registry) error {
	build := func(cfg *config.Config) (*graphql.GraphQLHandler, error) {
		schema, err := graphql.GenerateSchema(&graphql.Resolver{
			Graph:   g,
			Engine:  newEngine(cfg, logger, registry),
			Advisor: cfg.Advisor(),
		})
		if err != nil {
			return nil, err
		}
		return graphql.NewGraphQLHandler(schema, graphql.DefaultMaxDepth, logger), nil
	}

	handler, err := build(cfg)
	if err != nil {
		return err
	}
	query := server.NewSwappableHandler(handler)

	gs := server.NewGracefulServer(o.serveAddr, server.NewMux(query, registry), logger)
	gs.SetConfigReloadFunc(func() error {
		next, err := loadConfig(o)
		if err != nil {
			return err
		}
		logger.SetLevel(next.Level())
		h, err := build(next)
		if err != nil {
			return err
		}
		query.Swap(h)
		return nil
	})
	return gs.Start()
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "codegraph-communities: %v\n", err)
		if community.IsFatal(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
