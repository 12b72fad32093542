package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"slices"
	"syscall"

	"github.com/gogpu/flow"
	"github.com/gogpu/flow/compositor"
	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/internal/scenario"
	"github.com/gogpu/flow/rasterizer"
	"github.com/gogpu/gputypes"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Draw a scenario and print every frame as JSON",
	Long: `Draws the frames of a scenario through the compositor and prints one JSON
object per frame with the presented layers and the platform view snapshot.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var o runOptions
		o.threadMerging, _ = cmd.Flags().GetBool("thread-merging")
		o.lease, _ = cmd.Flags().GetInt("lease")
		o.pretty, _ = cmd.Flags().GetBool("pretty")
		metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if metricsAddr != "" {
			o.registry = prometheus.NewRegistry()
			srv := serveMetrics(metricsAddr, o.registry)
			defer srv.Shutdown(context.Background())
		}
		if err := runScenario(ctx, cmd.OutOrStdout(), args[0], o); err != nil {
			return err
		}
		if metricsAddr != "" {
			flow.Logger().Info("flowdemo: frames done, metrics still served; press Ctrl+C to exit", "addr", metricsAddr)
			<-ctx.Done()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("thread-merging", true, "Merge raster and platform threads while platform views are shown")
	runCmd.Flags().Int("lease", 0, "Frames the threads stay merged without platform views (0 for the default)")
	runCmd.Flags().Bool("pretty", false, "Indent the JSON output")
	runCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics at this address, e.g. :2112")
}

type runOptions struct {
	threadMerging bool
	lease         int
	pretty        bool
	registry      *prometheus.Registry
}

// frameReport is the JSON line printed per frame.
type frameReport struct {
	Frame    int                       `json:"frame"`
	Status   string                    `json:"status"`
	Layers   []layerReport             `json:"layers"`
	Snapshot *compositor.FrameSnapshot `json:"snapshot"`
}

func runScenario(ctx context.Context, w io.Writer, path string, o runOptions) error {
	s, err := scenario.Load(path)
	if err != nil {
		return err
	}

	presenter := &reportPresenter{}
	copts := []compositor.Option{compositor.WithThreadMerging(o.threadMerging)}
	if o.lease > 0 {
		copts = append(copts, compositor.WithMergedLeaseDuration(o.lease))
	}
	emb := compositor.New(presenter, copts...)

	surfaces := rasterizer.SurfaceProviderFunc(func(size geom.ISize) (flow.Frame, error) {
		return flow.NewSurfaceFrame(size, gputypes.TextureFormatBGRA8Unorm, nil), nil
	})
	var ropts []rasterizer.Option
	if o.registry != nil {
		ropts = append(ropts, rasterizer.WithRegisterer(o.registry))
	}
	r := rasterizer.New(emb, surfaces, ropts...)
	defer r.Teardown()

	enc := json.NewEncoder(w)
	if o.pretty {
		enc.SetIndent("", "  ")
	}
	tree := s.Tree()
	for i := range s.Frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		status, err := r.DrawUntilDone(0, tree)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		report := frameReport{
			Frame:    i,
			Status:   status.String(),
			Layers:   slices.Clone(presenter.last),
			Snapshot: emb.LastSnapshot(),
		}
		if err := enc.Encode(report); err != nil {
			return err
		}
	}
	for _, id := range s.Collect {
		emb.CollectView(id)
	}
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		flow.Logger().Info("flowdemo: serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			flow.Logger().Error("flowdemo: metrics server failed", "err", err)
		}
	}()
	return srv
}
