package output

import (
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/danpilch/checkdisk/pkg/health"
)

var fsLabels = []string{"device", "mountpoint", "fstype"}

// labelValue replaces invalid UTF-8; mount paths are arbitrary bytes but label
// values must be UTF-8.
func labelValue(v string) string {
	return strings.ToValidUTF8(v, "\uFFFD")
}

// WritePrometheus writes the results in the text exposition format, suitable
// for a node exporter textfile collector.
func WritePrometheus(w io.Writer, o *health.Overall) error {
	reg := prometheus.NewRegistry()

	avail := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "check_disk_avail_bytes",
		Help: "Filesystem space available to non-root users in bytes.",
	}, fsLabels)
	size := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "check_disk_size_bytes",
		Help: "Filesystem size in bytes.",
	}, fsLabels)
	used := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "check_disk_used_percent",
		Help: "Truncated percentage of blocks not available to non-root users.",
	}, fsLabels)
	fsState := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "check_disk_filesystem_state",
		Help: "Per-filesystem verdict: 0 OK, 1 WARNING, 2 CRITICAL, 3 UNKNOWN.",
	}, fsLabels)
	notFound := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "check_disk_selection_not_found",
		Help: "Explicitly selected paths that matched no mounted filesystem.",
	}, []string{"path"})
	overall := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "check_disk_state",
		Help: "Overall verdict: 0 OK, 1 WARNING, 2 CRITICAL, 3 UNKNOWN.",
	})
	reg.MustRegister(avail, size, used, fsState, notFound, overall)

	for _, r := range o.Results {
		labels := prometheus.Labels{
			"device":     labelValue(r.Record.Device),
			"mountpoint": labelValue(r.Record.MountDir),
			"fstype":     labelValue(r.Record.FSType),
		}
		avail.With(labels).Set(r.Usage.AvailableBytes())
		size.With(labels).Set(r.Usage.TotalBytes())
		used.With(labels).Set(float64(r.UsedPercent))
		fsState.With(labels).Set(float64(r.State))
	}
	for _, name := range o.NotFound {
		notFound.WithLabelValues(labelValue(name)).Set(1)
	}
	overall.Set(float64(o.State))

	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
