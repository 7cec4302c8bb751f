package statistics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/thermalkit/isp2go/internal/throttle"
)

const subsystemTable = "table"

type TableCollector struct {
	table *throttle.Table
	fps   *prometheus.Desc
}

func NewTableCollector(table *throttle.Table) *TableCollector {
	return &TableCollector{
		table: table,
		fps: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemTable, "fps"),
			"Frame rate ceiling of the throttle table entry",
			[]string{"ordinal"}, nil,
		),
	}
}

func (collector *TableCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.fps
}

// Collect implements required collect function for all prometheus collectors
func (collector *TableCollector) Collect(ch chan<- prometheus.Metric) {
	for _, entry := range collector.table.Entries() {
		ordinal := strconv.Itoa(entry.Ordinal)
		ch <- prometheus.MustNewConstMetric(collector.fps, prometheus.GaugeValue, float64(entry.Fps), ordinal)
	}
}
