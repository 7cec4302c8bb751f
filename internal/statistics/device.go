package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/thermalkit/isp2go/internal/cooling"
)

const subsystemDevice = "device"

type DeviceCollector struct {
	registry *cooling.Registry

	level      *prometheus.Desc
	maxLevel   *prometheus.Desc
	count      *prometheus.Desc
	broadcasts *prometheus.Desc
}

func NewDeviceCollector(registry *cooling.Registry) *DeviceCollector {
	return &DeviceCollector{
		registry: registry,
		level: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemDevice, "level"),
			"Currently applied cooling level of the device",
			[]string{"id"}, nil,
		),
		maxLevel: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemDevice, "max_level"),
			"Highest cooling level of the throttle table",
			[]string{"id"}, nil,
		),
		count: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemDevice, "count"),
			"Number of live cooling devices",
			nil, nil,
		),
		broadcasts: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemDevice, "broadcasts_total"),
			"Number of throttling events broadcast since startup",
			nil, nil,
		),
	}
}

func (collector *DeviceCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.level
	ch <- collector.maxLevel
	ch <- collector.count
	ch <- collector.broadcasts
}

// Collect implements required collect function for all prometheus collectors
func (collector *DeviceCollector) Collect(ch chan<- prometheus.Metric) {
	for _, device := range collector.registry.Devices() {
		deviceId := device.Name()

		level, err := device.GetCurrentLevel()
		if err == nil {
			ch <- prometheus.MustNewConstMetric(collector.level, prometheus.GaugeValue, float64(level), deviceId)
		}

		maxLevel, err := device.GetMaxLevel()
		if err == nil {
			ch <- prometheus.MustNewConstMetric(collector.maxLevel, prometheus.GaugeValue, float64(maxLevel), deviceId)
		}
	}

	ch <- prometheus.MustNewConstMetric(collector.count, prometheus.GaugeValue, float64(collector.registry.DeviceCount()))
	ch <- prometheus.MustNewConstMetric(collector.broadcasts, prometheus.CounterValue, float64(collector.registry.Hub().BroadcastCount()))
}
