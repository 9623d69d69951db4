package main

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"
)

// PromExporter collects metrics in Prometheus format from a gateway server.
type PromExporter struct {
	namespace string

	scraper *Scraper

	up                *prometheus.Desc
	version           *prometheus.Desc
	roomsLive         *prometheus.Desc
	roomsTotal        *prometheus.Desc
	sessionsLive      *prometheus.Desc
	sessionsTotal     *prometheus.Desc
	subscriptionsLive *prometheus.Desc
	requestsReceived  *prometheus.Desc
	requestsFailed    *prometheus.Desc
	notifications     *prometheus.Desc
	malloced          *prometheus.Desc
}

// NewPromExporter returns an initialized Prometheus exporter.
func NewPromExporter(namespace string, scraper *Scraper) *PromExporter {
	return &PromExporter{
		namespace: namespace,
		scraper:   scraper,
		up: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "up"),
			"If the gateway instance is reachable.",
			nil,
			nil,
		),
		version: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "version"),
			"The version of this gateway instance.",
			nil,
			nil,
		),
		roomsLive: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "rooms_live_count"),
			"Number of currently active subscription rooms.",
			nil,
			nil,
		),
		roomsTotal: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "rooms_total"),
			"Total number of rooms created during instance lifetime.",
			nil,
			nil,
		),
		sessionsLive: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "sessions_live_count"),
			"Number of currently active sessions.",
			nil,
			nil,
		),
		sessionsTotal: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "sessions_total"),
			"Total number of sessions since instance start.",
			nil,
			nil,
		),
		subscriptionsLive: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "subscriptions_live_count"),
			"Number of currently active room subscriptions.",
			nil,
			nil,
		),
		requestsReceived: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "requests_received_total"),
			"Total number of requests received since instance start.",
			nil,
			nil,
		),
		requestsFailed: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "requests_failed_total"),
			"Total number of requests which failed during dispatch.",
			nil,
			nil,
		),
		notifications: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "notifications_delivered_total"),
			"Total number of realtime notifications delivered to subscribers.",
			nil,
			nil,
		),
		malloced: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "malloced_bytes"),
			"Number of bytes of memory allocated and in use.",
			nil,
			nil,
		),
	}
}

// Describe describes all the metrics exported by the gateway exporter. It
// implements prometheus.Collector.
func (e *PromExporter) Describe(ch chan<- *prometheus.Desc) {
	ch <- e.up
	ch <- e.version
	ch <- e.roomsLive
	ch <- e.roomsTotal
	ch <- e.sessionsLive
	ch <- e.sessionsTotal
	ch <- e.subscriptionsLive
	ch <- e.requestsReceived
	ch <- e.requestsFailed
	ch <- e.notifications
	ch <- e.malloced
}

// Collect fetches statistics from the configured gateway instance, and
// delivers them as Prometheus metrics. It implements prometheus.Collector.
func (e *PromExporter) Collect(ch chan<- prometheus.Metric) {
	up := float64(1)
	if stats, err := e.scraper.Scrape(); err != nil {
		log.Println("Failed to fetch or parse response", err)
		up = 0
	} else if err = e.parseStats(ch, stats); err != nil {
		up = 0
	}

	ch <- prometheus.MustNewConstMetric(e.up, prometheus.GaugeValue, up)
}

func (e *PromExporter) parseStats(ch chan<- prometheus.Metric, stats map[string]interface{}) error {
	return firstError(
		e.parseAndUpdate(ch, e.version, prometheus.GaugeValue, stats, "Version"),
		e.parseAndUpdate(ch, e.roomsLive, prometheus.GaugeValue, stats, "LiveRooms"),
		e.parseAndUpdate(ch, e.roomsTotal, prometheus.CounterValue, stats, "TotalRooms"),
		e.parseAndUpdate(ch, e.sessionsLive, prometheus.GaugeValue, stats, "LiveSessions"),
		e.parseAndUpdate(ch, e.sessionsTotal, prometheus.CounterValue, stats, "TotalSessions"),
		e.parseAndUpdate(ch, e.subscriptionsLive, prometheus.GaugeValue, stats, "LiveSubscriptions"),
		e.parseAndUpdate(ch, e.requestsReceived, prometheus.CounterValue, stats, "RequestsReceivedTotal"),
		e.parseAndUpdate(ch, e.requestsFailed, prometheus.CounterValue, stats, "RequestsFailedTotal"),
		e.parseAndUpdate(ch, e.notifications, prometheus.CounterValue, stats, "NotificationsDeliveredTotal"),
		e.parseAndUpdate(ch, e.malloced, prometheus.GaugeValue, stats, "memstats.Alloc"),
	)
}

func (e *PromExporter) parseAndUpdate(ch chan<- prometheus.Metric, desc *prometheus.Desc, valueType prometheus.ValueType,
	stats map[string]interface{}, key string) error {
	v, err := parseMetric(stats, key)
	if err != nil {
		return err
	}
	ch <- prometheus.MustNewConstMetric(desc, valueType, v)
	return nil
}

func firstError(errs ...error) error {
	for _, v := range errs {
		if v != nil {
			return v
		}
	}
	return nil
}
