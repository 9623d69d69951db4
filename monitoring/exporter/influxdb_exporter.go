package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// InfluxDBExporter scrapes the gateway's expvar endpoint and pushes the
// values to an InfluxDB write endpoint in line protocol.
type InfluxDBExporter struct {
	target     string
	authHeader string
	instance   string
	scraper    *Scraper
}

// NewInfluxDBExporter returns an initialized InfluxDB exporter. The version
// string selects between the 1.7 and 2.0 write APIs.
func NewInfluxDBExporter(version, pushBaseAddress, organization,
	bucket, token, instance string, scraper *Scraper) *InfluxDBExporter {

	return &InfluxDBExporter{
		target:     pushTarget(version, pushBaseAddress, organization, bucket),
		authHeader: authHeader(version, token),
		instance:   instance,
		scraper:    scraper,
	}
}

// Push scrapes metrics from the gateway and pushes them to InfluxDB.
func (e *InfluxDBExporter) Push() error {
	metrics, err := e.scraper.CollectRaw()
	if err != nil {
		return err
	}
	b := new(bytes.Buffer)
	ts := time.Now().UnixNano()
	for k, v := range metrics {
		fmt.Fprintf(b, "%s,instance=%s value=%f %d\n", k, e.instance, v, ts)
	}
	req, err := http.NewRequest("POST", e.target, b)
	if err != nil {
		return err
	}
	req.Header.Add("Authorization", e.authHeader)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var body string
		if rb, err := io.ReadAll(resp.Body); err != nil {
			body = err.Error()
		} else {
			body = strings.TrimSpace(string(rb))
		}

		return fmt.Errorf("HTTP %s: %s", resp.Status, body)
	}
	return nil
}

// pushTarget builds the write URL:
//
//	2.0: <base>/api/v2/write?org=<org>&bucket=<bucket>
//	1.7: <base>/write?db=<org> (no bucket concept in 1.7)
func pushTarget(version, baseAddr, organization, bucket string) string {
	url, err := url.ParseRequestURI(baseAddr)
	if err != nil {
		log.Fatal("Invalid push_addr", err)
	}
	q := url.Query()
	if version == "1.7" {
		q.Add("db", organization)
	} else {
		q.Add("org", organization)
		q.Add("bucket", bucket)
	}
	url.RawQuery = q.Encode()
	return url.String()
}

// authHeader returns the Authorization value: "Token <token>" for 2.0,
// "Bearer <token>" for 1.7.
func authHeader(version, token string) string {
	if version == "2.0" {
		return "Token " + token
	}
	return "Bearer " + token
}
