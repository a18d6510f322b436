package e2e

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/storeops/shelfwatch/api/dashboard"
	coremetrics "github.com/storeops/shelfwatch/core/metrics"
	"github.com/storeops/shelfwatch/core/restock"
	"github.com/storeops/shelfwatch/core/savedviews"
	"github.com/storeops/shelfwatch/infra/logger"
	"github.com/storeops/shelfwatch/infra/metrics"
)

const (
	influxOrg    = "e2e_org"
	influxBucket = "e2e_bucket"
	influxToken  = "e2e-admin-token"
)

// junitReport is a minimal representation of a JUnit XML report. The E2E
// suite writes such a report so CI systems can display the results.
type junitReport struct {
	XMLName  xml.Name        `xml:"testsuite"`
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Cases    []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name    string  `xml:"name,attr"`
	Failure *string `xml:"failure,omitempty"`
	Time    float64 `xml:"time,attr"`
}

func writeJUnit(path string, rep junitReport) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	return enc.Encode(rep)
}

// startInflux starts a bootstrapped InfluxDB 2.7 container and returns it
// along with the base URL. Credentials are fixed by the init environment.
func startInflux(ctx context.Context, t *testing.T) (tc.Container, string) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "influxdb:2.7",
		ExposedPorts: []string{"8086/tcp"},
		Env: map[string]string{
			"DOCKER_INFLUXDB_INIT_MODE":        "setup",
			"DOCKER_INFLUXDB_INIT_USERNAME":    "admin",
			"DOCKER_INFLUXDB_INIT_PASSWORD":    "adminpassword",
			"DOCKER_INFLUXDB_INIT_ORG":         influxOrg,
			"DOCKER_INFLUXDB_INIT_BUCKET":      influxBucket,
			"DOCKER_INFLUXDB_INIT_ADMIN_TOKEN": influxToken,
		},
		WaitingFor: wait.ForHTTP("/health").WithPort("8086/tcp").WithStartupTimeout(60 * time.Second),
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Skipf("unable to start influx container: %v", err)
	}
	host, _ := cont.Host(ctx)
	port, _ := cont.MappedPort(ctx, "8086")
	return cont, fmt.Sprintf("http://%s:%s", host, port.Port())
}

func e2eRecords() []restock.Record {
	day := func(d int) time.Time {
		return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
	}
	return []restock.Record{
		{Date: day(1), Department: "Produce", DelayReason: "Late Truck", DelayMinutes: 30, Stockout: true, TruckCount: 2},
		{Date: day(2), Department: "Produce", DelayReason: "Late Truck", DelayMinutes: 20, Stockout: true, TruckCount: 3},
		{Date: day(2), Department: "Dairy", DelayReason: restock.NoReason, DelayMinutes: 0, Stockout: false, TruckCount: 1},
	}
}

// Test_E2E_MetricsPipeline drives the dashboard over HTTP with a live
// InfluxDB sink and verifies that query, load and view events end up in the
// bucket.
func Test_E2E_MetricsPipeline(t *testing.T) {
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skipf("docker not installed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cont, url := startInflux(ctx, t)
	defer cont.Terminate(ctx) //nolint:errcheck
	t.Logf("InfluxDB started at %s", url)

	sink := metrics.NewInfluxSink(url, influxToken, influxOrg, influxBucket)
	defer sink.Close()

	ds := restock.NewDataset(e2eRecords())
	if err := sink.RecordLoad(coremetrics.LoadEvent{
		Path:     "e2e.csv",
		Records:  ds.Len(),
		Duration: time.Millisecond,
		Time:     time.Now(),
	}); err != nil {
		t.Fatalf("record load: %v", err)
	}

	h := dashboard.NewHandler(ds, savedviews.NewMemoryStore(), sink, logger.NopLogger{}, 200)
	srv := httptest.NewServer(h.Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/dashboard?department=Produce")
	if err != nil {
		t.Fatalf("dashboard request: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard status %d", resp.StatusCode)
	}

	body := strings.NewReader(`{"name":"produce only","filter":{"departments":["Produce"]}}`)
	resp, err = http.Post(srv.URL+"/api/views", "application/json", body)
	if err != nil {
		t.Fatalf("save view request: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("save view status %d", resp.StatusCode)
	}

	cli := NewInfluxClient(url, influxOrg, influxBucket, influxToken)
	defer cli.Close()
	for _, measurement := range []string{"dashboard_query", "dataset_load", "saved_view_change"} {
		n, err := cli.CountMeasurement(ctx, measurement)
		if err != nil {
			t.Fatalf("query %s: %v", measurement, err)
		}
		if n == 0 {
			t.Fatalf("no %s rows in Influx", measurement)
		}
		t.Logf("%s: %d rows", measurement, n)
	}

	dir := t.TempDir()
	rep := junitReport{Name: "shelfwatch-e2e", Tests: 1, Cases: []junitTestCase{{Name: "Test_E2E_MetricsPipeline", Time: 0}}}
	if err := writeJUnit(filepath.Join(dir, "e2e.xml"), rep); err != nil {
		t.Logf("write junit: %v", err)
	}
}
