package datadog

import (
	"bytes"
	"compress/zlib"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func init() {
	unixTime = func() int64 { return 1414141414 }
}

func TestReporterCounterAndGauge(t *testing.T) {
	testReporter(func(rep *Reporter, body *bytes.Buffer) {
		assertNoError(t, rep.Report("hits", []string{"web"}, map[string]interface{}{"kind": "counter", "value": int64(5)}))
		assertNoError(t, rep.Report("load", []string{"web"}, map[string]interface{}{"kind": "gauge", "value": 0.7}))
		assertNoError(t, rep.Flush())
		assertJSON(t, body.String(), `{"series":[
			{"metric":"hits","points":[[1414141414,5]],"tags":["web"],"host":"test.host"},
			{"metric":"load","points":[[1414141414,0.7]],"tags":["web"],"host":"test.host"}
		]}`)
	})
}

func TestReporterMeterExpandsEveryRate(t *testing.T) {
	testReporter(func(rep *Reporter, body *bytes.Buffer) {
		assertNoError(t, rep.Report("reqs", nil, map[string]interface{}{
			"kind": "meter", "count": int64(10), "mean": 1.0, "one": 2.0, "five": 3.0, "fifteen": 4.0, "day": 5.0,
		}))
		assertNoError(t, rep.Flush())
		assertJSON(t, body.String(), `{"series":[
			{"metric":"reqs.count","points":[[1414141414,10]],"host":"test.host"},
			{"metric":"reqs.mean","points":[[1414141414,1]],"host":"test.host"},
			{"metric":"reqs.one","points":[[1414141414,2]],"host":"test.host"},
			{"metric":"reqs.five","points":[[1414141414,3]],"host":"test.host"},
			{"metric":"reqs.fifteen","points":[[1414141414,4]],"host":"test.host"},
			{"metric":"reqs.day","points":[[1414141414,5]],"host":"test.host"}
		]}`)
	})
}

func TestReporterHistogramPostsP95AndP99(t *testing.T) {
	testReporter(func(rep *Reporter, body *bytes.Buffer) {
		summary := map[string]interface{}{
			"kind": "histogram",
			"percentile": []map[string]interface{}{
				{"p": 50.0, "value": 1.0},
				{"p": 95.0, "value": 9.5},
				{"p": 99.0, "value": 9.9},
			},
		}
		assertNoError(t, rep.Report("latency", nil, summary))
		assertNoError(t, rep.Flush())
		assertJSON(t, body.String(), `{"series":[
			{"metric":"latency.p95","points":[[1414141414,9.5]]},
			{"metric":"latency.p99","points":[[1414141414,9.9]]}
		]}`)
	})
}

func TestReporterFlushWithNothingBufferedDoesNotPost(t *testing.T) {
	posted := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posted = true
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	rep := New("BOGUS")
	rep.URL = server.URL
	assertNoError(t, rep.Flush())

	if posted {
		t.Fatal("Flush posted with nothing buffered")
	}
}

func testReporter(cb func(*Reporter, *bytes.Buffer)) {
	body := &bytes.Buffer{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		body.Reset()
		zr, err := zlib.NewReader(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		defer zr.Close()

		if _, err := io.Copy(body, zr); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
		} else {
			w.WriteHeader(http.StatusAccepted)
		}
	}))
	defer server.Close()

	rep := New("BOGUS")
	rep.URL = server.URL
	rep.Hostname = "test.host"
	cb(rep, body)
}

func assertJSON(t *testing.T, have, want string) {
	var h, w map[string]interface{}
	if err := json.Unmarshal([]byte(have), &h); err != nil {
		t.Fatal("unable to decode 'have' JSON", err)
	}
	if err := json.Unmarshal([]byte(want), &w); err != nil {
		t.Fatal("unable to decode 'want' JSON", err)
	}

	if !reflect.DeepEqual(h, w) {
		norm := strings.NewReplacer(" ", "", "\t", "", "\n", "")
		t.Errorf("want:\n%s\nhave:\n%s", norm.Replace(want), norm.Replace(have))
	}
}

func assertNoError(t *testing.T, err error) {
	if err != nil {
		t.Fatal("wanted no error, but got", err.Error())
	}
}
