/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package srv

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"xia.com/pixienet/go-pixie/pkg/config"
	"xia.com/pixienet/go-pixie/pkg/state"
	"xia.com/pixienet/go-pixie/pkg/trace"
)

func newTestServer(t *testing.T, recs ...*state.CaptureRecord) *httptest.Server {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), "state.db")
	if len(recs) > 0 {
		st, err := state.NewCaptureState(cfg.DBPath)
		if err != nil {
			t.Fatal(err)
		}
		for _, rec := range recs {
			if err := st.Add(rec); err != nil {
				t.Fatal(err)
			}
		}
		st.Close()
	}
	ts := httptest.NewServer(NewApiServer(context.Background(), cfg).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, v interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatal(err)
		}
	}
	return resp.StatusCode
}

func TestCaptures(t *testing.T) {
	rec := state.NewCaptureRecord("/dev/uio0", "ADC.csv", trace.NewTrace(4))
	ts := newTestServer(t, rec)

	var recs []*state.CaptureRecord
	if code := getJSON(t, ts.URL+"/api/captures", &recs); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	opt := cmpopts.EquateApproxTime(0)
	if diff := cmp.Diff([]*state.CaptureRecord{rec}, recs, opt); diff != "" {
		t.Errorf("captures mismatch (-want +got):\n%s", diff)
	}

	got := &state.CaptureRecord{}
	if code := getJSON(t, ts.URL+"/api/captures/1", got); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if diff := cmp.Diff(rec, got, opt); diff != "" {
		t.Errorf("capture mismatch (-want +got):\n%s", diff)
	}

	if code := getJSON(t, ts.URL+"/api/captures/2", got); code != http.StatusNotFound {
		t.Errorf("missing capture status = %d, want %d", code, http.StatusNotFound)
	}
	if code := getJSON(t, ts.URL+"/api/captures/abc", got); code != http.StatusNotFound {
		t.Errorf("bad id status = %d, want %d", code, http.StatusNotFound)
	}
}

func TestCapturesEmptyStore(t *testing.T) {
	ts := newTestServer(t)

	var recs []*state.CaptureRecord
	if code := getJSON(t, ts.URL+"/api/captures", &recs); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(recs) != 0 {
		t.Errorf("%d captures, want none", len(recs))
	}
	if code := getJSON(t, ts.URL+"/api/captures/1", &state.CaptureRecord{}); code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", code, http.StatusNotFound)
	}
}
