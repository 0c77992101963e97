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

package command

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"xia.com/pixienet/go-pixie/pkg/config"
	"xia.com/pixienet/go-pixie/pkg/srv"
	"xia.com/pixienet/go-pixie/pkg/state"
	"xia.com/pixienet/go-pixie/pkg/trace"
)

func TestApiClient(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), "state.db")
	st, err := state.NewCaptureState(cfg.DBPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, out := range []string{"a.csv", "b.csv"} {
		if err := st.Add(state.NewCaptureRecord("/dev/uio0", out, trace.NewTrace(2))); err != nil {
			t.Fatal(err)
		}
	}
	st.Close()

	ts := httptest.NewServer(srv.NewApiServer(context.Background(), cfg).Handler())
	defer ts.Close()
	client := NewApiClient(strings.TrimPrefix(ts.URL, "http://"))

	recs, err := client.Captures()
	if err != nil {
		t.Fatalf("Captures: %v", err)
	}
	if len(recs) != 2 || recs[0].Output != "a.csv" || recs[1].Output != "b.csv" {
		t.Errorf("Captures = %+v", recs)
	}

	rec, err := client.Capture(2)
	if err != nil {
		t.Fatalf("Capture(2): %v", err)
	}
	if rec.ID != 2 || rec.Samples != 2 {
		t.Errorf("Capture(2) = %+v", rec)
	}

	var notFound state.ErrCaptureNotFound
	if _, err := client.Capture(7); !errors.As(err, &notFound) {
		t.Errorf("Capture(7) = %v, want ErrCaptureNotFound", err)
	}
}
