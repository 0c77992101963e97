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

package state

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"xia.com/pixienet/go-pixie/pkg/trace"
)

func testTrace() *trace.Trace {
	tr := trace.NewTrace(3)
	tr.ADC[0] = []uint16{1, 2, 3}
	tr.ADC[3] = []uint16{9, 4, 4}
	return tr
}

func TestCaptureState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "state.db")
	s, err := NewCaptureState(path)
	if err != nil {
		t.Fatalf("NewCaptureState: %v", err)
	}

	first := NewCaptureRecord("/dev/uio0", "ADC.csv", testTrace())
	second := NewCaptureRecord("/dev/uio1", "/tmp/b.csv", testTrace())
	for _, rec := range []*CaptureRecord{first, second} {
		if err := s.Add(rec); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if first.ID != 1 || second.ID != 2 {
		t.Errorf("ids = %d, %d; want 1, 2", first.ID, second.ID)
	}
	s.Close()

	ro, err := OpenCaptureState(path)
	if err != nil {
		t.Fatalf("OpenCaptureState: %v", err)
	}
	defer ro.Close()

	opt := cmpopts.EquateApproxTime(0)
	got, err := ro.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if diff := cmp.Diff([]*CaptureRecord{first, second}, got, opt); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}

	rec, err := ro.Get(2)
	if err != nil {
		t.Fatalf("Get(2): %v", err)
	}
	if diff := cmp.Diff(second, rec, opt); diff != "" {
		t.Errorf("Get mismatch (-want +got):\n%s", diff)
	}
	wantStats := []trace.ChannelStats{{Min: 1, Max: 3}, {}, {}, {Min: 4, Max: 9}}
	if diff := cmp.Diff(wantStats, rec.Channels); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}

	var notFound ErrCaptureNotFound
	if _, err := ro.Get(3); !errors.As(err, &notFound) {
		t.Errorf("Get(3) = %v, want ErrCaptureNotFound", err)
	}
}
