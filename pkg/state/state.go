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
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"xia.com/pixienet/go-pixie/pkg/log"
	"xia.com/pixienet/go-pixie/pkg/trace"
)

const (
	CapturesBucket = "captures"
	LockTimeout    = time.Second
)

// CaptureRecord describes one completed trace capture
type CaptureRecord struct {
	ID       uint64               `json:"id"`
	Time     time.Time            `json:"time"`
	Device   string               `json:"device"`
	Output   string               `json:"output"`
	Samples  int                  `json:"samples"`
	Channels []trace.ChannelStats `json:"channels"`
}

func NewCaptureRecord(device, output string, t *trace.Trace) *CaptureRecord {
	stats := t.Stats()
	return &CaptureRecord{
		Time:     time.Now().UTC(),
		Device:   device,
		Output:   output,
		Samples:  t.Len(),
		Channels: stats[:],
	}
}

type CaptureState struct {
	DB       *bbolt.DB
	readOnly bool
}

// NewCaptureState opens (creating if needed) the capture database for writing
func NewCaptureState(path string) (*CaptureState, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: LockTimeout})
	if err != nil {
		return nil, err
	}
	if err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(CapturesBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &CaptureState{DB: db}, nil
}

// OpenCaptureState opens an existing capture database without write access.
// A missing database yields an error wrapping fs.ErrNotExist.
func OpenCaptureState(path string) (*CaptureState, error) {
	// bbolt would create the file
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: LockTimeout, ReadOnly: true})
	if err != nil {
		return nil, err
	}
	return &CaptureState{DB: db, readOnly: true}, nil
}

func uint64ToByte(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// Close ...
func (s *CaptureState) Close() {
	s.DB.Close()
}

// Add stores rec under the next sequence number and sets rec.ID
func (s *CaptureState) Add(rec *CaptureRecord) error {
	if s.readOnly {
		return bbolt.ErrDatabaseReadOnly
	}
	return s.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(CapturesBucket))
		if b == nil {
			return ErrBucketNotFound{Name: CapturesBucket}
		}
		id, err := b.NextSequence()
		if err != nil {
			return err
		}
		rec.ID = id
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		log.Debug("Recording capture %d: %s -> %s", rec.ID, rec.Device, rec.Output)
		return b.Put(uint64ToByte(id), data)
	})
}

// Get ...
func (s *CaptureState) Get(id uint64) (*CaptureRecord, error) {
	rec := &CaptureRecord{}
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(CapturesBucket))
		if b == nil {
			return ErrCaptureNotFound{ID: id}
		}
		data := b.Get(uint64ToByte(id))
		if data == nil {
			return ErrCaptureNotFound{ID: id}
		}
		return json.Unmarshal(data, rec)
	}); err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns all records, oldest first
func (s *CaptureState) List() ([]*CaptureRecord, error) {
	recs := []*CaptureRecord{}
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(CapturesBucket))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			rec := &CaptureRecord{}
			if err := json.Unmarshal(v, rec); err != nil {
				return err
			}
			recs = append(recs, rec)
			return nil
		})
	}); err != nil {
		return nil, err
	}
	return recs, nil
}
