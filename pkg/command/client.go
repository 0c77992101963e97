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
	"errors"
	"fmt"

	"github.com/imroc/req"

	"xia.com/pixienet/go-pixie/pkg/srv"
	"xia.com/pixienet/go-pixie/pkg/state"
)

type ApiClient struct {
	ApiPrefix string
}

// NewApiClient creates a client of the history API served at address (host:port)
func NewApiClient(address string) *ApiClient {
	return &ApiClient{
		ApiPrefix: fmt.Sprintf("http://%s%s", address, srv.ApiPrefix),
	}
}

func (c *ApiClient) capturesUrl() string {
	return fmt.Sprintf("%s/captures", c.ApiPrefix)
}

func (c *ApiClient) captureUrl(id uint64) string {
	return fmt.Sprintf("%s/captures/%d", c.ApiPrefix, id)
}

// Captures sends request to list all recorded captures
func (c *ApiClient) Captures() ([]*state.CaptureRecord, error) {
	r, err := req.Get(c.capturesUrl())
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	var recs []*state.CaptureRecord
	if err := r.ToJSON(&recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// Capture sends request to get one recorded capture
func (c *ApiClient) Capture(id uint64) (*state.CaptureRecord, error) {
	r, err := req.Get(c.captureUrl(id))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode == 404 {
		return nil, state.ErrCaptureNotFound{ID: id}
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	rec := &state.CaptureRecord{}
	if err := r.ToJSON(rec); err != nil {
		return nil, err
	}
	return rec, nil
}
