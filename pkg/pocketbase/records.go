// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pocketbase

import (
	"context"
	"net/http"
	"net/url"

	"github.com/alelipona/pocketbase-go/pkg/coerce"
	"github.com/alelipona/pocketbase-go/pkg/transport"
)

// Record convenience wrappers. These only build collection paths over Do;
// responses stay generic JSON, typed per-collection models are out of scope.

// ListRecords fetches a page of records from a collection.
// Query carries the service's paging/filter/sort parameters as-is.
func (c *Client) ListRecords(ctx context.Context, collection string, query url.Values) (any, error) {
	return c.Do(ctx, RequestSpec{
		Method:   http.MethodGet,
		Endpoint: recordsPath(collection),
		Query:    query,
	})
}

// ViewRecord fetches a single record by id.
func (c *Client) ViewRecord(ctx context.Context, collection, id string, query url.Values) (any, error) {
	return c.Do(ctx, RequestSpec{
		Method:   http.MethodGet,
		Endpoint: recordPath(collection, id),
		Query:    query,
	})
}

// CreateRecord creates a record from a JSON field map.
func (c *Client) CreateRecord(ctx context.Context, collection string, fields map[string]any) (any, error) {
	return c.Do(ctx, RequestSpec{
		Method:   http.MethodPost,
		Endpoint: recordsPath(collection),
		Body:     fields,
	})
}

// UpdateRecord patches a record's fields by id.
func (c *Client) UpdateRecord(ctx context.Context, collection, id string, fields map[string]any) (any, error) {
	return c.Do(ctx, RequestSpec{
		Method:   http.MethodPatch,
		Endpoint: recordPath(collection, id),
		Body:     fields,
	})
}

// DeleteRecord deletes a record by id.
func (c *Client) DeleteRecord(ctx context.Context, collection, id string) error {
	_, err := c.Do(ctx, RequestSpec{
		Method:   http.MethodDelete,
		Endpoint: recordPath(collection, id),
	})
	return err
}

// CreateRecordWithFiles creates a record through a multipart submission:
// plain fields are flattened to their form string representation and the
// pre-resolved file attachments ride alongside them.
func (c *Client) CreateRecordWithFiles(ctx context.Context, collection string, fields map[string]any, files []transport.File) (any, error) {
	formFields, err := coerce.FormFields(fields)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, RequestSpec{
		Method:   http.MethodPost,
		Endpoint: recordsPath(collection),
		Form: &transport.Form{
			Fields: formFields,
			Files:  files,
		},
	})
}

// UpdateRecordWithFiles is CreateRecordWithFiles for an existing record.
func (c *Client) UpdateRecordWithFiles(ctx context.Context, collection, id string, fields map[string]any, files []transport.File) (any, error) {
	formFields, err := coerce.FormFields(fields)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, RequestSpec{
		Method:   http.MethodPatch,
		Endpoint: recordPath(collection, id),
		Form: &transport.Form{
			Fields: formFields,
			Files:  files,
		},
	})
}

func recordsPath(collection string) string {
	return "/collections/" + url.PathEscape(collection) + "/records"
}

func recordPath(collection, id string) string {
	return recordsPath(collection) + "/" + url.PathEscape(id)
}
