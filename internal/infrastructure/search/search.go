// Package search indexes listings and users in Elasticsearch.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
)

const requestTimeout = 3 * time.Second

type index struct {
	es   *elasticsearch.Client
	name string
	log  *logrus.Logger
}

func (ix index) put(ctx context.Context, id string, doc any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return errs.SearchFailed("index", err)
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	req := esapi.IndexRequest{Index: ix.name, DocumentID: id, Body: bytes.NewReader(b), Refresh: "false"}
	res, err := req.Do(c, ix.es)
	if err != nil {
		ix.log.WithError(err).WithFields(logrus.Fields{"index": ix.name, "id": id}).Warn("es index failed")
		return errs.SearchFailed("index", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		ix.log.WithFields(logrus.Fields{"index": ix.name, "id": id, "status": res.Status()}).Warn("es index response error")
		return errs.SearchFailed("index", fmt.Errorf("status %s", res.Status()))
	}
	return nil
}

func (ix index) delete(ctx context.Context, id string) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := esapi.DeleteRequest{Index: ix.name, DocumentID: id}.Do(c, ix.es)
	if err != nil {
		return errs.SearchFailed("delete", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return errs.SearchFailed("delete", fmt.Errorf("status %s", res.Status()))
	}
	return nil
}

type hit[T any] struct {
	ID     string `json:"_id"`
	Source T      `json:"_source"`
}

type searchResult[T any] struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []hit[T] `json:"hits"`
	} `json:"hits"`
}

func doSearch[T any](ctx context.Context, ix index, query map[string]any) (*searchResult[T], error) {
	b, err := json.Marshal(query)
	if err != nil {
		return nil, errs.SearchFailed("search", err)
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := ix.es.Search(
		ix.es.Search.WithContext(c),
		ix.es.Search.WithIndex(ix.name),
		ix.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, errs.SearchFailed("search", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, errs.SearchFailed("search", fmt.Errorf("status %s: %s", res.Status(), body))
	}
	var parsed searchResult[T]
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errs.SearchFailed("search", err)
	}
	return &parsed, nil
}

func newIndex(es *elasticsearch.Client, name string, log *logrus.Logger) index {
	return index{es: es, name: name, log: helpers.OrNop(log)}
}
