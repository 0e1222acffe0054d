// Package httpstore is the client side of the HTTP surface: a Store backed
// by a remote recipebox server instead of a local database or file.
package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"recipebox/internal/model"
	"recipebox/internal/store"
)

const recipesPath = "/api/recipes"

// Store talks to a remote recipebox API.
type Store struct {
	base   string
	client *http.Client
}

// New builds a store for the given base URL, e.g. "http://localhost:8080".
func New(base string) *Store {
	return &Store{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *Store) List(ctx context.Context) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := s.do(ctx, http.MethodGet, recipesPath, nil, http.StatusOK, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *Store) Create(ctx context.Context, draft model.Draft) (model.Recipe, error) {
	var recipe model.Recipe
	if err := s.do(ctx, http.MethodPost, recipesPath, draft, http.StatusCreated, &recipe); err != nil {
		return model.Recipe{}, err
	}
	return recipe, nil
}

func (s *Store) Update(ctx context.Context, id string, draft model.Draft) (model.Recipe, error) {
	body := struct {
		ID string `json:"id"`
		model.Draft
	}{ID: id, Draft: draft}

	var recipe model.Recipe
	if err := s.do(ctx, http.MethodPut, recipesPath, body, http.StatusOK, &recipe); err != nil {
		return model.Recipe{}, err
	}
	return recipe, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	path := recipesPath + "?id=" + url.QueryEscape(id)
	return s.do(ctx, http.MethodDelete, path, nil, http.StatusNoContent, nil)
}

func (s *Store) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

func (s *Store) do(ctx context.Context, method, path string, body any, want int, out any) error {
	op := strings.ToLower(method) + " recipes"

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &store.ConnectivityError{Op: op, Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.base+path, reader)
	if err != nil {
		return &store.ConnectivityError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return &store.ConnectivityError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != want {
		return s.apiError(op, resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &store.ConnectivityError{Op: op, Err: err}
		}
	}
	return nil
}

// apiError maps the server's status codes back onto the store taxonomy:
// 404 is a vanished record, 400 a validation failure, anything else a
// connectivity problem.
func (s *Store) apiError(op string, resp *http.Response) error {
	var body struct {
		Error   string   `json:"error"`
		Details string   `json:"details"`
		Missing []string `json:"missing"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return store.ErrNotFound
	case http.StatusBadRequest:
		return &store.ValidationError{Missing: body.Missing}
	default:
		msg := body.Error
		if msg == "" {
			msg = resp.Status
		}
		return &store.ConnectivityError{Op: op, Err: fmt.Errorf("server responded %d: %s", resp.StatusCode, msg)}
	}
}
