// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"blogconsole/internal/categorytree"
)

// APIError is a non-2xx response from the blog API. It matches
// categorytree.ErrServerRejected under errors.Is.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == categorytree.ErrServerRejected
}

// NotFound reports whether the API answered 404.
func (e *APIError) NotFound() bool { return e.StatusCode == http.StatusNotFound }

// NetworkError means the request never produced an HTTP response: DNS,
// connection, TLS, timeout or cancellation. It matches
// categorytree.ErrNetwork under errors.Is.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("api %s: %v", e.Op, e.Err) }

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool {
	return target == categorytree.ErrNetwork
}

// IsNotFound reports whether err carries a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}

// ServerMessage returns the human-readable message of an API rejection,
// or "" when err is not one.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

type validationError struct {
	Property    string            `json:"property"`
	Constraints map[string]string `json:"constraints"`
	Children    []validationError `json:"children"`
}

// errorMessage extracts the message field of an error body. The field may
// be a string, an array of strings, or an array of validation errors whose
// constraint messages are collected depth first.
func errorMessage(body []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return strings.TrimSpace(string(body))
	}

	var s string
	if err := json.Unmarshal(payload.Message, &s); err == nil && s != "" {
		return s
	}

	var list []json.RawMessage
	if err := json.Unmarshal(payload.Message, &list); err == nil && len(list) > 0 {
		var msgs []string
		var first validationError
		if err := json.Unmarshal(list[0], &first); err == nil && first.Property != "" {
			var verrs []validationError
			if err := json.Unmarshal(payload.Message, &verrs); err == nil {
				msgs = collectConstraints(verrs, msgs)
			}
		} else {
			for _, raw := range list {
				var m string
				if err := json.Unmarshal(raw, &m); err == nil {
					msgs = append(msgs, m)
				}
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, ", ")
		}
	}

	return payload.Error
}

func collectConstraints(errs []validationError, out []string) []string {
	for _, e := range errs {
		keys := make([]string, 0, len(e.Constraints))
		for k := range e.Constraints {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, e.Constraints[k])
		}
		out = collectConstraints(e.Children, out)
	}
	return out
}
