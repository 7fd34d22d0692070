// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dgerrors defines the sentinel error kinds produced by the
// discovery-to-Go transformation pipeline.
//
// Every kind is a distinct sentinel so callers can use errors.Is to branch on
// failure class, and every constructor wraps a path/context string so the
// resulting message can point at the offending element of the input
// document.
package dgerrors

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure. See the package doc for how these are
// produced and propagated.
type Kind error

var (
	// Discovery is returned for an unrecognized (type, format) pair, a
	// missing `items` on an array schema, or an invalid enum table.
	Discovery Kind = errors.New("discovery")
	// Reference is returned when a $ref target is absent from the schema
	// map.
	Reference Kind = errors.New("reference")
	// Naming is returned for a duplicate ident reservation, or a claim of an
	// unreserved ident.
	Naming Kind = errors.New("naming conflict")
	// Template is returned for an unparseable URI template, a template
	// variable with no backing required param, or an unsupported variable
	// type in a path segment.
	Template Kind = errors.New("uri template")
	// Upload is returned when an upload protocol entry is missing multipart
	// support.
	Upload Kind = errors.New("upload")
	// IO is returned for read/write failures on the spec, output, or the
	// formatter pipe.
	IO Kind = errors.New("io")
	// Formatter is returned when the external formatter exits non-zero.
	Formatter Kind = errors.New("formatter")
)

// Wrap attaches context to a sentinel kind, preserving it for errors.Is.
func Wrap(kind Kind, context string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", kind, context)
	}
	return fmt.Errorf("%w: %s: %w", kind, context, cause)
}

// Wrapf is Wrap with a formatted context string.
func Wrapf(kind Kind, cause error, format string, args ...any) error {
	return Wrap(kind, fmt.Sprintf(format, args...), cause)
}
