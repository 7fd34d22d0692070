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

// Package fleet runs one generation task per Discovery document concurrently,
// per spec.md section 5. No teacher example drives a worker pool for this
// kind of per-item fan-out, so this is built directly on sync.WaitGroup
// rather than grounded on a specific teacher file (recorded in DESIGN.md).
package fleet

import (
	"fmt"
	"sync"
)

// Task is one unit of work: generating a single API's client package.
type Task struct {
	Name string
	Run  func() error
}

// Result pairs a Task's name with the error it produced, if any.
type Result struct {
	Name string
	Err  error
}

// Run executes every task concurrently, waits for all of them, and returns
// one Result per task in the order they were given (not completion order).
// A panic in a single task's Run is not recovered: spec.md treats pipeline
// invariant violations as fatal, and a fan-out driver shouldn't mask them.
func Run(tasks []Task) []Result {
	results := make([]Result, len(tasks))
	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(i int, task Task) {
			defer wg.Done()
			results[i] = Result{Name: task.Name, Err: task.Run()}
		}(i, task)
	}
	wg.Wait()
	return results
}

// Errors collects every non-nil error across results, prefixed with the
// task name that produced it.
func Errors(results []Result) []error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Name, r.Err))
		}
	}
	return errs
}
