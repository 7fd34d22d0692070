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

package manifest

import (
	"github.com/walle/targz"

	"github.com/orrery-dev/discoverygen/internal/dgerrors"
)

// Archive tars and gzips an emitted API's Layout.Root directory into
// destTarGz, mirroring the teacher's archival of a generated crate for
// distribution outside the monorepo.
func Archive(layout Layout, destTarGz string) error {
	if err := targz.Compress(layout.Root, destTarGz); err != nil {
		return dgerrors.Wrap(dgerrors.IO, "archiving "+layout.Root, err)
	}
	return nil
}
