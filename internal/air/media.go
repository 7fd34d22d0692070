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

package air

// addMediaAltVariant implements spec.md section 4.5: the global "alt" param
// gains a Media enum variant iff at least one method in the API supports
// media download or upload, and it does not already carry one.
func addMediaAltVariant(api *API) error {
	if !anyMethodSupportsMedia(api) {
		return nil
	}
	for _, p := range api.GlobalParams {
		if p.JSONName != "alt" || p.Type.RefKind != RefNamed {
			continue
		}
		ot, ok := api.State.ByKey[p.Type.Named]
		if !ok || ot.Kind != EntityEnum {
			continue
		}
		for _, v := range ot.Variants {
			if v.WireValue == "media" {
				return nil
			}
		}
		ot.Variants = append(ot.Variants, &EnumValue{
			Name:      "Media",
			WireValue: "media",
			Doc:       "Upload/Download without any metadata or envelope.",
		})
		return nil
	}
	return nil
}

func anyMethodSupportsMedia(api *API) bool {
	for _, m := range api.Methods {
		if methodSupportsMedia(m) {
			return true
		}
	}
	for _, r := range api.Resources {
		if resourceSupportsMedia(r) {
			return true
		}
	}
	return false
}

func resourceSupportsMedia(r *Resource) bool {
	for _, m := range r.Methods {
		if methodSupportsMedia(m) {
			return true
		}
	}
	for _, child := range r.Resources {
		if resourceSupportsMedia(child) {
			return true
		}
	}
	return false
}

func methodSupportsMedia(m *Method) bool {
	return m.SupportsMediaDownload || m.MediaUpload != nil
}
