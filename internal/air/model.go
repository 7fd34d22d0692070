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

// Package air implements the API Intermediate Representation described in
// spec.md sections 3.2 and 4.3: a typed, ident-stable model built once from
// a dm.ApiDoc and consumed by the emitter. The AIR owns no reference back to
// the Discovery Model; every cross-reference it needs (schema lookup,
// method-to-service linkage) is resolved during the build and stored
// directly on its own nodes, the way internal/api.APIState does for the
// teacher's protobuf/OpenAPI IR.
package air

import "github.com/orrery-dev/discoverygen/internal/dm"

// API is the root of the AIR for a single Discovery document.
type API struct {
	Name        string
	Version     string
	Title       string
	Description string
	RootURL     string
	ServicePath string
	BatchPath   string

	Scopes []*Scope
	// Schemas holds every top-level, user-defined schema type, plus every
	// nested object/enum reachable from them, in allocation order: top-level
	// schemas by sorted id, each followed by the nested types built while
	// lowering it. The emitter keeps this order.
	Schemas []*ObjectOrEnum
	// ParamTypes holds the nested enums used by global parameters (the
	// `params` module of spec.md section 4.5).
	ParamTypes []*ObjectOrEnum
	GlobalParams []*Param

	Resources []*Resource
	Methods   []*Method

	// State indexes AIR nodes for the emitter and for internal
	// cross-referencing passes (CrossReference, boxing detection).
	State *State
}

// State is the AIR-local analogue of the teacher's APIState: maps built once
// the graph exists, used for lookups that would otherwise require threading
// context through every builder call.
type State struct {
	SchemaByID map[string]*ObjectOrEnum // keyed by the original dm schema id
	ByKey      map[TypeKey]*ObjectOrEnum
	// EnumUsers is backfilled by CrossReference once the full graph exists.
	EnumUsers map[TypeKey][]ParamRef
}

// TypeKey is the (parent_path, ident) pair that spec.md section 3.2 requires
// to be globally unique across the AIR.
type TypeKey struct {
	ParentPath string
	Ident      string
}

// EntityKind distinguishes the two kinds of user-defined AIR type.
type EntityKind int

const (
	EntityObject EntityKind = iota
	EntityEnum
)

// ObjectOrEnum is an AirType: a named, user-defined type with a unique
// (ParentPath, Ident) key (spec.md section 3.2).
type ObjectOrEnum struct {
	Key         TypeKey
	Kind        EntityKind
	Doc         string
	Fields      []*Field      // meaningful when Kind == EntityObject
	Hashable    bool          // meaningful when Kind == EntityObject
	Ordered     bool          // meaningful when Kind == EntityObject
	Variants    []*EnumValue  // meaningful when Kind == EntityEnum
	IsMethodLocal bool        // true for request/response types synthesized for one method
}

// EnumValue is one variant of a user-defined enum.
type EnumValue struct {
	Name        string // Go identifier, PascalCase
	WireValue   string // the original Discovery enum string
	Doc         string
}

// Field is one field of an ObjectOrEnum with Kind == EntityObject.
type Field struct {
	Name     string // snake_case Go field name
	JSONName string // original Discovery property id, used for the rename map
	Doc      string
	Type     TypeRef
	Optional bool
	// Boxed is true when this field must use scoped heap indirection to
	// break a cycle through the enclosing type (spec.md section 3.2).
	Boxed bool
}

// TypeRefKind distinguishes the shapes a field or parameter type may take.
type TypeRefKind int

const (
	RefScalar TypeRefKind = iota
	RefNamed              // a reference to an ObjectOrEnum
	RefArray
	RefMap // a pure-map object, inlined rather than named (spec.md section 3.2)
)

// TypeRef is how a Field, Param, or method request/response refers to a
// type. Scalars carry an empty ParentPath and a fixed ident, exactly as
// spec.md section 3.2 describes.
type TypeRef struct {
	RefKind TypeRefKind
	Scalar  dm.Kind       // meaningful when RefKind == RefScalar
	Format  string        // meaningful when Scalar == dm.KindFormattedString
	Named   TypeKey       // meaningful when RefKind == RefNamed
	Elem    *TypeRef      // meaningful when RefKind == RefArray
	MapValue *TypeRef     // meaningful when RefKind == RefMap
}

// ParamLocation mirrors dm.ParamLocation for AIR-level parameters.
type ParamLocation = dm.ParamLocation

// Param is a global or per-method parameter.
type Param struct {
	Name     string // Go identifier (snake_case field / fluent setter name)
	JSONName string
	Doc      string
	Location ParamLocation
	Required bool
	Repeated bool
	Type     TypeRef
}

// Scope is one OAuth2 scope constant (spec.md section 4.5, "scopes" module).
type Scope struct {
	Ident       string
	URL         string
	Description string
}

// Resource is an action hub (spec.md section 4.5.2): a grouping of nested
// methods and nested resources.
type Resource struct {
	Ident      string
	ParentPath string
	Resources  []*Resource
	Methods    []*Method
}

// PageIterability is the is_iterable() predicate result from spec.md
// section 4.3.
type PageIterability int

const (
	PageNone PageIterability = iota
	PageOptional
	PageRequired
)

// Method is a single RPC, lowered into the AIR with its request/response
// types fully resolved.
type Method struct {
	ID             string
	Ident          string // Go identifier for the builder/action method
	ParentPath     string // the enclosing resource's module path
	Path           string // raw URI template, parsed later by internal/uritemplate
	HTTPMethod     string
	Doc            string
	RequiredParams []*Param
	OptionalParams []*Param
	Request        *TypeRef
	Response       *TypeRef
	Scopes         []string

	Pagination            PageIterability
	PageTokenParam        string // the Go param name backing pagination, if any
	ArrayResponseFields    []*Field // every array-typed property of the response, for iter_<P>

	SupportsMediaDownload bool
	MediaUpload           *MediaUpload
}

// MediaUpload mirrors dm.MediaUpload with paths already stripped of a
// leading slash (spec.md section 3.1).
type MediaUpload struct {
	Accept        []string
	MaxSize       string
	HasSimple     bool
	SimplePath    string
	HasResumable  bool
	ResumablePath string
}
