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

package emitter

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/orrery-dev/discoverygen/internal/air"
	"github.com/orrery-dev/discoverygen/internal/dm"
	"github.com/orrery-dev/discoverygen/internal/uritemplate"
)

// PackageData is the root mustache context for every template in this
// package, grounded on internal/language's newTemplateData/GoContext shape.
type PackageData struct {
	PackageName    string
	GenerationYear string
	RootURL        string
	ServicePath    string
	BatchPath      string

	Scopes      []ScopeData
	Schemas     []SchemaData
	ParamTypes  []SchemaData
	GlobalParams []ParamData
	Resources   []ResourceData
	Methods     []MethodData

	HasScopes  bool
	HasSchemas bool
}

type ScopeData struct {
	Ident       string
	URL         string
	Description string
}

type FieldData struct {
	Name       string // exported Go struct field name
	JSONName   string
	Doc        string
	GoType     string
	ElemGoType string // GoType with a slice/pointer wrapper stripped, valid when IsArray
	Tag        string
	IsArray    bool
}

type VariantData struct {
	Name      string
	WireValue string
	Doc       string
}

type SchemaData struct {
	Ident    string
	Doc      string
	IsEnum   bool
	Fields   []FieldData
	Variants []VariantData
	Hashable bool
	// UsedBy lists, for an enum type, every method id (or "global param
	// <name>" for a global parameter) whose parameters are typed with it,
	// backfilled from air.CrossReference's EnumUsers so the package
	// documentation tree and schemas.go.mustache can render "used by"
	// lists without re-walking the API.
	UsedBy []string
}

type ParamData struct {
	Name       string // builder field / fluent setter name (lowerCamel)
	SetterName string // exported fluent setter method name
	JSONName   string
	Doc        string
	GoType     string // call-struct field type, pointer/slice wrapper already applied
	BaseGoType string // element type with no pointer/slice wrapper, used by setters
	Location   string // "query" or "path"
	Required   bool
	Repeated   bool
	IsString   bool
	IsBytes    bool
	IsPointer  bool

	// SetterCode is the full fluent setter method, precomputed here rather
	// than branched in the template: the right-hand side differs by
	// pointer/slice/byte shape in ways mustache's logic-less sections can't
	// express cleanly.
	SetterCode string
	// QuerySetCode is the full statement(s) appending this param to a
	// url.Values named query, only set when Location == "query".
	QuerySetCode string
}

type MediaUploadData struct {
	Accept        []string
	MaxSize       string
	HasSimple     bool
	SimplePath    string
	HasResumable  bool
	ResumablePath string
}

type MethodData struct {
	Ident      string
	ID         string
	Doc        string
	HTTPMethod string

	PathFmtLiteral string // a Go string literal (already strconv.Quote'd) holding a fmt.Sprintf format string
	PathArgsJoined string // ", arg1, arg2" ready to splice after PathFmtLiteral, or "" if no variables

	RequiredParams []ParamData
	OptionalParams []ParamData
	QueryParams    []ParamData // every param whose location is query, required or not

	HasRequest   bool
	RequestType  string
	HasResponse  bool
	ResponseType string

	Scopes []string

	IsIterable          bool
	PageTokenParam      string
	ArrayResponseFields []FieldData

	SupportsMediaDownload bool
	MediaUpload           *MediaUploadData

	// ConstructorParams/ConstructorFieldInit back the method-constructor
	// function emitted on a resource hub or the Client: the parameter list
	// and struct-literal field assignments for required params plus the
	// request body, in order.
	ConstructorParams    string
	ConstructorFieldInit string
	// ConstructorCode is the full constructor function, stamped with the
	// enclosing hub's receiver type once that's known (buildResourceData
	// for nested resources, Build for top-level free-standing methods).
	ConstructorCode string
}

type ResourceData struct {
	Ident   string
	HubType string
	// AccessorCode is the full accessor method (defined on the parent hub,
	// or on Client for a top-level resource) that returns this hub,
	// precomputed because the receiver type and the expression that reaches
	// the Client pointer both depend on nesting depth.
	AccessorCode string
	Methods      []MethodData
	Resources    []ResourceData
}

// Build converts the AIR into the mustache context used by every template
// in this package, grounded on internal/language.newTemplateData.
func Build(api *air.API, packageName string) (*PackageData, error) {
	d := &PackageData{
		PackageName:    packageName,
		GenerationYear: fmt.Sprintf("%04d", time.Now().Year()),
		RootURL:        api.RootURL,
		ServicePath:    api.ServicePath,
		BatchPath:      api.BatchPath,
	}
	for _, s := range api.Scopes {
		d.Scopes = append(d.Scopes, ScopeData{Ident: s.Ident, URL: s.URL, Description: s.Description})
	}
	d.HasScopes = len(d.Scopes) > 0

	for _, ot := range api.Schemas {
		d.Schemas = append(d.Schemas, buildSchemaData(api, ot))
	}
	d.HasSchemas = len(d.Schemas) > 0
	for _, ot := range api.ParamTypes {
		d.ParamTypes = append(d.ParamTypes, buildSchemaData(api, ot))
	}
	for _, p := range api.GlobalParams {
		d.GlobalParams = append(d.GlobalParams, buildParamData(p))
	}

	for _, r := range api.Resources {
		rd, err := buildResourceData(r, "Client", "r")
		if err != nil {
			return nil, err
		}
		d.Resources = append(d.Resources, rd)
	}
	for _, m := range api.Methods {
		md, err := buildMethodData(m)
		if err != nil {
			return nil, err
		}
		md.ConstructorCode = buildConstructorCode("Client", "r", md)
		d.Methods = append(d.Methods, md)
	}
	return d, nil
}

func buildSchemaData(api *air.API, ot *air.ObjectOrEnum) SchemaData {
	name := goTypeName(ot.Key)
	sd := SchemaData{Ident: name, Doc: ot.Doc, Hashable: ot.Hashable}
	switch ot.Kind {
	case air.EntityEnum:
		sd.IsEnum = true
		sd.UsedBy = buildUsedBy(api, ot.Key)
		for _, v := range ot.Variants {
			sd.Variants = append(sd.Variants, VariantData{
				Name:      name + v.Name,
				WireValue: v.WireValue,
				Doc:       v.Doc,
			})
		}
	case air.EntityObject:
		for _, f := range ot.Fields {
			sd.Fields = append(sd.Fields, buildFieldData(f))
		}
	}
	return sd
}

// buildUsedBy collects the deduped, sorted "used by" labels for an enum
// type from air.CrossReference's EnumUsers, backfilled on api.State.
func buildUsedBy(api *air.API, key air.TypeKey) []string {
	refs := api.State.EnumUsers[key]
	if len(refs) == 0 {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for _, r := range refs {
		label := r.MethodID
		if label == "" {
			label = "global param " + r.ParamName
		}
		if !seen[label] {
			seen[label] = true
			out = append(out, label)
		}
	}
	sort.Strings(out)
	return out
}

func buildFieldData(f *air.Field) FieldData {
	goType := fieldGoType(f.Type, f.Boxed, f.Optional)
	fd := FieldData{
		Name:     exportedFieldName(f.JSONName),
		JSONName: f.JSONName,
		Doc:      f.Doc,
		GoType:   goType,
		Tag:      jsonTag(f.JSONName, f.Optional),
		IsArray:  f.Type.RefKind == air.RefArray,
	}
	if fd.IsArray {
		fd.ElemGoType = strings.TrimPrefix(goType, "[]")
	}
	return fd
}

func buildParamData(p *air.Param) ParamData {
	loc := "query"
	if p.Location == dm.LocationPath {
		loc = "path"
	}
	goType := paramGoType(p)
	pd := ParamData{
		Name:       builderFieldName(p.JSONName),
		SetterName: exportedFieldName(p.JSONName),
		JSONName:   p.JSONName,
		Doc:        p.Doc,
		GoType:     goType,
		BaseGoType: fieldGoType(p.Type, false, false),
		Location:   loc,
		Required:   p.Required,
		Repeated:   p.Repeated,
		IsString:   p.Type.RefKind == air.RefScalar && p.Type.Scalar == dm.KindString,
		IsBytes:    p.Type.RefKind == air.RefScalar && p.Type.Scalar == dm.KindBytes,
		IsPointer:  strings.HasPrefix(goType, "*"),
	}
	if loc == "query" {
		pd.QuerySetCode = buildQuerySetCode(pd)
	}
	return pd
}

// buildSetterCode precomputes the fluent setter for an optional param,
// given the call type (e.g. "GetCall") it's being attached to. The
// assignment's right-hand side depends on whether the field is repeated, a
// byte-adapter, or pointer-boxed, which is easier to branch on in Go than to
// express with nested mustache sections.
func buildSetterCode(callType string, p ParamData) string {
	switch {
	case p.Repeated:
		return fmt.Sprintf("func (c *%s) %s(v ...%s) *%s {\n\tc.%s = v\n\treturn c\n}\n",
			callType, p.SetterName, p.BaseGoType, callType, p.Name)
	case p.IsBytes:
		return fmt.Sprintf("func (c *%s) %s(v []byte) *%s {\n\tc.%s = Bytes(v)\n\treturn c\n}\n",
			callType, p.SetterName, callType, p.Name)
	case p.IsPointer:
		return fmt.Sprintf("func (c *%s) %s(v %s) *%s {\n\tc.%s = &v\n\treturn c\n}\n",
			callType, p.SetterName, p.BaseGoType, callType, p.Name)
	default:
		return fmt.Sprintf("func (c *%s) %s(v %s) *%s {\n\tc.%s = v\n\treturn c\n}\n",
			callType, p.SetterName, p.BaseGoType, callType, p.Name)
	}
}

// buildQuerySetCode precomputes the statement(s) that append this param to
// a url.Values named query in the generated _request method.
func buildQuerySetCode(p ParamData) string {
	field := "c." + p.Name
	switch {
	case p.Repeated:
		return fmt.Sprintf("for _, v := range %s {\n\tquery.Add(%q, fmt.Sprintf(\"%%v\", v))\n}\n", field, p.JSONName)
	case p.Required:
		return fmt.Sprintf("query.Set(%q, fmt.Sprintf(\"%%v\", %s))\n", p.JSONName, field)
	case p.IsPointer:
		return fmt.Sprintf("if %s != nil {\n\tquery.Set(%q, fmt.Sprintf(\"%%v\", *%s))\n}\n", field, p.JSONName, field)
	case p.IsBytes:
		return fmt.Sprintf("if len(%s) > 0 {\n\tquery.Set(%q, fmt.Sprintf(\"%%v\", %s))\n}\n", field, p.JSONName, field)
	default:
		return fmt.Sprintf("if %s != \"\" {\n\tquery.Set(%q, fmt.Sprintf(\"%%v\", %s))\n}\n", field, p.JSONName, field)
	}
}

// buildAccessorCode precomputes the method that returns a resource hub. The
// receiver type (Client, or an ancestor hub) and the expression reaching the
// shared *Client pointer both depend on nesting depth, which resource.mustache
// can't see on its own.
func buildAccessorCode(parentHubType, parentClientExpr, ident, hubType string) string {
	return fmt.Sprintf("// %s accesses the %q resource.\nfunc (r *%s) %s() *%s {\n\treturn &%s{client: %s}\n}\n",
		ident, ident, parentHubType, ident, hubType, hubType, parentClientExpr)
}

// buildConstructorCode precomputes the method-constructor function attached
// to a resource hub (or Client, for a free-standing method): it takes the
// method's required params plus its request body and returns a populated
// *<Ident>Call.
func buildConstructorCode(receiverType, receiverClientExpr string, md MethodData) string {
	return fmt.Sprintf("// %s constructs a %sCall.\nfunc (r *%s) %s(%s) *%sCall {\n\treturn &%sCall{client: %s, %s}\n}\n",
		md.Ident, md.Ident, receiverType, md.Ident, md.ConstructorParams, md.Ident, md.Ident, receiverClientExpr, md.ConstructorFieldInit)
}

func buildResourceData(r *air.Resource, parentHubType, parentClientExpr string) (ResourceData, error) {
	hubType := r.Ident + "Actions"
	rd := ResourceData{
		Ident:        r.Ident,
		HubType:      hubType,
		AccessorCode: buildAccessorCode(parentHubType, parentClientExpr, r.Ident, hubType),
	}
	for _, m := range r.Methods {
		md, err := buildMethodData(m)
		if err != nil {
			return ResourceData{}, err
		}
		md.ConstructorCode = buildConstructorCode(hubType, "r.client", md)
		rd.Methods = append(rd.Methods, md)
	}
	for _, child := range r.Resources {
		cd, err := buildResourceData(child, hubType, "r.client")
		if err != nil {
			return ResourceData{}, err
		}
		rd.Resources = append(rd.Resources, cd)
	}
	return rd, nil
}

func buildMethodData(m *air.Method) (MethodData, error) {
	md := MethodData{
		Ident:      m.Ident,
		ID:         m.ID,
		Doc:        m.Doc,
		HTTPMethod: m.HTTPMethod,
		Scopes:     m.Scopes,
	}

	required := map[string]bool{}
	var ctorParams, ctorInit []string
	for _, p := range m.RequiredParams {
		required[p.JSONName] = true
		pd := buildParamData(p)
		md.RequiredParams = append(md.RequiredParams, pd)
		ctorParams = append(ctorParams, pd.Name+" "+pd.GoType)
		ctorInit = append(ctorInit, pd.Name+": "+pd.Name+",")
	}
	for _, p := range m.OptionalParams {
		pd := buildParamData(p)
		pd.SetterCode = buildSetterCode(m.Ident+"Call", pd)
		md.OptionalParams = append(md.OptionalParams, pd)
	}
	for _, p := range append(append([]*air.Param{}, m.RequiredParams...), m.OptionalParams...) {
		if p.Location == dm.LocationQuery {
			md.QueryParams = append(md.QueryParams, buildParamData(p))
		}
	}

	pathFmtLiteral, pathArgsJoined, err := buildPath(m.Path, required)
	if err != nil {
		return MethodData{}, err
	}
	md.PathFmtLiteral = pathFmtLiteral
	md.PathArgsJoined = pathArgsJoined

	if m.Request != nil {
		md.HasRequest = true
		md.RequestType = typeRefGoType(*m.Request)
		ctorParams = append(ctorParams, "body "+md.RequestType)
		ctorInit = append(ctorInit, "body: body,")
	}
	if m.Response != nil {
		md.HasResponse = true
		md.ResponseType = typeRefGoType(*m.Response)
	}
	md.ConstructorParams = strings.Join(ctorParams, ", ")
	md.ConstructorFieldInit = strings.Join(ctorInit, " ")

	md.IsIterable = m.Pagination != air.PageNone
	md.PageTokenParam = builderFieldName(m.PageTokenParam)
	for _, f := range m.ArrayResponseFields {
		fd := buildFieldData(f)
		fd.IsArray = true
		if fd.ElemGoType == "" {
			fd.ElemGoType = strings.TrimPrefix(fd.GoType, "[]")
		}
		md.ArrayResponseFields = append(md.ArrayResponseFields, fd)
	}

	md.SupportsMediaDownload = m.SupportsMediaDownload
	if m.MediaUpload != nil {
		md.MediaUpload = &MediaUploadData{
			Accept:        m.MediaUpload.Accept,
			MaxSize:       m.MediaUpload.MaxSize,
			HasSimple:     m.MediaUpload.HasSimple,
			SimplePath:    m.MediaUpload.SimplePath,
			HasResumable:  m.MediaUpload.HasResumable,
			ResumablePath: m.MediaUpload.ResumablePath,
		}
	}
	return md, nil
}

func typeRefGoType(tr air.TypeRef) string {
	return fieldGoType(tr, false, false)
}

// buildPath parses a method's raw path template and lowers it into a Go
// string literal holding a fmt.Sprintf format string, plus the ordered,
// comma-prefixed argument expressions that back its variables, per spec.md
// section 4.4. Every variable renders through %v: Simple and Reserved
// expansions both insert their value verbatim (the Reserved variant
// additionally preserves embedded slashes, which %v on a string already
// does), and %v decimal-formats a numeric required param exactly as the
// spec requires.
func buildPath(template string, required map[string]bool) (string, string, error) {
	nodes, err := uritemplate.Parse(template, slog.Default())
	if err != nil {
		return "", "", err
	}
	if err := uritemplate.ValidateRequired(nodes, required); err != nil {
		return "", "", err
	}
	var b strings.Builder
	var args []string
	for _, n := range nodes {
		if n.Kind == uritemplate.Literal {
			b.WriteString(n.Text)
			continue
		}
		b.WriteString("%v")
		args = append(args, "c."+builderFieldName(n.Name))
	}
	joined := ""
	if len(args) > 0 {
		joined = ", " + strings.Join(args, ", ")
	}
	return strconv.Quote(b.String()), joined, nil
}
