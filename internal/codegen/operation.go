package codegen

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/azswag/clientgen/internal/spec"
)

const paramsFragment = "#/parameters/"

// MethodName converts an operationId of the form Resource_Verb into a
// client method name: lowerFirst(Verb) + upperFirst(Resource). Ids without
// an underscore just get their first letter lowered.
func MethodName(operationID string) string {
	resource, verb, ok := strings.Cut(operationID, "_")
	if !ok {
		return lowerFirst(operationID)
	}
	return lowerFirst(verb) + upperFirst(resource)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Compile turns one GET operation into a client method: name, ordered
// parameter list, and resolved return type. The returned definition is the
// 200-response type, nil when the operation declares none; callers feed it
// into the type closure.
func (g *Generator) Compile(op *spec.Operation) (*CompiledOperation, *spec.Definition, error) {
	params, err := g.compileParameters(op)
	if err != nil {
		return nil, nil, err
	}
	returnType, def, err := g.returnType(op)
	if err != nil {
		return nil, nil, err
	}
	return &CompiledOperation{
		OperationID: op.ID,
		MethodName:  MethodName(op.ID),
		Parameters:  params,
		ReturnType:  returnType,
		Description: op.Description,
		HTTPMethod:  op.Method,
		Path:        op.Path,
	}, def, nil
}

var pathParamRE = regexp.MustCompile(`\{([^{}]+)\}`)

func (g *Generator) compileParameters(op *spec.Operation) ([]ParameterDescriptor, error) {
	var pathParams, queryParams []spec.Parameter
	for _, raw := range op.Parameters {
		p := raw
		if raw.Ref != "" {
			resolved, err := g.resolveParameterRef(op, raw.Ref)
			if err != nil {
				if spec.IsFatal(err) {
					return nil, err
				}
				fmt.Fprintf(g.warnw, "[WARN] %s: dropping parameter: %v\n", op.ID, err)
				continue
			}
			p = *resolved
		}
		// api-version is supplied globally by the runtime client, never
		// per-method.
		if p.Name == "api-version" {
			continue
		}
		switch p.In {
		case "path":
			pathParams = append(pathParams, p)
		case "query":
			queryParams = append(queryParams, p)
		}
	}

	// Path parameters follow their left-to-right occurrence in the URL
	// template; ones the template never mentions are appended, not dropped.
	var ordered []spec.Parameter
	used := map[int]bool{}
	for _, m := range pathParamRE.FindAllStringSubmatch(op.Path, -1) {
		for i, p := range pathParams {
			if !used[i] && p.Name == m[1] {
				used[i] = true
				ordered = append(ordered, p)
				break
			}
		}
	}
	for i, p := range pathParams {
		if !used[i] {
			ordered = append(ordered, p)
		}
	}

	names := uniqueNames{}
	var out []ParameterDescriptor
	for _, p := range ordered {
		out = append(out, ParameterDescriptor{
			WireName: p.Name,
			SafeName: names.claim(FieldName(p.Name)),
			Location: "path",
			// Path parameters are always required; a URL template cannot be
			// rendered without them, whatever the spec claims.
			Required:    true,
			Description: p.Description,
		})
	}
	for _, p := range queryParams {
		out = append(out, ParameterDescriptor{
			WireName:    p.Name,
			SafeName:    names.claim(FieldName(p.Name)),
			Location:    "query",
			Required:    p.Required,
			Description: p.Description,
		})
	}
	return out, nil
}

// resolveParameterRef resolves a parameter $ref, which may point into the
// operation's own file or an entirely different document. External files
// load through a lazily populated cache keyed by cleaned absolute path,
// never invalidated within one run.
func (g *Generator) resolveParameterRef(op *spec.Operation, ref string) (*spec.Parameter, error) {
	i := strings.Index(ref, paramsFragment)
	if i < 0 {
		return nil, &spec.CorpusError{
			Code:    spec.ExternalResourceUnavailable,
			Message: fmt.Sprintf("parameter reference %q matches no supported shape", ref),
			Ref:     ref,
		}
	}
	filePart := ref[:i]
	name := ref[i+len(paramsFragment):]

	path := op.SourceFile
	if filePart != "" {
		path = filepath.Clean(filepath.Join(filepath.Dir(op.SourceFile), filepath.FromSlash(filePart)))
	}

	params, ok := g.paramFiles[path]
	if !ok {
		loaded, err := spec.ParseParameterSection(path)
		if err != nil {
			return nil, err
		}
		params = loaded
		g.paramFiles[path] = params
	}
	p, ok := params[name]
	if !ok {
		return nil, &spec.CorpusError{
			Code:    spec.ExternalResourceUnavailable,
			Message: fmt.Sprintf("parameter %q not found in %s", name, path),
			File:    path,
			Ref:     ref,
		}
	}
	return &p, nil
}

// returnType resolves the 200-response schema into an output type name.
// When the bare name is duplicated across files, the definition whose path
// embeds the greatest date wins before the file-prefix naming rule applies.
func (g *Generator) returnType(op *spec.Operation) (string, *spec.Definition, error) {
	ref := op.Responses["200"]
	if ref == "" {
		return "void", nil, nil
	}
	i := strings.LastIndex(ref, defsFragmentInRef)
	if i < 0 {
		return "", nil, &spec.CorpusError{
			Code:    spec.MalformedReference,
			Message: fmt.Sprintf("operation %s: response reference %q is not a definitions pointer", op.ID, ref),
			File:    op.SourceFile,
			Ref:     ref,
		}
	}
	bare := ref[i+len(defsFragmentInRef):]

	if g.idx.Duplicates()[bare] {
		def := spec.LatestByPathDate(g.idx.DefinitionsNamed(bare))
		return g.typeNameFor(def), def, nil
	}
	def, err := g.idx.Resolve(ref, op.SourceFile)
	if err != nil {
		return "", nil, err
	}
	return g.typeNameFor(def), def, nil
}

const defsFragmentInRef = "#/definitions/"
