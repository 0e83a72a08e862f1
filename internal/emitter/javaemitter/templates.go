package javaemitter

import (
	"strings"
	"text/template"

	"github.com/azswag/clientgen/internal/codegen"
)

// Path and query parameters are strings on the wire, so every method
// parameter renders as String.
func paramList(params []codegen.ParameterDescriptor) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, "String "+p.SafeName)
	}
	return strings.Join(parts, ", ")
}

var funcs = template.FuncMap{"paramList": paramList}

var recordTemplate = template.Must(template.New("record").Parse(`{{if .SourceFile}}// Generated from {{.SourceFile}}:{{.SourceLine}}
{{end}}package {{.Package}};
{{if .Description}}
/** {{.Description}} */{{end}}
public class {{.OutputName}} {
{{- range .Fields}}
{{if .Description}}    /** {{.Description}} */
{{end}}{{if ne .Name .WireName}}    @JsonProperty("{{.WireName}}")
{{end}}    private {{.TypeName}} {{.Name}};
{{- end}}
}
`))

var enumTemplate = template.Must(template.New("enum").Parse(`{{if .SourceFile}}// Generated from {{.SourceFile}}:{{.SourceLine}}
{{end}}package {{.Package}};
{{if .Description}}
/** {{.Description}} */{{end}}
public enum {{.OutputName}} {
{{- range .Constants}}
    {{.Name}}("{{.WireValue}}"),
{{- end}}
    /** Any wire value not declared when this client was generated. */
    UNKNOWN_TO_SDK(null);

    private final String value;

    {{.OutputName}}(String value) {
        this.value = value;
    }

    public String value() {
        return value;
    }

    /** Null or undeclared wire values decode to UNKNOWN_TO_SDK. */
    public static {{.OutputName}} fromValue(String value) {
        if (value == null) {
            return UNKNOWN_TO_SDK;
        }
        for ({{.OutputName}} c : values()) {
            if (value.equals(c.value)) {
                return c;
            }
        }
        return UNKNOWN_TO_SDK;
    }
}
`))

var clientTemplate = template.Must(template.New("client").Funcs(funcs).Parse(`// Generated client method listing
package {{.Package}};

public interface Client {
{{- range .Operations}}

    /**
{{- if .Description}}
     * {{.Description}}
{{- end}}
{{- range .Parameters}}
     * @param {{.SafeName}} {{if .Description}}{{.Description}}{{else}}the "{{.WireName}}" {{.Location}} parameter{{end}}{{if not .Required}} (optional){{end}}
{{- end}}
     * {{.HTTPMethod}} {{.Path}}
     */
    {{.ReturnType}} {{.MethodName}}({{paramList .Parameters}});
{{- end}}
}
`))
