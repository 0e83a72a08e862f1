package codegen

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/iancoleman/strcase"
)

// Name resolution: output type names, safe field/parameter identifiers, and
// enum constant names. All of it is pure string work; collision state lives
// in the callers.

var invalidIdentRE = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// sanitizeIdentifier drops every character outside [A-Za-z0-9_], so
// "TypeSpec.Http.OkResponse" flattens to "TypeSpecHttpOkResponse".
func sanitizeIdentifier(s string) string {
	return invalidIdentRE.ReplaceAllString(s, "")
}

// TypeName returns the output type name for a bare definition name. Names
// that occur under more than one source file get the PascalCased basename
// of their own file prepended, which keeps output names unique per run.
func TypeName(bareName, sourceFile string, duplicates map[string]bool) string {
	name := strcase.ToCamel(sanitizeIdentifier(bareName))
	if duplicates[bareName] {
		base := strings.TrimSuffix(filepath.Base(sourceFile), ".json")
		name = strcase.ToCamel(sanitizeIdentifier(base)) + name
	}
	return name
}

// reservedWords maps target-language keywords (the Java family the emitted
// client belongs to) to safe field identifiers. Fields renamed through this
// table keep their original wire name for serialization.
var reservedWords = map[string]string{
	"abstract":     "abstractField",
	"assert":       "assertField",
	"boolean":      "booleanField",
	"break":        "breakField",
	"byte":         "byteField",
	"case":         "caseField",
	"catch":        "catchField",
	"char":         "charField",
	"class":        "clazz",
	"const":        "constField",
	"continue":     "continueField",
	"default":      "dflt",
	"do":           "doField",
	"double":       "doubleField",
	"else":         "elseField",
	"enum":         "enumField",
	"extends":      "extendsField",
	"false":        "falseField",
	"final":        "finalField",
	"finally":      "finallyField",
	"float":        "floatField",
	"for":          "forField",
	"goto":         "gotoField",
	"if":           "ifField",
	"implements":   "implementsField",
	"import":       "importField",
	"instanceof":   "instanceofField",
	"int":          "intField",
	"interface":    "iface",
	"long":         "longField",
	"native":       "nativeField",
	"new":          "newField",
	"null":         "nullField",
	"package":      "packageField",
	"private":      "privateField",
	"protected":    "protectedField",
	"public":       "publicField",
	"return":       "returnField",
	"short":        "shortField",
	"static":       "staticField",
	"strictfp":     "strictfpField",
	"super":        "superField",
	"switch":       "switchField",
	"synchronized": "synchronizedField",
	"this":         "thisField",
	"throw":        "throwField",
	"throws":       "throwsField",
	"transient":    "transientField",
	"true":         "trueField",
	"try":          "tryField",
	"void":         "voidField",
	"volatile":     "volatileField",
	"while":        "whileField",
}

// FieldName converts a wire property name into a safe camelCase identifier.
// Kebab- and snake-case collapse into camelCase; reserved words map through
// the fixed table above.
func FieldName(wireName string) string {
	name := strcase.ToLowerCamel(wireName)
	name = sanitizeIdentifier(name)
	if name == "" {
		name = "property"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	if safe, ok := reservedWords[name]; ok {
		return safe
	}
	return name
}

// EnumConstant converts a wire value into a constant name: uppercase, every
// non-alphanumeric rune becomes '_', a leading digit gets a '_' prefix, and
// values with no usable characters fall back to UNKNOWN.
func EnumConstant(wireValue string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(wireValue) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	out := b.String()
	if strings.Trim(out, "_") == "" {
		return "UNKNOWN"
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}

// cleanEnumName normalizes an x-ms-enum name: trim, internal whitespace
// runs become single underscores.
func cleanEnumName(name string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(name)), "_")
}

// enumTypeName is the output type name for a named inline enum.
func enumTypeName(xmsName string) string {
	return strcase.ToCamel(sanitizeIdentifier(cleanEnumName(xmsName)))
}

// uniqueNames hands out identifiers unique within one scope (one generated
// method), suffixing 2, 3, … on collision.
type uniqueNames map[string]int

func (u uniqueNames) claim(name string) string {
	u[name]++
	if u[name] == 1 {
		return name
	}
	return fmt.Sprintf("%s%d", name, u[name])
}
