package codegen

// Output model consumed by the emitter. Everything here is plain data;
// rendering to source text lives in internal/emitter.

// Field is one property of a generated record type.
type Field struct {
	Name        string // safe identifier
	TypeName    string
	WireName    string // original JSON key
	Required    bool
	Description string
}

// EnumValue is one declared constant of a generated enum. The synthetic
// unknown sentinel is added by the emitter, not listed here.
type EnumValue struct {
	Name      string
	WireValue string
}

// GeneratedType is one output source unit: either a record with fields or
// an enum with constants.
type GeneratedType struct {
	OutputName  string
	IsEnum      bool
	Fields      []Field
	Constants   []EnumValue
	Description string
	SourceFile  string
	SourceLine  int
}

// ParameterDescriptor is one method parameter of a compiled operation.
type ParameterDescriptor struct {
	WireName    string
	SafeName    string
	Location    string // "path" or "query"
	Required    bool
	Description string
}

// CompiledOperation is one GET endpoint turned into a client method.
type CompiledOperation struct {
	OperationID string
	MethodName  string
	Parameters  []ParameterDescriptor
	ReturnType  string
	Description string
	HTTPMethod  string
	Path        string
}

// Result is one generation batch: the compiled methods, every type
// reachable from their return types, and the ids that were requested but
// absent from the corpus.
type Result struct {
	Operations []CompiledOperation
	Types      []GeneratedType
	Missing    []string
}
