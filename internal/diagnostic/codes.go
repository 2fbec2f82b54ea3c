package diagnostic

// Diagnostic codes.
const (
	CodeInvalidProperty            = "invalid_property"
	CodeDelimiterMismatch          = "delimiter_mismatch"
	CodeRenamedProperty            = "renamed_property"
	CodeRemovedProperty            = "removed_property"
	CodeSyntax                     = "syntax"
	CodeUnsupportedKeyword         = "unsupported_keyword"
	CodeDefaultConstructorConflict = "default_constructor_conflict"
	CodeDuplicateDefault           = "duplicate_default"
	CodeDuplicateFactory           = "duplicate_factory"
	CodeNameConflict               = "name_conflict"
	CodeConstFactoryConflict       = "const_factory_conflict"
	CodeUnsupportedIterTarget      = "unsupported_iter_target"
	CodeUnsupportedShape           = "unsupported_shape"
	CodeImportConflict             = "import_conflict"
	CodeNoFactories                = "no_factories"
	CodeTypeError                  = "type_error"
)
