package errors

// Convenience constructors for the fatal error taxonomy.

func UnsupportedFormat(path string) *PipelineError {
	return New(CategoryParse, SeverityFatal, "unsupported input format").
		WithContext("path", path)
}

func MissingField(field string) *PipelineError {
	return New(CategoryValidation, SeverityFatal, "required field missing").
		WithContext("field", field)
}

func ParseFailed(path string, cause error) *PipelineError {
	return Wrap(cause, CategoryParse, SeverityFatal, "input file could not be parsed").
		WithContext("path", path)
}

func TemplateError(name string, cause error) *PipelineError {
	return Wrap(cause, CategoryTemplate, SeverityFatal, "template resolution failed").
		WithContext("template", name)
}

func RenderError(name string, cause error) *PipelineError {
	return Wrap(cause, CategoryTemplate, SeverityFatal, "template execution failed").
		WithContext("template", name)
}

func OutputError(operation string, cause error) *PipelineError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "output operation failed").
		WithContext("operation", operation)
}
