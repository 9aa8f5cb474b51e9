package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"
	CodeInputReadError   Code = "INPUT_READ_ERROR"
	CodeParseError       Code = "PARSE_ERROR"
	CodeComparisonError  Code = "COMPARISON_ERROR"
	CodeReportError      Code = "REPORT_ERROR"
)

func (c Code) String() string {
	return string(c)
}
