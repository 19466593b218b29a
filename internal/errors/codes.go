package errors

// Error codes used across the toolchain.
//
// Error code ranges:
// E0100-E0199: Lexical errors
// E0200-E0299: Outline (block structure) errors
// E0800-E0899: Warning codes
// E0900-E0999: Reserved for tooling errors

const (
	// E0100: Dedent to a width that matches no open indentation level
	ErrorIndentMismatch = "E0100"

	// E0101: Bytes that start no token
	ErrorUnknownCharacter = "E0101"

	// E0200: Token stream does not form a valid block outline
	ErrorOutlineSyntax = "E0200"

	// E0800: Line mixes tabs into indentation while tab handling is off
	WarningTabIndent = "E0800"

	// E0900: Source file could not be read
	ErrorReadFailure = "E0900"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorIndentMismatch:
		return "Unindent does not match any outer indentation level"
	case ErrorUnknownCharacter:
		return "Character is not part of any token"
	case ErrorOutlineSyntax:
		return "Lines and blocks are not well nested"
	case WarningTabIndent:
		return "Tab used for indentation without a tab width"
	case ErrorReadFailure:
		return "Source file could not be read"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the code represents a warning rather than an error
func IsWarning(code string) bool {
	return code >= "E0800" && code < "E0900"
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0100" && code < "E0200":
		return "Lexical"
	case code >= "E0200" && code < "E0300":
		return "Outline"
	case code >= "E0800" && code < "E0900":
		return "Warning"
	case code >= "E0900" && code < "E1000":
		return "Tooling"
	default:
		return "Unknown"
	}
}
