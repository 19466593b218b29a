package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"lightning/internal/errors"
)

const diagnosticSource = "lightning"

// convertDiagnostics transforms lexical diagnostics into LSP diagnostics.
func convertDiagnostics(doc *document) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(doc.diagnostics))

	for _, d := range doc.diagnostics {
		severity := protocol.DiagnosticSeverityError
		if d.Level == errors.Warning {
			severity = protocol.DiagnosticSeverityWarning
		}

		message := d.Message
		if d.HelpText != "" {
			message += "\n" + d.HelpText
		}

		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    doc.span(d.Position.Offset, max(d.Length, 1)),
			Severity: ptrSeverity(severity),
			Code:     &protocol.IntegerOrString{Value: d.Code},
			Source:   ptrString(diagnosticSource),
			Message:  message,
		})
	}
	return diagnostics
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
