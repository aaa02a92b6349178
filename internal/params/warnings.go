package params

import "fmt"

// WarningKind classifies an engine warning for log filtering and metrics.
type WarningKind string

// Warning classifications.
const (
	WarnDeprecatedUsage   WarningKind = "deprecated-usage"
	WarnDroppedDefault    WarningKind = "dropped-default"
	WarnUnmappedHeader    WarningKind = "unmapped-header"
	WarnRedundantOverride WarningKind = "redundant-override"
	WarnConflict          WarningKind = "conflicting-parameter"
	WarnGating            WarningKind = "gating"
)

// Warning is a non-fatal diagnostic. Warnings never change the returned
// outcome; they are reported alongside it so callers can log them.
type Warning struct {
	Kind    WarningKind
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

type warningList []Warning

func (l *warningList) add(kind WarningKind, format string, args ...any) {
	*l = append(*l, Warning{Kind: kind, Message: fmt.Sprintf(format, args...)})
}
