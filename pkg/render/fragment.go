// Package render builds the HTML written into the output element and turns
// that HTML into terminal text.
package render

// LoadingText is shown while a submission is in flight.
const LoadingText = "Processing..."

const errorPrefix = "Error: "

// Paragraph wraps s in a paragraph element. s is inserted verbatim; the
// server's response is trusted HTML.
func Paragraph(s string) string {
	return "<p>" + s + "</p>"
}

// Loading returns the loading indicator fragment.
func Loading() string {
	return Paragraph(LoadingText)
}

// Error returns the fragment shown when a submission fails.
func Error(err error) string {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Paragraph(errorPrefix + msg)
}

// Kind tells an output element which fragment it is showing, so styling never
// depends on the response text.
type Kind int

const (
	KindResponse Kind = iota
	KindLoading
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindError:
		return "error"
	default:
		return "response"
	}
}
