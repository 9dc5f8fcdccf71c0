package domain

// ReportLink is an article reference found in a generated report.
type ReportLink struct {
	Title string
	URL   string
}

// ReportPreview is the displayable form of a server-generated email. Raw is
// untrusted markup; Safe has been sanitized for rendering.
type ReportPreview struct {
	Raw   string
	Safe  string
	Text  string
	Links []ReportLink
}
