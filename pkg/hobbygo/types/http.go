package types

type ContentType string

const (
	NONE ContentType = ""
	JSON ContentType = "application/json"
	HTML ContentType = "text/html"
)

type HeaderOpts struct {
	WithCookies   bool
	WithCsrfToken bool
	WithRequestID bool
	Referer       string
	Origin        string
	Extra         map[string]string
}
