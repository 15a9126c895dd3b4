package constants

// Static route constants
const (
	PublicRoute  = "/"
	MetricsRoute = "/metrics"
	DocsBasePath = "/docs/api/"
	// OpenAPI file path relative to the project root
	DocsFilePath = "public/docs/v1/openapi.yml"
)
