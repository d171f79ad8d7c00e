//go:build swag

package swaggerkit

import docs "lookalike/internal/services/api/docs"

// docReader returns the document generated by `swag init --tags swag`
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }
