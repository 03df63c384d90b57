package request

// ByEnterpriseRequest binds the enterprise email path parameter.
type ByEnterpriseRequest struct {
	Email string `uri:"email" binding:"required,email"`
}

// ByEnterpriseAndIDRequest binds a document inside an enterprise scope.
// IDs are either primary-store document ids or local_ fallback ids, so no
// uuid check applies.
type ByEnterpriseAndIDRequest struct {
	Email string `uri:"email" binding:"required,email"`
	ID    string `uri:"id" binding:"required,max=128"`
}
