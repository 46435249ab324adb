// Package letter implements validation, sanitization and CRUD orchestration
// for recommendation-letter records. The Repository interface is the
// persistence seam; internal/repository/postgres provides the production
// implementation.
package letter
