// Package services hosts clients for external integrations and the error
// taxonomy shared between them.
package services
