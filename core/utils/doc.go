// Package utils provides common utility functions for the material-manager application.
// It includes the loose type conversions needed when reading documents whose field
// types depend on the store that produced them.
package utils
