// Package utils provides common utility functions for the graphgen project.
package utils
