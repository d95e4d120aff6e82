// Package output renders risk reports and commit-group suggestions in text
// or JSON.
package output
