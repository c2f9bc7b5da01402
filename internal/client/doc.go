// Package client is the Go side of the gif board front end. It mirrors the
// browser page served at "/": Index holds the list fetched on mount, Form
// holds the unsubmitted fields, and every failure goes to an ErrorReporter.
package client
