// Package workflow implements the transfer page: recipient directory and
// selection, transfer validation, the submission state machine with its
// transient message slot, and the QR gallery loader.
//
// Every component talks to the presentation layer only through View, so the
// same workflow drives the JSON page snapshot served over HTTP and the
// recording views used in tests.
package workflow
