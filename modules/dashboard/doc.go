// Package dashboard serves the main page: SMTP settings, the bulk send form
// with its per-recipient report, and the optional image attachment.
//
// Every browser page load owns a Workspace remembering the last saved SMTP
// settings and the URL of the uploaded image. Sending is refused until SMTP
// settings were saved or loaded in the same workspace.
package dashboard
