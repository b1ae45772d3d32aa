// Package file stores uploaded files on the local filesystem or in S3.
//
// Both backends accept the already-read bytes of an upload under a
// slash-separated object key and return its public URL. Keys are confined:
// local storage refuses paths escaping its base directory and S3 storage
// refuses keys containing "..".
package file
