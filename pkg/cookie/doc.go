// Package cookie sets and reads HMAC-signed cookies.
//
// Values are stored as base64(value) + "|" + base64(hmac). Several secrets
// may be configured: the first signs, all of them verify, which allows
// rotating keys without logging everyone out.
package cookie
