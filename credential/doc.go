// Package credential defines the credential data model shared by the
// lifecycle manager and the auth flow packages.
//
// A Credential is a closed tagged union over six auth schemes. The scheme is
// fixed at creation; operations dispatch on it exhaustively. Common health
// and usage bookkeeping fields are shared by every scheme, while secret
// material is scheme-specific.
package credential
