// Package tokens implements the token expiry policy and the retrying
// refresh wrapper.
//
// Expiry decisions are deliberately asymmetric: an unknown expiry counts as
// expired (refreshing a live token is cheap, using a dead one is not), but
// does not count as expiring soon, since "soon" is only advisory.
package tokens
