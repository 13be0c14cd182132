// Package bedrock implements AWS Signature Version 4 signing for the
// Bedrock runtime, plus the model identifier mapping and endpoint helpers.
//
// The signature deliberately covers only the host and x-amz-date headers.
// A session token, when present, is surfaced as x-amz-security-token but is
// never folded into the signed header set; the target endpoint accepts this
// minimal variant and changing it breaks interoperability.
package bedrock
