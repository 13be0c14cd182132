package bedrock

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"time"

	"github.com/proxycast/claude-provider/errors"
)

const (
	algorithm   = "AWS4-HMAC-SHA256"
	serviceName = "bedrock"

	amzDateFormat   = "20060102T150405Z"
	dateStampFormat = "20060102"
)

// Credentials is the AWS-style secret material used for signing.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Region          string
}

// Signature is the ephemeral output of signing one request. It is applied
// to the outgoing request and discarded.
type Signature struct {
	// Authorization is the complete Authorization header value.
	Authorization string `json:"authorization"`
	// AmzDate is the x-amz-date header value used in the signature.
	AmzDate string `json:"x_amz_date"`
	// SecurityToken is the x-amz-security-token value, empty if absent.
	SecurityToken string `json:"x_amz_security_token,omitempty"`
}

// Sign computes the SigV4 authorization for a request at the current UTC
// instant. Pure except for the wall-clock capture; use SignAt for
// deterministic output.
func Sign(method, rawURL string, creds Credentials, body []byte) (*Signature, error) {
	return SignAt(method, rawURL, creds, body, time.Now().UTC())
}

// SignAt computes the SigV4 authorization for a request at an explicit
// instant. Deterministic given identical inputs.
func SignAt(method, rawURL string, creds Credentials, body []byte, at time.Time) (*Signature, error) {
	amzDate := at.UTC().Format(amzDateFormat)
	dateStamp := at.UTC().Format(dateStampFormat)

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return nil, errors.InvalidURL(rawURL, err)
	}

	canonicalURI := parsed.EscapedPath()
	if canonicalURI == "" {
		canonicalURI = "/"
	}

	payloadHash := hex.EncodeToString(sha256Sum(body))

	canonicalHeaders := fmt.Sprintf("host:%s\nx-amz-date:%s\n", parsed.Host, amzDate)
	signedHeaders := "host;x-amz-date"

	canonicalRequest := fmt.Sprintf("%s\n%s\n%s\n%s\n%s\n%s",
		method,
		canonicalURI,
		parsed.RawQuery,
		canonicalHeaders,
		signedHeaders,
		payloadHash,
	)

	credentialScope := fmt.Sprintf("%s/%s/%s/aws4_request", dateStamp, creds.Region, serviceName)
	stringToSign := fmt.Sprintf("%s\n%s\n%s\n%s",
		algorithm,
		amzDate,
		credentialScope,
		hex.EncodeToString(sha256Sum([]byte(canonicalRequest))),
	)

	signingKey := deriveSigningKey(creds.SecretAccessKey, dateStamp, creds.Region)
	signature := hex.EncodeToString(hmacSHA256(signingKey, []byte(stringToSign)))

	authorization := fmt.Sprintf("%s Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		algorithm, creds.AccessKeyID, credentialScope, signedHeaders, signature)

	return &Signature{
		Authorization: authorization,
		AmzDate:       amzDate,
		SecurityToken: creds.SessionToken,
	}, nil
}

// deriveSigningKey chains HMAC-SHA256 over date, region, service, and the
// aws4_request terminator.
func deriveSigningKey(secretKey, dateStamp, region string) []byte {
	kDate := hmacSHA256([]byte("AWS4"+secretKey), []byte(dateStamp))
	kRegion := hmacSHA256(kDate, []byte(region))
	kService := hmacSHA256(kRegion, []byte(serviceName))
	return hmacSHA256(kService, []byte("aws4_request"))
}

// hmacSHA256 is the RFC 2104 construction: block size 64, key hashed down
// if longer, zero-padded if shorter, inner/outer pads 0x36/0x5c.
func hmacSHA256(key, data []byte) []byte {
	const blockSize = 64

	k := make([]byte, len(key))
	copy(k, key)

	if len(k) > blockSize {
		k = sha256Sum(k)
	}
	if len(k) < blockSize {
		k = append(k, make([]byte, blockSize-len(k))...)
	}

	ipad := make([]byte, blockSize)
	opad := make([]byte, blockSize)
	for i := range k {
		ipad[i] = k[i] ^ 0x36
		opad[i] = k[i] ^ 0x5c
	}

	inner := sha256Sum(append(ipad, data...))
	return sha256Sum(append(opad, inner...))
}

func sha256Sum(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}
