package probe

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// Transport failure classes.
const (
	ClassNXDomain    = "NXDOMAIN"
	ClassDNSTimeout  = "DNS_SERVFAIL_or_TIMEOUT"
	ClassDNSError    = "DNS_ERROR"
	ClassConnRefused = "CONN_REFUSED"
	ClassTLS         = "TLS"
	ClassTimeout     = "TIMEOUT"
	ClassOther       = "OTHER"
)

// TransportError means the probe could not run: no complete response came
// back from the target. It is never turned into an "unhealthy" verdict.
type TransportError struct {
	Host  string
	Path  string
	Class string
	Err   error
}

func newTransportError(r Request, err error) *TransportError {
	return &TransportError{
		Host:  r.TargetHost,
		Path:  r.TargetPath,
		Class: ClassifyTransportError(err),
		Err:   err,
	}
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("probe %s%s: %s: %v", e.Host, e.Path, e.Class, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ClassifyTransportError inspects the error chain of a failed request. It
// does not perform any lookups of its own.
func ClassifyTransportError(err error) string {
	if err == nil {
		return ""
	}

	var de *net.DNSError
	if errors.As(err, &de) {
		switch {
		case de.IsNotFound:
			return ClassNXDomain
		case de.IsTemporary || de.Timeout():
			return ClassDNSTimeout
		default:
			return ClassDNSError
		}
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return ClassConnRefused
	}

	var (
		certErr     *tls.CertificateVerificationError
		recordErr   tls.RecordHeaderError
		alertErr    tls.AlertError
		unknownAuth x509.UnknownAuthorityError
		hostErr     x509.HostnameError
		invalidErr  x509.CertificateInvalidError
	)
	if errors.As(err, &certErr) || errors.As(err, &recordErr) || errors.As(err, &alertErr) ||
		errors.As(err, &unknownAuth) || errors.As(err, &hostErr) || errors.As(err, &invalidErr) {
		return ClassTLS
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ClassTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ClassTimeout
	}

	return ClassOther
}
