package clients

import (
	"net"
	"net/http"
	"time"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
)

// Transport settings for calls to the object store. Cover uploads are single
// PUTs of at most a few megabytes, so one minute covers a slow link.
const (
	storageRequestTimeout = time.Minute
	storageIdleConns      = 25
)

// NewHTTPClient returns the HTTP client used for outbound calls to storage
// providers. It stays a BuildableClient so the AWS config loader can still
// install a custom CA bundle (AWS_CA_BUNDLE) on its transport.
func NewHTTPClient() *awshttp.BuildableClient {
	return awshttp.NewBuildableClient().
		WithTimeout(storageRequestTimeout).
		WithDialerOptions(func(d *net.Dialer) {
			d.Timeout = 30 * time.Second
			d.KeepAlive = 30 * time.Second
		}).
		WithTransportOptions(func(tr *http.Transport) {
			tr.MaxIdleConns = storageIdleConns
			tr.MaxIdleConnsPerHost = storageIdleConns
			tr.IdleConnTimeout = 90 * time.Second
			tr.TLSHandshakeTimeout = 10 * time.Second
			tr.ExpectContinueTimeout = time.Second
		})
}
