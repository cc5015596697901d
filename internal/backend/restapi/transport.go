package restapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries a per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// requestIDTransport tags each request with a fresh ID and logs it at debug.
type requestIDTransport struct {
	base http.RoundTripper
	log  logrus.FieldLogger
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	id := uuid.NewString()
	r := req.Clone(req.Context())
	r.Header.Set(RequestIDHeader, id)

	fields := logrus.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"request_id": id,
	}
	start := time.Now()
	res, err := t.base.RoundTrip(r)
	fields["duration"] = time.Since(start).Round(time.Millisecond)
	if err != nil {
		t.log.WithFields(fields).WithError(err).Debug("request failed")
		return nil, err
	}
	fields["status"] = res.StatusCode
	t.log.WithFields(fields).Debug("request")
	return res, nil
}
