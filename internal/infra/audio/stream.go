package audio

import (
	"bufio"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
)

// streamReader is a buffered HTTP reader for audio masters in object
// storage. No overall request timeout is set: a track plays for minutes
// and the body is read at decode speed.
type streamReader struct {
	reader *bufio.Reader
	resp   *http.Response
}

var streamClient = &http.Client{
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		IdleConnTimeout:       5 * time.Minute,
		MaxIdleConnsPerHost:   2,
	},
}

func newStreamReader(url string, bufferSize int) (io.ReadCloser, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build stream request")
	}
	// Compressed bodies defeat positional decoding.
	req.Header.Set("Accept-Encoding", "identity")
	req.Header.Set("Range", "bytes=0-")

	resp, err := streamClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open audio stream")
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		_ = resp.Body.Close()
		return nil, errors.Newf("unexpected status opening audio stream: %s", resp.Status)
	}

	return &streamReader{
		reader: bufio.NewReaderSize(resp.Body, bufferSize),
		resp:   resp,
	}, nil
}

func (r *streamReader) Read(p []byte) (int, error) {
	return r.reader.Read(p)
}

func (r *streamReader) Close() error {
	return r.resp.Body.Close()
}
