// Package clients holds the thin HTTP clients for the pipeline's
// external collaborators: the long-running speech recognition service
// and the temporary object store.
package clients

import (
	"net/http"
	"time"
)

type HTTP struct{ c *http.Client }

func NewHTTP() *HTTP { return &HTTP{c: &http.Client{Timeout: 60 * time.Second}} }
