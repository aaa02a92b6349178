package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// totalRequests tracks API calls that returned a usable reply.
	totalRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zyteapi_requests_total",
		Help: "The total number of successful Zyte API calls.",
	})
	// totalRequestErrors tracks API calls abandoned after retries.
	totalRequestErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zyteapi_request_errors_total",
		Help: "The total number of Zyte API calls that ultimately failed.",
	})
	// totalRetries tracks individual retry attempts.
	totalRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zyteapi_retries_total",
		Help: "The total number of Zyte API call retries.",
	})
)
