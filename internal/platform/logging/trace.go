package logging

import (
	"os"
	"strconv"
	"regexp"
	"sync"

	"go.uber.org/zap"
)

const traceparentHeader = "traceparent"

// W3C Trace Context: {version}-{trace-id}-{parent-id}-{trace-flags}
var traceparentRe = regexp.MustCompile(`^[0-9a-fA-F]{2}-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`)

// projectIDEnv is searched in order.
var projectIDEnv = []string{"GOOGLE_CLOUD_PROJECT", "GCP_PROJECT", "GCLOUD_PROJECT", "PROJECT_ID"}

var (
	projectIDOnce   sync.Once
	cachedProjectID string
)

// requestFields returns the per-request correlation fields: Cloud Trace fields when the
// traceparent is valid and a project is known, and the request ID when set.
func requestFields(traceparent, projectID, requestID string) []zap.Field {
	var fields []zap.Field
	if m := traceparentRe.FindStringSubmatch(traceparent); m != nil && projectID != "" {
		fields = append(fields,
			zap.String("logging.googleapis.com/trace", "projects/"+projectID+"/traces/"+m[1]),
			zap.String("logging.googleapis.com/spanId", m[2]),
			zap.Bool("logging.googleapis.com/trace_sampled", sampled(m[3])),
		)
	}
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
	}
	return fields
}

func resolveProjectID() string {
	projectIDOnce.Do(func() {
		for _, key := range projectIDEnv {
			if v := os.Getenv(key); v != "" {
				cachedProjectID = v
				return
			}
		}
	})
	return cachedProjectID
}

// sampled reports whether the sampled bit of the trace flags is set.
func sampled(flags string) bool {
	v, err := strconv.ParseUint(flags, 16, 8)
	return err == nil && v&0x01 == 1
}
