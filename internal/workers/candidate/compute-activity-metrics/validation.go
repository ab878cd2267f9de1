// internal/workers/candidate/compute-activity-metrics/validation.go
package computeactivitymetrics

import "candidate-workers/internal/common/validation"

var inputSchema = validation.MustCompile(`{
  "type": "object",
  "anyOf": [
    {"required": ["candidate"], "properties": {"candidate": {"type": "object"}}},
    {"required": ["candidateId"], "properties": {"candidateId": {"type": "string", "minLength": 1}}}
  ],
  "properties": {
    "applicationHistory": {
      "type": ["array", "null"],
      "items": {"type": "object", "required": ["appliedAt"]}
    }
  }
}`)
