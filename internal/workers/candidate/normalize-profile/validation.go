// internal/workers/candidate/normalize-profile/validation.go
package normalizeprofile

import "candidate-workers/internal/common/validation"

var inputSchema = validation.MustCompile(`{
  "type": "object",
  "anyOf": [
    {"required": ["candidate"], "properties": {"candidate": {"type": "object"}}},
    {"required": ["candidateId"], "properties": {"candidateId": {"type": "string", "minLength": 1}}}
  ]
}`)
