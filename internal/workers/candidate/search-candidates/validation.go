// internal/workers/candidate/search-candidates/validation.go
package searchcandidates

import "candidate-workers/internal/common/validation"

var inputSchema = validation.MustCompile(`{
  "type": "object",
  "required": ["query"],
  "properties": {
    "query":        {"type": "string", "minLength": 1, "maxLength": 500},
    "candidates":   {"type": ["array", "null"], "items": {"type": "object"}},
    "candidateIds": {"type": ["array", "null"], "items": {"type": "string", "minLength": 1}},
    "limit":        {"type": "integer", "minimum": 0, "maximum": 500}
  }
}`)
