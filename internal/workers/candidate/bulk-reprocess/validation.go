// internal/workers/candidate/bulk-reprocess/validation.go
package bulkreprocess

import "candidate-workers/internal/common/validation"

var inputSchema = validation.MustCompile(`{
  "type": "object",
  "required": ["runKey"],
  "properties": {
    "runKey":       {"type": "string", "pattern": "^[A-Za-z0-9._:-]{1,128}$"},
    "candidates":   {"type": ["array", "null"], "items": {"type": "object"}},
    "candidateIds": {"type": ["array", "null"], "items": {"type": "string"}}
  }
}`)
