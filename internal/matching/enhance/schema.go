// internal/matching/enhance/schema.go
package enhance

const enhancementSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["industryAlignment", "careerTrajectory", "skillGaps", "workingStyle", "marketValue", "confidence"],
  "properties": {
    "industryAlignment": {
      "type": "array",
      "maxItems": 10,
      "items": {"type": "string", "minLength": 1, "maxLength": 80}
    },
    "careerTrajectory": {"type": "string", "maxLength": 120},
    "skillGaps": {
      "type": "array",
      "maxItems": 20,
      "items": {"type": "string", "minLength": 1, "maxLength": 80}
    },
    "workingStyle": {"type": "string", "maxLength": 120},
    "marketValue": {"type": "string", "maxLength": 120},
    "confidence": {"type": "number", "minimum": 0, "maximum": 1}
  }
}`
