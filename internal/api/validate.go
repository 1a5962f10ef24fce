package api

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/p-n-ai/pai-study/internal/apierror"
)

// Schemas for the dashboard payloads. Only the fields the application
// actually reads are required; extra fields pass through untouched.
const (
	studentProfileSchema = `{
		"type": "object",
		"required": ["id", "name", "email", "level", "subjects", "learningStyle", "progress"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"name": {"type": "string", "minLength": 1},
			"email": {"type": "string", "minLength": 3},
			"level": {"type": "string"},
			"subjects": {"type": "array", "items": {"type": "string"}},
			"learningStyle": {"type": "string"},
			"progress": {"type": "object", "additionalProperties": {"type": "number"}}
		}
	}`

	courseContentSchema = `{
		"type": "object",
		"required": ["id", "title", "instructor", "description", "objectives", "schedule"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"title": {"type": "string", "minLength": 1},
			"instructor": {"type": "string"},
			"description": {"type": "string"},
			"objectives": {"type": "array"},
			"schedule": {"type": "array"}
		}
	}`

	assessmentSchema = `{
		"type": "object",
		"required": ["id", "title", "course", "type", "dueDate", "dueTime", "duration", "status"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"title": {"type": "string", "minLength": 1},
			"course": {"type": "string"},
			"type": {"type": "string", "enum": ["quiz", "assignment", "exam", "project"]},
			"dueDate": {"type": "string"},
			"dueTime": {"type": "string"},
			"duration": {"type": "string"},
			"status": {"type": "string", "enum": ["upcoming", "in-progress", "completed", "overdue"]}
		}
	}`

	resourceSchema = `{
		"type": "object",
		"required": ["id", "name", "type", "size", "uploadDate", "uploadTime", "course", "category"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"name": {"type": "string", "minLength": 1},
			"type": {"type": "string"},
			"size": {"type": "string"},
			"uploadDate": {"type": "string"},
			"uploadTime": {"type": "string"},
			"course": {"type": "string"},
			"category": {"type": "string"}
		}
	}`
)

// Validator checks raw payloads against a compiled JSON schema before they
// enter application state.
type Validator struct {
	name   string
	schema *gojsonschema.Schema
}

func mustCompile(name, schemaJSON string) *Validator {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("compile %s schema: %v", name, err))
	}
	return &Validator{name: name, schema: schema}
}

var (
	// StudentProfileValidator validates student profile payloads.
	StudentProfileValidator = mustCompile("student_profile", studentProfileSchema)
	// CourseContentValidator validates course content payloads.
	CourseContentValidator = mustCompile("course_content", courseContentSchema)
	// AssessmentValidator validates assessment payloads.
	AssessmentValidator = mustCompile("assessment", assessmentSchema)
	// ResourceValidator validates resource payloads.
	ResourceValidator = mustCompile("resource", resourceSchema)
)

// Validate checks raw JSON against the schema. A shape mismatch yields a
// validation-kind apierror naming the offending fields.
func (v *Validator) Validate(raw []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return apierror.Validation(v.name, fmt.Sprintf("malformed payload: %v", err))
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		problems = append(problems, re.String())
	}
	return apierror.Validation(v.name, strings.Join(problems, "; "))
}
