package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Home API",
        "description": "Course home metadata, outline tab and self-enrollment.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "CourseHome", "description": "Course header, outline tab and outline export"},
        {"name": "Enrollment", "description": "Learner self-enrollment"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A dependency is unavailable"}
                }
            }
        },
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/course_home/{courseId}/metadata": {
            "get": {
                "tags": ["CourseHome"],
                "summary": "Course home metadata",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CourseMetadataEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Course not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/course_home/{courseId}/outline": {
            "get": {
                "tags": ["CourseHome"],
                "summary": "Course outline tab",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/OutlineEnvelope"}},
                    "404": {"description": "Course not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/course_home/{courseId}/outline/export": {
            "get": {
                "tags": ["CourseHome"],
                "summary": "Download the course outline",
                "produces": ["text/csv", "application/pdf"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Outline document", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not enrolled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/course_home/{courseId}/cache": {
            "delete": {
                "tags": ["CourseHome"],
                "summary": "Purge cached course data (staff)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Purged", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Staff only", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/enrollment": {
            "post": {
                "tags": ["Enrollment"],
                "summary": "Enroll in a course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EnrollRequest"}}
                ],
                "responses": {
                    "200": {"description": "Reactivated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Course not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already enrolled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Enrollment closed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "EnrollRequest": {
            "type": "object",
            "properties": {
                "course_id": {"type": "string"}
            },
            "required": ["course_id"]
        },
        "CourseTab": {
            "type": "object",
            "properties": {
                "tab_id": {"type": "string"},
                "title": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "LearningAssistant": {
            "type": "object",
            "properties": {
                "enabled": {"type": "boolean"},
                "visible": {"type": "boolean"}
            }
        },
        "CourseMetadata": {
            "type": "object",
            "properties": {
                "course_id": {"type": "string"},
                "title": {"type": "string"},
                "org": {"type": "string"},
                "number": {"type": "string"},
                "start": {"type": "string", "format": "date-time"},
                "end": {"type": "string", "format": "date-time"},
                "is_enrolled": {"type": "boolean"},
                "is_staff": {"type": "boolean"},
                "enrollment_mode": {"type": "string"},
                "tabs": {"type": "array", "items": {"$ref": "#/definitions/CourseTab"}},
                "learning_assistant": {"$ref": "#/definitions/LearningAssistant"}
            }
        },
        "OutlineSequential": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "display_name": {"type": "string"},
                "due": {"type": "string", "format": "date-time"}
            }
        },
        "OutlineSection": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "display_name": {"type": "string"},
                "sequentials": {"type": "array", "items": {"$ref": "#/definitions/OutlineSequential"}}
            }
        },
        "EnrollmentAlert": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["enrollment_error", "staff_unenrolled_info"]},
                "severity": {"type": "string", "enum": ["error", "info"]},
                "can_enroll": {"type": "boolean"}
            }
        },
        "CourseAlert": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["course_start", "course_end", "certificate_available", "access_expiration", "offer"]},
                "date": {"type": "string", "format": "date-time"},
                "code": {"type": "string"},
                "percentage": {"type": "integer"}
            }
        },
        "OutlineTabData": {
            "type": "object",
            "properties": {
                "course_id": {"type": "string"},
                "course_blocks": {"type": "array", "items": {"$ref": "#/definitions/OutlineSection"}},
                "resume_course": {
                    "type": "object",
                    "properties": {
                        "has_visited_course": {"type": "boolean"},
                        "url": {"type": "string"}
                    }
                },
                "enroll_alert": {"$ref": "#/definitions/EnrollmentAlert"},
                "end_date": {"type": "string", "format": "date-time"},
                "alerts": {"type": "array", "items": {"$ref": "#/definitions/CourseAlert"}}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        },
        "CourseMetadataEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/CourseMetadata"},
                "meta": {"type": "object"}
            }
        },
        "OutlineEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/OutlineTabData"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
