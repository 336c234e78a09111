// Package docs registers the OpenAPI description of the jobmate HTTP API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["service"],
                "summary": "Service banner",
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/api/ml/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["service"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/api/ml/explain-match": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["matching"],
                "summary": "Score a resume against a job and explain the result",
                "parameters": [
                    {"name": "X-Signature", "in": "header", "type": "string"},
                    {"name": "X-Timestamp", "in": "header", "type": "string"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.ExplainMatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.Envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.Envelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.Envelope"}}
                }
            }
        },
        "/api/ml/ats-score": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["matching"],
                "summary": "Score how well automated screening can parse a resume",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.ATSScoreRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.Envelope"}}
                }
            }
        },
        "/api/ml/career-path": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["career"],
                "summary": "Predict next roles, learning path, salary growth and timeline",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.CareerPathRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.Envelope"}}
                }
            }
        },
        "/api/ml/chat": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Answer a chat message about a match or a career",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.ChatRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.Envelope"}}
                }
            }
        },
        "/api/ml/resume/extract": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["matching"],
                "summary": "Extract text, skills and experience from an uploaded resume",
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.Envelope"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/api.Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "api.Envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "object"},
                "error": {"type": "string"}
            }
        },
        "api.ExplainMatchRequest": {
            "type": "object",
            "required": ["resumeText", "jobDescription", "jobSkills"],
            "properties": {
                "userId": {"type": "string"},
                "jobId": {"type": "string"},
                "resumeText": {"type": "string"},
                "jobDescription": {"type": "string"},
                "jobSkills": {"type": "array", "items": {"type": "string"}},
                "requiredExperience": {"type": "number"},
                "jobTitle": {"type": "string"},
                "conversationId": {"type": "string"}
            }
        },
        "api.ATSScoreRequest": {
            "type": "object",
            "required": ["resumeText"],
            "properties": {
                "resumeText": {"type": "string"},
                "jobSkills": {"type": "array", "items": {"type": "string"}}
            }
        },
        "api.CareerPathRequest": {
            "type": "object",
            "required": ["currentRole"],
            "properties": {
                "currentRole": {"type": "string"},
                "skills": {"type": "array", "items": {"type": "string"}},
                "experienceYears": {"type": "number"},
                "education": {"type": "string"},
                "certifications": {"type": "array", "items": {"type": "string"}}
            }
        },
        "api.ChatRequest": {
            "type": "object",
            "required": ["message"],
            "properties": {
                "userId": {"type": "string"},
                "message": {"type": "string"},
                "conversationId": {"type": "string"},
                "resumeText": {"type": "string"},
                "jobDescription": {"type": "string"},
                "jobSkills": {"type": "array", "items": {"type": "string"}},
                "requiredExperience": {"type": "number"},
                "jobTitle": {"type": "string"},
                "currentRole": {"type": "string"},
                "skills": {"type": "array", "items": {"type": "string"}},
                "experienceYears": {"type": "number"},
                "education": {"type": "string"},
                "certifications": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "JobMate ML Service API",
	Description:      "Resume/job matching, ATS scoring, career path prediction and a chat assistant.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
