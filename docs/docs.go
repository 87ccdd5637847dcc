// Package docs registers the Swagger specification. Regenerate with
// `swag init` after changing controller annotations.
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
        "/api/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a teacher account",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in as a teacher",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/auth/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Current teacher profile",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/assignments": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["assignments"],
                "summary": "List the teacher's assignments",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["assignments"],
                "summary": "Create an assignment with questions",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/assignments/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["assignments"],
                "summary": "Assignment detail with sessions and insights",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/assignments/{id}/close": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["assignments"],
                "summary": "Close an assignment to further submissions",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/misconceptions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["misconceptions"],
                "summary": "Misconception catalog for a topic",
                "parameters": [{"type": "string", "name": "topic", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/misconceptions/suggest": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["misconceptions"],
                "summary": "Suggest misconceptions for a draft question",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/upload/extract-questions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["upload"],
                "summary": "Draft questions from an uploaded worksheet",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/homework/{slug}": {
            "get": {
                "tags": ["homework"],
                "summary": "View an assignment by share link",
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/homework/{slug}/start": {
            "post": {
                "tags": ["homework"],
                "summary": "Join an assignment with name and class code",
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/homework/{slug}/answer": {
            "post": {
                "tags": ["homework"],
                "summary": "Submit an answer for grading",
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/homework/{slug}/followup": {
            "post": {
                "tags": ["homework"],
                "summary": "Submit a follow-up answer",
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/homework/{slug}/complete": {
            "post": {
                "tags": ["homework"],
                "summary": "Mark the session finished",
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/health": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness and database health",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Guidly API",
	Description:      "Backend for the Guidly homework feedback platform.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
