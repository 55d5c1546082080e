// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/dispatch/{variant}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Classify each item, build its upload request and send it to the document service",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["dispatch"],
                "summary": "Dispatch a batch of work items",
                "parameters": [
                    {
                        "enum": ["document", "file", "text", "urls", "url-batch"],
                        "type": "string",
                        "description": "Entry point",
                        "name": "variant",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Batch to dispatch",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.DispatchRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "All items dispatched", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid request, variant or policy", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "422": {"description": "Classification or input error", "schema": {"$ref": "#/definitions/handler.DispatchErrorBody"}},
                    "502": {"description": "Document service error", "schema": {"$ref": "#/definitions/handler.DispatchErrorBody"}}
                }
            }
        },
        "/runs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "List recorded batch executions, newest first",
                "produces": ["application/json"],
                "tags": ["runs"],
                "summary": "List dispatch runs",
                "parameters": [
                    {"type": "integer", "default": 0, "description": "Offset for pagination", "name": "offset", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Limit for pagination (max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "List of runs", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "404": {"description": "Run audit disabled", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/runs/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["runs"],
                "summary": "Get a dispatch run",
                "parameters": [
                    {"type": "string", "description": "Run ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Run details", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid run ID", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "404": {"description": "Run not found or audit disabled", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        }
    },
    "definitions": {
        "handler.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.DispatchParams": {
            "type": "object",
            "properties": {
                "useCustomUrl": {"type": "boolean", "example": false},
                "customUrl": {"type": "string"},
                "predefinedUrl": {"type": "string", "example": "europe"},
                "token": {"type": "string"},
                "binaryPropertyName": {"type": "string", "example": "data"},
                "urlList": {"type": "array", "items": {"type": "string"}},
                "textContentField": {"type": "string"},
                "textContent": {"type": "string"},
                "filename": {"type": "string"},
                "inputFieldName": {"type": "string", "example": "url"}
            }
        },
        "handler.DispatchItemDoc": {
            "type": "object",
            "properties": {
                "json": {"type": "object", "additionalProperties": true},
                "binary": {"type": "object", "additionalProperties": {"$ref": "#/definitions/domain.BinaryAttachment"}},
                "params": {"$ref": "#/definitions/handler.DispatchParams"}
            }
        },
        "handler.DispatchRequest": {
            "type": "object",
            "properties": {
                "policy": {"type": "string", "example": "collect_all"},
                "params": {"$ref": "#/definitions/handler.DispatchParams"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/handler.DispatchItemDoc"}}
            }
        },
        "handler.DispatchErrorBody": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "data": {},
                "error": {"$ref": "#/definitions/handler.APIError"}
            }
        },
        "handler.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "data": {},
                "meta": {"$ref": "#/definitions/handler.PagMeta"}
            }
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "error": {"$ref": "#/definitions/handler.APIError"}
            }
        },
        "handler.PagMeta": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "offset": {"type": "integer"},
                "limit": {"type": "integer"}
            }
        },
        "domain.BinaryAttachment": {
            "type": "object",
            "properties": {
                "data": {"type": "string"},
                "fileName": {"type": "string"},
                "mimeType": {"type": "string"},
                "encoding": {"type": "string", "example": "base64"},
                "s3Bucket": {"type": "string"},
                "s3Key": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the API token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "narrabridge API",
	Description:      "Dispatches workflow items to the Narratheque document service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
