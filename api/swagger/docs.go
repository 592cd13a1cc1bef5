// Package swagger holds the OpenAPI document served under /swagger. Keep it
// in step with the handler annotations (swag init -g cmd/api/main.go -o api/swagger).
package swagger

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
        "/api/orders": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List orders",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Submit order",
                "parameters": [
                    {"description": "Order form fields", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.OrderDraft"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/response.Response"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/doctors": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["doctors"],
                "summary": "List directory entries",
                "parameters": [
                    {"type": "string", "description": "Filter text", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["doctors"],
                "summary": "Submit directory entry",
                "parameters": [
                    {"description": "Directory entry fields", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.DoctorDraft"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/doctors/{id}/visual-aids": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["doctors"],
                "summary": "Get visual aids",
                "parameters": [
                    {"type": "string", "description": "Directory entry ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/utilities": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["utilities"],
                "summary": "List utility requests",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["utilities"],
                "summary": "Submit utility request",
                "parameters": [
                    {"description": "Utility request fields", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.UtilityDraft"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/products": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Get products",
                "parameters": [
                    {"type": "integer", "description": "Page number (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Number of items per page", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Search by product name", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/products/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Get product",
                "parameters": [
                    {"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/presentation": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Get badge legend",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "status_code": {"type": "integer"},
                "data": {},
                "error": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "service.OrderDraft": {
            "type": "object",
            "required": ["type", "priority", "productId", "quantity"],
            "properties": {
                "type": {"type": "string", "example": "Regular Order"},
                "priority": {"type": "string", "example": "High"},
                "productId": {"type": "string", "example": "P1"},
                "quantity": {"type": "string", "example": "3"},
                "hospitalName": {"type": "string"},
                "doctorName": {"type": "string"},
                "remarks": {"type": "string"}
            }
        },
        "service.DoctorDraft": {
            "type": "object",
            "required": ["name", "type", "submitterName", "phone", "address", "city"],
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string", "example": "Doctor"},
                "speciality": {"type": "string"},
                "submitterName": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "address": {"type": "string"},
                "city": {"type": "string"},
                "remarks": {"type": "string"},
                "visualAids": {"type": "array", "items": {"type": "string"}}
            }
        },
        "service.UtilityDraft": {
            "type": "object",
            "required": ["type", "priority", "description", "location"],
            "properties": {
                "type": {"type": "string", "example": "Samples"},
                "priority": {"type": "string", "example": "Medium"},
                "description": {"type": "string"},
                "location": {"type": "string"},
                "remarks": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Field Representative Request API",
	Description:      "Orders, doctor/chemist directory entries and utility requests submitted by field representatives.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
