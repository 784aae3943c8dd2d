// Package docs holds the OpenAPI document served under /swagger. Keep it in
// step with the handler annotations in internal/api/handler/v1.
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
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/endpoints": {
            "get": {
                "produces": ["application/json"],
                "tags": ["entries"],
                "summary": "List every stored pick",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.ListAllEntriesResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Err"}}
                }
            }
        },
        "/entries": {
            "get": {
                "description": "Newest first. An unknown game value lists every game.",
                "produces": ["application/json"],
                "tags": ["entries"],
                "summary": "List recent picks",
                "parameters": [
                    {"type": "integer", "default": 10, "description": "page size, 1 to 100", "name": "limit", "in": "query"},
                    {"type": "string", "description": "fantasy5 or superlotto", "name": "game", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.ListEntriesResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Err"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["entries"],
                "summary": "Store a pick",
                "parameters": [
                    {"description": "request body", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.CreateEntryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.CreateEntryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Err"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Err"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Err"}}
                }
            }
        },
        "/entries/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["entries"],
                "summary": "Get one pick",
                "parameters": [
                    {"type": "string", "description": "entry id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.GetEntryResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Err"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Err"}}
                }
            }
        },
        "/entries/{id}/played/{played}": {
            "put": {
                "produces": ["application/json"],
                "tags": ["entries"],
                "summary": "Mark a pick as played or not played",
                "parameters": [
                    {"type": "string", "description": "entry id", "name": "id", "in": "path", "required": true},
                    {"enum": ["true", "false"], "type": "string", "description": "true or false", "name": "played", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.SetPlayedResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Err"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Err"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Err"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Meta": {
            "type": "object",
            "properties": {
                "sourceIp": {"type": "string"},
                "userAgent": {"type": "string"}
            }
        },
        "domain.Pick": {
            "type": "object",
            "properties": {
                "IsSpecial": {"type": "boolean"},
                "Name": {"type": "string"},
                "Number": {"type": "integer"}
            }
        },
        "request.CreateEntryRequest": {
            "type": "object",
            "properties": {
                "game": {"type": "string"},
                "pickedAt": {"type": "string"},
                "picks": {"type": "array", "items": {"$ref": "#/definitions/domain.Pick"}},
                "played": {"type": "boolean"}
            }
        },
        "response.CreateEntryResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "key": {"type": "string"},
                "ok": {"type": "boolean"},
                "pickedAt": {"type": "string"}
            }
        },
        "response.Entry": {
            "type": "object",
            "properties": {
                "Key": {"type": "string"},
                "game": {"type": "string"},
                "id": {"type": "string"},
                "key": {"type": "string"},
                "meta": {"$ref": "#/definitions/domain.Meta"},
                "pickedAt": {"type": "string"},
                "picks": {"type": "array", "items": {"$ref": "#/definitions/domain.Pick"}},
                "played": {"type": "boolean"},
                "playedAt": {"type": "string"}
            }
        },
        "response.Err": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "key": {"type": "string"},
                "route": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "response.GetEntryResponse": {
            "type": "object",
            "properties": {
                "item": {"$ref": "#/definitions/response.Entry"}
            }
        },
        "response.ListAllEntriesResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/response.Entry"}}
            }
        },
        "response.ListEntriesResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "gameFilter": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/response.Entry"}}
            }
        },
        "response.SetPlayedResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "key": {"type": "string"},
                "ok": {"type": "boolean"},
                "played": {"type": "boolean"},
                "playedAt": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
