// Package blog holds the Swagger document served at /swagger/.
//
// Regenerate with:
//
//	swag init -g internal/blog/http/router.go -o api/blog
package blog

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/blog"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/token/": {
            "post": {
                "description": "Checks username and password and returns an access token and a refresh token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Obtain token pair",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/blogsdk.TokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "access, refresh", "schema": {"$ref": "#/definitions/blogsdk.TokenPair"}},
                    "400": {"description": "Missing fields or malformed JSON", "schema": {"$ref": "#/definitions/blogsdk.ErrorResponse"}},
                    "401": {"description": "No active account found with the given credentials", "schema": {"$ref": "#/definitions/blogsdk.ErrorResponse"}},
                    "429": {"description": "Rate limit exceeded", "schema": {"$ref": "#/definitions/blogsdk.ErrorResponse"}}
                }
            }
        },
        "/token/refresh/": {
            "post": {
                "description": "Exchanges a refresh token for a new access token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Refresh access token",
                "parameters": [
                    {"description": "Refresh token", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/blogsdk.RefreshRequest"}}
                ],
                "responses": {
                    "200": {"description": "access", "schema": {"$ref": "#/definitions/blogsdk.AccessToken"}},
                    "400": {"description": "Missing field or malformed JSON", "schema": {"$ref": "#/definitions/blogsdk.ErrorResponse"}},
                    "401": {"description": "Token is invalid or expired", "schema": {"$ref": "#/definitions/blogsdk.ErrorResponse"}}
                }
            }
        },
        "/register/": {
            "post": {
                "description": "Creates an account. Field errors come back as a map of field name to messages.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Register a user",
                "parameters": [
                    {"description": "New account", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/blogsdk.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "user, message", "schema": {"$ref": "#/definitions/blogsdk.RegisterResponse"}},
                    "400": {"description": "Field errors", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}},
                    "429": {"description": "Rate limit exceeded", "schema": {"$ref": "#/definitions/blogsdk.ErrorResponse"}}
                }
            }
        },
        "/user/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns id, username and email of the caller.",
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "id, username, email", "schema": {"$ref": "#/definitions/blogsdk.User"}},
                    "401": {"description": "Invalid or missing access token", "schema": {"$ref": "#/definitions/blogsdk.ErrorResponse"}}
                }
            }
        },
        "/posts/": {
            "get": {
                "description": "Returns every post, newest first.",
                "produces": ["application/json"],
                "tags": ["Posts"],
                "summary": "List posts",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/blogsdk.Post"}}},
                    "401": {"description": "A presented token is invalid", "schema": {"$ref": "#/definitions/blogsdk.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Creates a post authored by the caller. Any author in the body is ignored.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Posts"],
                "summary": "Create a post",
                "parameters": [
                    {"description": "Post fields", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/blogsdk.PostInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/blogsdk.Post"}},
                    "400": {"description": "Invalid fields", "schema": {"$ref": "#/definitions/blogsdk.ErrorResponse"}},
                    "401": {"description": "Invalid or missing access token", "schema": {"$ref": "#/definitions/blogsdk.ErrorResponse"}}
                }
            }
        },
        "/posts/{id}/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Posts"],
                "summary": "Get a post",
                "parameters": [
                    {"type": "integer", "description": "Post id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/blogsdk.Post"}},
                    "404": {"description": "Not found.", "schema": {"$ref": "#/definitions/blogsdk.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Full update: title and content are required. Only the author may update.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Posts"],
                "summary": "Replace a post",
                "parameters": [
                    {"type": "integer", "description": "Post id", "name": "id", "in": "path", "required": true},
                    {"description": "Post fields", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/blogsdk.PostInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/blogsdk.Post"}},
                    "400": {"description": "Invalid fields", "schema": {"$ref": "#/definitions/blogsdk.ErrorResponse"}},
                    "401": {"description": "Invalid or missing access token", "schema": {"$ref": "#/definitions/blogsdk.ErrorResponse"}},
                    "403": {"description": "You are not authorized to edit this post", "schema": {"$ref": "#/definitions/blogsdk.ErrorResponse"}},
                    "404": {"description": "Not found.", "schema": {"$ref": "#/definitions/blogsdk.ErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "description": "Partial update: only the fields present are changed. \"imgUrl\": null removes the image.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Posts"],
                "summary": "Update a post",
                "parameters": [
                    {"type": "integer", "description": "Post id", "name": "id", "in": "path", "required": true},
                    {"description": "Post fields", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/blogsdk.PostInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/blogsdk.Post"}},
                    "400": {"description": "Invalid fields", "schema": {"$ref": "#/definitions/blogsdk.ErrorResponse"}},
                    "401": {"description": "Invalid or missing access token", "schema": {"$ref": "#/definitions/blogsdk.ErrorResponse"}},
                    "403": {"description": "You are not authorized to edit this post", "schema": {"$ref": "#/definitions/blogsdk.ErrorResponse"}},
                    "404": {"description": "Not found.", "schema": {"$ref": "#/definitions/blogsdk.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Only the author may delete.",
                "tags": ["Posts"],
                "summary": "Delete a post",
                "parameters": [
                    {"type": "integer", "description": "Post id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Invalid or missing access token", "schema": {"$ref": "#/definitions/blogsdk.ErrorResponse"}},
                    "403": {"description": "You are not authorized to delete this post", "schema": {"$ref": "#/definitions/blogsdk.ErrorResponse"}},
                    "404": {"description": "Not found.", "schema": {"$ref": "#/definitions/blogsdk.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "blogsdk.AccessToken": {
            "type": "object",
            "properties": {"access": {"type": "string"}}
        },
        "blogsdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "error": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}
            }
        },
        "blogsdk.Post": {
            "type": "object",
            "properties": {
                "author": {"$ref": "#/definitions/blogsdk.User"},
                "content": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "integer"},
                "imgUrl": {"type": "string"},
                "title": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "blogsdk.PostInput": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "imgUrl": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "blogsdk.RefreshRequest": {
            "type": "object",
            "properties": {"refresh": {"type": "string"}}
        },
        "blogsdk.RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "blogsdk.RegisterResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"$ref": "#/definitions/blogsdk.User"}
            }
        },
        "blogsdk.TokenPair": {
            "type": "object",
            "properties": {
                "access": {"type": "string"},
                "refresh": {"type": "string"}
            }
        },
        "blogsdk.TokenRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "blogsdk.User": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "username": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT access token. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Blog API",
	Description:      "Minimal blogging backend: registration, JWT token pairs and posts that only their author can change.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
