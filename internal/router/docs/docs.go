// Package docs registra el documento OpenAPI del backend de desarrollo.
// Mantenido a mano con el formato que genera swag init.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/token/": {
            "post": {"summary": "Obtain access/refresh pair", "tags": ["auth"], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/auth/token/refresh/": {
            "post": {"summary": "Refresh access token", "tags": ["auth"], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/auth/users/register/": {
            "post": {"summary": "Register a customer account", "tags": ["auth"], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/auth/users/profile/": {
            "get": {"summary": "Current user profile", "tags": ["auth"], "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/pets/pets/": {
            "get": {
                "summary": "List pets for sale",
                "tags": ["pets"],
                "parameters": [
                    {"type": "integer", "name": "category", "in": "query"},
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "string", "name": "ordering", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/pets/pets/{petID}/": {
            "get": {"summary": "Pet detail", "tags": ["pets"], "parameters": [{"type": "integer", "name": "petID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/pets/categories/": {
            "get": {"summary": "List categories", "tags": ["pets"], "responses": {"200": {"description": "OK"}}}
        },
        "/orders/orders/": {
            "get": {"summary": "List orders (admin: all)", "tags": ["orders"], "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"summary": "Create an order for one pet", "tags": ["orders"], "security": [{"Bearer": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/orders/orders/user_orders/": {
            "get": {"summary": "Orders of the current user", "tags": ["orders"], "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/orders/orders/{orderID}/cancel/": {
            "post": {"summary": "Cancel a pending order and restore stock", "tags": ["orders"], "security": [{"Bearer": []}], "parameters": [{"type": "integer", "name": "orderID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Pet Store dev API",
	Description:      "Backend de desarrollo para el cliente petstore.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
